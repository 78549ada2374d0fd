package tasksrepo

import (
	"time"

	"github.com/google/uuid"
)

// Task is a stored document plus its identity and bookkeeping timestamps.
type Task struct {
	TaskID    uuid.UUID `db:"task_id"`
	Fields    Document  `db:"fields"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CreateTask contains the fields for inserting a new task.
type CreateTask struct {
	TaskID uuid.UUID `db:"task_id"`
	Fields Document  `db:"fields"`
}
