package tasksrepobridge

import "github.com/avelis/taskboard/core/repositories/tasksrepo"

// Task is the wire shape of a stored task document.
type Task struct {
	TaskID    string             `json:"task_id"`
	Fields    tasksrepo.Document `json:"fields"`
	CreatedAt string             `json:"created_at"`
	UpdatedAt string             `json:"updated_at"`
}

// GetTaskResponse wraps a single lookup. Result is null when no task
// matched, with a 200 status: this endpoint reports found-or-empty, not
// an error.
type GetTaskResponse struct {
	Result *Task `json:"result"`
}

// MessageResponse confirms a mutation with no echoed document.
type MessageResponse struct {
	Message string `json:"message"`
}
