// Package tasksrepo provides access to task document storage.
package tasksrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avelis/taskboard/core/repositories"
	"github.com/avelis/taskboard/sdk/logger"
)

// Storer defines the data storage interface for task documents.
type Storer interface {
	Insert(ctx context.Context, input CreateTask) (Task, error)
	List(ctx context.Context) ([]Task, error)
	GetByID(ctx context.Context, taskID uuid.UUID) (Task, error)
	Update(ctx context.Context, taskID uuid.UUID, patch Document) error
	Delete(ctx context.Context, taskID uuid.UUID) error
}

type Repository struct {
	log    *logger.Logger
	storer Storer
}

func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Create stores the document as-is under a fresh identifier and returns the
// stored task.
func (r *Repository) Create(ctx context.Context, fields Document) (Task, error) {
	if fields == nil {
		fields = Document{}
	}

	input := CreateTask{
		TaskID: uuid.New(),
		Fields: fields,
	}

	task, err := r.storer.Insert(ctx, input)
	if err != nil {
		return Task{}, fmt.Errorf("task repository create: %w", err)
	}

	r.log.InfoContext(ctx, "task created", "task_id", task.TaskID)
	return task, nil
}

func (r *Repository) List(ctx context.Context) ([]Task, error) {
	tasks, err := r.storer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("task repository list: %w", err)
	}
	return tasks, nil
}

func (r *Repository) GetByID(ctx context.Context, taskID uuid.UUID) (Task, error) {
	task, err := r.storer.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return Task{}, repositories.ErrNotFound
		}
		return Task{}, fmt.Errorf("task repository get by id: %w", err)
	}
	return task, nil
}

// Update merges the top-level keys of patch into the stored document.
// Keys absent from patch keep their stored values.
func (r *Repository) Update(ctx context.Context, taskID uuid.UUID, patch Document) error {
	if err := r.storer.Update(ctx, taskID, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return repositories.ErrNotFound
		}
		return fmt.Errorf("task repository update: %w", err)
	}

	r.log.InfoContext(ctx, "task updated", "task_id", taskID)
	return nil
}

func (r *Repository) Delete(ctx context.Context, taskID uuid.UUID) error {
	if err := r.storer.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return repositories.ErrNotFound
		}
		return fmt.Errorf("task repository delete: %w", err)
	}

	r.log.InfoContext(ctx, "task deleted", "task_id", taskID)
	return nil
}
