package tasksrepo_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/avelis/taskboard/core/repositories"
	"github.com/avelis/taskboard/core/repositories/tasksrepo"
	"github.com/avelis/taskboard/sdk/logger"
)

// memoryStore applies the same merge semantics the pgx store gets from
// jsonb, keeping insertion order for List.
type memoryStore struct {
	tasks map[uuid.UUID]tasksrepo.Task
	order []uuid.UUID
}

func newMemoryStore() *memoryStore {
	return &memoryStore{tasks: make(map[uuid.UUID]tasksrepo.Task)}
}

func (s *memoryStore) Insert(_ context.Context, input tasksrepo.CreateTask) (tasksrepo.Task, error) {
	now := time.Now()
	task := tasksrepo.Task{
		TaskID:    input.TaskID,
		Fields:    input.Fields.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tasks[task.TaskID] = task
	s.order = append(s.order, task.TaskID)
	return task, nil
}

func (s *memoryStore) List(_ context.Context) ([]tasksrepo.Task, error) {
	out := make([]tasksrepo.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tasks[id])
	}
	return out, nil
}

func (s *memoryStore) GetByID(_ context.Context, taskID uuid.UUID) (tasksrepo.Task, error) {
	task, exists := s.tasks[taskID]
	if !exists {
		return tasksrepo.Task{}, repositories.ErrNotFound
	}
	return task, nil
}

func (s *memoryStore) Update(_ context.Context, taskID uuid.UUID, patch tasksrepo.Document) error {
	task, exists := s.tasks[taskID]
	if !exists {
		return repositories.ErrNotFound
	}
	task.Fields = task.Fields.Merge(patch)
	task.UpdatedAt = time.Now()
	s.tasks[taskID] = task
	return nil
}

func (s *memoryStore) Delete(_ context.Context, taskID uuid.UUID) error {
	if _, exists := s.tasks[taskID]; !exists {
		return repositories.ErrNotFound
	}
	delete(s.tasks, taskID)
	for i, id := range s.order {
		if id == taskID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func newTestRepository() *tasksrepo.Repository {
	log := logger.New(io.Discard, slog.LevelError, "test", nil)
	return tasksrepo.NewRepository(log, newMemoryStore())
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, tasksrepo.Document{"title": "A", "done": false})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.TaskID == uuid.Nil {
		t.Fatal("create returned a nil task id")
	}

	got, err := repo.GetByID(ctx, created.TaskID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got.Fields, created.Fields) {
		t.Fatalf("get fields = %v, want %v", got.Fields, created.Fields)
	}
}

func TestCreateNilDocument(t *testing.T) {
	repo := newTestRepository()

	created, err := repo.Create(context.Background(), nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Fields == nil {
		t.Fatal("create stored a nil document, want an empty one")
	}
}

func TestListOrder(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	first, _ := repo.Create(ctx, tasksrepo.Document{"n": 1})
	second, _ := repo.Create(ctx, tasksrepo.Document{"n": 2})

	tasks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("list returned %d tasks, want 2", len(tasks))
	}
	if tasks[0].TaskID != first.TaskID || tasks[1].TaskID != second.TaskID {
		t.Fatal("list is not in insertion order")
	}
}

func TestUpdateMergesFields(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, tasksrepo.Document{"title": "A", "done": false})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Update(ctx, created.TaskID, tasksrepo.Document{"done": true}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, created.TaskID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := tasksrepo.Document{"title": "A", "done": true}
	if !reflect.DeepEqual(got.Fields, want) {
		t.Fatalf("fields after update = %v, want %v", got.Fields, want)
	}
}

func TestGetUpdateDeleteMissing(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()
	missing := uuid.New()

	if _, err := repo.GetByID(ctx, missing); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("get missing err = %v, want ErrNotFound", err)
	}
	if err := repo.Update(ctx, missing, tasksrepo.Document{"done": true}); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("update missing err = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, missing); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("delete missing err = %v, want ErrNotFound", err)
	}
}

func TestDeleteRemovesTask(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, tasksrepo.Document{"title": "A"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Delete(ctx, created.TaskID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.TaskID); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("get after delete err = %v, want ErrNotFound", err)
	}
}
