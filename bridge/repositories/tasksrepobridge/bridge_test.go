package tasksrepobridge_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/avelis/taskboard/bridge/repositories/tasksrepobridge"
	"github.com/avelis/taskboard/bridge/scaffolding/mid"
	"github.com/avelis/taskboard/core/repositories"
	"github.com/avelis/taskboard/core/repositories/tasksrepo"
	"github.com/avelis/taskboard/infrastructure/web"
	"github.com/avelis/taskboard/sdk/logger"
	"github.com/avelis/taskboard/sdk/telemetry"
)

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
	return nil
}

func newTestApp(t *testing.T) *web.WebHandler {
	t.Helper()
	log := logger.New(io.Discard, slog.LevelError, "test", nil)

	app := web.NewWebHandler(log, telemetry.NewTelemetry(),
		mid.Errors(log),
		mid.Panics(),
	)

	tasksrepobridge.AddHttpRoutes(app.Group("/api/v1"), tasksrepobridge.Config{
		Log:        log,
		Repository: tasksrepo.NewRepository(log, newMemoryStore()),
	})

	return app
}

func doRequest(t *testing.T, app *web.WebHandler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func TestCreateTask(t *testing.T) {
	app := newTestApp(t)

	w := doRequest(t, app, http.MethodPost, "/api/v1/tasks", `{"title":"A","done":false}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body)
	}

	var task tasksrepobridge.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := uuid.Parse(task.TaskID); err != nil {
		t.Fatalf("task_id %q is not a uuid: %v", task.TaskID, err)
	}
	if task.Fields["title"] != "A" {
		t.Fatalf("fields = %v, want title A", task.Fields)
	}
	if task.CreatedAt == "" || task.UpdatedAt == "" {
		t.Fatalf("timestamps missing: %s", w.Body)
	}
}

func TestCreateTaskBadBody(t *testing.T) {
	app := newTestApp(t)

	w := doRequest(t, app, http.MethodPost, "/api/v1/tasks", `{nope`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body)
	}
}

func TestListTasksEmpty(t *testing.T) {
	app := newTestApp(t)

	w := doRequest(t, app, http.MethodGet, "/api/v1/tasks", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Fatalf("body = %q, want []", got)
	}
}

func TestListTasks(t *testing.T) {
	app := newTestApp(t)

	doRequest(t, app, http.MethodPost, "/api/v1/tasks", `{"n":1}`)
	doRequest(t, app, http.MethodPost, "/api/v1/tasks", `{"n":2}`)

	w := doRequest(t, app, http.MethodGet, "/api/v1/tasks", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var tasks []tasksrepobridge.Task
	if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
}

func TestGetTask(t *testing.T) {
	app := newTestApp(t)

	created := doRequest(t, app, http.MethodPost, "/api/v1/tasks", `{"title":"A"}`)
	var task tasksrepobridge.Task
	if err := json.Unmarshal(created.Body.Bytes(), &task); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	w := doRequest(t, app, http.MethodGet, "/api/v1/tasks/"+task.TaskID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp tasksrepobridge.GetTaskResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Result == nil {
		t.Fatal("result is null, want the task")
	}
	if resp.Result.Fields["title"] != "A" {
		t.Fatalf("fields = %v, want title A", resp.Result.Fields)
	}
}

func TestGetTaskMissing(t *testing.T) {
	app := newTestApp(t)

	w := doRequest(t, app, http.MethodGet, "/api/v1/tasks/"+uuid.NewString(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(resp["result"]) != "null" {
		t.Fatalf("result = %s, want null", resp["result"])
	}
}

func TestGetTaskBadID(t *testing.T) {
	app := newTestApp(t)

	w := doRequest(t, app, http.MethodGet, "/api/v1/tasks/not-a-uuid", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body)
	}
}

func TestUpdateTask(t *testing.T) {
	app := newTestApp(t)

	created := doRequest(t, app, http.MethodPost, "/api/v1/tasks", `{"title":"A","done":false}`)
	var task tasksrepobridge.Task
	if err := json.Unmarshal(created.Body.Bytes(), &task); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	w := doRequest(t, app, http.MethodPatch, "/api/v1/tasks/"+task.TaskID, `{"done":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body)
	}

	var msg tasksrepobridge.MessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Message != "Task updated successfully" {
		t.Fatalf("message = %q", msg.Message)
	}

	got := doRequest(t, app, http.MethodGet, "/api/v1/tasks/"+task.TaskID, "")
	var resp tasksrepobridge.GetTaskResponse
	if err := json.Unmarshal(got.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode get: %v", err)
	}
	if resp.Result == nil || resp.Result.Fields["done"] != true || resp.Result.Fields["title"] != "A" {
		t.Fatalf("fields after patch = %v", resp.Result)
	}
}

func TestUpdateTaskMissing(t *testing.T) {
	app := newTestApp(t)

	w := doRequest(t, app, http.MethodPatch, "/api/v1/tasks/"+uuid.NewString(), `{"done":true}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", w.Code, w.Body)
	}
}

func TestDeleteTask(t *testing.T) {
	app := newTestApp(t)

	created := doRequest(t, app, http.MethodPost, "/api/v1/tasks", `{"title":"A"}`)
	var task tasksrepobridge.Task
	if err := json.Unmarshal(created.Body.Bytes(), &task); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	w := doRequest(t, app, http.MethodDelete, "/api/v1/tasks/"+task.TaskID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body)
	}

	again := doRequest(t, app, http.MethodDelete, "/api/v1/tasks/"+task.TaskID, "")
	if again.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", again.Code)
	}
}

func TestDeleteTaskBadID(t *testing.T) {
	app := newTestApp(t)

	w := doRequest(t, app, http.MethodDelete, "/api/v1/tasks/nope", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body)
	}
}
