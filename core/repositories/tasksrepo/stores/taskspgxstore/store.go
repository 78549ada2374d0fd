// Package taskspgxstore implements tasksrepo.Storer against PostgreSQL,
// keeping each task body in a jsonb column.
package taskspgxstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/avelis/taskboard/core/repositories"
	"github.com/avelis/taskboard/core/repositories/tasksrepo"
	"github.com/avelis/taskboard/infrastructure/postgresdb"
	"github.com/avelis/taskboard/sdk/logger"
)

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) Insert(ctx context.Context, input tasksrepo.CreateTask) (tasksrepo.Task, error) {
	query := `INSERT INTO tasks (task_id, fields)
		VALUES (@task_id, @fields)
		RETURNING task_id, fields, created_at, updated_at`

	fields, err := json.Marshal(input.Fields)
	if err != nil {
		return tasksrepo.Task{}, fmt.Errorf("marshal fields: %w", err)
	}

	args := pgx.NamedArgs{
		"task_id": input.TaskID,
		"fields":  fields,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}

	return task, nil
}

func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	query := `SELECT task_id, fields, created_at, updated_at
		FROM tasks
		ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return tasks, nil
}

func (s *Store) GetByID(ctx context.Context, taskID uuid.UUID) (tasksrepo.Task, error) {
	query := `SELECT task_id, fields, created_at, updated_at
		FROM tasks
		WHERE task_id = @task_id`

	args := pgx.NamedArgs{
		"task_id": taskID,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tasksrepo.Task{}, repositories.ErrNotFound
		}
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}

	return task, nil
}

// Update merges patch into the stored document with the jsonb || operator,
// which overwrites matching top-level keys and leaves the rest alone.
func (s *Store) Update(ctx context.Context, taskID uuid.UUID, patch tasksrepo.Document) error {
	query := `UPDATE tasks
		SET fields = fields || @patch, updated_at = now()
		WHERE task_id = @task_id`

	p, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshal patch: %w", err)
	}

	args := pgx.NamedArgs{
		"task_id": taskID,
		"patch":   p,
	}

	tag, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, taskID uuid.UUID) error {
	query := `DELETE FROM tasks
		WHERE task_id = @task_id`

	args := pgx.NamedArgs{
		"task_id": taskID,
	}

	tag, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}
