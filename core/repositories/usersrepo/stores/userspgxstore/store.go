// Package userspgxstore implements usersrepo.Storer against PostgreSQL.
package userspgxstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/avelis/taskboard/core/repositories"
	"github.com/avelis/taskboard/core/repositories/usersrepo"
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

func (s *Store) Create(ctx context.Context, input usersrepo.CreateUser) (usersrepo.User, error) {
	query := `INSERT INTO users (user_id, name, email, password_hash)
		VALUES (@user_id, @name, @email, @password_hash)
		RETURNING user_id, name, email, password_hash, created_at`

	args := pgx.NamedArgs{
		"user_id":       input.UserID,
		"name":          input.Name,
		"email":         input.Email,
		"password_hash": input.PasswordHash,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		err = postgresdb.HandlePgError(err)
		if errors.Is(err, postgresdb.ErrDBDuplicatedEntry) {
			return usersrepo.User{}, repositories.ErrDuplicateEntry
		}
		return usersrepo.User{}, err
	}

	return user, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (usersrepo.User, error) {
	query := `SELECT user_id, name, email, password_hash, created_at
		FROM users
		WHERE email = @email`

	args := pgx.NamedArgs{
		"email": email,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return usersrepo.User{}, repositories.ErrNotFound
		}
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}

	return user, nil
}
