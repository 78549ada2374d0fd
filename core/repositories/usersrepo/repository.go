// Package usersrepo provides access to user storage.
package usersrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelis/taskboard/core/repositories"
	"github.com/avelis/taskboard/sdk/logger"
)

// Storer defines the data storage interface for users.
type Storer interface {
	Create(ctx context.Context, input CreateUser) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
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

func (r *Repository) Create(ctx context.Context, input CreateUser) (User, error) {
	user, err := r.storer.Create(ctx, input)
	if err != nil {
		return User{}, fmt.Errorf("user repository create: %w", err)
	}

	r.log.InfoContext(ctx, "user created", "user_id", user.UserID)
	return user, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (User, error) {
	user, err := r.storer.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return User{}, repositories.ErrNotFound
		}
		return User{}, fmt.Errorf("user repository get by email: %w", err)
	}
	return user, nil
}
