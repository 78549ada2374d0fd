// Package auth implements registration, login and token issuance.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avelis/taskboard/core/repositories"
	"github.com/avelis/taskboard/core/repositories/usersrepo"
	"github.com/avelis/taskboard/sdk/environment"
	"github.com/avelis/taskboard/sdk/logger"
)

// Set of error values callers branch on. Anything else is a store or
// crypto failure.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Config holds token issuance settings. The signing key has no default:
// a process must not come up issuing tokens nobody configured a secret for.
type Config struct {
	SigningKey  string        `env:"JWT_SIGNING_KEY" required:"true"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" default:"24h"`
	TokenIssuer string        `env:"TOKEN_ISSUER" default:"taskboard"`
}

// LoadConfig parses the auth configuration from the environment.
func LoadConfig(prefix string) (Config, error) {
	var cfg Config
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing auth config: %w", err)
	}
	return cfg, nil
}

type Auth struct {
	log   *logger.Logger
	users *usersrepo.Repository
	cfg   Config
}

func New(log *logger.Logger, users *usersrepo.Repository, cfg Config) *Auth {
	return &Auth{
		log:   log,
		users: users,
		cfg:   cfg,
	}
}

// Register creates a user with an irreversibly hashed password. A user
// whose email is already present fails with ErrEmailTaken. The existence
// check is a point lookup, so two concurrent registrations can pass it
// together; the unique constraint on users.email catches the loser and is
// reported as ErrEmailTaken as well.
func (a *Auth) Register(ctx context.Context, name, email, password string) error {
	_, err := a.users.GetByEmail(ctx, email)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("register lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	input := usersrepo.CreateUser{
		UserID:       uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if _, err := a.users.Create(ctx, input); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEntry) {
			return ErrEmailTaken
		}
		return fmt.Errorf("register create: %w", err)
	}

	return nil
}

// Login authenticates the credentials and issues a signed token embedding
// the user's email. A missing user and a wrong password are reported
// identically as ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("login lookup: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := a.issueToken(user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}
