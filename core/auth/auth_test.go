package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/avelis/taskboard/core/auth"
	"github.com/avelis/taskboard/core/repositories"
	"github.com/avelis/taskboard/core/repositories/usersrepo"
	"github.com/avelis/taskboard/sdk/logger"
)

// memoryStore keeps users in a map keyed by email.
type memoryStore struct {
	users     map[string]usersrepo.User
	createErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: make(map[string]usersrepo.User)}
}

func (s *memoryStore) Create(_ context.Context, input usersrepo.CreateUser) (usersrepo.User, error) {
	if s.createErr != nil {
		return usersrepo.User{}, s.createErr
	}
	if _, exists := s.users[input.Email]; exists {
		return usersrepo.User{}, repositories.ErrDuplicateEntry
	}
	user := usersrepo.User{
		UserID:       input.UserID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    time.Now(),
	}
	s.users[input.Email] = user
	return user, nil
}

func (s *memoryStore) GetByEmail(_ context.Context, email string) (usersrepo.User, error) {
	user, exists := s.users[email]
	if !exists {
		return usersrepo.User{}, repositories.ErrNotFound
	}
	return user, nil
}

func newTestAuth(t *testing.T, store usersrepo.Storer) *auth.Auth {
	t.Helper()
	log := logger.New(io.Discard, slog.LevelError, "test", nil)
	users := usersrepo.NewRepository(log, store)
	cfg := auth.Config{
		SigningKey:  "test-signing-key",
		TokenTTL:    time.Hour,
		TokenIssuer: "taskboard",
	}
	return auth.New(log, users, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	a := newTestAuth(t, newMemoryStore())
	ctx := context.Background()

	if err := a.Register(ctx, "Ada", "ada@example.com", "hunter2"); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := a.Login(ctx, "ada@example.com", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("login returned an empty token")
	}

	email, err := a.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if email != "ada@example.com" {
		t.Fatalf("token email = %q, want %q", email, "ada@example.com")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	a := newTestAuth(t, newMemoryStore())
	ctx := context.Background()

	if err := a.Register(ctx, "Ada", "ada@example.com", "hunter2"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	err := a.Register(ctx, "Ada Again", "ada@example.com", "other")
	if !errors.Is(err, auth.ErrEmailTaken) {
		t.Fatalf("second register err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterDuplicateRace(t *testing.T) {
	// The store reports a constraint violation even though the pre-check
	// passed, as happens when two registrations interleave.
	store := newMemoryStore()
	store.createErr = repositories.ErrDuplicateEntry
	a := newTestAuth(t, store)

	err := a.Register(context.Background(), "Ada", "ada@example.com", "hunter2")
	if !errors.Is(err, auth.ErrEmailTaken) {
		t.Fatalf("register err = %v, want ErrEmailTaken", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	a := newTestAuth(t, newMemoryStore())
	ctx := context.Background()

	if err := a.Register(ctx, "Ada", "ada@example.com", "hunter2"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := a.Login(ctx, "ada@example.com", "wrong")
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("login err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	a := newTestAuth(t, newMemoryStore())

	_, err := a.Login(context.Background(), "nobody@example.com", "hunter2")
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("login err = %v, want ErrInvalidCredentials", err)
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	a := newTestAuth(t, newMemoryStore())
	ctx := context.Background()

	if err := a.Register(ctx, "Ada", "ada@example.com", "hunter2"); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := a.Login(ctx, "ada@example.com", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := a.ParseToken(token + "x"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("parse tampered token err = %v, want ErrInvalidToken", err)
	}
	if _, err := a.ParseToken("not-a-token"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("parse garbage err = %v, want ErrInvalidToken", err)
	}
}
