package services

import (
	"context"
	"errors"
	"time"

	"github.com/thenamakop/taskboard/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskTitleRequired    = errors.New("task title is required")
	ErrInvalidTaskStatus    = errors.New("invalid task status")
	ErrInvalidTaskPriority  = errors.New("invalid task priority")
)

type AuthService interface {
	// Signup creates a user with a hashed password and opens a
	// fresh session for it.
	//
	// It returns ErrUserAlreadyExists if the email is taken.
	Signup(ctx context.Context, params SignupParams) (*AuthResult, error)

	// Login authenticates the user by email and password and opens
	// a fresh session.
	//
	// It returns ErrUserNotFound if no user has the given email or
	// ErrUserPasswordMismatch if the password doesn't match.
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)

	// Logout revokes the session behind the given token. Revoking
	// an unknown token is not an error.
	Logout(ctx context.Context, token string) error

	// GetUser returns the user with the given ID or ErrUserNotFound.
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type SessionService interface {
	// Create issues an opaque bearer token backed by a persisted
	// session record expiring after the configured TTL.
	Create(ctx context.Context, userID string) (*models.Session, error)

	// Resolve looks the session up by token. It returns
	// ErrSessionNotFound for unknown tokens and ErrSessionExpired
	// once the lifetime has passed; callers treat both as absent.
	Resolve(ctx context.Context, token string) (*models.Session, error)

	// Revoke deletes the session record. Idempotent.
	Revoke(ctx context.Context, token string) error
}

type TaskService interface {
	// ListTasks returns the user's tasks in reverse creation order.
	ListTasks(ctx context.Context, userID string) ([]models.Task, error)

	// CreateTask validates and persists a new task, stamping the
	// server-side timestamps. Client-supplied timestamps are ignored.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// UpdateTask applies the non-nil fields of params to the task.
	// Setting status to done stamps the completion time, even when
	// the task is already done; moving away never clears it.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask removes the task or returns ErrTaskNotFound.
	DeleteTask(ctx context.Context, params DeleteTaskParams) error
}

type SignupParams struct {
	Name     string
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type AuthResult struct {
	User      models.User
	Token     string
	ExpiresAt time.Time
}

type CreateTaskParams struct {
	UserID   string
	Title    string
	Priority string
	Status   string
	Assignee string
	Starred  bool
	// Deadline is the raw client input, normalized server-side.
	Deadline string
}

type UpdateTaskParams struct {
	ID     string
	UserID string

	Title    *string
	Priority *string
	Status   *string
	Assignee *string
	Starred  *bool
	Deadline *string
}

type DeleteTaskParams struct {
	ID     string
	UserID string
}
