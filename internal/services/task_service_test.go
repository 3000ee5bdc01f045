package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/thenamakop/taskboard/internal/models"
)

// Validation runs before any store access, so these paths are
// exercised without a database behind the service.

func newValidationOnlyTaskService(t *testing.T) TaskService {
	t.Helper()
	return NewTaskService(zerolog.Nop(), nil, nil)
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	svc := newValidationOnlyTaskService(t)

	_, err := svc.CreateTask(context.Background(), CreateTaskParams{
		UserID: "u1",
	})
	if !errors.Is(err, ErrTaskTitleRequired) {
		t.Errorf("CreateTask() error = %v; want ErrTaskTitleRequired", err)
	}
}

func TestCreateTaskRejectsInvalidFields(t *testing.T) {
	svc := newValidationOnlyTaskService(t)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, CreateTaskParams{
		UserID:   "u1",
		Title:    "Ship v2",
		Priority: "Urgent",
	})
	if !errors.Is(err, ErrInvalidTaskPriority) {
		t.Errorf("CreateTask() error = %v; want ErrInvalidTaskPriority", err)
	}

	_, err = svc.CreateTask(ctx, CreateTaskParams{
		UserID: "u1",
		Title:  "Ship v2",
		Status: "archived",
	})
	if !errors.Is(err, ErrInvalidTaskStatus) {
		t.Errorf("CreateTask() error = %v; want ErrInvalidTaskStatus", err)
	}
}

func TestUpdateTaskRejectsInvalidFields(t *testing.T) {
	svc := newValidationOnlyTaskService(t)
	ctx := context.Background()

	badPriority := "critical"
	_, err := svc.UpdateTask(ctx, UpdateTaskParams{
		ID:       "t1",
		UserID:   "u1",
		Priority: &badPriority,
	})
	if !errors.Is(err, ErrInvalidTaskPriority) {
		t.Errorf("UpdateTask() error = %v; want ErrInvalidTaskPriority", err)
	}

	badStatus := "paused"
	_, err = svc.UpdateTask(ctx, UpdateTaskParams{
		ID:     "t1",
		UserID: "u1",
		Status: &badStatus,
	})
	if !errors.Is(err, ErrInvalidTaskStatus) {
		t.Errorf("UpdateTask() error = %v; want ErrInvalidTaskStatus", err)
	}
}

func TestUpdateTaskAcceptsCanonicalStatuses(t *testing.T) {
	// Sanity against drift between the columns and the validator.
	for _, status := range models.Statuses() {
		if !models.ValidTaskStatus(status) {
			t.Errorf("status %q rejected by validator", status)
		}
	}
}
