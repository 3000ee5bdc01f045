package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/thenamakop/taskboard/internal/cache"
	"github.com/thenamakop/taskboard/internal/models"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
	cache  *cache.TaskCache
	group  singleflight.Group
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
	taskCache *cache.TaskCache,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		pgPool: pgPool,
		cache:  taskCache,
	}
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	if s.cache != nil {
		cached, err := s.cache.GetList(ctx, userID)
		if err != nil {
			// Cache trouble never fails the request.
			s.logger.Warn().
				Err(err).
				Msg("task list cache read failed")
		} else if cached != nil {
			s.logger.Debug().
				Int("count", len(cached)).
				Str("user_id", userID).
				Msg("task list cache hit")
			return cached, nil
		}
	}

	v, err, _ := s.group.Do(userID, func() (any, error) {
		return s.listTasksFromStore(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Task), nil
}

func (s *taskServiceImpl) listTasksFromStore(ctx context.Context, userID string) ([]models.Task, error) {
	const selectTasksByUserIDQuery = `
SELECT id,
       title,
       priority,
       status,
       assignee,
       starred,
       created_at,
       assigned_at,
       assigned_at_display,
       deadline,
       completed_at,
       completed_at_display
FROM tasks
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := s.pgPool.Query(
		ctx,
		selectTasksByUserIDQuery,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks by user id")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		task := models.Task{UserID: userID}
		var completedAtDisplay *string
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Priority,
			&task.Status,
			&task.Assignee,
			&task.Starred,
			&task.CreatedAt,
			&task.AssignedAt,
			&task.AssignedAtDisplay,
			&task.Deadline,
			&task.CompletedAt,
			&completedAtDisplay,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		if completedAtDisplay != nil {
			task.CompletedAtDisplay = *completedAtDisplay
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, userID, tasks); err != nil {
			s.logger.Warn().
				Err(err).
				Msg("task list cache write failed")
		}
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("selected tasks by user id")
	return tasks, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	if params.Title == "" {
		return nil, ErrTaskTitleRequired
	}

	if params.Priority == "" {
		params.Priority = models.PriorityMedium
	} else if !models.ValidTaskPriority(params.Priority) {
		return nil, ErrInvalidTaskPriority
	}

	if params.Status == "" {
		params.Status = models.StatusBacklog
	} else if !models.ValidTaskStatus(params.Status) {
		return nil, ErrInvalidTaskStatus
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}

	// Timestamps are stamped here; any client-supplied value was
	// already discarded at the request boundary.
	now := time.Now()
	task := &models.Task{
		ID:                taskUUID.String(),
		UserID:            params.UserID,
		Title:             params.Title,
		Priority:          params.Priority,
		Status:            params.Status,
		Assignee:          params.Assignee,
		Starred:           params.Starred,
		CreatedAt:         now,
		AssignedAt:        now,
		AssignedAtDisplay: models.DisplayTime(now),
		Deadline:          models.ParseDeadline(params.Deadline),
	}
	if task.Status == models.StatusDone {
		task.CompletedAt = &now
		task.CompletedAtDisplay = models.DisplayTime(now)
	}

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   user_id,
                   title,
                   priority,
                   status,
                   assignee,
                   starred,
                   created_at,
                   assigned_at,
                   assigned_at_display,
                   deadline,
                   completed_at,
                   completed_at_display)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.UserID,
		task.Title,
		task.Priority,
		task.Status,
		task.Assignee,
		task.Starred,
		task.CreatedAt,
		task.AssignedAt,
		task.AssignedAtDisplay,
		task.Deadline,
		task.CompletedAt,
		nullableDisplay(task.CompletedAtDisplay),
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.invalidateCache(ctx, task.UserID)

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	if params.Priority != nil && !models.ValidTaskPriority(*params.Priority) {
		return nil, ErrInvalidTaskPriority
	}
	if params.Status != nil && !models.ValidTaskStatus(*params.Status) {
		return nil, ErrInvalidTaskStatus
	}

	task := &models.Task{
		ID:     params.ID,
		UserID: params.UserID,
	}

	// Read-modify-write without a version token; concurrent writers
	// against the same task are last write wins.
	const selectTaskQuery = `
SELECT title,
       priority,
       status,
       assignee,
       starred,
       created_at,
       assigned_at,
       assigned_at_display,
       deadline,
       completed_at,
       completed_at_display
FROM tasks
WHERE id = $1 AND user_id = $2
`
	var completedAtDisplay *string
	err := s.pgPool.QueryRow(
		ctx,
		selectTaskQuery,
		task.ID,
		task.UserID,
	).Scan(
		&task.Title,
		&task.Priority,
		&task.Status,
		&task.Assignee,
		&task.Starred,
		&task.CreatedAt,
		&task.AssignedAt,
		&task.AssignedAtDisplay,
		&task.Deadline,
		&task.CompletedAt,
		&completedAtDisplay,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("task_id", task.ID).
				Str("user_id", task.UserID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to select task")
		return nil, err
	}
	if completedAtDisplay != nil {
		task.CompletedAtDisplay = *completedAtDisplay
	}

	if params.Title != nil {
		task.Title = *params.Title
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}
	if params.Assignee != nil {
		task.Assignee = *params.Assignee
	}
	if params.Starred != nil {
		task.Starred = *params.Starred
	}
	if params.Deadline != nil {
		task.Deadline = models.ParseDeadline(*params.Deadline)
	}
	if params.Status != nil {
		task.Status = *params.Status
		// Completion is stamped on every transition into done, even
		// re-entry, and never cleared on the way out.
		if task.Status == models.StatusDone {
			now := time.Now()
			task.CompletedAt = &now
			task.CompletedAtDisplay = models.DisplayTime(now)
		}
	}

	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    priority = $2,
    status = $3,
    assignee = $4,
    starred = $5,
    deadline = $6,
    completed_at = $7,
    completed_at_display = $8
WHERE id = $9 AND user_id = $10
`
	_, err = s.pgPool.Exec(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Priority,
		task.Status,
		task.Assignee,
		task.Starred,
		task.Deadline,
		task.CompletedAt,
		nullableDisplay(task.CompletedAtDisplay),
		task.ID,
		task.UserID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}

	s.invalidateCache(ctx, task.UserID)

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, params DeleteTaskParams) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND user_id = $2
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		params.ID,
		params.UserID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Str("task_id", params.ID).
			Str("user_id", params.UserID).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.invalidateCache(ctx, params.UserID)

	s.logger.Info().
		Str("task_id", params.ID).
		Str("user_id", params.UserID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) invalidateCache(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn().
			Err(err).
			Str("user_id", userID).
			Msg("task list cache invalidation failed")
	}
}

func nullableDisplay(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
