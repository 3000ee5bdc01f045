package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thenamakop/taskboard/internal/services"
)

// Only these fields ever cross the creation boundary; timestamps in
// the request body are dropped here so the server stamps its own.
type createTaskRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
	Assignee string `json:"assignee"`
	Starred  bool   `json:"starred"`
	Deadline string `json:"deadline"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		abort(c, newUnauthorizedError("authorization required"))
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newValidationError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		UserID:   userID,
		Title:    req.Title,
		Priority: req.Priority,
		Status:   req.Status,
		Assignee: req.Assignee,
		Starred:  req.Starred,
		Deadline: req.Deadline,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		switch {
		case errors.Is(err, services.ErrTaskTitleRequired),
			errors.Is(err, services.ErrInvalidTaskStatus),
			errors.Is(err, services.ErrInvalidTaskPriority):
			abort(c, newValidationError(err.Error()))
		default:
			abort(c, newInternalError())
		}
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		abort(c, newUnauthorizedError("authorization required"))
		return
	}

	tasks, err := h.tasks.ListTasks(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abort(c, newInternalError())
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// updateTaskRequest accepts the mutable field set; anything else in
// the body never makes it past decoding.
type updateTaskRequest struct {
	Title    *string `json:"title"`
	Priority *string `json:"priority"`
	Status   *string `json:"status"`
	Assignee *string `json:"assignee"`
	Starred  *bool   `json:"starred"`
	Deadline *string `json:"deadline"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		abort(c, newUnauthorizedError("authorization required"))
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		abort(c, newValidationError("no task id provided"))
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newValidationError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.UpdateTask(c, services.UpdateTaskParams{
		ID:       taskID,
		UserID:   userID,
		Title:    req.Title,
		Priority: req.Priority,
		Status:   req.Status,
		Assignee: req.Assignee,
		Starred:  req.Starred,
		Deadline: req.Deadline,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to update task")
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		case errors.Is(err, services.ErrInvalidTaskStatus),
			errors.Is(err, services.ErrInvalidTaskPriority):
			abort(c, newValidationError(err.Error()))
		default:
			abort(c, newInternalError())
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		abort(c, newUnauthorizedError("authorization required"))
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		abort(c, newValidationError("no task id provided"))
		return
	}

	err := h.tasks.DeleteTask(c, services.DeleteTaskParams{
		ID:     taskID,
		UserID: userID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		default:
			abort(c, newInternalError())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
