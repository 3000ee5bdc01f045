// Package board holds the client-side task board state and keeps it
// reconciled with the server.
//
// Two mutation strategies coexist: status moves and star toggles
// apply locally first and reconcile afterwards, while create, edit
// and delete wait for server confirmation before touching local
// state.
package board

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/thenamakop/taskboard/internal/models"
)

var ErrUnknownTask = errors.New("unknown task id")

// API is the server surface the client syncs against.
type API interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, params CreateParams) (*models.Task, error)
	UpdateTask(ctx context.Context, taskID string, patch TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
}

type CreateParams struct {
	Title    string `json:"title"`
	Priority string `json:"priority,omitempty"`
	Status   string `json:"status,omitempty"`
	Assignee string `json:"assignee,omitempty"`
	Starred  bool   `json:"starred,omitempty"`
	Deadline string `json:"deadline,omitempty"`
}

// TaskPatch carries only the fields being changed. Nil means leave
// the server value alone.
type TaskPatch struct {
	Title    *string `json:"title,omitempty"`
	Priority *string `json:"priority,omitempty"`
	Status   *string `json:"status,omitempty"`
	Assignee *string `json:"assignee,omitempty"`
	Starred  *bool   `json:"starred,omitempty"`
	Deadline *string `json:"deadline,omitempty"`
}

// Client owns the in-memory task list for the session, newest first
// to match server list order. It is not safe for concurrent use;
// like the UI it stands in for, it runs one gesture at a time.
type Client struct {
	logger   zerolog.Logger
	api      API
	onRender func(View)
	tasks    []models.Task
}

// NewClient returns a client with empty state. onRender is invoked
// with a freshly computed view after load and after every mutation,
// including rollbacks; it may be nil.
func NewClient(logger zerolog.Logger, api API, onRender func(View)) *Client {
	return &Client{
		logger:   logger,
		api:      api,
		onRender: onRender,
	}
}

// Load fetches the task list once. On failure the previous (or
// empty) state is kept and still rendered, so the board degrades
// instead of disappearing.
func (c *Client) Load(ctx context.Context) error {
	tasks, err := c.api.ListTasks(ctx)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Msg("failed to load tasks, keeping current state")
		c.render()
		return err
	}

	c.tasks = tasks
	c.render()
	return nil
}

// Tasks returns a copy of the current local state.
func (c *Client) Tasks() []models.Task {
	out := make([]models.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// MoveTask handles a drag to another column: set the status locally,
// re-render, then confirm with the server. A failed call reverts the
// status and renders again. Single attempt, no retry; the user
// re-drags.
func (c *Client) MoveTask(ctx context.Context, taskID, status string) error {
	i := c.find(taskID)
	if i < 0 {
		return ErrUnknownTask
	}

	previousStatus := c.tasks[i].Status
	if previousStatus == status {
		return nil
	}

	c.tasks[i].Status = status
	c.render()

	updated, err := c.api.UpdateTask(ctx, taskID, TaskPatch{Status: &status})
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("task_id", taskID).
			Str("status", status).
			Msg("status update rejected, rolling back")
		c.tasks[i].Status = previousStatus
		c.render()
		return err
	}

	c.merge(i, updated)
	c.render()
	return nil
}

// ToggleStar flips the pin flag locally and fires the update without
// waiting. A failure is logged and ignored; the flag stays flipped.
// Pinning is low stakes and self-corrects on the next load.
func (c *Client) ToggleStar(ctx context.Context, taskID string) {
	i := c.find(taskID)
	if i < 0 {
		return
	}

	starred := !c.tasks[i].Starred
	c.tasks[i].Starred = starred
	c.render()

	updated, err := c.api.UpdateTask(ctx, taskID, TaskPatch{Starred: &starred})
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("task_id", taskID).
			Msg("star update failed")
		return
	}
	c.merge(i, updated)
}

// CreateTask sends the payload and only on success inserts the
// server-returned record, with its server-stamped timestamps, at the
// front of the list. Nothing is shown for a failed create.
func (c *Client) CreateTask(ctx context.Context, params CreateParams) (*models.Task, error) {
	created, err := c.api.CreateTask(ctx, params)
	if err != nil {
		return nil, err
	}

	c.tasks = append([]models.Task{*created}, c.tasks...)
	c.render()
	return created, nil
}

// EditTask sends the edited field set and merges the server response
// into the local record on success only. On failure local state and
// the rendered card stay untouched; the caller surfaces the notice.
func (c *Client) EditTask(ctx context.Context, taskID string, patch TaskPatch) (*models.Task, error) {
	i := c.find(taskID)
	if i < 0 {
		return nil, ErrUnknownTask
	}

	updated, err := c.api.UpdateTask(ctx, taskID, patch)
	if err != nil {
		return nil, err
	}

	c.merge(i, updated)
	c.render()
	return updated, nil
}

// DeleteTask confirms with the server before removing anything
// locally. A task is never optimistically removed.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	i := c.find(taskID)
	if i < 0 {
		return ErrUnknownTask
	}

	if err := c.api.DeleteTask(ctx, taskID); err != nil {
		return err
	}

	c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
	c.render()
	return nil
}

func (c *Client) find(taskID string) int {
	for i := range c.tasks {
		if c.tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

// merge replaces the local record with the server's version, keeping
// its position in the list.
func (c *Client) merge(i int, task *models.Task) {
	if task == nil {
		return
	}
	c.tasks[i] = *task
}

func (c *Client) render() {
	if c.onRender == nil {
		return
	}
	c.onRender(BuildView(c.tasks, time.Now()))
}
