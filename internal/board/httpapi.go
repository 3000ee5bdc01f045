package board

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/thenamakop/taskboard/internal/models"
)

// StatusError is a structured API failure decoded from the server's
// error body.
type StatusError struct {
	Code    int
	Kind    string
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Code, e.Kind, e.Message)
}

// BearerAPI implements API against the REST surface, carrying the
// session token as an Authorization: Bearer header.
type BearerAPI struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewBearerAPI(baseURL, token string) *BearerAPI {
	return &BearerAPI{
		baseURL: baseURL,
		token:   token,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (a *BearerAPI) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	err := a.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (a *BearerAPI) CreateTask(ctx context.Context, params CreateParams) (*models.Task, error) {
	task := new(models.Task)
	err := a.do(ctx, http.MethodPost, "/api/tasks", params, task)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (a *BearerAPI) UpdateTask(ctx context.Context, taskID string, patch TaskPatch) (*models.Task, error) {
	task := new(models.Task)
	err := a.do(ctx, http.MethodPatch, "/api/tasks/"+taskID, patch, task)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (a *BearerAPI) DeleteTask(ctx context.Context, taskID string) error {
	return a.do(ctx, http.MethodDelete, "/api/tasks/"+taskID, nil, nil)
}

func (a *BearerAPI) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &StatusError{
			Code: resp.StatusCode,
			Kind: "internal",
		}
		var failure struct {
			Error string `json:"error"`
			Kind  string `json:"kind"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil {
			apiErr.Message = failure.Error
			if failure.Kind != "" {
				apiErr.Kind = failure.Kind
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
