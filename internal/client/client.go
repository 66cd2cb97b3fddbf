// Package client talks to the task API. It normalises input before it is
// sent and turns every failure into an *Error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	dto "task-tracker.com/task-tracker/internal/data_models"
	model "task-tracker.com/task-tracker/internal/models"
)

const DefaultTimeout = 5 * time.Second

type Options struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	tasks := []model.Task{}
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	if id == 0 {
		return nil, validationError("Task ID is required")
	}
	var task model.Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) CreateTask(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	body, err := in.body()
	if err != nil {
		return nil, err
	}
	var task model.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id uint, in UpdateTaskInput) (*model.Task, error) {
	if id == 0 {
		return nil, validationError("Task ID is required")
	}
	body, err := in.body()
	if err != nil {
		return nil, err
	}
	var task model.Task
	if err := c.do(ctx, http.MethodPut, taskPath(id), body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id uint) error {
	if id == 0 {
		return validationError("Task ID is required")
	}
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

func (c *Client) Health(ctx context.Context) (*dto.HealthResponse, error) {
	var health dto.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func taskPath(id uint) string {
	return fmt.Sprintf("/tasks/%d", id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportError(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return responseError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{
			Message: fmt.Sprintf("invalid response from task server: %v", err),
			Status:  resp.StatusCode,
		}
	}
	return nil
}

func (c *Client) transportError(err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Message: fmt.Sprintf("request timed out after %s", c.timeout)}
	}
	if errors.Is(err, context.Canceled) {
		return &Error{Message: "request canceled"}
	}
	return &Error{Message: fmt.Sprintf("unable to reach task server at %s", c.baseURL)}
}

func responseError(status int, data []byte) *Error {
	clientErr := &Error{
		Message: http.StatusText(status),
		Status:  status,
	}
	if json.Valid(data) {
		clientErr.Payload = json.RawMessage(data)

		var body dto.ErrorResponse
		if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
			clientErr.Message = body.Error
		}
	}
	return clientErr
}
