package dto

import "task-tracker.com/task-tracker/pkg/optional"

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// UpdateTaskRequest keeps completed loosely typed until validation coerces it.
type UpdateTaskRequest struct {
	Title       optional.Field[string]  `json:"title,omitzero"`
	Description optional.Field[*string] `json:"description,omitzero"`
	Completed   optional.Field[any]     `json:"completed,omitzero"`
}

type DeleteTaskResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Database string `json:"database"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
