package validators

import (
	"strings"

	"task-tracker.com/task-tracker/internal/coerce"
	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
	"task-tracker.com/task-tracker/pkg/optional"
)

// ValidateUpdateTaskRequest turns the wire request into a domain patch.
// A present title must be non-blank and a present completed must coerce
// to a boolean.
func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) (model.TaskPatch, error) {
	patch := model.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
	}

	if title, ok := r.Title.Get(); ok && strings.TrimSpace(title) == "" {
		return model.TaskPatch{}, apperrors.ErrTitleRequired
	}

	if raw, ok := r.Completed.Get(); ok {
		completed, err := coerce.Bool(raw)
		if err != nil {
			return model.TaskPatch{}, apperrors.ErrInvalidCompleted
		}
		patch.Completed = optional.Of(completed)
	}

	return patch, nil
}
