package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"task-tracker.com/task-tracker/internal/coerce"
	"task-tracker.com/task-tracker/pkg/optional"
)

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 1000
)

var (
	inputValidator = validator.New()

	titleRule       = fmt.Sprintf("required,max=%d", MaxTitleLength)
	descriptionRule = fmt.Sprintf("max=%d", MaxDescriptionLength)
)

type CreateTaskInput struct {
	Title       string
	Description string
}

// UpdateTaskInput sets only the fields to change. An empty Description
// clears it. Completed takes a bool or any of its loose spellings.
type UpdateTaskInput struct {
	Title       optional.Field[string]
	Description optional.Field[string]
	Completed   optional.Field[any]
}

type createTaskBody struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type updateTaskBody struct {
	Title       optional.Field[string]  `json:"title,omitzero"`
	Description optional.Field[*string] `json:"description,omitzero"`
	Completed   optional.Field[bool]    `json:"completed,omitzero"`
}

func (in CreateTaskInput) body() (createTaskBody, error) {
	title, err := checkTitle(in.Title)
	if err != nil {
		return createTaskBody{}, err
	}
	description, err := checkDescription(in.Description)
	if err != nil {
		return createTaskBody{}, err
	}
	return createTaskBody{Title: title, Description: description}, nil
}

func (in UpdateTaskInput) body() (updateTaskBody, error) {
	if !in.Title.Set && !in.Description.Set && !in.Completed.Set {
		return updateTaskBody{}, validationError("Task data is required")
	}

	var out updateTaskBody
	if raw, ok := in.Title.Get(); ok {
		title, err := checkTitle(raw)
		if err != nil {
			return updateTaskBody{}, err
		}
		out.Title = optional.Of(title)
	}
	if raw, ok := in.Description.Get(); ok {
		description, err := checkDescription(raw)
		if err != nil {
			return updateTaskBody{}, err
		}
		out.Description = optional.Of(description)
	}
	if raw, ok := in.Completed.Get(); ok {
		completed, err := coerce.Bool(raw)
		if err != nil {
			return updateTaskBody{}, validationError(fmt.Sprintf("Task completed must be true or false, got %v", raw))
		}
		out.Completed = optional.Of(completed)
	}
	return out, nil
}

func checkTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if err := inputValidator.Var(title, titleRule); err != nil {
		return "", fieldError("title", err)
	}
	return title, nil
}

// checkDescription trims the description; blank becomes nil so it is sent
// as null.
func checkDescription(raw string) (*string, error) {
	description := strings.TrimSpace(raw)
	if err := inputValidator.Var(description, descriptionRule); err != nil {
		return nil, fieldError("description", err)
	}
	if description == "" {
		return nil, nil
	}
	return &description, nil
}

func fieldError(field string, err error) *Error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Tag() {
		case "required":
			return validationError(fmt.Sprintf("Task %s is required", field))
		case "max":
			return validationError(fmt.Sprintf("Task %s must be at most %s characters", field, fieldErrs[0].Param()))
		}
	}
	return validationError(fmt.Sprintf("Task %s is invalid", field))
}
