package services

import (
	"context"
	"strings"
	"time"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/internal/logger"
	model "task-tracker.com/task-tracker/internal/models"
	repository "task-tracker.com/task-tracker/internal/repositories"
)

const healthPingTimeout = time.Second

type TaskService struct {
	repo *repository.TaskRepository
}

func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, title string, description *string) (*model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.ErrTitleRequired
	}

	task, err := s.repo.CreateTask(ctx, title, model.NormalizeDescription(description))
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "task created", "task_id", task.ID)
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx)
}

// UpdateTask normalises the patch and applies it. A set title must stay
// non-blank; a set description that is blank clears the stored one.
func (s *TaskService) UpdateTask(ctx context.Context, id uint, patch model.TaskPatch) (*model.Task, error) {
	if title, ok := patch.Title.Get(); ok {
		title = strings.TrimSpace(title)
		if title == "" {
			return nil, apperrors.ErrTitleRequired
		}
		patch.Title.Value = title
	}
	if description, ok := patch.Description.Get(); ok {
		patch.Description.Value = model.NormalizeDescription(description)
	}

	task, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "task updated",
		"task_id", task.ID,
		"title_set", patch.Title.Set,
		"description_set", patch.Description.Set,
		"completed_set", patch.Completed.Set,
	)
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.InfoContext(ctx, "task deleted", "task_id", id)
	return nil
}

// DatabaseUp reports whether the store answers a ping within a second.
func (s *TaskService) DatabaseUp(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	if err := s.repo.Ping(ctx); err != nil {
		logger.WarnContext(ctx, "database ping failed", "error", err)
		return false
	}
	return true
}
