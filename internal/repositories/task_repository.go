package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
)

type TaskRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *TaskRepository) CreateTask(ctx context.Context, title string, description *string) (*model.Task, error) {
	now := r.now()
	task := &model.Task{
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	return findTask(r.db.WithContext(ctx), id)
}

// List returns every task, newest first. id breaks created_at ties so the
// order is stable across reads.
func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	tasks := []model.Task{}
	err := r.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update applies the set fields of patch and returns the row as re-read
// after the write. updated_at always moves forward, even for an empty patch.
func (r *TaskRepository) Update(ctx context.Context, id uint, patch model.TaskPatch) (*model.Task, error) {
	var updated *model.Task

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findTask(tx, id)
		if err != nil {
			return err
		}

		columns := map[string]interface{}{
			"updated_at": r.nextUpdatedAt(current.UpdatedAt),
		}
		if title, ok := patch.Title.Get(); ok {
			columns["title"] = title
		}
		if description, ok := patch.Description.Get(); ok {
			if description == nil {
				columns["description"] = nil
			} else {
				columns["description"] = *description
			}
		}
		if completed, ok := patch.Completed.Get(); ok {
			columns["completed"] = completed
		}

		res := tx.Model(&model.Task{}).Where("id = ?", id).Updates(columns)
		if res.Error != nil {
			return fmt.Errorf("update task %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrTaskNotFound
		}

		updated, err = findTask(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// nextUpdatedAt keeps updated_at strictly increasing when the clock has not
// moved past the stored value.
func (r *TaskRepository) nextUpdatedAt(previous time.Time) time.Time {
	now := r.now()
	if !now.After(previous) {
		return previous.Add(time.Microsecond)
	}
	return now
}

func findTask(db *gorm.DB, id uint) (*model.Task, error) {
	var task model.Task
	err := db.First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task %d: %w", id, err)
	}
	return &task, nil
}
