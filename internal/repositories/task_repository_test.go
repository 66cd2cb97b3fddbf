package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
	"task-tracker.com/task-tracker/pkg/optional"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&model.Task{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func strPtr(s string) *string { return &s }

func TestTaskRepository_CreateSetsDefaults(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	task, err := repo.CreateTask(ctx, "Buy milk", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if task.ID == 0 {
		t.Error("expected id to be assigned")
	}
	if task.Completed {
		t.Error("new task must not be completed")
	}
	if task.Description != nil {
		t.Errorf("expected nil description, got %q", *task.Description)
	}
	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Errorf("created_at %v != updated_at %v", task.CreatedAt, task.UpdatedAt)
	}

	stored, err := repo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Title != "Buy milk" {
		t.Errorf("title = %q", stored.Title)
	}
}

func TestTaskRepository_FindByIDNotFound(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))

	_, err := repo.FindByID(context.Background(), 42)
	if !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskRepository_ListNewestFirstWithStableTies(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	for _, title := range []string{"first", "second", "third"} {
		if _, err := repo.CreateTask(ctx, title, nil); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	repo.now = func() time.Time { return fixed.Add(time.Hour) }
	if _, err := repo.CreateTask(ctx, "latest", nil); err != nil {
		t.Fatalf("create latest: %v", err)
	}

	want := []string{"latest", "third", "second", "first"}
	for round := 0; round < 2; round++ {
		tasks, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(tasks) != len(want) {
			t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
		}
		for i, task := range tasks {
			if task.Title != want[i] {
				t.Errorf("round %d position %d: got %q, want %q", round, i, task.Title, want[i])
			}
		}
	}
}

func TestTaskRepository_ListEmpty(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))

	tasks, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", tasks)
	}
}

func TestTaskRepository_UpdateOnlyTouchesSetFields(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	created, err := repo.CreateTask(ctx, "Write report", strPtr("draft"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.Update(ctx, created.ID, model.TaskPatch{Completed: optional.Of(true)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if !updated.Completed {
		t.Error("expected completed to be true")
	}
	if updated.Title != "Write report" {
		t.Errorf("title changed to %q", updated.Title)
	}
	if updated.Description == nil || *updated.Description != "draft" {
		t.Errorf("description changed to %v", updated.Description)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created_at changed from %v to %v", created.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updated_at %v not after %v", updated.UpdatedAt, created.UpdatedAt)
	}
}

func TestTaskRepository_UpdateClearsDescription(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	created, err := repo.CreateTask(ctx, "Call mom", strPtr("sunday"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.Update(ctx, created.ID, model.TaskPatch{Description: optional.Of[*string](nil)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Description != nil {
		t.Errorf("expected description to be cleared, got %q", *updated.Description)
	}
}

func TestTaskRepository_UpdateAdvancesUpdatedAtWhenClockStalls(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	created, err := repo.CreateTask(ctx, "Stalled clock", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := repo.Update(ctx, created.ID, model.TaskPatch{})
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	second, err := repo.Update(ctx, created.ID, model.TaskPatch{})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	if !first.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("first update did not advance updated_at: %v", first.UpdatedAt)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("second update did not advance updated_at: %v", second.UpdatedAt)
	}
	if second.Title != "Stalled clock" || second.Completed {
		t.Errorf("empty patch changed fields: %+v", second)
	}
}

func TestTaskRepository_UpdateNotFound(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))

	_, err := repo.Update(context.Background(), 999, model.TaskPatch{Title: optional.Of("X")})
	if !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskRepository_Delete(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	created, err := repo.CreateTask(ctx, "Throw away", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, created.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected deleted task to be gone, got %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("second delete: expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskRepository_Ping(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))

	if err := repo.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
