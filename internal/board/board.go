// Package board keeps a client's view of the task list in sync with the
// server's answers to its own mutations.
package board

import (
	"fmt"
	"sync"

	model "task-tracker.com/task-tracker/internal/models"
)

// Board is the in-memory list. Mutations are applied only after the server
// accepted them, using the row it returned.
type Board struct {
	mu     sync.RWMutex
	tasks  []model.Task
	loaded bool
}

func New() *Board {
	return &Board{}
}

// Load replaces the whole list, as on first load or refresh.
func (b *Board) Load(tasks []model.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tasks = append([]model.Task(nil), tasks...)
	b.loaded = true
}

func (b *Board) Loaded() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loaded
}

// Added puts a freshly created task at the top of the list.
func (b *Board) Added(task model.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tasks = append([]model.Task{task}, b.tasks...)
}

// Updated swaps in the server's copy of a task. Unknown ids are ignored.
func (b *Board) Updated(task model.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.tasks {
		if b.tasks[i].ID == task.ID {
			b.tasks[i] = task
			return
		}
	}
}

func (b *Board) Deleted(id uint) {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.tasks[:0]
	for _, task := range b.tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	b.tasks = kept
}

// Snapshot returns a copy safe to use without the lock.
func (b *Board) Snapshot() []model.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return append([]model.Task(nil), b.tasks...)
}

func (b *Board) Find(id uint) (model.Task, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, task := range b.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return model.Task{}, false
}

// Partition splits tasks into pending and completed, keeping order.
func Partition(tasks []model.Task) (pending, completed []model.Task) {
	for _, task := range tasks {
		if task.Completed {
			completed = append(completed, task)
		} else {
			pending = append(pending, task)
		}
	}
	return pending, completed
}

type Summary struct {
	Total     int
	Completed int
	Percent   int
}

func Summarize(tasks []model.Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			s.Completed++
		}
	}
	if s.Total > 0 {
		s.Percent = (s.Completed*100 + s.Total/2) / s.Total
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d of %d tasks completed (%d%%)", s.Completed, s.Total, s.Percent)
}
