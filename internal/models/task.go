package model

import (
	"strings"
	"time"

	"task-tracker.com/task-tracker/pkg/optional"
)

type Task struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// TaskPatch carries the fields an update touches. Unset fields keep their
// stored value; a set Description of nil clears it.
type TaskPatch struct {
	Title       optional.Field[string]
	Description optional.Field[*string]
	Completed   optional.Field[bool]
}

func (p TaskPatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Completed.Set
}

// NormalizeDescription trims the description and maps blank to nil.
func NormalizeDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
