package domain

import (
	"context"
	"time"
)

type Task struct {
	ID          string     `gorm:"primaryKey;size:36"`
	OwnerID     string     `gorm:"column:user_id;size:36;index;not null"`
	Title       string     `gorm:"size:255;not null"`
	Description string     `gorm:"size:500"`
	DueDate     *time.Time `gorm:"type:date"`
	Completed   bool       `gorm:"not null;default:false"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

func (Task) TableName() string { return "tasks" }

// TaskPatch carries the fields of a partial update. Nil means "leave as is";
// ClearDueDate removes the due date (an empty dueDate string on the wire).
type TaskPatch struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Completed    *bool
}

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	ListByOwner(ctx context.Context, ownerID string) ([]Task, error)

	// UpdateOwned and DeleteOwned evaluate the owner predicate inside the
	// store statement itself (WHERE id = ? AND user_id = ?). Zero affected
	// rows yields ErrNotFoundOrForbidden.
	UpdateOwned(ctx context.Context, id, ownerID string, patch TaskPatch) error
	DeleteOwned(ctx context.Context, id, ownerID string) error
}
