package repo

import (
	"context"

	"gorm.io/gorm"

	"go-task-manager/internal/domain"
)

type TaskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) *TaskRepo { return &TaskRepo{db: db} }

func (r *TaskRepo) Create(ctx context.Context, t *domain.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("due_date IS NULL, due_date ASC").
		Find(&tasks).Error
	return tasks, err
}

// UpdateOwned runs a single UPDATE carrying both id and owner in the WHERE
// clause. The ownership check and the mutation are one atomic statement, so
// a concurrent non-owner can never slip between a check and a write.
func (r *TaskRepo) UpdateOwned(ctx context.Context, id, ownerID string, patch domain.TaskPatch) error {
	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.DueDate != nil {
		updates["due_date"] = *patch.DueDate
	} else if patch.ClearDueDate {
		updates["due_date"] = nil
	}
	if patch.Completed != nil {
		updates["completed"] = *patch.Completed
	}
	if len(updates) == 0 {
		return domain.Invalid("no fields to update")
	}

	res := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	// Zero rows is deliberately ambiguous: "missing" and "not yours" must
	// stay indistinguishable to the caller.
	if res.RowsAffected == 0 {
		return domain.ErrNotFoundOrForbidden
	}
	return nil
}

func (r *TaskRepo) DeleteOwned(ctx context.Context, id, ownerID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&domain.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFoundOrForbidden
	}
	return nil
}

var (
	_ domain.TaskRepository = (*TaskRepo)(nil)
	_ domain.UserRepository = (*UserRepo)(nil)
)
