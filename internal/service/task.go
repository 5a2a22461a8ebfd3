package service

import (
	"context"
	"strings"
	"time"

	"go-task-manager/internal/domain"
	"go-task-manager/pkg/utils"
)

const (
	dateLayout        = "2006-01-02"
	maxDescriptionLen = 500
)

type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     string // "" or YYYY-MM-DD
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *string // nil = unchanged, "" = clear
	Completed   any     // raw wire value, parsed strictly
}

type TaskService struct {
	tasks domain.TaskRepository
	now   func() time.Time
}

func NewTaskService(tasks domain.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks, now: time.Now}
}

// Create stores a task owned by ownerID. The owner is always the id the
// caller resolved from the verified token (or, on the admin path, an
// explicit target user id) — never a field of the request body.
func (s *TaskService) Create(ctx context.Context, ownerID string, in CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.Invalid("title is required")
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, domain.Invalid("description must be at most 500 characters")
	}

	var due *time.Time
	if in.DueDate != "" {
		d, err := parseDate(in.DueDate)
		if err != nil {
			return nil, err
		}
		// Tasks are forward-looking; backdating is rejected at creation.
		if d.Before(s.today()) {
			return nil, domain.Invalid("due date cannot be in the past")
		}
		due = &d
	}

	t := &domain.Task{
		ID:          utils.NewID(),
		OwnerID:     ownerID,
		Title:       title,
		Description: in.Description,
		DueDate:     due,
		Completed:   false,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID)
}

// Update applies a partial patch through the ownership-conditioned store
// statement. Past due dates are accepted here: only creation enforces the
// not-before-today rule.
func (s *TaskService) Update(ctx context.Context, id, ownerID string, in UpdateTaskInput) error {
	var patch domain.TaskPatch

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return domain.Invalid("title cannot be empty")
		}
		patch.Title = &title
	}
	if in.Description != nil {
		if len(*in.Description) > maxDescriptionLen {
			return domain.Invalid("description must be at most 500 characters")
		}
		patch.Description = in.Description
	}
	if in.DueDate != nil {
		if *in.DueDate == "" {
			patch.ClearDueDate = true
		} else {
			d, err := parseDate(*in.DueDate)
			if err != nil {
				return err
			}
			patch.DueDate = &d
		}
	}
	if in.Completed != nil {
		b, err := ParseCompleted(in.Completed)
		if err != nil {
			return err
		}
		patch.Completed = &b
	}

	if patch.Title == nil && patch.Description == nil && patch.DueDate == nil &&
		!patch.ClearDueDate && patch.Completed == nil {
		return domain.Invalid("no fields to update")
	}

	return s.tasks.UpdateOwned(ctx, id, ownerID, patch)
}

func (s *TaskService) Delete(ctx context.Context, id, ownerID string) error {
	return s.tasks.DeleteOwned(ctx, id, ownerID)
}

// ParseCompleted turns the accepted wire representations of a completion
// flag into a bool. Anything outside the enumerated set is rejected instead
// of coerced.
func ParseCompleted(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case float64: // JSON numbers decode to float64
		if x == 1 {
			return true, nil
		}
		if x == 0 {
			return false, nil
		}
	case string:
		switch x {
		case "1", "true":
			return true, nil
		case "0", "false":
			return false, nil
		}
	}
	return false, domain.Invalid("completed must be a boolean")
}

func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, domain.Invalid("due date must be YYYY-MM-DD")
	}
	return d, nil
}

func (s *TaskService) today() time.Time {
	n := s.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.Local)
}
