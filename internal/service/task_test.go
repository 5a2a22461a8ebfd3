package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-task-manager/internal/domain"
)

func dateStr(d time.Time) string { return d.Format(dateLayout) }

func TestCreateTask_Validation(t *testing.T) {
	t.Parallel()
	svc := NewTaskService(newFakeTaskRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "owner", CreateTaskInput{Title: "   "})
	require.True(t, domain.IsValidation(err))

	_, err = svc.Create(ctx, "owner", CreateTaskInput{Title: "ok", DueDate: "01-02-2026"})
	require.True(t, domain.IsValidation(err))

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}
	_, err = svc.Create(ctx, "owner", CreateTaskInput{Title: "ok", Description: string(long)})
	require.True(t, domain.IsValidation(err))
}

func TestCreateTask_DueDateRules(t *testing.T) {
	t.Parallel()
	svc := NewTaskService(newFakeTaskRepo())
	ctx := context.Background()

	// Pin "now" so the today/yesterday boundary cannot move mid-test.
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }

	_, err := svc.Create(ctx, "owner", CreateTaskInput{
		Title:   "Buy milk",
		DueDate: dateStr(now.AddDate(0, 0, -1)),
	})
	require.True(t, domain.IsValidation(err), "past due date must be rejected")

	today, err := svc.Create(ctx, "owner", CreateTaskInput{Title: "Buy milk", DueDate: dateStr(now)})
	require.NoError(t, err)
	require.False(t, today.Completed, "new tasks start incomplete")
	require.NotNil(t, today.DueDate)

	tomorrow, err := svc.Create(ctx, "owner", CreateTaskInput{
		Title:   "Call dentist",
		DueDate: dateStr(now.AddDate(0, 0, 1)),
	})
	require.NoError(t, err)
	require.Equal(t, "owner", tomorrow.OwnerID)

	noDate, err := svc.Create(ctx, "owner", CreateTaskInput{Title: "Someday"})
	require.NoError(t, err)
	require.Nil(t, noDate.DueDate)
}

func TestTaskOwnershipIsolation(t *testing.T) {
	t.Parallel()
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-a", CreateTaskInput{Title: "A's task"})
	require.NoError(t, err)

	// B's listing never contains A's task.
	listB, err := svc.List(ctx, "user-b")
	require.NoError(t, err)
	require.Empty(t, listB)

	// B mutating A's task fails without revealing whether the row exists.
	title := "hijacked"
	err = svc.Update(ctx, created.ID, "user-b", UpdateTaskInput{Title: &title})
	require.ErrorIs(t, err, domain.ErrNotFoundOrForbidden)

	err = svc.Delete(ctx, created.ID, "user-b")
	require.ErrorIs(t, err, domain.ErrNotFoundOrForbidden)

	// A nonexistent id reports the same outcome.
	err = svc.Delete(ctx, "no-such-task", "user-b")
	require.ErrorIs(t, err, domain.ErrNotFoundOrForbidden)

	// The task itself is untouched.
	stored := repo.get(created.ID)
	require.NotNil(t, stored)
	require.Equal(t, "A's task", stored.Title)

	// The owner still succeeds.
	ok := "renamed"
	require.NoError(t, svc.Update(ctx, created.ID, "user-a", UpdateTaskInput{Title: &ok}))
	require.Equal(t, "renamed", repo.get(created.ID).Title)
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner", CreateTaskInput{
		Title:   "Pay rent",
		DueDate: dateStr(time.Now().AddDate(0, 0, 7)),
	})
	require.NoError(t, err)

	t.Run("empty title rejected", func(t *testing.T) {
		empty := "  "
		err := svc.Update(ctx, created.ID, "owner", UpdateTaskInput{Title: &empty})
		require.True(t, domain.IsValidation(err))
	})

	t.Run("completed parsed strictly", func(t *testing.T) {
		err := svc.Update(ctx, created.ID, "owner", UpdateTaskInput{Completed: "yes"})
		require.True(t, domain.IsValidation(err))

		err = svc.Update(ctx, created.ID, "owner", UpdateTaskInput{Completed: "1"})
		require.NoError(t, err)
		require.True(t, repo.get(created.ID).Completed)
	})

	t.Run("past due date allowed on update", func(t *testing.T) {
		past := dateStr(time.Now().AddDate(0, 0, -30))
		err := svc.Update(ctx, created.ID, "owner", UpdateTaskInput{DueDate: &past})
		require.NoError(t, err)
	})

	t.Run("empty due date clears it", func(t *testing.T) {
		blank := ""
		err := svc.Update(ctx, created.ID, "owner", UpdateTaskInput{DueDate: &blank})
		require.NoError(t, err)
		require.Nil(t, repo.get(created.ID).DueDate)
	})

	t.Run("empty patch rejected", func(t *testing.T) {
		err := svc.Update(ctx, created.ID, "owner", UpdateTaskInput{})
		require.True(t, domain.IsValidation(err))
	})
}

func TestParseCompleted(t *testing.T) {
	t.Parallel()

	truthy := []any{true, float64(1), "1", "true"}
	for _, v := range truthy {
		got, err := ParseCompleted(v)
		require.NoError(t, err, "value %#v", v)
		require.True(t, got, "value %#v", v)
	}

	falsy := []any{false, float64(0), "0", "false"}
	for _, v := range falsy {
		got, err := ParseCompleted(v)
		require.NoError(t, err, "value %#v", v)
		require.False(t, got, "value %#v", v)
	}

	rejected := []any{"yes", "TRUE", float64(2), []any{}, map[string]any{}}
	for _, v := range rejected {
		_, err := ParseCompleted(v)
		require.True(t, domain.IsValidation(err), "value %#v must be rejected", v)
	}
}

// Concurrent owner and non-owner updates racing on the same task: the
// non-owner must lose every interleaving.
func TestUpdateTask_ConcurrentNonOwnerNeverWins(t *testing.T) {
	t.Parallel()
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-a", CreateTaskInput{Title: "contested"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			title := "owner write"
			_ = svc.Update(ctx, created.ID, "user-a", UpdateTaskInput{Title: &title})
		}()
		go func() {
			defer wg.Done()
			title := "intruder write"
			err := svc.Update(ctx, created.ID, "user-b", UpdateTaskInput{Title: &title})
			if !errors.Is(err, domain.ErrNotFoundOrForbidden) {
				t.Errorf("non-owner update: got %v, want ErrNotFoundOrForbidden", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, "owner write", repo.get(created.ID).Title)
}
