package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/tasklist/internal/application/store"
	"github.com/taskmaster/tasklist/internal/domain/entities"
	"github.com/taskmaster/tasklist/internal/infrastructure/logger"
	"github.com/taskmaster/tasklist/internal/ports"
)

func newTodoService(t *testing.T) (*TodoService, *store.TodoStore) {
	t.Helper()
	s := store.NewTodoStore()
	return NewTodoService(s, NewValidator(), logger.NewNop()), s
}

func TestCreateTodo_Defaults(t *testing.T) {
	svc, s := newTodoService(t)
	ctx := context.Background()

	todo, err := svc.CreateTodo(ctx, ports.CreateTodoRequest{Title: "  Buy milk  "})
	require.NoError(t, err)

	assert.NotEmpty(t, todo.ID)
	assert.Equal(t, "Buy milk", todo.Title)
	assert.Equal(t, entities.PriorityMedium, todo.Priority)
	assert.Equal(t, entities.StatusPending, todo.Status)
	assert.Equal(t, entities.RecurringNone, todo.Recurring)
	assert.Equal(t, "Personal", todo.Category)
	assert.Empty(t, todo.Reminder)
	assert.False(t, todo.CreatedAt.IsZero())

	stored, ok := s.Todo(todo.ID)
	require.True(t, ok)
	assert.Equal(t, *todo, stored)
	assert.Equal(t, todo.ID, s.Todos()[0].ID)
}

func TestCreateTodo_RejectsBlankTitle(t *testing.T) {
	svc, s := newTodoService(t)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := svc.CreateTodo(context.Background(), ports.CreateTodoRequest{Title: title})
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrValidation)
	}
	assert.Equal(t, 0, s.Len())
}

func TestCreateTodo_RejectsUnknownPriority(t *testing.T) {
	svc, _ := newTodoService(t)

	_, err := svc.CreateTodo(context.Background(), ports.CreateTodoRequest{Title: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, entities.ErrValidation)
}

func TestCreateTodo_ExtendsVocabularies(t *testing.T) {
	svc, s := newTodoService(t)

	_, err := svc.CreateTodo(context.Background(), ports.CreateTodoRequest{
		Title:    "Plan trip",
		Category: "Travel",
		Labels:   []string{"Urgent", "Holiday"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Personal", "Work", "Shopping", "Others", "Travel"}, s.Categories())
	assert.Equal(t, []string{"Important", "Urgent", "Can Wait", "Review Needed", "Holiday"}, s.Labels())
}

func TestCreateTodo_SubtasksAndReminder(t *testing.T) {
	svc, _ := newTodoService(t)

	todo, err := svc.CreateTodo(context.Background(), ports.CreateTodoRequest{
		Title:    "Release",
		Subtasks: []string{"tag", "  ", "announce "},
		Reminder: true,
	})
	require.NoError(t, err)

	require.Len(t, todo.Subtasks, 2)
	assert.Equal(t, "tag", todo.Subtasks[0].Title)
	assert.Equal(t, "announce", todo.Subtasks[1].Title)
	assert.NotEqual(t, todo.Subtasks[0].ID, todo.Subtasks[1].ID)
	assert.False(t, todo.Subtasks[0].Completed)
	assert.NotEmpty(t, todo.Reminder)
}

func TestAddComment(t *testing.T) {
	svc, _ := newTodoService(t)
	ctx := context.Background()
	todo, err := svc.CreateTodo(ctx, ports.CreateTodoRequest{Title: "Review"})
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, todo.ID, "", "   ")
	assert.ErrorIs(t, err, entities.ErrValidation)

	updated, err := svc.AddComment(ctx, todo.ID, "", "looks good")
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Len(t, updated.Comments, 1)
	assert.Equal(t, entities.DefaultCommentAuthor, updated.Comments[0].UserID)
	assert.Equal(t, "looks good", updated.Comments[0].Text)

	updated, err = svc.AddComment(ctx, todo.ID, "2", "ship it")
	require.NoError(t, err)
	require.Len(t, updated.Comments, 2)
	assert.Equal(t, "2", updated.Comments[1].UserID)
}

func TestMutationsOnAbsentTodo(t *testing.T) {
	svc, s := newTodoService(t)
	ctx := context.Background()

	assert.Nil(t, svc.ToggleStatus(ctx, "missing"))
	assert.False(t, svc.DeleteTodo(ctx, "missing"))
	assert.Nil(t, svc.ToggleSubtask(ctx, "missing", "st"))
	assert.Nil(t, svc.Unassign(ctx, "missing", "1"))
	assert.Nil(t, svc.SetReminder(ctx, "missing", "tomorrow"))

	todo, err := svc.AddSubtask(ctx, "missing", "child")
	require.NoError(t, err)
	assert.Nil(t, todo)

	todo, err = svc.Assign(ctx, "missing", "1")
	require.NoError(t, err)
	assert.Nil(t, todo)

	todo, err = svc.UpdateTodo(ctx, "missing", ports.UpdateTodoRequest{
		Title: "x", Priority: entities.PriorityLow, Status: entities.StatusPending,
	})
	require.NoError(t, err)
	assert.Nil(t, todo)

	_, err = svc.GetTodo(ctx, "missing")
	assert.ErrorIs(t, err, entities.ErrTodoNotFound)

	assert.Equal(t, 0, s.Len())
}

func TestUpdateTodo_KeepsIdentityAndComments(t *testing.T) {
	svc, _ := newTodoService(t)
	ctx := context.Background()
	created, err := svc.CreateTodo(ctx, ports.CreateTodoRequest{Title: "Draft", Subtasks: []string{"outline"}})
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, created.ID, "1", "first")
	require.NoError(t, err)

	updated, err := svc.UpdateTodo(ctx, created.ID, ports.UpdateTodoRequest{
		Title:    "Final",
		Priority: entities.PriorityHigh,
		Status:   entities.StatusCompleted,
		Category: "Work",
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, entities.StatusCompleted, updated.Status)
	assert.Len(t, updated.Comments, 1)
	assert.Len(t, updated.Subtasks, 1)
}

func TestUpdateTodo_ConcurrentCommentsAreKept(t *testing.T) {
	svc, s := newTodoService(t)
	ctx := context.Background()
	created, err := svc.CreateTodo(ctx, ports.CreateTodoRequest{Title: "Busy"})
	require.NoError(t, err)

	const rounds = 500
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, err := svc.AddComment(ctx, created.ID, "1", fmt.Sprintf("comment %d", i))
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, err := svc.UpdateTodo(ctx, created.ID, ports.UpdateTodoRequest{
				Title:    fmt.Sprintf("Busy %d", i),
				Priority: entities.PriorityLow,
				Status:   entities.StatusPending,
				Category: "Work",
			})
			assert.NoError(t, err)
		}
	}()
	wg.Wait()

	stored, ok := s.Todo(created.ID)
	require.True(t, ok)
	assert.Len(t, stored.Comments, rounds)
	assert.Equal(t, fmt.Sprintf("Busy %d", rounds-1), stored.Title)
}

func TestDeleteTodo(t *testing.T) {
	svc, s := newTodoService(t)
	ctx := context.Background()
	todo, err := svc.CreateTodo(ctx, ports.CreateTodoRequest{Title: "Temp"})
	require.NoError(t, err)

	assert.True(t, svc.DeleteTodo(ctx, todo.ID))
	assert.False(t, svc.DeleteTodo(ctx, todo.ID))
	assert.Equal(t, 0, s.Len())
}

func TestQueryTodos_AppliesPreferences(t *testing.T) {
	svc, _ := newTodoService(t)
	ctx := context.Background()
	_, err := svc.CreateTodo(ctx, ports.CreateTodoRequest{Title: "beta", Priority: entities.PriorityLow})
	require.NoError(t, err)
	_, err = svc.CreateTodo(ctx, ports.CreateTodoRequest{Title: "alpha", Priority: entities.PriorityHigh})
	require.NoError(t, err)
	_, err = svc.CreateTodo(ctx, ports.CreateTodoRequest{Title: "gamma", Priority: entities.PriorityHigh})
	require.NoError(t, err)

	high := []string{"high"}
	svc.SetFilters(ctx, entities.FiltersPatch{Priority: &high})
	_, err = svc.SetSort(ctx, ports.SortRequest{Field: "title", Direction: entities.SortAsc})
	require.NoError(t, err)

	got := svc.QueryTodos(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0].Title)
	assert.Equal(t, "gamma", got[1].Title)

	// The visible list ignores filter and sort preferences
	assert.Len(t, svc.ListTodos(ctx, nil), 3)
}

func TestListTodos_SearchOverride(t *testing.T) {
	svc, _ := newTodoService(t)
	ctx := context.Background()
	_, err := svc.CreateTodo(ctx, ports.CreateTodoRequest{Title: "Buy milk"})
	require.NoError(t, err)
	_, err = svc.CreateTodo(ctx, ports.CreateTodoRequest{Title: "Call mom"})
	require.NoError(t, err)

	svc.SetSearch(ctx, "MILK")
	assert.Len(t, svc.ListTodos(ctx, nil), 1)

	empty := ""
	assert.Len(t, svc.ListTodos(ctx, &empty), 2)
}

func TestVocabularyValidation(t *testing.T) {
	svc, _ := newTodoService(t)
	ctx := context.Background()

	_, err := svc.AddCategory(ctx, " ")
	assert.ErrorIs(t, err, entities.ErrValidation)

	categories, err := svc.AddCategory(ctx, "Health")
	require.NoError(t, err)
	assert.Contains(t, categories, "Health")

	labels, err := svc.AddLabel(ctx, "Important")
	require.NoError(t, err)
	assert.Len(t, labels, len(entities.DefaultLabels))
}

func TestThemeService_Toggle(t *testing.T) {
	svc := NewThemeService(store.NewThemeStore(), logger.NewNop())
	ctx := context.Background()

	assert.Equal(t, ports.ThemeResponse{DarkMode: false, Class: "light"}, svc.Theme(ctx))
	assert.Equal(t, ports.ThemeResponse{DarkMode: true, Class: "dark"}, svc.Toggle(ctx))
	assert.True(t, svc.DarkMode(ctx))
}
