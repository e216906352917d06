package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/tasklist/internal/adapters/storage"
	"github.com/taskmaster/tasklist/internal/application/store"
	"github.com/taskmaster/tasklist/internal/domain/entities"
	"github.com/taskmaster/tasklist/internal/infrastructure/logger"
	"github.com/taskmaster/tasklist/internal/infrastructure/metrics"
	"github.com/taskmaster/tasklist/internal/ports"
)

type harness struct {
	storage   *storage.MemoryStorage
	todos     *store.TodoStore
	theme     *store.ThemeStore
	persistor *Persistor
}

func newHarness(t *testing.T, kv *storage.MemoryStorage) *harness {
	t.Helper()
	if kv == nil {
		kv = storage.NewMemoryStorage()
	}
	h := &harness{
		storage: kv,
		todos:   store.NewTodoStore(),
		theme:   store.NewThemeStore(),
	}
	h.persistor = NewPersistor(kv, h.todos, h.theme, logger.NewNop(), metrics.New(), time.Second)
	return h
}

func sampleTodo(id, title string) entities.Todo {
	return entities.Todo{
		ID:          id,
		Title:       title,
		Description: "desc " + title,
		Priority:    entities.PriorityHigh,
		DueDate:     "2026-01-31",
		DueTime:     "09:30",
		Status:      entities.StatusInProgress,
		Category:    "Work",
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC),
		AssignedTo:  []string{"1", "3"},
		Labels:      []string{"Urgent"},
		Attachments: []string{"spec.pdf"},
		Subtasks:    []entities.Subtask{{ID: "s1", Title: "step", Completed: true}},
		Comments: []entities.Comment{{
			ID: "c1", UserID: "2", Text: "note",
			CreatedAt: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		}},
		Reminder:  "2026-01-30T09:00:00Z",
		Recurring: entities.RecurringWeekly,
		Color:     "#ef4444",
	}
}

func TestRehydrate_EmptyStorageKeepsInitialState(t *testing.T) {
	h := newHarness(t, nil)
	assert.False(t, h.persistor.Ready())

	h.persistor.Rehydrate(context.Background())

	assert.True(t, h.persistor.Ready())
	assert.Equal(t, entities.InitialTodoState(), h.todos.Snapshot())
	assert.False(t, h.theme.DarkMode())
}

func TestRoundTrip(t *testing.T) {
	kv := storage.NewMemoryStorage()
	first := newHarness(t, kv)
	first.persistor.Rehydrate(context.Background())
	first.persistor.Start()

	first.todos.AddTodo(sampleTodo("a", "first"))
	first.todos.AddTodo(sampleTodo("b", "second"))
	first.todos.AddCategory("Travel")
	first.todos.SetSearch("sec")
	first.todos.SetSort(entities.Sort{Field: "priority", Direction: entities.SortAsc})
	first.theme.ToggleTheme()

	second := newHarness(t, kv)
	second.persistor.Rehydrate(context.Background())

	assert.Equal(t, first.todos.Snapshot(), second.todos.Snapshot())
	assert.True(t, second.theme.DarkMode())
}

func TestRoundTrip_EmptiedOptionalLists(t *testing.T) {
	kv := storage.NewMemoryStorage()
	first := newHarness(t, kv)
	first.persistor.Rehydrate(context.Background())
	first.persistor.Start()

	todo := sampleTodo("a", "shared")
	todo.AssignedTo = []string{"1"}
	todo.Attachments = []string{}
	first.todos.AddTodo(todo)
	first.todos.UnassignTodo("a", "1")

	second := newHarness(t, kv)
	second.persistor.Rehydrate(context.Background())

	assert.Equal(t, first.todos.Snapshot(), second.todos.Snapshot())
	got, _ := second.todos.Todo("a")
	assert.Empty(t, got.AssignedTo)
}

func TestRehydrate_PartialBlobKeepsDefaults(t *testing.T) {
	kv := storage.NewMemoryStorage()
	require.NoError(t, kv.Set(context.Background(), ports.TodoStateKey,
		[]byte(`{"todos":[{"id":"x","title":"Only","priority":"low","status":"pending","createdAt":"2026-01-01T00:00:00Z"}]}`)))

	h := newHarness(t, kv)
	h.persistor.Rehydrate(context.Background())

	state := h.todos.Snapshot()
	require.Len(t, state.Todos, 1)
	assert.Equal(t, "Only", state.Todos[0].Title)
	assert.Equal(t, []string{}, state.Todos[0].Labels)
	assert.Equal(t, []entities.Subtask{}, state.Todos[0].Subtasks)
	assert.Equal(t, entities.DefaultCategories, state.Categories)
	assert.Equal(t, entities.DefaultLabels, state.Labels)
	assert.Equal(t, entities.InitialTodoState().Sort, state.Sort)
	assert.Equal(t, []string{}, state.Filters.Status)
}

func TestRehydrate_GarbageFallsBack(t *testing.T) {
	for name, blob := range map[string]string{
		"not json":     "{{{",
		"wrong shape":  `{"todos":"nope"}`,
		"scalar":       `42`,
		"truncated":    `{"todos":[{"id":"a"`,
		"wrong fields": `{"categories":{"a":1}}`,
	} {
		t.Run(name, func(t *testing.T) {
			kv := storage.NewMemoryStorage()
			ctx := context.Background()
			require.NoError(t, kv.Set(ctx, ports.TodoStateKey, []byte(blob)))
			require.NoError(t, kv.Set(ctx, ports.ThemeStateKey, []byte(blob)))

			h := newHarness(t, kv)
			h.persistor.Rehydrate(ctx)

			assert.True(t, h.persistor.Ready())
			assert.Equal(t, entities.InitialTodoState(), h.todos.Snapshot())
			assert.False(t, h.theme.DarkMode())
		})
	}
}

func TestWriteThrough(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	h.persistor.Rehydrate(ctx)
	h.persistor.Start()
	h.persistor.Start()

	h.todos.AddTodo(sampleTodo("a", "first"))
	h.todos.ToggleTodoStatus("a")

	blob, err := h.storage.Get(ctx, ports.TodoStateKey)
	require.NoError(t, err)

	var persisted entities.TodoState
	require.NoError(t, json.Unmarshal(blob, &persisted))
	assert.Equal(t, h.todos.Snapshot(), persisted)
	assert.Equal(t, entities.StatusCompleted, persisted.Todos[0].Status)

	_, err = h.storage.Get(ctx, ports.ThemeStateKey)
	assert.ErrorIs(t, err, ports.ErrKeyNotFound, "theme untouched until toggled")

	h.theme.ToggleTheme()
	blob, err = h.storage.Get(ctx, ports.ThemeStateKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"darkMode":true}`, string(blob))
}

func TestFlushAndPurge(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	h.persistor.Rehydrate(ctx)
	h.todos.AddTodo(sampleTodo("a", "first"))

	_, err := h.storage.Get(ctx, ports.TodoStateKey)
	assert.ErrorIs(t, err, ports.ErrKeyNotFound, "nothing written before Start or Flush")

	require.NoError(t, h.persistor.Flush(ctx))
	_, err = h.storage.Get(ctx, ports.TodoStateKey)
	require.NoError(t, err)
	_, err = h.storage.Get(ctx, ports.ThemeStateKey)
	require.NoError(t, err)

	require.NoError(t, h.persistor.Purge(ctx))
	_, err = h.storage.Get(ctx, ports.TodoStateKey)
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)
	_, err = h.storage.Get(ctx, ports.ThemeStateKey)
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)
}

type failingStorage struct {
	*storage.MemoryStorage
}

func (failingStorage) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("disk full")
}

func TestWriteFailureDoesNotReachCaller(t *testing.T) {
	kv := failingStorage{storage.NewMemoryStorage()}
	todos := store.NewTodoStore()
	p := NewPersistor(kv, todos, store.NewThemeStore(), logger.NewNop(), nil, time.Second)
	p.Rehydrate(context.Background())
	p.Start()

	todos.AddTodo(sampleTodo("a", "first"))
	assert.Equal(t, 1, todos.Len())

	assert.Error(t, p.Flush(context.Background()))
}
