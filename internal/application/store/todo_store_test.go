package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/tasklist/internal/domain/entities"
)

func newTodo(id, title string) entities.Todo {
	return entities.Todo{
		ID:        id,
		Title:     title,
		Priority:  entities.PriorityMedium,
		Status:    entities.StatusPending,
		Category:  "Personal",
		CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Labels:    []string{},
		Subtasks:  []entities.Subtask{},
		Comments:  []entities.Comment{},
	}
}

func TestTodoStore_InitialState(t *testing.T) {
	s := NewTodoStore()
	state := s.Snapshot()

	assert.Empty(t, state.Todos)
	assert.Equal(t, []string{"Personal", "Work", "Shopping", "Others"}, state.Categories)
	assert.Equal(t, []string{"Important", "Urgent", "Can Wait", "Review Needed"}, state.Labels)
	assert.Equal(t, entities.Sort{Field: "createdAt", Direction: entities.SortDesc}, state.Sort)
	assert.True(t, state.Filters.IsEmpty())
	assert.Equal(t, "", state.Search)
}

func TestTodoStore_AddTodoInsertsAtHead(t *testing.T) {
	s := NewTodoStore()

	s.AddTodo(newTodo("a", "first"))
	s.AddTodo(newTodo("b", "second"))

	todos := s.Todos()
	require.Len(t, todos, 2)
	assert.Equal(t, "b", todos[0].ID)
	assert.Equal(t, "a", todos[1].ID)
}

func TestTodoStore_AddThenLookupReturnsSameRecord(t *testing.T) {
	s := NewTodoStore()
	todo := newTodo("a", "Buy milk")
	todo.Labels = []string{"Urgent"}
	todo.AssignedTo = []string{"1"}

	before := s.Len()
	s.AddTodo(todo)

	got, ok := s.Todo("a")
	require.True(t, ok)
	assert.Equal(t, todo, got)
	assert.Equal(t, before+1, s.Len())
}

func TestTodoStore_AddTodoDoesNotDeduplicate(t *testing.T) {
	s := NewTodoStore()
	s.AddTodo(newTodo("a", "one"))
	s.AddTodo(newTodo("a", "two"))

	assert.Equal(t, 2, s.Len())
}

func TestTodoStore_SnapshotsDoNotAlias(t *testing.T) {
	s := NewTodoStore()
	todo := newTodo("a", "title")
	s.AddTodo(todo)

	todo.Labels = append(todo.Labels, "mutated")
	got, _ := s.Todo("a")
	got.Subtasks = append(got.Subtasks, entities.Subtask{ID: "x"})
	got.Title = "changed"

	again, _ := s.Todo("a")
	assert.Empty(t, again.Labels)
	assert.Empty(t, again.Subtasks)
	assert.Equal(t, "title", again.Title)
}

func TestTodoStore_UpdateTodo(t *testing.T) {
	s := NewTodoStore()
	s.AddTodo(newTodo("a", "old"))

	updated := newTodo("a", "new")
	updated.Priority = entities.PriorityHigh
	s.UpdateTodo(updated)

	got, ok := s.Todo("a")
	require.True(t, ok)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, entities.PriorityHigh, got.Priority)
}

func TestTodoStore_UpdateMissingIsNoop(t *testing.T) {
	s := NewTodoStore()
	s.AddTodo(newTodo("a", "old"))
	before := s.Snapshot()

	s.UpdateTodo(newTodo("missing", "new"))

	assert.Equal(t, before, s.Snapshot())
}

func TestTodoStore_UpdateTodoFunc(t *testing.T) {
	s := NewTodoStore()
	s.AddTodo(newTodo("a", "old"))
	s.AddComment("a", entities.Comment{ID: "c1", UserID: "1", Text: "kept"})

	var ops []string
	s.Subscribe(func(op string, _ entities.TodoState) { ops = append(ops, op) })

	ok := s.UpdateTodoFunc("a", func(todo *entities.Todo) {
		todo.ID = "hijacked"
		todo.CreatedAt = time.Time{}
		todo.Title = "new"
	})
	require.True(t, ok)

	got, found := s.Todo("a")
	require.True(t, found)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, newTodo("a", "old").CreatedAt, got.CreatedAt)
	assert.Len(t, got.Comments, 1)

	assert.False(t, s.UpdateTodoFunc("missing", func(todo *entities.Todo) { todo.Title = "x" }))
	assert.Equal(t, []string{OpUpdateTodo}, ops)
}

func TestTodoStore_UnassignLastUserLeavesNil(t *testing.T) {
	s := NewTodoStore()
	s.AddTodo(newTodo("a", "shared"))
	s.AssignTodo("a", "1")
	s.UnassignTodo("a", "1")

	got, _ := s.Todo("a")
	assert.Nil(t, got.AssignedTo)
}

func TestTodoStore_DeleteIsIdempotent(t *testing.T) {
	s := NewTodoStore()
	s.AddTodo(newTodo("a", "one"))
	s.AddTodo(newTodo("b", "two"))

	s.DeleteTodo("a")
	after := s.Snapshot()
	s.DeleteTodo("a")
	s.DeleteTodo("never-existed")

	assert.Equal(t, after, s.Snapshot())
	require.Len(t, after.Todos, 1)
	assert.Equal(t, "b", after.Todos[0].ID)
}

func TestTodoStore_ToggleStatusCycles(t *testing.T) {
	s := NewTodoStore()
	s.AddTodo(newTodo("a", "cycle"))

	expected := []entities.Status{
		entities.StatusInProgress,
		entities.StatusCompleted,
		entities.StatusPending,
	}
	for _, want := range expected {
		s.ToggleTodoStatus("a")
		got, _ := s.Todo("a")
		assert.Equal(t, want, got.Status)
	}

	s.ToggleTodoStatus("missing")
	assert.Equal(t, 1, s.Len())
}

func TestTodoStore_Subtasks(t *testing.T) {
	s := NewTodoStore()
	s.AddTodo(newTodo("a", "parent"))

	s.AddSubtask("a", entities.Subtask{ID: "s1", Title: "step one"})
	s.AddSubtask("a", entities.Subtask{ID: "s2", Title: "step two"})
	s.ToggleSubtask("a", "s2")

	got, _ := s.Todo("a")
	require.Len(t, got.Subtasks, 2)
	assert.Equal(t, "s1", got.Subtasks[0].ID)
	assert.False(t, got.Subtasks[0].Completed)
	assert.True(t, got.Subtasks[1].Completed)

	s.ToggleSubtask("a", "s2")
	got, _ = s.Todo("a")
	assert.False(t, got.Subtasks[1].Completed)

	before := s.Snapshot()
	s.AddSubtask("missing", entities.Subtask{ID: "s3"})
	s.ToggleSubtask("a", "missing")
	s.ToggleSubtask("missing", "s1")
	assert.Equal(t, before, s.Snapshot())
}

func TestTodoStore_AddComment(t *testing.T) {
	s := NewTodoStore()
	s.AddTodo(newTodo("a", "parent"))
	at := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

	s.AddComment("a", entities.Comment{ID: "c1", UserID: "u1", Text: "first", CreatedAt: at})
	s.AddComment("a", entities.Comment{ID: "c2", UserID: "u2", Text: "second", CreatedAt: at})
	s.AddComment("missing", entities.Comment{ID: "c3"})

	got, _ := s.Todo("a")
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "first", got.Comments[0].Text)
	assert.Equal(t, "second", got.Comments[1].Text)
}

func TestTodoStore_VocabulariesAreSetLike(t *testing.T) {
	s := NewTodoStore()

	s.AddCategory("Errands")
	s.AddCategory("Errands")
	s.AddCategory("Work")
	s.AddLabel("Blocked")
	s.AddLabel("Blocked")

	assert.Equal(t, []string{"Personal", "Work", "Shopping", "Others", "Errands"}, s.Categories())
	assert.Equal(t, []string{"Important", "Urgent", "Can Wait", "Review Needed", "Blocked"}, s.Labels())
}

func TestTodoStore_AssignAndUnassign(t *testing.T) {
	s := NewTodoStore()
	s.AddTodo(newTodo("a", "shared"))

	s.AssignTodo("a", "1")
	s.AssignTodo("a", "1")
	s.AssignTodo("a", "2")
	got, _ := s.Todo("a")
	assert.Equal(t, []string{"1", "2"}, got.AssignedTo)

	s.UnassignTodo("a", "1")
	s.UnassignTodo("a", "missing")
	got, _ = s.Todo("a")
	assert.Equal(t, []string{"2"}, got.AssignedTo)

	s.AssignTodo("missing", "1")
	s.UnassignTodo("missing", "1")
	assert.Equal(t, 1, s.Len())
}

func TestTodoStore_SetReminder(t *testing.T) {
	s := NewTodoStore()
	s.AddTodo(newTodo("a", "remind me"))

	s.SetReminder("a", "2024-03-01T08:00:00Z")
	s.SetReminder("missing", "ignored")

	got, _ := s.Todo("a")
	assert.Equal(t, "2024-03-01T08:00:00Z", got.Reminder)
}

func TestTodoStore_SetFiltersMergesShallowly(t *testing.T) {
	s := NewTodoStore()
	status := []string{"pending"}
	labels := []string{"Urgent"}

	s.SetFilters(entities.FiltersPatch{Status: &status})
	s.SetFilters(entities.FiltersPatch{Labels: &labels})

	filters := s.Filters()
	assert.Equal(t, []string{"pending"}, filters.Status)
	assert.Equal(t, []string{"Urgent"}, filters.Labels)
	assert.Empty(t, filters.Priority)

	empty := []string{}
	s.SetFilters(entities.FiltersPatch{Status: &empty})
	assert.Empty(t, s.Filters().Status)
	assert.Equal(t, []string{"Urgent"}, s.Filters().Labels)
}

func TestTodoStore_PreferencesDoNotTouchTodos(t *testing.T) {
	s := NewTodoStore()
	s.AddTodo(newTodo("a", "untouched"))
	todos := s.Todos()

	s.SetSort(entities.Sort{Field: "priority", Direction: entities.SortAsc})
	s.SetSearch("milk")

	assert.Equal(t, todos, s.Todos())
	assert.Equal(t, entities.Sort{Field: "priority", Direction: entities.SortAsc}, s.Sort())
	assert.Equal(t, "milk", s.Search())
}

func TestTodoStore_VisibleTodosSearch(t *testing.T) {
	s := NewTodoStore()
	s.AddTodo(newTodo("a", "Buy milk"))
	s.AddTodo(newTodo("b", "Walk the dog"))
	withDescription := newTodo("c", "Groceries")
	withDescription.Description = "oat MILK and bread"
	s.AddTodo(withDescription)
	labelled := newTodo("d", "Label only")
	labelled.Labels = []string{"milk"}
	labelled.Category = "milk"
	s.AddTodo(labelled)

	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "empty term returns all", term: "", want: []string{"d", "c", "b", "a"}},
		{name: "lowercase", term: "milk", want: []string{"c", "a"}},
		{name: "uppercase", term: "MILK", want: []string{"c", "a"}},
		{name: "no match", term: "cheese", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := []string{}
			for _, todo := range s.VisibleTodos(tt.term) {
				ids = append(ids, todo.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestTodoStore_VisibleUsesStoredSearch(t *testing.T) {
	s := NewTodoStore()
	s.AddTodo(newTodo("a", "Buy milk"))
	s.AddTodo(newTodo("b", "Walk the dog"))

	s.SetSearch("DOG")

	visible := s.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "b", visible[0].ID)
}

func TestTodoStore_SubscribersSeeEveryMutationInOrder(t *testing.T) {
	s := NewTodoStore()
	var ops []string
	var last entities.TodoState
	s.Subscribe(func(op string, state entities.TodoState) {
		ops = append(ops, op)
		last = state
	})

	s.AddTodo(newTodo("a", "first"))
	s.ToggleTodoStatus("a")
	s.DeleteTodo("missing")
	s.AddCategory("Personal")
	s.SetSearch("x")

	assert.Equal(t, []string{OpAddTodo, OpToggleTodoStatus, OpSetSearch}, ops)
	assert.Equal(t, s.Snapshot(), last)
}

func TestTodoStore_HydrateDoesNotNotify(t *testing.T) {
	s := NewTodoStore()
	notified := false
	s.Subscribe(func(string, entities.TodoState) { notified = true })

	state := entities.InitialTodoState()
	state.Todos = []entities.Todo{newTodo("a", "restored")}
	s.Hydrate(state)

	assert.False(t, notified)
	assert.Equal(t, state, s.Snapshot())
}

func TestTodoStore_BuyMilkScenario(t *testing.T) {
	s := NewTodoStore()
	milk := newTodo("milk", "Buy milk")
	milk.Priority = entities.PriorityLow
	milk.Category = "Personal"
	s.AddTodo(newTodo("older", "Older task"))

	s.AddTodo(milk)
	visible := s.Visible()
	require.NotEmpty(t, visible)
	assert.Equal(t, "milk", visible[0].ID)

	s.ToggleTodoStatus("milk")
	got, _ := s.Todo("milk")
	assert.Equal(t, entities.StatusInProgress, got.Status)

	s.DeleteTodo("milk")
	for _, todo := range s.Visible() {
		assert.NotEqual(t, "milk", todo.ID)
	}
}

func TestThemeStore_Toggle(t *testing.T) {
	s := NewThemeStore()
	var seen []bool
	s.Subscribe(func(op string, state entities.ThemeState) {
		assert.Equal(t, OpToggleTheme, op)
		seen = append(seen, state.DarkMode)
	})

	assert.False(t, s.DarkMode())
	s.ToggleTheme()
	assert.True(t, s.DarkMode())
	s.ToggleTheme()
	assert.False(t, s.DarkMode())
	assert.Equal(t, []bool{true, false}, seen)

	s.Hydrate(entities.ThemeState{DarkMode: true})
	assert.Equal(t, "dark", s.Snapshot().ThemeClass())
	assert.Len(t, seen, 2)
}
