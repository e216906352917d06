// Package store holds the in-memory state containers of the application.
//
// A store is the single source of truth for its slice of state. Its named
// mutation methods are the only write path; they are synchronous and total,
// so an unknown id turns the mutation into a no-op instead of an error.
// Subscribers are notified after each mutation with a snapshot of the new
// state, which is how the persistence bridge implements write-through.
package store

import (
	"sync"

	"github.com/taskmaster/tasklist/internal/domain/entities"
)

// Operation names reported to subscribers.
const (
	OpAddTodo          = "addTodo"
	OpUpdateTodo       = "updateTodo"
	OpDeleteTodo       = "deleteTodo"
	OpToggleTodoStatus = "toggleTodoStatus"
	OpAddSubtask       = "addSubtask"
	OpToggleSubtask    = "toggleSubtask"
	OpAddComment       = "addComment"
	OpAddCategory      = "addCategory"
	OpAddLabel         = "addLabel"
	OpAssignTodo       = "assignTodo"
	OpUnassignTodo     = "unassignTodo"
	OpSetReminder      = "setReminder"
	OpSetFilters       = "setFilters"
	OpSetSort          = "setSort"
	OpSetSearch        = "setSearch"
	OpReplace          = "replace"
)

// TodoListener observes todo store mutations. It runs while the store holds
// its write lock and must not call back into the store.
type TodoListener func(op string, state entities.TodoState)

// TodoStore owns the todo collection, the category and label vocabularies
// and the list-view preferences.
type TodoStore struct {
	mu        sync.RWMutex
	state     entities.TodoState
	listeners []TodoListener
}

// NewTodoStore creates a store holding the initial state.
func NewTodoStore() *TodoStore {
	return NewTodoStoreWithState(entities.InitialTodoState())
}

// NewTodoStoreWithState creates a store holding a copy of state.
func NewTodoStoreWithState(state entities.TodoState) *TodoStore {
	state = state.Clone()
	state.Normalize()
	return &TodoStore{state: state}
}

// Subscribe registers a listener for every subsequent mutation.
func (s *TodoStore) Subscribe(listener TodoListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Hydrate replaces the whole state without notifying listeners.
func (s *TodoStore) Hydrate(state entities.TodoState) {
	state = state.Clone()
	state.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// mutate runs fn under the write lock and notifies listeners when fn reports a change.
func (s *TodoStore) mutate(op string, fn func(state *entities.TodoState) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !fn(&s.state) {
		return
	}
	if len(s.listeners) == 0 {
		return
	}
	snapshot := s.state.Clone()
	for _, listener := range s.listeners {
		listener(op, snapshot)
	}
}

// AddTodo inserts todo at the head of the collection. Id freshness is the caller's concern.
func (s *TodoStore) AddTodo(todo entities.Todo) {
	todo = todo.Clone()
	todo.Normalize()
	s.mutate(OpAddTodo, func(state *entities.TodoState) bool {
		state.Todos = append([]entities.Todo{todo}, state.Todos...)
		return true
	})
}

// UpdateTodo replaces the record with the same id.
func (s *TodoStore) UpdateTodo(todo entities.Todo) {
	todo = todo.Clone()
	todo.Normalize()
	s.mutate(OpUpdateTodo, func(state *entities.TodoState) bool {
		i := indexOf(state.Todos, todo.ID)
		if i < 0 {
			return false
		}
		state.Todos[i] = todo
		return true
	})
}

// UpdateTodoFunc applies fn to the record with id under the write lock and
// reports whether the record exists. The id and creation time are kept.
func (s *TodoStore) UpdateTodoFunc(id string, fn func(todo *entities.Todo)) bool {
	found := false
	s.mutate(OpUpdateTodo, func(state *entities.TodoState) bool {
		i := indexOf(state.Todos, id)
		if i < 0 {
			return false
		}
		found = true
		updated := state.Todos[i].Clone()
		fn(&updated)
		updated.ID = state.Todos[i].ID
		updated.CreatedAt = state.Todos[i].CreatedAt
		updated = updated.Clone()
		updated.Normalize()
		state.Todos[i] = updated
		return true
	})
	return found
}

// DeleteTodo removes the record with id.
func (s *TodoStore) DeleteTodo(id string) {
	s.mutate(OpDeleteTodo, func(state *entities.TodoState) bool {
		i := indexOf(state.Todos, id)
		if i < 0 {
			return false
		}
		state.Todos = append(state.Todos[:i], state.Todos[i+1:]...)
		return true
	})
}

// ToggleTodoStatus advances the status of the todo along its cycle.
func (s *TodoStore) ToggleTodoStatus(id string) {
	s.mutate(OpToggleTodoStatus, func(state *entities.TodoState) bool {
		todo := find(state.Todos, id)
		if todo == nil {
			return false
		}
		todo.Status = todo.Status.Next()
		return true
	})
}

// AddSubtask appends subtask to the todo.
func (s *TodoStore) AddSubtask(todoID string, subtask entities.Subtask) {
	s.mutate(OpAddSubtask, func(state *entities.TodoState) bool {
		todo := find(state.Todos, todoID)
		if todo == nil {
			return false
		}
		todo.Subtasks = append(todo.Subtasks, subtask)
		return true
	})
}

// ToggleSubtask flips the completion flag of a subtask.
func (s *TodoStore) ToggleSubtask(todoID, subtaskID string) {
	s.mutate(OpToggleSubtask, func(state *entities.TodoState) bool {
		todo := find(state.Todos, todoID)
		if todo == nil {
			return false
		}
		for i := range todo.Subtasks {
			if todo.Subtasks[i].ID == subtaskID {
				todo.Subtasks[i].Completed = !todo.Subtasks[i].Completed
				return true
			}
		}
		return false
	})
}

// AddComment appends comment to the todo.
func (s *TodoStore) AddComment(todoID string, comment entities.Comment) {
	s.mutate(OpAddComment, func(state *entities.TodoState) bool {
		todo := find(state.Todos, todoID)
		if todo == nil {
			return false
		}
		todo.Comments = append(todo.Comments, comment)
		return true
	})
}

// AddCategory appends name to the category vocabulary unless present.
func (s *TodoStore) AddCategory(name string) {
	s.mutate(OpAddCategory, func(state *entities.TodoState) bool {
		return addIfAbsent(&state.Categories, name)
	})
}

// AddLabel appends name to the label vocabulary unless present.
func (s *TodoStore) AddLabel(name string) {
	s.mutate(OpAddLabel, func(state *entities.TodoState) bool {
		return addIfAbsent(&state.Labels, name)
	})
}

// AssignTodo adds userID to the assignment set of the todo.
func (s *TodoStore) AssignTodo(todoID, userID string) {
	s.mutate(OpAssignTodo, func(state *entities.TodoState) bool {
		todo := find(state.Todos, todoID)
		if todo == nil {
			return false
		}
		return addIfAbsent(&todo.AssignedTo, userID)
	})
}

// UnassignTodo removes userID from the assignment set of the todo.
func (s *TodoStore) UnassignTodo(todoID, userID string) {
	s.mutate(OpUnassignTodo, func(state *entities.TodoState) bool {
		todo := find(state.Todos, todoID)
		if todo == nil || todo.AssignedTo == nil {
			return false
		}
		kept := make([]string, 0, len(todo.AssignedTo))
		for _, id := range todo.AssignedTo {
			if id != userID {
				kept = append(kept, id)
			}
		}
		if len(kept) == len(todo.AssignedTo) {
			return false
		}
		todo.AssignedTo = kept
		todo.Normalize()
		return true
	})
}

// SetReminder replaces the reminder of the todo.
func (s *TodoStore) SetReminder(todoID, reminder string) {
	s.mutate(OpSetReminder, func(state *entities.TodoState) bool {
		todo := find(state.Todos, todoID)
		if todo == nil {
			return false
		}
		todo.Reminder = reminder
		return true
	})
}

// SetFilters merges the lists present in patch into the filter preferences.
func (s *TodoStore) SetFilters(patch entities.FiltersPatch) {
	s.mutate(OpSetFilters, func(state *entities.TodoState) bool {
		state.Filters = state.Filters.Merge(patch)
		return true
	})
}

// SetSort replaces the sort preference.
func (s *TodoStore) SetSort(sort entities.Sort) {
	s.mutate(OpSetSort, func(state *entities.TodoState) bool {
		state.Sort = sort
		return true
	})
}

// SetSearch replaces the search term.
func (s *TodoStore) SetSearch(term string) {
	s.mutate(OpSetSearch, func(state *entities.TodoState) bool {
		state.Search = term
		return true
	})
}

// Replace swaps in a copy of state and notifies listeners, unlike Hydrate.
// Used by imports.
func (s *TodoStore) Replace(state entities.TodoState) {
	state = state.Clone()
	state.Normalize()
	s.mutate(OpReplace, func(current *entities.TodoState) bool {
		*current = state
		return true
	})
}

// Snapshot returns a deep copy of the whole state.
func (s *TodoStore) Snapshot() entities.TodoState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Todos returns a copy of the collection, most recent first.
func (s *TodoStore) Todos() []entities.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTodos(s.state.Todos, nil)
}

// Todo looks up a record by id.
func (s *TodoStore) Todo(id string) (entities.Todo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.state.Todos {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return entities.Todo{}, false
}

// Len returns the collection size.
func (s *TodoStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.Todos)
}

// Categories returns a copy of the category vocabulary.
func (s *TodoStore) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.state.Categories...)
}

// Labels returns a copy of the label vocabulary.
func (s *TodoStore) Labels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.state.Labels...)
}

// Filters returns the filter preferences.
func (s *TodoStore) Filters() entities.Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Filters.Clone()
}

// Sort returns the sort preference.
func (s *TodoStore) Sort() entities.Sort {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Sort
}

// Search returns the stored search term.
func (s *TodoStore) Search() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Search
}

// Visible returns the todos matching the stored search term.
func (s *TodoStore) Visible() []entities.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return visible(s.state.Todos, s.state.Search)
}

// VisibleTodos returns the todos whose title or description contains term,
// ignoring case. Filter and sort preferences are not applied.
func (s *TodoStore) VisibleTodos(term string) []entities.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return visible(s.state.Todos, term)
}

func visible(todos []entities.Todo, term string) []entities.Todo {
	if term == "" {
		return cloneTodos(todos, nil)
	}
	return cloneTodos(todos, func(t *entities.Todo) bool { return t.Matches(term) })
}

func cloneTodos(todos []entities.Todo, keep func(*entities.Todo) bool) []entities.Todo {
	out := make([]entities.Todo, 0, len(todos))
	for i := range todos {
		if keep != nil && !keep(&todos[i]) {
			continue
		}
		out = append(out, todos[i].Clone())
	}
	return out
}

func indexOf(todos []entities.Todo, id string) int {
	for i := range todos {
		if todos[i].ID == id {
			return i
		}
	}
	return -1
}

func find(todos []entities.Todo, id string) *entities.Todo {
	if i := indexOf(todos, id); i >= 0 {
		return &todos[i]
	}
	return nil
}

func addIfAbsent(list *[]string, value string) bool {
	for _, existing := range *list {
		if existing == value {
			return false
		}
	}
	*list = append(*list, value)
	return true
}
