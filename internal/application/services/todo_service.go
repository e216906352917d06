package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/taskmaster/tasklist/internal/application/query"
	"github.com/taskmaster/tasklist/internal/application/store"
	"github.com/taskmaster/tasklist/internal/domain/entities"
	"github.com/taskmaster/tasklist/internal/infrastructure/logger"
	"github.com/taskmaster/tasklist/internal/ports"
)

// TodoService validates caller input, builds records and dispatches store operations.
// Mutations on an absent todo return a nil record and no error.
type TodoService struct {
	store    *store.TodoStore
	validate *validator.Validate
	logger   *logger.Logger
	now      func() time.Time
}

// NewTodoService creates a new todo service
func NewTodoService(todoStore *store.TodoStore, validate *validator.Validate, logger *logger.Logger) *TodoService {
	return &TodoService{
		store:    todoStore,
		validate: validate,
		logger:   logger.WithComponent("todo_service"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateTodo builds a new record from req and inserts it at the head of the collection
func (s *TodoService) CreateTodo(ctx context.Context, req ports.CreateTodoRequest) (*entities.Todo, error) {
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, validationError(err)
	}

	now := s.now()
	todo := entities.Todo{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		DueTime:     req.DueTime,
		Status:      entities.StatusPending,
		Category:    strings.TrimSpace(req.Category),
		CreatedAt:   now,
		AssignedTo:  trimAll(req.AssignedTo),
		Labels:      trimAll(req.Labels),
		Attachments: trimAll(req.Attachments),
		Subtasks:    []entities.Subtask{},
		Comments:    []entities.Comment{},
		Recurring:   req.Recurring,
		Color:       req.Color,
	}
	if todo.Priority == "" {
		todo.Priority = entities.PriorityMedium
	}
	if todo.Recurring == "" {
		todo.Recurring = entities.RecurringNone
	}
	if todo.Labels == nil {
		todo.Labels = []string{}
	}
	if todo.Category == "" {
		if categories := s.store.Categories(); len(categories) > 0 {
			todo.Category = categories[0]
		}
	}
	for _, title := range req.Subtasks {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		todo.Subtasks = append(todo.Subtasks, entities.Subtask{
			ID:    uuid.NewString(),
			Title: title,
		})
	}
	if req.Reminder {
		todo.Reminder = now.Format(time.RFC3339Nano)
	}

	// Vocabularies are only extended at creation time
	if todo.Category != "" {
		s.store.AddCategory(todo.Category)
	}
	for _, label := range todo.Labels {
		s.store.AddLabel(label)
	}

	todo.Normalize()
	s.store.AddTodo(todo)

	s.logger.Infow("Todo created", "todo_id", todo.ID, "title", todo.Title)

	return &todo, nil
}

// GetTodo retrieves a todo by ID
func (s *TodoService) GetTodo(ctx context.Context, id string) (*entities.Todo, error) {
	todo, ok := s.store.Todo(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entities.ErrTodoNotFound, id)
	}
	return &todo, nil
}

// ListTodos returns the visible list. A nil search uses the stored search term.
func (s *TodoService) ListTodos(ctx context.Context, search *string) []entities.Todo {
	if search == nil {
		return s.store.Visible()
	}
	return s.store.VisibleTodos(*search)
}

// QueryTodos returns the visible list with the stored filter and sort preferences applied
func (s *TodoService) QueryTodos(ctx context.Context) []entities.Todo {
	state := s.store.Snapshot()
	return query.Apply(s.store.Visible(), state.Filters, state.Sort)
}

// UpdateTodo replaces the record with the given id. Comments are append-only and
// always carried over; subtasks are kept when the request omits them.
func (s *TodoService) UpdateTodo(ctx context.Context, id string, req ports.UpdateTodoRequest) (*entities.Todo, error) {
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, validationError(err)
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	found := s.store.UpdateTodoFunc(id, func(todo *entities.Todo) {
		todo.Title = title
		todo.Description = description
		todo.Priority = req.Priority
		todo.DueDate = req.DueDate
		todo.DueTime = req.DueTime
		todo.Status = req.Status
		todo.Category = req.Category
		todo.Labels = req.Labels
		todo.AssignedTo = req.AssignedTo
		todo.Attachments = req.Attachments
		todo.Reminder = req.Reminder
		todo.Recurring = req.Recurring
		todo.Color = req.Color
		if req.Subtasks != nil {
			todo.Subtasks = req.Subtasks
		}
	})
	if !found {
		s.logger.Debugw("Update skipped, todo not found", "todo_id", id)
		return nil, nil
	}

	s.logger.Infow("Todo updated", "todo_id", id)

	return s.lookup(id), nil
}

// DeleteTodo removes the todo and reports whether it existed
func (s *TodoService) DeleteTodo(ctx context.Context, id string) bool {
	before := s.store.Len()
	s.store.DeleteTodo(id)
	deleted := s.store.Len() < before
	if deleted {
		s.logger.Infow("Todo deleted", "todo_id", id)
	} else {
		s.logger.Debugw("Delete skipped, todo not found", "todo_id", id)
	}
	return deleted
}

// ToggleStatus advances the todo along pending, in-progress and completed
func (s *TodoService) ToggleStatus(ctx context.Context, id string) *entities.Todo {
	s.store.ToggleTodoStatus(id)
	return s.lookup(id)
}

// AddSubtask appends a new subtask with a fresh id
func (s *TodoService) AddSubtask(ctx context.Context, todoID, title string) (*entities.Todo, error) {
	req := ports.AddSubtaskRequest{Title: title}
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, validationError(err)
	}

	s.store.AddSubtask(todoID, entities.Subtask{
		ID:    uuid.NewString(),
		Title: strings.TrimSpace(title),
	})
	return s.lookup(todoID), nil
}

// ToggleSubtask flips the completion flag of a subtask
func (s *TodoService) ToggleSubtask(ctx context.Context, todoID, subtaskID string) *entities.Todo {
	s.store.ToggleSubtask(todoID, subtaskID)
	return s.lookup(todoID)
}

// AddComment appends a comment. An empty author becomes the default comment author.
func (s *TodoService) AddComment(ctx context.Context, todoID, authorID, text string) (*entities.Todo, error) {
	req := ports.AddCommentRequest{Text: text, UserID: authorID}
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, validationError(err)
	}
	if strings.TrimSpace(authorID) == "" {
		authorID = entities.DefaultCommentAuthor
	}

	s.store.AddComment(todoID, entities.Comment{
		ID:        uuid.NewString(),
		UserID:    authorID,
		Text:      strings.TrimSpace(text),
		CreatedAt: s.now(),
	})
	return s.lookup(todoID), nil
}

// Assign adds userID to the todo's assignment set
func (s *TodoService) Assign(ctx context.Context, todoID, userID string) (*entities.Todo, error) {
	if err := s.validate.StructCtx(ctx, ports.AssignRequest{UserID: userID}); err != nil {
		return nil, validationError(err)
	}
	s.store.AssignTodo(todoID, userID)
	return s.lookup(todoID), nil
}

// Unassign removes userID from the todo's assignment set
func (s *TodoService) Unassign(ctx context.Context, todoID, userID string) *entities.Todo {
	s.store.UnassignTodo(todoID, userID)
	return s.lookup(todoID)
}

// SetReminder replaces the reminder of the todo
func (s *TodoService) SetReminder(ctx context.Context, todoID, reminder string) *entities.Todo {
	s.store.SetReminder(todoID, reminder)
	return s.lookup(todoID)
}

// Categories returns the category vocabulary
func (s *TodoService) Categories(ctx context.Context) []string {
	return s.store.Categories()
}

// AddCategory adds name to the category vocabulary unless present
func (s *TodoService) AddCategory(ctx context.Context, name string) ([]string, error) {
	if err := s.validate.StructCtx(ctx, ports.VocabularyRequest{Name: name}); err != nil {
		return nil, validationError(err)
	}
	s.store.AddCategory(strings.TrimSpace(name))
	return s.store.Categories(), nil
}

// Labels returns the label vocabulary
func (s *TodoService) Labels(ctx context.Context) []string {
	return s.store.Labels()
}

// AddLabel adds name to the label vocabulary unless present
func (s *TodoService) AddLabel(ctx context.Context, name string) ([]string, error) {
	if err := s.validate.StructCtx(ctx, ports.VocabularyRequest{Name: name}); err != nil {
		return nil, validationError(err)
	}
	s.store.AddLabel(strings.TrimSpace(name))
	return s.store.Labels(), nil
}

// Filters returns the filter preferences
func (s *TodoService) Filters(ctx context.Context) entities.Filters {
	return s.store.Filters()
}

// SetFilters merges patch into the filter preferences
func (s *TodoService) SetFilters(ctx context.Context, patch entities.FiltersPatch) entities.Filters {
	s.store.SetFilters(patch)
	return s.store.Filters()
}

// Sort returns the sort preference
func (s *TodoService) Sort(ctx context.Context) entities.Sort {
	return s.store.Sort()
}

// SetSort replaces the sort preference
func (s *TodoService) SetSort(ctx context.Context, req ports.SortRequest) (entities.Sort, error) {
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return entities.Sort{}, validationError(err)
	}
	sort := entities.Sort{Field: req.Field, Direction: req.Direction}
	s.store.SetSort(sort)
	return sort, nil
}

// Search returns the stored search term
func (s *TodoService) Search(ctx context.Context) string {
	return s.store.Search()
}

// SetSearch replaces the stored search term
func (s *TodoService) SetSearch(ctx context.Context, term string) string {
	s.store.SetSearch(term)
	return term
}

func (s *TodoService) lookup(id string) *entities.Todo {
	todo, ok := s.store.Todo(id)
	if !ok {
		s.logger.Debugw("Mutation skipped, todo not found", "todo_id", id)
		return nil
	}
	return &todo
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
