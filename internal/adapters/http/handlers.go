package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/tasklist/internal/application/services"
	"github.com/taskmaster/tasklist/internal/domain/entities"
	"github.com/taskmaster/tasklist/internal/infrastructure/logger"
	"github.com/taskmaster/tasklist/internal/ports"
)

// TodoHandler handles todo-related requests
type TodoHandler struct {
	todoService *services.TodoService
	logger      *logger.Logger
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(todoService *services.TodoService, logger *logger.Logger) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		logger:      logger,
	}
}

// ListTodos handles listing the visible todos
// @Summary List todos
// @Description Todos whose title or description contains the search term. The query parameter overrides the stored search.
// @Tags Todos
// @Produce json
// @Param search query string false "Search term"
// @Success 200 {object} ports.ListResponse[entities.Todo]
// @Router /todos [get]
func (h *TodoHandler) ListTodos(c echo.Context) error {
	var search *string
	if _, ok := c.QueryParams()["search"]; ok {
		term := c.QueryParam("search")
		search = &term
	}

	todos := h.todoService.ListTodos(c.Request().Context(), search)
	return c.JSON(http.StatusOK, ports.ListResponse[entities.Todo]{Data: todos, Total: len(todos)})
}

// QueryTodos handles listing todos with the stored filters and sort applied
// @Summary Query todos
// @Tags Todos
// @Produce json
// @Success 200 {object} ports.ListResponse[entities.Todo]
// @Router /todos/query [get]
func (h *TodoHandler) QueryTodos(c echo.Context) error {
	todos := h.todoService.QueryTodos(c.Request().Context())
	return c.JSON(http.StatusOK, ports.ListResponse[entities.Todo]{Data: todos, Total: len(todos)})
}

// CreateTodo handles todo creation
// @Summary Create a todo
// @Tags Todos
// @Accept json
// @Produce json
// @Param todo body ports.CreateTodoRequest true "Todo"
// @Success 201 {object} entities.Todo
// @Failure 400 {object} ports.ErrorResponse
// @Router /todos [post]
func (h *TodoHandler) CreateTodo(c echo.Context) error {
	var req ports.CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	todo, err := h.todoService.CreateTodo(c.Request().Context(), req)
	if err != nil {
		return h.fail(err, "Create todo failed")
	}

	return c.JSON(http.StatusCreated, todo)
}

// GetTodo handles getting a todo by ID
// @Summary Get a todo
// @Tags Todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} entities.Todo
// @Failure 404 {object} ports.ErrorResponse
// @Router /todos/{id} [get]
func (h *TodoHandler) GetTodo(c echo.Context) error {
	todo, err := h.todoService.GetTodo(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(err, "Get todo failed")
	}
	return c.JSON(http.StatusOK, todo)
}

// UpdateTodo handles replacing a todo
// @Summary Update a todo
// @Tags Todos
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param todo body ports.UpdateTodoRequest true "Todo"
// @Success 200 {object} entities.Todo
// @Success 204 "Todo not found, nothing changed"
// @Failure 400 {object} ports.ErrorResponse
// @Router /todos/{id} [put]
func (h *TodoHandler) UpdateTodo(c echo.Context) error {
	var req ports.UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	todo, err := h.todoService.UpdateTodo(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return h.fail(err, "Update todo failed")
	}
	return respondTodo(c, todo)
}

// DeleteTodo handles todo deletion. Deleting an unknown id is not an error.
// @Summary Delete a todo
// @Tags Todos
// @Param id path string true "Todo ID"
// @Success 204
// @Router /todos/{id} [delete]
func (h *TodoHandler) DeleteTodo(c echo.Context) error {
	h.todoService.DeleteTodo(c.Request().Context(), c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// ToggleStatus handles advancing a todo's status
// @Summary Toggle todo status
// @Tags Todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} entities.Todo
// @Success 204 "Todo not found, nothing changed"
// @Router /todos/{id}/toggle [post]
func (h *TodoHandler) ToggleStatus(c echo.Context) error {
	return respondTodo(c, h.todoService.ToggleStatus(c.Request().Context(), c.Param("id")))
}

// AddSubtask handles adding a subtask
// @Summary Add a subtask
// @Tags Todos
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param subtask body ports.AddSubtaskRequest true "Subtask"
// @Success 200 {object} entities.Todo
// @Success 204 "Todo not found, nothing changed"
// @Failure 400 {object} ports.ErrorResponse
// @Router /todos/{id}/subtasks [post]
func (h *TodoHandler) AddSubtask(c echo.Context) error {
	var req ports.AddSubtaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	todo, err := h.todoService.AddSubtask(c.Request().Context(), c.Param("id"), req.Title)
	if err != nil {
		return h.fail(err, "Add subtask failed")
	}
	return respondTodo(c, todo)
}

// ToggleSubtask handles flipping a subtask
// @Summary Toggle a subtask
// @Tags Todos
// @Produce json
// @Param id path string true "Todo ID"
// @Param subtaskId path string true "Subtask ID"
// @Success 200 {object} entities.Todo
// @Success 204 "Todo not found, nothing changed"
// @Router /todos/{id}/subtasks/{subtaskId}/toggle [post]
func (h *TodoHandler) ToggleSubtask(c echo.Context) error {
	return respondTodo(c, h.todoService.ToggleSubtask(c.Request().Context(), c.Param("id"), c.Param("subtaskId")))
}

// AddComment handles adding a comment. The author is the body's userId,
// then the token's user, then the default author.
// @Summary Add a comment
// @Tags Todos
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param comment body ports.AddCommentRequest true "Comment"
// @Success 200 {object} entities.Todo
// @Success 204 "Todo not found, nothing changed"
// @Failure 400 {object} ports.ErrorResponse
// @Router /todos/{id}/comments [post]
func (h *TodoHandler) AddComment(c echo.Context) error {
	var req ports.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	author := req.UserID
	if author == "" {
		author = currentUserID(c)
	}

	todo, err := h.todoService.AddComment(c.Request().Context(), c.Param("id"), author, req.Text)
	if err != nil {
		return h.fail(err, "Add comment failed")
	}
	return respondTodo(c, todo)
}

// Assign handles assigning a user. An empty userId assigns the token's user.
// @Summary Assign a user
// @Tags Todos
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param assignment body ports.AssignRequest true "Assignment"
// @Success 200 {object} entities.Todo
// @Success 204 "Todo not found, nothing changed"
// @Failure 400 {object} ports.ErrorResponse
// @Router /todos/{id}/assign [post]
func (h *TodoHandler) Assign(c echo.Context) error {
	var req ports.AssignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.UserID == "" {
		req.UserID = currentUserID(c)
	}

	todo, err := h.todoService.Assign(c.Request().Context(), c.Param("id"), req.UserID)
	if err != nil {
		return h.fail(err, "Assign todo failed")
	}
	return respondTodo(c, todo)
}

// Unassign handles removing a user from a todo
// @Summary Unassign a user
// @Tags Todos
// @Produce json
// @Param id path string true "Todo ID"
// @Param userId path string true "User ID"
// @Success 200 {object} entities.Todo
// @Success 204 "Todo not found, nothing changed"
// @Router /todos/{id}/assign/{userId} [delete]
func (h *TodoHandler) Unassign(c echo.Context) error {
	return respondTodo(c, h.todoService.Unassign(c.Request().Context(), c.Param("id"), c.Param("userId")))
}

// SetReminder handles replacing a todo's reminder
// @Summary Set a reminder
// @Tags Todos
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param reminder body ports.ReminderRequest true "Reminder"
// @Success 200 {object} entities.Todo
// @Success 204 "Todo not found, nothing changed"
// @Router /todos/{id}/reminder [put]
func (h *TodoHandler) SetReminder(c echo.Context) error {
	var req ports.ReminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	return respondTodo(c, h.todoService.SetReminder(c.Request().Context(), c.Param("id"), req.Reminder))
}

func (h *TodoHandler) fail(err error, msg string) error {
	return failure(h.logger, err, msg)
}

// VocabularyHandler handles category and label requests
type VocabularyHandler struct {
	todoService *services.TodoService
	logger      *logger.Logger
}

// NewVocabularyHandler creates a new vocabulary handler
func NewVocabularyHandler(todoService *services.TodoService, logger *logger.Logger) *VocabularyHandler {
	return &VocabularyHandler{
		todoService: todoService,
		logger:      logger,
	}
}

// ListCategories handles listing categories
// @Summary List categories
// @Tags Vocabulary
// @Produce json
// @Success 200 {object} ports.ListResponse[string]
// @Router /categories [get]
func (h *VocabularyHandler) ListCategories(c echo.Context) error {
	categories := h.todoService.Categories(c.Request().Context())
	return c.JSON(http.StatusOK, ports.ListResponse[string]{Data: categories, Total: len(categories)})
}

// AddCategory handles adding a category
// @Summary Add a category
// @Tags Vocabulary
// @Accept json
// @Produce json
// @Param category body ports.VocabularyRequest true "Category"
// @Success 200 {object} ports.ListResponse[string]
// @Failure 400 {object} ports.ErrorResponse
// @Router /categories [post]
func (h *VocabularyHandler) AddCategory(c echo.Context) error {
	var req ports.VocabularyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	categories, err := h.todoService.AddCategory(c.Request().Context(), req.Name)
	if err != nil {
		return failure(h.logger, err, "Add category failed")
	}
	return c.JSON(http.StatusOK, ports.ListResponse[string]{Data: categories, Total: len(categories)})
}

// ListLabels handles listing labels
// @Summary List labels
// @Tags Vocabulary
// @Produce json
// @Success 200 {object} ports.ListResponse[string]
// @Router /labels [get]
func (h *VocabularyHandler) ListLabels(c echo.Context) error {
	labels := h.todoService.Labels(c.Request().Context())
	return c.JSON(http.StatusOK, ports.ListResponse[string]{Data: labels, Total: len(labels)})
}

// AddLabel handles adding a label
// @Summary Add a label
// @Tags Vocabulary
// @Accept json
// @Produce json
// @Param label body ports.VocabularyRequest true "Label"
// @Success 200 {object} ports.ListResponse[string]
// @Failure 400 {object} ports.ErrorResponse
// @Router /labels [post]
func (h *VocabularyHandler) AddLabel(c echo.Context) error {
	var req ports.VocabularyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	labels, err := h.todoService.AddLabel(c.Request().Context(), req.Name)
	if err != nil {
		return failure(h.logger, err, "Add label failed")
	}
	return c.JSON(http.StatusOK, ports.ListResponse[string]{Data: labels, Total: len(labels)})
}

// PreferencesHandler handles the list-view preferences
type PreferencesHandler struct {
	todoService *services.TodoService
	logger      *logger.Logger
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(todoService *services.TodoService, logger *logger.Logger) *PreferencesHandler {
	return &PreferencesHandler{
		todoService: todoService,
		logger:      logger,
	}
}

// GetFilters handles reading the filter preferences
// @Summary Get filters
// @Tags Preferences
// @Produce json
// @Success 200 {object} entities.Filters
// @Router /preferences/filters [get]
func (h *PreferencesHandler) GetFilters(c echo.Context) error {
	return c.JSON(http.StatusOK, h.todoService.Filters(c.Request().Context()))
}

// SetFilters handles merging filter lists. Lists missing from the body are kept.
// @Summary Set filters
// @Tags Preferences
// @Accept json
// @Produce json
// @Param filters body entities.FiltersPatch true "Filter lists to replace"
// @Success 200 {object} entities.Filters
// @Router /preferences/filters [put]
func (h *PreferencesHandler) SetFilters(c echo.Context) error {
	var patch entities.FiltersPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	return c.JSON(http.StatusOK, h.todoService.SetFilters(c.Request().Context(), patch))
}

// GetSort handles reading the sort preference
// @Summary Get sort
// @Tags Preferences
// @Produce json
// @Success 200 {object} entities.Sort
// @Router /preferences/sort [get]
func (h *PreferencesHandler) GetSort(c echo.Context) error {
	return c.JSON(http.StatusOK, h.todoService.Sort(c.Request().Context()))
}

// SetSort handles replacing the sort preference
// @Summary Set sort
// @Tags Preferences
// @Accept json
// @Produce json
// @Param sort body ports.SortRequest true "Sort"
// @Success 200 {object} entities.Sort
// @Failure 400 {object} ports.ErrorResponse
// @Router /preferences/sort [put]
func (h *PreferencesHandler) SetSort(c echo.Context) error {
	var req ports.SortRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	sort, err := h.todoService.SetSort(c.Request().Context(), req)
	if err != nil {
		return failure(h.logger, err, "Set sort failed")
	}
	return c.JSON(http.StatusOK, sort)
}

// GetSearch handles reading the stored search term
// @Summary Get search
// @Tags Preferences
// @Produce json
// @Success 200 {object} ports.SearchRequest
// @Router /preferences/search [get]
func (h *PreferencesHandler) GetSearch(c echo.Context) error {
	return c.JSON(http.StatusOK, ports.SearchRequest{Search: h.todoService.Search(c.Request().Context())})
}

// SetSearch handles replacing the stored search term
// @Summary Set search
// @Tags Preferences
// @Accept json
// @Produce json
// @Param search body ports.SearchRequest true "Search"
// @Success 200 {object} ports.SearchRequest
// @Router /preferences/search [put]
func (h *PreferencesHandler) SetSearch(c echo.Context) error {
	var req ports.SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	return c.JSON(http.StatusOK, ports.SearchRequest{Search: h.todoService.SetSearch(c.Request().Context(), req.Search)})
}

// ThemeHandler handles theme requests
type ThemeHandler struct {
	themeService *services.ThemeService
	logger       *logger.Logger
}

// NewThemeHandler creates a new theme handler
func NewThemeHandler(themeService *services.ThemeService, logger *logger.Logger) *ThemeHandler {
	return &ThemeHandler{
		themeService: themeService,
		logger:       logger,
	}
}

// GetTheme handles reading the theme
// @Summary Get theme
// @Tags Theme
// @Produce json
// @Success 200 {object} ports.ThemeResponse
// @Router /theme [get]
func (h *ThemeHandler) GetTheme(c echo.Context) error {
	return c.JSON(http.StatusOK, h.themeService.Theme(c.Request().Context()))
}

// ToggleTheme handles flipping dark mode
// @Summary Toggle theme
// @Tags Theme
// @Produce json
// @Success 200 {object} ports.ThemeResponse
// @Router /theme/toggle [post]
func (h *ThemeHandler) ToggleTheme(c echo.Context) error {
	return c.JSON(http.StatusOK, h.themeService.Toggle(c.Request().Context()))
}

// respondTodo answers 200 with the record, or 204 when the mutation found no todo
func respondTodo(c echo.Context, todo *entities.Todo) error {
	if todo == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, todo)
}

func failure(log *logger.Logger, err error, msg string) error {
	switch {
	case errors.Is(err, entities.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrTodoNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Todo not found")
	default:
		log.Errorw(msg, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, msg)
	}
}

// currentUserID returns the user identified by the request's token, if any
func currentUserID(c echo.Context) string {
	if user, ok := c.Get("user").(string); ok {
		return strings.TrimSpace(user)
	}
	return ""
}
