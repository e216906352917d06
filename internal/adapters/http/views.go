package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/tasklist/internal/application/services"
	"github.com/taskmaster/tasklist/internal/domain/entities"
	"github.com/taskmaster/tasklist/internal/infrastructure/logger"
	"github.com/taskmaster/tasklist/internal/ports"
)

// Page identifiers
const (
	PageHome    = "home"
	PageList    = "todos"
	PageAddTodo = "add-todo"
	PageAbout   = "about"
)

// NavLink is an entry of the navigation bar
type NavLink struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// NavLinks lists the navigable pages in display order
var NavLinks = []NavLink{
	{Title: "Home", Path: "/"},
	{Title: "Todo List", Path: "/todos"},
	{Title: "Add Todo", Path: "/add-todo"},
	{Title: "About", Path: "/about"},
}

// Page is the envelope shared by every view model
type Page struct {
	Page  string    `json:"page"`
	Title string    `json:"title"`
	Theme string    `json:"theme"`
	Nav   []NavLink `json:"nav"`
}

// StatusCounts summarizes the collection by status
type StatusCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

// HomeView is the landing page model
type HomeView struct {
	Page
	Headline string       `json:"headline"`
	Tagline  string       `json:"tagline"`
	Counts   StatusCounts `json:"counts"`
}

// TodoCard is a todo as rendered in the list
type TodoCard struct {
	entities.Todo
	SubtaskProgress string `json:"subtaskProgress,omitempty"`
	CommentCount    int    `json:"commentCount"`
}

// ListView is the todo list page model
type ListView struct {
	Page
	Search string     `json:"search"`
	Todos  []TodoCard `json:"todos"`
	Total  int        `json:"total"`
}

// FormView is the create form model
type FormView struct {
	Page
	Categories       []string             `json:"categories"`
	Labels           []string             `json:"labels"`
	Priorities       []entities.Priority  `json:"priorities"`
	RecurringOptions []entities.Recurring `json:"recurringOptions"`
	Colors           []string             `json:"colors"`
	Users            []entities.User      `json:"users"`
	Defaults         FormDefaults         `json:"defaults"`
}

// FormDefaults are the initial values of the create form
type FormDefaults struct {
	Priority  entities.Priority  `json:"priority"`
	Category  string             `json:"category"`
	Recurring entities.Recurring `json:"recurring"`
}

// Feature is a highlight shown on the about page
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AboutView is the about page model
type AboutView struct {
	Page
	Version  string    `json:"version"`
	Features []Feature `json:"features"`
}

// CreatedView answers a successful form submission and names the page to show next
type CreatedView struct {
	Todo     entities.Todo `json:"todo"`
	Redirect string        `json:"redirect"`
}

var aboutFeatures = []Feature{
	{Title: "Task Management", Description: "Create, update, and delete tasks. Organize them with priorities, categories and labels."},
	{Title: "Persistent Storage", Description: "Tasks and preferences are written through to storage on every change and restored at startup."},
	{Title: "Dark Mode", Description: "Toggle between light and dark themes."},
	{Title: "Collaboration", Description: "Assign tasks, add comments and track subtasks."},
}

// ViewHandler serves the page models. It owns no state.
type ViewHandler struct {
	todoService  *services.TodoService
	themeService *services.ThemeService
	version      string
	logger       *logger.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(todoService *services.TodoService, themeService *services.ThemeService, version string, logger *logger.Logger) *ViewHandler {
	return &ViewHandler{
		todoService:  todoService,
		themeService: themeService,
		version:      version,
		logger:       logger,
	}
}

func (h *ViewHandler) page(c echo.Context, id, title string) Page {
	return Page{
		Page:  id,
		Title: title,
		Theme: h.themeService.Theme(c.Request().Context()).Class,
		Nav:   NavLinks,
	}
}

// Home serves the landing page
func (h *ViewHandler) Home(c echo.Context) error {
	var counts StatusCounts
	for _, todo := range h.todoService.ListTodos(c.Request().Context(), new(string)) {
		counts.Total++
		switch todo.Status {
		case entities.StatusPending:
			counts.Pending++
		case entities.StatusInProgress:
			counts.InProgress++
		case entities.StatusCompleted:
			counts.Completed++
		}
	}

	return c.JSON(http.StatusOK, HomeView{
		Page:     h.page(c, PageHome, "Home"),
		Headline: "Organize Your Tasks",
		Tagline:  "Stay organized and accomplish more.",
		Counts:   counts,
	})
}

// List serves the todo list page with the visible todos
func (h *ViewHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var search *string
	if _, ok := c.QueryParams()["search"]; ok {
		term := c.QueryParam("search")
		search = &term
	}

	todos := h.todoService.ListTodos(ctx, search)
	cards := make([]TodoCard, 0, len(todos))
	for _, todo := range todos {
		card := TodoCard{Todo: todo, CommentCount: len(todo.Comments)}
		if len(todo.Subtasks) > 0 {
			card.SubtaskProgress = formatProgress(todo.CompletedSubtasks(), len(todo.Subtasks))
		}
		cards = append(cards, card)
	}

	term := h.todoService.Search(ctx)
	if search != nil {
		term = *search
	}

	return c.JSON(http.StatusOK, ListView{
		Page:   h.page(c, PageList, "Todo List"),
		Search: term,
		Todos:  cards,
		Total:  len(cards),
	})
}

// AddTodoForm serves the create form model
func (h *ViewHandler) AddTodoForm(c echo.Context) error {
	ctx := c.Request().Context()
	categories := h.todoService.Categories(ctx)

	defaults := FormDefaults{
		Priority:  entities.PriorityMedium,
		Recurring: entities.RecurringNone,
	}
	if len(categories) > 0 {
		defaults.Category = categories[0]
	}

	return c.JSON(http.StatusOK, FormView{
		Page:             h.page(c, PageAddTodo, "Add Todo"),
		Categories:       categories,
		Labels:           h.todoService.Labels(ctx),
		Priorities:       entities.Priorities(),
		RecurringOptions: entities.RecurringOptions(),
		Colors:           entities.ColorOptions,
		Users:            entities.DirectoryUsers,
		Defaults:         defaults,
	})
}

// SubmitTodo handles the create form. On success the client moves to the list page.
func (h *ViewHandler) SubmitTodo(c echo.Context) error {
	var req ports.CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	todo, err := h.todoService.CreateTodo(c.Request().Context(), req)
	if err != nil {
		return failure(h.logger, err, "Create todo failed")
	}

	return c.JSON(http.StatusCreated, CreatedView{Todo: *todo, Redirect: "/todos"})
}

// About serves the about page
func (h *ViewHandler) About(c echo.Context) error {
	return c.JSON(http.StatusOK, AboutView{
		Page:     h.page(c, PageAbout, "About"),
		Version:  h.version,
		Features: aboutFeatures,
	})
}

// RedirectHome sends unknown paths to the landing page
func (h *ViewHandler) RedirectHome(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/")
}

func formatProgress(done, total int) string {
	return fmt.Sprintf("%d/%d subtasks", done, total)
}
