package entities

import (
	"errors"
	"strings"
	"time"
)

// Common errors
var (
	ErrValidation      = errors.New("validation failed")
	ErrTodoNotFound    = errors.New("todo not found")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")
)

// Enums and types
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities returns the priorities in ascending order of urgency.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Rank orders priorities low < medium < high. Unknown values rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses returns the statuses in cycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Next advances the status along pending -> in-progress -> completed -> pending.
// An unknown status restarts the cycle at pending.
func (s Status) Next() Status {
	switch s {
	case StatusPending:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return StatusPending
	}
}

// Rank is the position of the status in the cycle.
func (s Status) Rank() int {
	switch s {
	case StatusPending:
		return 1
	case StatusInProgress:
		return 2
	case StatusCompleted:
		return 3
	default:
		return 0
	}
}

type Recurring string

const (
	RecurringNone    Recurring = "none"
	RecurringDaily   Recurring = "daily"
	RecurringWeekly  Recurring = "weekly"
	RecurringMonthly Recurring = "monthly"
)

// RecurringOptions returns every recurrence value offered by the create form.
func RecurringOptions() []Recurring {
	return []Recurring{RecurringNone, RecurringDaily, RecurringWeekly, RecurringMonthly}
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Subtask is a checklist item owned by a single todo.
type Subtask struct {
	ID        string `json:"id" yaml:"id" toml:"id"`
	Title     string `json:"title" yaml:"title" toml:"title"`
	Completed bool   `json:"completed" yaml:"completed" toml:"completed"`
}

// Comment is an append-only note attached to a todo.
type Comment struct {
	ID        string    `json:"id" yaml:"id" toml:"id"`
	UserID    string    `json:"userId" yaml:"userId" toml:"userId"`
	Text      string    `json:"text" yaml:"text" toml:"text"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt" toml:"createdAt"`
}

// Todo represents a task record
type Todo struct {
	ID          string    `json:"id" yaml:"id" toml:"id"`
	Title       string    `json:"title" yaml:"title" toml:"title"`
	Description string    `json:"description" yaml:"description" toml:"description"`
	Priority    Priority  `json:"priority" yaml:"priority" toml:"priority"`
	DueDate     string    `json:"dueDate" yaml:"dueDate" toml:"dueDate"`
	DueTime     string    `json:"dueTime,omitempty" yaml:"dueTime,omitempty" toml:"dueTime,omitempty"`
	Status      Status    `json:"status" yaml:"status" toml:"status"`
	Category    string    `json:"category" yaml:"category" toml:"category"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt" toml:"createdAt"`
	AssignedTo  []string  `json:"assignedTo,omitempty" yaml:"assignedTo,omitempty" toml:"assignedTo,omitempty"`
	Labels      []string  `json:"labels" yaml:"labels" toml:"labels"`
	Attachments []string  `json:"attachments,omitempty" yaml:"attachments,omitempty" toml:"attachments,omitempty"`
	Subtasks    []Subtask `json:"subtasks" yaml:"subtasks" toml:"subtasks"`
	Comments    []Comment `json:"comments" yaml:"comments" toml:"comments"`
	Reminder    string    `json:"reminder,omitempty" yaml:"reminder,omitempty" toml:"reminder,omitempty"`
	Recurring   Recurring `json:"recurring,omitempty" yaml:"recurring,omitempty" toml:"recurring,omitempty"`
	Color       string    `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
}

// Filters holds the list-view filter preferences. Empty lists match everything.
type Filters struct {
	Status     []string `json:"status" yaml:"status" toml:"status"`
	Priority   []string `json:"priority" yaml:"priority" toml:"priority"`
	Category   []string `json:"category" yaml:"category" toml:"category"`
	Labels     []string `json:"labels" yaml:"labels" toml:"labels"`
	AssignedTo []string `json:"assignedTo" yaml:"assignedTo" toml:"assignedTo"`
}

// FiltersPatch replaces only the filter lists that are non-nil.
type FiltersPatch struct {
	Status     *[]string `json:"status,omitempty"`
	Priority   *[]string `json:"priority,omitempty"`
	Category   *[]string `json:"category,omitempty"`
	Labels     *[]string `json:"labels,omitempty"`
	AssignedTo *[]string `json:"assignedTo,omitempty"`
}

// Sort holds the list-view ordering preference.
type Sort struct {
	Field     string        `json:"field" yaml:"field" toml:"field"`
	Direction SortDirection `json:"direction" yaml:"direction" toml:"direction"`
}

// TodoState is the persisted shape of the todo store.
type TodoState struct {
	Todos      []Todo   `json:"todos" yaml:"todos" toml:"todos"`
	Categories []string `json:"categories" yaml:"categories" toml:"categories"`
	Labels     []string `json:"labels" yaml:"labels" toml:"labels"`
	Filters    Filters  `json:"filters" yaml:"filters" toml:"filters"`
	Sort       Sort     `json:"sort" yaml:"sort" toml:"sort"`
	Search     string   `json:"search" yaml:"search" toml:"search"`
}

// ThemeState is the persisted shape of the theme store.
type ThemeState struct {
	DarkMode bool `json:"darkMode" yaml:"darkMode" toml:"darkMode"`
}

// Default vocabularies
var (
	DefaultCategories = []string{"Personal", "Work", "Shopping", "Others"}
	DefaultLabels     = []string{"Important", "Urgent", "Can Wait", "Review Needed"}
)

// InitialTodoState returns the compiled-in state used before and instead of rehydration.
func InitialTodoState() TodoState {
	return TodoState{
		Todos:      []Todo{},
		Categories: append([]string(nil), DefaultCategories...),
		Labels:     append([]string(nil), DefaultLabels...),
		Filters: Filters{
			Status:     []string{},
			Priority:   []string{},
			Category:   []string{},
			Labels:     []string{},
			AssignedTo: []string{},
		},
		Sort: Sort{
			Field:     "createdAt",
			Direction: SortDesc,
		},
		Search: "",
	}
}

// InitialThemeState returns the light theme.
func InitialThemeState() ThemeState {
	return ThemeState{DarkMode: false}
}

// Business logic methods for Todo

// Clone returns a deep copy so callers cannot alias store-owned slices.
func (t Todo) Clone() Todo {
	out := t
	out.AssignedTo = cloneStrings(t.AssignedTo)
	out.Labels = cloneStrings(t.Labels)
	out.Attachments = cloneStrings(t.Attachments)
	if t.Subtasks != nil {
		out.Subtasks = make([]Subtask, len(t.Subtasks))
		copy(out.Subtasks, t.Subtasks)
	}
	if t.Comments != nil {
		out.Comments = make([]Comment, len(t.Comments))
		copy(out.Comments, t.Comments)
	}
	return out
}

// IsAssignedTo reports whether userID is in the assignment set.
func (t *Todo) IsAssignedTo(userID string) bool {
	for _, id := range t.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}

// HasLabel reports whether the todo carries label.
func (t *Todo) HasLabel(label string) bool {
	for _, l := range t.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// CompletedSubtasks counts finished subtasks.
func (t *Todo) CompletedSubtasks() int {
	n := 0
	for _, st := range t.Subtasks {
		if st.Completed {
			n++
		}
	}
	return n
}

// Matches reports whether the search term occurs in the title or description,
// ignoring case. Labels and category are not searched.
func (t *Todo) Matches(term string) bool {
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle)
}

// Normalize replaces nil sequences with empty ones. The optional assignment
// and attachment lists are nil when empty, matching their encoded form.
func (t *Todo) Normalize() {
	if len(t.AssignedTo) == 0 {
		t.AssignedTo = nil
	}
	if len(t.Attachments) == 0 {
		t.Attachments = nil
	}
	if t.Labels == nil {
		t.Labels = []string{}
	}
	if t.Subtasks == nil {
		t.Subtasks = []Subtask{}
	}
	if t.Comments == nil {
		t.Comments = []Comment{}
	}
}

// Business logic methods for TodoState

// Clone returns a deep copy of the state.
func (s TodoState) Clone() TodoState {
	out := s
	out.Todos = make([]Todo, len(s.Todos))
	for i, t := range s.Todos {
		out.Todos[i] = t.Clone()
	}
	out.Categories = cloneStrings(s.Categories)
	out.Labels = cloneStrings(s.Labels)
	out.Filters = s.Filters.Clone()
	return out
}

// Normalize replaces nil sequences with empty ones throughout the state.
func (s *TodoState) Normalize() {
	if s.Todos == nil {
		s.Todos = []Todo{}
	}
	for i := range s.Todos {
		s.Todos[i].Normalize()
	}
	if s.Categories == nil {
		s.Categories = []string{}
	}
	if s.Labels == nil {
		s.Labels = []string{}
	}
	s.Filters.Normalize()
}

// Clone returns a deep copy of the filters.
func (f Filters) Clone() Filters {
	return Filters{
		Status:     cloneStrings(f.Status),
		Priority:   cloneStrings(f.Priority),
		Category:   cloneStrings(f.Category),
		Labels:     cloneStrings(f.Labels),
		AssignedTo: cloneStrings(f.AssignedTo),
	}
}

// Normalize replaces nil lists with empty ones.
func (f *Filters) Normalize() {
	for _, list := range []*[]string{&f.Status, &f.Priority, &f.Category, &f.Labels, &f.AssignedTo} {
		if *list == nil {
			*list = []string{}
		}
	}
}

// IsEmpty reports whether no filter list constrains the result.
func (f Filters) IsEmpty() bool {
	return len(f.Status) == 0 && len(f.Priority) == 0 && len(f.Category) == 0 &&
		len(f.Labels) == 0 && len(f.AssignedTo) == 0
}

// Merge applies the non-nil lists of the patch.
func (f Filters) Merge(p FiltersPatch) Filters {
	out := f.Clone()
	if p.Status != nil {
		out.Status = cloneStrings(*p.Status)
	}
	if p.Priority != nil {
		out.Priority = cloneStrings(*p.Priority)
	}
	if p.Category != nil {
		out.Category = cloneStrings(*p.Category)
	}
	if p.Labels != nil {
		out.Labels = cloneStrings(*p.Labels)
	}
	if p.AssignedTo != nil {
		out.AssignedTo = cloneStrings(*p.AssignedTo)
	}
	out.Normalize()
	return out
}

// ThemeClass is the document-level class for the theme.
func (s ThemeState) ThemeClass() string {
	if s.DarkMode {
		return "dark"
	}
	return "light"
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// ColorOptions is the palette offered for tagging a todo.
var ColorOptions = []string{
	"#ef4444", "#f97316", "#f59e0b", "#84cc16",
	"#22c55e", "#14b8a6", "#3b82f6", "#6366f1",
}

// User is an assignable person. There is no user registry; the directory is fixed.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DirectoryUsers are the users offered by the assignment picker.
var DirectoryUsers = []User{
	{ID: "1", Name: "John Doe"},
	{ID: "2", Name: "Jane Smith"},
	{ID: "3", Name: "Mike Johnson"},
}

// DefaultCommentAuthor is used when a comment is added without an identified user.
const DefaultCommentAuthor = "current-user"
