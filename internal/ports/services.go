package ports

import (
	"github.com/taskmaster/tasklist/internal/domain/entities"
)

// Request/Response Types

// Todo related types
type CreateTodoRequest struct {
	Title       string             `json:"title" validate:"required,notblank,max=500"`
	Description string             `json:"description" validate:"max=2000"`
	Priority    entities.Priority  `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     string             `json:"dueDate" validate:"max=64"`
	DueTime     string             `json:"dueTime" validate:"max=64"`
	Category    string             `json:"category" validate:"max=100"`
	Labels      []string           `json:"labels" validate:"dive,notblank,max=100"`
	Subtasks    []string           `json:"subtasks" validate:"dive,max=500"`
	AssignedTo  []string           `json:"assignedTo" validate:"dive,notblank"`
	Attachments []string           `json:"attachments" validate:"dive,notblank"`
	Reminder    bool               `json:"reminder"`
	Recurring   entities.Recurring `json:"recurring" validate:"omitempty,oneof=none daily weekly monthly"`
	Color       string             `json:"color" validate:"max=32"`
}

type UpdateTodoRequest struct {
	Title       string             `json:"title" validate:"required,notblank,max=500"`
	Description string             `json:"description" validate:"max=2000"`
	Priority    entities.Priority  `json:"priority" validate:"required,oneof=low medium high"`
	DueDate     string             `json:"dueDate" validate:"max=64"`
	DueTime     string             `json:"dueTime" validate:"max=64"`
	Status      entities.Status    `json:"status" validate:"required,oneof=pending in-progress completed"`
	Category    string             `json:"category" validate:"max=100"`
	Labels      []string           `json:"labels"`
	AssignedTo  []string           `json:"assignedTo"`
	Attachments []string           `json:"attachments"`
	Subtasks    []entities.Subtask `json:"subtasks"`
	Reminder    string             `json:"reminder"`
	Recurring   entities.Recurring `json:"recurring" validate:"omitempty,oneof=none daily weekly monthly"`
	Color       string             `json:"color" validate:"max=32"`
}

type AddSubtaskRequest struct {
	Title string `json:"title" validate:"required,notblank,max=500"`
}

type AddCommentRequest struct {
	Text   string `json:"text" validate:"required,notblank,max=2000"`
	UserID string `json:"userId"`
}

type AssignRequest struct {
	UserID string `json:"userId" validate:"required,notblank"`
}

type ReminderRequest struct {
	Reminder string `json:"reminder"`
}

type VocabularyRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

type SearchRequest struct {
	Search string `json:"search"`
}

type SortRequest struct {
	Field     string                 `json:"field" validate:"required"`
	Direction entities.SortDirection `json:"direction" validate:"required,oneof=asc desc"`
}

type IssueTokenRequest struct {
	UserID string `json:"userId" validate:"required,notblank"`
}

// Response types
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type ThemeResponse struct {
	DarkMode bool   `json:"darkMode"`
	Class    string `json:"class"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Claims identify the acting user of a request.
type Claims struct {
	UserID string `json:"user_id"`
}
