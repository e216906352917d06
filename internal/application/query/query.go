// Package query applies the stored filter and sort preferences to a list of
// todos. It is a read-side concern kept apart from the store: the store's
// visible list only applies the search term.
package query

import (
	"sort"
	"strings"

	"github.com/taskmaster/tasklist/internal/domain/entities"
)

// Sortable fields.
const (
	FieldCreatedAt = "createdAt"
	FieldDueDate   = "dueDate"
	FieldPriority  = "priority"
	FieldStatus    = "status"
	FieldTitle     = "title"
)

// SortFields lists the fields ApplySort understands.
func SortFields() []string {
	return []string{FieldCreatedAt, FieldDueDate, FieldPriority, FieldStatus, FieldTitle}
}

// Apply filters then sorts todos. The input slice is not modified.
func Apply(todos []entities.Todo, filters entities.Filters, s entities.Sort) []entities.Todo {
	return ApplySort(ApplyFilters(todos, filters), s)
}

// ApplyFilters keeps the todos passing every non-empty filter list.
func ApplyFilters(todos []entities.Todo, filters entities.Filters) []entities.Todo {
	out := make([]entities.Todo, 0, len(todos))
	for _, t := range todos {
		if matches(t, filters) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t entities.Todo, f entities.Filters) bool {
	if len(f.Status) > 0 && !contains(f.Status, string(t.Status)) {
		return false
	}
	if len(f.Priority) > 0 && !contains(f.Priority, string(t.Priority)) {
		return false
	}
	if len(f.Category) > 0 && !contains(f.Category, t.Category) {
		return false
	}
	if len(f.Labels) > 0 && !intersects(f.Labels, t.Labels) {
		return false
	}
	if len(f.AssignedTo) > 0 && !intersects(f.AssignedTo, t.AssignedTo) {
		return false
	}
	return true
}

// ApplySort returns a stably sorted copy of todos. Unknown fields keep the input order.
func ApplySort(todos []entities.Todo, s entities.Sort) []entities.Todo {
	out := append([]entities.Todo{}, todos...)
	less := lessFunc(s.Field)
	if less == nil {
		return out
	}
	desc := s.Direction == entities.SortDesc
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(field string) func(a, b entities.Todo) bool {
	switch field {
	case FieldCreatedAt:
		return func(a, b entities.Todo) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case FieldDueDate:
		// Todos without a due date sort after dated ones in ascending order.
		return func(a, b entities.Todo) bool {
			switch {
			case a.DueDate == "" || b.DueDate == "":
				return a.DueDate != "" && b.DueDate == ""
			case a.DueDate != b.DueDate:
				return a.DueDate < b.DueDate
			default:
				return a.DueTime < b.DueTime
			}
		}
	case FieldPriority:
		return func(a, b entities.Todo) bool { return a.Priority.Rank() < b.Priority.Rank() }
	case FieldStatus:
		return func(a, b entities.Todo) bool { return a.Status.Rank() < b.Status.Rank() }
	case FieldTitle:
		return func(a, b entities.Todo) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	default:
		return nil
	}
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func intersects(wanted, have []string) bool {
	for _, h := range have {
		if contains(wanted, h) {
			return true
		}
	}
	return false
}
