// Package cli renders store content for the terminal.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskmaster/tasklist/internal/domain/entities"
)

const (
	cellMaxWidth = 40
	cellEllipsis = "..."
)

type styles struct {
	header    lipgloss.Style
	title     lipgloss.Style
	muted     lipgloss.Style
	label     lipgloss.Style
	success   lipgloss.Style
	errorText lipgloss.Style
	pane      lipgloss.Style
	priority  map[entities.Priority]lipgloss.Style
	status    map[entities.Status]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header:    r.NewStyle().Bold(true).Underline(true),
		title:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("230")),
		muted:     r.NewStyle().Foreground(lipgloss.Color("244")),
		label:     r.NewStyle().Bold(true),
		success:   r.NewStyle().Foreground(lipgloss.Color("2")),
		errorText: r.NewStyle().Foreground(lipgloss.Color("1")),
		pane:      r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1),
		priority: map[entities.Priority]lipgloss.Style{
			entities.PriorityHigh:   r.NewStyle().Foreground(lipgloss.Color("1")),
			entities.PriorityMedium: r.NewStyle().Foreground(lipgloss.Color("3")),
			entities.PriorityLow:    r.NewStyle().Foreground(lipgloss.Color("2")),
		},
		status: map[entities.Status]lipgloss.Style{
			entities.StatusPending:    r.NewStyle().Foreground(lipgloss.Color("250")),
			entities.StatusInProgress: r.NewStyle().Foreground(lipgloss.Color("33")),
			entities.StatusCompleted:  r.NewStyle().Foreground(lipgloss.Color("244")).Strikethrough(true),
		},
	}
}

// Printer writes styled output. Colors are dropped when out is not a terminal.
type Printer struct {
	out    io.Writer
	styles styles
}

// NewPrinter creates a printer bound to out
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

// Todos prints the collection as a table
func (p *Printer) Todos(todos []entities.Todo) error {
	if len(todos) == 0 {
		return p.line(p.styles.muted.Render("No todos yet."))
	}

	rows := make([][]string, 0, len(todos))
	for _, todo := range todos {
		progress := "-"
		if len(todo.Subtasks) > 0 {
			progress = fmt.Sprintf("%d/%d", todo.CompletedSubtasks(), len(todo.Subtasks))
		}
		due := todo.DueDate
		if due == "" {
			due = "-"
		} else if todo.DueTime != "" {
			due += " " + todo.DueTime
		}
		rows = append(rows, []string{
			todo.ID,
			p.styles.status[todo.Status].Render(truncate(todo.Title)),
			p.styles.priority[todo.Priority].Render(string(todo.Priority)),
			p.styles.status[todo.Status].Render(string(todo.Status)),
			todo.Category,
			due,
			progress,
		})
	}

	headers := []string{"ID", "TITLE", "PRIORITY", "STATUS", "CATEGORY", "DUE", "SUBTASKS"}
	_, err := io.WriteString(p.out, p.table(headers, rows))
	return err
}

// Todo prints a single record with its subtasks and comments
func (p *Printer) Todo(todo entities.Todo) error {
	var b strings.Builder
	b.WriteString(p.styles.title.Render(todo.Title))
	b.WriteByte('\n')
	if todo.Description != "" {
		b.WriteString(todo.Description)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	field := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(p.styles.label.Render(name + ":"))
		b.WriteByte(' ')
		b.WriteString(value)
		b.WriteByte('\n')
	}
	field("ID", todo.ID)
	field("Status", p.styles.status[todo.Status].Render(string(todo.Status)))
	field("Priority", p.styles.priority[todo.Priority].Render(string(todo.Priority)))
	field("Category", todo.Category)
	field("Due", strings.TrimSpace(todo.DueDate+" "+todo.DueTime))
	field("Labels", strings.Join(todo.Labels, ", "))
	field("Assigned", strings.Join(userNames(todo.AssignedTo), ", "))
	field("Attachments", strings.Join(todo.Attachments, ", "))
	field("Reminder", todo.Reminder)
	if todo.Recurring != entities.RecurringNone {
		field("Recurring", string(todo.Recurring))
	}
	field("Color", todo.Color)
	field("Created", todo.CreatedAt.Format("2006-01-02 15:04"))

	if len(todo.Subtasks) > 0 {
		b.WriteByte('\n')
		b.WriteString(p.styles.header.Render(fmt.Sprintf("Subtasks %d/%d", todo.CompletedSubtasks(), len(todo.Subtasks))))
		b.WriteByte('\n')
		for _, st := range todo.Subtasks {
			mark := "[ ]"
			title := st.Title
			if st.Completed {
				mark = p.styles.success.Render("[x]")
				title = p.styles.muted.Render(title)
			}
			fmt.Fprintf(&b, "%s %s %s\n", mark, title, p.styles.muted.Render(st.ID))
		}
	}

	if len(todo.Comments) > 0 {
		b.WriteByte('\n')
		b.WriteString(p.styles.header.Render(fmt.Sprintf("Comments (%d)", len(todo.Comments))))
		b.WriteByte('\n')
		for _, c := range todo.Comments {
			fmt.Fprintf(&b, "%s %s\n  %s\n",
				p.styles.label.Render(userName(c.UserID)),
				p.styles.muted.Render(c.CreatedAt.Format("2006-01-02 15:04")),
				c.Text)
		}
	}

	return p.line(p.styles.pane.Render(strings.TrimRight(b.String(), "\n")))
}

// List prints a titled vocabulary
func (p *Printer) List(title string, items []string) error {
	var b strings.Builder
	b.WriteString(p.styles.header.Render(title))
	b.WriteByte('\n')
	for _, item := range items {
		b.WriteString("  - ")
		b.WriteString(item)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(p.out, b.String())
	return err
}

// Pairs prints a titled block of name/value lines with aligned values
func (p *Printer) Pairs(title string, pairs ...[2]string) error {
	width := 0
	for _, pair := range pairs {
		if len(pair[0]) > width {
			width = len(pair[0])
		}
	}

	var b strings.Builder
	b.WriteString(p.styles.header.Render(title))
	b.WriteByte('\n')
	for _, pair := range pairs {
		value := pair[1]
		if value == "" {
			value = p.styles.muted.Render("-")
		}
		fmt.Fprintf(&b, "  %s%s  %s\n", p.styles.label.Render(pair[0]), strings.Repeat(" ", width-len(pair[0])), value)
	}
	_, err := io.WriteString(p.out, b.String())
	return err
}

// Success prints a confirmation line
func (p *Printer) Success(format string, args ...interface{}) error {
	return p.line(p.styles.success.Render(fmt.Sprintf(format, args...)))
}

// Notice prints a dimmed informational line
func (p *Printer) Notice(format string, args ...interface{}) error {
	return p.line(p.styles.muted.Render(fmt.Sprintf(format, args...)))
}

// Failure prints an error line
func (p *Printer) Failure(format string, args ...interface{}) error {
	return p.line(p.styles.errorText.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) line(s string) error {
	_, err := fmt.Fprintln(p.out, s)
	return err
}

// table aligns cells by their rendered width so styled cells stay in columns.
func (p *Printer) table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			b.WriteString(cell)
			if i == len(row)-1 {
				b.WriteByte('\n')
				continue
			}
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+2))
		}
	}

	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = p.styles.label.Render(h)
	}
	writeRow(styled)
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}

func truncate(value string) string {
	value = strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(value)
	runes := []rune(value)
	if len(runes) <= cellMaxWidth {
		return value
	}
	return string(runes[:cellMaxWidth-len(cellEllipsis)]) + cellEllipsis
}

func userName(id string) string {
	for _, u := range entities.DirectoryUsers {
		if u.ID == id {
			return u.Name
		}
	}
	return id
}

func userNames(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, userName(id))
	}
	return out
}
