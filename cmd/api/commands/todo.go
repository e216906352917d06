package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskmaster/tasklist/internal/domain/entities"
	"github.com/taskmaster/tasklist/internal/ports"
)

// NewTodoCommand creates the todo command with subcommands
func NewTodoCommand() *cobra.Command {
	todoCmd := &cobra.Command{
		Use:   "todo",
		Short: "Todo commands",
		Long:  "Create, inspect and change todos",
	}

	todoCmd.AddCommand(
		newTodoAddCommand(),
		newTodoListCommand(),
		newTodoQueryCommand(),
		newTodoShowCommand(),
		newTodoToggleCommand(),
		newTodoDeleteCommand(),
		newTodoUpdateCommand(),
		newSubtaskCommand(),
		newTodoCommentCommand(),
		newTodoAssignCommand(),
		newTodoUnassignCommand(),
		newTodoRemindCommand(),
	)
	return todoCmd
}

func newTodoAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a todo",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			flags := cmd.Flags()
			req := ports.CreateTodoRequest{Title: args[0]}
			req.Description, _ = flags.GetString("description")
			priority, _ := flags.GetString("priority")
			req.Priority = entities.Priority(priority)
			req.DueDate, _ = flags.GetString("due-date")
			req.DueTime, _ = flags.GetString("due-time")
			req.Category, _ = flags.GetString("category")
			req.Labels, _ = flags.GetStringSlice("label")
			req.Subtasks, _ = flags.GetStringArray("subtask")
			req.AssignedTo, _ = flags.GetStringSlice("assign")
			req.Attachments, _ = flags.GetStringArray("attachment")
			req.Reminder, _ = flags.GetBool("reminder")
			recurring, _ := flags.GetString("recurring")
			req.Recurring = entities.Recurring(recurring)
			req.Color, _ = flags.GetString("color")

			todo, err := s.app.TodoService.CreateTodo(commandContext(cmd), req)
			if err != nil {
				return err
			}
			return s.out.Success("Created todo %s", todo.ID)
		}),
	}

	flags := cmd.Flags()
	flags.StringP("description", "d", "", "Todo description")
	flags.StringP("priority", "p", "", "Priority (low, medium, high)")
	flags.String("due-date", "", "Due date")
	flags.String("due-time", "", "Due time")
	flags.StringP("category", "c", "", "Category (added to the vocabulary when new)")
	flags.StringSliceP("label", "l", nil, "Labels (repeatable or comma separated)")
	flags.StringArray("subtask", nil, "Subtask title (repeatable)")
	flags.StringSlice("assign", nil, "Assigned user ids")
	flags.StringArray("attachment", nil, "Attachment name (repeatable)")
	flags.Bool("reminder", false, "Set a reminder at creation time")
	flags.String("recurring", "", "Recurrence (none, daily, weekly, monthly)")
	flags.String("color", "", "Display color")
	return cmd
}

func newTodoListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List todos matching the search term",
		Long:  "List todos whose title or description contains the stored search term, or --search when given",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			var search *string
			if cmd.Flags().Changed("search") {
				term, _ := cmd.Flags().GetString("search")
				search = &term
			}
			return s.out.Todos(s.app.TodoService.ListTodos(commandContext(cmd), search))
		}),
	}
	cmd.Flags().StringP("search", "s", "", "Search term overriding the stored one")
	return cmd
}

func newTodoQueryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "query",
		Short: "List todos with the stored filters and sort applied",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			return s.out.Todos(s.app.TodoService.QueryTodos(commandContext(cmd)))
		}),
	}
}

func newTodoShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a todo with its subtasks and comments",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			todo, err := s.app.TodoService.GetTodo(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return s.out.Todo(*todo)
		}),
	}
}

func newTodoToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Advance the status: pending, in-progress, completed, pending",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			todo := s.app.TodoService.ToggleStatus(commandContext(cmd), args[0])
			if todo == nil {
				return notFound(args[0])
			}
			return s.out.Success("%s is now %s", todo.ID, todo.Status)
		}),
	}
}

func newTodoDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			if !s.app.TodoService.DeleteTodo(commandContext(cmd), args[0]) {
				return s.out.Notice("No todo %s", args[0])
			}
			return s.out.Success("Deleted todo %s", args[0])
		}),
	}
}

func newTodoUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a todo",
		Long:  "Replace the fields given as flags and keep the others",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			ctx := commandContext(cmd)
			current, err := s.app.TodoService.GetTodo(ctx, args[0])
			if err != nil {
				return err
			}

			req := ports.UpdateTodoRequest{
				Title:       current.Title,
				Description: current.Description,
				Priority:    current.Priority,
				DueDate:     current.DueDate,
				DueTime:     current.DueTime,
				Status:      current.Status,
				Category:    current.Category,
				Labels:      current.Labels,
				AssignedTo:  current.AssignedTo,
				Attachments: current.Attachments,
				Reminder:    current.Reminder,
				Recurring:   current.Recurring,
				Color:       current.Color,
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title, _ = flags.GetString("title")
			}
			if flags.Changed("description") {
				req.Description, _ = flags.GetString("description")
			}
			if flags.Changed("priority") {
				v, _ := flags.GetString("priority")
				req.Priority = entities.Priority(v)
			}
			if flags.Changed("status") {
				v, _ := flags.GetString("status")
				req.Status = entities.Status(v)
			}
			if flags.Changed("due-date") {
				req.DueDate, _ = flags.GetString("due-date")
			}
			if flags.Changed("due-time") {
				req.DueTime, _ = flags.GetString("due-time")
			}
			if flags.Changed("category") {
				req.Category, _ = flags.GetString("category")
			}
			if flags.Changed("label") {
				req.Labels, _ = flags.GetStringSlice("label")
			}
			if flags.Changed("recurring") {
				v, _ := flags.GetString("recurring")
				req.Recurring = entities.Recurring(v)
			}
			if flags.Changed("color") {
				req.Color, _ = flags.GetString("color")
			}

			todo, err := s.app.TodoService.UpdateTodo(ctx, args[0], req)
			if err != nil {
				return err
			}
			if todo == nil {
				return notFound(args[0])
			}
			return s.out.Success("Updated todo %s", todo.ID)
		}),
	}

	flags := cmd.Flags()
	flags.StringP("title", "t", "", "Title")
	flags.StringP("description", "d", "", "Description")
	flags.StringP("priority", "p", "", "Priority (low, medium, high)")
	flags.String("status", "", "Status (pending, in-progress, completed)")
	flags.String("due-date", "", "Due date")
	flags.String("due-time", "", "Due time")
	flags.StringP("category", "c", "", "Category")
	flags.StringSliceP("label", "l", nil, "Labels, replacing the current ones")
	flags.String("recurring", "", "Recurrence (none, daily, weekly, monthly)")
	flags.String("color", "", "Display color")
	return cmd
}

func newSubtaskCommand() *cobra.Command {
	subtaskCmd := &cobra.Command{
		Use:   "subtask",
		Short: "Subtask commands",
	}

	subtaskCmd.AddCommand(&cobra.Command{
		Use:   "add <todo-id> <title>",
		Short: "Append a subtask",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			todo, err := s.app.TodoService.AddSubtask(commandContext(cmd), args[0], args[1])
			if err != nil {
				return err
			}
			if todo == nil {
				return notFound(args[0])
			}
			added := todo.Subtasks[len(todo.Subtasks)-1]
			return s.out.Success("Added subtask %s to %s", added.ID, todo.ID)
		}),
	})

	subtaskCmd.AddCommand(&cobra.Command{
		Use:   "toggle <todo-id> <subtask-id>",
		Short: "Flip a subtask between done and not done",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			todo := s.app.TodoService.ToggleSubtask(commandContext(cmd), args[0], args[1])
			if todo == nil {
				return notFound(args[0])
			}
			return s.out.Success("%s: %d/%d subtasks done", todo.ID, todo.CompletedSubtasks(), len(todo.Subtasks))
		}),
	})

	return subtaskCmd
}

func newTodoCommentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment <todo-id> <text>",
		Short: "Append a comment",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			author, _ := cmd.Flags().GetString("user")
			todo, err := s.app.TodoService.AddComment(commandContext(cmd), args[0], author, args[1])
			if err != nil {
				return err
			}
			if todo == nil {
				return notFound(args[0])
			}
			return s.out.Success("Commented on %s", todo.ID)
		}),
	}
	cmd.Flags().StringP("user", "u", "", "Author id (defaults to "+entities.DefaultCommentAuthor+")")
	return cmd
}

func newTodoAssignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <todo-id> <user-id>",
		Short: "Assign a user to a todo",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			todo, err := s.app.TodoService.Assign(commandContext(cmd), args[0], args[1])
			if err != nil {
				return err
			}
			if todo == nil {
				return notFound(args[0])
			}
			return s.out.Success("Assigned %s to %s", args[1], todo.ID)
		}),
	}
}

func newTodoUnassignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <todo-id> <user-id>",
		Short: "Remove a user from a todo",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			todo := s.app.TodoService.Unassign(commandContext(cmd), args[0], args[1])
			if todo == nil {
				return notFound(args[0])
			}
			return s.out.Success("Unassigned %s from %s", args[1], todo.ID)
		}),
	}
}

func newTodoRemindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remind <todo-id> [reminder]",
		Short: "Set or clear the reminder of a todo",
		Args:  cobra.RangeArgs(1, 2),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			reminder := ""
			if len(args) == 2 {
				reminder = args[1]
			}
			todo := s.app.TodoService.SetReminder(commandContext(cmd), args[0], reminder)
			if todo == nil {
				return notFound(args[0])
			}
			if reminder == "" {
				return s.out.Success("Cleared reminder of %s", todo.ID)
			}
			return s.out.Success("Reminder of %s set to %s", todo.ID, reminder)
		}),
	}
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", entities.ErrTodoNotFound, id)
}
