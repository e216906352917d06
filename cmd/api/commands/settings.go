package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskmaster/tasklist/internal/domain/entities"
	"github.com/taskmaster/tasklist/internal/ports"
)

// NewCategoryCommand creates the category vocabulary command
func NewCategoryCommand() *cobra.Command {
	return newVocabularyCommand("category", "Categories",
		func(s *session, cmd *cobra.Command) []string {
			return s.app.TodoService.Categories(commandContext(cmd))
		},
		func(s *session, cmd *cobra.Command, name string) ([]string, error) {
			return s.app.TodoService.AddCategory(commandContext(cmd), name)
		},
	)
}

// NewLabelCommand creates the label vocabulary command
func NewLabelCommand() *cobra.Command {
	return newVocabularyCommand("label", "Labels",
		func(s *session, cmd *cobra.Command) []string {
			return s.app.TodoService.Labels(commandContext(cmd))
		},
		func(s *session, cmd *cobra.Command, name string) ([]string, error) {
			return s.app.TodoService.AddLabel(commandContext(cmd), name)
		},
	)
}

func newVocabularyCommand(
	use, title string,
	list func(*session, *cobra.Command) []string,
	add func(*session, *cobra.Command, string) ([]string, error),
) *cobra.Command {
	vocabCmd := &cobra.Command{
		Use:   use,
		Short: title + " vocabulary commands",
	}

	vocabCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List " + strings.ToLower(title),
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			return s.out.List(title, list(s, cmd))
		}),
	})

	vocabCmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add to " + strings.ToLower(title) + " unless already present",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			items, err := add(s, cmd, args[0])
			if err != nil {
				return err
			}
			return s.out.List(title, items)
		}),
	})

	return vocabCmd
}

// NewThemeCommand creates the theme command
func NewThemeCommand() *cobra.Command {
	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Theme commands",
	}

	themeCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current theme",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			return s.out.Notice("Theme: %s", s.app.ThemeService.Theme(commandContext(cmd)).Class)
		}),
	})

	themeCmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			return s.out.Success("Theme: %s", s.app.ThemeService.Toggle(commandContext(cmd)).Class)
		}),
	})

	return themeCmd
}

// NewPrefsCommand creates the list-view preferences command
func NewPrefsCommand() *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Filter, sort and search preferences",
	}

	filterFlags := []string{"status", "priority", "category", "labels", "assigned-to"}
	filtersCmd := &cobra.Command{
		Use:   "filters",
		Short: "Show or change the filter preferences",
		Long:  "Without flags the filters are printed. Each given flag replaces that filter list; other lists are kept.",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			ctx := commandContext(cmd)
			flags := cmd.Flags()

			var patch entities.FiltersPatch
			changed := false
			for _, name := range filterFlags {
				if !flags.Changed(name) {
					continue
				}
				values, _ := flags.GetStringSlice(name)
				values = append([]string{}, values...)
				changed = true
				switch name {
				case "status":
					patch.Status = &values
				case "priority":
					patch.Priority = &values
				case "category":
					patch.Category = &values
				case "labels":
					patch.Labels = &values
				case "assigned-to":
					patch.AssignedTo = &values
				}
			}

			filters := s.app.TodoService.Filters(ctx)
			if changed {
				filters = s.app.TodoService.SetFilters(ctx, patch)
			}
			return s.out.Pairs("Filters",
				[2]string{"status", strings.Join(filters.Status, ", ")},
				[2]string{"priority", strings.Join(filters.Priority, ", ")},
				[2]string{"category", strings.Join(filters.Category, ", ")},
				[2]string{"labels", strings.Join(filters.Labels, ", ")},
				[2]string{"assigned-to", strings.Join(filters.AssignedTo, ", ")},
			)
		}),
	}
	for _, name := range filterFlags {
		filtersCmd.Flags().StringSlice(name, nil, "Replace the "+name+" filter (empty value clears it)")
	}

	sortCmd := &cobra.Command{
		Use:   "sort [field] [asc|desc]",
		Short: "Show or change the sort preference",
		Args:  cobra.RangeArgs(0, 2),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			ctx := commandContext(cmd)
			sort := s.app.TodoService.Sort(ctx)
			if len(args) > 0 {
				req := ports.SortRequest{Field: args[0], Direction: sort.Direction}
				if len(args) == 2 {
					req.Direction = entities.SortDirection(args[1])
				}
				var err error
				if sort, err = s.app.TodoService.SetSort(ctx, req); err != nil {
					return err
				}
			}
			return s.out.Pairs("Sort",
				[2]string{"field", sort.Field},
				[2]string{"direction", string(sort.Direction)},
			)
		}),
	}

	searchCmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Show or change the stored search term",
		Args:  cobra.MaximumNArgs(1),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			ctx := commandContext(cmd)
			term := s.app.TodoService.Search(ctx)
			clearTerm, _ := cmd.Flags().GetBool("clear")
			switch {
			case clearTerm:
				term = s.app.TodoService.SetSearch(ctx, "")
			case len(args) == 1:
				term = s.app.TodoService.SetSearch(ctx, args[0])
			}
			return s.out.Pairs("Search", [2]string{"term", term})
		}),
	}
	searchCmd.Flags().Bool("clear", false, "Clear the search term")

	prefsCmd.AddCommand(filtersCmd, sortCmd, searchCmd)
	return prefsCmd
}

// NewTokenCommand creates the identity token command
func NewTokenCommand() *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Identity token commands",
	}

	tokenCmd.AddCommand(&cobra.Command{
		Use:   "issue <user-id>",
		Short: "Issue a bearer token naming the acting user",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			token, err := s.app.AuthService.IssueToken(commandContext(cmd), ports.IssueTokenRequest{UserID: args[0]})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write([]byte(token.AccessToken + "\n"))
			return err
		}),
	})

	return tokenCmd
}
