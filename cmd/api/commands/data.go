package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskmaster/tasklist/internal/application/export"
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the todo and theme state as json, yaml or toml",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			output, _ := cmd.Flags().GetString("output")
			format, err := resolveFormat(cmd, output)
			if err != nil {
				return err
			}

			data, err := export.Encode(export.Take(s.app.TodoStore, s.app.ThemeStore), format)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			s.log.Infow("State exported", "path", output, "format", format, "size", len(data))
			return s.out.Success("Exported %d todos to %s", s.app.TodoStore.Len(), output)
		}),
	}

	cmd.Flags().StringP("format", "f", "", "Format: json, yaml or toml (default from the output extension, else json)")
	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	return cmd
}

// NewImportCommand creates the import command
func NewImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the todo and theme state with an exported document",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			path := args[0]
			format, err := resolveFormat(cmd, path)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			snapshot, err := export.Decode(data, format)
			if err != nil {
				return err
			}
			export.Restore(snapshot, s.app.TodoStore, s.app.ThemeStore)

			s.log.Infow("State imported", "path", path, "format", format, "todos", len(snapshot.Todo.Todos))
			return s.out.Success("Imported %d todos from %s", len(snapshot.Todo.Todos), path)
		}),
	}

	cmd.Flags().StringP("format", "f", "", "Format: json, yaml or toml (default from the file extension)")
	return cmd
}

// resolveFormat prefers the --format flag and falls back to the file extension.
func resolveFormat(cmd *cobra.Command, path string) (export.Format, error) {
	if name, _ := cmd.Flags().GetString("format"); name != "" {
		return export.ParseFormat(name)
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return export.FormatJSON, nil
	}
	return export.ParseFormat(ext)
}
