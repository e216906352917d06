package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/taskmaster/tasklist/internal/adapters/cli"
	"github.com/taskmaster/tasklist/internal/app"
	"github.com/taskmaster/tasklist/internal/infrastructure/config"
	"github.com/taskmaster/tasklist/internal/infrastructure/database"
	"github.com/taskmaster/tasklist/internal/infrastructure/logger"
	"github.com/taskmaster/tasklist/internal/infrastructure/server"
)

// Build information, set with -ldflags at release time
var (
	Version   = "1.0.0"
	BuildDate = "unknown"
	GitCommit = "development"
)

// NewRootCommand assembles the tasklist command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tasklist",
		Short:         "TaskList todo manager",
		Long:          `TaskList keeps a single list of todos with subtasks, comments, assignments and reminders. It serves an HTTP API and can drive the same state from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewMigrateCommand())
	rootCmd.AddCommand(NewTodoCommand())
	rootCmd.AddCommand(NewCategoryCommand())
	rootCmd.AddCommand(NewLabelCommand())
	rootCmd.AddCommand(NewThemeCommand())
	rootCmd.AddCommand(NewPrefsCommand())
	rootCmd.AddCommand(NewTokenCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewImportCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the TaskList API server",
		Long:  "Rehydrate the stores from storage and serve the API and views until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage the postgres kv_store migrations (up, down, version)",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Run up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			return runMigration(cmd, "up", steps)
		},
	}
	upCmd.Flags().Int("steps", 0, "Number of migrations to apply (0 for all)")

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Run down migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			return runMigration(cmd, "down", steps)
		},
	}
	downCmd.Flags().Int("steps", 0, "Number of migrations to revert (0 for all)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showMigrationVersion(cmd)
		},
	}

	migrateCmd.AddCommand(upCmd, downCmd, versionCmd)
	return migrateCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print TaskList version",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "TaskList v%s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}

func runServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	a, err := app.New(cfg, appLogger)
	if err != nil {
		return err
	}
	a.Start(ctx)

	srv, err := server.New(cfg, a, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	appLogger.Infow("Starting TaskList API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"storage", cfg.Storage.Driver,
	)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(cfg.Server.GetAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if err != nil {
			appLogger.Errorw("Server failed", "error", err)
			_ = a.Close(ctx)
			return fmt.Errorf("server failed: %w", err)
		}
	case <-quit:
	}

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorw("Server forced to shutdown", "error", err)
	}
	if err := a.Close(shutdownCtx); err != nil {
		appLogger.Errorw("Failed to flush state on shutdown", "error", err)
		return err
	}

	appLogger.Info("Server exited")
	return nil
}

func openMigrationDB() (*database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.New(database.DriverPostgres, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func runMigration(cmd *cobra.Command, direction string, steps int) error {
	db, err := openMigrationDB()
	if err != nil {
		return err
	}
	defer db.Close()

	p := cli.NewPrinter(cmd.OutOrStdout())

	err = db.Migrate(direction, steps)
	if errors.Is(err, migrate.ErrNoChange) {
		return p.Notice("No migrations to run")
	}
	if err != nil {
		return err
	}
	return p.Success("Migration %s completed successfully", direction)
}

func showMigrationVersion(cmd *cobra.Command) error {
	db, err := openMigrationDB()
	if err != nil {
		return err
	}
	defer db.Close()

	version, dirty, err := db.MigrationVersion()
	if errors.Is(err, migrate.ErrNilVersion) {
		return cli.NewPrinter(cmd.OutOrStdout()).Notice("No migrations applied")
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Current migration version: %d\n", version)
	fmt.Fprintf(out, "Dirty: %t\n", dirty)
	return nil
}

// session is the state a store command works on: the app rehydrated from
// the configured storage with write-through enabled.
type session struct {
	app *app.App
	out *cli.Printer
	log *logger.Logger
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logCfg := cfg.Logger
	if logCfg.Output != "file" {
		logCfg.Output = "stderr"
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a, err := app.New(cfg, log)
	if err != nil {
		return nil, err
	}
	a.Start(commandContext(cmd))

	return &session{app: a, out: cli.NewPrinter(cmd.OutOrStdout()), log: log}, nil
}

func (s *session) close(ctx context.Context) error {
	defer s.log.Close()

	flushCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.app.Close(flushCtx)
}

// withSession opens a session, runs fn and flushes the stores afterwards.
func withSession(fn func(cmd *cobra.Command, args []string, s *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}

		runErr := fn(cmd, args, s)
		closeErr := s.close(commandContext(cmd))
		if runErr != nil {
			return runErr
		}
		return closeErr
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
