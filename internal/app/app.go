// Package app assembles the stores, the persistence bridge and the services
// over the storage selected by configuration.
package app

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/taskmaster/tasklist/internal/adapters/storage"
	"github.com/taskmaster/tasklist/internal/application/persistence"
	"github.com/taskmaster/tasklist/internal/application/services"
	"github.com/taskmaster/tasklist/internal/application/store"
	"github.com/taskmaster/tasklist/internal/domain/entities"
	"github.com/taskmaster/tasklist/internal/infrastructure/config"
	"github.com/taskmaster/tasklist/internal/infrastructure/logger"
	"github.com/taskmaster/tasklist/internal/infrastructure/metrics"
	"github.com/taskmaster/tasklist/internal/ports"
)

// App holds the constructed components. Stores are empty until Start runs.
type App struct {
	Config    *config.Config
	Logger    *logger.Logger
	Storage   ports.KeyValueStorage
	Metrics   *metrics.Metrics
	Validator *validator.Validate

	TodoStore  *store.TodoStore
	ThemeStore *store.ThemeStore
	Persistor  *persistence.Persistor

	TodoService  *services.TodoService
	ThemeService *services.ThemeService
	AuthService  *services.AuthService
}

// New opens the configured storage and builds every component on top of it
func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	kv, err := storage.Open(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}
	return NewWithStorage(cfg, log, kv), nil
}

// NewWithStorage builds every component over kv
func NewWithStorage(cfg *config.Config, log *logger.Logger, kv ports.KeyValueStorage) *App {
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	todoStore := store.NewTodoStore()
	themeStore := store.NewThemeStore()
	validate := services.NewValidator()

	a := &App{
		Config:     cfg,
		Logger:     log,
		Storage:    kv,
		Metrics:    m,
		Validator:  validate,
		TodoStore:  todoStore,
		ThemeStore: themeStore,
		Persistor:  persistence.NewPersistor(kv, todoStore, themeStore, log, m, cfg.Storage.WriteTimeout),

		TodoService:  services.NewTodoService(todoStore, validate, log),
		ThemeService: services.NewThemeService(themeStore, log),
		AuthService:  services.NewAuthService(cfg.JWT, validate, log),
	}

	todoStore.Subscribe(func(op string, state entities.TodoState) {
		log.LogStoreMutation("todo", op, len(state.Todos))
	})
	themeStore.Subscribe(func(op string, _ entities.ThemeState) {
		log.LogStoreMutation("theme", op, 0)
	})

	return a
}

// Start rehydrates the stores and turns on write-through. Nothing should read
// or mutate the stores before it returns.
func (a *App) Start(ctx context.Context) {
	a.Persistor.Rehydrate(ctx)
	a.Persistor.Start()
	a.Metrics.ObserveStores(a.TodoStore, a.ThemeStore)
}

// Close flushes both states and releases the storage
func (a *App) Close(ctx context.Context) error {
	var flushErr error
	if a.Persistor.Ready() {
		flushErr = a.Persistor.Flush(ctx)
	}
	if err := a.Storage.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return flushErr
}
