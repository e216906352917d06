// Package persistence mirrors the stores to a key-value medium.
//
// Each store is serialized as a whole under a fixed key. State is read back
// once at startup; afterwards every mutation is written through.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/taskmaster/tasklist/internal/application/store"
	"github.com/taskmaster/tasklist/internal/domain/entities"
	"github.com/taskmaster/tasklist/internal/infrastructure/logger"
	"github.com/taskmaster/tasklist/internal/infrastructure/metrics"
	"github.com/taskmaster/tasklist/internal/ports"
)

const defaultWriteTimeout = 5 * time.Second

// Persistor rehydrates the stores and keeps the medium in step with them.
type Persistor struct {
	storage      ports.KeyValueStorage
	todos        *store.TodoStore
	theme        *store.ThemeStore
	logger       *logger.Logger
	metrics      *metrics.Metrics
	writeTimeout time.Duration

	ready     atomic.Bool
	startOnce sync.Once
}

// NewPersistor creates a persistor. metrics may be nil.
func NewPersistor(storage ports.KeyValueStorage, todos *store.TodoStore, theme *store.ThemeStore, logger *logger.Logger, m *metrics.Metrics, writeTimeout time.Duration) *Persistor {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &Persistor{
		storage:      storage,
		todos:        todos,
		theme:        theme,
		logger:       logger.WithComponent("persistence"),
		metrics:      m,
		writeTimeout: writeTimeout,
	}
}

// Rehydrate loads both state blobs into the stores. Absent, unreadable or
// malformed blobs leave the initial state in place; that is never an error.
func (p *Persistor) Rehydrate(ctx context.Context) {
	todoState := entities.InitialTodoState()
	if p.load(ctx, ports.TodoStateKey, &todoState) {
		todoState.Normalize()
	} else {
		todoState = entities.InitialTodoState()
	}
	p.todos.Hydrate(todoState)

	themeState := entities.InitialThemeState()
	if !p.load(ctx, ports.ThemeStateKey, &themeState) {
		themeState = entities.InitialThemeState()
	}
	p.theme.Hydrate(themeState)

	p.metrics.SetTodos(len(todoState.Todos))
	p.ready.Store(true)

	p.logger.Infow("State rehydrated",
		"todos", len(todoState.Todos),
		"categories", len(todoState.Categories),
		"dark_mode", themeState.DarkMode,
	)
}

// load decodes the blob under key onto dst, which holds the initial state.
// It reports whether dst may be used.
func (p *Persistor) load(ctx context.Context, key string, dst interface{}) bool {
	start := time.Now()
	data, err := p.storage.Get(ctx, key)
	if errors.Is(err, ports.ErrKeyNotFound) {
		p.logger.Debugw("No persisted state", "key", key)
		return false
	}
	if err != nil {
		p.logger.LogPersistence("get", key, 0, elapsedMs(start), err)
		p.metrics.PersistenceError("rehydrate")
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		p.logger.Warnw("Discarding malformed persisted state", "key", key, "error", err.Error())
		p.metrics.PersistenceError("rehydrate")
		return false
	}
	p.logger.LogPersistence("get", key, len(data), elapsedMs(start), nil)
	return true
}

// Start subscribes write-through to both stores. Calling it again has no effect.
func (p *Persistor) Start() {
	p.startOnce.Do(func() {
		p.todos.Subscribe(func(op string, state entities.TodoState) {
			p.writeThrough(ports.TodoStateKey, state)
		})
		p.theme.Subscribe(func(op string, state entities.ThemeState) {
			p.writeThrough(ports.ThemeStateKey, state)
		})
	})
}

func (p *Persistor) writeThrough(key string, state interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
	defer cancel()

	if err := p.write(ctx, key, state); err != nil {
		p.metrics.PersistenceError("write")
	}
}

func (p *Persistor) write(ctx context.Context, key string, state interface{}) error {
	start := time.Now()
	data, err := json.Marshal(state)
	if err != nil {
		p.logger.LogPersistence("set", key, 0, elapsedMs(start), err)
		return fmt.Errorf("failed to encode %s state: %w", key, err)
	}
	if err := p.storage.Set(ctx, key, data); err != nil {
		p.logger.LogPersistence("set", key, len(data), elapsedMs(start), err)
		return fmt.Errorf("failed to write %s state: %w", key, err)
	}
	p.logger.LogPersistence("set", key, len(data), elapsedMs(start), nil)
	p.metrics.PersistenceWrite(key)
	return nil
}

// Flush writes both states now and returns the first error
func (p *Persistor) Flush(ctx context.Context) error {
	if err := p.write(ctx, ports.TodoStateKey, p.todos.Snapshot()); err != nil {
		p.metrics.PersistenceError("flush")
		return err
	}
	if err := p.write(ctx, ports.ThemeStateKey, p.theme.Snapshot()); err != nil {
		p.metrics.PersistenceError("flush")
		return err
	}
	return nil
}

// Purge removes both state blobs from the medium
func (p *Persistor) Purge(ctx context.Context) error {
	for _, key := range []string{ports.TodoStateKey, ports.ThemeStateKey} {
		if err := p.storage.Remove(ctx, key); err != nil {
			p.metrics.PersistenceError("purge")
			return fmt.Errorf("failed to remove %s state: %w", key, err)
		}
	}
	p.logger.Infow("Persisted state purged")
	return nil
}

// Ready reports whether rehydration has completed
func (p *Persistor) Ready() bool {
	return p.ready.Load()
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Nanoseconds()) / 1000000
}
