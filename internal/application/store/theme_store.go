package store

import (
	"sync"

	"github.com/taskmaster/tasklist/internal/domain/entities"
)

// Operations reported to theme listeners.
const (
	OpToggleTheme  = "toggleTheme"
	OpReplaceTheme = "replaceTheme"
)

// ThemeListener observes theme store mutations.
type ThemeListener func(op string, state entities.ThemeState)

// ThemeStore holds the dark/light preference.
type ThemeStore struct {
	mu        sync.RWMutex
	state     entities.ThemeState
	listeners []ThemeListener
}

// NewThemeStore creates a store in light mode.
func NewThemeStore() *ThemeStore {
	return &ThemeStore{state: entities.InitialThemeState()}
}

// Subscribe registers a listener for every subsequent toggle.
func (s *ThemeStore) Subscribe(listener ThemeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Hydrate replaces the state without notifying listeners.
func (s *ThemeStore) Hydrate(state entities.ThemeState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// ToggleTheme flips dark mode.
func (s *ThemeStore) ToggleTheme() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.DarkMode = !s.state.DarkMode
	for _, listener := range s.listeners {
		listener(OpToggleTheme, s.state)
	}
}

// Replace sets the state and notifies listeners when it changed.
func (s *ThemeStore) Replace(state entities.ThemeState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == state {
		return
	}
	s.state = state
	for _, listener := range s.listeners {
		listener(OpReplaceTheme, s.state)
	}
}

// DarkMode reports the current flag.
func (s *ThemeStore) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.DarkMode
}

// Snapshot returns the current state.
func (s *ThemeStore) Snapshot() entities.ThemeState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
