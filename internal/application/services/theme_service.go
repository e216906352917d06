package services

import (
	"context"

	"github.com/taskmaster/tasklist/internal/application/store"
	"github.com/taskmaster/tasklist/internal/infrastructure/logger"
	"github.com/taskmaster/tasklist/internal/ports"
)

// ThemeService exposes the theme store
type ThemeService struct {
	store  *store.ThemeStore
	logger *logger.Logger
}

// NewThemeService creates a new theme service
func NewThemeService(themeStore *store.ThemeStore, logger *logger.Logger) *ThemeService {
	return &ThemeService{
		store:  themeStore,
		logger: logger.WithComponent("theme_service"),
	}
}

// Theme returns the current theme
func (s *ThemeService) Theme(ctx context.Context) ports.ThemeResponse {
	state := s.store.Snapshot()
	return ports.ThemeResponse{DarkMode: state.DarkMode, Class: state.ThemeClass()}
}

// Toggle flips dark mode and returns the new theme
func (s *ThemeService) Toggle(ctx context.Context) ports.ThemeResponse {
	s.store.ToggleTheme()
	theme := s.Theme(ctx)
	s.logger.Infow("Theme toggled", "theme", theme.Class)
	return theme
}

// DarkMode reports whether dark mode is on
func (s *ThemeService) DarkMode(ctx context.Context) bool {
	return s.store.DarkMode()
}
