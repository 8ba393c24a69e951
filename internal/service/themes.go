package service

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"rhiza/internal/style"
)

// ThemeStore holds the theme new visualizations start with.
// Running visualizations keep the copy they were created with.
type ThemeStore struct {
	mu    sync.RWMutex
	theme *style.Theme
	bus   *EventBus
	log   *zap.Logger
}

// NewThemeStore creates a store holding initial; nil selects the basic preset
func NewThemeStore(initial *style.Theme, bus *EventBus, logger *zap.Logger) *ThemeStore {
	if initial == nil {
		initial = style.BasicTheme()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ThemeStore{theme: initial.Clone(), bus: bus, log: logger}
}

// Theme returns a copy of the current theme
func (s *ThemeStore) Theme() *style.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme.Clone()
}

// Set replaces the current theme after validating it
func (s *ThemeStore) Set(t *style.Theme) error {
	if t == nil {
		return fmt.Errorf("theme is nil")
	}
	if err := t.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.theme = t.Clone()
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(Event{
			Type:    EventThemeReloaded,
			Payload: map[string]string{"theme": t.Name},
		})
	}
	return nil
}

// UsePreset switches to a named preset
func (s *ThemeStore) UsePreset(name string) error {
	t, err := style.Preset(name)
	if err != nil {
		return err
	}
	return s.Set(t)
}

// LoadFile reads a theme file and makes it current. On error the current
// theme is kept.
func (s *ThemeStore) LoadFile(path string) error {
	t, err := style.LoadThemeFile(path)
	if err != nil {
		s.log.Warn("theme reload failed, keeping current theme",
			zap.String("path", path), zap.Error(err))
		return err
	}
	if err := s.Set(t); err != nil {
		return err
	}
	s.log.Info("theme loaded", zap.String("path", path), zap.String("theme", t.Name))
	return nil
}
