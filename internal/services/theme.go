package services

import (
	"fmt"
	"log"

	"alfredoptarigan/product-sheet-extractor/internal/models"
)

const ThemeKey = "theme"

// PreferenceStore is durable key-value storage for user preferences.
type PreferenceStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

type ThemeService interface {
	SetTheme(theme models.Theme) error
	LoadTheme() models.Theme
	Current() models.Theme
	Class() string
}

type themeService struct {
	store   PreferenceStore
	current models.Theme
}

func NewThemeService(store PreferenceStore) ThemeService {
	return &themeService{
		store:   store,
		current: models.ThemeLight,
	}
}

// SetTheme implements ThemeService.
func (s *themeService) SetTheme(theme models.Theme) error {
	if _, err := models.ParseTheme(string(theme)); err != nil {
		return err
	}
	if err := s.store.Set(ThemeKey, string(theme)); err != nil {
		return fmt.Errorf("failed to persist theme: %w", err)
	}
	s.current = theme
	return nil
}

// LoadTheme implements ThemeService. Missing, unreadable or unknown values
// fall back to the light theme.
func (s *themeService) LoadTheme() models.Theme {
	s.current = models.ThemeLight

	value, ok, err := s.store.Get(ThemeKey)
	if err != nil {
		log.Printf("⚠️  Failed to read theme preference: %v", err)
		return s.current
	}
	if !ok {
		return s.current
	}

	theme, err := models.ParseTheme(value)
	if err != nil {
		log.Printf("⚠️  Ignoring stored theme: %v", err)
		return s.current
	}

	s.current = theme
	return s.current
}

// Current implements ThemeService.
func (s *themeService) Current() models.Theme {
	return s.current
}

// Class implements ThemeService.
func (s *themeService) Class() string {
	return s.current.Class()
}
