package records

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dvloznov/monarch/internal/domain"
	"github.com/dvloznov/monarch/internal/store"
)

// ThemeService reads and writes the UI theme preference.
type ThemeService struct {
	store *store.Store
	log   zerolog.Logger
}

// NewThemeService creates a theme service over the store.
func NewThemeService(st *store.Store, log zerolog.Logger) *ThemeService {
	return &ThemeService{store: st, log: log}
}

// Get returns the persisted theme, defaulting to system.
func (s *ThemeService) Get(ctx context.Context) domain.Theme {
	return s.store.LoadTheme(ctx)
}

// Set validates and persists the theme preference.
func (s *ThemeService) Set(ctx context.Context, theme domain.Theme) error {
	if !theme.Valid() {
		return &domain.ValidationError{Field: "theme", Message: "unknown theme"}
	}
	s.store.SaveTheme(ctx, theme)
	return nil
}
