package service

import (
	"context"

	"Share_Space/internal/repository/slot"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type PreferenceService struct {
	slots slot.Store
}

func NewPreferenceService(slots slot.Store) *PreferenceService {
	return &PreferenceService{slots: slots}
}

// Theme defaults to light when nothing was saved.
func (s *PreferenceService) Theme(ctx context.Context, uid string) (string, error) {
	v, ok, err := s.slots.Get(ctx, slot.UserKey(slot.ThemeKey, uid))
	if err != nil {
		return "", err
	}
	if !ok || (v != ThemeDark && v != ThemeLight) {
		return ThemeLight, nil
	}
	return v, nil
}

func (s *PreferenceService) SetTheme(ctx context.Context, uid, theme string) error {
	if theme != ThemeDark && theme != ThemeLight {
		return ErrInvalidTheme
	}
	return s.slots.Set(ctx, slot.UserKey(slot.ThemeKey, uid), theme)
}
