package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/casebandit/casebandit/internal/kv"
	"github.com/casebandit/casebandit/internal/shortcut"
)

// Settings are the user toggles consulted on every quick-save.
type Settings struct {
	AutoCapture   bool `json:"autoCapture"`
	Notifications bool `json:"notifications"`
	AudioFeedback bool `json:"audioFeedback"`
}

// DefaultSettings: notifications and audio feedback default to on,
// screenshot auto-capture to off.
func DefaultSettings() Settings {
	return Settings{
		AutoCapture:   false,
		Notifications: true,
		AudioFeedback: true,
	}
}

// LoadSettings reads the three toggles, falling back to defaults for keys
// that were never written.
func (s *Store) LoadSettings(ctx context.Context) (Settings, error) {
	out := DefaultSettings()

	var err error
	if out.AutoCapture, err = s.loadBool(ctx, KeyAutoCapture, out.AutoCapture); err != nil {
		return Settings{}, err
	}
	if out.Notifications, err = s.loadBool(ctx, KeyNotification, out.Notifications); err != nil {
		return Settings{}, err
	}
	if out.AudioFeedback, err = s.loadBool(ctx, KeyAudioFeedback, out.AudioFeedback); err != nil {
		return Settings{}, err
	}
	return out, nil
}

// SaveSettings persists the three toggles under their own keys.
func (s *Store) SaveSettings(ctx context.Context, settings Settings) error {
	if err := s.saveBool(ctx, KeyAutoCapture, settings.AutoCapture); err != nil {
		return err
	}
	if err := s.saveBool(ctx, KeyNotification, settings.Notifications); err != nil {
		return err
	}
	return s.saveBool(ctx, KeyAudioFeedback, settings.AudioFeedback)
}

// LoadChord reads the configured quick-save chord, or the default binding
// if none was ever saved.
func (s *Store) LoadChord(ctx context.Context) (shortcut.Chord, error) {
	data, err := s.kv.Get(ctx, KeyShortcut)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return shortcut.DefaultChord(), nil
		}
		return shortcut.Chord{}, fmt.Errorf("failed to load shortcut: %w", err)
	}

	var chord shortcut.Chord
	if err := json.Unmarshal(data, &chord); err != nil {
		return shortcut.Chord{}, fmt.Errorf("persisted shortcut is malformed: %w", err)
	}
	return chord, nil
}

// SaveChord persists a new chord. The running matcher keeps its installed
// chord; the change applies on next startup.
func (s *Store) SaveChord(ctx context.Context, chord shortcut.Chord) error {
	if err := chord.Validate(); err != nil {
		return fmt.Errorf("invalid shortcut: %w", err)
	}
	data, err := json.Marshal(chord)
	if err != nil {
		return fmt.Errorf("failed to marshal shortcut: %w", err)
	}
	if err := s.kv.Set(ctx, KeyShortcut, data); err != nil {
		return fmt.Errorf("failed to save shortcut: %w", err)
	}
	return nil
}

func (s *Store) loadBool(ctx context.Context, key string, def bool) (bool, error) {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return def, nil
		}
		return false, fmt.Errorf("failed to load %q: %w", key, err)
	}
	b, err := strconv.ParseBool(string(data))
	if err != nil {
		return false, fmt.Errorf("persisted %q is malformed: %w", key, err)
	}
	return b, nil
}

func (s *Store) saveBool(ctx context.Context, key string, val bool) error {
	if err := s.kv.Set(ctx, key, []byte(strconv.FormatBool(val))); err != nil {
		return fmt.Errorf("failed to save %q: %w", key, err)
	}
	return nil
}
