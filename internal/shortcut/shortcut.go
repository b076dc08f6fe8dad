// Package shortcut implements the quick-save chord matcher: one modifier
// out of {ctrl, alt, shift, meta} plus one character key, case-insensitive
// on the key. There is no debounce; every matching key-down re-triggers.
package shortcut

import (
	"fmt"
	"strings"
)

const (
	ModifierCtrl  = "ctrl"
	ModifierAlt   = "alt"
	ModifierShift = "shift"
	ModifierMeta  = "meta"
)

// Chord is the configured quick-save shortcut.
type Chord struct {
	Modifier string `json:"modifier"`
	Key      string `json:"key"`
}

// DefaultChord is the out-of-the-box binding, ctrl+'<'.
func DefaultChord() Chord {
	return Chord{Modifier: ModifierCtrl, Key: "<"}
}

// Validate rejects chords the matcher cannot evaluate.
func (c Chord) Validate() error {
	switch c.Modifier {
	case ModifierCtrl, ModifierAlt, ModifierShift, ModifierMeta:
	default:
		return fmt.Errorf("unknown modifier %q", c.Modifier)
	}
	if c.Key == "" {
		return fmt.Errorf("chord key must not be empty")
	}
	return nil
}

func (c Chord) String() string {
	return c.Modifier + "+" + strings.ToUpper(c.Key)
}

// KeyEvent is one key-down as reported by a client.
type KeyEvent struct {
	Ctrl  bool   `json:"ctrl"`
	Alt   bool   `json:"alt"`
	Shift bool   `json:"shift"`
	Meta  bool   `json:"meta"`
	Key   string `json:"key"`
}

// Matcher evaluates key events against a chord fixed at construction time.
// A chord change saved elsewhere takes effect only on the next restart;
// there is no live reconfiguration push.
type Matcher struct {
	chord Chord
}

func NewMatcher(chord Chord) *Matcher {
	return &Matcher{chord: chord}
}

// Chord returns the chord this matcher was installed with.
func (m *Matcher) Chord() Chord {
	return m.chord
}

// Match reports whether ev completes the chord. The matcher is stateless
// between events: a match emits and immediately returns to idle.
func (m *Matcher) Match(ev KeyEvent) bool {
	var modifierPressed bool
	switch m.chord.Modifier {
	case ModifierCtrl:
		modifierPressed = ev.Ctrl
	case ModifierAlt:
		modifierPressed = ev.Alt
	case ModifierShift:
		modifierPressed = ev.Shift
	case ModifierMeta:
		modifierPressed = ev.Meta
	}
	return modifierPressed && strings.EqualFold(ev.Key, m.chord.Key)
}
