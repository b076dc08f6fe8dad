// Package notify carries the quick-save feedback surface: a transient badge
// clients poll, plus optional user-visible notifications and sound cues.
// Badges self-expire on fixed delays so clients need no clear call.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/casebandit/casebandit/internal/logger"
)

const (
	successBadgeText = "✓"
	successColor     = "#4caf50"
	successBadgeTTL  = 2 * time.Second

	errorBadgeText = "!"
	errorColor     = "#f44336"
	errorBadgeTTL  = 3 * time.Second

	SoundSuccess = "success"
	SoundError   = "error"
)

// Notifier delivers a user-visible message. The default implementation
// logs; deployments can plug a webhook-style sender instead.
type Notifier interface {
	Notify(title, message string)
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	Log logger.Logger
}

func (n LogNotifier) Notify(title, message string) {
	n.Log.Info("notification",
		logger.String("title", title),
		logger.String("message", message))
}

// Badge is the transient indicator on the extension icon.
type Badge struct {
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
}

// State is what clients poll: the current badge plus the sound cue to play,
// both cleared together when the badge expires.
type State struct {
	Badge Badge  `json:"badge"`
	Sound string `json:"sound,omitempty"`
}

// Feedback owns the badge state machine.
type Feedback struct {
	mu       sync.Mutex
	state    State
	timer    *time.Timer
	notifier Notifier
	log      logger.Logger
}

func NewFeedback(notifier Notifier, log logger.Logger) *Feedback {
	return &Feedback{
		notifier: notifier,
		log:      log,
	}
}

// Saved flashes the success badge and, per the toggles, emits a sound cue
// and a notification naming the target case.
func (f *Feedback) Saved(caseName, title string, notifications, audio bool) {
	sound := ""
	if audio {
		sound = SoundSuccess
	}
	f.flash(Badge{Text: successBadgeText, Color: successColor}, sound, successBadgeTTL)

	if notifications {
		f.notifier.Notify("✅ CaseBandit",
			fmt.Sprintf("🔗 URL saved to %q\n\n%s", caseName, title))
	}
}

// NoTargetCase flashes the error badge: quick-save had nowhere to go.
func (f *Feedback) NoTargetCase(notifications, audio bool) {
	sound := ""
	if audio {
		sound = SoundError
	}
	f.flash(Badge{Text: errorBadgeText, Color: errorColor}, sound, errorBadgeTTL)

	if notifications {
		f.notifier.Notify("⚠️ CaseBandit",
			"❌ No case selected. Please select or create a case first.")
	}
}

// SaveFailed flashes the error badge after a persistence failure.
func (f *Feedback) SaveFailed(err error, notifications, audio bool) {
	f.log.Error("quick-save persistence failed", logger.Error(err))

	sound := ""
	if audio {
		sound = SoundError
	}
	f.flash(Badge{Text: errorBadgeText, Color: errorColor}, sound, errorBadgeTTL)

	if notifications {
		f.notifier.Notify("⚠️ CaseBandit", "❌ Saving failed. The URL was not stored.")
	}
}

// Snapshot returns the current transient state.
func (f *Feedback) Snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Feedback) flash(b Badge, sound string, ttl time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.timer != nil {
		f.timer.Stop()
	}
	f.state = State{Badge: b, Sound: sound}
	f.timer = time.AfterFunc(ttl, f.clear)
}

func (f *Feedback) clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = State{}
}
