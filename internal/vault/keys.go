package vault

// Storage keys. These mirror the logical schema of the browser extension's
// local storage, so a vault fed from an extension backup stays recognizable.
const (
	// KeyCaseData holds the canonical CaseCollection JSON blob.
	KeyCaseData = "case-data"
	// KeyActiveCase holds the last-selected case id.
	KeyActiveCase = "active-case-id"
	// KeyShortcut holds the quick-save chord {modifier, key}.
	KeyShortcut = "custom-shortcut"
	// KeyAutoCapture holds the screenshot-on-quick-save toggle.
	KeyAutoCapture = "auto-capture-setting"
	// KeyNotification holds the user-visible toast toggle (default true).
	KeyNotification = "notification-setting"
	// KeyAudioFeedback holds the sound toggle (default true).
	KeyAudioFeedback = "audio-feedback-setting"
)
