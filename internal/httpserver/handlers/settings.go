package handlers

import (
	"net/http"

	"github.com/casebandit/casebandit/internal/httpserver/deps"
	"github.com/casebandit/casebandit/internal/shortcut"
	"github.com/casebandit/casebandit/internal/vault"
)

// GetSettings returns the three quick-save toggles.
func GetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := d.Store.LoadSettings(r.Context())
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)
	}
}

// PutSettings overwrites the three quick-save toggles. The new values take
// effect on the next quick-save; there is no partial update.
func PutSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings vault.Settings
		if !decodeJSON(w, r, &settings) {
			return
		}
		if err := d.Store.SaveSettings(r.Context(), settings); err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)
	}
}

// GetShortcut returns the chord the running matcher is using.
func GetShortcut(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Matcher.Chord())
	}
}

// PutShortcut persists a new chord. The running matcher is fixed at
// startup, so the change applies on the next restart.
func PutShortcut(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var chord shortcut.Chord
		if !decodeJSON(w, r, &chord) {
			return
		}
		if err := d.Store.SaveChord(r.Context(), chord); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, chord)
	}
}
