package handlers

import (
	"net/http"

	"github.com/casebandit/casebandit/internal/httpserver/deps"
)

// Badge returns the current feedback state (badge text/color plus the
// pending sound cue). Clients poll it to mirror the save outcome.
func Badge(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, d.Feedback.Snapshot())
	}
}
