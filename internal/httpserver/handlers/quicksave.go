package handlers

import (
	"net/http"

	"github.com/casebandit/casebandit/internal/httpserver/deps"
	"github.com/casebandit/casebandit/internal/logger"
	"github.com/casebandit/casebandit/internal/quicksave"
	"github.com/casebandit/casebandit/internal/shortcut"
)

// QuickSave hands the page off to the quick-save orchestrator without
// waiting for the save to finish. 202 when queued, 429 when a save is
// already in flight.
func QuickSave(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req quicksave.Request
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.URL == "" {
			writeError(w, http.StatusBadRequest, "url must not be empty")
			return
		}

		select {
		case d.QuickSaveTrigger <- req:
			d.Logger.Info("quick-save queued", logger.String("url", req.URL))
			w.WriteHeader(http.StatusAccepted)
		default:
			d.Logger.Warn("quick-save already in progress", logger.String("url", req.URL))
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}
}

type keypressRequest struct {
	Event shortcut.KeyEvent `json:"event"`
	URL   string            `json:"url"`
	Title string            `json:"title"`
}

type keypressResponse struct {
	Matched bool `json:"matched"`
	Queued  bool `json:"queued"`
}

// Keypress evaluates a raw key event against the installed chord. A match
// queues a quick-save for the reported page; anything else is a no-op.
func Keypress(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req keypressRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if !d.Matcher.Match(req.Event) {
			writeJSON(w, http.StatusOK, keypressResponse{})
			return
		}
		if req.URL == "" {
			writeError(w, http.StatusBadRequest, "matched chord but no url reported")
			return
		}

		out := keypressResponse{Matched: true}
		select {
		case d.QuickSaveTrigger <- quicksave.Request{URL: req.URL, Title: req.Title}:
			out.Queued = true
		default:
			d.Logger.Warn("quick-save already in progress", logger.String("url", req.URL))
		}
		writeJSON(w, http.StatusOK, out)
	}
}
