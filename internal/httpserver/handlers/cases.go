package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/casebandit/casebandit/internal/httpserver/deps"
	"github.com/casebandit/casebandit/internal/listview"
	"github.com/casebandit/casebandit/internal/logger"
)

type caseSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URLCount int    `json:"urlCount"`
	Default  bool   `json:"default"`
	Active   bool   `json:"active"`
}

// ListCases returns every case with its record count plus the default and
// active flags.
func ListCases(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		coll, err := d.Store.Load(ctx)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		activeID, err := d.Store.ActiveCaseID(ctx)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		out := make([]caseSummary, 0, len(coll.Cases))
		for _, c := range coll.Cases {
			out = append(out, caseSummary{
				ID:       c.ID,
				Name:     c.Name,
				URLCount: len(c.URLs),
				Default:  c.ID == coll.DefaultCaseID,
				Active:   c.ID == activeID,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type createCaseRequest struct {
	Name string `json:"name"`
}

// CreateCase appends a new named case. The first case created becomes both
// the default and the active selection.
func CreateCase(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCaseRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "case name must not be empty")
			return
		}

		c, err := d.Store.CreateCase(r.Context(), req.Name)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

// DeleteCase removes a case and everything in it.
func DeleteCase(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "caseID")
		if err := d.Store.DeleteCase(r.Context(), id); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SetDefaultCase marks a case as the fallback quick-save target.
func SetDefaultCase(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "caseID")
		if err := d.Store.SetDefaultCase(r.Context(), id); err != nil {
			writeStoreError(w, err)
			return
		}
		d.Logger.Info("default case changed", logger.String("case_id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// SetActiveCase records the last-selected case; it wins over the default as
// the quick-save target.
func SetActiveCase(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "caseID")

		coll, err := d.Store.Load(ctx)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if coll.FindCase(id) == nil {
			writeError(w, http.StatusNotFound, "case not found")
			return
		}
		if err := d.Store.SetActiveCaseID(ctx, id); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// CaseStats returns the status counters displayed in the list footer.
func CaseStats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "caseID")

		coll, err := d.Store.Load(r.Context())
		if err != nil {
			writeStoreError(w, err)
			return
		}
		c := coll.FindCase(id)
		if c == nil {
			writeError(w, http.StatusNotFound, "case not found")
			return
		}
		writeJSON(w, http.StatusOK, listview.CountStats(c))
	}
}
