package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/casebandit/casebandit/internal/domain"
	"github.com/casebandit/casebandit/internal/httpserver/deps"
	"github.com/casebandit/casebandit/internal/listview"
	"github.com/casebandit/casebandit/internal/logger"
)

// ListURLs returns a case's records after search, filter and sort.
// Query params: q (substring search), filter, sort.
func ListURLs(d deps.Deps) http.HandlerFunc {
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

		q := listview.Query{
			Search: r.URL.Query().Get("q"),
			Filter: listview.Filter(r.URL.Query().Get("filter")),
			Sort:   listview.SortKey(r.URL.Query().Get("sort")),
		}
		writeJSON(w, http.StatusOK, listview.Apply(c, q))
	}
}

type saveURLResponse struct {
	Record domain.URLRecord `json:"record"`
	Merged bool             `json:"merged"`
}

// SaveURL is the manual-save path: upsert by url within the case.
// 201 on a fresh record, 200 when an existing one was merged into.
func SaveURL(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "caseID")

		var candidate domain.URLRecord
		if !decodeJSON(w, r, &candidate) {
			return
		}
		if candidate.Status == "" {
			candidate.Status = domain.StatusTodo
		}
		if !candidate.Status.Valid() {
			writeError(w, http.StatusBadRequest, "unknown status")
			return
		}
		if !candidate.Priority.Valid() {
			writeError(w, http.StatusBadRequest, "priority outside 0..3")
			return
		}
		candidate.Domain = domain.DomainOf(candidate.URL)

		rec, merged, err := d.Store.UpsertURL(r.Context(), id, candidate)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		d.Logger.Info("url saved",
			logger.String("case_id", id),
			logger.String("url", rec.URL),
			logger.Bool("merged", merged))

		status := http.StatusCreated
		if merged {
			status = http.StatusOK
		}
		writeJSON(w, status, saveURLResponse{Record: rec, Merged: merged})
	}
}

// UpdateURL edits a record in place, keyed by record id.
func UpdateURL(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseID := chi.URLParam(r, "caseID")
		recordID := chi.URLParam(r, "recordID")

		var updated domain.URLRecord
		if !decodeJSON(w, r, &updated) {
			return
		}
		if updated.Status == "" {
			updated.Status = domain.StatusTodo
		}
		if !updated.Status.Valid() {
			writeError(w, http.StatusBadRequest, "unknown status")
			return
		}
		if !updated.Priority.Valid() {
			writeError(w, http.StatusBadRequest, "priority outside 0..3")
			return
		}

		rec, err := d.Store.UpdateURL(r.Context(), caseID, recordID, updated)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// DeleteURL removes a record from a case.
func DeleteURL(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseID := chi.URLParam(r, "caseID")
		recordID := chi.URLParam(r, "recordID")

		if err := d.Store.DeleteURL(r.Context(), caseID, recordID); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// VisitURL registers a visit: bumps the visit counter and last-seen, then
// returns the record so the caller can open its url.
func VisitURL(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseID := chi.URLParam(r, "caseID")
		recordID := chi.URLParam(r, "recordID")

		rec, err := d.Store.VisitURL(r.Context(), caseID, recordID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}
