package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/casebandit/casebandit/internal/codec"
	"github.com/casebandit/casebandit/internal/httpserver/deps"
	"github.com/casebandit/casebandit/internal/logger"
)

// Export streams the whole collection as a downloadable file.
// ?format=json (default) or ?format=csv.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coll, err := d.Store.Load(r.Context())
		if err != nil {
			writeStoreError(w, err)
			return
		}

		format := r.URL.Query().Get("format")
		if format == "" {
			format = "json"
		}
		stamp := time.Now().Format("2006-01-02")

		var data []byte
		var contentType, filename string
		switch format {
		case "json":
			data, err = codec.ExportJSON(coll)
			contentType = "application/json"
			filename = fmt.Sprintf("casebandit-export-%s.json", stamp)
		case "csv":
			data, err = codec.ExportCSV(coll)
			contentType = "text/csv"
			filename = fmt.Sprintf("casebandit-export-%s.csv", stamp)
		default:
			writeError(w, http.StatusBadRequest, "unknown format, want json or csv")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if _, err := w.Write(data); err != nil {
			d.Logger.Debug("failed to write export", logger.Error(err))
		}
	}
}

type importResponse struct {
	Cases   int `json:"cases"`
	Records int `json:"records"`
}

// Import replaces the whole collection with a previously exported JSON
// snapshot. The payload is validated and normalized before anything is
// written; a bad import leaves existing data untouched.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read body: "+err.Error())
			return
		}

		coll, err := codec.ImportJSON(data)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		if err := d.Store.Replace(r.Context(), coll); err != nil {
			writeStoreError(w, err)
			return
		}

		records := 0
		for _, c := range coll.Cases {
			records += len(c.URLs)
		}
		d.Logger.Info("collection imported",
			logger.Int("cases", len(coll.Cases)),
			logger.Int("records", records))
		writeJSON(w, http.StatusOK, importResponse{Cases: len(coll.Cases), Records: records})
	}
}
