// Package codec serializes the case collection for backup and export.
// JSON round-trips; CSV is a one-way flattened export.
package codec

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/casebandit/casebandit/internal/domain"
)

// csvHeader is the fixed column order of the CSV export.
var csvHeader = []string{
	"Case Name",
	"URL",
	"Title",
	"Notes",
	"Tags",
	"Status",
	"Priority",
	"Has Screenshot",
	"Screenshot Taken At",
	"Created",
	"Last Seen",
	"Visit Count",
}

// ExportJSON renders the full collection, pretty-printed.
func ExportJSON(coll *domain.CaseCollection) ([]byte, error) {
	data, err := json.MarshalIndent(coll, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export json: %w", err)
	}
	return data, nil
}

// ExportCSV renders one row per record across all cases, case name first.
// Quoting follows standard CSV escaping (internal quotes doubled).
func ExportCSV(coll *domain.CaseCollection) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for i := range coll.Cases {
		c := &coll.Cases[i]
		for j := range c.URLs {
			rec := &c.URLs[j]
			hasScreenshot := "No"
			if rec.Screenshot != "" {
				hasScreenshot = "Yes"
			}
			row := []string{
				c.Name,
				rec.URL,
				rec.Title,
				rec.Notes,
				strings.Join(rec.Tags, "; "),
				string(rec.Status),
				strconv.Itoa(int(rec.Priority)),
				hasScreenshot,
				formatTime(rec.ScreenshotTakenAt),
				formatTime(rec.Created),
				formatTime(rec.LastSeen),
				strconv.Itoa(rec.VisitCount),
			}
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportJSON parses a JSON backup into a collection. A parse or validation
// failure returns an error without touching any state; on success the
// collection comes back normalized (dangling default repaired, visit counts
// floored) and ready to replace the persisted one.
func ImportJSON(data []byte) (*domain.CaseCollection, error) {
	var coll domain.CaseCollection
	if err := json.Unmarshal(data, &coll); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if err := coll.Validate(); err != nil {
		return nil, fmt.Errorf("import rejected: %w", err)
	}
	coll.Normalize()
	return &coll, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
