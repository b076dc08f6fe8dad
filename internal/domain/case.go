package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Status is the investigation state of a saved URL record.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Rank returns the fixed sort rank: todo < in-progress < done.
func (s Status) Rank() int {
	switch s {
	case StatusTodo:
		return 1
	case StatusInProgress:
		return 2
	case StatusDone:
		return 3
	}
	return 0
}

// Priority is the numeric priority of a record: 0=none, 1=low, 2=medium, 3=high.
type Priority int

const (
	PriorityNone   Priority = 0
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// Valid reports whether p is inside the allowed range.
// Anything outside 0..3 is an implementation error, not a valid state.
func (p Priority) Valid() bool {
	return p >= PriorityNone && p <= PriorityHigh
}

// URLRecord is a single saved URL inside a case.
//
// JSON field names match the storage schema of the companion browser
// extension, so an exported backup file imports cleanly.
type URLRecord struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is unique within its case, generated at creation, never reused.
	ID string `json:"id"`

	// ─────────────────────────────
	// Page description
	// ─────────────────────────────

	URL   string   `json:"url"`
	Title string   `json:"title"`
	Notes string   `json:"notes"`
	Tags  []string `json:"tags"`

	// ─────────────────────────────
	// Triage
	// ─────────────────────────────

	Status   Status   `json:"status"`
	Priority Priority `json:"priority"`

	// Domain is derived from the URL host, or "unknown" if unparsable.
	Domain string `json:"domain"`

	// ─────────────────────────────
	// Observation
	// ─────────────────────────────

	Created    time.Time `json:"created"`
	LastSeen   time.Time `json:"lastSeen"`
	VisitCount int       `json:"visitCount"`

	// Screenshot is a data:image/... URL, empty when no capture was taken.
	Screenshot        string    `json:"screenshot,omitempty"`
	ScreenshotTakenAt time.Time `json:"screenshotTakenAt,omitzero"`
}

// Case is a named investigation container holding an ordered list of records.
type Case struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	URLs []URLRecord `json:"urls"`
}

// FindURL returns the record with the given id, or nil.
func (c *Case) FindURL(id string) *URLRecord {
	for i := range c.URLs {
		if c.URLs[i].ID == id {
			return &c.URLs[i]
		}
	}
	return nil
}

// FindByAddress returns the record with the given url, or nil.
// Within one case the manual-save path keeps url unique.
func (c *Case) FindByAddress(url string) *URLRecord {
	for i := range c.URLs {
		if c.URLs[i].URL == url {
			return &c.URLs[i]
		}
	}
	return nil
}

// CaseCollection is the root persisted object.
type CaseCollection struct {
	Cases []Case `json:"cases"`

	// DefaultCaseID references an existing case or is empty.
	DefaultCaseID string `json:"defaultCaseId,omitempty"`
}

// NewCollection returns an empty collection.
func NewCollection() *CaseCollection {
	return &CaseCollection{Cases: []Case{}}
}

// FindCase returns the case with the given id, or nil.
func (cc *CaseCollection) FindCase(id string) *Case {
	if id == "" {
		return nil
	}
	for i := range cc.Cases {
		if cc.Cases[i].ID == id {
			return &cc.Cases[i]
		}
	}
	return nil
}

// Validate checks the structural invariants the store relies on: known
// statuses, priorities inside 0..3, unique case ids. Used on import, where
// any parseable JSON used to be accepted blindly.
func (cc *CaseCollection) Validate() error {
	seen := make(map[string]bool, len(cc.Cases))
	for i := range cc.Cases {
		c := &cc.Cases[i]
		if c.ID == "" {
			return fmt.Errorf("case %q has no id", c.Name)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate case id %q", c.ID)
		}
		seen[c.ID] = true
		for j := range c.URLs {
			rec := &c.URLs[j]
			if !rec.Status.Valid() {
				return fmt.Errorf("case %q: record %q has unknown status %q", c.Name, rec.ID, rec.Status)
			}
			if !rec.Priority.Valid() {
				return fmt.Errorf("case %q: record %q has priority %d outside 0..3", c.Name, rec.ID, rec.Priority)
			}
		}
	}
	return nil
}

// Normalize repairs the soft invariants: a dangling DefaultCaseID is
// reassigned to the first case (or cleared), visit counts are floored at 1,
// nil slices become empty ones.
func (cc *CaseCollection) Normalize() {
	if cc.Cases == nil {
		cc.Cases = []Case{}
	}
	if cc.FindCase(cc.DefaultCaseID) == nil {
		if len(cc.Cases) > 0 {
			cc.DefaultCaseID = cc.Cases[0].ID
		} else {
			cc.DefaultCaseID = ""
		}
	}
	for i := range cc.Cases {
		c := &cc.Cases[i]
		if c.URLs == nil {
			c.URLs = []URLRecord{}
		}
		for j := range c.URLs {
			if c.URLs[j].VisitCount < 1 {
				c.URLs[j].VisitCount = 1
			}
			if c.URLs[j].Tags == nil {
				c.URLs[j].Tags = []string{}
			}
		}
	}
}

// NewID returns a time-derived opaque identifier.
func NewID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

// NewQuickSaveRecord builds the record the quick-save path appends:
// everything defaulted, domain derived best-effort from the URL.
func NewQuickSaveRecord(url, title string, now time.Time) URLRecord {
	return URLRecord{
		ID:         NewID(),
		URL:        url,
		Title:      title,
		Notes:      "",
		Tags:       []string{},
		Status:     StatusTodo,
		Priority:   PriorityNone,
		Domain:     DomainOf(url),
		Created:    now,
		LastSeen:   now,
		VisitCount: 1,
	}
}
