// Package listview turns a case into the ordered record list a client
// renders: search + status/priority filter, then a stable sort.
package listview

import (
	"sort"
	"strings"

	"github.com/casebandit/casebandit/internal/domain"
)

// Filter selects records by status or priority.
type Filter string

const (
	FilterAll          Filter = "all"
	FilterTodo         Filter = "todo"
	FilterInProgress   Filter = "in-progress"
	FilterDone         Filter = "done"
	FilterHighPriority Filter = "high-priority"
)

// SortKey orders the filtered records.
type SortKey string

const (
	SortLastSeenDesc SortKey = "lastSeen-desc"
	SortCreatedDesc  SortKey = "created-desc"
	SortCreatedAsc   SortKey = "created-asc"
	SortTitleAsc     SortKey = "title-asc"
	SortTitleDesc    SortKey = "title-desc"
	SortStatus       SortKey = "status"
	SortPriorityDesc SortKey = "priority-desc"
	SortDomainAsc    SortKey = "domain"
)

// Query is everything the list view depends on besides the case itself.
type Query struct {
	Search string
	Filter Filter
	Sort   SortKey
}

// Apply is a pure function of (case, query): it never mutates c and returns
// a fresh slice. Ties keep their original order (stable sort).
func Apply(c *domain.Case, q Query) []domain.URLRecord {
	if q.Filter == "" {
		q.Filter = FilterAll
	}
	if q.Sort == "" {
		q.Sort = SortLastSeenDesc
	}

	term := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]domain.URLRecord, 0, len(c.URLs))
	for _, rec := range c.URLs {
		if matchesSearch(&rec, term) && matchesFilter(&rec, q.Filter) {
			out = append(out, rec)
		}
	}

	sortRecords(out, q.Sort)
	return out
}

// matchesSearch: an empty term matches everything, otherwise the term must
// be a case-insensitive substring of title, url, notes or any tag.
func matchesSearch(rec *domain.URLRecord, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(rec.Title), term) ||
		strings.Contains(strings.ToLower(rec.URL), term) ||
		strings.Contains(strings.ToLower(rec.Notes), term) {
		return true
	}
	for _, tag := range rec.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func matchesFilter(rec *domain.URLRecord, f Filter) bool {
	switch f {
	case FilterTodo:
		return rec.Status == domain.StatusTodo
	case FilterInProgress:
		return rec.Status == domain.StatusInProgress
	case FilterDone:
		return rec.Status == domain.StatusDone
	case FilterHighPriority:
		return rec.Priority == domain.PriorityHigh
	default:
		return true
	}
}

func sortRecords(recs []domain.URLRecord, key SortKey) {
	var less func(a, b *domain.URLRecord) bool

	switch key {
	case SortCreatedDesc:
		less = func(a, b *domain.URLRecord) bool { return a.Created.After(b.Created) }
	case SortCreatedAsc:
		less = func(a, b *domain.URLRecord) bool { return a.Created.Before(b.Created) }
	case SortTitleAsc:
		// Byte-wise comparison: case-sensitive, uppercase before lowercase.
		less = func(a, b *domain.URLRecord) bool { return strings.Compare(a.Title, b.Title) < 0 }
	case SortTitleDesc:
		less = func(a, b *domain.URLRecord) bool { return strings.Compare(a.Title, b.Title) > 0 }
	case SortStatus:
		less = func(a, b *domain.URLRecord) bool { return a.Status.Rank() < b.Status.Rank() }
	case SortPriorityDesc:
		less = func(a, b *domain.URLRecord) bool { return a.Priority > b.Priority }
	case SortDomainAsc:
		less = func(a, b *domain.URLRecord) bool { return strings.Compare(a.Domain, b.Domain) < 0 }
	case SortLastSeenDesc:
		less = func(a, b *domain.URLRecord) bool { return a.LastSeen.After(b.LastSeen) }
	default:
		// Unknown key: leave original order.
		return
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return less(&recs[i], &recs[j])
	})
}

// Stats are the per-case status counts shown next to the list.
type Stats struct {
	Total      int `json:"total"`
	Todo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`
}

// CountStats tallies a case's records by status.
func CountStats(c *domain.Case) Stats {
	st := Stats{Total: len(c.URLs)}
	for i := range c.URLs {
		switch c.URLs[i].Status {
		case domain.StatusTodo:
			st.Todo++
		case domain.StatusInProgress:
			st.InProgress++
		case domain.StatusDone:
			st.Done++
		}
	}
	return st
}
