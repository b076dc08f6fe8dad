package domain

import (
	"testing"
	"time"
)

func TestStatusValid(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusTodo, true},
		{StatusInProgress, true},
		{StatusDone, true},
		{Status("archived"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.want {
			t.Errorf("Status(%q).Valid() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestStatusRank(t *testing.T) {
	if !(StatusTodo.Rank() < StatusInProgress.Rank() && StatusInProgress.Rank() < StatusDone.Rank()) {
		t.Errorf("status ranks out of order: todo=%d in-progress=%d done=%d",
			StatusTodo.Rank(), StatusInProgress.Rank(), StatusDone.Rank())
	}
}

func TestPriorityValid(t *testing.T) {
	tests := []struct {
		priority Priority
		want     bool
	}{
		{PriorityNone, true},
		{PriorityHigh, true},
		{Priority(-1), false},
		{Priority(4), false},
	}

	for _, tt := range tests {
		if got := tt.priority.Valid(); got != tt.want {
			t.Errorf("Priority(%d).Valid() = %v, want %v", tt.priority, got, tt.want)
		}
	}
}

func TestCollectionValidate(t *testing.T) {
	tests := []struct {
		name    string
		coll    CaseCollection
		wantErr bool
	}{
		{
			name: "valid collection",
			coll: CaseCollection{Cases: []Case{
				{ID: "1", Name: "a", URLs: []URLRecord{{ID: "r1", Status: StatusTodo, Priority: PriorityLow}}},
			}},
		},
		{
			name:    "case without id",
			coll:    CaseCollection{Cases: []Case{{Name: "a"}}},
			wantErr: true,
		},
		{
			name: "duplicate case ids",
			coll: CaseCollection{Cases: []Case{
				{ID: "1", Name: "a"},
				{ID: "1", Name: "b"},
			}},
			wantErr: true,
		},
		{
			name: "unknown status",
			coll: CaseCollection{Cases: []Case{
				{ID: "1", URLs: []URLRecord{{ID: "r1", Status: "weird"}}},
			}},
			wantErr: true,
		},
		{
			name: "priority out of range",
			coll: CaseCollection{Cases: []Case{
				{ID: "1", URLs: []URLRecord{{ID: "r1", Status: StatusTodo, Priority: 7}}},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coll.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCollectionNormalize(t *testing.T) {
	coll := CaseCollection{
		Cases: []Case{
			{ID: "1", Name: "a", URLs: []URLRecord{{ID: "r1", Status: StatusTodo, VisitCount: 0}}},
		},
		DefaultCaseID: "dangling",
	}

	coll.Normalize()

	if coll.DefaultCaseID != "1" {
		t.Errorf("Normalize() DefaultCaseID = %q, want %q", coll.DefaultCaseID, "1")
	}
	if coll.Cases[0].URLs[0].VisitCount != 1 {
		t.Errorf("Normalize() VisitCount = %d, want 1", coll.Cases[0].URLs[0].VisitCount)
	}
	if coll.Cases[0].URLs[0].Tags == nil {
		t.Error("Normalize() left Tags nil")
	}
}

func TestCollectionNormalizeEmpty(t *testing.T) {
	coll := CaseCollection{DefaultCaseID: "gone"}
	coll.Normalize()
	if coll.DefaultCaseID != "" {
		t.Errorf("Normalize() on empty collection kept DefaultCaseID = %q", coll.DefaultCaseID)
	}
	if coll.Cases == nil {
		t.Error("Normalize() left Cases nil")
	}
}

func TestNewQuickSaveRecord(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := NewQuickSaveRecord("https://example.com/a", "Example", now)

	if rec.ID == "" {
		t.Error("NewQuickSaveRecord() left ID empty")
	}
	if rec.Status != StatusTodo {
		t.Errorf("Status = %q, want %q", rec.Status, StatusTodo)
	}
	if rec.Priority != PriorityNone {
		t.Errorf("Priority = %d, want %d", rec.Priority, PriorityNone)
	}
	if rec.Domain != "example.com" {
		t.Errorf("Domain = %q, want %q", rec.Domain, "example.com")
	}
	if rec.VisitCount != 1 {
		t.Errorf("VisitCount = %d, want 1", rec.VisitCount)
	}
	if !rec.Created.Equal(now) || !rec.LastSeen.Equal(now) {
		t.Errorf("Created/LastSeen = %v/%v, want both %v", rec.Created, rec.LastSeen, now)
	}
	if rec.Tags == nil {
		t.Error("Tags should be an empty slice, not nil")
	}
}

func TestFindByAddress(t *testing.T) {
	c := Case{URLs: []URLRecord{
		{ID: "a", URL: "https://one.example"},
		{ID: "b", URL: "https://two.example"},
	}}

	if got := c.FindByAddress("https://two.example"); got == nil || got.ID != "b" {
		t.Errorf("FindByAddress() = %v, want record b", got)
	}
	if got := c.FindByAddress("https://missing.example"); got != nil {
		t.Errorf("FindByAddress() = %v, want nil", got)
	}
}
