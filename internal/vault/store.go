package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/casebandit/casebandit/internal/domain"
	"github.com/casebandit/casebandit/internal/kv"
	"github.com/casebandit/casebandit/internal/logger"
)

var (
	// ErrNoCase is returned when a case id resolves to nothing.
	ErrNoCase = errors.New("vault: case not found")
	// ErrNoRecord is returned when a record id resolves to nothing.
	ErrNoRecord = errors.New("vault: url record not found")
	// ErrInvalidURL is returned when a save or visit is attempted with a
	// non-http(s) URL. No state is mutated.
	ErrInvalidURL = errors.New("vault: invalid or unsafe url, only http and https are allowed")
)

// Store owns the persisted CaseCollection and every mutation against it.
//
// Each mutation loads a fresh snapshot, mutates it in memory and writes the
// whole collection back. There is no optimistic-concurrency check: two
// near-simultaneous mutations can lose an update. That is a documented
// trade-off of the whole-blob persistence model, accepted, not masked.
type Store struct {
	kv  kv.Store
	log logger.Logger
	now func() time.Time
}

func New(kvStore kv.Store, log logger.Logger) *Store {
	return &Store{
		kv:  kvStore,
		log: log,
		now: time.Now,
	}
}

// Load reads the persisted collection. A missing key yields an empty
// collection; malformed JSON is propagated, never repaired.
func (s *Store) Load(ctx context.Context) (*domain.CaseCollection, error) {
	data, err := s.kv.Get(ctx, KeyCaseData)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return domain.NewCollection(), nil
		}
		return nil, fmt.Errorf("failed to load case data: %w", err)
	}

	var coll domain.CaseCollection
	if err := json.Unmarshal(data, &coll); err != nil {
		return nil, fmt.Errorf("persisted case data is malformed: %w", err)
	}
	return &coll, nil
}

// Save overwrites the persisted collection. The write is synchronous; a
// failure is reported to the caller and not retried.
func (s *Store) Save(ctx context.Context, coll *domain.CaseCollection) error {
	data, err := json.Marshal(coll)
	if err != nil {
		return fmt.Errorf("failed to marshal case data: %w", err)
	}
	if err := s.kv.Set(ctx, KeyCaseData, data); err != nil {
		return fmt.Errorf("failed to save case data: %w", err)
	}
	return nil
}

// ResolveTargetCase returns the case matching activeID if present, else the
// collection's default case, else nil. An explicitly active case always wins
// over the default.
func ResolveTargetCase(coll *domain.CaseCollection, activeID string) *domain.Case {
	if c := coll.FindCase(activeID); c != nil {
		return c
	}
	return coll.FindCase(coll.DefaultCaseID)
}

// ActiveCaseID returns the last-selected case id, or "" if never set.
func (s *Store) ActiveCaseID(ctx context.Context) (string, error) {
	data, err := s.kv.Get(ctx, KeyActiveCase)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load active case id: %w", err)
	}
	return string(data), nil
}

// SetActiveCaseID records the last-selected case id.
func (s *Store) SetActiveCaseID(ctx context.Context, id string) error {
	if err := s.kv.Set(ctx, KeyActiveCase, []byte(id)); err != nil {
		return fmt.Errorf("failed to save active case id: %w", err)
	}
	return nil
}

// CreateCase appends a new named case. The first case ever created becomes
// both the default case and the active selection.
func (s *Store) CreateCase(ctx context.Context, name string) (domain.Case, error) {
	coll, err := s.Load(ctx)
	if err != nil {
		return domain.Case{}, err
	}

	c := domain.Case{
		ID:   domain.NewID(),
		Name: name,
		URLs: []domain.URLRecord{},
	}
	coll.Cases = append(coll.Cases, c)

	if len(coll.Cases) == 1 {
		coll.DefaultCaseID = c.ID
		if err := s.SetActiveCaseID(ctx, c.ID); err != nil {
			return domain.Case{}, err
		}
	}

	if err := s.Save(ctx, coll); err != nil {
		return domain.Case{}, err
	}

	s.log.Info("case created",
		logger.String("case_id", c.ID),
		logger.String("name", name))
	return c, nil
}

// DeleteCase removes a case and all records inside it. If it was the
// default, the default moves to the first remaining case (or clears); the
// active selection follows the same rule.
func (s *Store) DeleteCase(ctx context.Context, id string) error {
	coll, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if coll.FindCase(id) == nil {
		return ErrNoCase
	}

	kept := coll.Cases[:0]
	for _, c := range coll.Cases {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	coll.Cases = kept

	if coll.DefaultCaseID == id {
		if len(coll.Cases) > 0 {
			coll.DefaultCaseID = coll.Cases[0].ID
		} else {
			coll.DefaultCaseID = ""
		}
	}

	activeID, err := s.ActiveCaseID(ctx)
	if err != nil {
		return err
	}
	if activeID == id {
		next := coll.DefaultCaseID
		if next == "" && len(coll.Cases) > 0 {
			next = coll.Cases[0].ID
		}
		if err := s.SetActiveCaseID(ctx, next); err != nil {
			return err
		}
	}

	if err := s.Save(ctx, coll); err != nil {
		return err
	}

	s.log.Info("case deleted", logger.String("case_id", id))
	return nil
}

// SetDefaultCase marks an existing case as the default.
func (s *Store) SetDefaultCase(ctx context.Context, id string) error {
	coll, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if coll.FindCase(id) == nil {
		return ErrNoCase
	}
	coll.DefaultCaseID = id
	return s.Save(ctx, coll)
}

// UpsertURL is the manual-save path: if the case already holds a record with
// the candidate's url, the existing record is merged into (all fields
// overwritten except id and created, visit count incremented); otherwise a
// fresh record is appended. Returns the stored record and whether a merge
// happened.
func (s *Store) UpsertURL(ctx context.Context, caseID string, candidate domain.URLRecord) (domain.URLRecord, bool, error) {
	if !domain.IsValidURL(candidate.URL) {
		return domain.URLRecord{}, false, ErrInvalidURL
	}

	coll, err := s.Load(ctx)
	if err != nil {
		return domain.URLRecord{}, false, err
	}
	c := coll.FindCase(caseID)
	if c == nil {
		return domain.URLRecord{}, false, ErrNoCase
	}

	now := s.now()
	if existing := c.FindByAddress(candidate.URL); existing != nil {
		// Last-write-wins per field; identity and creation time survive.
		id, created, visits := existing.ID, existing.Created, existing.VisitCount
		*existing = candidate
		existing.ID = id
		existing.Created = created
		existing.VisitCount = visits + 1
		existing.LastSeen = now
		if err := s.Save(ctx, coll); err != nil {
			return domain.URLRecord{}, false, err
		}
		return *existing, true, nil
	}

	candidate.ID = domain.NewID()
	candidate.Created = now
	candidate.LastSeen = now
	candidate.VisitCount = 1
	c.URLs = append(c.URLs, candidate)
	if err := s.Save(ctx, coll); err != nil {
		return domain.URLRecord{}, false, err
	}
	return candidate, false, nil
}

// UpdateURL is the edit-in-place path, keyed by record id: mutable fields
// are overwritten, identity, creation time and visit count survive. A
// screenshot is only replaced when the update carries one.
func (s *Store) UpdateURL(ctx context.Context, caseID, recordID string, updated domain.URLRecord) (domain.URLRecord, error) {
	if !domain.IsValidURL(updated.URL) {
		return domain.URLRecord{}, ErrInvalidURL
	}

	coll, err := s.Load(ctx)
	if err != nil {
		return domain.URLRecord{}, err
	}
	c := coll.FindCase(caseID)
	if c == nil {
		return domain.URLRecord{}, ErrNoCase
	}
	rec := c.FindURL(recordID)
	if rec == nil {
		return domain.URLRecord{}, ErrNoRecord
	}

	now := s.now()
	rec.URL = updated.URL
	rec.Title = updated.Title
	rec.Notes = updated.Notes
	rec.Tags = updated.Tags
	rec.Status = updated.Status
	rec.Priority = updated.Priority
	rec.Domain = domain.DomainOf(updated.URL)
	rec.LastSeen = now
	if updated.Screenshot != "" {
		rec.Screenshot = updated.Screenshot
		rec.ScreenshotTakenAt = now
	}

	if err := s.Save(ctx, coll); err != nil {
		return domain.URLRecord{}, err
	}
	return *rec, nil
}

// DeleteURL removes a record from a case.
func (s *Store) DeleteURL(ctx context.Context, caseID, recordID string) error {
	coll, err := s.Load(ctx)
	if err != nil {
		return err
	}
	c := coll.FindCase(caseID)
	if c == nil {
		return ErrNoCase
	}
	if c.FindURL(recordID) == nil {
		return ErrNoRecord
	}

	kept := c.URLs[:0]
	for _, rec := range c.URLs {
		if rec.ID != recordID {
			kept = append(kept, rec)
		}
	}
	c.URLs = kept
	return s.Save(ctx, coll)
}

// VisitURL registers a visit: the record's URL must pass the shared
// validity check, then visit count and last-seen advance.
func (s *Store) VisitURL(ctx context.Context, caseID, recordID string) (domain.URLRecord, error) {
	coll, err := s.Load(ctx)
	if err != nil {
		return domain.URLRecord{}, err
	}
	c := coll.FindCase(caseID)
	if c == nil {
		return domain.URLRecord{}, ErrNoCase
	}
	rec := c.FindURL(recordID)
	if rec == nil {
		return domain.URLRecord{}, ErrNoRecord
	}
	if !domain.IsValidURL(rec.URL) {
		return domain.URLRecord{}, ErrInvalidURL
	}

	rec.VisitCount++
	rec.LastSeen = s.now()
	if err := s.Save(ctx, coll); err != nil {
		return domain.URLRecord{}, err
	}
	return *rec, nil
}

// Replace swaps the whole collection (the import path). The caller is
// expected to have validated and normalized it first.
func (s *Store) Replace(ctx context.Context, coll *domain.CaseCollection) error {
	return s.Save(ctx, coll)
}

// Ping reports backend liveness.
func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}
