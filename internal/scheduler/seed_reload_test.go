package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/casebandit/casebandit/internal/kv"
	"github.com/casebandit/casebandit/internal/logger"
	"github.com/casebandit/casebandit/internal/vault"
)

const seedYAML = `
cases:
  - name: "Fraud Q2"
    default: true
    urls:
      - url: "https://example.com/a"
        title: "A page"
      - url: "https://example.com/b"
  - name: "Archive"
    urls: []
`

func newReloadBench(t *testing.T, yaml string) (*vault.Store, *SeedReloader) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}
	log := logger.New("error", false)
	store := vault.New(kv.NewMem(), log)
	return store, NewSeedReloader(path, store, log, time.Hour, make(chan struct{}, 1))
}

func TestReloadSeedsEmptyVault(t *testing.T) {
	ctx := context.Background()
	store, sr := newReloadBench(t, seedYAML)

	if err := sr.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	coll, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(coll.Cases) != 2 {
		t.Fatalf("case count = %d, want 2", len(coll.Cases))
	}
	if coll.Cases[0].Name != "Fraud Q2" || len(coll.Cases[0].URLs) != 2 {
		t.Errorf("seeded case = %+v", coll.Cases[0])
	}
	if coll.DefaultCaseID != coll.Cases[0].ID {
		t.Errorf("DefaultCaseID = %q, want the declared default %q", coll.DefaultCaseID, coll.Cases[0].ID)
	}
}

func TestReloadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, sr := newReloadBench(t, seedYAML)

	if err := sr.Reload(ctx); err != nil {
		t.Fatalf("first Reload() error = %v", err)
	}
	first, _ := store.Load(ctx)
	firstVisits := first.Cases[0].URLs[0].VisitCount

	if err := sr.Reload(ctx); err != nil {
		t.Fatalf("second Reload() error = %v", err)
	}
	second, _ := store.Load(ctx)

	if len(second.Cases) != len(first.Cases) {
		t.Errorf("case count changed: %d -> %d", len(first.Cases), len(second.Cases))
	}
	if len(second.Cases[0].URLs) != len(first.Cases[0].URLs) {
		t.Errorf("record count changed: %d -> %d", len(first.Cases[0].URLs), len(second.Cases[0].URLs))
	}
	if second.Cases[0].URLs[0].VisitCount != firstVisits {
		t.Errorf("reload bumped VisitCount: %d -> %d", firstVisits, second.Cases[0].URLs[0].VisitCount)
	}
}

func TestReloadNeverOverwritesUserEdits(t *testing.T) {
	ctx := context.Background()
	store, sr := newReloadBench(t, seedYAML)

	if err := sr.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	// User edits a seeded record, then the seed reapplies.
	coll, _ := store.Load(ctx)
	caseID := coll.Cases[0].ID
	recID := coll.Cases[0].URLs[0].ID

	rec := coll.Cases[0].URLs[0]
	rec.Title = "user title"
	if _, err := store.UpdateURL(ctx, caseID, recID, rec); err != nil {
		t.Fatalf("UpdateURL() error = %v", err)
	}

	if err := sr.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	after, _ := store.Load(ctx)
	if got := after.FindCase(caseID).FindURL(recID).Title; got != "user title" {
		t.Errorf("Title after reload = %q, want the user edit kept", got)
	}
}

func TestReloadKeepsExistingDefault(t *testing.T) {
	ctx := context.Background()
	store, sr := newReloadBench(t, seedYAML)

	// The user already has a case; it is default and stays default.
	existing, err := store.CreateCase(ctx, "Mine")
	if err != nil {
		t.Fatalf("CreateCase() error = %v", err)
	}

	if err := sr.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	coll, _ := store.Load(ctx)
	if coll.DefaultCaseID != existing.ID {
		t.Errorf("DefaultCaseID = %q, want the pre-existing %q", coll.DefaultCaseID, existing.ID)
	}
	if len(coll.Cases) != 3 {
		t.Errorf("case count = %d, want 3", len(coll.Cases))
	}
}
