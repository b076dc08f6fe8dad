package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/casebandit/casebandit/internal/domain"
	"github.com/casebandit/casebandit/internal/logger"
	"github.com/casebandit/casebandit/internal/sources/seedfile"
	"github.com/casebandit/casebandit/internal/vault"
)

// SeedReloader periodically applies the seed file to the vault. The apply
// is idempotent: cases are matched by name, records by url, and nothing
// already present is touched. Seeding never overwrites user edits.
type SeedReloader struct {
	loader        *seedfile.Loader
	mapper        *seedfile.Mapper
	store         *vault.Store
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

func NewSeedReloader(
	seedFile string,
	store *vault.Store,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SeedReloader {
	return &SeedReloader{
		loader:        seedfile.NewLoader(seedFile),
		mapper:        seedfile.NewMapper(),
		store:         store,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start applies the seed once, then keeps reapplying on the interval or on
// manual trigger.
func (sr *SeedReloader) Start(ctx context.Context) error {
	if err := sr.Reload(ctx); err != nil {
		return fmt.Errorf("initial seed reload failed: %w", err)
	}

	ticker := time.NewTicker(sr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload seed file",
						logger.Error(err))
				}
			case <-sr.manualTrigger:
				sr.logger.Info("manual seed reload triggered")
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload seed file",
						logger.Error(err))
				}
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader.
func (sr *SeedReloader) Stop() {
	close(sr.stopCh)
}

// Reload loads the seed file and merges missing cases and records into the
// vault with a single load/save round trip.
func (sr *SeedReloader) Reload(ctx context.Context) error {
	config, err := sr.loader.Load()
	if err != nil {
		return err
	}

	seeds, skipped, err := sr.mapper.Map(config)
	if err != nil {
		return err
	}
	if skipped > 0 {
		sr.logger.Warn("seed file entries skipped",
			logger.Int("skipped", skipped))
	}

	coll, err := sr.store.Load(ctx)
	if err != nil {
		return err
	}

	casesAdded, recordsAdded := 0, 0
	for _, seed := range seeds {
		c := findCaseByName(coll, seed.Name)
		if c == nil {
			coll.Cases = append(coll.Cases, domain.Case{
				ID:   domain.NewID(),
				Name: seed.Name,
				URLs: []domain.URLRecord{},
			})
			c = &coll.Cases[len(coll.Cases)-1]
			casesAdded++
		}
		if seed.Default && coll.DefaultCaseID == "" {
			coll.DefaultCaseID = c.ID
		}
		for _, rec := range seed.Records {
			if c.FindByAddress(rec.URL) != nil {
				continue
			}
			c.URLs = append(c.URLs, rec)
			recordsAdded++
		}
	}

	// First seeded case becomes the default when nothing claimed it.
	if coll.DefaultCaseID == "" && len(coll.Cases) > 0 {
		coll.DefaultCaseID = coll.Cases[0].ID
	}

	if casesAdded == 0 && recordsAdded == 0 {
		sr.logger.Debug("seed file already applied, nothing to do")
		return nil
	}

	if err := sr.store.Save(ctx, coll); err != nil {
		return err
	}

	sr.logger.Info("seed file applied",
		logger.Int("cases_added", casesAdded),
		logger.Int("records_added", recordsAdded))
	return nil
}

func findCaseByName(coll *domain.CaseCollection, name string) *domain.Case {
	for i := range coll.Cases {
		if coll.Cases[i].Name == name {
			return &coll.Cases[i]
		}
	}
	return nil
}
