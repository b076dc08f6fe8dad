package seedfile

import (
	"fmt"
	"time"

	"github.com/casebandit/casebandit/internal/domain"
)

// MappedCase is a seed case with its entries converted to URL records.
type MappedCase struct {
	Name    string
	Default bool
	Records []domain.URLRecord
}

// Mapper converts the seed config to domain records.
type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

// Map validates and converts the seed config. Entries with an invalid URL
// are dropped (counted in skipped); a config with no usable case is an
// error.
func (m *Mapper) Map(config SeedConfig) (cases []MappedCase, skipped int, err error) {
	now := time.Now()

	for _, sc := range config.Cases {
		if sc.Name == "" {
			skipped += len(sc.URLs)
			continue
		}

		mapped := MappedCase{Name: sc.Name, Default: sc.Default}
		for _, su := range sc.URLs {
			if !domain.IsValidURL(su.URL) {
				skipped++
				continue
			}
			rec, recErr := mapURL(su, now)
			if recErr != nil {
				return nil, 0, fmt.Errorf("case %q: %w", sc.Name, recErr)
			}
			mapped.Records = append(mapped.Records, rec)
		}
		cases = append(cases, mapped)
	}

	if len(cases) == 0 {
		return nil, 0, fmt.Errorf("no usable cases found in seed config")
	}
	return cases, skipped, nil
}

func mapURL(su SeedURL, now time.Time) (domain.URLRecord, error) {
	status := domain.Status(su.Status)
	if su.Status == "" {
		status = domain.StatusTodo
	}
	if !status.Valid() {
		return domain.URLRecord{}, fmt.Errorf("url %q has unknown status %q", su.URL, su.Status)
	}

	priority := domain.Priority(su.Priority)
	if !priority.Valid() {
		return domain.URLRecord{}, fmt.Errorf("url %q has priority %d outside 0..3", su.URL, su.Priority)
	}

	title := su.Title
	if title == "" {
		title = su.URL
	}
	tags := su.Tags
	if tags == nil {
		tags = []string{}
	}

	return domain.URLRecord{
		ID:         domain.NewID(),
		URL:        su.URL,
		Title:      title,
		Notes:      su.Notes,
		Tags:       tags,
		Status:     status,
		Priority:   priority,
		Domain:     domain.DomainOf(su.URL),
		Created:    now,
		LastSeen:   now,
		VisitCount: 1,
	}, nil
}
