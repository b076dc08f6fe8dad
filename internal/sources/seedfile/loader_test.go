package seedfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeSeedFile(t, `
cases:
  - name: "Fraud Q2"
    default: true
    urls:
      - url: "https://example.com/a"
        title: "A page"
        tags: ["phishing"]
        status: "in-progress"
        priority: 2
  - name: "Archive"
    urls: []
`)

	config, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(config.Cases) != 2 {
		t.Fatalf("case count = %d, want 2", len(config.Cases))
	}
	c := config.Cases[0]
	if c.Name != "Fraud Q2" || !c.Default {
		t.Errorf("first case = %+v, want named default", c)
	}
	if len(c.URLs) != 1 || c.URLs[0].Status != "in-progress" || c.URLs[0].Priority != 2 {
		t.Errorf("first case urls = %+v", c.URLs)
	}
}

func TestLoaderMissingFile(t *testing.T) {
	if _, err := NewLoader("/does/not/exist.yaml").Load(); err == nil {
		t.Error("Load() on a missing file = nil error, want error")
	}
}

func TestLoaderBadYAML(t *testing.T) {
	path := writeSeedFile(t, "cases: [not: closed")
	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() on malformed yaml = nil error, want error")
	}
}
