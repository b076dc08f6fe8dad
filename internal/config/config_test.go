package config

import (
	"os"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestGetenv(t *testing.T) {
	if err := os.Setenv("TEST_GETENV", "set"); err != nil {
		t.Fatalf("failed to set env var: %v", err)
	}
	defer func() { _ = os.Unsetenv("TEST_GETENV") }()

	if got := getenv("TEST_GETENV", "fallback"); got != "set" {
		t.Errorf("getenv() = %q, want %q", got, "set")
	}
	if got := getenv("TEST_GETENV_MISSING", "fallback"); got != "fallback" {
		t.Errorf("getenv() = %q, want fallback", got)
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name  string
		value string
		def   bool
		want  bool
	}{
		{name: "true", value: "true", def: false, want: true},
		{name: "false", value: "false", def: true, want: false},
		{name: "one", value: "1", def: false, want: true},
		{name: "garbage falls back", value: "yep", def: true, want: true},
		{name: "unset falls back", value: "", def: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_MUST_BOOL"
			if tt.value != "" {
				if err := os.Setenv(key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() { _ = os.Unsetenv(key) }()
			} else {
				_ = os.Unsetenv(key)
			}

			if got := mustBool(key, tt.def); got != tt.want {
				t.Errorf("mustBool(%q, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	key := "TEST_MUST_DURATION"
	if err := os.Setenv(key, "30s"); err != nil {
		t.Fatalf("failed to set env var: %v", err)
	}
	defer func() { _ = os.Unsetenv(key) }()

	if got := mustDuration(key, time.Minute); got != 30*time.Second {
		t.Errorf("mustDuration() = %v, want 30s", got)
	}
	if got := mustDuration("TEST_MUST_DURATION_MISSING", time.Minute); got != time.Minute {
		t.Errorf("mustDuration() = %v, want fallback 1m", got)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "simple list", input: "a,b,c", want: []string{"a", "b", "c"}},
		{name: "spaces and quotes", input: ` "10.0.0.0/8" , '192.168.1.1' `, want: []string{"10.0.0.0/8", "192.168.1.1"}},
		{name: "skips empty parts", input: "a,,b,", want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAndTrim(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("splitAndTrim(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.Backend != "badger" {
		t.Errorf("Backend = %q, want badger", cfg.Backend)
	}
	if cfg.ReloadInterval != 24*time.Hour {
		t.Errorf("ReloadInterval = %v, want 24h", cfg.ReloadInterval)
	}
	if cfg.CaptureTimeout != 10*time.Second {
		t.Errorf("CaptureTimeout = %v, want 10s", cfg.CaptureTimeout)
	}
}
