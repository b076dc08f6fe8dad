package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Vault storage backend
	Backend    string // "badger" (embedded, default) | "redis" (shared)
	BadgerPath string // directory for the embedded badger store

	// Quick-save signal
	QuickSaveToken string // shared sender token; empty = generated at startup

	// Screenshot capture
	CaptureURL     string        // capture-service endpoint (empty = capture disabled)
	CaptureTimeout time.Duration // per-capture deadline (best effort)

	// Seed file
	SeedFile       string        // optional YAML file of pre-provisioned cases
	ReloadInterval time.Duration // interval to reload the seed file (default: 24h)

	// Redis (only read when Backend == "redis")
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IPs (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("CASEBANDIT_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("CASEBANDIT_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("CASEBANDIT_LOG_LEVEL", "info"),
		PrettyLog: mustBool("CASEBANDIT_PRETTY_LOG", true),

		// Storage
		Backend:    getenv("CASEBANDIT_BACKEND", "badger"),
		BadgerPath: getenv("CASEBANDIT_BADGER_PATH", "/var/lib/casebandit"),

		// Signal
		QuickSaveToken: getenv("CASEBANDIT_QUICKSAVE_TOKEN", ""),

		// Capture
		CaptureURL:     getenv("CASEBANDIT_CAPTURE_URL", ""), // Optional, empty = screenshots disabled
		CaptureTimeout: mustDuration("CASEBANDIT_CAPTURE_TIMEOUT", 10*time.Second),

		// Seed file
		SeedFile:       getenv("CASEBANDIT_SEED_FILE", ""), // Optional, empty = seeding disabled
		ReloadInterval: mustDuration("CASEBANDIT_RELOAD_SEED_INTERVAL", 24*time.Hour),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("CASEBANDIT_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("CASEBANDIT_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("CASEBANDIT_TRUST_PROXY", false),
	}

	switch cfg.Backend {
	case "badger":
		// embedded store, nothing else to read
	case "redis":
		cfg.RedisAddr = requireEnv("CASEBANDIT_REDIS_ADDR")
		cfg.RedisUser = getenv("CASEBANDIT_REDIS_USERNAME", "default")
		cfg.RedisPasswordRequired = mustBool("CASEBANDIT_REDIS_PASSWORD_REQUIRED", true)
		cfg.RedisPassword = getenv("CASEBANDIT_REDIS_PASSWORD", "")
		cfg.RedisDB = getenvInt("CASEBANDIT_REDIS_DB", 0)
		cfg.RedisDT = mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second)
		cfg.RedisRT = mustDuration("REDIS_READ_TIMEOUT", 3*time.Second)
		cfg.RedisWT = mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second)
		cfg.RedisMaxWait = mustDuration("REDIS_MAX_WAIT", 10*time.Second)
		cfg.RedisPingTimeout = mustDuration("REDIS_PING_TIMEOUT", 5*time.Second)
		cfg.RedisPoolSize = getenvInt("REDIS_POOL_SIZE", 10)
		cfg.RedisConnectTimeout = mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second)
		cfg.RedisRetryInterval = mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second)
		cfg.RedisWarnThreshold = getenvInt("REDIS_WARN_THRESHOLD", 3)

		if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
			panic("❌ FATAL: CASEBANDIT_REDIS_PASSWORD is required when CASEBANDIT_REDIS_PASSWORD_REQUIRED=true")
		}
	default:
		panic(fmt.Sprintf("❌ FATAL: Unknown CASEBANDIT_BACKEND %q (want badger or redis)", cfg.Backend))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		cfgCopy.QuickSaveToken = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
