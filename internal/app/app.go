package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/casebandit/casebandit/internal/capture"
	"github.com/casebandit/casebandit/internal/config"
	"github.com/casebandit/casebandit/internal/httpserver"
	"github.com/casebandit/casebandit/internal/httpserver/deps"
	"github.com/casebandit/casebandit/internal/kv"
	"github.com/casebandit/casebandit/internal/logger"
	"github.com/casebandit/casebandit/internal/notify"
	"github.com/casebandit/casebandit/internal/quicksave"
	"github.com/casebandit/casebandit/internal/redisconn"
	"github.com/casebandit/casebandit/internal/scheduler"
	"github.com/casebandit/casebandit/internal/shortcut"
	"github.com/casebandit/casebandit/internal/vault"
	"github.com/casebandit/casebandit/internal/version"
)

type App struct {
	cfg          *config.Config
	logger       logger.Logger
	server       *httpserver.Server
	kvStore      kv.Store
	orchestrator *quicksave.Orchestrator
	seedReloader *scheduler.SeedReloader
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Open the vault backend early - fail fast if unavailable.
	kvStore := openBackend(cfg, loggerClient)

	store := vault.New(kvStore, loggerClient)
	feedback := notify.NewFeedback(notify.LogNotifier{Log: loggerClient}, loggerClient)

	// The chord is fixed at startup; a saved change applies on next boot.
	chord, err := store.LoadChord(context.Background())
	if err != nil {
		loggerClient.Warn("failed to load shortcut, using default", logger.Error(err))
		chord = shortcut.DefaultChord()
	}
	matcher := shortcut.NewMatcher(chord)
	loggerClient.Info("quick-save shortcut installed", logger.String("chord", chord.String()))

	var capturer capture.Capturer = capture.Disabled{}
	if cfg.CaptureURL != "" {
		capturer = capture.NewHTTP(cfg.CaptureURL, cfg.CaptureTimeout)
		loggerClient.Info("capture service configured", logger.String("url", cfg.CaptureURL))
	}

	// Buffered with capacity 1: a second signal while one is in flight is
	// rejected at the HTTP layer, not queued without bound.
	quickSaveTrigger := make(chan quicksave.Request, 1)
	orchestrator := quicksave.New(store, capturer, feedback, loggerClient, quickSaveTrigger)

	token := cfg.QuickSaveToken
	if token == "" {
		token = uuid.NewString()
		loggerClient.Warnf("CASEBANDIT_QUICKSAVE_TOKEN not set, generated token: %s", token)
	}

	var seedReloader *scheduler.SeedReloader
	var seedReloadTrigger chan struct{}
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured, initializing seed reloader",
			logger.String("file", cfg.SeedFile))
		seedReloadTrigger = make(chan struct{}, 1)
		seedReloader = scheduler.NewSeedReloader(
			cfg.SeedFile,
			store,
			loggerClient,
			cfg.ReloadInterval,
			seedReloadTrigger,
		)
	} else {
		loggerClient.Info("seed file not configured, seeding disabled")
	}

	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		AllowedHosts:      cfg.AllowedHosts,
		AllowedCIDRS:      cfg.AllowedCIDRS,
		TrustProxy:        cfg.TrustProxy,
		Store:             store,
		Feedback:          feedback,
		Matcher:           matcher,
		QuickSaveToken:    token,
		QuickSaveTrigger:  quickSaveTrigger,
		SeedReloadTrigger: seedReloadTrigger,
		Backend:           cfg.Backend,
		CaptureEnabled:    cfg.CaptureURL != "",
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:          cfg,
		logger:       loggerClient,
		server:       server,
		kvStore:      kvStore,
		orchestrator: orchestrator,
		seedReloader: seedReloader,
	}
}

func openBackend(cfg *config.Config, log logger.Logger) kv.Store {
	switch cfg.Backend {
	case "redis":
		client, err := redisconn.New(redisconn.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			log.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		return kv.NewRedisStore(client)
	default:
		store, err := kv.OpenBadger(cfg.BadgerPath)
		if err != nil {
			log.Errorf("Failed to open badger store at %s: %v", cfg.BadgerPath, err)
			os.Exit(1)
		}
		log.Info("badger store opened", logger.String("path", cfg.BadgerPath))
		return store
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting CaseBandit v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("CaseBandit %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.orchestrator.Start(ctx)
	a.logger.Info("quick-save orchestrator started")

	if a.seedReloader != nil {
		if err := a.seedReloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start seed reloader: %w", err)
		}
		a.logger.Info("seed reloader started",
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.orchestrator.Stop()

	if a.seedReloader != nil {
		a.seedReloader.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if err := a.kvStore.Close(); err != nil {
		a.logger.Warnf("failed to close vault backend: %v", err)
	} else {
		a.logger.Info("✅ vault backend closed cleanly")
	}

	a.logger.Info("✅ CaseBandit stopped cleanly")
	return nil
}
