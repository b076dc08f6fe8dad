// Package quicksave implements the shortcut-triggered save path: no dialog,
// no dedup, capture-if-configured, then append and persist.
package quicksave

import (
	"context"
	"errors"
	"time"

	"github.com/casebandit/casebandit/internal/capture"
	"github.com/casebandit/casebandit/internal/domain"
	"github.com/casebandit/casebandit/internal/logger"
	"github.com/casebandit/casebandit/internal/notify"
	"github.com/casebandit/casebandit/internal/vault"
)

// Request is one quick-save signal: the page the active view reported.
type Request struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Orchestrator consumes quick-save signals from a trigger channel and runs
// each one to completion before taking the next. Steps within one signal are
// strictly sequential; nothing orders two signals relative to each other
// beyond channel FIFO, and each reads a fresh snapshot of the collection.
type Orchestrator struct {
	store    *vault.Store
	capturer capture.Capturer
	feedback *notify.Feedback
	log      logger.Logger
	trigger  chan Request
	stopCh   chan struct{}
}

func New(
	store *vault.Store,
	capturer capture.Capturer,
	feedback *notify.Feedback,
	log logger.Logger,
	trigger chan Request,
) *Orchestrator {
	return &Orchestrator{
		store:    store,
		capturer: capturer,
		feedback: feedback,
		log:      log,
		trigger:  trigger,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the consumer goroutine.
func (o *Orchestrator) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case req := <-o.trigger:
				o.handle(ctx, req)
			case <-o.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the consumer.
func (o *Orchestrator) Stop() {
	close(o.stopCh)
}

func (o *Orchestrator) handle(ctx context.Context, req Request) {
	settings, err := o.store.LoadSettings(ctx)
	if err != nil {
		o.log.Warn("failed to load settings, using defaults", logger.Error(err))
		settings = vault.DefaultSettings()
	}

	coll, err := o.store.Load(ctx)
	if err != nil {
		o.log.Error("quick-save aborted, cannot load collection", logger.Error(err))
		o.feedback.SaveFailed(err, settings.Notifications, settings.AudioFeedback)
		return
	}

	activeID, err := o.store.ActiveCaseID(ctx)
	if err != nil {
		o.log.Warn("failed to load active case id", logger.Error(err))
	}

	target := vault.ResolveTargetCase(coll, activeID)
	if target == nil {
		// Terminal for this invocation; no retry.
		o.log.Warn("quick-save with no resolvable case",
			logger.String("url", req.URL))
		o.feedback.NoTargetCase(settings.Notifications, settings.AudioFeedback)
		return
	}

	screenshot := ""
	if settings.AutoCapture && domain.IsValidURL(req.URL) {
		shot, err := o.capturer.Capture(ctx, req.URL)
		switch {
		case err == nil:
			screenshot = shot
		case errors.Is(err, capture.ErrDisabled):
			o.log.Debug("auto-capture enabled but no capture service configured")
		default:
			// Degrade to saving without a screenshot.
			o.log.Warn("screenshot capture failed, saving without screenshot",
				logger.String("url", req.URL),
				logger.Error(err))
		}
	}

	now := time.Now()
	rec := domain.NewQuickSaveRecord(req.URL, req.Title, now)
	if screenshot != "" {
		rec.Screenshot = screenshot
		rec.ScreenshotTakenAt = now
	}

	// Always append: quick-save never merges, even when the url already
	// exists in the case. Dedup belongs to the manual-save path.
	target.URLs = append(target.URLs, rec)

	if err := o.store.Save(ctx, coll); err != nil {
		o.feedback.SaveFailed(err, settings.Notifications, settings.AudioFeedback)
		return
	}

	o.log.Info("quick-saved url",
		logger.String("case_id", target.ID),
		logger.String("case", target.Name),
		logger.String("url", req.URL),
		logger.Bool("screenshot", screenshot != ""))
	o.feedback.Saved(target.Name, rec.Title, settings.Notifications, settings.AudioFeedback)
}
