package cmd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/glp360/riskscore/internal/catalog"
	"github.com/glp360/riskscore/internal/scoring"
	"github.com/glp360/riskscore/internal/store"
	"github.com/glp360/riskscore/internal/submit"
	"github.com/glp360/riskscore/internal/visibility"
)

// drainTimeout bounds how long a command waits for pending deliveries on
// exit.
const drainTimeout = 30 * time.Second

// runtime holds the services shared by the commands.
type runtime struct {
	engine     *scoring.Engine
	rules      visibility.Rules
	store      *store.Store
	dispatcher *submit.Dispatcher
}

// loadCatalog returns the configured catalog or the built-in one.
func loadCatalog() (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

// newEngine builds the scoring engine for the configured catalog.
func newEngine() (*scoring.Engine, error) {
	c, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	return scoring.NewEngine(c, scoring.IdentityPolicy{}), nil
}

// newRuntime builds the engine and the delivery pipeline. The delivery log
// is only opened when an events database is configured.
func newRuntime(onOutcome func(submit.Outcome)) (*runtime, error) {
	engine, err := newEngine()
	if err != nil {
		return nil, err
	}
	rt := &runtime{engine: engine, rules: visibility.DefaultRules()}

	var repo store.DeliveryRepo
	if cfg.EventsDB != "" {
		if err := store.EnsureDir(cfg.EventsDB); err != nil {
			return nil, fmt.Errorf("create events directory: %w", err)
		}
		st, err := store.Open(cfg.EventsDB)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		rt.store = st
		repo = st.DeliveryRepo()
	}

	retry := submit.DefaultRetryConfig()
	retry.MaxAttempts = cfg.SubmitAttempts
	sink, err := submit.NewSink(submit.Config{
		WebhookURL: cfg.WebhookURL,
		Timeout:    cfg.SubmitTimeout,
		Retry:      retry,
	}, logger, repo)
	if err != nil {
		rt.close()
		return nil, err
	}
	if cfg.WebhookURL == "" {
		logger.Info("no webhook configured; submissions are not forwarded")
	}

	rt.dispatcher = submit.NewDispatcher(sink, submit.DispatcherOptions{
		Logger:    logger,
		OnOutcome: onOutcome,
	})
	return rt, nil
}

// close waits for pending deliveries and closes the store.
func (rt *runtime) close() {
	if rt.dispatcher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		if err := rt.dispatcher.Close(ctx); err != nil {
			logger.Warn("pending deliveries cancelled", zap.Error(err))
		}
		cancel()
	}
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}
}
