// Package cli wires configuration, adapters and the session controller into
// the processes started by the absher command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/config"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/adapters/loam"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/adapters/memory"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/adapters/process"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/adapters/redis"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/catalog"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/observability"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/persistence/middleware"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/ports"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/session"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/transcript"
)

const (
	lockTTL  = 10 * time.Second
	lockWait = 2 * time.Second
)

// LoadCatalog picks the flow source: a loam directory, a catalog file, or the
// built-in services, in that order.
func LoadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	switch {
	case cfg.FlowsDir != "":
		loader, err := loam.Open(cfg.FlowsDir)
		if err != nil {
			return nil, fmt.Errorf("error opening flows dir: %w", err)
		}
		return catalog.FromLoader(loader)
	case cfg.CatalogFile != "":
		return catalog.FromLoader(catalog.FileLoader{Path: cfg.CatalogFile})
	default:
		return catalog.Default(), nil
	}
}

// speechOptions enables narration and voice input for the commands present in
// the speech config. A missing config leaves both disabled.
func speechOptions(cfg config.Config, logger *slog.Logger) ([]session.Option, error) {
	if cfg.SpeechConfig == "" {
		return nil, nil
	}
	commands, err := process.LoadCommands(cfg.SpeechConfig)
	if err != nil {
		return nil, err
	}
	runner := process.NewRunner(process.WithRegistry(commands))

	var opts []session.Option
	if synth, ok := process.NewSynthesizer(runner); ok {
		opts = append(opts, session.WithSynthesizer(synth))
	}
	if listener, ok := process.NewListener(runner); ok {
		opts = append(opts, session.WithListener(listener))
	}
	logger.Debug("speech configured", "config", cfg.SpeechConfig, "speak", runner.Has(process.CommandSpeak), "listen", runner.Has(process.CommandListen))
	return opts, nil
}

// secureStore applies PII masking and encryption at rest, as configured.
func secureStore(cfg config.Config, store ports.TranscriptStore) (ports.TranscriptStore, error) {
	var mws []middleware.Middleware
	if cfg.MaskPII {
		mws = append(mws, middleware.NewPIIMiddleware(middleware.DefaultPIIPatterns))
	}
	if cfg.TranscriptKey != "" {
		key, err := middleware.ParseKey(cfg.TranscriptKey)
		if err != nil {
			return nil, err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}
	return middleware.Chain(store, mws...), nil
}

// Host owns one session and everything around it.
type Host struct {
	Config     config.Config
	Logger     *slog.Logger
	Catalog    *catalog.Catalog
	Controller *session.Controller
	Recorder   *transcript.Recorder
	Metrics    *observability.Metrics
	Registry   *prometheus.Registry

	// Redis is set when transcripts are kept in Redis.
	Redis *redis.TranscriptStore
}

// NewHost builds the session behind ui. Rendered messages are recorded
// before they reach ui.
func NewHost(ctx context.Context, cfg config.Config, ui ports.UI, logger *slog.Logger) (*Host, error) {
	cat, err := LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded", "flows", cat.Len(), "sections", len(cat.Sections()))

	h := &Host{
		Config:   cfg,
		Logger:   logger,
		Catalog:  cat,
		Registry: prometheus.NewRegistry(),
	}
	h.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	h.Metrics = observability.NewMetrics(h.Registry)

	var store ports.TranscriptStore = memory.NewTranscriptStore()
	if cfg.Redis.Addr != "" {
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redis.WithTTL(cfg.Redis.TranscriptTTL))
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, fmt.Errorf("error connecting to redis: %w", err)
		}
		h.Redis = rs
		store = rs
	}
	store, err = secureStore(cfg, store)
	if err != nil {
		h.Close()
		return nil, err
	}
	h.Recorder = transcript.NewRecorder(ui, store,
		transcript.WithSessionID(cfg.SessionID),
		transcript.WithLogger(logger),
	)

	speech, err := speechOptions(cfg, logger)
	if err != nil {
		h.Close()
		return nil, err
	}
	opts := append([]session.Option{
		session.WithLogger(logger),
		session.WithLifecycleHooks(domain.MergeHooks(h.Metrics.Hooks(), observability.LogHooks(logger))),
	}, speech...)
	h.Controller = session.NewController(cat, h.Recorder, opts...)
	return h, nil
}

// SessionID returns the transcript key of the hosted session.
func (h *Host) SessionID() string {
	return h.Recorder.SessionID()
}

// Guard takes the Redis lock on the session id so that two processes never
// append to the same transcript. It is a no-op without Redis.
func (h *Host) Guard(ctx context.Context) (func(), error) {
	if h.Redis == nil {
		return func() {}, nil
	}
	locker := redis.NewLocker(h.Redis.Client(), redis.DefaultPrefix)
	release, err := locker.Hold(ctx, h.SessionID(), lockTTL, lockWait)
	if err != nil {
		if errors.Is(err, redis.ErrLockAcquire) {
			return nil, fmt.Errorf("session %q is already hosted elsewhere", h.SessionID())
		}
		return nil, err
	}
	return release, nil
}

// Close stops background work and releases connections.
func (h *Host) Close() {
	if h.Controller != nil {
		h.Controller.Close()
	}
	if h.Redis != nil {
		if err := h.Redis.Close(); err != nil {
			h.Logger.Warn("failed to close redis", "error", err)
		}
	}
}
