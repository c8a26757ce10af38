package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/five82/dltview/internal/config"
	"github.com/five82/dltview/internal/dltfile"
	"github.com/five82/dltview/internal/filter"
	"github.com/five82/dltview/internal/logging"
	"github.com/five82/dltview/internal/metrics"
	"github.com/five82/dltview/internal/prefs"
	"github.com/five82/dltview/internal/search"
	"github.com/five82/dltview/internal/session"
	"github.com/five82/dltview/internal/state"
	"github.com/five82/dltview/internal/ui"
)

// Options configure the dltview application. Zero values defer to the
// config file.
type Options struct {
	Files        []string
	ConfigPath   string
	PrefsPath    string // empty uses default ~/.config/dltview/prefs.toml
	Filter       string
	Search       string
	IgnoreCase   bool
	LogFile      string
	MetricsAddr  string
	Workers      int
	NoIndexCache bool
}

// Run boots the viewer TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	criteria, err := InitialCriteria(cfg, opts.Filter)
	if err != nil {
		return err
	}
	if opts.Search != "" {
		if _, err := search.Compile(opts.Search, !opts.IgnoreCase); err != nil {
			return err
		}
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if cfg.MetricsAddr != "" {
		if _, err := metrics.Serve(ctx, cfg.MetricsAddr, reg, logger); err != nil {
			return fmt.Errorf("serve metrics: %w", err)
		}
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("preferences unreadable, using defaults", zap.String("path", prefsPath), zap.Error(err))
	}

	openOpts := dltfile.Options{
		IndexCache: cfg.IndexCache,
		Workers:    cfg.Workers,
		Logger:     logger,
		Metrics:    m,
	}
	sess := session.New(session.Options{
		Open:       openOpts,
		Workers:    cfg.Workers,
		Criteria:   criteria,
		IgnoreCase: opts.IgnoreCase,
		Logger:     logger,
		Metrics:    m,
	})
	defer sess.Close()

	store := &state.Store{}
	StartLoader(ctx, store, opts.Files, openOpts)
	defer drain(store)

	logger.Info("dltview started",
		zap.Strings("files", opts.Files),
		zap.Stringer("filter", criteria),
		zap.Int("workers", cfg.Workers),
		zap.Bool("index_cache", cfg.IndexCache),
	)

	uiOpts := ui.Options{
		Context:       ctx,
		Session:       sess,
		Store:         store,
		TickRate:      cfg.TickRate,
		InitialSearch: opts.Search,
		Prefs:         userPrefs,
		PrefsPath:     prefsPath,
		Logger:        logger,
	}
	return ui.Run(uiOpts)
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.LogFile != "" {
		if path, err := config.ExpandPath(opts.LogFile); err == nil {
			cfg.LogFile = path
		}
	}
	if opts.MetricsAddr != "" {
		cfg.MetricsAddr = opts.MetricsAddr
	}
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}
	if opts.NoIndexCache {
		cfg.IndexCache = false
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 250 * time.Millisecond
	}
}

// InitialCriteria returns the filter installed before the first file
// opens. A non-empty query replaces the config defaults entirely.
func InitialCriteria(cfg config.Config, query string) (filter.Criteria, error) {
	if query != "" {
		return filter.ParseQuery(query)
	}
	var c filter.Criteria
	if cfg.DefaultAppID != "" {
		c = c.WithAppID(cfg.DefaultAppID)
	}
	if cfg.DefaultContextID != "" {
		c = c.WithContextID(cfg.DefaultContextID)
	}
	if cfg.DefaultLogLevel != nil {
		c = c.WithLogLevel(*cfg.DefaultLogLevel)
	}
	return c, nil
}
