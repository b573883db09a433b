package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"vitrine/internal/cart"
	"vitrine/internal/catalog"
	"vitrine/internal/config"
	"vitrine/internal/fetcher"
	"vitrine/internal/filter"
	"vitrine/internal/prefs"
	"vitrine/internal/session"
	"vitrine/internal/shopurl"
	"vitrine/internal/ui"
)

// scanLimit bounds the one-time catalog scan used to derive per-category
// product counts and the price extent.
const scanLimit = 1000

// Options configure the Vitrine application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/vitrine/prefs.toml
	StartURL   string // optional deep link: a /shop... or /product/... URL
	DebounceMS int    // zero uses the configured or default debounce
}

// Run boots the Vitrine TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	logger := newLogger(cfg.LogPath())
	defer func() { _ = logger.Sync() }()

	client, err := catalog.NewClient(cfg.APIBase)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	sessions := session.NewManager(cfg.SessionDir(), logger)
	basket := cart.Load(cfg.CartPath(), logger)

	// A slow or down API must not keep the UI from starting: category and
	// scan failures degrade to an empty toolbar and unknown bounds, and the
	// first successful product fetch repairs the bounds.
	categories, bounds := loadCatalog(ctx, client, logger)

	initial := filter.Default(bounds)
	codec := shopurl.NewCodec(categories)
	var startProduct int64
	if opts.StartURL != "" {
		if id, perr := codec.ParseProduct(opts.StartURL); perr == nil {
			startProduct = id
		} else {
			parsed, err := codec.Parse(opts.StartURL, bounds)
			if err != nil {
				return fmt.Errorf("parse start url %q: %w", opts.StartURL, err)
			}
			initial = parsed
			// Stale slugs parse fine (the id is authoritative); the history
			// entry below is rendered from the state, so the redirect to the
			// canonical form only needs to be logged.
			if ok, cerr := codec.Canonical(opts.StartURL, bounds); cerr == nil && !ok {
				logger.Info("redirecting start url to canonical form",
					zap.String("from", opts.StartURL),
					zap.String("to", codec.Render(parsed, bounds)))
			}
		}
	}

	store := filter.NewStore(initial)
	store.SetBounds(bounds)

	debounce := time.Duration(cfg.DebounceMS) * time.Millisecond
	if opts.DebounceMS > 0 {
		debounce = time.Duration(opts.DebounceMS) * time.Millisecond
	}

	orchestrator := fetcher.New(fetcher.Options{
		Client:         client,
		Store:          store,
		Logger:         logger,
		PageSize:       cfg.PageSize,
		Debounce:       debounce,
		CategoryGender: catalog.GenderByCategory(categories),
	})
	defer orchestrator.Close()

	snap := store.Snapshot()
	history := shopurl.NewHistory(codec.Render(snap.State, snap.Bounds))

	// Populate the grid before the first frame.
	orchestrator.Refresh(ctx)

	return ui.Run(ui.Options{
		Context:      ctx,
		Store:        store,
		Orchestrator: orchestrator,
		Codec:        codec,
		History:      history,
		Cart:         basket,
		Session:      sessions,
		Fetcher:      client,
		Auth:         client,
		Categories:   categories,
		Logger:       logger,
		ThemeName:    userPrefs.Theme,
		PrefsPath:    opts.PrefsPath,
		Currency:     userPrefs.Currency,
		StartProduct: startProduct,
	})
}

// loadCatalog fetches the category list and scans the catalog once for
// product counts and price bounds. Both steps are best-effort.
func loadCatalog(ctx context.Context, client *catalog.Client, logger *zap.Logger) ([]catalog.Category, filter.PriceRange) {
	categories, err := client.FetchCategories(ctx)
	if err != nil {
		logger.Warn("category fetch failed, starting without categories", zap.Error(err))
		categories = nil
	}

	page, err := client.FetchProducts(ctx, catalog.ProductQuery{Limit: scanLimit})
	if err != nil {
		logger.Warn("catalog scan failed, price bounds unknown", zap.Error(err))
		return categories, filter.PriceRange{}
	}

	catalog.CountProducts(categories, page.Products)
	return categories, filter.PriceRange{Min: page.MinPrice, Max: page.MaxPrice}
}

// newLogger builds a file-backed logger. The terminal belongs to the UI,
// so nothing may write to stdout or stderr while the program runs.
func newLogger(path string) *zap.Logger {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zap.NewNop()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
