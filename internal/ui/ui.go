package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"vitrine/internal/cart"
	"vitrine/internal/catalog"
	"vitrine/internal/fetcher"
	"vitrine/internal/filter"
	"vitrine/internal/session"
	"vitrine/internal/shopurl"
)

// Options configure the UI runtime.
type Options struct {
	Context      context.Context
	Store        *filter.Store
	Orchestrator *fetcher.Orchestrator
	Codec        *shopurl.Codec
	History      *shopurl.History
	Cart         *cart.Cart
	Session      *session.Manager
	Fetcher      catalog.Fetcher
	Auth         catalog.Authenticator
	Categories   []catalog.Category
	Logger       *zap.Logger
	ThemeName    string
	PrefsPath    string
	Currency     string
	// StartProduct opens the product detail view on startup when set,
	// driven by a /product/... deep link.
	StartProduct int64
}

// Run boots the bubbletea program and blocks until the context is
// cancelled or the user quits. Store mutations are forwarded into the
// program as messages so every committed change re-renders.
func Run(opts Options) error {
	if opts.Store == nil || opts.Orchestrator == nil || opts.Codec == nil {
		return fmt.Errorf("ui requires store, orchestrator, and codec")
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.History == nil {
		opts.History = shopurl.NewHistory("/shop")
	}
	if opts.Currency == "" {
		opts.Currency = "$"
	}

	model := newModel(opts)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(opts.Context),
	)

	unsubscribe := opts.Store.Subscribe(func() {
		program.Send(storeChangedMsg{})
	})
	defer unsubscribe()

	_, err := program.Run()
	return err
}
