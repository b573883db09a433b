package fetcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"vitrine/internal/catalog"
	"vitrine/internal/filter"
)

// DefaultPageSize is the server page size for product listings.
const DefaultPageSize = 12

// DefaultDebounce is the idle period applied to keystroke-level triggers
// (text input, price slider) before a request is issued.
const DefaultDebounce = 400 * time.Millisecond

// Orchestrator translates the current filter state into catalog requests
// and reconciles responses into the store. Every request carries a
// monotonically increasing sequence number; a response is committed only
// when its sequence is still the latest issued, so a slow early response
// can never overwrite a fresher one.
type Orchestrator struct {
	client   catalog.Fetcher
	store    *filter.Store
	log      *zap.Logger
	pageSize int
	debounce time.Duration

	// categoryGender backs the defensive client-side gender re-filter.
	categoryGender map[int64]string

	mu       sync.Mutex
	seq      uint64
	inflight context.CancelFunc
	timer    *time.Timer
	closed   bool
}

// Options configure an Orchestrator.
type Options struct {
	Client   catalog.Fetcher
	Store    *filter.Store
	Logger   *zap.Logger
	PageSize int           // zero uses DefaultPageSize
	Debounce time.Duration // zero uses DefaultDebounce
	// CategoryGender maps category id to its gender tag; when set, fetched
	// pages are re-filtered client-side against the selected gender.
	CategoryGender map[int64]string
}

// New builds an Orchestrator.
func New(opts Options) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Orchestrator{
		client:         opts.Client,
		store:          opts.Store,
		log:            opts.Logger,
		pageSize:       opts.PageSize,
		debounce:       opts.Debounce,
		categoryGender: opts.CategoryGender,
	}
}

// PageSize returns the configured page size.
func (o *Orchestrator) PageSize() int {
	return o.pageSize
}

// Refresh issues a fetch for the current filter state. Any in-flight
// request is superseded: its context is cancelled and its response, if it
// still arrives, is discarded by the sequence check.
func (o *Orchestrator) Refresh(ctx context.Context) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.seq++
	seq := o.seq
	if o.inflight != nil {
		o.inflight()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	o.inflight = cancel
	o.mu.Unlock()

	snap := o.store.Snapshot()
	state := o.clampPage(snap)
	query := BuildQuery(state, snap.Bounds, o.pageSize)

	o.store.BeginLoad()

	go func() {
		defer cancel()
		page, err := o.client.FetchProducts(reqCtx, query)

		// The staleness check and the store commit must be one atomic step.
		// Checked-then-released, a response that passed the check could be
		// descheduled while a newer refresh runs to completion, then land
		// its older page last. Refresh bumps seq under the same lock, so
		// holding it through the commit closes that window.
		o.mu.Lock()
		defer o.mu.Unlock()
		if seq != o.seq || o.closed {
			o.log.Debug("discarding superseded response", zap.Uint64("seq", seq))
			return
		}

		if err != nil {
			o.log.Warn("product fetch failed", zap.Uint64("seq", seq), zap.Error(err))
			o.store.FailResult(err)
			return
		}

		items := FilterByGender(page.Products, state.Gender, o.categoryGender)
		o.store.ApplyResult(items, page.Total)
		o.maybeAdoptBounds(snap.Bounds, query, page)
	}()
}

// RefreshDebounced schedules a Refresh after the debounce interval,
// restarting the clock on every call. Used for text and price triggers.
func (o *Orchestrator) RefreshDebounced(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	if o.timer != nil {
		o.timer.Stop()
	}
	o.timer = time.AfterFunc(o.debounce, func() {
		o.Refresh(ctx)
	})
}

// Close cancels any in-flight request and pending debounce timer. Further
// refreshes are no-ops; a debounce timer can never fire after teardown.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	if o.inflight != nil {
		o.inflight()
		o.inflight = nil
	}
}

// clampPage forces the page into range once a total is known, committing
// the corrected page back to the store so the URL and request agree.
func (o *Orchestrator) clampPage(snap filter.Snapshot) filter.State {
	state := snap.State
	total := 0
	if snap.Result.Status == filter.StatusLoaded || snap.Result.Status == filter.StatusFailed {
		total = snap.Result.Total
	}
	clamped := filter.ClampPage(state.Page, total, o.pageSize)
	if clamped != state.Page {
		state.Page = clamped
		o.store.Replace(state)
	}
	return state
}

// maybeAdoptBounds records catalog price bounds from the first response
// that reports them. Responses to filtered requests are skipped: the API
// reports the extent of the matching subset, not the whole catalog, and a
// deep-linked start would otherwise seed wrong bounds.
func (o *Orchestrator) maybeAdoptBounds(known filter.PriceRange, query catalog.ProductQuery, page catalog.ProductPage) {
	if !known.IsZero() || !unfiltered(query) {
		return
	}
	if page.MinPrice == 0 && page.MaxPrice == 0 {
		return
	}
	o.store.SetBounds(filter.PriceRange{Min: page.MinPrice, Max: page.MaxPrice})
}

// unfiltered reports whether a query narrows the catalog. Sort and
// pagination do not affect the price extent.
func unfiltered(q catalog.ProductQuery) bool {
	return q.Filter == "" &&
		q.CategoryID == 0 &&
		q.Gender == "" &&
		q.PriceMin == nil &&
		q.PriceMax == nil
}

// BuildQuery maps a filter state onto request parameters. Defaults are
// omitted; pagination is always present.
func BuildQuery(s filter.State, bounds filter.PriceRange, pageSize int) catalog.ProductQuery {
	q := catalog.ProductQuery{
		Limit:  pageSize,
		Offset: (s.Page - 1) * pageSize,
	}
	if s.CategoryID != filter.CategoryAll {
		q.CategoryID = s.CategoryID
	}
	if s.Gender != filter.GenderAll {
		q.Gender = string(s.Gender)
	}
	if s.Text != "" {
		q.Filter = s.Text
	}
	if s.Sort != filter.SortFeatured {
		q.Sort = string(s.Sort)
	}
	if !s.IsDefaultPrice(bounds) {
		if s.Price.Min != bounds.Min {
			min := s.Price.Min
			q.PriceMin = &min
		}
		if s.Price.Max != bounds.Max {
			max := s.Price.Max
			q.PriceMax = &max
		}
	}
	return q
}

// FilterByGender drops products whose category belongs to another gender.
// The server already filters by gender; this is a defensive re-apply for
// responses that predate a gender switch. It is idempotent: a second pass
// removes nothing further.
func FilterByGender(products []catalog.Product, gender filter.Gender, categoryGender map[int64]string) []catalog.Product {
	if gender == filter.GenderAll || len(categoryGender) == 0 {
		return products
	}
	out := products[:0:len(products)]
	for _, p := range products {
		catGender, known := categoryGender[p.CategoryID]
		if !known || catGender == catalog.GenderAll || catGender == string(gender) {
			out = append(out, p)
		}
	}
	return out
}
