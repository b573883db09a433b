package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vitrine/internal/cart"
	"vitrine/internal/catalog"
	"vitrine/internal/filter"
)

type shopMode int

const (
	modeBrowse shopMode = iota
	modeSearch
	modePrice
	modeCategories
)

// shopModel renders the product listing: filter toolbar, product table,
// and pagination. It is a pure consumer of the filter store; every filter
// key dispatches through the root model's pipeline.
type shopModel struct {
	opts   Options
	styles Styles

	mode      shopMode
	grid      table.Model
	spin      spinner.Model
	search    textinput.Model
	priceMin  textinput.Model
	priceMax  textinput.Model
	priceSide int
	catCursor int

	categoryTitles map[int64]string
	width          int
	height         int
}

func newShopModel(opts Options, styles Styles) shopModel {
	columns := []table.Column{
		{Title: "Product", Width: 36},
		{Title: "Price", Width: 12},
		{Title: "Rating", Width: 8},
		{Title: "Category", Width: 20},
	}
	grid := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	search := textinput.New()
	search.Placeholder = "search products"
	search.CharLimit = 80

	priceMin := textinput.New()
	priceMin.Placeholder = "min"
	priceMin.CharLimit = 10
	priceMax := textinput.New()
	priceMax.Placeholder = "max"
	priceMax.CharLimit = 10

	titles := make(map[int64]string, len(opts.Categories))
	for _, c := range opts.Categories {
		titles[c.ID] = c.Title
	}

	s := shopModel{
		opts:           opts,
		styles:         styles,
		grid:           grid,
		spin:           spinner.New(spinner.WithSpinner(spinner.Dot)),
		search:         search,
		priceMin:       priceMin,
		priceMax:       priceMax,
		categoryTitles: titles,
	}
	s.restyle(styles)
	s.refresh()
	return s
}

func (s *shopModel) restyle(styles Styles) {
	s.styles = styles
	s.spin.Style = styles.InfoText
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true).Foreground(s.styles.AccentText.GetForeground())
	ts.Selected = s.styles.Selected
	s.grid.SetStyles(ts)
}

func (s *shopModel) resize(width, height int) {
	s.width = width
	s.height = height
	gridHeight := height - 8
	if gridHeight < 4 {
		gridHeight = 4
	}
	s.grid.SetHeight(gridHeight)
}

// refresh rebuilds the table rows from the current store snapshot.
func (s *shopModel) refresh() {
	snap := s.opts.Store.Snapshot()
	rows := make([]table.Row, 0, len(snap.Result.Items))
	for _, p := range snap.Result.Items {
		rows = append(rows, table.Row{
			p.Name,
			s.formatPrice(p),
			fmt.Sprintf("%.1f", p.Rating),
			s.categoryTitles[p.CategoryID],
		})
	}
	s.grid.SetRows(rows)
	if cursor := s.grid.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		s.grid.SetCursor(len(rows) - 1)
	}
}

func (s *shopModel) formatPrice(p catalog.Product) string {
	if p.DiscountPrice > 0 && p.DiscountPrice < p.Price {
		return fmt.Sprintf("%s%.2f*", s.opts.Currency, p.DiscountPrice)
	}
	return fmt.Sprintf("%s%.2f", s.opts.Currency, p.Price)
}

func (s *shopModel) capturingInput() bool {
	return s.mode == modeSearch || s.mode == modePrice
}

// selectedProduct resolves the highlighted table row to its product.
func (s *shopModel) selectedProduct() (catalog.Product, bool) {
	snap := s.opts.Store.Snapshot()
	cursor := s.grid.Cursor()
	if cursor < 0 || cursor >= len(snap.Result.Items) {
		return catalog.Product{}, false
	}
	return snap.Result.Items[cursor], true
}

// visibleCategories lists the picker entries for the current gender. Index
// zero is the "all categories" entry.
func (s *shopModel) visibleCategories() []catalog.Category {
	snap := s.opts.Store.Snapshot()
	out := make([]catalog.Category, 0, len(s.opts.Categories))
	for _, c := range s.opts.Categories {
		if snap.State.Gender == filter.GenderAll || c.Gender == string(snap.State.Gender) || c.Gender == catalog.GenderAll {
			out = append(out, c)
		}
	}
	return out
}

// tick advances the loading spinner regardless of the active view.
func (s *shopModel) tick(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	s.spin, cmd = s.spin.Update(msg)
	return cmd
}

func (s *shopModel) update(root *Model, msg tea.Msg) tea.Cmd {
	switch s.mode {
	case modeSearch:
		return s.updateSearch(root, msg)
	case modePrice:
		return s.updatePrice(root, msg)
	case modeCategories:
		return s.updateCategories(root, msg)
	}
	return s.updateBrowse(root, msg)
}

func (s *shopModel) updateBrowse(root *Model, msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		s.grid, cmd = s.grid.Update(msg)
		return cmd
	}

	keys := root.keys
	snap := s.opts.Store.Snapshot()

	switch {
	case key.Matches(keyMsg, keys.Search):
		s.mode = modeSearch
		s.search.SetValue(snap.State.Text)
		return s.search.Focus()

	case key.Matches(keyMsg, keys.Gender):
		root.dispatch(filter.SetGender{Gender: nextGender(snap.State.Gender)})
		return nil

	case key.Matches(keyMsg, keys.Category):
		s.mode = modeCategories
		s.catCursor = 0
		return nil

	case key.Matches(keyMsg, keys.Sort):
		root.dispatch(filter.SetSort{Sort: nextSort(snap.State.Sort)})
		return nil

	case key.Matches(keyMsg, keys.Price):
		s.mode = modePrice
		s.priceSide = 0
		s.priceMin.SetValue(trimFloat(snap.State.Price.Min))
		s.priceMax.SetValue(trimFloat(snap.State.Price.Max))
		s.priceMax.Blur()
		return s.priceMin.Focus()

	case key.Matches(keyMsg, keys.Reset):
		root.dispatch(filter.Reset{})
		return nil

	case key.Matches(keyMsg, keys.NextPage):
		if snap.State.Page < filter.TotalPages(snap.Result.Total, root.opts.Orchestrator.PageSize()) {
			root.dispatch(filter.SetPage{Page: snap.State.Page + 1})
		}
		return nil

	case key.Matches(keyMsg, keys.PrevPage):
		if snap.State.Page > 1 {
			root.dispatch(filter.SetPage{Page: snap.State.Page - 1})
		}
		return nil

	case key.Matches(keyMsg, keys.Back):
		if url, ok := root.opts.History.Back(); ok {
			root.navigate(url)
		}
		return nil

	case key.Matches(keyMsg, keys.Forward):
		if url, ok := root.opts.History.Forward(); ok {
			root.navigate(url)
		}
		return nil

	case key.Matches(keyMsg, keys.Select):
		if p, ok := s.selectedProduct(); ok {
			root.view = viewDetail
			root.detail.loading = true
			return fetchProductCmd(root.opts.Context, root.opts.Fetcher, p.ID)
		}
		return nil

	case key.Matches(keyMsg, keys.AddCart):
		if p, ok := s.selectedProduct(); ok {
			root.opts.Cart.Add(cart.Line{
				ProductID: p.ID,
				Name:      p.Name,
				Image:     p.DisplayImage(),
				Price:     p.EffectivePrice(),
			}, 1)
			root.status = fmt.Sprintf("added %s to cart", p.Name)
		}
		return nil
	}

	var cmd tea.Cmd
	s.grid, cmd = s.grid.Update(msg)
	return cmd
}

func (s *shopModel) updateSearch(root *Model, msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEscape:
			s.mode = modeBrowse
			s.search.Blur()
			return nil
		case tea.KeyEnter:
			s.mode = modeBrowse
			s.search.Blur()
			root.dispatch(filter.SetText{Text: s.search.Value()})
			root.opts.Orchestrator.Refresh(root.opts.Context)
			return nil
		}
	}

	before := s.search.Value()
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	if s.search.Value() != before {
		// Live keystroke: state and URL track immediately, the network
		// request waits for the debounce window.
		root.dispatch(filter.SetText{Text: s.search.Value()})
	}
	return cmd
}

func (s *shopModel) updatePrice(root *Model, msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEscape:
			s.mode = modeBrowse
			s.priceMin.Blur()
			s.priceMax.Blur()
			return nil
		case tea.KeyTab, tea.KeyShiftTab:
			s.priceSide = 1 - s.priceSide
			if s.priceSide == 0 {
				s.priceMax.Blur()
				return s.priceMin.Focus()
			}
			s.priceMin.Blur()
			return s.priceMax.Focus()
		case tea.KeyEnter:
			s.mode = modeBrowse
			s.priceMin.Blur()
			s.priceMax.Blur()
			snap := s.opts.Store.Snapshot()
			min := parseFloatOr(s.priceMin.Value(), snap.Bounds.Min)
			max := parseFloatOr(s.priceMax.Value(), snap.Bounds.Max)
			root.dispatch(filter.SetPriceRange{Min: min, Max: max})
			return nil
		}
	}

	var cmd tea.Cmd
	if s.priceSide == 0 {
		s.priceMin, cmd = s.priceMin.Update(msg)
	} else {
		s.priceMax, cmd = s.priceMax.Update(msg)
	}
	return cmd
}

func (s *shopModel) updateCategories(root *Model, msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	visible := s.visibleCategories()

	switch {
	case keyMsg.Type == tea.KeyEscape:
		s.mode = modeBrowse
	case key.Matches(keyMsg, root.keys.Up):
		if s.catCursor > 0 {
			s.catCursor--
		}
	case key.Matches(keyMsg, root.keys.Down):
		if s.catCursor < len(visible) {
			s.catCursor++
		}
	case keyMsg.Type == tea.KeyEnter:
		s.mode = modeBrowse
		if s.catCursor == 0 {
			root.dispatch(filter.SetCategory{ID: filter.CategoryAll})
		} else if s.catCursor-1 < len(visible) {
			root.dispatch(filter.SetCategory{ID: visible[s.catCursor-1].ID})
		}
	}
	return nil
}

func (s *shopModel) view(root *Model) string {
	snap := s.opts.Store.Snapshot()

	var sections []string
	sections = append(sections, s.renderToolbar(snap))

	switch s.mode {
	case modeSearch:
		sections = append(sections, s.styles.FocusPanel.Render("search: "+s.search.View()))
	case modePrice:
		line := fmt.Sprintf("price  min %s  max %s  (tab switches, enter applies)", s.priceMin.View(), s.priceMax.View())
		sections = append(sections, s.styles.FocusPanel.Render(line))
	case modeCategories:
		sections = append(sections, s.renderCategoryPicker(snap))
	}

	sections = append(sections, s.renderStatus(snap))
	sections = append(sections, s.grid.View())
	sections = append(sections, s.renderPagination(snap, root))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (s *shopModel) renderToolbar(snap filter.Snapshot) string {
	parts := []string{
		s.styles.Badge.Render(string(snap.State.Gender)),
	}
	if snap.State.CategoryID != filter.CategoryAll {
		parts = append(parts, s.styles.AccentText.Render(s.categoryTitles[snap.State.CategoryID]))
	} else {
		parts = append(parts, s.styles.MutedText.Render("all categories"))
	}
	parts = append(parts, s.styles.MutedText.Render("sort: ")+s.styles.Text.Render(string(snap.State.Sort)))
	if !snap.State.IsDefaultPrice(snap.Bounds) {
		parts = append(parts, s.styles.InfoText.Render(fmt.Sprintf("%s%s–%s%s",
			s.opts.Currency, trimFloat(snap.State.Price.Min),
			s.opts.Currency, trimFloat(snap.State.Price.Max))))
	}
	if snap.State.Text != "" {
		parts = append(parts, s.styles.WarningText.Render(fmt.Sprintf("%q", snap.State.Text)))
	}
	return strings.Join(parts, "  ")
}

func (s *shopModel) renderStatus(snap filter.Snapshot) string {
	switch snap.Result.Status {
	case filter.StatusLoading:
		return s.spin.View() + s.styles.InfoText.Render(" loading…")
	case filter.StatusFailed:
		msg := "fetch failed"
		if snap.Result.LastError != nil {
			msg = snap.Result.LastError.Error()
		}
		// Stale items stay in the grid; only the banner changes.
		return s.styles.DangerText.Render(msg) + s.styles.MutedText.Render("  showing previous results, any filter retries")
	case filter.StatusIdle:
		return s.styles.MutedText.Render("waiting for catalog…")
	}
	return ""
}

func (s *shopModel) renderCategoryPicker(snap filter.Snapshot) string {
	visible := s.visibleCategories()
	var b strings.Builder
	render := func(idx int, label string) {
		cursor := "  "
		if idx == s.catCursor {
			cursor = "> "
		}
		line := cursor + label
		if idx == s.catCursor {
			line = s.styles.Selected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	render(0, "All categories")
	for i, c := range visible {
		render(i+1, fmt.Sprintf("%s (%d)", c.Title, c.ProductCount))
	}
	return s.styles.FocusPanel.Render(strings.TrimSuffix(b.String(), "\n"))
}

func (s *shopModel) renderPagination(snap filter.Snapshot, root *Model) string {
	pages := filter.TotalPages(snap.Result.Total, root.opts.Orchestrator.PageSize())
	return s.styles.MutedText.Render(fmt.Sprintf("page %d/%d  •  %d products", snap.State.Page, pages, snap.Result.Total))
}

func nextGender(g filter.Gender) filter.Gender {
	switch g {
	case filter.GenderAll:
		return filter.GenderMen
	case filter.GenderMen:
		return filter.GenderWomen
	}
	return filter.GenderAll
}

func nextSort(s filter.Sort) filter.Sort {
	for i, candidate := range filter.Sorts {
		if candidate == s {
			return filter.Sorts[(i+1)%len(filter.Sorts)]
		}
	}
	return filter.SortFeatured
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloatOr(raw string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fallback
	}
	return v
}
