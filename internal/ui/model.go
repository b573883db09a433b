package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"vitrine/internal/filter"
	"vitrine/internal/prefs"
)

type view int

const (
	viewShop view = iota
	viewDetail
	viewCart
	viewLogin
	viewSignup
)

// Model is the root bubbletea model: it owns the active view and the
// filter-action pipeline (dispatch, URL sync, fetch trigger).
type Model struct {
	opts   Options
	keys   keyMap
	theme  Theme
	styles Styles
	help   help.Model

	view     view
	shop     shopModel
	detail   detailModel
	cartView cartModel
	login    formModel
	signup   formModel

	width    int
	height   int
	showHelp bool
	status   string
}

func newModel(opts Options) *Model {
	theme := GetTheme(opts.ThemeName)
	styles := theme.Styles()
	m := &Model{
		opts:   opts,
		keys:   newKeyMap(),
		theme:  theme,
		styles: styles,
		help:   help.New(),
	}
	m.shop = newShopModel(opts, styles)
	m.detail = newDetailModel(opts, styles)
	m.cartView = newCartModel(opts, styles)
	m.login = newLoginForm(opts, styles)
	m.signup = newSignupForm(opts, styles)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.shop.spin.Tick}
	if m.opts.StartProduct > 0 {
		m.view = viewDetail
		m.detail.loading = true
		cmds = append(cmds, fetchProductCmd(m.opts.Context, m.opts.Fetcher, m.opts.StartProduct))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.shop.resize(msg.Width, msg.Height)
		return m, nil

	case storeChangedMsg:
		m.shop.refresh()
		return m, nil

	case spinner.TickMsg:
		// Handled at the root so the spinner survives view switches.
		return m, m.shop.tick(msg)

	case productMsg:
		m.detail.receive(msg)
		return m, nil

	case authResultMsg:
		return m.handleAuthResult(msg)

	case emailTakenMsg:
		m.signup.fail("Email", "already registered")
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.updateActiveView(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Text-entry modes swallow everything except escape and enter.
	if m.capturingInput() {
		return m, m.updateActiveView(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Cart):
		m.view = viewCart
		m.cartView.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Login):
		if !m.opts.Session.SignedIn() {
			m.view = viewLogin
			return m, m.login.focusFirst()
		}
		return m, nil
	case key.Matches(msg, m.keys.Signup):
		if !m.opts.Session.SignedIn() {
			m.view = viewSignup
			return m, m.signup.focusFirst()
		}
		return m, nil
	case key.Matches(msg, m.keys.Logout):
		m.opts.Session.Clear()
		m.status = "signed out"
		return m, nil
	case key.Matches(msg, m.keys.Shop), key.Matches(msg, m.keys.Escape):
		if m.view != viewShop {
			m.view = viewShop
			return m, nil
		}
	}

	return m, m.updateActiveView(msg)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	switch m.view {
	case viewShop:
		return m.shop.update(m, msg)
	case viewDetail:
		return m.detail.update(m, msg)
	case viewCart:
		return m.cartView.update(m, msg)
	case viewLogin:
		return m.login.update(m, msg)
	case viewSignup:
		return m.signup.update(m, msg)
	}
	return nil
}

func (m *Model) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	form := &m.login
	if msg.signup {
		form = &m.signup
	}
	form.busy = false
	if msg.err != nil {
		form.fail("", "request failed: "+msg.err.Error())
		return m, nil
	}
	m.opts.Session.Save(sessionFrom(msg.resp))
	m.status = "signed in as " + msg.resp.User.Email
	form.reset()
	m.view = viewShop
	return m, nil
}

// capturingInput reports whether a text field currently owns the keyboard.
func (m *Model) capturingInput() bool {
	switch m.view {
	case viewShop:
		return m.shop.capturingInput()
	case viewLogin, viewSignup:
		return true
	}
	return false
}

func (m *Model) cycleTheme() {
	name := NextTheme(m.theme.Name)
	m.theme = GetTheme(name)
	m.styles = m.theme.Styles()
	m.shop.restyle(m.styles)
	m.detail.styles = m.styles
	m.cartView.styles = m.styles
	m.login.styles = m.styles
	m.signup.styles = m.styles
	if err := prefs.Save(m.opts.PrefsPath, prefs.Prefs{Theme: name, Currency: m.opts.Currency}); err != nil {
		m.opts.Logger.Warn("prefs save failed", zap.Error(err))
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	header := m.renderHeader()
	var body string
	switch m.view {
	case viewShop:
		body = m.shop.view(m)
	case viewDetail:
		body = m.detail.view(m)
	case viewCart:
		body = m.cartView.view(m)
	case viewLogin:
		body = m.login.view(m)
	case viewSignup:
		body = m.signup.view(m)
	}
	footer := m.renderFooter()

	if m.showHelp {
		body = m.help.FullHelpView(m.keys.FullHelp())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) renderHeader() string {
	title := m.styles.Header.Render("VITRINE")

	account := "guest"
	if s := m.opts.Session.Current(); s != nil {
		account = s.User.Email
		if m.opts.Session.Expired() {
			account += " (session expired)"
		}
	}

	cartInfo := fmt.Sprintf("cart: %d", m.opts.Cart.Units())
	right := m.styles.MutedText.Render(account + "  •  " + cartInfo)

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return title + lipgloss.NewStyle().Width(gap).Render("") + right
}

func (m *Model) renderFooter() string {
	left := m.styles.FaintText.Render(m.opts.History.Current())
	if m.status != "" {
		left += "  " + m.styles.InfoText.Render(m.status)
	}
	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	return m.styles.Footer.Width(m.width).Render(left + "  " + helpView)
}

// dispatch runs a filter action through the store, rewrites the URL, and
// triggers a fetch. Gender and category changes open a new browsing
// context and push a history entry; everything else replaces in place.
// Debounced triggers (text, price) coalesce before hitting the network.
func (m *Model) dispatch(action filter.Action) {
	m.opts.Store.Dispatch(action)
	snap := m.opts.Store.Snapshot()
	url := m.opts.Codec.Render(snap.State, snap.Bounds)

	push, debounce := false, false
	switch action.(type) {
	case filter.SetGender, filter.SetCategory:
		push = true
	case filter.SetText, filter.SetPriceRange:
		debounce = true
	}

	if push {
		m.opts.History.Push(url)
	} else {
		m.opts.History.Replace(url)
	}

	if debounce {
		m.opts.Orchestrator.RefreshDebounced(m.opts.Context)
	} else {
		m.opts.Orchestrator.Refresh(m.opts.Context)
	}
}

// navigate applies a URL from history without pushing history back, the
// guard that keeps back/forward from looping through the synchronizer. A
// URL carrying a stale category slug is redirected: the entry is rewritten
// in place to the canonical form.
func (m *Model) navigate(raw string) {
	snap := m.opts.Store.Snapshot()
	state, err := m.opts.Codec.Parse(raw, snap.Bounds)
	if err != nil {
		m.opts.Logger.Warn("history url parse failed", zap.String("url", raw), zap.Error(err))
		return
	}
	if ok, err := m.opts.Codec.Canonical(raw, snap.Bounds); err == nil && !ok {
		canonical := m.opts.Codec.Render(state, snap.Bounds)
		m.opts.Logger.Info("redirecting to canonical url",
			zap.String("from", raw), zap.String("to", canonical))
		m.opts.History.Replace(canonical)
	}
	m.opts.Store.Replace(state)
	m.opts.Orchestrator.Refresh(m.opts.Context)
}
