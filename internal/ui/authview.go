package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vitrine/internal/auth"
	"vitrine/internal/catalog"
	"vitrine/internal/session"
)

// formModel is a shared login/signup form: a column of text inputs with
// per-field validation messages. Validation runs on submit; server errors
// land in the banner.
type formModel struct {
	opts   Options
	styles Styles

	title   string
	signup  bool
	labels  []string
	fields  []string
	inputs  []textinput.Model
	errs    map[string]string
	banner  string
	focused int
	busy    bool
}

func newLoginForm(opts Options, styles Styles) formModel {
	f := formModel{
		opts:   opts,
		styles: styles,
		title:  "Log in",
		labels: []string{"Email", "Password"},
		fields: []string{"Email", "Password"},
		errs:   map[string]string{},
	}
	f.buildInputs()
	return f
}

func newSignupForm(opts Options, styles Styles) formModel {
	f := formModel{
		opts:   opts,
		styles: styles,
		title:  "Sign up",
		signup: true,
		labels: []string{"Name", "Email", "Password", "Confirm password"},
		fields: []string{"Name", "Email", "Password", "Confirm"},
		errs:   map[string]string{},
	}
	f.buildInputs()
	return f
}

func (f *formModel) buildInputs() {
	f.inputs = make([]textinput.Model, len(f.fields))
	for i, field := range f.fields {
		in := textinput.New()
		in.Placeholder = strings.ToLower(f.labels[i])
		in.CharLimit = 80
		if field == "Password" || field == "Confirm" {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.inputs[i] = in
	}
}

// focusFirst resets focus to the top field when the view opens.
func (f *formModel) focusFirst() tea.Cmd {
	f.focused = 0
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[0].Focus()
}

// fail records a field error (or a banner when field is empty).
func (f *formModel) fail(field, msg string) {
	if field == "" {
		f.banner = msg
		return
	}
	f.errs[field] = msg
}

// reset clears values, errors, and the banner.
func (f *formModel) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.errs = map[string]string{}
	f.banner = ""
	f.focused = 0
	f.busy = false
}

func (f *formModel) update(root *Model, msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateFocused(msg)
	}

	switch keyMsg.Type {
	case tea.KeyEscape:
		f.reset()
		root.view = viewShop
		return nil

	case tea.KeyTab, tea.KeyDown:
		return f.moveFocus(1)

	case tea.KeyShiftTab, tea.KeyUp:
		return f.moveFocus(-1)

	case tea.KeyEnter:
		if f.focused < len(f.inputs)-1 {
			return f.moveFocus(1)
		}
		return f.submit(root)
	}

	return f.updateFocused(msg)
}

func (f *formModel) moveFocus(delta int) tea.Cmd {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focused].Focus()
}

func (f *formModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return cmd
}

// submit validates locally and, when clean, issues the auth request.
func (f *formModel) submit(root *Model) tea.Cmd {
	if f.busy {
		return nil
	}
	f.banner = ""

	value := func(field string) string {
		for i, name := range f.fields {
			if name == field {
				return f.inputs[i].Value()
			}
		}
		return ""
	}

	if f.signup {
		form := auth.SignupForm{
			Name:     value("Name"),
			Email:    value("Email"),
			Password: value("Password"),
			Confirm:  value("Confirm"),
		}
		f.errs = form.Validate()
		if len(f.errs) > 0 {
			return nil
		}
		f.busy = true
		return signupCmd(root.opts.Context, root.opts.Auth, root.opts.Logger, form.Credentials())
	}

	form := auth.LoginForm{
		Email:    value("Email"),
		Password: value("Password"),
	}
	f.errs = form.Validate()
	if len(f.errs) > 0 {
		return nil
	}
	f.busy = true
	return loginCmd(root.opts.Context, root.opts.Auth, form.Credentials())
}

func (f *formModel) view(root *Model) string {
	var lines []string
	lines = append(lines, f.styles.AccentText.Render(f.title))
	lines = append(lines, "")

	for i := range f.inputs {
		lines = append(lines, f.styles.MutedText.Render(f.labels[i]))
		lines = append(lines, f.inputs[i].View())
		if msg, ok := f.errs[f.fields[i]]; ok {
			lines = append(lines, f.styles.DangerText.Render("  "+msg))
		}
	}

	if f.banner != "" {
		lines = append(lines, "")
		lines = append(lines, f.styles.DangerText.Render(f.banner))
	}

	lines = append(lines, "")
	if f.busy {
		lines = append(lines, f.styles.InfoText.Render("submitting…"))
	} else {
		lines = append(lines, f.styles.FaintText.Render("tab moves, enter submits, esc cancels"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, f.styles.FocusPanel.Render(strings.Join(lines, "\n")))
}

// sessionFrom converts an auth response into a persistable session.
func sessionFrom(resp *catalog.AuthResponse) session.Session {
	return session.Session{User: resp.User, Token: resp.Token}
}
