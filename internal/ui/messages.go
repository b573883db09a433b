package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"vitrine/internal/auth"
	"vitrine/internal/catalog"
)

// storeChangedMsg arrives whenever the filter store commits a mutation.
// The UI re-reads the snapshot; it never carries state itself.
type storeChangedMsg struct{}

// productMsg carries the result of a product detail fetch.
type productMsg struct {
	product *catalog.Product
	err     error
}

// authResultMsg carries the result of a login or signup call.
type authResultMsg struct {
	resp   *catalog.AuthResponse
	err    error
	signup bool
}

// emailTakenMsg reports a failed availability check for the signup email.
// The check fails open, so the message only ever flags a taken address.
type emailTakenMsg struct {
	email string
}

func fetchProductCmd(ctx context.Context, client catalog.Fetcher, id int64) tea.Cmd {
	return func() tea.Msg {
		p, err := client.FetchProduct(ctx, id)
		return productMsg{product: p, err: err}
	}
}

func loginCmd(ctx context.Context, client catalog.Authenticator, creds catalog.Credentials) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Login(ctx, creds)
		return authResultMsg{resp: resp, err: err}
	}
}

func signupCmd(ctx context.Context, client catalog.Authenticator, log *zap.Logger, creds catalog.Credentials) tea.Cmd {
	return func() tea.Msg {
		if !auth.EmailAvailable(ctx, client, log, creds.Email) {
			return emailTakenMsg{email: creds.Email}
		}
		resp, err := client.Signup(ctx, creds)
		return authResultMsg{resp: resp, err: err, signup: true}
	}
}
