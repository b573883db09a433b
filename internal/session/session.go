// Package session persists the signed-in account between runs. The user
// record and the raw token live in separate files so either can be
// inspected or cleared independently; corrupt data means signed out, never
// an error surfaced to the UI.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"vitrine/internal/catalog"
)

const (
	userFile  = "user.json"
	tokenFile = "token"
)

// Session pairs the account with its API token.
type Session struct {
	User  catalog.User `json:"user"`
	Token string       `json:"-"`
}

// Manager owns the session files under a data directory.
type Manager struct {
	dir string
	log *zap.Logger

	mu      sync.Mutex
	current *Session
}

// NewManager builds a manager rooted at dir and loads any persisted
// session. Unreadable or corrupt files are logged and treated as signed
// out.
func NewManager(dir string, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{dir: dir, log: log}
	m.current = m.load()
	return m
}

// Current returns the active session, or nil when signed out.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	dup := *m.current
	return &dup
}

// SignedIn reports whether a session is active.
func (m *Manager) SignedIn() bool {
	return m.Current() != nil
}

// Save stores a session in memory and on disk. Write failures are logged;
// the in-memory session still takes effect for this run.
func (m *Manager) Save(s Session) {
	m.mu.Lock()
	dup := s
	m.current = &dup
	m.mu.Unlock()

	data, err := json.Marshal(s.User)
	if err != nil {
		m.log.Warn("session encode failed", zap.Error(err))
		return
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		m.log.Warn("session dir create failed", zap.String("dir", m.dir), zap.Error(err))
		return
	}
	if err := os.WriteFile(filepath.Join(m.dir, userFile), data, 0o644); err != nil {
		m.log.Warn("user write failed", zap.Error(err))
	}
	if err := os.WriteFile(filepath.Join(m.dir, tokenFile), []byte(s.Token), 0o600); err != nil {
		m.log.Warn("token write failed", zap.Error(err))
	}
}

// Clear signs out and removes the session files.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	for _, name := range []string{userFile, tokenFile} {
		if err := os.Remove(filepath.Join(m.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			m.log.Warn("session file remove failed", zap.String("file", name), zap.Error(err))
		}
	}
}

// Expired reports whether the stored token carries an exp claim in the
// past. The token is decoded without signature verification: the server
// remains the authority, this only drives the "session expired" hint.
func (m *Manager) Expired() bool {
	s := m.Current()
	if s == nil || s.Token == "" {
		return false
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(s.Token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func (m *Manager) load() *Session {
	data, err := os.ReadFile(filepath.Join(m.dir, userFile))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			m.log.Warn("user read failed", zap.Error(err))
		}
		return nil
	}
	var user catalog.User
	if err := json.Unmarshal(data, &user); err != nil {
		m.log.Warn("user file corrupt, signing out", zap.Error(err))
		return nil
	}
	if user.ID <= 0 {
		return nil
	}

	token := ""
	if raw, err := os.ReadFile(filepath.Join(m.dir, tokenFile)); err == nil {
		token = strings.TrimSpace(string(raw))
	}
	return &Session{User: user, Token: token}
}
