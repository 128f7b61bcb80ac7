package metra

import (
	"sync"

	"metra_client/internal/settings"
)

const tokenKey = "auth_token"

// TokenStore is the single source of truth for the current bearer token.
// The in-memory cache is authoritative once populated; reads fall back to
// the settings file so a token survives a process restart. All access is
// mutex-guarded since a login and a logout can race.
type TokenStore struct {
	mu       sync.Mutex
	settings *settings.Store
	cached   string
}

func NewTokenStore(store *settings.Store) *TokenStore {
	return &TokenStore{settings: store}
}

// Token returns the current bearer token, or the empty string if none is
// set. Absence is a valid result, not an error.
func (t *TokenStore) Token() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cached != "" {
		return t.cached
	}
	if value, ok := t.settings.Get(tokenKey); ok {
		t.cached = value
	}
	return t.cached
}

func (t *TokenStore) SetToken(token string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cached = token
	return t.settings.Set(tokenKey, token)
}

func (t *TokenStore) ClearToken() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cached = ""
	return t.settings.Remove(tokenKey)
}

func (t *TokenStore) HasToken() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cached != "" {
		return true
	}
	value, ok := t.settings.Get(tokenKey)
	return ok && value != ""
}
