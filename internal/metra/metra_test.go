package metra

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"metra_client/internal/config"
	"metra_client/internal/settings"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) *Session {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := settings.NewStore(filepath.Join(t.TempDir(), "settings.json"))
	cfg := config.Config{
		BaseURL:      srv.URL,
		ImageBaseURL: "http://img.example/storage/",
		Timeout:      5 * time.Second,
	}
	return NewClient(cfg, NewTokenStore(store), zap.NewNop())
}

func newLoggedInClient(t *testing.T, handler http.Handler) *Session {
	t.Helper()
	c := newTestClient(t, handler)
	if err := c.Tokens().SetToken("test-token"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	return c
}
