package metra

import (
	"path/filepath"
	"sync"
	"testing"

	"metra_client/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore_RoundTrip(t *testing.T) {
	t.Parallel()

	tokens := NewTokenStore(settings.NewStore(filepath.Join(t.TempDir(), "s.json")))

	assert.Empty(t, tokens.Token())
	assert.False(t, tokens.HasToken())

	require.NoError(t, tokens.SetToken("abc123"))
	assert.Equal(t, "abc123", tokens.Token())
	assert.True(t, tokens.HasToken())
}

func TestTokenStore_SurvivesRestart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "s.json")
	require.NoError(t, NewTokenStore(settings.NewStore(path)).SetToken("persisted"))

	// Fresh store simulates a process restart: the read path must fall
	// back to the settings file.
	reborn := NewTokenStore(settings.NewStore(path))
	assert.True(t, reborn.HasToken())
	assert.Equal(t, "persisted", reborn.Token())
}

func TestTokenStore_ClearIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "s.json")
	tokens := NewTokenStore(settings.NewStore(path))
	require.NoError(t, tokens.SetToken("abc"))

	require.NoError(t, tokens.ClearToken())
	require.NoError(t, tokens.ClearToken())
	assert.False(t, tokens.HasToken())
	assert.Empty(t, tokens.Token())

	// Cleared for a restarted process too.
	assert.False(t, NewTokenStore(settings.NewStore(path)).HasToken())
}

func TestTokenStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	tokens := NewTokenStore(settings.NewStore(filepath.Join(t.TempDir(), "s.json")))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = tokens.SetToken("tok")
			_ = tokens.Token()
		}()
		go func() {
			defer wg.Done()
			_ = tokens.ClearToken()
			_ = tokens.HasToken()
		}()
	}
	wg.Wait()
}
