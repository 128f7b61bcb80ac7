package metra

import (
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"901234567", "998901234567"},
		{"998901234567", "998901234567"},
		{"+998 90 123-45-67", "998901234567"},
		{"(90) 123 45 67", "998901234567"},
		{"12345", "12345"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, normalizePhone(tc.in), "input %q", tc.in)
	}
}

func TestLogin_SendsNormalizedPhoneAndStoresToken(t *testing.T) {
	t.Parallel()

	var gotBody map[string]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		assert.Empty(t, r.Header.Get("Authorization"))

		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		_, _ = w.Write([]byte(`{"success":true,"resoult":{"token":"issued-token"}}`))
	})

	c := newTestClient(t, handler)
	require.NoError(t, c.Auth.Login(t.Context(), "90 123 45 67", "secret"))

	assert.Equal(t, "998901234567", gotBody["phone"])
	assert.Equal(t, "secret", gotBody["password"])
	assert.Equal(t, "issued-token", c.Tokens().Token())
	assert.True(t, c.Auth.IsAuthenticated())
}

func TestLogin_AlreadyPrefixedPhoneUnchanged(t *testing.T) {
	t.Parallel()

	var gotPhone string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		gotPhone = body["phone"]
		_, _ = w.Write([]byte(`{"success":true,"resoult":{"token":"t"}}`))
	})

	c := newTestClient(t, handler)
	require.NoError(t, c.Auth.Login(t.Context(), "998901234567", "pw"))
	assert.Equal(t, "998901234567", gotPhone)
}

func TestLogin_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"invalid credentials", http.StatusUnauthorized, ErrInvalidCredentials},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"forbidden", http.StatusForbidden, ErrForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			err := c.Auth.Login(t.Context(), "901234567", "pw")
			require.ErrorIs(t, err, tc.want)
			assert.False(t, c.Auth.IsAuthenticated())
		})
	}
}

func TestLogin_ServerErrorCarriesStatus(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	err := c.Auth.Login(t.Context(), "901234567", "pw")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestLogin_MarkupBody(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>routed to the wrong vhost</html>"))
	}))
	err := c.Auth.Login(t.Context(), "901234567", "pw")
	require.ErrorIs(t, err, ErrServerMisconfigured)
}

func TestLogout_IsIdempotent(t *testing.T) {
	t.Parallel()

	c := newLoggedInClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("logout must not hit the network")
	}))

	require.NoError(t, c.Auth.Logout())
	require.NoError(t, c.Auth.Logout())
	assert.False(t, c.Tokens().HasToken())
	assert.False(t, c.Auth.IsAuthenticated())
}

func TestCurrentUser_NoTokenSkipsNetwork(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))

	user, err := c.Auth.CurrentUser(t.Context())
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Zero(t, calls.Load())
}

func TestCurrentUser_ReturnsProfile(t *testing.T) {
	t.Parallel()

	c := newLoggedInClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/user", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":4,"name":"Aziz","username":"aziz","role":"admin","branch_id":2,"branch_name":"Chilonzor"}`))
	}))

	user, err := c.Auth.CurrentUser(t.Context())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "admin", user.Role)
	require.NotNil(t, user.BranchID)
	assert.Equal(t, 2, *user.BranchID)
}

func TestCurrentUser_NonSuccessMeansNotAuthenticated(t *testing.T) {
	t.Parallel()

	c := newLoggedInClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	user, err := c.Auth.CurrentUser(t.Context())
	require.NoError(t, err)
	assert.Nil(t, user)
}
