package metra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// AuthService drives the session lifecycle: unauthenticated until a login
// succeeds, authenticated until an explicit logout or a 401.
type AuthService struct {
	client *Session
	logger *zap.Logger
}

var nonDigits = regexp.MustCompile(`\D`)

// normalizePhone strips everything but digits and prefixes the country
// code when the input is a bare 9-digit local number.
func normalizePhone(phone string) string {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	if len(cleaned) == 9 && !strings.HasPrefix(cleaned, "998") {
		cleaned = "998" + cleaned
	}
	return cleaned
}

type loginBody struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginResoult struct {
	Token string `json:"token"`
}

// Login posts credentials and stores the returned token. The phone is
// normalized before it goes on the wire.
func (s *AuthService) Login(ctx context.Context, phone, password string) error {
	normalized := normalizePhone(phone)
	s.logger.Info("login attempt", zap.String("phone", normalized))

	resp, err := s.client.request(ctx).
		SetBody(loginBody{Phone: normalized, Password: password}).
		Post("auth/login")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrInvalidCredentials
	}
	if resp.IsError() {
		return apiErrorFromResponse(resp)
	}

	res, err := decodeObject[loginResoult](resp.Body())
	if err != nil {
		return err
	}
	if res.Token == "" {
		return fmt.Errorf("%w: login envelope carried no token", ErrEnvelopeMalformed)
	}

	if err := s.client.tokens.SetToken(res.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	s.logger.Info("login succeeded", zap.String("phone", normalized))
	return nil
}

// Logout clears the stored token. It never requires a server round trip
// and is a no-op when already logged out.
func (s *AuthService) Logout() error {
	s.logger.Info("logout")
	return s.client.tokens.ClearToken()
}

// CurrentUser fetches the authenticated profile. No token means no
// network call and a nil user; any non-success status is also treated as
// "not authenticated" rather than escalated.
func (s *AuthService) CurrentUser(ctx context.Context) (*UserInfo, error) {
	if !s.client.tokens.HasToken() {
		return nil, nil
	}

	req, err := s.client.authRequest(ctx)
	if err != nil {
		return nil, nil
	}
	resp, err := req.Get("/auth/user")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if resp.IsError() {
		s.logger.Warn("current user fetch failed", zap.Int("status", resp.StatusCode()))
		return nil, nil
	}

	body := resp.Body()
	if looksLikeMarkup(body) {
		return nil, ErrServerMisconfigured
	}
	var user UserInfo
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvelopeMalformed, err)
	}
	return &user, nil
}

// IsAuthenticated checks token presence only; it does not validate the
// token against the server.
func (s *AuthService) IsAuthenticated() bool {
	return s.client.tokens.HasToken()
}
