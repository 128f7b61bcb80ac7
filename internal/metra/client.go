package metra

import (
	"context"
	"fmt"

	"metra_client/internal/config"
	"metra_client/internal/logging"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Session is the authenticated HTTP session against the Metra backend. It
// owns the resty client (fixed base URL, 60 s default timeout, JSON accept
// header) and hands out per-resource services. The bearer token is fetched
// fresh from the TokenStore for every call and attached per request, never
// via shared client headers.
type Session struct {
	http     *resty.Client
	tokens   *TokenStore
	logger   *zap.Logger
	validate *validator.Validate

	Auth     *AuthService
	Branches *BranchService
	Clients  *ClientService
	Invoices *InvoiceService
}

func NewClient(cfg config.Config, tokens *TokenStore, logger *zap.Logger) *Session {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)

	logger = logger.Named("metra")

	c := &Session{
		http:     httpClient,
		tokens:   tokens,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	c.Auth = &AuthService{client: c, logger: logger.Named("auth")}
	c.Branches = &BranchService{client: c, logger: logger.Named("branches")}
	c.Clients = &ClientService{client: c, logger: logger.Named("clients"), imageBaseURL: cfg.ImageBaseURL}
	c.Invoices = &InvoiceService{client: c, logger: logger.Named("invoices")}
	return c
}

// Tokens exposes the session's token store for presence checks.
func (c *Session) Tokens() *TokenStore {
	return c.tokens
}

// request builds an unauthenticated request (login only).
func (c *Session) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// authRequest builds a request carrying the current bearer token. The
// token is read at call time so a login or logout between two sequential
// operations takes effect immediately. An absent token fails here, before
// any network traffic.
func (c *Session) authRequest(ctx context.Context) (*resty.Request, error) {
	token := c.tokens.Token()
	if token == "" {
		return nil, fmt.Errorf("%w: no token", ErrUnauthenticated)
	}
	c.logger.Debug("token attached", zap.String("token", logging.TokenPreview(token)))
	return c.http.R().SetContext(ctx).SetAuthToken(token), nil
}

// do executes the request and applies the shared transport and status
// checks. Status mapping happens before anyone looks at the body, so a
// 401 never reaches the envelope parser.
func (c *Session) do(req *resty.Request, method, path string) ([]byte, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	c.logger.Debug("response",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode()),
		zap.Int("bytes", len(resp.Body())),
	)
	if resp.IsError() {
		return nil, apiErrorFromResponse(resp)
	}
	return resp.Body(), nil
}

func (c *Session) validateRequest(req any) error {
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
