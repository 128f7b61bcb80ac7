package metra

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrUnauthenticated means no token was available for an authenticated
	// call, or the server rejected the token with 401.
	ErrUnauthenticated = errors.New("metra: unauthenticated")

	// ErrInvalidCredentials is the login-specific rendering of 401.
	ErrInvalidCredentials = errors.New("metra: invalid phone or password")

	ErrForbidden   = errors.New("metra: forbidden")
	ErrNotFound    = errors.New("metra: not found")
	ErrRateLimited = errors.New("metra: rate limited")

	// ErrServerMisconfigured means the backend answered with markup where
	// JSON was expected, which points at a routing or deployment problem.
	ErrServerMisconfigured = errors.New("metra: server returned markup instead of JSON")

	// ErrEnvelopeMalformed means the body parsed as JSON but did not carry
	// the expected envelope structure.
	ErrEnvelopeMalformed = errors.New("metra: malformed response envelope")

	// ErrTransport covers DNS, connection and timeout failures.
	ErrTransport = errors.New("metra: transport error")

	// ErrApplicationFailure means the envelope arrived with success:false;
	// the server message, when present, is included in the wrapped error.
	ErrApplicationFailure = errors.New("metra: request rejected by server")

	// ErrValidation is returned before any network call when a request
	// violates a client-side invariant.
	ErrValidation = errors.New("metra: invalid request")
)

type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("metra api error: %s", e.Status)
	}
	return fmt.Sprintf("metra api error: %s: %s", e.Status, e.Body)
}

// apiErrorFromResponse maps non-2xx statuses to the error taxonomy without
// looking at the body. 5xx and anything unrecognized surface as *APIError
// carrying the status and reason phrase.
func apiErrorFromResponse(resp *resty.Response) error {
	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthenticated, resp.Status())
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, resp.Status())
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, resp.Status())
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, resp.Status())
	default:
		return &APIError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       strings.TrimSpace(resp.String()),
		}
	}
}
