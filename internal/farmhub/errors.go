package farmhub

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
)

var (
	ErrNotConnected  = errors.New("not connected")
	ErrLoginRejected = errors.New("login rejected")
	ErrNoSession     = errors.New("no session cookie in login response")
	ErrNoLocation    = errors.New("no time zone configured")
	ErrBeforeEpoch   = errors.New("timestamp before 1970-01-01T00:00:00Z")
	ErrInvertedRange = errors.New("stop is before start")
)

// AuthError reports a failed login or a query made without a session.
type AuthError struct {
	StatusCode int
	Err        error
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("authentication failed (HTTP %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// RemoteError reports a non-success HTTP status from a query endpoint.
type RemoteError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

const maxErrorBody = 256

func newRemoteError(resp *resty.Response) *RemoteError {
	body := string(resp.Body())
	if len(body) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut] + "..."
	}
	return &RemoteError{
		Method:     resp.Request.Method,
		URL:        resp.Request.URL,
		StatusCode: resp.StatusCode(),
		Body:       body,
	}
}

// ParseError reports a response body that is not the expected JSON shape.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConversionError reports input that cannot be converted to an epoch bound or
// calibrated into physical units.
type ConversionError struct {
	Input string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s: %v", e.Input, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err means the session is missing, rejected or expired.
func IsUnauthorized(err error) bool {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return true
	}
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode == http.StatusUnauthorized || remoteErr.StatusCode == http.StatusForbidden
	}
	return false
}
