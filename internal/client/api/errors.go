package api

import (
	"errors"
	"fmt"
)

// Error codes produced by the transport itself, independent of the server.
const (
	CodeRateLimit = "rate-limit"
	CodeNoPayload = "no-payload"
)

// Application error codes forwarded verbatim from the server.
const (
	CodeAuthRequired     = "auth-required"
	CodeWrongCredentials = "wrong-credentials"
	CodeInvalidInvite    = "invalid-invite"
	CodeUsernameExists   = "username-exists"
	CodeSiteLimit        = "site-limit"
	CodeSiteExists       = "site-exists"
)

// APIError is an application-level error: the server answered with a
// well-formed error envelope (or the transport synthesized one, as for
// rate limiting). Anything else is a network-kind error and is returned
// as a plain wrapped error.
type APIError struct {
	Code    string
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %s: %s", e.Code, e.Message)
}

// AsAPIError unwraps err to an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNetworkError reports whether err is a network-kind failure: any error
// that is not an application error envelope. Application errors never
// trigger retry; network errors drive the bootstrap backoff.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := AsAPIError(err)
	return !ok
}

// HasCode reports whether err is an application error with the given code.
func HasCode(err error, code string) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Code == code
}
