package transport

import (
	"errors"
	"net/http"
	"strconv"
)

var (
	ErrInvalidDestination = errors.New("invalid destination")
	ErrNoCredentials      = errors.New("credentials required")
)

// StatusError is an unexpected HTTP response from an upload endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return "upload rejected: " + strconv.Itoa(e.StatusCode) + " - " + e.Body
}

// Is reports whether target is a *StatusError with the same StatusCode.
func (e *StatusError) Is(target error) bool {
	var t *StatusError
	if !errors.As(target, &t) {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// IsAuth reports whether the server refused the credentials.
func (e *StatusError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
