package usersdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrCredentialNotFound is returned by a CredentialStore when no value
// is persisted under the requested key.
var ErrCredentialNotFound = errors.New("usersdk: credential not found")

// APIError represents a failed HTTP request: the response status
// indicated failure and this carries the server-supplied message, or a
// generic status-code message when the error body was absent or
// unparseable. Transport-level failures (network unreachable, non-JSON
// success body) are returned as plain wrapped errors instead.
type APIError struct {
	// StatusCode is the HTTP status code of the failed response
	StatusCode int `json:"-"`

	// Message is the human-readable failure description
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is an APIError for a 404 response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is an APIError for a 401 response.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// parseAPIError builds an APIError from a failed response body.
// It tolerates empty or malformed bodies, falling back to a generic
// message derived from the status code.
func parseAPIError(statusCode int, body []byte) *APIError {
	var errBody struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	// A body that fails to parse leaves both fields empty, which is the
	// same as an empty error body.
	_ = json.Unmarshal(body, &errBody)

	msg := errBody.Message
	if msg == "" {
		msg = errBody.Error
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP error, status %d", statusCode)
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    msg,
	}
}
