package directus

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized is wrapped by errors for 401 and 403 responses.
	ErrUnauthorized = errors.New("directus: unauthorized")

	// ErrNotFound is wrapped by errors for 404 responses.
	ErrNotFound = errors.New("directus: not found")

	// ErrNoToken is returned when a call needs a bearer token and none is available.
	ErrNoToken = errors.New("directus: no access token")
)

const codeRecordNotUnique = "RECORD_NOT_UNIQUE"

// ErrorDetail is one entry of the Directus errors array.
type ErrorDetail struct {
	Message    string `json:"message"`
	Extensions struct {
		Code  string `json:"code"`
		Field string `json:"field,omitempty"`
	} `json:"extensions"`
}

// Error is returned for every non-2xx Directus response.
type Error struct {
	Status int           `json:"status"`
	Method string        `json:"method"`
	Path   string        `json:"path"`
	Errors []ErrorDetail `json:"errors"`
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, d := range e.Errors {
		if d.Extensions.Code != "" {
			msgs = append(msgs, fmt.Sprintf("%s (%s)", d.Message, d.Extensions.Code))
			continue
		}
		msgs = append(msgs, d.Message)
	}
	if len(msgs) == 0 {
		msgs = append(msgs, http.StatusText(e.Status))
	}
	return fmt.Sprintf("directus: %s %s: %d: %s", e.Method, e.Path, e.Status, strings.Join(msgs, "; "))
}

// Unwrap maps the HTTP status onto the package sentinels.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// Code returns the first extension code, if any.
func (e *Error) Code() string {
	for _, d := range e.Errors {
		if d.Extensions.Code != "" {
			return d.Extensions.Code
		}
	}
	return ""
}

// IsAlreadyExists reports whether err is Directus refusing to create something
// that exists: a unique violation, an "already exists" message or a relation
// already defined on the field.
func IsAlreadyExists(err error) bool {
	var de *Error
	if !errors.As(err, &de) {
		return false
	}
	for _, d := range de.Errors {
		if d.Extensions.Code == codeRecordNotUnique {
			return true
		}
		msg := strings.ToLower(d.Message)
		if strings.Contains(msg, "already exists") || strings.Contains(msg, "already has an associated relationship") {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is a 404 from Directus.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsUnauthorized reports whether err is a 401/403 from Directus or a missing token.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNoToken)
}

// IsClientError reports a 4xx answer from Directus or a missing token.
func IsClientError(err error) bool {
	if errors.Is(err, ErrNoToken) {
		return true
	}
	var e *Error
	return errors.As(err, &e) && e.Status >= 400 && e.Status < 500
}
