// Package httpx holds the JSON request/response helpers shared by the module handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/validate"
)

const maxBodyBytes = 1 << 20

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an error body with the given status.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorBody{Error: msg, Code: codeFor(status)})
}

// WriteFailure writes err with the given status. Validation errors carry
// their per-field messages; 5xx answers hide the cause behind msg5xx.
func WriteFailure(w http.ResponseWriter, status int, err error, msg5xx string) {
	if status >= http.StatusInternalServerError {
		WriteError(w, status, msg5xx)
		return
	}
	body := ErrorBody{Error: err.Error(), Code: codeFor(status)}
	var (
		verr *validate.Error
		derr *directus.Error
	)
	switch {
	case errors.As(err, &verr):
		body.Error = validate.ErrInvalid.Error()
		body.Fields = verr.Fields
	case errors.As(err, &derr):
		// CMS errors name internal paths; clients only get the status text.
		body.Error = strings.ToLower(http.StatusText(status))
	}
	WriteJSON(w, status, body)
}

// Decode reads a JSON body into v, rejecting unknown fields and bodies over 1 MiB.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// UpstreamStatus maps a CMS error to the status the API answers with. Directus
// answers 403 both for missing permissions and for unknown primary keys.
func UpstreamStatus(err error) int {
	var de *directus.Error
	hasStatus := errors.As(err, &de)
	switch {
	case errors.Is(err, validate.ErrInvalid):
		return http.StatusBadRequest
	case hasStatus && de.Status == http.StatusForbidden:
		return http.StatusForbidden
	case directus.IsUnauthorized(err):
		return http.StatusUnauthorized
	case directus.IsNotFound(err):
		return http.StatusNotFound
	case directus.IsAlreadyExists(err):
		return http.StatusConflict
	}
	if hasStatus && de.Status == http.StatusBadRequest {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

// QueryInt reads a positive integer query parameter, returning def when absent
// or invalid.
func QueryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusBadGateway:
		return "upstream_error"
	case http.StatusServiceUnavailable:
		return "unavailable"
	}
	return "internal_error"
}
