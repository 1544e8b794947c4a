package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrNoToken is returned when an operation that requires an authenticated
// session is attempted without a token. No network call is made.
var ErrNoToken = errors.New("no authentication token")

// Kind classifies an API failure.
type Kind int

const (
	// KindNetwork means the server could not be reached at all.
	KindNetwork Kind = iota
	// KindAuth is a 4xx from an authentication endpoint (bad credentials,
	// duplicate registration). The message carries the server's detail.
	KindAuth
	// KindAuthorization is a 401 on an authenticated request. The session
	// is torn down before the caller observes the error.
	KindAuthorization
	// KindRateLimited is a 429.
	KindRateLimited
	// KindValidation is a 400 with per-field errors.
	KindValidation
	// KindServer is any other non-2xx response.
	KindServer
)

// Error is the single error type crossing the API client boundary. Stores
// and the command layer branch on Kind, never on raw status codes.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  map[string]string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Unwrap exposes the underlying transport error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// networkError wraps a transport-level failure.
func networkError(err error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: "cannot reach the megastation server",
		cause:   err,
	}
}

// classify maps a non-2xx response to an *Error. hadBearer distinguishes an
// authorization failure on an authenticated request (session teardown) from
// a rejected login attempt on a public auth endpoint.
func classify(status int, body []byte, hadBearer bool) *Error {
	detail, fields := parseErrorBody(body)

	switch {
	case status == http.StatusUnauthorized && hadBearer:
		msg := "session expired, please log in again"
		if detail != "" {
			msg = detail
		}
		return &Error{Kind: KindAuthorization, Status: status, Message: msg}

	case status == http.StatusUnauthorized:
		msg := "invalid credentials"
		if detail != "" {
			msg = detail
		}
		return &Error{Kind: KindAuth, Status: status, Message: msg}

	case status == http.StatusTooManyRequests:
		return &Error{
			Kind:    KindRateLimited,
			Status:  status,
			Message: "too many requests, try again later",
		}

	case status == http.StatusBadRequest && len(fields) > 0:
		return &Error{
			Kind:    KindValidation,
			Status:  status,
			Message: joinFieldErrors(fields),
			Fields:  fields,
		}

	case status >= 400 && status < 500:
		msg := detail
		if msg == "" {
			msg = fmt.Sprintf("request rejected with status %d", status)
		}
		return &Error{Kind: KindAuth, Status: status, Message: msg}

	default:
		msg := detail
		if msg == "" {
			msg = fmt.Sprintf("server error (status %d)", status)
		}
		return &Error{Kind: KindServer, Status: status, Message: msg}
	}
}

// parseErrorBody extracts the server's message from a DRF error payload.
// Bodies come in three shapes: {"detail": "..."}, {"error": "..."}, or a
// map of field name to message list. Anything unparseable yields nothing.
func parseErrorBody(body []byte) (detail string, fields map[string]string) {
	if len(body) == 0 {
		return "", nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", nil
	}

	for _, key := range []string{"detail", "error"} {
		if msg, ok := raw[key]; ok {
			var s string
			if json.Unmarshal(msg, &s) == nil && s != "" {
				return s, nil
			}
		}
	}

	fields = make(map[string]string)
	for field, msg := range raw {
		var list []string
		if json.Unmarshal(msg, &list) == nil && len(list) > 0 {
			fields[field] = strings.Join(list, " ")
			continue
		}
		var s string
		if json.Unmarshal(msg, &s) == nil && s != "" {
			fields[field] = s
		}
	}
	if len(fields) == 0 {
		return "", nil
	}
	return "", fields
}

func joinFieldErrors(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for field := range fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, field := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", field, fields[field]))
	}
	return strings.Join(parts, "; ")
}
