package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// TokenSource supplies the current bearer token. The session store
// implements it; the transport never mutates session state directly.
type TokenSource interface {
	Token() string
}

// publicPrefixes lists endpoints that must remain reachable without a
// credential attached: token issuance, registration, and the public
// catalog. Everything else gets the bearer header when a token exists.
var publicPrefixes = []string{
	"/api/token/",
	"/api/users/register/",
	"/api/users/login/",
	"/api/store/products/",
	"/api/store/categories/",
}

func isPublicPath(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// authTransport attaches bearer credentials to outgoing requests and reacts
// to authorization failures. Both the token source and the unauthorized
// hook are bound after construction: until then requests go out
// unauthenticated and 401 responses pass through untouched, so the
// composition order of session store and client cannot cause a nil
// dereference.
type authTransport struct {
	base           http.RoundTripper
	tokens         TokenSource
	onUnauthorized func()
}

// RoundTrip implements http.RoundTripper.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("X-Request-ID", uuid.NewString())

	hadBearer := false
	if t.tokens != nil && !isPublicPath(clone.URL.Path) {
		if token := t.tokens.Token(); token != "" {
			clone.Header.Set("Authorization", "Bearer "+token)
			hadBearer = true
		}
	}

	resp, err := t.base.RoundTrip(clone)
	if err != nil {
		return nil, err
	}

	// A 401 on an authenticated request means the token is no longer
	// accepted: tear the session down before the caller sees the failure.
	// A 401 on a credential-less request (e.g. a rejected login) is the
	// caller's problem alone.
	if resp.StatusCode == http.StatusUnauthorized && hadBearer && t.onUnauthorized != nil {
		t.onUnauthorized()
	}

	resp.Request = clone
	return resp, nil
}
