package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTransport captures the final outgoing request and returns a
// canned response.
type recordingTransport struct {
	status int
	seen   *http.Request
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.seen = req
	return &http.Response{
		StatusCode: rt.status,
		Body:       io.NopCloser(strings.NewReader("{}")),
		Header:     make(http.Header),
	}, nil
}

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func TestAuthTransport_AttachesBearer(t *testing.T) {
	rec := &recordingTransport{status: 200}
	tr := &authTransport{base: rec, tokens: staticTokens("tok123")}

	req := httptest.NewRequest(http.MethodGet, "http://api.local/api/orders/", nil)
	resp, err := tr.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "Bearer tok123", rec.seen.Header.Get("Authorization"))
	assert.NotEmpty(t, rec.seen.Header.Get("X-Request-ID"))
}

func TestAuthTransport_PublicPathsExempt(t *testing.T) {
	paths := []string{
		"/api/token/",
		"/api/users/register/",
		"/api/users/login/",
		"/api/store/products/",
		"/api/store/products/3/",
		"/api/store/categories/",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := &recordingTransport{status: 200}
			tr := &authTransport{base: rec, tokens: staticTokens("tok123")}

			req := httptest.NewRequest(http.MethodGet, "http://api.local"+path, nil)
			resp, err := tr.RoundTrip(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Empty(t, rec.seen.Header.Get("Authorization"))
		})
	}
}

func TestAuthTransport_NoTokenNoHeader(t *testing.T) {
	rec := &recordingTransport{status: 200}
	tr := &authTransport{base: rec, tokens: staticTokens("")}

	req := httptest.NewRequest(http.MethodGet, "http://api.local/api/orders/", nil)
	resp, err := tr.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Empty(t, rec.seen.Header.Get("Authorization"))
}

func TestAuthTransport_UnboundTokenSource(t *testing.T) {
	rec := &recordingTransport{status: 200}
	tr := &authTransport{base: rec}

	req := httptest.NewRequest(http.MethodGet, "http://api.local/api/orders/", nil)
	resp, err := tr.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Empty(t, rec.seen.Header.Get("Authorization"))
}

func TestAuthTransport_UnauthorizedFiresHook(t *testing.T) {
	rec := &recordingTransport{status: 401}
	fired := false
	tr := &authTransport{
		base:           rec,
		tokens:         staticTokens("tok123"),
		onUnauthorized: func() { fired = true },
	}

	req := httptest.NewRequest(http.MethodGet, "http://api.local/api/orders/", nil)
	resp, err := tr.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// The hook runs inside RoundTrip, before the caller observes the 401.
	assert.True(t, fired)
}

func TestAuthTransport_UnauthorizedWithoutBearerNoHook(t *testing.T) {
	// A rejected login is a 401 without a bearer; the session must survive.
	rec := &recordingTransport{status: 401}
	fired := false
	tr := &authTransport{
		base:           rec,
		tokens:         staticTokens("tok123"),
		onUnauthorized: func() { fired = true },
	}

	req := httptest.NewRequest(http.MethodPost, "http://api.local/api/token/", nil)
	resp, err := tr.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.False(t, fired)
}

func TestAuthTransport_OriginalRequestUntouched(t *testing.T) {
	rec := &recordingTransport{status: 200}
	tr := &authTransport{base: rec, tokens: staticTokens("tok123")}

	req := httptest.NewRequest(http.MethodGet, "http://api.local/api/orders/", nil)
	resp, err := tr.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Empty(t, req.Header.Get("X-Request-ID"))
}
