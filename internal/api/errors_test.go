package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_UnauthorizedWithBearer(t *testing.T) {
	err := classify(401, []byte(`{"detail": "Token is invalid or expired"}`), true)

	assert.Equal(t, KindAuthorization, err.Kind)
	assert.Equal(t, "Token is invalid or expired", err.Message)
}

func TestClassify_UnauthorizedWithBearerDefaultMessage(t *testing.T) {
	err := classify(401, nil, true)

	assert.Equal(t, KindAuthorization, err.Kind)
	assert.Equal(t, "session expired, please log in again", err.Message)
}

func TestClassify_UnauthorizedWithoutBearer(t *testing.T) {
	// A 401 from the token endpoint is a rejected login, not a dead session.
	err := classify(401, []byte(`{"detail": "No active account found with the given credentials"}`), false)

	assert.Equal(t, KindAuth, err.Kind)
	assert.Equal(t, "No active account found with the given credentials", err.Message)
}

func TestClassify_RateLimited(t *testing.T) {
	err := classify(429, nil, true)

	assert.Equal(t, KindRateLimited, err.Kind)
	assert.Equal(t, "too many requests, try again later", err.Message)
}

func TestClassify_ValidationFields(t *testing.T) {
	body := []byte(`{"username": ["A user with that username already exists."], "email": ["Enter a valid email address."]}`)
	err := classify(400, body, false)

	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, "A user with that username already exists.", err.Fields["username"])
	assert.Equal(t, "Enter a valid email address.", err.Fields["email"])
	// Field order in the message is deterministic.
	assert.Equal(t, "email: Enter a valid email address.; username: A user with that username already exists.", err.Message)
}

func TestClassify_BadRequestErrorKey(t *testing.T) {
	err := classify(400, []byte(`{"error": "Carrito vacío"}`), true)

	assert.Equal(t, KindAuth, err.Kind)
	assert.Equal(t, "Carrito vacío", err.Message)
}

func TestClassify_NotFound(t *testing.T) {
	err := classify(404, []byte(`{"detail": "Not found."}`), true)

	assert.Equal(t, KindAuth, err.Kind)
	assert.Equal(t, 404, err.Status)
	assert.Equal(t, "Not found.", err.Message)
}

func TestClassify_ServerError(t *testing.T) {
	err := classify(500, []byte("<html>Internal Server Error</html>"), true)

	assert.Equal(t, KindServer, err.Kind)
	assert.Equal(t, "server error (status 500)", err.Message)
}

func TestParseErrorBody_MultipleMessagesJoined(t *testing.T) {
	body := []byte(`{"password": ["This password is too short.", "This password is too common."]}`)

	detail, fields := parseErrorBody(body)
	assert.Empty(t, detail)
	assert.Equal(t, "This password is too short. This password is too common.", fields["password"])
}

func TestParseErrorBody_Garbage(t *testing.T) {
	detail, fields := parseErrorBody([]byte("not json at all"))
	assert.Empty(t, detail)
	assert.Nil(t, fields)
}

func TestIsKind(t *testing.T) {
	err := classify(429, nil, false)

	assert.True(t, IsKind(err, KindRateLimited))
	assert.False(t, IsKind(err, KindAuth))
	assert.False(t, IsKind(errors.New("plain"), KindRateLimited))
	assert.False(t, IsKind(nil, KindRateLimited))
}

func TestNetworkError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := networkError(cause)

	assert.Equal(t, KindNetwork, err.Kind)
	assert.ErrorIs(t, err, cause)
}
