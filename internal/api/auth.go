package api

import (
	"context"

	"github.com/Anbokor/megastation/internal/domain"
)

// tokenResponse is the payload of POST /api/token/.
type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// ObtainToken exchanges credentials for an access token.
func (c *Client) ObtainToken(ctx context.Context, creds domain.Credentials) (string, error) {
	var resp tokenResponse
	if err := c.post(ctx, "/api/token/", creds, &resp); err != nil {
		return "", err
	}
	return resp.Access, nil
}

// RegisterUser creates a new account. The server assigns the default
// customer role to self-registered users; the response never carries a
// token, callers log in separately.
func (c *Client) RegisterUser(ctx context.Context, reg domain.Registration) (*domain.Profile, error) {
	var profile domain.Profile
	if err := c.post(ctx, "/api/users/register/", reg, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Me fetches the authenticated user's profile, role included.
func (c *Client) Me(ctx context.Context) (*domain.Profile, error) {
	var profile domain.Profile
	if err := c.get(ctx, "/api/users/me/", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
