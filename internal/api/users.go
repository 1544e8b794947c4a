package api

import (
	"context"

	"github.com/Anbokor/megastation/internal/domain"
)

// Users lists user accounts. The server scopes the result to the caller's
// permissions: administrators see everyone, others only themselves.
func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.get(ctx, "/api/users/", &users); err != nil {
		return nil, err
	}
	return users, nil
}
