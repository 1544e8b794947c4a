package api

import (
	"context"

	"github.com/Anbokor/megastation/internal/domain"
)

// cartItemPayload is the body of POST /api/cart/. The server merges
// quantities when the product is already in the remote cart.
type cartItemPayload struct {
	Product  int `json:"product"`
	Quantity int `json:"quantity"`
}

// PushCartItem uploads one locally held cart line to the server-side cart.
// Checkout pushes the whole local cart this way before creating the order.
func (c *Client) PushCartItem(ctx context.Context, productID, quantity int) error {
	return c.post(ctx, "/api/cart/", cartItemPayload{Product: productID, Quantity: quantity}, nil)
}

// RemoteCartItem is a line in the server-side cart.
type RemoteCartItem struct {
	ID       int         `json:"id"`
	Product  int         `json:"product"`
	Quantity int         `json:"quantity"`
	Price    domain.Money `json:"price"`
}

// RemoteCart lists the server-side cart for the authenticated user.
func (c *Client) RemoteCart(ctx context.Context) ([]RemoteCartItem, error) {
	var items []RemoteCartItem
	if err := c.get(ctx, "/api/cart/", &items); err != nil {
		return nil, err
	}
	return items, nil
}
