package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/Anbokor/megastation/internal/domain"
)

// Orders lists the authenticated user's orders.
func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, "/api/orders/", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderByID fetches one of the authenticated user's orders.
func (c *Client) OrderByID(ctx context.Context, id int) (*domain.Order, error) {
	var order domain.Order
	if err := c.get(ctx, fmt.Sprintf("/api/orders/%d/", id), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder creates an order from the server-side cart. The request is
// stamped with an idempotency key so a retried checkout after a dropped
// response cannot double-submit.
func (c *Client) CreateOrder(ctx context.Context) (*domain.Order, error) {
	headers := http.Header{}
	headers.Set("X-Idempotency-Key", uuid.NewString())

	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders/create/", headers, struct{}{}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder cancels a pending order.
func (c *Client) CancelOrder(ctx context.Context, id int) error {
	return c.post(ctx, fmt.Sprintf("/api/orders/%d/cancel/", id), struct{}{}, nil)
}

// StaffOrders lists all orders across customers. Staff only.
func (c *Client) StaffOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, "/api/orders/staff/", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// StaffOrderByID fetches any customer's order. Staff only.
func (c *Client) StaffOrderByID(ctx context.Context, id int) (*domain.Order, error) {
	var order domain.Order
	if err := c.get(ctx, fmt.Sprintf("/api/orders/staff/%d/", id), &order); err != nil {
		return nil, err
	}
	return &order, nil
}
