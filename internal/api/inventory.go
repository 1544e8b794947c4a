package api

import (
	"context"

	"github.com/Anbokor/megastation/internal/domain"
)

// Stock lists per-product inventory levels. Staff only.
func (c *Client) Stock(ctx context.Context) ([]domain.StockLevel, error) {
	var levels []domain.StockLevel
	if err := c.get(ctx, "/api/inventory/stock/", &levels); err != nil {
		return nil, err
	}
	return levels, nil
}

// LowStock lists products whose quantity fell below their threshold.
// Staff only.
func (c *Client) LowStock(ctx context.Context) ([]domain.StockLevel, error) {
	var levels []domain.StockLevel
	if err := c.get(ctx, "/api/store/low-stock/", &levels); err != nil {
		return nil, err
	}
	return levels, nil
}
