package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Anbokor/megastation/internal/domain"
)

// ProductFilter narrows a product listing. The zero value lists everything.
type ProductFilter struct {
	Search   string
	Category string
}

// Products lists catalog products. This endpoint is publicly readable and
// is never sent with a credential attached.
func (c *Client) Products(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}

	path := "/api/store/products/"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var products []domain.Product
	if err := c.get(ctx, path, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductByID fetches a single product.
func (c *Client) ProductByID(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	if err := c.get(ctx, fmt.Sprintf("/api/store/products/%d/", id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Categories lists product categories. Publicly readable.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.get(ctx, "/api/store/categories/", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
