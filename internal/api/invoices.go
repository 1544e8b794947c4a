package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Anbokor/megastation/internal/domain"
)

// Invoices lists supplier invoices. Staff only.
func (c *Client) Invoices(ctx context.Context) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	if err := c.get(ctx, "/api/purchases/invoices/", &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// InvoiceByID fetches one supplier invoice. Staff only.
func (c *Client) InvoiceByID(ctx context.Context, id int) (*domain.Invoice, error) {
	var invoice domain.Invoice
	if err := c.get(ctx, fmt.Sprintf("/api/purchases/invoices/%d/", id), &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// UpdateInvoiceStatus moves an invoice to a new status. Transition rules
// (pendiente ↔ procesada, anulada is terminal) are enforced server-side;
// violations come back as validation errors.
func (c *Client) UpdateInvoiceStatus(ctx context.Context, id int, status string) (*domain.Invoice, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: status}

	var invoice domain.Invoice
	path := fmt.Sprintf("/api/purchases/invoices/%d/status/", id)
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}
