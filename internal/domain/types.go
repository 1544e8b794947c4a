// Package domain holds the data types shared between the API client and the
// state stores. Types mirror the Megastation REST API JSON shapes.
package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Role is a user role from the fixed server-side set. It is only ever used
// for set-membership checks against a route's allowed roles.
type Role string

// Known roles, as enforced by the server.
const (
	RoleSuperuser  Role = "superuser"
	RoleAdmin      Role = "admin"
	RoleStoreAdmin Role = "store_admin"
	RoleSeller     Role = "seller"
	RoleCustomer   Role = "customer"
)

// In reports whether the role is a member of the given set.
func (r Role) In(roles []Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// Money is a decimal amount of currency. The API serializes decimal fields
// either as JSON strings ("10.00") or as numbers depending on the endpoint,
// so Money accepts both on decode.
type Money float64

// UnmarshalJSON accepts both string and numeric encodings.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*m = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*m = Money(v)
	return nil
}

// MarshalJSON encodes the amount with two decimal places, matching the
// server's decimal representation.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatFloat(float64(m), 'f', 2, 64))
}

// String formats the amount for display.
func (m Money) String() string {
	return strconv.FormatFloat(float64(m), 'f', 2, 64)
}

// Profile is the authenticated user's record from GET /api/users/me/.
type Profile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// User is a user record from the staff user listing.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Credentials are submitted to the token endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the input for creating a new account. The server fixes
// the role of self-registered users to customer.
type Registration struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Category is a product category.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Product is a catalog entry. Category is serialized as its name.
type Product struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    Money  `json:"price"`
	Stock    int    `json:"stock"`
	Barcode  string `json:"barcode"`
}

// OrderItem is a line inside an order.
type OrderItem struct {
	ID       int   `json:"id"`
	Product  int   `json:"product"`
	Quantity int   `json:"quantity"`
	Order    int   `json:"order"`
	Price    Money `json:"price"`
}

// Order statuses as reported by the server.
const (
	OrderPending    = "pendiente"
	OrderProcessing = "en_proceso"
	OrderShipped    = "enviado"
	OrderCancelled  = "cancelado"
)

// Order is a customer order.
type Order struct {
	ID         int         `json:"id"`
	User       int         `json:"user"`
	Status     string      `json:"status"`
	TotalPrice Money       `json:"total_price"`
	CreatedAt  time.Time   `json:"created_at"`
	Items      []OrderItem `json:"items"`
}

// Invoice statuses as reported by the server.
const (
	InvoicePending   = "pendiente"
	InvoiceProcessed = "procesada"
	InvoiceVoided    = "anulada"
)

// InvoiceItem is a line inside a supplier invoice.
type InvoiceItem struct {
	ID          int    `json:"id"`
	Product     int    `json:"product"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	CostPerItem Money  `json:"cost_per_item"`
}

// Invoice is a supplier invoice visible to staff.
type Invoice struct {
	ID            int           `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	Supplier      string        `json:"supplier"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	TotalCost     Money         `json:"total_cost"`
	Items         []InvoiceItem `json:"items"`
}

// StockLevel is a per-product inventory record.
type StockLevel struct {
	Product           int    `json:"product"`
	ProductName       string `json:"product_name"`
	CategoryName      string `json:"category_name"`
	Quantity          int    `json:"quantity"`
	LowStockThreshold int    `json:"low_stock_threshold"`
	IsLowStock        bool   `json:"is_low_stock"`
}
