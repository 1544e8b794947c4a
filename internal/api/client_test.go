package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anbokor/megastation/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, 5*time.Second, nil)
}

func TestObtainToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/token/", r.URL.Path)

		var creds domain.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "maria", creds.Username)

		json.NewEncoder(w).Encode(map[string]string{
			"access":  "access-token",
			"refresh": "refresh-token",
		})
	}))

	token, err := client.ObtainToken(context.Background(), domain.Credentials{
		Username: "maria", Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "access-token", token)
}

func TestObtainToken_BadCredentials(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"detail": "No active account found with the given credentials",
		})
	}))

	_, err := client.ObtainToken(context.Background(), domain.Credentials{
		Username: "maria", Password: "wrong",
	})
	require.Error(t, err)
	// A login 401 carries no bearer, so it is an auth failure, not a
	// session teardown.
	assert.True(t, IsKind(err, KindAuth))
}

func TestProducts_FilterQuery(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/store/products/", r.URL.Path)
		assert.Equal(t, "teclado", r.URL.Query().Get("search"))
		assert.Equal(t, "Periféricos", r.URL.Query().Get("category"))

		json.NewEncoder(w).Encode([]domain.Product{
			{ID: 1, Name: "Teclado mecánico", Category: "Periféricos", Price: 55.00, Stock: 4},
		})
	}))

	products, err := client.Products(context.Background(), ProductFilter{
		Search: "teclado", Category: "Periféricos",
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Teclado mecánico", products[0].Name)
}

func TestProducts_StringPrices(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "name": "Mouse", "category": "Periféricos", "price": "12.50", "stock": 9}]`))
	}))

	products, err := client.Products(context.Background(), ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, domain.Money(12.50), products[0].Price)
}

func TestCreateOrder_IdempotencyKey(t *testing.T) {
	var key string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders/create/", r.URL.Path)
		key = r.Header.Get("X-Idempotency-Key")

		json.NewEncoder(w).Encode(domain.Order{ID: 7, Status: domain.OrderPending})
	}))

	order, err := client.CreateOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, order.ID)
	assert.NotEmpty(t, key)
}

func TestPushCartItem(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/cart/", r.URL.Path)

		var payload map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, 42, payload["product"])
		assert.Equal(t, 3, payload["quantity"])

		w.WriteHeader(http.StatusCreated)
	}))

	err := client.PushCartItem(context.Background(), 42, 3)
	assert.NoError(t, err)
}

func TestUpdateInvoiceStatus_Patch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/purchases/invoices/3/status/", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "procesada", payload["status"])

		json.NewEncoder(w).Encode(domain.Invoice{ID: 3, Status: domain.InvoiceProcessed})
	}))

	inv, err := client.UpdateInvoiceStatus(context.Background(), 3, domain.InvoiceProcessed)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceProcessed, inv.Status)
}

func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := New(url, 2*time.Second, nil)
	_, err := client.Products(context.Background(), ProductFilter{})

	require.Error(t, err)
	assert.True(t, IsKind(err, KindNetwork))
}

func TestBuildURL(t *testing.T) {
	client := New("http://api.local/", time.Second, nil)

	assert.Equal(t, "http://api.local/api/orders/", client.BuildURL("/api/orders/"))
	assert.Equal(t, "http://api.local/api/orders/", client.BuildURL("api/orders/"))
}
