package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-7msolution/restaurante-mobile/client"
	"github.com/dev-7msolution/restaurante-mobile/models"
	"github.com/dev-7msolution/restaurante-mobile/storage"
)

var (
	risotto  = models.MenuItem{ID: "1", Name: "Risotto de Camarão", Price: 5890, Category: "Pratos Principais"}
	tiramisu = models.MenuItem{ID: "4", Name: "Tiramisu da Casa", Price: 1890, Category: "Sobremesas"}
)

func TestAddItemIncrementsExistingLine(t *testing.T) {
	c := New()
	c.AddItem(risotto)
	c.AddItem(risotto)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, c.TotalItems())
}

func TestTotalsAreExact(t *testing.T) {
	c := New()
	c.AddItem(risotto)
	c.UpdateQuantity(risotto.ID, 3)
	c.AddItem(tiramisu)

	// 58.90 × 3 + 18.90 × 1 = 195.60, no floating-point drift.
	assert.Equal(t, models.Cents(19560), c.TotalPrice())
	assert.Equal(t, "R$ 195,60", c.TotalPrice().String())
	assert.Equal(t, 4, c.TotalItems())
}

func TestUpdateQuantityRemovesAtZeroOrBelow(t *testing.T) {
	c := New()
	c.AddItem(risotto)
	c.UpdateQuantity(risotto.ID, 0)
	assert.Empty(t, c.Items())

	c.AddItem(risotto)
	c.UpdateQuantity(risotto.ID, -1)
	assert.Empty(t, c.Items())
}

func TestUpdateQuantityUnknownIDIsNoop(t *testing.T) {
	c := New()
	c.AddItem(risotto)
	c.UpdateQuantity("does-not-exist", 5)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	c := New()
	c.AddItem(risotto)
	c.RemoveItem(risotto.ID)
	c.RemoveItem(risotto.ID)
	assert.Empty(t, c.Items())
}

func TestClearCart(t *testing.T) {
	c := New()
	c.AddItem(risotto)
	c.AddItem(tiramisu)
	c.Clear()

	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, models.Cents(0), c.TotalPrice())
}

func TestPriceSnapshotAtAddTime(t *testing.T) {
	c := New()
	item := risotto
	c.AddItem(item)

	// A later catalog price change must not affect the line.
	item.Price = 9999
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, models.Cents(5890), items[0].UnitPrice)
}

func TestInsertionOrderPreserved(t *testing.T) {
	c := New()
	c.AddItem(tiramisu)
	c.AddItem(risotto)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, tiramisu.ID, items[0].ID)
	assert.Equal(t, risotto.ID, items[1].ID)
}

func newTestClient(t *testing.T, url string) *client.Client {
	t.Helper()
	api := client.New(url, 5*time.Second, storage.NewMemoryStore())
	api.RetryDelay = time.Millisecond
	return api
}

func TestCheckoutPlacesOrderThenClears(t *testing.T) {
	var received models.CreateOrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Order{ID: "ORD-2024-004", Status: models.OrderStatusPreparing})
	}))
	defer srv.Close()

	c := New()
	c.AddItem(risotto)
	c.AddItem(tiramisu)

	order, err := c.Checkout(context.Background(), newTestClient(t, srv.URL), CheckoutInfo{
		DeliveryAddress: "Rua das Flores, 123 - Centro",
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD-2024-004", order.ID)
	assert.Empty(t, c.Items())
	require.Len(t, received.Items, 2)
	assert.Equal(t, "Rua das Flores, 123 - Centro", received.DeliveryAddress)
}

func TestCheckoutFailureLeavesCartIntact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Erro interno do servidor"})
	}))
	defer srv.Close()

	c := New()
	c.AddItem(risotto)

	_, err := c.Checkout(context.Background(), newTestClient(t, srv.URL), CheckoutInfo{DeliveryAddress: "x"})
	require.Error(t, err)
	assert.Len(t, c.Items(), 1)
}

func TestCheckoutEmptyCart(t *testing.T) {
	c := New()
	_, err := c.Checkout(context.Background(), newTestClient(t, "http://127.0.0.1:0"), CheckoutInfo{})
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, client.KindValidation, apiErr.Kind)
}
