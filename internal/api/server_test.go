package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"tableside/internal/api"
	"tableside/internal/models"
	"tableside/internal/monitoring"
	"tableside/internal/recommend"
	"tableside/internal/store"
)

// failingLLM always errors, simulating an unreachable upstream.
type failingLLM struct{}

func (failingLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", errors.New("upstream unavailable")
}

func (failingLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	return nil, errors.New("upstream unavailable")
}

func newTestServer(t *testing.T) (*api.Server, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := store.New()
	return api.NewServer(st, recommend.New(failingLLM{}), monitoring.NewMonitor()), st
}

func doJSON(t *testing.T, server *api.Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func addMenuItem(t *testing.T, server *api.Server, name string, price float64) string {
	t.Helper()
	w := doJSON(t, server, "POST", "/api/v1/admin/menu", models.MenuItem{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Category:    models.CategoryEntrees,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func TestHealth(t *testing.T) {
	server, _ := newTestServer(t)
	w := doJSON(t, server, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrderFlowThroughPortals(t *testing.T) {
	server, _ := newTestServer(t)

	burgerID := addMenuItem(t, server, "Burger", 5.00)
	friesID := addMenuItem(t, server, "Fries", 3.50)

	// Customer fills the cart for table 4.
	w := doJSON(t, server, "POST", "/api/v1/tables/4/cart/items", gin.H{"menuItemId": burgerID, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, server, "POST", "/api/v1/tables/4/cart/items", gin.H{"menuItemId": friesID, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)

	var cart struct {
		Items    []models.CartItem `json:"items"`
		Subtotal float64           `json:"subtotal"`
	}
	decode(t, w, &cart)
	assert.InDelta(t, 12.00, cart.Subtotal, 1e-9)

	// Checkout commits the cart and clears it.
	w = doJSON(t, server, "POST", "/api/v1/tables/4/checkout", gin.H{"note": "extra napkins"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var placed struct {
		OrderID string `json:"orderId"`
	}
	decode(t, w, &placed)
	require.NotEmpty(t, placed.OrderID)

	w = doJSON(t, server, "GET", "/api/v1/tables/4/cart", nil)
	decode(t, w, &cart)
	assert.Empty(t, cart.Items)

	// Chef sees the order and advances it.
	w = doJSON(t, server, "GET", "/api/v1/kitchen/queue", nil)
	var queue []models.Order
	decode(t, w, &queue)
	require.Len(t, queue, 1)
	assert.Equal(t, models.OrderStatusPending, queue[0].Status)
	assert.InDelta(t, 12.00, queue[0].TotalAmount, 1e-9)

	for _, status := range []models.OrderStatus{models.OrderStatusCooking, models.OrderStatusServed} {
		w = doJSON(t, server, "POST", fmt.Sprintf("/api/v1/orders/%s/status", placed.OrderID), gin.H{"status": status})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	// Served orders leave the kitchen queue.
	w = doJSON(t, server, "GET", "/api/v1/kitchen/queue", nil)
	decode(t, w, &queue)
	assert.Empty(t, queue)

	// Admin takes payment and the dashboards move.
	w = doJSON(t, server, "POST", fmt.Sprintf("/api/v1/admin/orders/%s/pay", placed.OrderID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, "GET", "/api/v1/admin/stats", nil)
	var stats store.Stats
	decode(t, w, &stats)
	assert.InDelta(t, 12.00, stats.TotalRevenue, 1e-9)
	assert.InDelta(t, 0, stats.PendingRevenue, 1e-9)
	assert.Equal(t, 0, stats.ActiveTables)
}

func TestConcurrentCartRequestsLoseNothing(t *testing.T) {
	server, _ := newTestServer(t)
	id := addMenuItem(t, server, "Burger", 5.00)

	// Several taps from the same table land at once; every one must stick.
	const taps = 16
	var wg sync.WaitGroup
	for i := 0; i < taps; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := doJSON(t, server, "POST", "/api/v1/tables/9/cart/items", gin.H{"menuItemId": id, "quantity": 1})
			assert.Equal(t, http.StatusOK, w.Code)
		}()
	}
	wg.Wait()

	w := doJSON(t, server, "GET", "/api/v1/tables/9/cart", nil)
	var cart struct {
		Items    []models.CartItem `json:"items"`
		Subtotal float64           `json:"subtotal"`
	}
	decode(t, w, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, taps, cart.Items[0].Quantity)
	assert.InDelta(t, float64(taps)*5.00, cart.Subtotal, 1e-9)

	// Checkout commits exactly what the cart held.
	w = doJSON(t, server, "POST", "/api/v1/tables/9/checkout", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var placed struct {
		OrderID string `json:"orderId"`
	}
	decode(t, w, &placed)

	w = doJSON(t, server, "GET", "/api/v1/tables/9/cart", nil)
	decode(t, w, &cart)
	assert.Empty(t, cart.Items)
}

func TestCheckoutEmptyCart(t *testing.T) {
	server, _ := newTestServer(t)
	w := doJSON(t, server, "POST", "/api/v1/tables/4/checkout", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIllegalTransitionConflicts(t *testing.T) {
	server, _ := newTestServer(t)
	id := addMenuItem(t, server, "Burger", 5.00)

	w := doJSON(t, server, "POST", "/api/v1/tables/1/cart/items", gin.H{"menuItemId": id})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, server, "POST", "/api/v1/tables/1/checkout", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var placed struct {
		OrderID string `json:"orderId"`
	}
	decode(t, w, &placed)

	// Paying a PENDING order is rejected with 409.
	w = doJSON(t, server, "POST", fmt.Sprintf("/api/v1/admin/orders/%s/pay", placed.OrderID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Unknown orders are 404.
	w = doJSON(t, server, "POST", "/api/v1/admin/orders/missing/pay", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServiceRequestEndpoints(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, "POST", "/api/v1/tables/7/service", gin.H{"type": "WATER"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		RequestID string `json:"requestId"`
	}
	decode(t, w, &created)

	w = doJSON(t, server, "POST", "/api/v1/tables/7/service", gin.H{"type": "WATER"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, server, "GET", "/api/v1/admin/service-requests?pending=true", nil)
	var pending []models.ServiceRequest
	decode(t, w, &pending)
	assert.Len(t, pending, 2)

	w = doJSON(t, server, "POST", fmt.Sprintf("/api/v1/admin/service-requests/%s/resolve", created.RequestID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, "GET", "/api/v1/admin/service-requests?pending=true", nil)
	decode(t, w, &pending)
	assert.Len(t, pending, 1)

	// Bad type is rejected at the boundary.
	w = doJSON(t, server, "POST", "/api/v1/tables/7/service", gin.H{"type": "COFFEE"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMenuAdminEndpoints(t *testing.T) {
	server, _ := newTestServer(t)
	id := addMenuItem(t, server, "Salad", 6.75)

	w := doJSON(t, server, "GET", "/api/v1/menu", nil)
	var menu []models.MenuItem
	decode(t, w, &menu)
	require.Len(t, menu, 1)

	w = doJSON(t, server, "PUT", "/api/v1/admin/menu/"+id, models.MenuItem{
		Name:        "Caesar Salad",
		Description: "Now with croutons",
		Price:       7.25,
		Category:    models.CategoryEntrees,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, server, "PUT", "/api/v1/admin/menu/missing", models.MenuItem{
		Name:        "Ghost",
		Description: "n/a",
		Price:       1,
		Category:    models.CategoryEntrees,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, server, "DELETE", "/api/v1/admin/menu/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, server, "GET", "/api/v1/menu", nil)
	decode(t, w, &menu)
	assert.Empty(t, menu)

	// Validation failures are 400.
	w = doJSON(t, server, "POST", "/api/v1/admin/menu", models.MenuItem{
		Name:        "Bad",
		Description: "negative price",
		Price:       -1,
		Category:    models.CategoryEntrees,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatFallsBackWhenUpstreamFails(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, "POST", "/api/v1/tables/3/chat", gin.H{"message": "what do you recommend?"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Reply string `json:"reply"`
	}
	decode(t, w, &resp)
	assert.Equal(t, recommend.Fallback, resp.Reply)

	// Both sides of the exchange land in the history.
	w = doJSON(t, server, "GET", "/api/v1/tables/3/chat", nil)
	var history []recommend.ChatMessage
	decode(t, w, &history)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "model", history[1].Role)
}

func TestSnapshotIsolationOverHTTP(t *testing.T) {
	server, st := newTestServer(t)
	id := addMenuItem(t, server, "Burger", 5.00)

	w := doJSON(t, server, "POST", "/api/v1/tables/2/cart/items", gin.H{"menuItemId": id, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, server, "POST", "/api/v1/tables/2/checkout", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var placed struct {
		OrderID string `json:"orderId"`
	}
	decode(t, w, &placed)

	w = doJSON(t, server, "DELETE", "/api/v1/admin/menu/"+id, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	order, err := st.Order(placed.OrderID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Burger", order.Items[0].Name)
	assert.InDelta(t, 10.00, order.TotalAmount, 1e-9)
}
