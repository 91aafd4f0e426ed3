package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-deprizza/config"
	"pizza-deprizza/handlers"
	"pizza-deprizza/logger"
	"pizza-deprizza/models"
	"pizza-deprizza/repository"
	"pizza-deprizza/routes"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := config.OpenDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	menu := repository.NewMenuRepository(db)
	require.NoError(t, menu.Seed(testContext(t), models.DefaultMenu()))
	h := handlers.New(repository.NewOrderRepository(db), menu, logger.Discard())
	return routes.NewRouter(h, logger.Discard())
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

func placeOrder(t *testing.T, r http.Handler, qty int) int64 {
	t.Helper()
	w, out := doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{
		"items":    []map[string]any{{"cartId": "1-mediana-none", "id": 1, "name": "Margherita Clásica", "size": "mediana", "price": 180, "quantity": qty}},
		"total":    180 * qty,
		"customer": "Ana",
		"payment":  "tarjeta",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int64(out["order_id"].(float64))
}

func TestGetMenu(t *testing.T) {
	r := setupRouter(t)
	w, out := doJSON(t, r, http.MethodGet, "/api/menu", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", out["status"])
	assert.Len(t, out["menu"], 8)
}

func TestPlaceOrder(t *testing.T) {
	r := setupRouter(t)

	w, out := doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{
		"items": []map[string]any{{"name": "Margherita Clásica", "size": "grande", "price": 270, "quantity": 3}},
		"total": 810,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, float64(21), out["estimated_time"], "15 + 3 per extra pizza")
	assert.Equal(t, "Cliente", out["customer"])
	assert.Equal(t, "efectivo", out["payment"])

	_, out = doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{
		"items": []map[string]any{{"name": "Hawaiana Tropical", "quantity": 1}},
		"total": 240,
	})
	assert.Equal(t, float64(17), out["estimated_time"], "2 minutes per active order")
}

func TestPlaceOrderValidation(t *testing.T) {
	r := setupRouter(t)
	tests := []struct {
		name string
		body any
	}{
		{"no items", map[string]any{"total": 100}},
		{"empty items", map[string]any{"items": []any{}, "total": 100}},
		{"negative total", map[string]any{"items": []map[string]any{{"name": "x"}}, "total": -1}},
		{"unknown payment", map[string]any{"items": []map[string]any{{"name": "x"}}, "payment": "bitcoin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, out := doJSON(t, r, http.MethodPost, "/api/orders", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Datos de orden inválidos", out["error"])
		})
	}
}

func TestRestaurantStatus(t *testing.T) {
	r := setupRouter(t)

	w, out := doJSON(t, r, http.MethodGet, "/api/orders/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Recibiendo órdenes", out["status"])
	assert.Equal(t, float64(25), out["averageWaitTime"])

	placeOrder(t, r, 1)
	placeOrder(t, r, 1)
	_, out = doJSON(t, r, http.MethodGet, "/api/orders/status", nil)
	assert.Equal(t, "Operando normalmente", out["status"])
	assert.Equal(t, float64(2), out["currentOrders"])
	assert.Equal(t, float64(20), out["averageWaitTime"], "clamped to the minimum")
}

func TestUpdateOrderStatus(t *testing.T) {
	r := setupRouter(t)
	id := placeOrder(t, r, 1)
	path := fmt.Sprintf("/api/orders/%d/status", id)

	w, out := doJSON(t, r, http.MethodPut, path, map[string]string{"status": "cooking"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "cooking", out["status"])

	w, out = doJSON(t, r, http.MethodPut, path, map[string]string{"status": "preparing"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "cooking", out["current_status"])
	assert.ElementsMatch(t, []any{"ready", "completed", "delivered"}, out["valid_next_states"])

	w, _ = doJSON(t, r, http.MethodPut, path, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodPut, path, map[string]string{"status": "burnt"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodPut, "/api/orders/999/status", map[string]string{"status": "ready"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodPut, "/api/orders/abc/status", map[string]string{"status": "ready"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, out = doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cooking", out["status"])
	assert.Equal(t, float64(70), out["progress"])
	assert.Len(t, out["history"], 2)
}

func TestCompletedOrderGetsCompletionTime(t *testing.T) {
	r := setupRouter(t)
	id := placeOrder(t, r, 1)
	path := fmt.Sprintf("/api/orders/%d/status", id)

	w, _ := doJSON(t, r, http.MethodPut, path, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)

	_, out := doJSON(t, r, http.MethodGet, path, nil)
	assert.NotNil(t, out["completed_at"])
	assert.Equal(t, float64(100), out["progress"])

	w, _ = doJSON(t, r, http.MethodGet, "/api/orders/999/status", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminGetOrders(t *testing.T) {
	r := setupRouter(t)
	first := placeOrder(t, r, 2)
	second := placeOrder(t, r, 1)
	w, _ := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", first), map[string]string{"status": "delivered"})
	require.Equal(t, http.StatusOK, w.Code)

	w, out := doJSON(t, r, http.MethodGet, "/api/admin/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), out["total_active"])

	orders := out["orders"].([]any)
	require.Len(t, orders, 2)
	newest := orders[0].(map[string]any)
	assert.Equal(t, float64(second), newest["id"])
	assert.Equal(t, "Ana", newest["customer"])
	assert.Equal(t, "tarjeta", newest["payment"])
	items := newest["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Margherita Clásica", items[0].(map[string]any)["name"])
}

func TestHealthAndStateMachine(t *testing.T) {
	r := setupRouter(t)

	w, out := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", out["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	_, out = doJSON(t, r, http.MethodGet, "/api/state-machine", nil)
	assert.Len(t, out["state_machine"], 15)
	assert.Equal(t, []any{"delivered"}, out["terminal_states"])
}

func TestCORSPreflight(t *testing.T) {
	r := setupRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

// testContext mirrors testing.T.Context (Go 1.24+): a context cancelled
// when the test finishes.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
