package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-deprizza/client"
	"pizza-deprizza/kitchen"
	"pizza-deprizza/logger"
	"pizza-deprizza/models"
)

type stubOrders struct {
	orders  []models.Order
	updates []models.OrderStatus
}

func (s *stubOrders) AdminOrders(context.Context) (client.OrderList, error) {
	return client.OrderList{Orders: s.orders}, nil
}

func (s *stubOrders) UpdateOrderStatus(_ context.Context, _ int64, st models.OrderStatus) error {
	s.updates = append(s.updates, st)
	return nil
}

func TestRunKitchenCommand(t *testing.T) {
	api := &stubOrders{orders: []models.Order{
		{ID: 5, Status: models.StatusReceived, CreatedAt: time.Now(), Customer: "Ana"},
	}}
	board := kitchen.NewDashboard(api, logger.Discard())
	ctx := context.Background()
	var out bytes.Buffer

	assert.False(t, runKitchenCommand(ctx, board, "r", &out))
	assert.False(t, runKitchenCommand(ctx, board, "s 5", &out))
	require.NotNil(t, board.View().Selected)
	assert.False(t, runKitchenCommand(ctx, board, "2", &out))
	assert.Equal(t, []models.OrderStatus{models.StatusCooking}, api.updates)

	out.Reset()
	assert.False(t, runKitchenCommand(ctx, board, "s x", &out))
	assert.Contains(t, out.String(), "id de orden inválido")

	assert.False(t, runKitchenCommand(ctx, board, "esc", &out))
	assert.Nil(t, board.View().Selected)

	assert.False(t, runKitchenCommand(ctx, board, "f ready", &out))
	assert.Empty(t, board.View().Orders)

	out.Reset()
	assert.False(t, runKitchenCommand(ctx, board, "help", &out))
	assert.Contains(t, out.String(), "comandos:")

	assert.True(t, runKitchenCommand(ctx, board, "q", &out))
}

func TestPrintView(t *testing.T) {
	var out bytes.Buffer
	v := kitchen.View{
		Orders: []models.Order{{
			ID: 3, Status: models.StatusCooking, Progress: 70, Priority: models.PriorityHigh,
			Customer: "Luis", Items: []models.OrderItem{{Name: "Hawaiana Tropical", Size: "grande", Quantity: 2}},
		}},
		Stats: kitchen.Statistics{Total: 1, Cooking: 1, AverageMinutes: 12.4},
	}
	v.Selected = &v.Orders[0]
	printView(&out, v)

	s := out.String()
	assert.Contains(t, s, "total 1 | pendientes 0 | en proceso 1 | listas 0 | promedio 12 min")
	assert.Contains(t, s, "> #3*")
	assert.Contains(t, s, "En Horno")
	assert.Contains(t, s, "Alta")
	assert.Contains(t, s, "2x Hawaiana Tropical (grande)")

	out.Reset()
	printView(&out, kitchen.View{Offline: true})
	assert.Contains(t, out.String(), "sin conexión")
	assert.Contains(t, out.String(), "No hay órdenes")
}

func TestDeliveryStatusCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"Demanda moderada","averageWaitTime":30}`))
	}))
	defer srv.Close()
	t.Setenv("API_BASE_URL", srv.URL)

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "delivery-status"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "Demanda moderada · Tiempo estimado: 30-40 min\n", out.String())
}

func TestDeliveryStatusCommandOffline(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://127.0.0.1:1")
	t.Setenv("HTTP_TIMEOUT", "200ms")

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "delivery-status"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "Modo offline · 25-35 min\n", out.String())
}
