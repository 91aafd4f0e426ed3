package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"pizza-deprizza/handlers"
	"pizza-deprizza/middleware"
)

// NewRouter builds the engine with recovery, request ids, logging and CORS.
func NewRouter(h *handlers.Handler, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log), middleware.CORS())
	SetupRoutes(r, h)
	return r
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	r.GET("/health", h.Health)

	// ── Storefront ─────────────────────────────────────────────────
	api := r.Group("/api")
	{
		api.GET("/menu", h.GetMenu)
		api.POST("/orders", h.PlaceOrder)
		api.GET("/orders/status", h.GetRestaurantStatus)
		api.GET("/orders/:id/status", h.GetOrderStatus)

		// State machine info (great for docs/Postman)
		api.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Kitchen ────────────────────────────────────────────────────
	kitchen := r.Group("/api")
	{
		kitchen.PUT("/orders/:id/status", h.UpdateOrderStatus)
	}

	// ── Admin ──────────────────────────────────────────────────────
	admin := r.Group("/api/admin")
	{
		admin.GET("/orders", h.AdminGetOrders)
	}
}
