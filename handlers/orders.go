package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"pizza-deprizza/kitchen"
	"pizza-deprizza/models"
	"pizza-deprizza/repository"
	"pizza-deprizza/statemachine"
)

type PlaceOrderRequest struct {
	Items     []models.CartLine `json:"items" binding:"required,min=1"`
	Total     float64           `json:"total" binding:"gte=0"`
	Customer  string            `json:"customer"`
	Payment   string            `json:"payment" binding:"omitempty,oneof=efectivo tarjeta transferencia"`
	Timestamp *time.Time        `json:"timestamp"`
}

// PlaceOrder stores a storefront checkout as a received order
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de orden inválidos", "details": err.Error()})
		return
	}
	ctx := c.Request.Context()

	customer := strings.TrimSpace(req.Customer)
	if customer == "" {
		customer = models.DefaultCustomer
	}
	payment := req.Payment
	if payment == "" {
		payment = string(models.DefaultPayment)
	}

	active, err := h.orders.ActiveEstimates(ctx)
	if err != nil {
		h.internalError(c, "Error al crear la orden", err)
		return
	}
	qty := 0
	for _, it := range req.Items {
		qty += max(it.Quantity, 1)
	}
	estimate := models.EstimateMinutes(qty, len(active))

	data, err := json.Marshal(req.Items)
	if err != nil {
		h.internalError(c, "Error al crear la orden", err)
		return
	}
	rec := models.OrderRecord{
		OrderData:     data,
		TotalPrice:    req.Total,
		EstimatedTime: estimate,
		CustomerName:  customer,
		PaymentMethod: payment,
	}
	if err := h.orders.Create(ctx, &rec); err != nil {
		h.internalError(c, "Error al crear la orden", err)
		return
	}
	h.log.Info("order created", "order_id", rec.ID, "items", qty, "total", rec.TotalPrice, "estimated_time", estimate)

	c.JSON(http.StatusCreated, gin.H{
		"order_id":       rec.ID,
		"estimated_time": estimate,
		"status":         "success",
		"message":        "Orden creada exitosamente",
		"customer":       customer,
		"payment":        payment,
	})
}

// GetRestaurantStatus summarizes the kitchen load for the delivery banner
func (h *Handler) GetRestaurantStatus(c *gin.Context) {
	estimates, err := h.orders.ActiveEstimates(c.Request.Context())
	if err != nil {
		h.internalError(c, "No se pudo obtener el estado", err)
		return
	}
	c.JSON(http.StatusOK, models.NewRestaurantStatus(estimates, h.now()))
}

// GetOrderStatus returns the lifecycle position of one order
func (h *Handler) GetOrderStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	rec, err := h.orders.Get(c.Request.Context(), id)
	if errors.Is(err, repository.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Orden no encontrada"})
		return
	}
	if err != nil {
		h.internalError(c, "No se pudo obtener la orden", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order_id":       rec.ID,
		"status":         rec.Status,
		"progress":       kitchen.Progress(rec.Status),
		"estimated_time": rec.EstimatedTime,
		"created_at":     rec.CreatedAt,
		"completed_at":   rec.CompletedAt,
		"history":        rec.StatusHistory,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateOrderStatus moves an order forward in its lifecycle
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status requerido"})
		return
	}
	if !req.Status.IsKnown() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          "Status desconocido: " + string(req.Status),
			"valid_statuses": models.AllStatuses,
		})
		return
	}

	ctx := c.Request.Context()
	rec, err := h.orders.UpdateStatus(ctx, id, req.Status, req.Note)
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Orden no encontrada"})
		return
	case errors.Is(err, repository.ErrInvalidTransition):
		body := gin.H{
			"error":     "Invalid state transition",
			"requested": req.Status,
			"reason":    err.Error(),
		}
		if cur, getErr := h.orders.Get(ctx, id); getErr == nil {
			body["current_status"] = cur.Status
			body["valid_next_states"] = statemachine.ValidTransitionsFrom(cur.Status)
		}
		c.JSON(http.StatusUnprocessableEntity, body)
		return
	case err != nil:
		h.internalError(c, "No se pudo actualizar la orden", err)
		return
	}

	h.log.Info("order status updated", "order_id", id, "status", rec.Status)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"order_id": rec.ID,
		"status":   rec.Status,
	})
}
