package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pizza-deprizza/kitchen"
	"pizza-deprizza/models"
	"pizza-deprizza/repository"
)

// AdminGetOrders returns the most recent orders for the kitchen dashboard
func (h *Handler) AdminGetOrders(c *gin.Context) {
	ctx := c.Request.Context()
	recs, err := h.orders.Recent(ctx, repository.RecentLimit)
	if err != nil {
		h.internalError(c, "No se pudieron cargar las órdenes", err)
		return
	}
	active, err := h.orders.Active(ctx)
	if err != nil {
		h.internalError(c, "No se pudieron cargar las órdenes", err)
		return
	}

	orders := make([]gin.H, 0, len(recs))
	for _, r := range recs {
		orders = append(orders, adminOrder(r))
	}
	activeInfo := make([]gin.H, 0, len(active))
	for _, r := range active {
		activeInfo = append(activeInfo, gin.H{
			"id":       r.ID,
			"status":   r.Status,
			"progress": kitchen.Progress(r.Status),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":        orders,
		"active_orders": activeInfo,
		"total_active":  len(active),
	})
}

func adminOrder(r models.OrderRecord) gin.H {
	items := r.OrderData
	if len(items) == 0 {
		items = []byte("[]")
	}
	est := r.EstimatedTime
	if est <= 0 {
		est = models.DefaultEstimatedMinutes
	}
	customer := r.CustomerName
	if customer == "" {
		customer = models.DefaultCustomer
	}
	payment := r.PaymentMethod
	if payment == "" {
		payment = string(models.DefaultPayment)
	}
	return gin.H{
		"id":             r.ID,
		"items":          items,
		"total":          r.TotalPrice,
		"estimated_time": est,
		"customer":       customer,
		"payment":        payment,
		"status":         r.Status,
		"created_at":     r.CreatedAt,
		"completed_at":   r.CompletedAt,
	}
}
