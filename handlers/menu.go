package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetMenu returns the pizzas on sale
func (h *Handler) GetMenu(c *gin.Context) {
	items, err := h.menu.Available(c.Request.Context())
	if err != nil {
		h.log.Error("menu query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo cargar el menú", "status": "error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": items, "status": "success"})
}
