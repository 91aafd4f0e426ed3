// Package handlers serves the Pizza Deprizza order API with gin.
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pizza-deprizza/repository"
)

// Handler holds the dependencies of every endpoint.
type Handler struct {
	orders *repository.OrderRepository
	menu   *repository.MenuRepository
	log    *slog.Logger
	now    func() time.Time
}

// New returns a Handler backed by the given repositories.
func New(orders *repository.OrderRepository, menu *repository.MenuRepository, log *slog.Logger) *Handler {
	return &Handler{
		orders: orders,
		menu:   menu,
		log:    log.With("component", "api"),
		now:    time.Now,
	}
}

// orderID parses the :id path parameter, answering 400 when it is not a number.
func orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de orden inválido"})
		return 0, false
	}
	return id, true
}

func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.log.Error(msg, "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
