package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pizza-deprizza/statemachine"
)

// Health reports that the server is up
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Pizza Deprizza Order API",
		"time":    h.now(),
	})
}

// GetStateMachineInfo returns the full state machine for informational purposes
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	info := make([]gin.H, 0)
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": statemachine.TerminalStates(),
		"description":     "Pizza Deprizza Order Lifecycle State Machine",
	})
}
