package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-deprizza/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		ok       bool
	}{
		{models.StatusReceived, models.StatusPreparing, true},
		{models.StatusReceived, models.StatusReady, true},
		{models.StatusPreparing, models.StatusCooking, true},
		{models.StatusCooking, models.StatusReady, true},
		{models.StatusReady, models.StatusCompleted, true},
		{models.StatusReady, models.StatusDelivered, true},
		{models.StatusCompleted, models.StatusDelivered, false},
		{models.StatusCooking, models.StatusPreparing, false},
		{models.StatusReady, models.StatusReady, false},
		{models.StatusDelivered, models.StatusReceived, false},
		{models.StatusReceived, models.OrderStatus("burnt"), false},
		{models.OrderStatus("burnt"), models.StatusReady, false},
	}

	for _, tt := range tests {
		err := CanTransition(tt.from, tt.to)
		if tt.ok {
			assert.NoError(t, err, "%s → %s", tt.from, tt.to)
		} else {
			assert.Error(t, err, "%s → %s", tt.from, tt.to)
		}
	}
}

func TestInvalidTransitionListsAlternatives(t *testing.T) {
	err := CanTransition(models.StatusReady, models.StatusCooking)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "completed, delivered")

	for _, from := range models.FinishedStatuses {
		err = CanTransition(from, models.StatusDelivered)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "terminal state")
	}
}

func TestTransitionTable(t *testing.T) {
	assert.Equal(t, models.FinishedStatuses, TerminalStates())
	assert.Len(t, GetAllTransitions(), 14)
	assert.Equal(t,
		[]models.OrderStatus{models.StatusCooking, models.StatusReady, models.StatusCompleted, models.StatusDelivered},
		ValidTransitionsFrom(models.StatusPreparing))

	for _, tr := range GetAllTransitions() {
		if tr.To == models.StatusReady {
			assert.Equal(t, "kitchen", tr.Actor)
		}
		if tr.To == models.StatusDelivered {
			assert.Equal(t, "counter", tr.Actor)
		}
	}
}
