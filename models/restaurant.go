package models

import "time"

// RestaurantStatus is the load summary served to the storefront delivery banner.
type RestaurantStatus struct {
	CurrentOrders   int       `json:"currentOrders"`
	AverageWaitTime int       `json:"averageWaitTime"`
	Status          string    `json:"status"`
	LastUpdated     time.Time `json:"lastUpdated"`
	ActiveOrders    int       `json:"activeOrders"`
}

// Wait-time bounds for the banner estimate, in minutes.
const (
	MinAverageWait     = 20
	MaxAverageWait     = 50
	DefaultAverageWait = 25
)

// LoadLabel describes the kitchen load for a given number of active orders.
func LoadLabel(activeOrders int) string {
	switch {
	case activeOrders <= 0:
		return "Recibiendo órdenes"
	case activeOrders < 3:
		return "Operando normalmente"
	case activeOrders < 6:
		return "Demanda moderada"
	default:
		return "Hora pico - Mayor demanda"
	}
}

// Preparation estimate inputs, in minutes.
const (
	BasePrepMinutes    = 15
	PerItemMinutes     = 3
	PerActiveMinutes   = 2
	MaxEstimateMinutes = 60
)

// EstimateMinutes is the preparation estimate for an order of totalQty pizzas
// arriving while activeOrders are in the kitchen.
func EstimateMinutes(totalQty, activeOrders int) int {
	extra := 0
	if totalQty > 1 {
		extra = (totalQty - 1) * PerItemMinutes
	}
	return min(BasePrepMinutes+extra+activeOrders*PerActiveMinutes, MaxEstimateMinutes)
}

// AverageWait is the mean estimate of the active orders clamped to
// [MinAverageWait, MaxAverageWait], or DefaultAverageWait with none active.
func AverageWait(estimates []int) int {
	if len(estimates) == 0 {
		return DefaultAverageWait
	}
	sum := 0
	for _, e := range estimates {
		sum += e
	}
	return max(MinAverageWait, min(MaxAverageWait, sum/len(estimates)))
}

// NewRestaurantStatus summarizes the kitchen load from the active estimates.
func NewRestaurantStatus(estimates []int, now time.Time) RestaurantStatus {
	return RestaurantStatus{
		CurrentOrders:   len(estimates),
		AverageWaitTime: AverageWait(estimates),
		Status:          LoadLabel(len(estimates)),
		LastUpdated:     now,
		ActiveOrders:    len(estimates),
	}
}
