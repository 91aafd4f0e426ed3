// Package kitchen derives the kitchen view of orders and drives the staff
// dashboard.
package kitchen

import (
	"sort"
	"time"

	"pizza-deprizza/models"
)

var progressByStatus = map[models.OrderStatus]int{
	models.StatusReceived:  10,
	models.StatusPreparing: 35,
	models.StatusCooking:   70,
	models.StatusReady:     100,
	models.StatusCompleted: 100,
	models.StatusDelivered: 100,
}

// Progress returns the completion percentage for status, 0 when unknown.
func Progress(status models.OrderStatus) int {
	return progressByStatus[status]
}

// PriorityOf grades an order by elapsed time against its estimate.
func PriorityOf(o models.Order, now time.Time) models.Priority {
	elapsed := now.Sub(o.CreatedAt).Minutes()
	est := float64(o.Estimate())
	switch {
	case elapsed > est:
		return models.PriorityHigh
	case elapsed > est*0.7:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// Derive refreshes Progress and Priority of every order in place.
func Derive(orders []models.Order, now time.Time) {
	for i := range orders {
		orders[i].Progress = Progress(orders[i].Status)
		orders[i].Priority = PriorityOf(orders[i], now)
	}
}

// Active keeps the orders the kitchen still works on.
func Active(orders []models.Order) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status.IsActive() {
			out = append(out, o)
		}
	}
	return out
}

// FilterAll is the status filter that keeps everything.
const FilterAll = "all"

// FilterByStatus returns the orders whose status equals filter, or all of them
// for FilterAll and the empty filter.
func FilterByStatus(orders []models.Order, filter string) []models.Order {
	if filter == "" || filter == FilterAll {
		return append([]models.Order(nil), orders...)
	}
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if string(o.Status) == filter {
			out = append(out, o)
		}
	}
	return out
}

// SortKey selects the dashboard ordering.
type SortKey string

const (
	SortByTime      SortKey = "time"
	SortByEstimated SortKey = "estimated"
	SortByPriority  SortKey = "priority"
)

// Sort returns a sorted copy of orders. Ties keep their input order.
func Sort(orders []models.Order, key SortKey) []models.Order {
	out := append([]models.Order(nil), orders...)
	var less func(a, b models.Order) bool
	switch key {
	case SortByEstimated:
		less = func(a, b models.Order) bool { return a.Estimate() < b.Estimate() }
	case SortByPriority:
		less = func(a, b models.Order) bool { return a.Priority.Weight() > b.Priority.Weight() }
	default:
		less = func(a, b models.Order) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Statistics summarizes the active orders.
type Statistics struct {
	Total          int     `json:"total"`
	Pending        int     `json:"pending"`
	Cooking        int     `json:"cooking"`
	Ready          int     `json:"ready"`
	AverageMinutes float64 `json:"average_minutes"`
}

// Stats computes statistics from scratch. The average covers the elapsed time
// of every order that has left "received".
func Stats(orders []models.Order, now time.Time) Statistics {
	var st Statistics
	var elapsed float64
	var started int
	for _, o := range orders {
		st.Total++
		switch o.Status {
		case models.StatusReceived:
			st.Pending++
		case models.StatusPreparing, models.StatusCooking:
			st.Cooking++
		case models.StatusReady:
			st.Ready++
		}
		if o.Status != models.StatusReceived {
			elapsed += now.Sub(o.CreatedAt).Minutes()
			started++
		}
	}
	if started > 0 {
		st.AverageMinutes = elapsed / float64(started)
	}
	return st
}

var statusText = map[models.OrderStatus]string{
	models.StatusReceived:  "Recibida",
	models.StatusPreparing: "Preparando",
	models.StatusCooking:   "En Horno",
	models.StatusReady:     "Lista",
	models.StatusCompleted: "Completada",
	models.StatusDelivered: "Entregada",
}

// StatusText is the display label of a status.
func StatusText(s models.OrderStatus) string {
	if t, ok := statusText[s]; ok {
		return t
	}
	return string(s)
}

// PriorityText is the display label of a priority.
func PriorityText(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return "Alta"
	case models.PriorityMedium:
		return "Media"
	case models.PriorityLow:
		return "Baja"
	}
	return string(p)
}
