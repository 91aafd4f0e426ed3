package models

import (
	"time"

	"gorm.io/datatypes"
)

// OrderStatus represents all possible states of a pizza order
type OrderStatus string

const (
	StatusReceived  OrderStatus = "received"
	StatusPreparing OrderStatus = "preparing"
	StatusCooking   OrderStatus = "cooking"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusDelivered OrderStatus = "delivered"
)

// AllStatuses lists the lifecycle in order; a status may only move to a later entry.
var AllStatuses = []OrderStatus{
	StatusReceived,
	StatusPreparing,
	StatusCooking,
	StatusReady,
	StatusCompleted,
	StatusDelivered,
}

func (s OrderStatus) String() string { return string(s) }

// Rank returns the position of s in the lifecycle, or -1 for unknown values.
func (s OrderStatus) Rank() int {
	for i, st := range AllStatuses {
		if st == s {
			return i
		}
	}
	return -1
}

// IsKnown reports whether s is one of the six lifecycle statuses.
func (s OrderStatus) IsKnown() bool { return s.Rank() >= 0 }

// FinishedStatuses are the statuses the kitchen never shows or counts.
var FinishedStatuses = []OrderStatus{StatusCompleted, StatusDelivered}

// IsActive is true for orders the kitchen still has to work on.
// Unknown statuses count as active so they are never silently hidden.
func (s OrderStatus) IsActive() bool {
	return s != StatusCompleted && s != StatusDelivered
}

// Priority is the urgency tier derived from elapsed vs estimated time.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Weight is used for priority sorting (high first).
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// DefaultEstimatedMinutes is used whenever an order carries no estimate.
const DefaultEstimatedMinutes = 25

// OrderItem is one line of an order as the kitchen sees it.
type OrderItem struct {
	Name     string  `json:"name"`
	Size     string  `json:"size"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order is the kitchen-side view of an order. Progress and Priority are derived
// on every refresh and never persisted; Synced is false when the last status
// change could only be applied locally.
type Order struct {
	ID            int64       `json:"id"`
	Items         []OrderItem `json:"items"`
	Total         float64     `json:"total"`
	Customer      string      `json:"customer"`
	PaymentMethod string      `json:"payment"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty"`
	EstimatedTime int         `json:"estimated_time"`
	Progress      int         `json:"progress"`
	Priority      Priority    `json:"priority"`
	Synced        bool        `json:"-"`
}

// Estimate returns the estimated preparation time in minutes, defaulting to 25.
func (o *Order) Estimate() int {
	if o.EstimatedTime > 0 {
		return o.EstimatedTime
	}
	return DefaultEstimatedMinutes
}

// OrderRecord is the persisted order row of the backend.
type OrderRecord struct {
	ID            int64                `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderData     datatypes.JSON       `json:"items" gorm:"not null"`
	TotalPrice    float64              `json:"total" gorm:"not null"`
	EstimatedTime int                  `json:"estimated_time"`
	CustomerName  string               `json:"customer"`
	PaymentMethod string               `json:"payment"`
	Status        OrderStatus          `json:"status" gorm:"not null;default:'received';index"`
	CreatedAt     time.Time            `json:"created_at" gorm:"index"`
	CompletedAt   *time.Time           `json:"completed_at"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
}

func (OrderRecord) TableName() string { return "orders" }

// OrderStatusHistory tracks every status change of an order
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    int64       `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
