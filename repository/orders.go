// Package repository persists orders, their status history and the menu with gorm.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pizza-deprizza/models"
	"pizza-deprizza/statemachine"
)

var (
	ErrOrderNotFound     = errors.New("orden no encontrada")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// RecentLimit caps the admin order listing.
const RecentLimit = 50

// OrderRepository stores OrderRecords.
type OrderRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewOrderRepository returns a repository on db.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db, now: time.Now}
}

// Create inserts rec as a received order and records the initial history row.
func (r *OrderRepository) Create(ctx context.Context, rec *models.OrderRecord) error {
	rec.Status = models.StatusReceived
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.now().UTC()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		history := models.OrderStatusHistory{
			OrderID:  rec.ID,
			ToStatus: models.StatusReceived,
			Note:     "Orden creada",
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("record order history: %w", err)
		}
		return nil
	})
}

// Get loads one order with its history.
func (r *OrderRepository) Get(ctx context.Context, id int64) (models.OrderRecord, error) {
	var rec models.OrderRecord
	err := r.db.WithContext(ctx).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.OrderRecord{}, fmt.Errorf("order %d: %w", id, ErrOrderNotFound)
	}
	if err != nil {
		return models.OrderRecord{}, fmt.Errorf("get order %d: %w", id, err)
	}
	return rec, nil
}

// Recent returns up to limit orders, newest first.
func (r *OrderRepository) Recent(ctx context.Context, limit int) ([]models.OrderRecord, error) {
	if limit <= 0 {
		limit = RecentLimit
	}
	var recs []models.OrderRecord
	err := r.db.WithContext(ctx).
		Order("created_at desc").Order("id desc").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return recs, nil
}

// Active returns every order the kitchen still has to finish, oldest first.
func (r *OrderRepository) Active(ctx context.Context) ([]models.OrderRecord, error) {
	var recs []models.OrderRecord
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", models.FinishedStatuses).
		Order("created_at asc").Order("id asc").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list active orders: %w", err)
	}
	return recs, nil
}

// ActiveEstimates returns the estimated minutes of every active order.
func (r *OrderRepository) ActiveEstimates(ctx context.Context) ([]int, error) {
	recs, err := r.Active(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(recs))
	for i, rec := range recs {
		out[i] = rec.EstimatedTime
	}
	return out, nil
}

// UpdateStatus moves an order forward, stamping CompletedAt when it reaches
// completed, and records the change in the history.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, to models.OrderStatus, note string) (models.OrderRecord, error) {
	var rec models.OrderRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order %d: %w", id, ErrOrderNotFound)
			}
			return fmt.Errorf("get order %d: %w", id, err)
		}
		if err := statemachine.CanTransition(rec.Status, to); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		from := rec.Status
		updates := map[string]any{"status": to}
		if to == models.StatusCompleted {
			now := r.now().UTC()
			updates["completed_at"] = now
			rec.CompletedAt = &now
		}
		if err := tx.Model(&rec).Updates(updates).Error; err != nil {
			return fmt.Errorf("update order %d: %w", id, err)
		}
		rec.Status = to

		history := models.OrderStatusHistory{OrderID: id, FromStatus: from, ToStatus: to, Note: note}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("record order history: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.OrderRecord{}, err
	}
	return rec, nil
}
