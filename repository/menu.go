package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"pizza-deprizza/models"
)

// MenuRepository stores the pizzas served by /api/menu.
type MenuRepository struct {
	db *gorm.DB
}

// NewMenuRepository returns a repository on db.
func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// Seed inserts items when the table is empty.
func (r *MenuRepository) Seed(ctx context.Context, items []models.MenuItem) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count pizzas: %w", err)
	}
	if count > 0 || len(items) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return fmt.Errorf("seed pizzas: %w", err)
	}
	return nil
}

// Available lists the pizzas on sale, by id.
func (r *MenuRepository) Available(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.WithContext(ctx).Where("available = ?", true).Order("id asc").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list pizzas: %w", err)
	}
	return items, nil
}
