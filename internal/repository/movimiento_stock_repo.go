package repository

import (
	"context"

	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/model"

	"gorm.io/gorm"
)

type MovimientoStockRepository interface {
	Create(ctx context.Context, m *model.MovimientoStock) error
	CreateTx(tx *gorm.DB, m *model.MovimientoStock) error
	List(ctx context.Context, limit int) ([]model.MovimientoStock, error)
}

type movimientoStockRepo struct{ db *gorm.DB }

func NewMovimientoStockRepository(db *gorm.DB) MovimientoStockRepository {
	return &movimientoStockRepo{db: db}
}

func (r *movimientoStockRepo) Create(ctx context.Context, m *model.MovimientoStock) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movimientoStockRepo) CreateTx(tx *gorm.DB, m *model.MovimientoStock) error {
	return tx.Create(m).Error
}

func (r *movimientoStockRepo) List(ctx context.Context, limit int) ([]model.MovimientoStock, error) {
	if limit <= 0 {
		limit = 100
	}
	var movs []model.MovimientoStock
	err := r.db.WithContext(ctx).Preload("Producto").
		Order("created_at DESC").Limit(limit).Find(&movs).Error
	return movs, err
}
