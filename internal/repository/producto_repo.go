package repository

import (
	"context"
	"errors"

	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStockInsuficiente is returned by DescontarStockTx when the guarded
// decrement would drive stock below zero.
var ErrStockInsuficiente = errors.New("stock insuficiente")

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCategoria(ctx context.Context, categoriaID uuid.UUID) (int64, error)

	// Used inside transactions — callers must pass the tx instance
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error)
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error
	ReassignCategoriaTx(tx *gorm.DB, from, to uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Categoria").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).Preload("Categoria").Order("nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	// Save with Select("*") so cleared pointer fields (imagen_url, categoria_id)
	// are written as NULL instead of being skipped.
	return r.db.WithContext(ctx).Model(p).Select("*").Omit("created_at").Updates(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Producto{}, "id = ?", id).Error
}

func (r *productoRepo) CountByCategoria(ctx context.Context, categoriaID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("categoria_id = ?", categoriaID).Count(&n).Error
	return n, err
}

// FindByIDForUpdateTx locks the product row for the duration of the enclosing
// transaction. Concurrent checkouts touching the same product serialize here.
func (r *productoRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	return &p, err
}

// DescontarStockTx decrements stock with a stock >= cantidad guard. The guard
// is the last line of defense for the stock >= 0 invariant even if a caller
// skips the row lock.
func (r *productoRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	res := tx.Model(&model.Producto{}).
		Where("id = ? AND stock >= ?", id, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockInsuficiente
	}
	return nil
}

func (r *productoRepo) ReassignCategoriaTx(tx *gorm.DB, from, to uuid.UUID) error {
	return tx.Model(&model.Producto{}).
		Where("categoria_id = ?", from).
		Update("categoria_id", to).Error
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
