package repository

import (
	"context"

	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PedidoRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	Update(ctx context.Context, p *model.Pedido) error
	ListAll(ctx context.Context) ([]model.Pedido, error)
	ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Pedido, error)
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) DB() *gorm.DB { return r.db }

func (r *pedidoRepo) CreateTx(ctx context.Context, tx *gorm.DB, p *model.Pedido) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).Preload("Usuario").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pedidoRepo) Update(ctx context.Context, p *model.Pedido) error {
	// Select("*") so nil MotivoRechazo / ReferenciaPago clear their columns.
	return r.db.WithContext(ctx).Model(p).Select("*").Omit("fecha_creacion").Updates(p).Error
}

func (r *pedidoRepo) ListAll(ctx context.Context) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).Preload("Usuario").
		Order("fecha_creacion DESC").Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).Where("usuario_id = ?", usuarioID).
		Order("fecha_creacion DESC").Find(&pedidos).Error
	return pedidos, err
}
