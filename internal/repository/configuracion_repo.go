package repository

import (
	"context"

	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConfiguracionRepository manages the singleton settings row. Every write is
// an upsert against the fixed primary key, so at most one row can ever exist.
type ConfiguracionRepository interface {
	Get(ctx context.Context) (*model.Configuracion, error)
	Upsert(ctx context.Context, c *model.Configuracion) error
}

type configuracionRepo struct{ db *gorm.DB }

func NewConfiguracionRepository(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) Get(ctx context.Context) (*model.Configuracion, error) {
	var c model.Configuracion
	err := r.db.WithContext(ctx).First(&c, "id = ?", model.ConfiguracionID).Error
	return &c, err
}

func (r *configuracionRepo) Upsert(ctx context.Context, c *model.Configuracion) error {
	c.ID = model.ConfiguracionID
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tasa_bcv", "updated_at"}),
	}).Create(c).Error
}
