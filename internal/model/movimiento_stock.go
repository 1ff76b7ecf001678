package model

import (
	"time"

	"github.com/google/uuid"
)

// MovimientoStock is an audit row written for every stock mutation.
// Tipo: "pedido" (checkout decrement) | "ajuste" (admin edit).
type MovimientoStock struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Tipo          string    `gorm:"type:varchar(20);not null"`
	Cantidad      int       `gorm:"not null"` // signed delta
	StockAnterior int       `gorm:"not null"`
	StockNuevo    int       `gorm:"not null"`
	Motivo        string
	ReferenciaID  *uuid.UUID `gorm:"type:uuid"` // pedido id when Tipo = "pedido"
	CreatedAt     time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (MovimientoStock) TableName() string { return "movimientos_stock" }
