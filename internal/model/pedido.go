package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de pedido. The literals are consumed by the storefront as-is, so
// they stay in Spanish exactly as the admin panel displays them.
const (
	EstadoPendiente     = "Pendiente"
	EstadoPagoRevision  = "Pago Revisión"
	EstadoPagoRechazado = "Pago Rechazado"
	EstadoEnviado       = "Enviado"
	EstadoEntregado     = "Entregado"
)

// EstadosValidos lists every order state an admin may set.
var EstadosValidos = []string{
	EstadoPendiente,
	EstadoPagoRevision,
	EstadoPagoRechazado,
	EstadoEnviado,
	EstadoEntregado,
}

// EsEstadoValido reports whether estado is one of the five known states.
func EsEstadoValido(estado string) bool {
	for _, e := range EstadosValidos {
		if e == estado {
			return true
		}
	}
	return false
}

// ItemCarrito is one line of the immutable cart snapshot. Nombre and Precio
// are frozen at purchase time so later catalog edits never rewrite history.
type ItemCarrito struct {
	ProductoID uuid.UUID       `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Precio     decimal.Decimal `json:"precio"`
	Cantidad   int             `json:"cantidad"`
}

// Pedido is an order against the manual pago-móvil flow. ProductosJSON holds
// the serialized cart snapshot as an opaque blob; it is returned to clients
// verbatim and never re-joined against the live catalog.
type Pedido struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID         *uuid.UUID      `gorm:"type:uuid;index"`
	Total             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ProductosJSON     string          `gorm:"type:text;not null"`
	Estado            string          `gorm:"type:varchar(50);not null;default:'Pendiente';index"`
	FechaCreacion     time.Time       `gorm:"not null;index"`
	ReferenciaPago    *string
	FechaConfirmacion *time.Time
	MotivoRechazo     *string
	DireccionEntrega  string `gorm:"type:text;not null"`

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (Pedido) TableName() string { return "pedidos" }
