package dto

import (
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemCarritoRequest is one checkout line. Nombre and Precio are optional
// display hints from the storefront; the engine resolves them from the catalog
// when building the snapshot.
type ItemCarritoRequest struct {
	ProductoID string `json:"id"       validate:"required,uuid"`
	Cantidad   int    `json:"cantidad" validate:"required,min=1"`
}

type CrearPedidoRequest struct {
	Carrito          []ItemCarritoRequest `json:"carrito"          validate:"required,min=1,dive"`
	Total            decimal.Decimal      `json:"total"            validate:"required"`
	DireccionEntrega string               `json:"direccion_pedido" validate:"required"`
}

type ConfirmarPagoRequest struct {
	PedidoID       string `json:"pedido_id"       validate:"required,uuid"`
	ReferenciaPago string `json:"referencia_pago" validate:"required"`
}

type ActualizarEstadoRequest struct {
	PedidoID      string `json:"pedido_id"      validate:"required,uuid"`
	NuevoEstado   string `json:"nuevo_estado"   validate:"required"`
	MotivoRechazo string `json:"motivo_rechazo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PedidoCreadoResponse struct {
	ID            string          `json:"id"`
	Total         decimal.Decimal `json:"total"`
	Estado        string          `json:"estado"`
	FechaCreacion string          `json:"fecha_creacion"`
}

type ConfirmacionPagoResponse struct {
	Mensaje        string `json:"mensaje"`
	PedidoID       string `json:"pedido_id"`
	Estado         string `json:"estado"`
	ReferenciaPago string `json:"referencia_pago"`
}

type EstadoPedidoResponse struct {
	Mensaje  string `json:"mensaje"`
	PedidoID string `json:"pedido_id"`
	Estado   string `json:"estado"`
}

type PedidoResumenResponse struct {
	ID     string          `json:"id"`
	Total  decimal.Decimal `json:"total"`
	Estado string          `json:"estado"`
}

// ItemCarritoResponse mirrors the stored snapshot line.
type ItemCarritoResponse struct {
	ProductoID string          `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Precio     decimal.Decimal `json:"precio"`
	Cantidad   int             `json:"cantidad"`
}

type PedidoResponse struct {
	ID                string                `json:"id"`
	Total             decimal.Decimal       `json:"total"`
	Estado            string                `json:"estado"`
	Productos         []ItemCarritoResponse `json:"productos"`
	ReferenciaPago    *string               `json:"referencia_pago"`
	MotivoRechazo     *string               `json:"motivo_rechazo"`
	DireccionEntrega  string                `json:"direccion_pedido,omitempty"`
	NombreUsuario     *string               `json:"nombre_usuario,omitempty"`
	FechaCreacion     string                `json:"fecha_creacion"`
	FechaConfirmacion *string               `json:"fecha_confirmacion"`
}
