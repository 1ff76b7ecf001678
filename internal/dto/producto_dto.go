package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,min=1,max=120"`
	Precio      decimal.Decimal `json:"precio"       validate:"min=0"`
	Stock       int             `json:"stock"        validate:"min=0"`
	ImagenURL   *string         `json:"imagen_url"`
	CategoriaID *string         `json:"categoria_id" validate:"omitempty,uuid"`
}

type ActualizarProductoRequest struct {
	Nombre    *string          `json:"nombre"     validate:"omitempty,min=1,max=120"`
	Precio    *decimal.Decimal `json:"precio"`
	Stock     *int             `json:"stock"`
	ImagenURL *string          `json:"imagen_url"`
	// CategoriaID: nil = unchanged, "" = clear, uuid = reassign.
	CategoriaID *string `json:"categoria_id"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID              string          `json:"id"`
	Nombre          string          `json:"nombre"`
	Precio          decimal.Decimal `json:"precio"`
	Stock           int             `json:"stock"`
	ImagenURL       *string         `json:"imagen_url"`
	CategoriaID     *string         `json:"categoria_id"`
	CategoriaNombre *string         `json:"categoria_nombre"`
}
