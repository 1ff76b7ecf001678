package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CrearCategoriaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=100"`
}

type ActualizarCategoriaRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=1,max=100"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CategoriaResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}
