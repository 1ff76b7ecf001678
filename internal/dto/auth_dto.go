package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

type RegistroRequest struct {
	Correo             string  `json:"correo"              validate:"required,min=5,contains=@"`
	Password           string  `json:"contraseña"          validate:"required,min=6"`
	NombreUsuario      *string `json:"nombre_usuario"`
	DireccionPrincipal *string `json:"direccion_principal"`
}

type LoginRequest struct {
	Correo   string `json:"correo"     validate:"required"`
	Password string `json:"contraseña" validate:"required"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type SesionResponse struct {
	Mensaje   string `json:"mensaje"`
	UsuarioID string `json:"usuario_id"`
	Correo    string `json:"correo"`
}

type UsuarioActualResponse struct {
	UsuarioID          string  `json:"usuario_id"`
	Correo             string  `json:"correo"`
	IsAdmin            bool    `json:"is_admin"`
	NombreUsuario      *string `json:"nombre_usuario"`
	DireccionPrincipal *string `json:"direccion_principal"`
}
