package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores registered store customers. IsAdmin marks the staff account
// that drives the admin panel; it is granted at registration time when the
// email matches the configured admin address, never via a runtime UI.
type Usuario struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Correo             string    `gorm:"uniqueIndex;not null"`
	PasswordHash       string    `gorm:"not null"`
	IsAdmin            bool      `gorm:"not null;default:false"`
	NombreUsuario      *string
	DireccionPrincipal *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Usuario) TableName() string { return "usuarios" }
