package model

import (
	"time"

	"github.com/google/uuid"
)

// NombreSinCategoria is the sentinel category that absorbs products when
// their category is deleted. It is created lazily, at most once.
const NombreSinCategoria = "Sin Categoría"

// Categoria classifies products. Deleting a category never cascades to its
// products; they are reassigned to the sentinel first.
type Categoria struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Categoria) TableName() string { return "categorias" }
