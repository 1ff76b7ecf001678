package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConfiguracionID is the fixed primary key of the singleton row. Every read
// and upsert targets this id, so the table can never grow past one row.
const ConfiguracionID = 1

// Configuracion holds store-wide settings. Currently a single scalar: the BCV
// exchange rate used by the storefront for currency display.
type Configuracion struct {
	ID        int             `gorm:"primaryKey"`
	TasaBCV   decimal.Decimal `gorm:"type:decimal(12,4);not null;column:tasa_bcv"`
	UpdatedAt time.Time
}

func (Configuracion) TableName() string { return "configuracion" }
