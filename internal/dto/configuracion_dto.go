package dto

import "github.com/shopspring/decimal"

type ActualizarTasaRequest struct {
	TasaBCV decimal.Decimal `json:"tasa_bcv" validate:"required"`
}

type TasaResponse struct {
	TasaBCV decimal.Decimal `json:"tasa_bcv"`
}

type TasaActualizadaResponse struct {
	Mensaje string          `json:"mensaje"`
	TasaBCV decimal.Decimal `json:"tasa_bcv"`
}
