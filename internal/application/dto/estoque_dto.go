package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstoqueResponse salida de un estoque (incluye nombre y unidad del material).
type EstoqueResponse struct {
	ID           string          `json:"id"`
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_nome"`
	Unit         string          `json:"unidade"`
	Quantity     decimal.Decimal `json:"quantidade"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
