package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estoque representa la cantidad disponible de un material para su dueño.
// Una fila por (material, usuario); Quantity nunca es negativa.
type Estoque struct {
	ID           string
	MaterialID   string
	UserID       string
	Quantity     decimal.Decimal
	MaterialName string // solo lectura (join con materiais)
	Unit         string // solo lectura (join con materiais)
	UpdatedAt    time.Time
}
