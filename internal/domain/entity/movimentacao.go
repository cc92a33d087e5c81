package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimentação de estoque.
const (
	MovementTypeEntrada = "ENTRADA"
	MovementTypeSaida   = "SAIDA"
)

// Movimentacao representa una entrada o salida de estoque de un material.
type Movimentacao struct {
	ID          string
	MaterialID  string
	UserID      string
	Type        string
	Quantity    decimal.Decimal // siempre positiva; el signo lo da Type
	Balance     decimal.Decimal // saldo del estoque después del movimiento
	Observation string
	CreatedAt   time.Time
}

// Límites de las columnas NUMERIC(14,3) de cantidades y saldos.
const QuantityScale = 3

// MaxQuantity es la primera magnitud que ya no cabe en la columna.
var MaxQuantity = decimal.New(1, 11)

// FitsQuantityColumn indica si q se guarda sin redondeo ni desbordamiento.
func FitsQuantityColumn(q decimal.Decimal) bool {
	return q.Abs().LessThan(MaxQuantity) && q.Equal(q.Truncate(QuantityScale))
}

// ValidQuantity indica si q sirve como cantidad de una movimentação.
func ValidQuantity(q decimal.Decimal) bool {
	return q.IsPositive() && FitsQuantityColumn(q)
}
