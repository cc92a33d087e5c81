package dto

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/recycle-api/internal/domain/entity"
)

// RegisterMovimentacaoRequest body para POST /api/movimentacoes.
type RegisterMovimentacaoRequest struct {
	MaterialID  string          `json:"material_id"`
	Type        string          `json:"tipo"`
	Quantity    decimal.Decimal `json:"quantidade"`
	Observation string          `json:"observacao"`
}

// Validate exige material, tipo ENTRADA/SAIDA y cantidad positiva con hasta 3 decimales.
func (r *RegisterMovimentacaoRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.MaterialID, validation.Required),
		validation.Field(&r.Type, validation.Required, validation.In(entity.MovementTypeEntrada, entity.MovementTypeSaida)),
		validation.Field(&r.Quantity, validation.By(movementQuantity)),
		validation.Field(&r.Observation, validation.RuneLength(0, 255)),
	)
}

func movementQuantity(value interface{}) error {
	q, ok := value.(decimal.Decimal)
	switch {
	case !ok || !q.IsPositive():
		return errors.New("debe ser mayor que cero")
	case !q.Equal(q.Truncate(entity.QuantityScale)):
		return errors.New("admite como máximo 3 decimales")
	case !q.LessThan(entity.MaxQuantity):
		return errors.New("excede el máximo permitido")
	}
	return nil
}

// MovimentacaoResponse salida de una movimentação.
type MovimentacaoResponse struct {
	ID          string          `json:"id"`
	MaterialID  string          `json:"material_id"`
	Type        string          `json:"tipo"`
	Quantity    decimal.Decimal `json:"quantidade"`
	Balance     decimal.Decimal `json:"saldo"`
	Observation string          `json:"observacao"`
	CreatedAt   time.Time       `json:"created_at"`
}
