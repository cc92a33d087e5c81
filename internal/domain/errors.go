package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio. Conjunto cerrado: los handlers los discriminan con errors.Is / errors.As.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrDuplicateName      = errors.New("ya existe un material con ese nombre")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInternal           = errors.New("error interno")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
)

// StockNotEmptyError bloquea la eliminación de un material que todavía tiene stock.
// Coincide con ErrConflict vía errors.Is.
type StockNotEmptyError struct {
	Quantity decimal.Decimal
	Unit     string
}

func (e *StockNotEmptyError) Error() string {
	return fmt.Sprintf(
		"Não é possível excluir este material pois ainda há %s%s em estoque. Para excluir o material, primeiro retire todo o estoque através de saídas.",
		e.Quantity.String(), e.Unit,
	)
}

func (e *StockNotEmptyError) Is(target error) bool {
	return target == ErrConflict
}

// Internal envuelve un fallo de infraestructura como ErrInternal conservando la causa.
// Los errores que ya pertenecen al dominio se devuelven tal cual.
func Internal(err error) error {
	if err == nil || IsDomainError(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

// IsDomainError indica si err pertenece al conjunto de errores de dominio.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrDuplicateName, ErrConflict, ErrInternal, ErrInvalidInput,
		ErrInsufficientStock, ErrUserNotFound, ErrEmailAlreadyExists, ErrUnauthorized,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
