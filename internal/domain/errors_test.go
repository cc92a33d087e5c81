package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/recycle-api/internal/domain"
)

func TestStockNotEmptyError_EsConflicto(t *testing.T) {
	err := error(&domain.StockNotEmptyError{Quantity: decimal.NewFromInt(10), Unit: "kg"})

	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "10kg")

	var target *domain.StockNotEmptyError
	assert.True(t, errors.As(fmt.Errorf("delete: %w", err), &target))
	assert.True(t, target.Quantity.Equal(decimal.NewFromInt(10)))
}

func TestInternal_EnvuelveSoloErroresDeInfraestructura(t *testing.T) {
	assert.Nil(t, domain.Internal(nil))
	assert.Same(t, domain.ErrNotFound, domain.Internal(domain.ErrNotFound))

	cause := errors.New("connection refused")
	err := domain.Internal(cause)
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.ErrorIs(t, err, cause)
}
