package inventory

import (
	"context"

	"github.com/jhoicas/recycle-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para las movimentações de estoque.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovimentacaoRepository,
		estoqueRepo repository.EstoqueRepository,
		materialRepo repository.MaterialRepository,
	) error) error
}
