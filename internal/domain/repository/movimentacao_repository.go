package repository

import (
	"context"

	"github.com/jhoicas/recycle-api/internal/domain/entity"
)

// MovimentacaoRepository define el puerto de persistencia para movimentações de estoque.
type MovimentacaoRepository interface {
	Create(ctx context.Context, mov *entity.Movimentacao) error
	// ListByUser lista las movimentações del usuario; materialID vacío = todos los materiales.
	ListByUser(ctx context.Context, userID, materialID string) ([]*entity.Movimentacao, error)
}
