package memory

import (
	"context"

	"github.com/jhoicas/recycle-api/internal/domain/entity"
	"github.com/jhoicas/recycle-api/internal/domain/repository"
)

var _ repository.MovimentacaoRepository = (*MovimentacaoRepo)(nil)

// MovimentacaoRepo implementación en memoria de MovimentacaoRepository.
type MovimentacaoRepo struct {
	base
}

// Create agrega una movimentação.
func (r *MovimentacaoRepo) Create(_ context.Context, mov *entity.Movimentacao) error {
	defer r.lock()()
	r.s.movs = append(r.s.movs, *mov)
	return nil
}

// ListByUser lista las movimentações del usuario, más recientes primero.
func (r *MovimentacaoRepo) ListByUser(_ context.Context, userID, materialID string) ([]*entity.Movimentacao, error) {
	defer r.lock()()
	list := make([]*entity.Movimentacao, 0)
	for i := len(r.s.movs) - 1; i >= 0; i-- {
		m := r.s.movs[i]
		if m.UserID != userID || (materialID != "" && m.MaterialID != materialID) {
			continue
		}
		list = append(list, &m)
	}
	return list, nil
}
