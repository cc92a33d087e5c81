package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/recycle-api/internal/domain"
	"github.com/jhoicas/recycle-api/internal/domain/entity"
	"github.com/jhoicas/recycle-api/internal/domain/repository"
)

var _ repository.MovimentacaoRepository = (*MovimentacaoRepo)(nil)

// MovimentacaoRepo implementación de MovimentacaoRepository sobre PostgreSQL (usable con pool o tx).
type MovimentacaoRepo struct {
	q Querier
}

// NewMovimentacaoRepository construye el adaptador de movimentações. Pasar pool o tx (Querier).
func NewMovimentacaoRepository(q Querier) *MovimentacaoRepo {
	return &MovimentacaoRepo{q: q}
}

// Create registra una movimentação.
func (r *MovimentacaoRepo) Create(ctx context.Context, mov *entity.Movimentacao) error {
	query := `
		INSERT INTO movimentacoes (id, material_id, usuario_id, tipo, quantidade, saldo, observacao, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		mov.ID, mov.MaterialID, mov.UserID, mov.Type, mov.Quantity, mov.Balance, mov.Observation, mov.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert movimentacao: %w", err)
	}
	return nil
}

// ListByUser lista las movimentações del usuario, más recientes primero.
// materialID vacío = todos los materiales.
func (r *MovimentacaoRepo) ListByUser(ctx context.Context, userID, materialID string) ([]*entity.Movimentacao, error) {
	list := make([]*entity.Movimentacao, 0)
	if !validID(userID) || (materialID != "" && !validID(materialID)) {
		return list, nil
	}
	query := `
		SELECT id, material_id, usuario_id, tipo, quantidade, saldo, observacao, created_at
		FROM movimentacoes WHERE usuario_id = $1`
	args := []any{userID}
	if materialID != "" {
		query += ` AND material_id = $2`
		args = append(args, materialID)
	}
	query += ` ORDER BY created_at DESC, seq DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimentacoes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m entity.Movimentacao
		if err := rows.Scan(&m.ID, &m.MaterialID, &m.UserID, &m.Type, &m.Quantity, &m.Balance, &m.Observation, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimentacao: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
