package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/recycle-api/internal/domain"
	"github.com/jhoicas/recycle-api/internal/domain/entity"
	"github.com/jhoicas/recycle-api/internal/domain/repository"
)

var _ repository.EstoqueRepository = (*EstoqueRepo)(nil)

const estoqueSelect = `
	SELECT e.id, e.material_id, e.usuario_id, e.quantidade, e.updated_at, m.nome, m.unidade
	FROM estoques e
	JOIN materiais m ON m.id = e.material_id`

// EstoqueRepo implementación de EstoqueRepository sobre PostgreSQL (usable con pool o tx).
type EstoqueRepo struct {
	q Querier
}

// NewEstoqueRepository construye el adaptador de estoque. Pasar pool o tx (Querier).
func NewEstoqueRepository(q Querier) *EstoqueRepo {
	return &EstoqueRepo{q: q}
}

// ListByUser lista los estoques del usuario con nombre y unidad del material.
func (r *EstoqueRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Estoque, error) {
	list := make([]*entity.Estoque, 0)
	if !validID(userID) {
		return list, nil
	}
	rows, err := r.q.Query(ctx, estoqueSelect+` WHERE e.usuario_id = $1 ORDER BY m.nome, e.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list estoques: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		e, err := scanEstoque(rows)
		if err != nil {
			return nil, fmt.Errorf("scan estoque: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// GetByIDAndUser obtiene un estoque del usuario.
func (r *EstoqueRepo) GetByIDAndUser(ctx context.Context, id, userID string) (*entity.Estoque, error) {
	if !validID(id, userID) {
		return nil, domain.ErrNotFound
	}
	e, err := scanEstoque(r.q.QueryRow(ctx, estoqueSelect+` WHERE e.id = $1 AND e.usuario_id = $2`, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get estoque: %w", err)
	}
	return e, nil
}

// GetByMaterialAndUser obtiene el estoque de un material del usuario.
func (r *EstoqueRepo) GetByMaterialAndUser(ctx context.Context, materialID, userID string) (*entity.Estoque, error) {
	if !validID(materialID, userID) {
		return nil, domain.ErrNotFound
	}
	e, err := scanEstoque(r.q.QueryRow(ctx,
		estoqueSelect+` WHERE e.material_id = $1 AND e.usuario_id = $2`, materialID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get estoque by material: %w", err)
	}
	return e, nil
}

// GetByMaterialForUpdate obtiene el estoque y bloquea la fila (SELECT ... FOR UPDATE OF e).
// Sin fila devuelve un estoque vacío con cantidad cero.
func (r *EstoqueRepo) GetByMaterialForUpdate(ctx context.Context, materialID, userID string) (*entity.Estoque, error) {
	empty := &entity.Estoque{MaterialID: materialID, UserID: userID, Quantity: decimal.Zero}
	if !validID(materialID, userID) {
		return empty, nil
	}
	e, err := scanEstoque(r.q.QueryRow(ctx,
		estoqueSelect+` WHERE e.material_id = $1 AND e.usuario_id = $2 FOR UPDATE OF e`, materialID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return empty, nil
		}
		return nil, fmt.Errorf("get estoque for update: %w", err)
	}
	return e, nil
}

// Upsert inserta o actualiza la cantidad (por material y usuario) y completa ID y UpdatedAt.
func (r *EstoqueRepo) Upsert(ctx context.Context, e *entity.Estoque) error {
	if !validID(e.MaterialID, e.UserID) {
		return domain.ErrNotFound
	}
	if e.ID == "" {
		e.ID = newID()
	}
	query := `
		INSERT INTO estoques (id, material_id, usuario_id, quantidade, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (material_id, usuario_id)
		DO UPDATE SET quantidade = EXCLUDED.quantidade, updated_at = now()
		RETURNING id, updated_at`
	err := r.q.QueryRow(ctx, query, e.ID, e.MaterialID, e.UserID, e.Quantity).Scan(&e.ID, &e.UpdatedAt)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			// el material se borró en otra transacción
			return domain.ErrNotFound
		case hasCode(err, pgerrcode.CheckViolation):
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("upsert estoque: %w", err)
	}
	return nil
}

func scanEstoque(row pgx.Row) (*entity.Estoque, error) {
	var e entity.Estoque
	if err := row.Scan(&e.ID, &e.MaterialID, &e.UserID, &e.Quantity, &e.UpdatedAt, &e.MaterialName, &e.Unit); err != nil {
		return nil, err
	}
	return &e, nil
}
