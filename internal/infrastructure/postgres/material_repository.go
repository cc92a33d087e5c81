package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/recycle-api/internal/domain"
	"github.com/jhoicas/recycle-api/internal/domain/entity"
	"github.com/jhoicas/recycle-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, usuario_id, nome, descricao, unidade, created_at, updated_at`

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un nuevo material. La constraint uq_materiais_usuario_nome resuelve
// la carrera entre dos altas con el mismo nombre.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materiais (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.UserID, m.Name, m.Description, m.Unit, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByIDAndUser obtiene un material del usuario.
func (r *MaterialRepo) GetByIDAndUser(ctx context.Context, id, userID string) (*entity.Material, error) {
	return r.get(ctx, `SELECT `+materialColumns+` FROM materiais WHERE id = $1 AND usuario_id = $2`, id, userID)
}

// GetByIDAndUserForUpdate obtiene el material bloqueando su fila hasta el fin de la transacción.
func (r *MaterialRepo) GetByIDAndUserForUpdate(ctx context.Context, id, userID string) (*entity.Material, error) {
	return r.get(ctx, `SELECT `+materialColumns+` FROM materiais WHERE id = $1 AND usuario_id = $2 FOR UPDATE`, id, userID)
}

func (r *MaterialRepo) get(ctx context.Context, query, id, userID string) (*entity.Material, error) {
	if !validID(id, userID) {
		return nil, domain.ErrNotFound
	}
	m, err := scanMaterial(r.q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// ListByUser lista los materiales del usuario ordenados por nombre.
func (r *MaterialRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Material, error) {
	list := make([]*entity.Material, 0)
	if !validID(userID) {
		return list, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+materialColumns+` FROM materiais WHERE usuario_id = $1 ORDER BY nome, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list materiais: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ExistsByNameAndUser indica si el usuario ya tiene un material con ese nombre.
func (r *MaterialRepo) ExistsByNameAndUser(ctx context.Context, name, userID string) (bool, error) {
	if !validID(userID) {
		return false, nil
	}
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM materiais WHERE usuario_id = $1 AND nome = $2)`, userID, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists material: %w", err)
	}
	return exists, nil
}

// Update actualiza nombre, descripción y unidad.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	if !validID(m.ID, m.UserID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE materiais SET nome = $3, descricao = $4, unidade = $5, updated_at = $6
		WHERE id = $1 AND usuario_id = $2`
	tag, err := r.q.Exec(ctx, query, m.ID, m.UserID, m.Name, m.Description, m.Unit, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el material; estoques y movimentações caen por ON DELETE CASCADE.
func (r *MaterialRepo) Delete(ctx context.Context, id, userID string) error {
	if !validID(id, userID) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM materiais WHERE id = $1 AND usuario_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	if err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Description, &m.Unit, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
