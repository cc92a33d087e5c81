package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/recycle-api/internal/domain"
	"github.com/jhoicas/recycle-api/internal/domain/entity"
	"github.com/jhoicas/recycle-api/internal/domain/repository"
)

var _ repository.EstoqueRepository = (*EstoqueRepo)(nil)

// EstoqueRepo implementación en memoria de EstoqueRepository.
type EstoqueRepo struct {
	base
}

// ListByUser lista los estoques del usuario ordenados por nombre de material.
func (r *EstoqueRepo) ListByUser(_ context.Context, userID string) ([]*entity.Estoque, error) {
	defer r.lock()()
	list := make([]*entity.Estoque, 0)
	for _, e := range r.s.estoques {
		if e.UserID == userID {
			list = append(list, r.withMaterial(e))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].MaterialName < list[j].MaterialName })
	return list, nil
}

// GetByIDAndUser obtiene un estoque del usuario.
func (r *EstoqueRepo) GetByIDAndUser(_ context.Context, id, userID string) (*entity.Estoque, error) {
	defer r.lock()()
	e, ok := r.s.estoques[id]
	if !ok || e.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return r.withMaterial(e), nil
}

// GetByMaterialAndUser obtiene el estoque de un material del usuario.
func (r *EstoqueRepo) GetByMaterialAndUser(_ context.Context, materialID, userID string) (*entity.Estoque, error) {
	defer r.lock()()
	e, ok := r.find(materialID, userID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.withMaterial(e), nil
}

// GetByMaterialForUpdate devuelve el estoque o uno vacío con cantidad cero.
// Dentro de una transacción el lock del store ya serializa el acceso.
func (r *EstoqueRepo) GetByMaterialForUpdate(_ context.Context, materialID, userID string) (*entity.Estoque, error) {
	defer r.lock()()
	e, ok := r.find(materialID, userID)
	if !ok {
		return &entity.Estoque{MaterialID: materialID, UserID: userID, Quantity: decimal.Zero}, nil
	}
	return r.withMaterial(e), nil
}

// Upsert inserta o actualiza la cantidad del estoque (por material y usuario).
func (r *EstoqueRepo) Upsert(_ context.Context, estoque *entity.Estoque) error {
	defer r.lock()()
	if estoque.Quantity.IsNegative() {
		return domain.ErrInsufficientStock
	}
	if m, ok := r.s.materials[estoque.MaterialID]; !ok || m.UserID != estoque.UserID {
		return domain.ErrNotFound
	}
	if current, ok := r.find(estoque.MaterialID, estoque.UserID); ok {
		estoque.ID = current.ID
	} else if estoque.ID == "" {
		estoque.ID = uuid.New().String()
	}
	stored := *estoque
	stored.MaterialName, stored.Unit = "", ""
	r.s.estoques[estoque.ID] = stored
	return nil
}

func (r *EstoqueRepo) find(materialID, userID string) (entity.Estoque, bool) {
	for _, e := range r.s.estoques {
		if e.MaterialID == materialID && e.UserID == userID {
			return e, true
		}
	}
	return entity.Estoque{}, false
}

func (r *EstoqueRepo) withMaterial(e entity.Estoque) *entity.Estoque {
	if m, ok := r.s.materials[e.MaterialID]; ok {
		e.MaterialName = m.Name
		e.Unit = m.Unit
	}
	return &e
}
