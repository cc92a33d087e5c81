package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/recycle-api/internal/domain"
	"github.com/jhoicas/recycle-api/internal/domain/entity"
	"github.com/jhoicas/recycle-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación en memoria de MaterialRepository.
type MaterialRepo struct {
	base
}

// Create persiste un material; ErrDuplicateName si el usuario ya tiene ese nombre.
func (r *MaterialRepo) Create(_ context.Context, material *entity.Material) error {
	defer r.lock()()
	if r.nameTaken(material.UserID, material.Name, "") {
		return domain.ErrDuplicateName
	}
	r.s.materials[material.ID] = *material
	return nil
}

// GetByIDAndUser obtiene un material del usuario.
func (r *MaterialRepo) GetByIDAndUser(_ context.Context, id, userID string) (*entity.Material, error) {
	defer r.lock()()
	m, ok := r.s.materials[id]
	if !ok || m.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

// GetByIDAndUserForUpdate equivale a GetByIDAndUser; el lock del store ya serializa la transacción.
func (r *MaterialRepo) GetByIDAndUserForUpdate(ctx context.Context, id, userID string) (*entity.Material, error) {
	return r.GetByIDAndUser(ctx, id, userID)
}

// ListByUser lista los materiales del usuario ordenados por nombre.
func (r *MaterialRepo) ListByUser(_ context.Context, userID string) ([]*entity.Material, error) {
	defer r.lock()()
	list := make([]*entity.Material, 0)
	for _, m := range r.s.materials {
		if m.UserID == userID {
			m := m
			list = append(list, &m)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// ExistsByNameAndUser indica si el usuario ya tiene un material con ese nombre.
func (r *MaterialRepo) ExistsByNameAndUser(_ context.Context, name, userID string) (bool, error) {
	defer r.lock()()
	return r.nameTaken(userID, name, ""), nil
}

// Update sobrescribe nombre, descripción y unidad.
func (r *MaterialRepo) Update(_ context.Context, material *entity.Material) error {
	defer r.lock()()
	current, ok := r.s.materials[material.ID]
	if !ok || current.UserID != material.UserID {
		return domain.ErrNotFound
	}
	if r.nameTaken(material.UserID, material.Name, material.ID) {
		return domain.ErrDuplicateName
	}
	current.Name = material.Name
	current.Description = material.Description
	current.Unit = material.Unit
	current.UpdatedAt = material.UpdatedAt
	r.s.materials[material.ID] = current
	return nil
}

// Delete elimina el material y, en cascada, su estoque y movimentações.
func (r *MaterialRepo) Delete(_ context.Context, id, userID string) error {
	defer r.lock()()
	m, ok := r.s.materials[id]
	if !ok || m.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.materials, id)
	for k, e := range r.s.estoques {
		if e.MaterialID == id {
			delete(r.s.estoques, k)
		}
	}
	kept := r.s.movs[:0]
	for _, mov := range r.s.movs {
		if mov.MaterialID != id {
			kept = append(kept, mov)
		}
	}
	r.s.movs = kept
	return nil
}

func (r *MaterialRepo) nameTaken(userID, name, exceptID string) bool {
	for id, m := range r.s.materials {
		if m.UserID == userID && m.Name == name && id != exceptID {
			return true
		}
	}
	return false
}
