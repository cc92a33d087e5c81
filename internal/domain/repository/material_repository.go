package repository

import (
	"context"

	"github.com/jhoicas/recycle-api/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para Material (DIP).
// Todas las operaciones están acotadas al usuario dueño: nunca devuelven ni modifican
// materiales de otro usuario. Un material ausente o ajeno produce domain.ErrNotFound.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByIDAndUser(ctx context.Context, id, userID string) (*entity.Material, error)
	// GetByIDAndUserForUpdate bloquea la fila del material (SELECT FOR UPDATE) dentro de una transacción.
	GetByIDAndUserForUpdate(ctx context.Context, id, userID string) (*entity.Material, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Material, error)
	ExistsByNameAndUser(ctx context.Context, name, userID string) (bool, error)
	Update(ctx context.Context, material *entity.Material) error
	Delete(ctx context.Context, id, userID string) error
}
