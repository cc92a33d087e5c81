package repository

import (
	"context"

	"github.com/jhoicas/recycle-api/internal/domain/entity"
)

// EstoqueRepository define el puerto para consultar/actualizar el estoque por material+usuario.
type EstoqueRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*entity.Estoque, error)
	GetByIDAndUser(ctx context.Context, id, userID string) (*entity.Estoque, error)
	GetByMaterialAndUser(ctx context.Context, materialID, userID string) (*entity.Estoque, error)
	// GetByMaterialForUpdate bloquea la fila (SELECT FOR UPDATE). Si no existe devuelve un
	// estoque con ID vacío y cantidad cero, listo para Upsert.
	GetByMaterialForUpdate(ctx context.Context, materialID, userID string) (*entity.Estoque, error)
	Upsert(ctx context.Context, estoque *entity.Estoque) error
}
