package usecase

import (
	"context"

	"github.com/jhoicas/recycle-api/internal/application/dto"
	"github.com/jhoicas/recycle-api/internal/domain/repository"
)

// MaterialTxRunner ejecuta fn dentro de una transacción con repos de material y estoque atados a ella.
// Lo usa Delete para verificar el estoque y borrar el material en una sola unidad de trabajo.
type MaterialTxRunner interface {
	RunMaterial(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		estoqueRepo repository.EstoqueRepository,
	) error) error
}

// EstoqueReportGenerator genera el archivo de exportación del estoque de un usuario.
// Format identifica el generador y es también la extensión del archivo ("xlsx", "pdf").
type EstoqueReportGenerator interface {
	Format() string
	GenerateEstoqueReport(ctx context.Context, items []dto.EstoqueResponse) ([]byte, error)
}
