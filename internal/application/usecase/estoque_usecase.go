package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/recycle-api/internal/application/dto"
	"github.com/jhoicas/recycle-api/internal/domain"
	"github.com/jhoicas/recycle-api/internal/domain/entity"
	"github.com/jhoicas/recycle-api/internal/domain/repository"
)

// EstoqueUseCase consultas de solo lectura sobre el estoque del usuario.
// Las cantidades cambian únicamente vía movimentações (inventory.MovimentacaoUseCase).
type EstoqueUseCase struct {
	repo       repository.EstoqueRepository
	generators map[string]EstoqueReportGenerator
}

// DefaultExportFormat se usa cuando el cliente no pide formato.
const DefaultExportFormat = "xlsx"

// NewEstoqueUseCase construye el caso de uso con los generadores de exportación disponibles.
func NewEstoqueUseCase(repo repository.EstoqueRepository, generators ...EstoqueReportGenerator) *EstoqueUseCase {
	uc := &EstoqueUseCase{repo: repo, generators: make(map[string]EstoqueReportGenerator, len(generators))}
	for _, g := range generators {
		uc.generators[g.Format()] = g
	}
	return uc
}

// List lista todos los estoques del usuario.
func (uc *EstoqueUseCase) List(ctx context.Context, userID string) ([]dto.EstoqueResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	items := make([]dto.EstoqueResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *ToEstoqueResponse(e))
	}
	return items, nil
}

// GetByID obtiene un estoque del usuario; ErrNotFound si no existe o es de otro usuario.
func (uc *EstoqueUseCase) GetByID(ctx context.Context, id, userID string) (*dto.EstoqueResponse, error) {
	e, err := uc.repo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return ToEstoqueResponse(e), nil
}

// GetByMaterial obtiene el estoque de un material del usuario.
func (uc *EstoqueUseCase) GetByMaterial(ctx context.Context, materialID, userID string) (*dto.EstoqueResponse, error) {
	e, err := uc.repo.GetByMaterialAndUser(ctx, materialID, userID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return ToEstoqueResponse(e), nil
}

// Export genera el archivo del estoque del usuario en el formato pedido ("" = xlsx).
// Devuelve el contenido y el nombre sugerido del archivo; ErrInvalidInput si el formato no existe.
func (uc *EstoqueUseCase) Export(ctx context.Context, userID, format string) ([]byte, string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = DefaultExportFormat
	}
	generator, ok := uc.generators[format]
	if !ok {
		return nil, "", fmt.Errorf("%w: formato de exportação %q", domain.ErrInvalidInput, format)
	}
	items, err := uc.List(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	content, err := generator.GenerateEstoqueReport(ctx, items)
	if err != nil {
		return nil, "", domain.Internal(fmt.Errorf("gerar relatório de estoque: %w", err))
	}
	filename := fmt.Sprintf("estoque_%s.%s", time.Now().UTC().Format("20060102"), format)
	return content, filename, nil
}

// ToEstoqueResponse mapea la entidad a su vista.
func ToEstoqueResponse(e *entity.Estoque) *dto.EstoqueResponse {
	if e == nil {
		return nil
	}
	return &dto.EstoqueResponse{
		ID:           e.ID,
		MaterialID:   e.MaterialID,
		MaterialName: e.MaterialName,
		Unit:         e.Unit,
		Quantity:     e.Quantity,
		UpdatedAt:    e.UpdatedAt,
	}
}
