package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/recycle-api/internal/application/dto"
	"github.com/jhoicas/recycle-api/internal/domain"
	"github.com/jhoicas/recycle-api/internal/domain/entity"
	"github.com/jhoicas/recycle-api/internal/domain/repository"
	"github.com/jhoicas/recycle-api/pkg/logger"
)

// MaterialUseCase casos de uso CRUD para materiales, siempre acotados al usuario dueño.
type MaterialUseCase struct {
	repo     repository.MaterialRepository
	txRunner MaterialTxRunner
	log      *logger.Logger
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository, txRunner MaterialTxRunner, log *logger.Logger) *MaterialUseCase {
	return &MaterialUseCase{repo: repo, txRunner: txRunner, log: log.Named("material")}
}

// Create crea un material para userID. ErrDuplicateName si el usuario ya tiene uno con ese nombre;
// la constraint única de la tabla cubre el caso de dos creaciones concurrentes.
func (uc *MaterialUseCase) Create(ctx context.Context, userID string, in dto.MaterialRequest) (*dto.MaterialResponse, error) {
	name := entity.NormalizeName(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	exists, err := uc.repo.ExistsByNameAndUser(ctx, name, userID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if exists {
		uc.log.Debug().Str("user_id", userID).Str("nome", name).Msg("material duplicado")
		return nil, domain.ErrDuplicateName
	}
	now := time.Now().UTC()
	material := &entity.Material{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Unit:        strings.TrimSpace(in.Unit),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, material); err != nil {
		return nil, domain.Internal(err)
	}
	uc.log.Info().Str("user_id", userID).Str("material_id", material.ID).Msg("material criado")
	return toMaterialResponse(material), nil
}

// GetByID obtiene un material del usuario. Un material de otro usuario responde igual que uno inexistente.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id, userID string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return toMaterialResponse(material), nil
}

// List lista todos los materiales del usuario.
func (uc *MaterialUseCase) List(ctx context.Context, userID string) ([]dto.MaterialResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return items, nil
}

// Update sobrescribe nome, descricao y unidade. Renombrar al mismo nombre actual no es duplicado.
func (uc *MaterialUseCase) Update(ctx context.Context, id, userID string, in dto.MaterialRequest) (*dto.MaterialResponse, error) {
	name := entity.NormalizeName(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	material, err := uc.repo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if material.Name != name {
		exists, err := uc.repo.ExistsByNameAndUser(ctx, name, userID)
		if err != nil {
			return nil, domain.Internal(err)
		}
		if exists {
			uc.log.Debug().Str("user_id", userID).Str("nome", name).Msg("renombrado a nombre duplicado")
			return nil, domain.ErrDuplicateName
		}
	}
	material.Name = name
	material.Description = strings.TrimSpace(in.Description)
	material.Unit = strings.TrimSpace(in.Unit)
	material.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, material); err != nil {
		return nil, domain.Internal(err)
	}
	return toMaterialResponse(material), nil
}

// Delete elimina un material del usuario. Si su estoque tiene cantidad positiva devuelve
// *domain.StockNotEmptyError (ErrConflict) con la cantidad que bloquea la eliminación.
// Material y estoque se leen con bloqueo de fila: una entrada concurrente espera al borrado
// (y luego falla con ErrNotFound) o el borrado espera a la entrada y ve su cantidad.
func (uc *MaterialUseCase) Delete(ctx context.Context, id, userID string) error {
	err := uc.txRunner.RunMaterial(ctx, func(
		materialRepo repository.MaterialRepository,
		estoqueRepo repository.EstoqueRepository,
	) error {
		material, err := materialRepo.GetByIDAndUserForUpdate(ctx, id, userID)
		if err != nil {
			return err
		}
		estoque, err := estoqueRepo.GetByMaterialForUpdate(ctx, id, userID)
		if err != nil {
			return err
		}
		if estoque.Quantity.IsPositive() {
			return &domain.StockNotEmptyError{Quantity: estoque.Quantity, Unit: material.Unit}
		}
		return materialRepo.Delete(ctx, id, userID)
	})
	if err != nil {
		if domain.IsDomainError(err) {
			uc.log.Debug().Err(err).Str("user_id", userID).Str("material_id", id).Msg("exclusão rejeitada")
		}
		return domain.Internal(err)
	}
	uc.log.Info().Str("user_id", userID).Str("material_id", id).Msg("material excluído")
	return nil
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Unit:        m.Unit,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
