package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/recycle-api/internal/application/dto"
	"github.com/jhoicas/recycle-api/internal/domain"
	"github.com/jhoicas/recycle-api/internal/domain/entity"
	"github.com/jhoicas/recycle-api/internal/domain/repository"
	"github.com/jhoicas/recycle-api/pkg/logger"
)

// MovimentacaoUseCase registra entradas y salidas de estoque de forma transaccional,
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback. Es el único escritor del estoque.
type MovimentacaoUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovimentacaoRepository
	log      *logger.Logger
}

// NewMovimentacaoUseCase construye el caso de uso.
func NewMovimentacaoUseCase(txRunner TxRunner, movRepo repository.MovimentacaoRepository, log *logger.Logger) *MovimentacaoUseCase {
	return &MovimentacaoUseCase{txRunner: txRunner, movRepo: movRepo, log: log.Named("movimentacao")}
}

// Register valida el material del usuario, bloquea su fila de estoque, aplica ENTRADA (suma)
// o SAIDA (resta; ErrInsufficientStock si quedaría negativo), hace upsert del estoque y guarda el movimiento.
func (uc *MovimentacaoUseCase) Register(ctx context.Context, userID string, in dto.RegisterMovimentacaoRequest) (*dto.MovimentacaoResponse, error) {
	if in.MaterialID == "" || !entity.ValidQuantity(in.Quantity) {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeEntrada && in.Type != entity.MovementTypeSaida {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	var mov *entity.Movimentacao
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovimentacaoRepository,
		estoqueRepo repository.EstoqueRepository,
		materialRepo repository.MaterialRepository,
	) error {
		if _, err := materialRepo.GetByIDAndUser(ctx, in.MaterialID, userID); err != nil {
			return err
		}
		estoque, err := estoqueRepo.GetByMaterialForUpdate(ctx, in.MaterialID, userID)
		if err != nil {
			return err
		}
		switch in.Type {
		case entity.MovementTypeEntrada:
			estoque.Quantity = estoque.Quantity.Add(in.Quantity)
			if !entity.FitsQuantityColumn(estoque.Quantity) {
				return fmt.Errorf("%w: saldo excede el máximo permitido", domain.ErrInvalidInput)
			}
		case entity.MovementTypeSaida:
			if estoque.Quantity.LessThan(in.Quantity) {
				return domain.ErrInsufficientStock
			}
			estoque.Quantity = estoque.Quantity.Sub(in.Quantity)
		}
		estoque.UpdatedAt = now
		if err := estoqueRepo.Upsert(ctx, estoque); err != nil {
			return err
		}
		mov = &entity.Movimentacao{
			ID:          uuid.New().String(),
			MaterialID:  in.MaterialID,
			UserID:      userID,
			Type:        in.Type,
			Quantity:    in.Quantity,
			Balance:     estoque.Quantity,
			Observation: strings.TrimSpace(in.Observation),
			CreatedAt:   now,
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		if domain.IsDomainError(err) {
			uc.log.Debug().Err(err).Str("user_id", userID).Str("material_id", in.MaterialID).Msg("movimentação rejeitada")
		}
		return nil, domain.Internal(err)
	}
	uc.log.Info().
		Str("user_id", userID).
		Str("material_id", in.MaterialID).
		Str("tipo", mov.Type).
		Str("saldo", mov.Balance.String()).
		Msg("movimentação registrada")
	return toMovimentacaoResponse(mov), nil
}

// List lista las movimentações del usuario (más recientes primero); materialID vacío = todas.
func (uc *MovimentacaoUseCase) List(ctx context.Context, userID, materialID string) ([]dto.MovimentacaoResponse, error) {
	list, err := uc.movRepo.ListByUser(ctx, userID, materialID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	items := make([]dto.MovimentacaoResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovimentacaoResponse(m))
	}
	return items, nil
}

func toMovimentacaoResponse(m *entity.Movimentacao) *dto.MovimentacaoResponse {
	return &dto.MovimentacaoResponse{
		ID:          m.ID,
		MaterialID:  m.MaterialID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Balance:     m.Balance,
		Observation: m.Observation,
		CreatedAt:   m.CreatedAt,
	}
}
