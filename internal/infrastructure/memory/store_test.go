package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recycle-api/internal/domain"
	"github.com/jhoicas/recycle-api/internal/domain/entity"
	"github.com/jhoicas/recycle-api/internal/domain/repository"
	"github.com/jhoicas/recycle-api/internal/infrastructure/memory"
)

const owner = "u1"

func seedMaterial(t *testing.T, s *memory.Store, id, name string) {
	t.Helper()
	require.NoError(t, s.Materials().Create(context.Background(), &entity.Material{
		ID: id, UserID: owner, Name: name, Unit: "kg", CreatedAt: time.Now(),
	}))
}

func TestStore_RollbackAlFallar(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seedMaterial(t, s, "m1", "Papel")
	boom := errors.New("boom")

	err := s.Run(ctx, func(movRepo repository.MovimentacaoRepository, estoqueRepo repository.EstoqueRepository, _ repository.MaterialRepository) error {
		e, err := estoqueRepo.GetByMaterialForUpdate(ctx, "m1", owner)
		require.NoError(t, err)
		e.Quantity = decimal.NewFromInt(5)
		require.NoError(t, estoqueRepo.Upsert(ctx, e))
		require.NoError(t, movRepo.Create(ctx, &entity.Movimentacao{ID: "mv1", MaterialID: "m1", UserID: owner}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Estoques().GetByMaterialAndUser(ctx, "m1", owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	movs, err := s.Movimentacoes().ListByUser(ctx, owner, "")
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestStore_RollbackAlEntrarEnPanico(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seedMaterial(t, s, "m1", "Papel")

	assert.Panics(t, func() {
		_ = s.Run(ctx, func(movRepo repository.MovimentacaoRepository, estoqueRepo repository.EstoqueRepository, _ repository.MaterialRepository) error {
			e, err := estoqueRepo.GetByMaterialForUpdate(ctx, "m1", owner)
			require.NoError(t, err)
			e.Quantity = decimal.NewFromInt(5)
			require.NoError(t, estoqueRepo.Upsert(ctx, e))
			panic("boom")
		})
	})

	// el lock quedó libre y el estado es el previo a la transacción
	_, err := s.Estoques().GetByMaterialAndUser(ctx, "m1", owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_BorradoEnCascada(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seedMaterial(t, s, "m1", "Papel")
	seedMaterial(t, s, "m2", "Vidro")

	for _, id := range []string{"m1", "m2"} {
		require.NoError(t, s.Estoques().Upsert(ctx, &entity.Estoque{MaterialID: id, UserID: owner, Quantity: decimal.NewFromInt(1)}))
		require.NoError(t, s.Movimentacoes().Create(ctx, &entity.Movimentacao{ID: "mv-" + id, MaterialID: id, UserID: owner}))
	}

	require.NoError(t, s.Materials().Delete(ctx, "m1", owner))

	list, err := s.Estoques().ListByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Vidro", list[0].MaterialName)

	movs, err := s.Movimentacoes().ListByUser(ctx, owner, "")
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "m2", movs[0].MaterialID)
}

func TestEstoqueRepo_Upsert(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seedMaterial(t, s, "m1", "Papel")
	repo := s.Estoques()

	e := &entity.Estoque{MaterialID: "m1", UserID: owner, Quantity: decimal.NewFromInt(3)}
	require.NoError(t, repo.Upsert(ctx, e))
	firstID := e.ID
	require.NotEmpty(t, firstID)

	again := &entity.Estoque{MaterialID: "m1", UserID: owner, Quantity: decimal.NewFromInt(7)}
	require.NoError(t, repo.Upsert(ctx, again))
	assert.Equal(t, firstID, again.ID, "una fila por material y usuario")

	got, err := repo.GetByIDAndUser(ctx, firstID, owner)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(7)))

	assert.ErrorIs(t, repo.Upsert(ctx, &entity.Estoque{MaterialID: "m1", UserID: owner, Quantity: decimal.NewFromInt(-1)}), domain.ErrInsufficientStock)
	assert.ErrorIs(t, repo.Upsert(ctx, &entity.Estoque{MaterialID: "m1", UserID: "otro", Quantity: decimal.NewFromInt(1)}), domain.ErrNotFound)
}

func TestUserRepo_EmailUnico(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	repo := s.Users()

	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Email: "a@b.c"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.User{ID: "u2", Email: "a@b.c"}), domain.ErrEmailAlreadyExists)

	u, err := repo.GetByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	_, err = repo.GetByID(ctx, "u9")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
