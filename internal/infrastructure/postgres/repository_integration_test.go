package postgres_test

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recycle-api/internal/domain"
	"github.com/jhoicas/recycle-api/internal/domain/entity"
	"github.com/jhoicas/recycle-api/internal/domain/repository"
	"github.com/jhoicas/recycle-api/internal/infrastructure/postgres"
	"github.com/jhoicas/recycle-api/pkg/config"
)

// testPool queda en nil cuando no hay Docker o se corre con -short; los tests se saltan.
var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	dp, err := dockertest.NewPool("")
	if err == nil {
		err = dp.Client.Ping()
	}
	if err != nil {
		log.Printf("docker no disponible, se saltan los tests de integración: %v", err)
		os.Exit(m.Run())
	}

	resource, err := dp.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env:        []string{"POSTGRES_USER=app", "POSTGRES_PASSWORD=secret", "POSTGRES_DB=recycle"},
	})
	if err != nil {
		log.Fatalf("levantar postgres: %v", err)
	}
	_ = resource.Expire(180)

	dsn := fmt.Sprintf("postgres://app:secret@%s/recycle?sslmode=disable", resource.GetHostPort("5432/tcp"))
	dp.MaxWait = 90 * time.Second
	if err := dp.Retry(func() error {
		pool, err := postgres.NewPool(context.Background(), config.DBConfig{DatabaseURL: dsn})
		if err != nil {
			return err
		}
		testPool = pool
		return nil
	}); err != nil {
		_ = dp.Purge(resource)
		log.Fatalf("conectar a postgres: %v", err)
	}
	if err := postgres.MigrateUp(dsn); err != nil {
		_ = dp.Purge(resource)
		log.Fatalf("migraciones: %v", err)
	}

	code := m.Run()
	testPool.Close()
	_ = dp.Purge(resource)
	os.Exit(code)
}

func requireDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testPool == nil {
		t.Skip("requiere PostgreSQL (docker)")
	}
	return testPool
}

func createUser(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	now := time.Now().UTC()
	u := &entity.User{
		ID:           uuid.New().String(),
		Name:         "Cooperativa",
		Email:        uuid.New().String() + "@recicla.test",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, postgres.NewUserRepository(pool).Create(context.Background(), u))
	return u.ID
}

func createMaterial(t *testing.T, repo repository.MaterialRepository, userID, name string) *entity.Material {
	t.Helper()
	now := time.Now().UTC()
	m := &entity.Material{ID: uuid.New().String(), UserID: userID, Name: name, Unit: "kg", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(context.Background(), m))
	return m
}

func TestUserRepo_EmailUnico(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	repo := postgres.NewUserRepository(pool)

	id := createUser(t, pool)
	u, err := repo.GetByID(ctx, id)
	require.NoError(t, err)

	dup := *u
	dup.ID = uuid.New().String()
	assert.ErrorIs(t, repo.Create(ctx, &dup), domain.ErrEmailAlreadyExists)

	_, err = repo.GetByEmail(ctx, "nadie@recicla.test")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = repo.GetByID(ctx, "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestMaterialRepo_CRUDYAislamiento(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	repo := postgres.NewMaterialRepository(pool)
	owner := createUser(t, pool)
	other := createUser(t, pool)

	vidro := createMaterial(t, repo, owner, "Vidro")
	createMaterial(t, repo, owner, "Alumínio")

	dup := &entity.Material{ID: uuid.New().String(), UserID: owner, Name: "Vidro", Unit: "kg"}
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrDuplicateName)

	// el mismo nombre en otro usuario es válido
	createMaterial(t, repo, other, "Vidro")

	list, err := repo.ListByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alumínio", list[0].Name)

	_, err = repo.GetByIDAndUser(ctx, vidro.ID, other)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetByIDAndUser(ctx, "no-es-uuid", owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	exists, err := repo.ExistsByNameAndUser(ctx, "Vidro", owner)
	require.NoError(t, err)
	assert.True(t, exists)

	vidro.Name = "Alumínio"
	assert.ErrorIs(t, repo.Update(ctx, vidro), domain.ErrDuplicateName)
	vidro.Name = "Vidro verde"
	require.NoError(t, repo.Update(ctx, vidro))

	assert.ErrorIs(t, repo.Delete(ctx, vidro.ID, other), domain.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, vidro.ID, owner))
	assert.ErrorIs(t, repo.Delete(ctx, vidro.ID, owner), domain.ErrNotFound)
}

func TestEstoqueRepo_UpsertYCascada(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	owner := createUser(t, pool)
	materials := postgres.NewMaterialRepository(pool)
	estoques := postgres.NewEstoqueRepository(pool)
	movs := postgres.NewMovimentacaoRepository(pool)

	papel := createMaterial(t, materials, owner, "Papel")

	empty, err := estoques.GetByMaterialForUpdate(ctx, papel.ID, owner)
	require.NoError(t, err)
	assert.Empty(t, empty.ID)
	assert.True(t, empty.Quantity.IsZero())

	empty.Quantity = decimal.NewFromFloat(12.5)
	require.NoError(t, estoques.Upsert(ctx, empty))
	require.NotEmpty(t, empty.ID)

	got, err := estoques.GetByIDAndUser(ctx, empty.ID, owner)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(decimal.NewFromFloat(12.5)))
	assert.Equal(t, "Papel", got.MaterialName)
	assert.Equal(t, "kg", got.Unit)

	got.Quantity = decimal.NewFromInt(-1)
	assert.ErrorIs(t, estoques.Upsert(ctx, got), domain.ErrInsufficientStock)

	require.NoError(t, movs.Create(ctx, &entity.Movimentacao{
		ID: uuid.New().String(), MaterialID: papel.ID, UserID: owner, Type: entity.MovementTypeEntrada,
		Quantity: decimal.NewFromFloat(12.5), Balance: decimal.NewFromFloat(12.5), CreatedAt: time.Now().UTC(),
	}))

	require.NoError(t, materials.Delete(ctx, papel.ID, owner))
	_, err = estoques.GetByMaterialAndUser(ctx, papel.ID, owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	list, err := movs.ListByUser(ctx, owner, papel.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMovimentacaoRepo_OrdenRecientesPrimero(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	owner := createUser(t, pool)
	papel := createMaterial(t, postgres.NewMaterialRepository(pool), owner, "Papel")
	repo := postgres.NewMovimentacaoRepository(pool)

	base := time.Now().UTC().Truncate(time.Second)
	for i, tipo := range []string{entity.MovementTypeEntrada, entity.MovementTypeSaida} {
		require.NoError(t, repo.Create(ctx, &entity.Movimentacao{
			ID: uuid.New().String(), MaterialID: papel.ID, UserID: owner, Type: tipo,
			Quantity: decimal.NewFromInt(1), Balance: decimal.NewFromInt(int64(1 - i)),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	list, err := repo.ListByUser(ctx, owner, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.MovementTypeSaida, list[0].Type)

	list, err = repo.ListByUser(ctx, owner, uuid.New().String())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTxRunner_RollbackEnError(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	owner := createUser(t, pool)
	runner := postgres.NewTxRunner(pool)
	boom := errors.New("boom")

	var id string
	err := runner.RunMaterial(ctx, func(materialRepo repository.MaterialRepository, _ repository.EstoqueRepository) error {
		id = createMaterial(t, materialRepo, owner, "Plástico").ID
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = postgres.NewMaterialRepository(pool).GetByIDAndUser(ctx, id, owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
