package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/recycle-api/internal/application/inventory"
	"github.com/jhoicas/recycle-api/internal/application/usecase"
	"github.com/jhoicas/recycle-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and usecase.MaterialTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ usecase.MaterialTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovimentacaoRepository,
	estoqueRepo repository.EstoqueRepository,
	materialRepo repository.MaterialRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewMovimentacaoRepository(tx), NewEstoqueRepository(tx), NewMaterialRepository(tx))
	})
}

// RunMaterial inicia una transacción con repos de material y estoque (para el borrado con guarda de estoque).
func (r *TxRunner) RunMaterial(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	estoqueRepo repository.EstoqueRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewMaterialRepository(tx), NewEstoqueRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
