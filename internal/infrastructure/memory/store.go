// Package memory implementa los puertos de persistencia en memoria de proceso.
// Se usa con STORAGE_DRIVER=memory (desarrollo local sin PostgreSQL) y en tests.
// Reproduce las reglas que en PostgreSQL dan las constraints: nombre único por usuario,
// email único, cantidad no negativa y borrado en cascada de estoque/movimentações.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/recycle-api/internal/application/inventory"
	"github.com/jhoicas/recycle-api/internal/application/usecase"
	"github.com/jhoicas/recycle-api/internal/domain/entity"
	"github.com/jhoicas/recycle-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner       = (*Store)(nil)
	_ usecase.MaterialTxRunner = (*Store)(nil)
)

// Store guarda todos los datos. mu serializa escrituras y transacciones.
type Store struct {
	mu        sync.Mutex
	materials map[string]entity.Material
	estoques  map[string]entity.Estoque
	movs      []entity.Movimentacao
	users     map[string]entity.User
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		materials: make(map[string]entity.Material),
		estoques:  make(map[string]entity.Estoque),
		users:     make(map[string]entity.User),
	}
}

// base comparte el store; inTx indica que el lock ya lo tiene la transacción en curso.
type base struct {
	s    *Store
	inTx bool
}

func (b base) lock() func() {
	if b.inTx {
		return func() {}
	}
	b.s.mu.Lock()
	return b.s.mu.Unlock
}

// Materials devuelve el repositorio de materiales fuera de transacción.
func (s *Store) Materials() *MaterialRepo { return &MaterialRepo{base{s: s}} }

// Estoques devuelve el repositorio de estoque fuera de transacción.
func (s *Store) Estoques() *EstoqueRepo { return &EstoqueRepo{base{s: s}} }

// Movimentacoes devuelve el repositorio de movimentações fuera de transacción.
func (s *Store) Movimentacoes() *MovimentacaoRepo { return &MovimentacaoRepo{base{s: s}} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{base{s: s}} }

type snapshot struct {
	materials map[string]entity.Material
	estoques  map[string]entity.Estoque
	movs      []entity.Movimentacao
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		materials: make(map[string]entity.Material, len(s.materials)),
		estoques:  make(map[string]entity.Estoque, len(s.estoques)),
		movs:      append([]entity.Movimentacao(nil), s.movs...),
	}
	for k, v := range s.materials {
		snap.materials[k] = v
	}
	for k, v := range s.estoques {
		snap.estoques[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.materials = snap.materials
	s.estoques = snap.estoques
	s.movs = snap.movs
}

// transact ejecuta fn con el lock tomado; si fn falla o entra en pánico restaura el estado previo (rollback).
func (s *Store) transact(fn func(b base) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	committed := false
	defer func() {
		if !committed {
			s.restore(snap)
		}
	}()
	if err = fn(base{s: s, inTx: true}); err != nil {
		return err
	}
	committed = true
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.MovimentacaoRepository,
	estoqueRepo repository.EstoqueRepository,
	materialRepo repository.MaterialRepository,
) error) error {
	return s.transact(func(b base) error {
		return fn(&MovimentacaoRepo{b}, &EstoqueRepo{b}, &MaterialRepo{b})
	})
}

// RunMaterial implementa usecase.MaterialTxRunner.
func (s *Store) RunMaterial(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	estoqueRepo repository.EstoqueRepository,
) error) error {
	return s.transact(func(b base) error {
		return fn(&MaterialRepo{b}, &EstoqueRepo{b})
	})
}
