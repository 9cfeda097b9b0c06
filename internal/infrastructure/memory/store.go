// Package memory implementa los puertos de persistencia en memoria.
// Se usa como driver de desarrollo (INVENTORY_STORAGE_DRIVER=memory) y en los tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/inventory"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store estado compartido. mu protege los mapas; los bloqueos por material (locks)
// serializan las unidades de trabajo que tocan el mismo material.
type Store struct {
	mu           sync.RWMutex
	materials    map[int64]*entity.Material
	categories   map[int64]*entity.Category
	inventory    map[int64]*entity.InventorySnapshot
	transactions []*entity.Transaction
	suppliers    map[int64]*entity.Supplier
	projects     map[int64]*entity.Project

	materialSeq    atomic.Int64
	categorySeq    atomic.Int64
	transactionSeq atomic.Int64
	supplierSeq    atomic.Int64
	projectSeq     atomic.Int64

	locks *lockTable
	now   func() time.Time
}

// Option configura el Store.
type Option func(*Store)

// WithClock reemplaza el reloj usado para fechas de transacción y timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New crea un Store vacío.
func New(opts ...Option) *Store {
	s := &Store{
		materials:  make(map[int64]*entity.Material),
		categories: make(map[int64]*entity.Category),
		inventory:  make(map[int64]*entity.InventorySnapshot),
		suppliers:  make(map[int64]*entity.Supplier),
		projects:   make(map[int64]*entity.Project),
		locks:      newLockTable(),
		now:        time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Repositorios fuera de transacción: cada escritura se confirma de inmediato.

func (s *Store) Materials() *MaterialRepo       { return &MaterialRepo{s: s} }
func (s *Store) Inventory() *InventoryRepo      { return &InventoryRepo{s: s} }
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }
func (s *Store) Categories() *CategoryRepo      { return &CategoryRepo{s: s} }
func (s *Store) Suppliers() *SupplierRepo       { return &SupplierRepo{s: s} }
func (s *Store) Projects() *ProjectRepo         { return &ProjectRepo{s: s} }

// Run ejecuta fn en una unidad de trabajo. Las escrituras quedan en staging y se publican
// juntas al confirmar; los lectores nunca ven un movimiento a medio aplicar.
func (s *Store) Run(ctx context.Context, fn func(r inventory.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	u := s.begin()
	defer u.release()

	repos := inventory.Repos{
		Materials:    &MaterialRepo{s: s, u: u},
		Inventory:    &InventoryRepo{s: s, u: u},
		Transactions: &TransactionRepo{s: s, u: u},
		Suppliers:    &SupplierRepo{s: s},
		Projects:     &ProjectRepo{s: s},
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	u.commit()
	return nil
}

// autocommit ejecuta una sola escritura como su propia unidad de trabajo.
func (s *Store) autocommit(ctx context.Context, fn func(u *unitOfWork) error) error {
	u := s.begin()
	defer u.release()
	if err := fn(u); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	u.commit()
	return nil
}

func (s *Store) begin() *unitOfWork {
	return &unitOfWork{
		s:          s,
		held:       make(map[int64]struct{}),
		materials:  make(map[int64]*entity.Material),
		deleted:    make(map[int64]struct{}),
		quantities: make(map[int64]*entity.InventorySnapshot),
	}
}

// unitOfWork staging de una transacción. Solo la usa la goroutine que ejecuta Run.
type unitOfWork struct {
	s          *Store
	held       map[int64]struct{}
	materials  map[int64]*entity.Material
	deleted    map[int64]struct{}
	quantities map[int64]*entity.InventorySnapshot
	appended   []*entity.Transaction
}

// lock toma el bloqueo del material y lo mantiene hasta commit/rollback.
func (u *unitOfWork) lock(ctx context.Context, materialID int64) error {
	if _, ok := u.held[materialID]; ok {
		return nil
	}
	if err := u.s.locks.acquire(ctx, materialID); err != nil {
		return fmt.Errorf("lock material %d: %w", materialID, err)
	}
	u.held[materialID] = struct{}{}
	return nil
}

func (u *unitOfWork) commit() {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range u.deleted {
		delete(s.materials, id)
		delete(s.inventory, id)
	}
	if len(u.deleted) > 0 {
		kept := s.transactions[:0]
		for _, t := range s.transactions {
			if _, gone := u.deleted[t.MaterialID]; !gone {
				kept = append(kept, t)
			}
		}
		s.transactions = kept
	}
	for id, m := range u.materials {
		s.materials[id] = m
	}
	for id, snap := range u.quantities {
		s.inventory[id] = snap
	}
	s.transactions = append(s.transactions, u.appended...)
}

// release libera los bloqueos; si no hubo commit el staging se descarta (rollback).
func (u *unitOfWork) release() {
	for id := range u.held {
		u.s.locks.release(id)
	}
	u.held = nil
}

// Lecturas combinadas (estado confirmado + staging de u). Requieren s.mu en lectura.

func (s *Store) lookupMaterial(u *unitOfWork, id int64) *entity.Material {
	if u != nil {
		if _, gone := u.deleted[id]; gone {
			return nil
		}
		if m, ok := u.materials[id]; ok {
			return m
		}
	}
	return s.materials[id]
}

func (s *Store) lookupQuantity(u *unitOfWork, id int64) *entity.InventorySnapshot {
	if u != nil {
		if _, gone := u.deleted[id]; gone {
			return nil
		}
		if snap, ok := u.quantities[id]; ok {
			return snap
		}
	}
	return s.inventory[id]
}

func (s *Store) quantityOf(u *unitOfWork, id int64) decimal.Decimal {
	if snap := s.lookupQuantity(u, id); snap != nil {
		return snap.Quantity
	}
	return decimal.Zero
}

func (s *Store) allMaterials(u *unitOfWork) []*entity.Material {
	out := make([]*entity.Material, 0, len(s.materials))
	for id := range s.materials {
		if m := s.lookupMaterial(u, id); m != nil {
			out = append(out, m)
		}
	}
	if u != nil {
		for id, m := range u.materials {
			if _, committed := s.materials[id]; !committed {
				out = append(out, m)
			}
		}
	}
	return out
}

func (s *Store) allTransactions(u *unitOfWork) []*entity.Transaction {
	if u == nil {
		return s.transactions
	}
	out := make([]*entity.Transaction, 0, len(s.transactions)+len(u.appended))
	for _, t := range s.transactions {
		if _, gone := u.deleted[t.MaterialID]; !gone {
			out = append(out, t)
		}
	}
	return append(out, u.appended...)
}

// lockTable un semáforo de capacidad 1 por material; acquire respeta la cancelación del ctx.
type lockTable struct {
	mu sync.Mutex
	m  map[int64]chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{m: make(map[int64]chan struct{})}
}

func (t *lockTable) slot(id int64) chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	ch, ok := t.m[id]
	if !ok {
		ch = make(chan struct{}, 1)
		t.m[id] = ch
	}
	return ch
}

func (t *lockTable) acquire(ctx context.Context, id int64) error {
	select {
	case t.slot(id) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *lockTable) release(id int64) {
	<-t.slot(id)
}

func cloneMaterial(m *entity.Material) *entity.Material {
	cp := *m
	if m.CategoryID != nil {
		id := *m.CategoryID
		cp.CategoryID = &id
	}
	if m.ArchivedAt != nil {
		at := *m.ArchivedAt
		cp.ArchivedAt = &at
	}
	return &cp
}

func cloneTransaction(t *entity.Transaction) *entity.Transaction {
	cp := *t
	if t.UnitPrice != nil {
		p := *t.UnitPrice
		cp.UnitPrice = &p
	}
	if t.SupplierID != nil {
		id := *t.SupplierID
		cp.SupplierID = &id
	}
	if t.ProjectID != nil {
		id := *t.ProjectID
		cp.ProjectID = &id
	}
	return &cp
}
