package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/stock"
	"github.com/shopspring/decimal"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo ledger append-only.
type TransactionRepo struct {
	s *Store
	u *unitOfWork
}

func (r *TransactionRepo) within(ctx context.Context, fn func(u *unitOfWork) error) error {
	if r.u != nil {
		return fn(r.u)
	}
	return r.s.autocommit(ctx, fn)
}

func (r *TransactionRepo) Append(ctx context.Context, t *entity.Transaction) error {
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("transaction quantity > 0: %w", domain.ErrInvalidInput)
	}
	if t.Type != entity.TransactionTypeIn && t.Type != entity.TransactionTypeOut {
		return fmt.Errorf("transaction type %q: %w", t.Type, domain.ErrInvalidInput)
	}
	return r.within(ctx, func(u *unitOfWork) error {
		r.s.mu.RLock()
		exists := r.s.lookupMaterial(u, t.MaterialID) != nil
		r.s.mu.RUnlock()
		if !exists {
			return fmt.Errorf("transaction material %d: %w", t.MaterialID, domain.ErrConflict)
		}
		t.ID = r.s.transactionSeq.Add(1)
		t.Date = r.s.now()
		u.appended = append(u.appended, cloneTransaction(t))
		return nil
	})
}

func (r *TransactionRepo) ListByMaterial(ctx context.Context, materialID int64) ([]*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Transaction, 0)
	for _, t := range r.s.allTransactions(r.u) {
		if t.MaterialID == materialID {
			out = append(out, cloneTransaction(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TransactionRepo) History(ctx context.Context, f repository.HistoryFilter) ([]*entity.TransactionView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.TransactionView, 0)
	for _, t := range r.s.allTransactions(r.u) {
		if t.Date.Before(f.From) || !t.Date.Before(f.To) {
			continue
		}
		if f.MaterialID != nil && t.MaterialID != *f.MaterialID {
			continue
		}
		out = append(out, r.view(t))
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *TransactionRepo) Recent(ctx context.Context, limit int) ([]*entity.TransactionView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.s.allTransactions(r.u)
	out := make([]*entity.TransactionView, 0, len(all))
	for _, t := range all {
		out = append(out, r.view(t))
	}
	sortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *TransactionRepo) AverageInPrices(ctx context.Context) (map[int64]decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	prices := make(map[int64][]decimal.Decimal)
	for _, t := range r.s.allTransactions(r.u) {
		if t.Type == entity.TransactionTypeIn && t.UnitPrice != nil {
			prices[t.MaterialID] = append(prices[t.MaterialID], *t.UnitPrice)
		}
	}
	out := make(map[int64]decimal.Decimal, len(prices))
	for id, p := range prices {
		if avg, ok := stock.AveragePrice(p); ok {
			out[id] = avg
		}
	}
	return out, nil
}

// view une los nombres para mostrar. Requiere s.mu.
func (r *TransactionRepo) view(t *entity.Transaction) *entity.TransactionView {
	v := &entity.TransactionView{Transaction: *cloneTransaction(t)}
	if m := r.s.lookupMaterial(r.u, t.MaterialID); m != nil {
		v.MaterialName = m.Name
		v.Unit = m.Unit
	}
	if t.SupplierID != nil {
		if s, ok := r.s.suppliers[*t.SupplierID]; ok {
			v.SupplierName = s.Name
		}
	}
	if t.ProjectID != nil {
		if p, ok := r.s.projects[*t.ProjectID]; ok {
			v.ProjectName = p.Name
		}
	}
	return v
}

func sortNewestFirst(views []*entity.TransactionView) {
	sort.Slice(views, func(i, j int) bool {
		if !views[i].Date.Equal(views[j].Date) {
			return views[i].Date.After(views[j].Date)
		}
		return views[i].ID > views[j].ID
	})
}
