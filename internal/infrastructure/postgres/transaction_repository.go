package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo ledger material_transactions. Solo INSERT y SELECT.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

var transactionColumns = []string{
	"t.transaction_id", "t.material_id", "t.transaction_type", "t.quantity", "t.unit_price",
	"t.supplier_id", "t.project_id", "t.notes", "t.recorded_by", "t.transaction_date",
}

func scanTransaction(row rowScanner, t *entity.Transaction, extra ...any) error {
	dest := []any{
		&t.ID, &t.MaterialID, &t.Type, &t.Quantity, &t.UnitPrice,
		&t.SupplierID, &t.ProjectID, &t.Notes, &t.RecordedBy, &t.Date,
	}
	return row.Scan(append(dest, extra...)...)
}

func (r *TransactionRepo) Append(ctx context.Context, t *entity.Transaction) error {
	sqlStr, args, err := psql.Insert("material_transactions").
		Columns("material_id", "transaction_type", "quantity", "unit_price", "supplier_id", "project_id", "notes", "recorded_by").
		Values(t.MaterialID, t.Type, t.Quantity, t.UnitPrice, t.SupplierID, t.ProjectID, t.Notes, t.RecordedBy).
		Suffix("RETURNING transaction_id, transaction_date").
		ToSql()
	if err != nil {
		return err
	}
	if err := r.q.QueryRow(ctx, sqlStr, args...).Scan(&t.ID, &t.Date); err != nil {
		switch {
		case isForeignKeyViolation(err):
			return fmt.Errorf("insert transaction: %w", domain.ErrConflict)
		case isCheckViolation(err):
			return fmt.Errorf("insert transaction: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepo) ListByMaterial(ctx context.Context, materialID int64) ([]*entity.Transaction, error) {
	sqlStr, args, err := psql.Select(transactionColumns...).
		From("material_transactions t").
		Where(sq.Eq{"t.material_id": materialID}).
		OrderBy("t.transaction_id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Transaction, 0)
	for rows.Next() {
		var t entity.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *TransactionRepo) selectViews() sq.SelectBuilder {
	cols := append(append([]string{}, transactionColumns...),
		"m.material_name", "m.unit", "COALESCE(s.supplier_name, '')", "COALESCE(p.project_name, '')")
	return psql.Select(cols...).
		From("material_transactions t").
		Join("materials m ON m.material_id = t.material_id").
		LeftJoin("suppliers s ON s.supplier_id = t.supplier_id").
		LeftJoin("projects p ON p.project_id = t.project_id").
		OrderBy("t.transaction_date DESC", "t.transaction_id DESC")
}

func (r *TransactionRepo) queryViews(ctx context.Context, qb sq.SelectBuilder) ([]*entity.TransactionView, error) {
	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.TransactionView, 0)
	for rows.Next() {
		var v entity.TransactionView
		if err := scanTransaction(rows, &v.Transaction, &v.MaterialName, &v.Unit, &v.SupplierName, &v.ProjectName); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *TransactionRepo) History(ctx context.Context, f repository.HistoryFilter) ([]*entity.TransactionView, error) {
	qb := r.selectViews().
		Where(sq.GtOrEq{"t.transaction_date": f.From}).
		Where(sq.Lt{"t.transaction_date": f.To})
	if f.MaterialID != nil {
		qb = qb.Where(sq.Eq{"t.material_id": *f.MaterialID})
	}
	return r.queryViews(ctx, qb)
}

func (r *TransactionRepo) Recent(ctx context.Context, limit int) ([]*entity.TransactionView, error) {
	qb := r.selectViews()
	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}
	return r.queryViews(ctx, qb)
}

func (r *TransactionRepo) AverageInPrices(ctx context.Context) (map[int64]decimal.Decimal, error) {
	sqlStr, args, err := psql.Select("material_id", "AVG(unit_price)").
		From("material_transactions").
		Where(sq.Eq{"transaction_type": entity.TransactionTypeIn}).
		Where(sq.NotEq{"unit_price": nil}).
		GroupBy("material_id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("average prices: %w", err)
	}
	defer rows.Close()
	out := make(map[int64]decimal.Decimal)
	for rows.Next() {
		var (
			id  int64
			avg decimal.Decimal
		)
		if err := rows.Scan(&id, &avg); err != nil {
			return nil, fmt.Errorf("scan average: %w", err)
		}
		out[id] = avg
	}
	return out, rows.Err()
}
