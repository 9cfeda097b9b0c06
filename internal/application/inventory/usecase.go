package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/pkg/logger"
	"github.com/shopspring/decimal"
)

// InitialStockNote nota del movimiento de entrada que acompaña la creación de un material.
const InitialStockNote = "Initial stock"

// EngineConfig parámetros del motor.
type EngineConfig struct {
	// MutationTimeout cota de cada mutación (incluye la espera por el bloqueo de la fila).
	MutationTimeout time.Duration
}

// StockEngine único punto de entrada que modifica el stock: aplica el delta al snapshot
// y agrega la transacción al ledger dentro de una sola transacción de BD.
type StockEngine struct {
	txRunner TxRunner
	log      *logger.Logger
	cfg      EngineConfig
}

// NewStockEngine construye el motor.
func NewStockEngine(txRunner TxRunner, log *logger.Logger, cfg EngineConfig) *StockEngine {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.MutationTimeout <= 0 {
		cfg.MutationTimeout = 5 * time.Second
	}
	return &StockEngine{txRunner: txRunner, log: log.Component("stock_engine"), cfg: cfg}
}

// StockInInput entrada de una recepción de material.
type StockInInput struct {
	MaterialID int64
	Quantity   decimal.Decimal
	SupplierID *int64
	UnitPrice  *decimal.Decimal
	Notes      string
}

// StockOutInput entrada de una salida de material hacia un proyecto.
type StockOutInput struct {
	MaterialID int64
	Quantity   decimal.Decimal
	ProjectID  *int64
	Notes      string
}

// ApplyStockIn suma quantity al snapshot del material (lo crea si no existe) y registra
// una transacción "in". Devuelve el ID de la transacción.
func (e *StockEngine) ApplyStockIn(ctx context.Context, actor entity.Actor, in StockInInput) (int64, error) {
	if err := validateStockIn(actor, in); err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(ctx, e.cfg.MutationTimeout)
	defer cancel()

	var txID int64
	err := e.txRunner.Run(ctx, func(r Repos) error {
		if err := requireActiveMaterial(ctx, r, in.MaterialID); err != nil {
			return err
		}
		if in.SupplierID != nil {
			s, err := r.Suppliers.GetByID(ctx, *in.SupplierID)
			if err != nil {
				return err
			}
			if s == nil {
				return domain.ErrNotFound
			}
		}
		if _, err := r.Inventory.Increase(ctx, in.MaterialID, in.Quantity); err != nil {
			return err
		}
		tx := &entity.Transaction{
			MaterialID: in.MaterialID,
			Type:       entity.TransactionTypeIn,
			Quantity:   in.Quantity,
			UnitPrice:  in.UnitPrice,
			SupplierID: in.SupplierID,
			Notes:      in.Notes,
			RecordedBy: actor.UserID,
		}
		if err := r.Transactions.Append(ctx, tx); err != nil {
			return err
		}
		txID = tx.ID
		return nil
	})
	if err != nil {
		return 0, e.fail("stock in", in.MaterialID, err)
	}
	e.log.Info().
		Int64("material_id", in.MaterialID).
		Int64("transaction_id", txID).
		Str("type", entity.TransactionTypeIn).
		Str("quantity", in.Quantity.String()).
		Str("actor", actor.UserID).
		Msg("movimiento aplicado")
	return txID, nil
}

// ApplyStockOut resta quantity del snapshot solo si alcanza (decremento condicional atómico)
// y registra una transacción "out". Si no alcanza devuelve *domain.InsufficientStockError
// sin modificar nada.
func (e *StockEngine) ApplyStockOut(ctx context.Context, actor entity.Actor, in StockOutInput) (int64, error) {
	if err := validateStockOut(actor, in); err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(ctx, e.cfg.MutationTimeout)
	defer cancel()

	var txID int64
	err := e.txRunner.Run(ctx, func(r Repos) error {
		if err := requireActiveMaterial(ctx, r, in.MaterialID); err != nil {
			return err
		}
		if in.ProjectID != nil {
			p, err := r.Projects.GetByID(ctx, *in.ProjectID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrNotFound
			}
		}
		current, applied, err := r.Inventory.DecreaseIfAvailable(ctx, in.MaterialID, in.Quantity)
		if err != nil {
			return err
		}
		if !applied {
			return &domain.InsufficientStockError{
				MaterialID: in.MaterialID,
				Available:  current,
				Requested:  in.Quantity,
			}
		}
		tx := &entity.Transaction{
			MaterialID: in.MaterialID,
			Type:       entity.TransactionTypeOut,
			Quantity:   in.Quantity,
			ProjectID:  in.ProjectID,
			Notes:      in.Notes,
			RecordedBy: actor.UserID,
		}
		if err := r.Transactions.Append(ctx, tx); err != nil {
			return err
		}
		txID = tx.ID
		return nil
	})
	if err != nil {
		return 0, e.fail("stock out", in.MaterialID, err)
	}
	e.log.Info().
		Int64("material_id", in.MaterialID).
		Int64("transaction_id", txID).
		Str("type", entity.TransactionTypeOut).
		Str("quantity", in.Quantity.String()).
		Str("actor", actor.UserID).
		Msg("movimiento aplicado")
	return txID, nil
}

// OpenMaterialStockTx crea el snapshot de un material recién creado usando los repositorios
// proporcionados (misma transacción del caller). Con quantity > 0 registra además una entrada
// "Initial stock"; con 0 solo deja la fila en cero.
func (e *StockEngine) OpenMaterialStockTx(ctx context.Context, r Repos, actor entity.Actor, materialID int64, quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return domain.NewValidationError("initial_quantity", "must be zero or greater")
	}
	if _, err := r.Inventory.Increase(ctx, materialID, quantity); err != nil {
		return err
	}
	if !quantity.IsPositive() {
		return nil
	}
	return r.Transactions.Append(ctx, &entity.Transaction{
		MaterialID: materialID,
		Type:       entity.TransactionTypeIn,
		Quantity:   quantity,
		Notes:      InitialStockNote,
		RecordedBy: actor.UserID,
	})
}

func requireActiveMaterial(ctx context.Context, r Repos, id int64) error {
	m, err := r.Materials.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil || m.Archived() {
		return domain.ErrNotFound
	}
	return nil
}

func validateStockIn(actor entity.Actor, in StockInInput) error {
	if !actor.Valid() {
		return domain.NewValidationError("actor", "an authenticated actor is required")
	}
	if in.MaterialID <= 0 {
		return domain.NewValidationError("material_id", "must be a positive id")
	}
	if !in.Quantity.IsPositive() {
		return domain.NewValidationError("quantity", "must be greater than zero")
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return domain.NewValidationError("unit_price", "must be zero or greater")
	}
	if in.SupplierID != nil && *in.SupplierID <= 0 {
		return domain.NewValidationError("supplier_id", "must be a positive id")
	}
	return nil
}

func validateStockOut(actor entity.Actor, in StockOutInput) error {
	if !actor.Valid() {
		return domain.NewValidationError("actor", "an authenticated actor is required")
	}
	if in.MaterialID <= 0 {
		return domain.NewValidationError("material_id", "must be a positive id")
	}
	if !in.Quantity.IsPositive() {
		return domain.NewValidationError("quantity", "must be greater than zero")
	}
	if in.ProjectID != nil && *in.ProjectID <= 0 {
		return domain.NewValidationError("project_id", "must be a positive id")
	}
	return nil
}

// fail deja pasar los errores de dominio y envuelve el resto como ErrInternal.
func (e *StockEngine) fail(op string, materialID int64, err error) error {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		e.log.Warn().
			Int64("material_id", materialID).
			Str("available", insufficient.Available.String()).
			Str("requested", insufficient.Requested.String()).
			Msg("salida rechazada por stock insuficiente")
		return err
	case domain.IsDomainError(err):
		return err
	}
	e.log.Error().Err(err).Int64("material_id", materialID).Str("op", op).Msg("mutación fallida")
	return domain.Internal(op, err)
}
