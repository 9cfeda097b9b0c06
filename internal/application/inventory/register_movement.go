package inventory

import (
	"context"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/dto"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
)

// StockInFromRequest adapta el request HTTP al motor: ApplyStockIn(ctx, actor, StockInInput).
func (e *StockEngine) StockInFromRequest(ctx context.Context, actor entity.Actor, in dto.StockInRequest) (*dto.MovementResponse, error) {
	in.Normalize()
	id, err := e.ApplyStockIn(ctx, actor, StockInInput{
		MaterialID: in.MaterialID,
		Quantity:   in.Quantity,
		SupplierID: in.SupplierID,
		UnitPrice:  in.UnitPrice,
		Notes:      in.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &dto.MovementResponse{TransactionID: id}, nil
}

// StockOutFromRequest adapta el request HTTP al motor: ApplyStockOut(ctx, actor, StockOutInput).
func (e *StockEngine) StockOutFromRequest(ctx context.Context, actor entity.Actor, in dto.StockOutRequest) (*dto.MovementResponse, error) {
	in.Normalize()
	id, err := e.ApplyStockOut(ctx, actor, StockOutInput{
		MaterialID: in.MaterialID,
		Quantity:   in.Quantity,
		ProjectID:  in.ProjectID,
		Notes:      in.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &dto.MovementResponse{TransactionID: id}, nil
}
