package transfer

import (
	"context"
	"fmt"

	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/domain"
)

// CurrentStock consulta de solo lectura: niveles actuales de un ítem (o miembro
// de grupo) en una bodega, resueltos con el mismo matching difuso del motor.
// Se usa para el endpoint ad hoc; no bloquea filas ni muta nada.
func (uc *TransferOrderUseCase) CurrentStock(ctx context.Context, q dto.CurrentStockQuery) (*dto.CurrentStockResponse, error) {
	if q.Warehouse == "" {
		return nil, fmt.Errorf("%w: warehouse es requerido", domain.ErrInvalidInput)
	}
	target := LineTarget{
		ItemID:      q.ItemID,
		ItemGroupID: q.ItemGroupID,
		ItemName:    q.ItemName,
		ItemSKU:     q.ItemSKU,
	}
	holder, err := resolveHolder(ctx, uc.itemRepo, uc.groupRepo, target, false)
	if err != nil {
		return nil, err
	}

	out := &dto.CurrentStockResponse{
		ItemName:  q.ItemName,
		Warehouse: q.Warehouse,
	}
	for _, rec := range holder.Stocks() {
		if !uc.resolver.Matches(rec.WarehouseName, q.Warehouse) {
			continue
		}
		out.Found = true
		out.StockOnHand = rec.StockOnHand
		out.AvailableForSale = rec.AvailableForSale
		out.PhysicalStockOnHand = rec.PhysicalStockOnHand
		out.PhysicalAvailableForSale = rec.PhysicalAvailableForSale
		out.CommittedStock = rec.CommittedStock
		break
	}
	return out, nil
}
