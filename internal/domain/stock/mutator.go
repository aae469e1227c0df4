package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/warehouse"
)

// Direction sentido de la mutación de stock.
type Direction int

const (
	// Add suma el delta en la bodega objetivo (lado destino de un traslado).
	Add Direction = iota + 1
	// Subtract resta el delta en la bodega objetivo (lado origen de un traslado).
	Subtract
)

// Mutator aplica un delta de cantidad sobre el registro de stock que corresponde
// a una bodega dentro de la lista embebida de un ítem. El caller es responsable
// de persistir el documento dueño de la lista.
type Mutator struct {
	resolver *warehouse.Resolver
}

// NewMutator construye el mutador con el resolver de nombres de bodega.
func NewMutator(resolver *warehouse.Resolver) *Mutator {
	return &Mutator{resolver: resolver}
}

// Apply aplica qty (>0) en la bodega targetWarehouse sobre records.
//
// Busca el primer registro cuyo nombre haga match difuso con targetWarehouse:
//   - con match: reescribe el nombre guardado a targetWarehouse (auto-reparación
//     hacia la forma canónica) y suma o resta qty en stockOnHand, availableForSale
//     y sus espejos físicos. La resta se trunca en cero campo por campo; los campos
//     comprometidos y de apertura no se tocan.
//   - sin match (o lista vacía): Add agrega un registro recién sembrado; Subtract
//     no hace nada y reporta fallo suave (no hay de dónde restar), sin error.
//
// Devuelve la lista (posiblemente sin cambios) y si el delta quedó aplicado.
func (m *Mutator) Apply(records []entity.StockRecord, qty decimal.Decimal, targetWarehouse string, dir Direction) ([]entity.StockRecord, bool) {
	for i := range records {
		if !m.resolver.Matches(records[i].WarehouseName, targetWarehouse) {
			continue
		}
		records[i].WarehouseName = targetWarehouse
		if dir == Add {
			records[i].StockOnHand = records[i].StockOnHand.Add(qty)
			records[i].AvailableForSale = records[i].AvailableForSale.Add(qty)
			records[i].PhysicalStockOnHand = records[i].PhysicalStockOnHand.Add(qty)
			records[i].PhysicalAvailableForSale = records[i].PhysicalAvailableForSale.Add(qty)
		} else {
			records[i].StockOnHand = subClamped(records[i].StockOnHand, qty)
			records[i].AvailableForSale = subClamped(records[i].AvailableForSale, qty)
			records[i].PhysicalStockOnHand = subClamped(records[i].PhysicalStockOnHand, qty)
			records[i].PhysicalAvailableForSale = subClamped(records[i].PhysicalAvailableForSale, qty)
		}
		return records, true
	}
	if dir == Add {
		return append(records, entity.NewStockRecord(targetWarehouse, qty)), true
	}
	return records, false
}

// subClamped resta qty con piso en cero. El truncado es por campo e
// intencionalmente asimétrico respecto de la suma: restar 10 sobre 5 deja 0,
// y volver a sumar 10 deja 10, no 5.
func subClamped(current, qty decimal.Decimal) decimal.Decimal {
	next := current.Sub(qty)
	if next.IsNegative() {
		return decimal.Zero
	}
	return next
}
