package entity

import "github.com/shopspring/decimal"

// StockRecord representa las cantidades de un ítem en una bodega concreta.
// Va embebido como lista dentro del documento del ítem (o del miembro de un grupo);
// WarehouseName es texto libre y se reescribe a su forma canónica al aplicar un traslado.
type StockRecord struct {
	WarehouseName            string          `json:"warehouseName"`
	OpeningStock             decimal.Decimal `json:"openingStock"`
	OpeningStockValue        decimal.Decimal `json:"openingStockValue"`
	StockOnHand              decimal.Decimal `json:"stockOnHand"`
	CommittedStock           decimal.Decimal `json:"committedStock"`
	AvailableForSale         decimal.Decimal `json:"availableForSale"`
	PhysicalOpeningStock     decimal.Decimal `json:"physicalOpeningStock"`
	PhysicalStockOnHand      decimal.Decimal `json:"physicalStockOnHand"`
	PhysicalCommittedStock   decimal.Decimal `json:"physicalCommittedStock"`
	PhysicalAvailableForSale decimal.Decimal `json:"physicalAvailableForSale"`
}

// NewStockRecord crea un registro sembrado con qty en los campos de stock disponible.
// Los campos de apertura y comprometidos arrancan en cero; el motor de traslados nunca los toca.
func NewStockRecord(warehouseName string, qty decimal.Decimal) StockRecord {
	return StockRecord{
		WarehouseName:            warehouseName,
		OpeningStock:             decimal.Zero,
		OpeningStockValue:        decimal.Zero,
		StockOnHand:              qty,
		CommittedStock:           decimal.Zero,
		AvailableForSale:         qty,
		PhysicalOpeningStock:     decimal.Zero,
		PhysicalStockOnHand:      qty,
		PhysicalCommittedStock:   decimal.Zero,
		PhysicalAvailableForSale: qty,
	}
}
