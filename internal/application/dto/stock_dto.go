package dto

import "github.com/shopspring/decimal"

// CurrentStockQuery query params de GET /api/transfer-orders/stock/item.
type CurrentStockQuery struct {
	ItemID      string `query:"itemId"`
	ItemGroupID string `query:"itemGroupId"`
	ItemName    string `query:"itemName"`
	ItemSKU     string `query:"itemSku"`
	Warehouse   string `query:"warehouse"`
}

// CurrentStockResponse niveles actuales de un ítem en una bodega (solo lectura).
// Found=false cuando el ítem existe pero no tiene registro para esa bodega;
// las cantidades van en cero.
type CurrentStockResponse struct {
	ItemName                 string          `json:"itemName"`
	Warehouse                string          `json:"warehouse"`
	Found                    bool            `json:"found"`
	StockOnHand              decimal.Decimal `json:"stockOnHand"`
	AvailableForSale         decimal.Decimal `json:"availableForSale"`
	PhysicalStockOnHand      decimal.Decimal `json:"physicalStockOnHand"`
	PhysicalAvailableForSale decimal.Decimal `json:"physicalAvailableForSale"`
	CommittedStock           decimal.Decimal `json:"committedStock"`
}
