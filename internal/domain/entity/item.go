package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un ítem individual con stock por bodega (documento completo:
// se lee y se guarda entero, con su lista de StockRecord embebida).
type Item struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	CostPrice decimal.Decimal `json:"costPrice"`
	Stocks    []StockRecord   `json:"stocks"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ItemGroupMember es una variante dentro de un grupo de ítems. Tiene la misma
// forma de stock que un Item; SKU y Name se usan para localizarlo dentro del grupo.
type ItemGroupMember struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	CostPrice decimal.Decimal `json:"costPrice"`
	Stocks    []StockRecord   `json:"stocks"`
}

// ItemGroup agrupa variantes de un mismo ítem, cada una con stock independiente.
// El almacenamiento no soporta guardar un miembro suelto: siempre se reescribe
// el miembro completo en su posición original y se persiste el grupo entero.
type ItemGroup struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Items     []ItemGroupMember `json:"items"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
