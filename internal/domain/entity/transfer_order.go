package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de traslado.
const (
	TransferStatusDraft       = "draft"
	TransferStatusInTransit   = "in_transit"
	TransferStatusTransferred = "transferred"
)

// IsValidTransferStatus indica si s es uno de los tres estados permitidos.
func IsValidTransferStatus(s string) bool {
	return s == TransferStatusDraft || s == TransferStatusInTransit || s == TransferStatusTransferred
}

// TransferLine es una línea de la orden: un ítem (o miembro de grupo) y la cantidad
// a mover. SourceQuantity y DestQuantity son los niveles de stock observados al crear
// la orden; se conservan solo para visualización y auditoría, nunca se vuelven a leer
// durante mutaciones posteriores.
type TransferLine struct {
	ItemID         string          `json:"itemId,omitempty"`
	ItemGroupID    string          `json:"itemGroupId,omitempty"`
	ItemName       string          `json:"itemName"`
	ItemSKU        string          `json:"itemSku,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	SourceQuantity decimal.Decimal `json:"sourceQuantity"`
	DestQuantity   decimal.Decimal `json:"destQuantity"`
}

// TransferOrder es una orden de traslado de stock entre dos bodegas.
// Tras la creación, Status es el único campo que cambia de forma material;
// las líneas son instantáneas fijas.
//
// StockApplied es el marcador de idempotencia: true mientras el efecto forward
// (restar en origen, sumar en destino) esté aplicado sobre el stock. Se verifica
// y se actualiza en la misma transacción que la mutación de stock, de modo que
// reintentos o ediciones repetidas nunca dupliquen ni pierdan un efecto.
type TransferOrder struct {
	ID                       string          `json:"id"`
	TransferOrderNumber      string          `json:"transferOrderNumber"`
	Date                     time.Time       `json:"date"`
	Reason                   string          `json:"reason,omitempty"`
	SourceWarehouse          string          `json:"sourceWarehouse"`
	DestinationWarehouse     string          `json:"destinationWarehouse"`
	Status                   string          `json:"status"`
	Lines                    []TransferLine  `json:"lines"`
	TotalQuantityTransferred decimal.Decimal `json:"totalQuantityTransferred"`
	UserID                   string          `json:"userId"`
	CreatedBy                string          `json:"createdBy"`
	ModifiedBy               string          `json:"modifiedBy,omitempty"`
	LocCode                  string          `json:"locCode,omitempty"`
	StockApplied             bool            `json:"stockApplied"`
	StockAppliedAt           *time.Time      `json:"stockAppliedAt,omitempty"`
	CreatedAt                time.Time       `json:"createdAt"`
	UpdatedAt                time.Time       `json:"updatedAt"`
}
