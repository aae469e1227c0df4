package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

// TransferLineRequest una línea del body: un ítem directo (itemId) o un miembro
// de grupo (itemGroupId + itemName, opcionalmente itemSku).
type TransferLineRequest struct {
	ItemID      string          `json:"itemId,omitempty"`
	ItemGroupID string          `json:"itemGroupId,omitempty"`
	ItemName    string          `json:"itemName"`
	ItemSKU     string          `json:"itemSku,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// CreateTransferOrderRequest body para POST /api/transfer-orders.
// Status es opcional; vacío equivale a draft. Date en formato YYYY-MM-DD.
type CreateTransferOrderRequest struct {
	Date                 string                `json:"date" validate:"required"`
	SourceWarehouse      string                `json:"sourceWarehouse" validate:"required"`
	DestinationWarehouse string                `json:"destinationWarehouse" validate:"required"`
	TransferOrderNumber  string                `json:"transferOrderNumber" validate:"required"`
	Reason               string                `json:"reason,omitempty"`
	Status               string                `json:"status,omitempty" validate:"omitempty,oneof=draft in_transit transferred"`
	LocCode              string                `json:"locCode,omitempty"`
	Items                []TransferLineRequest `json:"items" validate:"required,min=1"`
}

// UpdateTransferOrderRequest body para PUT /api/transfer-orders/:id.
// Las líneas son instantáneas fijas y no se editan; el cambio material es Status.
type UpdateTransferOrderRequest struct {
	Status string `json:"status" validate:"required,oneof=draft in_transit transferred"`
	Date   string `json:"date,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// ListTransferOrdersQuery query params de GET /api/transfer-orders.
type ListTransferOrdersQuery struct {
	SourceWarehouse      string `query:"sourceWarehouse"`
	DestinationWarehouse string `query:"destinationWarehouse"`
	Status               string `query:"status"`
	StartDate            string `query:"startDate"`
	EndDate              string `query:"endDate"`
	UserID               string `query:"userId"`
}

// Resultados posibles de una línea al mover stock.
const (
	LineResultSuccess = "success"
	LineResultFailed  = "failed"
	LineResultError   = "error"
)

// LineResult resultado por línea de un efecto forward o reverse. Los fallos de
// línea se reportan aquí en vez de abortar la operación o las líneas hermanas.
type LineResult struct {
	ItemID      string `json:"itemId,omitempty"`
	ItemGroupID string `json:"itemGroupId,omitempty"`
	ItemName    string `json:"itemName"`
	Status      string `json:"status"` // success | failed | error
	Message     string `json:"message,omitempty"`
}

// TransferOrderResponse una orden de traslado tal como se expone por la API.
type TransferOrderResponse struct {
	ID                       string                `json:"id"`
	TransferOrderNumber      string                `json:"transferOrderNumber"`
	Date                     time.Time             `json:"date"`
	Reason                   string                `json:"reason,omitempty"`
	SourceWarehouse          string                `json:"sourceWarehouse"`
	DestinationWarehouse     string                `json:"destinationWarehouse"`
	Status                   string                `json:"status"`
	Lines                    []entity.TransferLine `json:"lines"`
	TotalQuantityTransferred decimal.Decimal       `json:"totalQuantityTransferred"`
	UserID                   string                `json:"userId"`
	CreatedBy                string                `json:"createdBy"`
	ModifiedBy               string                `json:"modifiedBy,omitempty"`
	LocCode                  string                `json:"locCode,omitempty"`
	CreatedAt                time.Time             `json:"createdAt"`
	UpdatedAt                time.Time             `json:"updatedAt"`
}

// TransferOrderResult orden + reporte por línea del efecto de stock (si lo hubo).
type TransferOrderResult struct {
	Order       TransferOrderResponse `json:"order"`
	LineResults []LineResult          `json:"lineResults,omitempty"`
}

// TransferOrderListResponse listado de órdenes.
type TransferOrderListResponse struct {
	Total  int                     `json:"total"`
	Orders []TransferOrderResponse `json:"orders"`
}

// ToTransferOrderResponse mapea la entidad a su representación API.
func ToTransferOrderResponse(o *entity.TransferOrder) TransferOrderResponse {
	return TransferOrderResponse{
		ID:                       o.ID,
		TransferOrderNumber:      o.TransferOrderNumber,
		Date:                     o.Date,
		Reason:                   o.Reason,
		SourceWarehouse:          o.SourceWarehouse,
		DestinationWarehouse:     o.DestinationWarehouse,
		Status:                   o.Status,
		Lines:                    o.Lines,
		TotalQuantityTransferred: o.TotalQuantityTransferred,
		UserID:                   o.UserID,
		CreatedBy:                o.CreatedBy,
		ModifiedBy:               o.ModifiedBy,
		LocCode:                  o.LocCode,
		CreatedAt:                o.CreatedAt,
		UpdatedAt:                o.UpdatedAt,
	}
}
