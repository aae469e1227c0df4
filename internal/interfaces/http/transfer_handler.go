package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/application/transfer"
	"github.com/jhoicas/Traslados-api/internal/domain"
)

// TransferOrderHandler maneja las peticiones HTTP de órdenes de traslado (protegido).
// El handler es plumbing delgado: la conciliación de stock vive en el caso de uso.
type TransferOrderHandler struct {
	uc *transfer.TransferOrderUseCase
}

// NewTransferOrderHandler construye el handler.
func NewTransferOrderHandler(uc *transfer.TransferOrderUseCase) *TransferOrderHandler {
	return &TransferOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de traslado
// @Description  Crea la orden con instantáneas de stock por línea capturadas antes
//
//	de cualquier mutación. Si nace en "transferred" aplica el efecto
//	forward y devuelve el reporte por línea.
//
// @Tags         transfer-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferOrderRequest  true  "Datos de la orden"
// @Success      201   {object}  dto.TransferOrderResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfer-orders [post]
func (h *TransferOrderHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateTransferOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return mapTransferError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes de traslado
// @Description  Los filtros por bodega se resuelven con matching difuso de nombres.
// @Tags         transfer-orders
// @Security     Bearer
// @Produce      json
// @Param        sourceWarehouse       query  string  false  "Bodega origen (matching difuso)"
// @Param        destinationWarehouse  query  string  false  "Bodega destino (matching difuso)"
// @Param        status                query  string  false  "draft | in_transit | transferred"
// @Param        startDate             query  string  false  "YYYY-MM-DD"
// @Param        endDate               query  string  false  "YYYY-MM-DD"
// @Param        userId                query  string  false  "Filtrar por usuario"
// @Success      200  {object}  dto.TransferOrderListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transfer-orders [get]
func (h *TransferOrderHandler) List(c *fiber.Ctx) error {
	var q dto.ListTransferOrdersQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query params inválidos"})
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return mapTransferError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de traslado por ID
// @Tags         transfer-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.TransferOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfer-orders/{id} [get]
func (h *TransferOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapTransferError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar orden de traslado
// @Description  El cambio de estado dispara la conciliación de stock (forward al
//
//	entrar a "transferred", reverse al salir). El estado se actualiza
//	aunque alguna línea falle; el detalle va en lineResults.
//
// @Tags         transfer-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la orden"
// @Param        body  body  dto.UpdateTransferOrderRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.TransferOrderResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transfer-orders/{id} [put]
func (h *TransferOrderHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateTransferOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), userID, in)
	if err != nil {
		return mapTransferError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden de traslado
// @Description  Si la orden está "transferred" con stock aplicado, primero revierte
//
//	el movimiento y después borra la fila.
//
// @Tags         transfer-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.TransferOrderResult
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfer-orders/{id} [delete]
func (h *TransferOrderHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return mapTransferError(c, err)
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Recibir orden de traslado
// @Description  Solo permitido con la orden en "in_transit"; el rechazo nombra el
//
//	estado actual y no toca stock.
//
// @Tags         transfer-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.TransferOrderResult
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfer-orders/{id}/receive [put]
func (h *TransferOrderHandler) Receive(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.Receive(c.Context(), c.Params("id"), userID)
	if err != nil {
		return mapTransferError(c, err)
	}
	return c.JSON(out)
}

// CurrentStock godoc
// @Summary      Stock actual de un ítem en una bodega
// @Tags         transfer-orders
// @Security     Bearer
// @Produce      json
// @Param        itemId       query  string  false  "ID del ítem individual"
// @Param        itemGroupId  query  string  false  "ID del grupo (con itemName)"
// @Param        itemName     query  string  false  "Nombre del ítem o miembro"
// @Param        itemSku      query  string  false  "SKU del miembro (preferido)"
// @Param        warehouse    query  string  true   "Nombre de bodega (matching difuso)"
// @Success      200  {object}  dto.CurrentStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfer-orders/stock/item [get]
func (h *TransferOrderHandler) CurrentStock(c *fiber.Ctx) error {
	var q dto.CurrentStockQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query params inválidos"})
	}
	out, err := h.uc.CurrentStock(c.Context(), q)
	if err != nil {
		return mapTransferError(c, err)
	}
	return c.JSON(out)
}

// mapTransferError traduce errores de dominio a respuestas HTTP. Los fallos de
// validación nunca llegan aquí con stock mutado: se rechazan antes de tocar nada.
func mapTransferError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	case errors.Is(err, domain.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ITEM_NOT_FOUND", Message: "ítem no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_NUMBER", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error inesperado en transfer-orders")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
