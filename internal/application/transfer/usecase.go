package transfer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
	"github.com/jhoicas/Traslados-api/internal/domain/stock"
	"github.com/jhoicas/Traslados-api/internal/domain/transfer"
	"github.com/jhoicas/Traslados-api/internal/domain/warehouse"
)

// maxListRows tope de filas que se traen del store al listar; los filtros por
// bodega se aplican después en memoria con el resolver difuso.
const maxListRows = 1000

// dateLayout formato de fecha aceptado en requests (YYYY-MM-DD).
const dateLayout = "2006-01-02"

// TransferOrderUseCase concilia el stock entre bodegas según el ciclo de vida
// de las órdenes de traslado. Toda mutación corre en una transacción: las filas
// de los ítems se bloquean (SELECT FOR UPDATE) durante el read-modify-write y el
// marcador stock_applied de la orden se verifica y fija en esa misma transacción.
type TransferOrderUseCase struct {
	txRunner  TxRunner
	orderRepo repository.TransferOrderRepository
	itemRepo  repository.ItemRepository
	groupRepo repository.ItemGroupRepository
	resolver  *warehouse.Resolver
	mutator   *stock.Mutator
}

// NewTransferOrderUseCase construye el caso de uso. Los repos recibidos se usan
// para lecturas fuera de transacción; las mutaciones usan los repos del TxRunner.
func NewTransferOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.TransferOrderRepository,
	itemRepo repository.ItemRepository,
	groupRepo repository.ItemGroupRepository,
	resolver *warehouse.Resolver,
) *TransferOrderUseCase {
	return &TransferOrderUseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		groupRepo: groupRepo,
		resolver:  resolver,
		mutator:   stock.NewMutator(resolver),
	}
}

// Create valida y persiste una orden nueva. Los niveles sourceQuantity y
// destQuantity de cada línea se capturan antes de cualquier mutación; si la
// orden nace en "transferred" se aplica el efecto forward línea por línea en
// la misma transacción y se fija el marcador stock_applied.
func (uc *TransferOrderUseCase) Create(ctx context.Context, userID string, in dto.CreateTransferOrderRequest) (*dto.TransferOrderResult, error) {
	status := in.Status
	if status == "" {
		status = entity.TransferStatusDraft
	}
	if !entity.IsValidTransferStatus(status) {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, in.Status)
	}
	if in.TransferOrderNumber == "" || in.SourceWarehouse == "" || in.DestinationWarehouse == "" {
		return nil, fmt.Errorf("%w: transferOrderNumber, sourceWarehouse y destinationWarehouse son requeridos", domain.ErrInvalidInput)
	}
	if strings.EqualFold(strings.TrimSpace(in.SourceWarehouse), strings.TrimSpace(in.DestinationWarehouse)) {
		return nil, fmt.Errorf("%w: la bodega origen y destino no pueden ser la misma", domain.ErrInvalidInput)
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q inválida (se espera YYYY-MM-DD)", domain.ErrInvalidInput, in.Date)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la orden necesita al menos una línea", domain.ErrInvalidInput)
	}
	for _, l := range in.Items {
		if !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: la cantidad de cada línea debe ser mayor que cero", domain.ErrInvalidInput)
		}
		if isNullSentinel(l.ItemID) && (isNullSentinel(l.ItemGroupID) || isNullSentinel(l.ItemName)) {
			return nil, fmt.Errorf("%w: cada línea necesita itemId o itemGroupId+itemName", domain.ErrInvalidInput)
		}
	}

	existing, err := uc.orderRepo.GetByNumber(ctx, in.TransferOrderNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe una orden con número %q", domain.ErrDuplicate, in.TransferOrderNumber)
	}

	now := time.Now()
	order := &entity.TransferOrder{
		ID:                   uuid.New().String(),
		TransferOrderNumber:  in.TransferOrderNumber,
		Date:                 date,
		Reason:               in.Reason,
		SourceWarehouse:      in.SourceWarehouse,
		DestinationWarehouse: in.DestinationWarehouse,
		Status:               status,
		UserID:               userID,
		CreatedBy:            userID,
		LocCode:              in.LocCode,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	var report []dto.LineResult
	err = uc.txRunner.Run(ctx, func(
		orders repository.TransferOrderRepository,
		items repository.ItemRepository,
		groups repository.ItemGroupRepository,
	) error {
		total := decimal.Zero
		for _, l := range in.Items {
			line := entity.TransferLine{
				ItemID:         sentinelToEmpty(l.ItemID),
				ItemGroupID:    sentinelToEmpty(l.ItemGroupID),
				ItemName:       l.ItemName,
				ItemSKU:        l.ItemSKU,
				Quantity:       l.Quantity,
				SourceQuantity: decimal.Zero,
				DestQuantity:   decimal.Zero,
			}
			// Instantánea pre-mutación, solo para visualización y auditoría.
			if holder, herr := resolveHolder(ctx, items, groups, targetFromLine(line), false); herr == nil {
				line.SourceQuantity = uc.stockLevel(holder.Stocks(), in.SourceWarehouse)
				line.DestQuantity = uc.stockLevel(holder.Stocks(), in.DestinationWarehouse)
			} else if !errors.Is(herr, domain.ErrItemNotFound) {
				return herr
			}
			order.Lines = append(order.Lines, line)
			total = total.Add(l.Quantity)
		}
		order.TotalQuantityTransferred = total

		if status == entity.TransferStatusTransferred {
			report = uc.applyEffect(ctx, items, groups, order, transfer.EffectForward)
			applied := time.Now()
			order.StockApplied = true
			order.StockAppliedAt = &applied
		}
		return orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return &dto.TransferOrderResult{Order: dto.ToTransferOrderResponse(order), LineResults: report}, nil
}

// Get obtiene una orden por ID.
func (uc *TransferOrderUseCase) Get(ctx context.Context, id string) (*dto.TransferOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToTransferOrderResponse(order)
	return &out, nil
}

// List trae hasta maxListRows órdenes filtrando userId/status/fechas en la
// consulta, y aplica los filtros de bodega en memoria con el resolver difuso
// (los nombres guardados pueden no coincidir literalmente con el query param).
func (uc *TransferOrderUseCase) List(ctx context.Context, q dto.ListTransferOrdersQuery) (*dto.TransferOrderListResponse, error) {
	filter := repository.TransferOrderFilter{
		UserID: q.UserID,
		Status: q.Status,
		Limit:  maxListRows,
	}
	if q.Status != "" && !entity.IsValidTransferStatus(q.Status) {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, q.Status)
	}
	if q.StartDate != "" {
		d, err := parseDate(q.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: startDate %q inválida", domain.ErrInvalidInput, q.StartDate)
		}
		filter.StartDate = &d
	}
	if q.EndDate != "" {
		d, err := parseDate(q.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: endDate %q inválida", domain.ErrInvalidInput, q.EndDate)
		}
		filter.EndDate = &d
	}

	orders, err := uc.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := &dto.TransferOrderListResponse{Orders: []dto.TransferOrderResponse{}}
	for _, o := range orders {
		if q.SourceWarehouse != "" && !uc.resolver.Matches(o.SourceWarehouse, q.SourceWarehouse) {
			continue
		}
		if q.DestinationWarehouse != "" && !uc.resolver.Matches(o.DestinationWarehouse, q.DestinationWarehouse) {
			continue
		}
		out.Orders = append(out.Orders, dto.ToTransferOrderResponse(o))
	}
	out.Total = len(out.Orders)
	return out, nil
}

// Update cambia el estado de la orden y concilia el stock según el marcador:
// forward al entrar a "transferred" sin stock aplicado, reverse al salir de
// "transferred" con stock aplicado, nada en el resto. El estado de la orden se
// actualiza aunque alguna línea falle; el fallo parcial queda visible en el
// reporte en lugar de perderse.
func (uc *TransferOrderUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateTransferOrderRequest) (*dto.TransferOrderResult, error) {
	if !entity.IsValidTransferStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, in.Status)
	}
	if in.Date != "" {
		if _, err := parseDate(in.Date); err != nil {
			return nil, fmt.Errorf("%w: fecha %q inválida (se espera YYYY-MM-DD)", domain.ErrInvalidInput, in.Date)
		}
	}

	var result *dto.TransferOrderResult
	err := uc.txRunner.Run(ctx, func(
		orders repository.TransferOrderRepository,
		items repository.ItemRepository,
		groups repository.ItemGroupRepository,
	) error {
		order, err := orders.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}

		var report []dto.LineResult
		switch transfer.RequiredEffect(order.StockApplied, in.Status) {
		case transfer.EffectForward:
			report = uc.applyEffect(ctx, items, groups, order, transfer.EffectForward)
			applied := time.Now()
			order.StockApplied = true
			order.StockAppliedAt = &applied
		case transfer.EffectReverse:
			report = uc.applyEffect(ctx, items, groups, order, transfer.EffectReverse)
			order.StockApplied = false
			order.StockAppliedAt = nil
		}

		order.Status = in.Status
		if in.Date != "" {
			d, _ := parseDate(in.Date)
			order.Date = d
		}
		if in.Reason != "" {
			order.Reason = in.Reason
		}
		order.ModifiedBy = userID
		order.UpdatedAt = time.Now()
		if err := orders.Update(ctx, order); err != nil {
			return err
		}
		result = &dto.TransferOrderResult{Order: dto.ToTransferOrderResponse(order), LineResults: report}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Receive ejecuta la acción explícita de recepción: solo se permite con la
// orden en "in_transit"; el rechazo nombra el estado actual y no toca stock.
func (uc *TransferOrderUseCase) Receive(ctx context.Context, id, userID string) (*dto.TransferOrderResult, error) {
	var result *dto.TransferOrderResult
	err := uc.txRunner.Run(ctx, func(
		orders repository.TransferOrderRepository,
		items repository.ItemRepository,
		groups repository.ItemGroupRepository,
	) error {
		order, err := orders.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if err := transfer.ValidateReceive(order.Status); err != nil {
			return err
		}

		var report []dto.LineResult
		if transfer.RequiredEffect(order.StockApplied, entity.TransferStatusTransferred) == transfer.EffectForward {
			report = uc.applyEffect(ctx, items, groups, order, transfer.EffectForward)
			applied := time.Now()
			order.StockApplied = true
			order.StockAppliedAt = &applied
		}
		order.Status = entity.TransferStatusTransferred
		order.ModifiedBy = userID
		order.UpdatedAt = time.Now()
		if err := orders.Update(ctx, order); err != nil {
			return err
		}
		result = &dto.TransferOrderResult{Order: dto.ToTransferOrderResponse(order), LineResults: report}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete elimina la orden; si el stock sigue aplicado primero lo revierte,
// dentro de la misma transacción que borra la fila.
func (uc *TransferOrderUseCase) Delete(ctx context.Context, id string) (*dto.TransferOrderResult, error) {
	var result *dto.TransferOrderResult
	err := uc.txRunner.Run(ctx, func(
		orders repository.TransferOrderRepository,
		items repository.ItemRepository,
		groups repository.ItemGroupRepository,
	) error {
		order, err := orders.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		var report []dto.LineResult
		if transfer.DeleteEffect(order.StockApplied) == transfer.EffectReverse {
			report = uc.applyEffect(ctx, items, groups, order, transfer.EffectReverse)
		}
		if err := orders.Delete(ctx, order.ID); err != nil {
			return err
		}
		result = &dto.TransferOrderResult{Order: dto.ToTransferOrderResponse(order), LineResults: report}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyEffect aplica el efecto forward o reverse línea por línea. Cada línea
// carga su documento dueño con bloqueo de fila, aplica el mutador y guarda el
// documento; el resultado se acumula en el reporte y un fallo nunca aborta las
// líneas hermanas.
func (uc *TransferOrderUseCase) applyEffect(
	ctx context.Context,
	items repository.ItemRepository,
	groups repository.ItemGroupRepository,
	order *entity.TransferOrder,
	effect transfer.Effect,
) []dto.LineResult {
	subtractWh, addWh := order.SourceWarehouse, order.DestinationWarehouse
	if effect == transfer.EffectReverse {
		subtractWh, addWh = addWh, subtractWh
	}

	results := make([]dto.LineResult, 0, len(order.Lines))
	for _, line := range order.Lines {
		res := dto.LineResult{
			ItemID:      line.ItemID,
			ItemGroupID: line.ItemGroupID,
			ItemName:    line.ItemName,
			Status:      dto.LineResultSuccess,
		}

		holder, err := resolveHolder(ctx, items, groups, targetFromLine(line), true)
		if err != nil {
			if errors.Is(err, domain.ErrItemNotFound) {
				res.Status = dto.LineResultFailed
				res.Message = "ítem no encontrado"
			} else {
				res.Status = dto.LineResultError
				res.Message = err.Error()
				log.Error().Err(err).
					Str("order", order.TransferOrderNumber).
					Str("item", line.ItemName).
					Msg("cargar documento de stock")
			}
			results = append(results, res)
			continue
		}

		records := holder.Stocks()
		records, subtracted := uc.mutator.Apply(records, line.Quantity, subtractWh, stock.Subtract)
		records, _ = uc.mutator.Apply(records, line.Quantity, addWh, stock.Add)
		holder.SetStocks(records)

		if err := holder.Save(ctx); err != nil {
			res.Status = dto.LineResultError
			res.Message = err.Error()
			log.Error().Err(err).
				Str("order", order.TransferOrderNumber).
				Str("item", line.ItemName).
				Msg("guardar documento de stock")
			results = append(results, res)
			continue
		}
		if !subtracted {
			res.Status = dto.LineResultFailed
			res.Message = fmt.Sprintf("sin registro de stock que restar en %q", subtractWh)
		}
		results = append(results, res)
	}
	return results
}

// stockLevel devuelve el stockOnHand del primer registro que haga match con la
// bodega, o cero si no hay registro.
func (uc *TransferOrderUseCase) stockLevel(records []entity.StockRecord, warehouseName string) decimal.Decimal {
	for i := range records {
		if uc.resolver.Matches(records[i].WarehouseName, warehouseName) {
			return records[i].StockOnHand
		}
	}
	return decimal.Zero
}

func sentinelToEmpty(s string) string {
	if isNullSentinel(s) {
		return ""
	}
	return s
}

func parseDate(s string) (time.Time, error) {
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, s)
}
