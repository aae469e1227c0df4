package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

var _ repository.TransferOrderRepository = (*TransferOrderRepo)(nil)

// TransferOrderRepo implementación de TransferOrderRepository sobre PostgreSQL
// (usable con pool o tx). Las líneas se guardan como JSONB: son instantáneas
// fijas, nunca se consultan por separado.
type TransferOrderRepo struct {
	q Querier
}

// NewTransferOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewTransferOrderRepository(q Querier) *TransferOrderRepo {
	return &TransferOrderRepo{q: q}
}

const transferOrderColumns = `
	id, transfer_order_number, date, reason, source_warehouse, destination_warehouse,
	status, lines, total_quantity_transferred, user_id, created_by, modified_by,
	loc_code, stock_applied, stock_applied_at, created_at, updated_at`

// Create persiste una orden nueva. Devuelve domain.ErrDuplicate si el número ya existe.
func (r *TransferOrderRepo) Create(ctx context.Context, order *entity.TransferOrder) error {
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return fmt.Errorf("encode order lines: %w", err)
	}
	query := `
		INSERT INTO transfer_orders (` + transferOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err = r.q.Exec(ctx, query,
		order.ID, order.TransferOrderNumber, order.Date, order.Reason,
		order.SourceWarehouse, order.DestinationWarehouse, order.Status, lines,
		order.TotalQuantityTransferred, order.UserID, order.CreatedBy, order.ModifiedBy,
		order.LocCode, order.StockApplied, order.StockAppliedAt, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transfer order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID. Devuelve (nil, nil) si no existe.
func (r *TransferOrderRepo) GetByID(ctx context.Context, id string) (*entity.TransferOrder, error) {
	return r.getBy(ctx, "id", id, false)
}

// GetByIDForUpdate obtiene la orden y bloquea su fila, para que el chequeo y
// seteo del marcador stock_applied sea atómico con la mutación de stock.
func (r *TransferOrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.TransferOrder, error) {
	return r.getBy(ctx, "id", id, true)
}

// GetByNumber obtiene una orden por su número único. Devuelve (nil, nil) si no existe.
func (r *TransferOrderRepo) GetByNumber(ctx context.Context, number string) (*entity.TransferOrder, error) {
	return r.getBy(ctx, "transfer_order_number", number, false)
}

func (r *TransferOrderRepo) getBy(ctx context.Context, column, value string, forUpdate bool) (*entity.TransferOrder, error) {
	query := `
		SELECT ` + transferOrderColumns + `
		FROM transfer_orders WHERE ` + column + ` = $1`
	if forUpdate {
		query += `
		FOR UPDATE`
	}
	order, err := scanTransferOrder(r.q.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer order: %w", err)
	}
	return order, nil
}

// List trae órdenes con los filtros que sí se empujan a SQL (userId, status,
// rango de fechas), acotado a filter.Limit filas. Los filtros por bodega los
// aplica el caller en memoria con el resolver difuso.
func (r *TransferOrderRepo) List(ctx context.Context, filter repository.TransferOrderFilter) ([]*entity.TransferOrder, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}

	query := `
		SELECT ` + transferOrderColumns + `
		FROM transfer_orders`
	if len(conditions) > 0 {
		query += `
		WHERE ` + strings.Join(conditions, " AND ")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	args = append(args, limit)
	query += fmt.Sprintf(`
		ORDER BY date DESC, created_at DESC LIMIT $%d`, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfer orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.TransferOrder
	for rows.Next() {
		order, err := scanTransferOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer order: %w", err)
		}
		list = append(list, order)
	}
	return list, rows.Err()
}

// Update reescribe la orden completa (estado, marcador de idempotencia y auditoría).
func (r *TransferOrderRepo) Update(ctx context.Context, order *entity.TransferOrder) error {
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return fmt.Errorf("encode order lines: %w", err)
	}
	query := `
		UPDATE transfer_orders
		SET date = $2, reason = $3, status = $4, lines = $5, modified_by = $6,
		    stock_applied = $7, stock_applied_at = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		order.ID, order.Date, order.Reason, order.Status, lines, order.ModifiedBy,
		order.StockApplied, order.StockAppliedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la orden por ID.
func (r *TransferOrderRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM transfer_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transfer order: %w", err)
	}
	return nil
}

// scanTransferOrder mapea una fila a la entidad, decodificando las líneas JSONB.
func scanTransferOrder(row pgx.Row) (*entity.TransferOrder, error) {
	var (
		o     entity.TransferOrder
		lines []byte
	)
	err := row.Scan(
		&o.ID, &o.TransferOrderNumber, &o.Date, &o.Reason,
		&o.SourceWarehouse, &o.DestinationWarehouse, &o.Status, &lines,
		&o.TotalQuantityTransferred, &o.UserID, &o.CreatedBy, &o.ModifiedBy,
		&o.LocCode, &o.StockApplied, &o.StockAppliedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lines, &o.Lines); err != nil {
		return nil, fmt.Errorf("decode order lines: %w", err)
	}
	return &o, nil
}
