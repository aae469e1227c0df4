package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL. El ítem se maneja
// como documento: la lista de StockRecord vive en una columna JSONB que se lee
// y se escribe completa (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// GetByID obtiene el ítem por ID. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate obtiene el ítem y bloquea su fila (SELECT FOR UPDATE) para
// el read-modify-write de sus stocks. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.get(ctx, id, true)
}

func (r *ItemRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Item, error) {
	query := `
		SELECT id, name, sku, cost_price, stocks, created_at, updated_at
		FROM items WHERE id = $1`
	if forUpdate {
		query += `
		FOR UPDATE`
	}
	var (
		i      entity.Item
		stocks []byte
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&i.ID, &i.Name, &i.SKU, &i.CostPrice, &stocks, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	if err := json.Unmarshal(stocks, &i.Stocks); err != nil {
		return nil, fmt.Errorf("decode item stocks: %w", err)
	}
	return &i, nil
}

// Save persiste el documento completo del ítem, incluida la lista de stocks.
func (r *ItemRepo) Save(ctx context.Context, item *entity.Item) error {
	stocks, err := json.Marshal(item.Stocks)
	if err != nil {
		return fmt.Errorf("encode item stocks: %w", err)
	}
	query := `
		UPDATE items
		SET name = $2, sku = $3, cost_price = $4, stocks = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.SKU, item.CostPrice, stocks, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("save item %s: fila no encontrada", item.ID)
	}
	return nil
}
