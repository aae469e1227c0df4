package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

// TransferOrderFilter filtros de listado que sí se empujan a la consulta SQL.
// Los filtros por bodega NO van aquí: se aplican en memoria con el resolver
// difuso sobre el resultado acotado.
type TransferOrderFilter struct {
	UserID    string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int // tope de filas a traer (el caller usa 1000)
}

// TransferOrderRepository puerto de persistencia para órdenes de traslado.
type TransferOrderRepository interface {
	Create(ctx context.Context, order *entity.TransferOrder) error
	// GetByID devuelve (nil, nil) si la orden no existe.
	GetByID(ctx context.Context, id string) (*entity.TransferOrder, error)
	// GetByIDForUpdate bloquea la fila de la orden para que el chequeo y seteo
	// del marcador stock_applied sea atómico con la mutación de stock.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.TransferOrder, error)
	// GetByNumber devuelve (nil, nil) si no existe una orden con ese número.
	GetByNumber(ctx context.Context, transferOrderNumber string) (*entity.TransferOrder, error)
	List(ctx context.Context, filter TransferOrderFilter) ([]*entity.TransferOrder, error)
	Update(ctx context.Context, order *entity.TransferOrder) error
	Delete(ctx context.Context, id string) error
}
