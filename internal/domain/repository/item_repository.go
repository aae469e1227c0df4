package repository

import (
	"context"

	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

// ItemRepository puerto de persistencia para ítems individuales (documento completo).
type ItemRepository interface {
	// GetByID obtiene el ítem por ID. Devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetByIDForUpdate obtiene el ítem y bloquea su fila (SELECT FOR UPDATE)
	// para el read-modify-write de sus StockRecord. Devuelve (nil, nil) si no existe.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error)
	// Save persiste el documento completo del ítem (incluida su lista de stocks).
	Save(ctx context.Context, item *entity.Item) error
}

// ItemGroupRepository puerto de persistencia para grupos de ítems (documento completo).
type ItemGroupRepository interface {
	GetByID(ctx context.Context, id string) (*entity.ItemGroup, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.ItemGroup, error)
	// Save persiste el grupo entero; no existe guardado parcial de un miembro.
	Save(ctx context.Context, group *entity.ItemGroup) error
}
