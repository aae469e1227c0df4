package transfer

import (
	"context"

	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que el marcador de idempotencia de la orden y las
// mutaciones de stock se confirmen (o se deshagan) juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.TransferOrderRepository,
		itemRepo repository.ItemRepository,
		groupRepo repository.ItemGroupRepository,
	) error) error
}
