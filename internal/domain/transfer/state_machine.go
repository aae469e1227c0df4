package transfer

import (
	"fmt"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

// Effect es el efecto de stock que exige una transición de estado.
type Effect int

const (
	// EffectNone la transición no mueve stock.
	EffectNone Effect = iota
	// EffectForward restar en bodega origen, sumar en bodega destino, una vez por línea.
	EffectForward
	// EffectReverse el inverso exacto del forward, para compensar un traslado deshecho.
	EffectReverse
)

// String para logs y mensajes.
func (e Effect) String() string {
	switch e {
	case EffectForward:
		return "forward"
	case EffectReverse:
		return "reverse"
	default:
		return "none"
	}
}

// RequiredEffect decide el efecto de stock para llevar una orden al estado newStatus.
//
// El estado deseado es: stock aplicado si y solo si la orden está en "transferred".
// Derivar el efecto del marcador stockApplied (y no del par de estados viejo/nuevo)
// hace la operación idempotente: repetir el mismo update no duplica ni pierde un
// efecto, porque el marcador se verifica y se fija en la misma transacción que la
// mutación de stock.
func RequiredEffect(stockApplied bool, newStatus string) Effect {
	switch {
	case newStatus == entity.TransferStatusTransferred && !stockApplied:
		return EffectForward
	case newStatus != entity.TransferStatusTransferred && stockApplied:
		return EffectReverse
	default:
		return EffectNone
	}
}

// DeleteEffect decide el efecto al eliminar una orden: si el stock sigue aplicado
// se revierte antes de borrar la fila; si no, se borra sin tocar stock.
func DeleteEffect(stockApplied bool) Effect {
	if stockApplied {
		return EffectReverse
	}
	return EffectNone
}

// ValidateReceive verifica la precondición de la acción "receive": solo se
// permite cuando la orden está en tránsito. El error nombra el estado actual.
func ValidateReceive(currentStatus string) error {
	if currentStatus != entity.TransferStatusInTransit {
		return fmt.Errorf("%w: la orden está en estado %q y solo puede recibirse en %q",
			domain.ErrConflict, currentStatus, entity.TransferStatusInTransit)
	}
	return nil
}
