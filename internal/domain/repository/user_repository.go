package repository

import (
	"context"

	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Solo lo que necesita el login; las cuentas se administran fuera de este servicio.
type UserRepository interface {
	// FindByEmail devuelve (nil, nil) si el usuario no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
