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

var _ repository.ItemGroupRepository = (*ItemGroupRepo)(nil)

// ItemGroupRepo implementación de ItemGroupRepository sobre PostgreSQL. El grupo
// es un documento: sus miembros (con los stocks de cada variante) viven en una
// columna JSONB que solo se lee y se escribe entera — no hay guardado parcial
// de un miembro (usable con pool o tx).
type ItemGroupRepo struct {
	q Querier
}

// NewItemGroupRepository construye el adaptador de grupos. Pasar pool o tx (Querier).
func NewItemGroupRepository(q Querier) *ItemGroupRepo {
	return &ItemGroupRepo{q: q}
}

// GetByID obtiene el grupo por ID. Devuelve (nil, nil) si no existe.
func (r *ItemGroupRepo) GetByID(ctx context.Context, id string) (*entity.ItemGroup, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate obtiene el grupo y bloquea su fila (SELECT FOR UPDATE).
// Devuelve (nil, nil) si no existe.
func (r *ItemGroupRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.ItemGroup, error) {
	return r.get(ctx, id, true)
}

func (r *ItemGroupRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.ItemGroup, error) {
	query := `
		SELECT id, name, items, created_at, updated_at
		FROM item_groups WHERE id = $1`
	if forUpdate {
		query += `
		FOR UPDATE`
	}
	var (
		g       entity.ItemGroup
		members []byte
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.Name, &members, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item group: %w", err)
	}
	if err := json.Unmarshal(members, &g.Items); err != nil {
		return nil, fmt.Errorf("decode group members: %w", err)
	}
	return &g, nil
}

// Save persiste el documento completo del grupo, con todos sus miembros.
func (r *ItemGroupRepo) Save(ctx context.Context, group *entity.ItemGroup) error {
	members, err := json.Marshal(group.Items)
	if err != nil {
		return fmt.Errorf("encode group members: %w", err)
	}
	query := `
		UPDATE item_groups
		SET name = $2, items = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, group.ID, group.Name, members, group.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save item group: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("save item group %s: fila no encontrada", group.ID)
	}
	return nil
}
