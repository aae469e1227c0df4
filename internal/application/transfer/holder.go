package transfer

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// LineTarget identifica el documento dueño del stock de una línea: un ítem
// individual (ItemID) o un miembro dentro de un grupo (ItemGroupID + ItemName,
// con ItemSKU como criterio preferido de búsqueda).
type LineTarget struct {
	ItemID      string
	ItemGroupID string
	ItemName    string
	ItemSKU     string
}

func targetFromLine(line entity.TransferLine) LineTarget {
	return LineTarget{
		ItemID:      line.ItemID,
		ItemGroupID: line.ItemGroupID,
		ItemName:    line.ItemName,
		ItemSKU:     line.ItemSKU,
	}
}

// isNullSentinel detecta los valores que los productores upstream mandan como
// "sin ítem": vacío o los literales null/undefined serializados como texto.
func isNullSentinel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null", "undefined":
		return true
	}
	return false
}

// StockHolder capacidad uniforme sobre el contenedor concreto de los StockRecord.
// El mutador y el resolver operan a través de esta interfaz sin saber si el
// dueño es un ítem individual o un miembro anidado en un grupo.
type StockHolder interface {
	Stocks() []entity.StockRecord
	SetStocks(records []entity.StockRecord)
	// Save persiste el documento dueño completo.
	Save(ctx context.Context) error
}

// resolveHolder localiza el contenedor de stock para un target.
// Devuelve domain.ErrItemNotFound si ni el ítem ni el miembro del grupo existen;
// en ese caso no se realiza ninguna mutación.
func resolveHolder(
	ctx context.Context,
	itemRepo repository.ItemRepository,
	groupRepo repository.ItemGroupRepository,
	target LineTarget,
	forUpdate bool,
) (StockHolder, error) {
	if !isNullSentinel(target.ItemID) {
		item, err := getItem(ctx, itemRepo, target.ItemID, forUpdate)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrItemNotFound
		}
		return &itemHolder{repo: itemRepo, item: item}, nil
	}

	if isNullSentinel(target.ItemGroupID) || isNullSentinel(target.ItemName) {
		return nil, domain.ErrItemNotFound
	}
	group, err := getGroup(ctx, groupRepo, target.ItemGroupID, forUpdate)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domain.ErrItemNotFound
	}
	idx := findMember(group.Items, target)
	if idx < 0 {
		return nil, domain.ErrItemNotFound
	}
	return &groupMemberHolder{repo: groupRepo, group: group, index: idx}, nil
}

func getItem(ctx context.Context, repo repository.ItemRepository, id string, forUpdate bool) (*entity.Item, error) {
	if forUpdate {
		return repo.GetByIDForUpdate(ctx, id)
	}
	return repo.GetByID(ctx, id)
}

func getGroup(ctx context.Context, repo repository.ItemGroupRepository, id string, forUpdate bool) (*entity.ItemGroup, error) {
	if forUpdate {
		return repo.GetByIDForUpdate(ctx, id)
	}
	return repo.GetByID(ctx, id)
}

// findMember busca el miembro por SKU exacto case-insensitive cuando ambos lados
// traen SKU; si no, por nombre exacto case-insensitive. Gana el primer match.
func findMember(members []entity.ItemGroupMember, target LineTarget) int {
	if target.ItemSKU != "" {
		for i := range members {
			if members[i].SKU != "" && strings.EqualFold(members[i].SKU, target.ItemSKU) {
				return i
			}
		}
	}
	for i := range members {
		if strings.EqualFold(members[i].Name, target.ItemName) {
			return i
		}
	}
	return -1
}

// itemHolder contenedor para un ítem individual.
type itemHolder struct {
	repo repository.ItemRepository
	item *entity.Item
}

func (h *itemHolder) Stocks() []entity.StockRecord { return h.item.Stocks }

func (h *itemHolder) SetStocks(records []entity.StockRecord) { h.item.Stocks = records }

func (h *itemHolder) Save(ctx context.Context) error {
	h.item.UpdatedAt = time.Now()
	return h.repo.Save(ctx, h.item)
}

// groupMemberHolder contenedor para un miembro anidado en un grupo. Guardar
// significa reescribir el miembro completo en su índice original y persistir
// el documento del grupo entero (el almacenamiento no soporta guardado parcial).
type groupMemberHolder struct {
	repo  repository.ItemGroupRepository
	group *entity.ItemGroup
	index int
}

func (h *groupMemberHolder) Stocks() []entity.StockRecord { return h.group.Items[h.index].Stocks }

func (h *groupMemberHolder) SetStocks(records []entity.StockRecord) {
	member := h.group.Items[h.index]
	member.Stocks = records
	h.group.Items[h.index] = member
}

func (h *groupMemberHolder) Save(ctx context.Context) error {
	h.group.UpdatedAt = time.Now()
	return h.repo.Save(ctx, h.group)
}
