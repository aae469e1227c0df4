package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/stock"
	"github.com/jhoicas/Traslados-api/internal/domain/warehouse"
)

func newTestMutator() *stock.Mutator {
	return stock.NewMutator(warehouse.NewResolver(map[string]string{
		"G.Kannur": "Kannur Branch",
	}))
}

func record(name string, onHand, available int64) entity.StockRecord {
	rec := entity.StockRecord{WarehouseName: name}
	rec.StockOnHand = decimal.NewFromInt(onHand)
	rec.AvailableForSale = decimal.NewFromInt(available)
	rec.PhysicalStockOnHand = decimal.NewFromInt(onHand)
	rec.PhysicalAvailableForSale = decimal.NewFromInt(available)
	rec.CommittedStock = decimal.NewFromInt(3)
	rec.PhysicalCommittedStock = decimal.NewFromInt(3)
	return rec
}

func TestApply_AddSumaLosCuatroCampos(t *testing.T) {
	m := newTestMutator()
	records := []entity.StockRecord{record("Kannur Branch", 10, 8)}

	out, applied := m.Apply(records, decimal.NewFromInt(5), "Kannur Branch", stock.Add)

	require.True(t, applied)
	require.Len(t, out, 1)
	assert.True(t, out[0].StockOnHand.Equal(decimal.NewFromInt(15)))
	assert.True(t, out[0].AvailableForSale.Equal(decimal.NewFromInt(13)))
	assert.True(t, out[0].PhysicalStockOnHand.Equal(decimal.NewFromInt(15)))
	assert.True(t, out[0].PhysicalAvailableForSale.Equal(decimal.NewFromInt(13)))
}

func TestApply_SubtractRestaLosCuatroCampos(t *testing.T) {
	m := newTestMutator()
	records := []entity.StockRecord{record("Kannur Branch", 10, 8)}

	out, applied := m.Apply(records, decimal.NewFromInt(5), "Kannur Branch", stock.Subtract)

	require.True(t, applied)
	assert.True(t, out[0].StockOnHand.Equal(decimal.NewFromInt(5)))
	assert.True(t, out[0].AvailableForSale.Equal(decimal.NewFromInt(3)))
}

// La resta se trunca en cero campo por campo: los campos con saldo distinto
// terminan en valores distintos, no en un delta uniforme.
func TestApply_SubtractTruncaEnCeroPorCampo(t *testing.T) {
	m := newTestMutator()
	records := []entity.StockRecord{record("Kannur Branch", 10, 4)}

	out, applied := m.Apply(records, decimal.NewFromInt(7), "Kannur Branch", stock.Subtract)

	require.True(t, applied)
	assert.True(t, out[0].StockOnHand.Equal(decimal.NewFromInt(3)), "10-7=3")
	assert.True(t, out[0].AvailableForSale.Equal(decimal.Zero), "4-7 se trunca en 0")
}

// Los campos comprometidos y de apertura no participan de la mutación.
func TestApply_NoTocaCamposComprometidos(t *testing.T) {
	m := newTestMutator()
	records := []entity.StockRecord{record("Kannur Branch", 10, 8)}

	out, _ := m.Apply(records, decimal.NewFromInt(5), "Kannur Branch", stock.Add)

	assert.True(t, out[0].CommittedStock.Equal(decimal.NewFromInt(3)))
	assert.True(t, out[0].PhysicalCommittedStock.Equal(decimal.NewFromInt(3)))
}

// Con match difuso, el nombre guardado se reescribe al nombre objetivo
// (auto-reparación hacia la forma que usa el traslado).
func TestApply_MatchDifusoReescribeNombre(t *testing.T) {
	m := newTestMutator()
	records := []entity.StockRecord{record("G.Kannur", 10, 8)}

	out, applied := m.Apply(records, decimal.NewFromInt(2), "Kannur Branch", stock.Add)

	require.True(t, applied)
	assert.Equal(t, "Kannur Branch", out[0].WarehouseName)
	assert.True(t, out[0].StockOnHand.Equal(decimal.NewFromInt(12)))
}

// Solo el primer registro que matchea recibe el delta.
func TestApply_SoloElPrimerMatch(t *testing.T) {
	m := newTestMutator()
	records := []entity.StockRecord{
		record("Calicut Branch", 1, 1),
		record("Kannur Branch", 10, 10),
		record("Kannur", 20, 20),
	}

	out, applied := m.Apply(records, decimal.NewFromInt(5), "Kannur Branch", stock.Add)

	require.True(t, applied)
	assert.True(t, out[0].StockOnHand.Equal(decimal.NewFromInt(1)), "registro ajeno intacto")
	assert.True(t, out[1].StockOnHand.Equal(decimal.NewFromInt(15)), "primer match recibe el delta")
	assert.True(t, out[2].StockOnHand.Equal(decimal.NewFromInt(20)), "segundo match intacto")
}

// Add sin match siembra un registro nuevo con hand y available iguales al delta.
func TestApply_AddSinMatchSiembraRegistro(t *testing.T) {
	m := newTestMutator()
	records := []entity.StockRecord{record("Calicut Branch", 1, 1)}

	out, applied := m.Apply(records, decimal.NewFromInt(5), "Kannur Branch", stock.Add)

	require.True(t, applied)
	require.Len(t, out, 2)
	seeded := out[1]
	assert.Equal(t, "Kannur Branch", seeded.WarehouseName)
	assert.True(t, seeded.StockOnHand.Equal(decimal.NewFromInt(5)))
	assert.True(t, seeded.AvailableForSale.Equal(decimal.NewFromInt(5)))
	assert.True(t, seeded.PhysicalStockOnHand.Equal(decimal.NewFromInt(5)))
	assert.True(t, seeded.PhysicalAvailableForSale.Equal(decimal.NewFromInt(5)))
}

func TestApply_AddSobreListaVaciaSiembraRegistro(t *testing.T) {
	m := newTestMutator()

	out, applied := m.Apply(nil, decimal.NewFromInt(5), "Kannur Branch", stock.Add)

	require.True(t, applied)
	require.Len(t, out, 1)
	assert.Equal(t, "Kannur Branch", out[0].WarehouseName)
}

// Subtract sin match es un fallo suave: sin error, sin cambios, applied=false.
func TestApply_SubtractSinMatchFallaSuave(t *testing.T) {
	m := newTestMutator()
	records := []entity.StockRecord{record("Calicut Branch", 9, 9)}

	out, applied := m.Apply(records, decimal.NewFromInt(5), "Kannur Branch", stock.Subtract)

	assert.False(t, applied)
	require.Len(t, out, 1)
	assert.True(t, out[0].StockOnHand.Equal(decimal.NewFromInt(9)))
}

// La asimetría del truncado: restar de más y volver a sumar no restaura el
// saldo original sino el delta completo.
func TestApply_TruncadoAsimetricoEnIdaYVuelta(t *testing.T) {
	m := newTestMutator()
	records := []entity.StockRecord{record("Kannur Branch", 5, 5)}
	qty := decimal.NewFromInt(10)

	out, applied := m.Apply(records, qty, "Kannur Branch", stock.Subtract)
	require.True(t, applied)
	assert.True(t, out[0].StockOnHand.Equal(decimal.Zero))

	out, applied = m.Apply(out, qty, "Kannur Branch", stock.Add)
	require.True(t, applied)
	assert.True(t, out[0].StockOnHand.Equal(decimal.NewFromInt(10)), "0+10=10, no 5")
}
