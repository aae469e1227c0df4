package warehouse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Traslados-api/internal/domain/warehouse"
)

func newTestResolver() *warehouse.Resolver {
	return warehouse.NewResolver(map[string]string{
		"G.Kannur":  "Kannur Branch",
		"G.Calicut": "Calicut Branch",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Canonicalize
// ──────────────────────────────────────────────────────────────────────────────

func TestCanonicalize_AliasExacto(t *testing.T) {
	r := newTestResolver()
	assert.Equal(t, "Kannur Branch", r.Canonicalize("G.Kannur"))
}

func TestCanonicalize_AliasCaseInsensitive(t *testing.T) {
	r := newTestResolver()
	assert.Equal(t, "Kannur Branch", r.Canonicalize("g.kannur"))
	assert.Equal(t, "Calicut Branch", r.Canonicalize("G.CALICUT"))
}

func TestCanonicalize_SinAliasDevuelveRecortado(t *testing.T) {
	r := newTestResolver()
	assert.Equal(t, "Bodega Central", r.Canonicalize("  Bodega Central  "))
}

func TestCanonicalize_AliasConEspacios(t *testing.T) {
	// El alias se normaliza al cargarse; el input recortado debe matchear.
	r := warehouse.NewResolver(map[string]string{" G.Kannur ": "Kannur Branch"})
	assert.Equal(t, "Kannur Branch", r.Canonicalize("G.Kannur"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Matches — una subprueba por regla
// ──────────────────────────────────────────────────────────────────────────────

func TestMatches(t *testing.T) {
	r := newTestResolver()

	cases := []struct {
		name string
		a, b string
		want bool
	}{
		{"identicos", "Kannur Branch", "Kannur Branch", true},
		{"case insensitive", "kannur branch", "KANNUR BRANCH", true},
		{"espacios alrededor", " Kannur Branch ", "Kannur Branch", true},
		{"alias contra canonico", "G.Kannur", "Kannur Branch", true},
		{"alias contra alias", "g.kannur", "G.KANNUR", true},
		{"sufijo branch removido", "Kannur", "Kannur Branch", true},
		{"sufijo warehouse removido", "Central Warehouse", "Central", true},
		{"contencion de nombre base", "Kannur Norte", "Kannur", true},
		{"bodegas distintas", "Kannur Branch", "Calicut Branch", false},
		{"alias de otra bodega", "G.Kannur", "Calicut Branch", false},
		{"vacio contra nombre", "", "Kannur Branch", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.Matches(tc.a, tc.b), "Matches(%q, %q)", tc.a, tc.b)
			assert.Equal(t, tc.want, r.Matches(tc.b, tc.a), "Matches debe ser simétrico")
		})
	}
}

// Un nombre de un solo token conserva su forma: "Warehouse" a secas no queda
// vacío y por lo tanto no matchea con cualquier cosa.
func TestMatches_TokenUnicoNoColapsa(t *testing.T) {
	r := newTestResolver()
	assert.False(t, r.Matches("Warehouse", "Kannur Branch"))
	assert.True(t, r.Matches("Warehouse", "warehouse"))
}

func TestMatches_SinTablaDeAlias(t *testing.T) {
	r := warehouse.NewResolver(nil)
	assert.True(t, r.Matches("Kannur", "Kannur Branch"))
	assert.False(t, r.Matches("G.Kannur", "Calicut Branch"))
}
