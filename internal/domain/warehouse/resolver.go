package warehouse

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Resolver canonicaliza y compara de forma tolerante nombres de bodega.
// Los nombres llegan de varios productores upstream con prefijos y mayúsculas
// inconsistentes (código de localización vs. etiqueta de sucursal), así que la
// comparación debe tolerarlos sin una foreign key dura.
//
// La tabla de alias es datos de configuración inyectados, no una constante:
// agregar un alias nuevo no toca la lógica del motor.
type Resolver struct {
	aliases map[string]string // alias exacto -> nombre canónico
	folded  map[string]string // alias en minúsculas -> nombre canónico
}

// NewResolver construye el resolver con la tabla de alias (raw -> canónico).
// Acepta nil como tabla vacía.
func NewResolver(aliases map[string]string) *Resolver {
	r := &Resolver{
		aliases: make(map[string]string, len(aliases)),
		folded:  make(map[string]string, len(aliases)),
	}
	for raw, canonical := range aliases {
		key := normalize(raw)
		r.aliases[key] = canonical
		r.folded[strings.ToLower(key)] = canonical
	}
	return r
}

// Canonicalize busca raw (recortado) en la tabla de alias: primero match exacto,
// después case-insensitive. Si no hay alias devuelve el input recortado sin cambios.
func (r *Resolver) Canonicalize(raw string) string {
	name := normalize(raw)
	if canonical, ok := r.aliases[name]; ok {
		return canonical
	}
	if canonical, ok := r.folded[strings.ToLower(name)]; ok {
		return canonical
	}
	return name
}

// Matches decide si dos nombres de bodega refieren a la misma bodega.
// Reglas en orden, cortocircuito en la primera verdadera:
//  1. igualdad case-insensitive de las formas canónicas
//  2. igualdad case-insensitive de los strings recortados
//  3. igualdad del "nombre base" tras quitar un token final "branch"/"warehouse"
//  4. contención de substring del nombre base en cualquiera de las dos direcciones
//
// Gana el primer match; no hay detección de ambigüedad si dos bodegas podrían
// satisfacer las reglas 3 o 4 para el mismo input.
func (r *Resolver) Matches(a, b string) bool {
	if strings.EqualFold(r.Canonicalize(a), r.Canonicalize(b)) {
		return true
	}
	ta, tb := normalize(a), normalize(b)
	if strings.EqualFold(ta, tb) {
		return true
	}
	ba, bb := baseName(ta), baseName(tb)
	if ba == "" || bb == "" {
		return false
	}
	if ba == bb {
		return true
	}
	return strings.Contains(ba, bb) || strings.Contains(bb, ba)
}

// normalize recorta espacios y normaliza a NFC para que nombres visualmente
// idénticos con codificaciones Unicode distintas comparen igual.
func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// baseName devuelve el nombre en minúsculas sin un token final "branch" o
// "warehouse". Un nombre de un solo token se conserva tal cual ("Warehouse"
// a secas sigue siendo "warehouse").
func baseName(s string) string {
	lower := strings.ToLower(s)
	fields := strings.Fields(lower)
	if len(fields) < 2 {
		return lower
	}
	last := fields[len(fields)-1]
	if last == "branch" || last == "warehouse" {
		return strings.Join(fields[:len(fields)-1], " ")
	}
	return lower
}
