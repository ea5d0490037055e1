// Package identity canonicaliza nombres de agentes y define la política de visibilidad
// por fila que usan el CRM y los listados.
//
// Los nombres llegan escritos a mano en planillas distintas ("Juan Pérez", "JUAN  PEREZ",
// "juan perez ") y además existen dos diccionarios de equivalencias:
//   - alias: nombre corto de métricas → nombre legal de RRHH (MAPEO_IDENTIDADES)
//   - nombres CRM: nombre legal → nombre corto que se ve en el CRM (NOMBRES_CRM)
package identity

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer convierte nombres libres en la clave canónica usada en todo el sistema.
// Es inmutable después de construido; seguro para uso concurrente.
type Normalizer struct {
	aliases map[string]string
}

// NewNormalizer construye el normalizador. Claves y valores del diccionario de alias se
// limpian al construir y las cadenas (A→B, B→C) se resuelven hasta su punto fijo, de modo
// que Normalize(Normalize(x)) == Normalize(x) para cualquier diccionario.
func NewNormalizer(aliases map[string]string) *Normalizer {
	cleaned := make(map[string]string, len(aliases))
	for k, v := range aliases {
		ck, cv := Clean(k), Clean(v)
		if ck == "" || cv == "" || ck == cv {
			continue
		}
		cleaned[ck] = cv
	}

	resolved := make(map[string]string, len(cleaned))
	for k := range cleaned {
		resolved[k] = resolveChain(cleaned, k)
	}
	for k, v := range resolved {
		if k == v {
			delete(resolved, k)
		}
	}
	return &Normalizer{aliases: resolved}
}

// resolveChain sigue el diccionario desde start hasta un nombre que no sea clave.
// Si encuentra un ciclo devuelve el menor nombre (orden lexicográfico) del ciclo,
// lo que da el mismo resultado para cualquier miembro.
func resolveChain(aliases map[string]string, start string) string {
	seen := map[string]int{start: 0}
	path := []string{start}
	cur := start
	for {
		next, ok := aliases[cur]
		if !ok {
			return cur
		}
		if idx, loop := seen[next]; loop {
			cycle := append([]string(nil), path[idx:]...)
			sort.Strings(cycle)
			return cycle[0]
		}
		seen[next] = len(path)
		path = append(path, next)
		cur = next
	}
}

// Normalize devuelve el nombre canónico: limpieza estándar y luego el diccionario de alias.
// Una entrada vacía devuelve "" (categoría "desconocido" filtrable, no un error).
func (n *Normalizer) Normalize(raw string) string {
	clean := Clean(raw)
	if clean == "" {
		return ""
	}
	if legal, ok := n.aliases[clean]; ok {
		return legal
	}
	return clean
}

// cleanPasses tope de pasadas de limpieza; en la práctica basta con dos.
const cleanPasses = 4

// Clean aplica la limpieza estándar sin diccionarios: mayúsculas, sin tildes ni diacríticos,
// espacios internos colapsados y recortado.
//
// Algunas minúsculas precompuestas ("ǰ", "ΐ") no tienen mayúscula de una sola runa: al quitar
// la marca queda la base en minúscula. La pasada se repite hasta que el texto no cambie.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}
	s := cleanPass(raw)
	for i := 1; i < cleanPasses; i++ {
		next := cleanPass(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

func cleanPass(s string) string {
	s = strings.ToUpper(stripDiacritics(strings.ToUpper(s)))
	return strings.Join(strings.Fields(s), " ")
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// DisplayNames traduce un nombre canónico al nombre corto con el que figura en el CRM.
type DisplayNames struct {
	names map[string]string
}

// NewDisplayNames construye la tabla; las claves se normalizan con n para que la búsqueda
// funcione sobre nombres ya canónicos.
func NewDisplayNames(n *Normalizer, names map[string]string) *DisplayNames {
	m := make(map[string]string, len(names))
	for k, v := range names {
		if ck := n.Normalize(k); ck != "" {
			m[ck] = Clean(v)
		}
	}
	return &DisplayNames{names: m}
}

// Short devuelve el nombre corto si existe; en otro caso el mismo nombre.
func (d *DisplayNames) Short(canonical string) string {
	if d == nil {
		return canonical
	}
	if short, ok := d.names[canonical]; ok && short != "" {
		return short
	}
	return canonical
}
