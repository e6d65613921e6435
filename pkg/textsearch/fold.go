// Package textsearch búsqueda de texto sin distinguir mayúsculas ni acentos ("Peça" encuentra "peca").
package textsearch

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normaliza s: descompone, quita marcas diacríticas y pliega mayúsculas.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	// Caser y Transformer tienen estado: uno nuevo por llamada.
	return cases.Fold().String(strings.TrimSpace(out))
}

// Matcher compara un término ya normalizado contra varios campos.
type Matcher struct {
	term string
}

// NewMatcher prepara el término de búsqueda. Un término vacío coincide con todo.
func NewMatcher(term string) Matcher {
	return Matcher{term: Fold(term)}
}

// Empty indica si no hay término.
func (m Matcher) Empty() bool { return m.term == "" }

// Match true si algún campo contiene el término.
func (m Matcher) Match(fields ...string) bool {
	if m.term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), m.term) {
			return true
		}
	}
	return false
}

// Filter devuelve los elementos de items cuyos campos coinciden.
func Filter[T any](items []T, term string, fields func(T) []string) []T {
	m := NewMatcher(term)
	if m.Empty() {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if m.Match(fields(it)...) {
			out = append(out, it)
		}
	}
	return out
}
