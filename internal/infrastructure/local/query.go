package local

import (
	"slices"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/podocare-api/internal/domain/entity"
)

// fold pasa a minúsculas y quita tildes: "Pérez" → "perez".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// filterBy devuelve los elementos que cumplen pred, en una copia.
func filterBy[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// search subcadena sin distinguir mayúsculas ni tildes sobre los campos
// declarados. Un término vacío devuelve todo.
func search[T any](items []T, term string, fields func(T) []string) []T {
	q := fold(term)
	if q == "" || fields == nil {
		return items
	}
	return filterBy(items, func(it T) bool {
		for _, f := range fields(it) {
			if strings.Contains(fold(f), q) {
				return true
			}
		}
		return false
	})
}

// newestFirst ordena por fecha descendente (estable).
func newestFirst[T entity.Entity](items []T, date func(T) time.Time) {
	if date == nil {
		date = func(it T) time.Time { return it.GetCreatedAt() }
	}
	slices.SortStableFunc(items, func(a, b T) int {
		return date(b).Compare(date(a))
	})
}

func equalFold(a, b string) bool { return fold(a) == fold(b) }
