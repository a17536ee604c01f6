package pagination_test

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/jhoicas/podocare-api/pkg/pagination"
)

// Concatenar todas las páginas reconstruye el slice original sin duplicados ni omisiones.
func TestProperty_PaginateArrayReconstruye(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("concatenación de páginas == items", prop.ForAll(
		func(items []int, size int) bool {
			pages := pagination.TotalPages(len(items), size)
			var rebuilt []int
			for p := 1; p <= pages; p++ {
				rebuilt = append(rebuilt, pagination.PaginateArray(items, p, size)...)
			}
			if len(rebuilt) != len(items) {
				return false
			}
			for i := range items {
				if rebuilt[i] != items[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int()),
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t)
}

func TestProperty_ClampPageEnRango(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("1 <= ClampPage <= max(1,total)", prop.ForAll(
		func(requested, total int) bool {
			got := pagination.ClampPage(requested, total)
			upper := total
			if upper < 1 {
				upper = 1
			}
			return got >= 1 && got <= upper
		},
		gen.IntRange(-1000, 1000),
		gen.IntRange(-50, 500),
	))

	properties.TestingRun(t)
}

func TestProperty_VisiblePagesAcotadas(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("<= 7 slots, extremos 1 y total", prop.ForAll(
		func(current, total int) bool {
			slots := pagination.ComputeVisiblePages(current, total)
			if len(slots) > pagination.MaxVisible {
				return false
			}
			last := total
			if last < 1 {
				last = 1
			}
			return slots[0] == 1 && slots[len(slots)-1] == pagination.Slot(last)
		},
		gen.IntRange(1, 400),
		gen.IntRange(-5, 400),
	))

	properties.Property("todo total <= 7 devuelve 1..total", prop.ForAll(
		func(current, total int) bool {
			slots := pagination.ComputeVisiblePages(current, total)
			if len(slots) != total {
				return false
			}
			for i, s := range slots {
				if s != pagination.Slot(i+1) {
					return false
				}
			}
			return true
		},
		gen.IntRange(-10, 10),
		gen.IntRange(1, 7),
	))

	properties.TestingRun(t)
}

// Páginas y tamaños extremos no desbordan: fuera de rango devuelve vacío.
func TestProperty_PaginateArrayPaginasEnormes(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("len <= size y vacío tras la última página", prop.ForAll(
		func(items []int, page, size int) bool {
			out := pagination.PaginateArray(items, page, size)
			if len(out) > size || len(out) > len(items) {
				return false
			}
			if page > pagination.TotalPages(len(items), size) {
				return len(out) == 0
			}
			r := pagination.ComputeItemRange(page, size, len(items))
			return r.Start >= 1 && r.End <= len(items)
		},
		gen.SliceOfN(20, gen.Int()),
		gen.IntRange(1, math.MaxInt),
		gen.IntRange(1, math.MaxInt),
	))

	properties.TestingRun(t)
}
