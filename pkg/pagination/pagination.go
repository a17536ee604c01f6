// Package pagination calcula ventanas de página, rangos de ítems y secuencias
// de números de página. No tiene efectos secundarios: la usan tanto los
// repositorios locales (para cortar el conjunto completo) como el estado de
// paginación que consume la interfaz.
package pagination

import (
	"math"
	"strconv"
)

// Valores por defecto de paginación.
// DefaultLimit es el único tamaño de página canónico; las pantallas que usen
// otro tamaño deben pedirlo explícitamente en Params.Limit.
const (
	DefaultPage  = 1
	DefaultLimit = 15
	MaxVisible   = 7
)

// Slot es una posición de la barra de páginas: un número de página (>= 1) o Ellipsis.
type Slot int

// Ellipsis marca un hueco comprimido en la secuencia de páginas.
const Ellipsis Slot = -1

// IsEllipsis indica si el slot es el marcador de elipsis.
func (s Slot) IsEllipsis() bool { return s == Ellipsis }

// String devuelve "…" para la elipsis o el número de página.
func (s Slot) String() string {
	if s.IsEllipsis() {
		return "…"
	}
	return strconv.Itoa(int(s))
}

// ItemRange rango 1-based de ítems visibles ("mostrando 11–20 de 23").
type ItemRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Params parámetros de búsqueda y paginación de GetAll.
// Filters son filtros extra por campo (ej. "status" → "scheduled").
type Params struct {
	Page    int
	Limit   int
	Search  string
	Filters map[string]string
}

// WithDefaults devuelve una copia con Page y Limit resueltos.
// defaultLimit <= 0 usa DefaultLimit.
func (p Params) WithDefaults(defaultLimit int) Params {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	return p
}

// Page envoltorio paginado que devuelven todos los repositorios.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPage construye el envoltorio calculando TotalPages.
func NewPage[T any](items []T, total, page, limit int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	if page < 1 {
		page = DefaultPage
	}
	return &Page[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}
}

// Paginate corta el conjunto completo (ya filtrado) según params.
// Total refleja el conjunto recibido, no la página.
func Paginate[T any](all []T, params Params) *Page[T] {
	params = params.WithDefaults(0)
	return NewPage(PaginateArray(all, params.Page, params.Limit), len(all), params.Page, params.Limit)
}

// TotalPages devuelve ceil(total/limit). Con limit <= 0 devuelve 1.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 1
	}
	if total <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

// ComputeVisiblePages devuelve como máximo MaxVisible slots: la primera y la
// última página siempre presentes y la ventana alrededor de la actual.
func ComputeVisiblePages(currentPage, totalPages int) []Slot {
	if totalPages <= 0 {
		totalPages = 1
	}
	if totalPages <= MaxVisible {
		return sequence(1, totalPages)
	}
	switch {
	case currentPage <= 4:
		return append(sequence(1, 5), Ellipsis, Slot(totalPages))
	case currentPage >= totalPages-3:
		return append([]Slot{1, Ellipsis}, sequence(totalPages-4, totalPages)...)
	default:
		return []Slot{
			1, Ellipsis,
			Slot(currentPage - 1), Slot(currentPage), Slot(currentPage + 1),
			Ellipsis, Slot(totalPages),
		}
	}
}

func sequence(from, to int) []Slot {
	out := make([]Slot, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, Slot(i))
	}
	return out
}

// ComputeItemRange calcula el rango de ítems que muestra la página actual.
func ComputeItemRange(currentPage, pageSize, totalItems int) ItemRange {
	if totalItems <= 0 {
		return ItemRange{}
	}
	end := mulSat(currentPage, pageSize)
	if end > totalItems {
		end = totalItems
	}
	start := mulSat(currentPage-1, pageSize)
	if start < math.MaxInt {
		start++
	}
	return ItemRange{Start: start, End: end}
}

// mulSat a*b saturado a math.MaxInt para operandos no negativos.
func mulSat(a, b int) int {
	if a <= 0 || b <= 0 {
		return a * b
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}

// ClampPage acota la página pedida a [1, max(1, totalPages)].
func ClampPage(requestedPage, totalPages int) int {
	upper := totalPages
	if upper < 1 {
		upper = 1
	}
	if requestedPage < 1 {
		return 1
	}
	if requestedPage > upper {
		return upper
	}
	return requestedPage
}

// PaginateArray devuelve items[(page-1)*pageSize : page*pageSize] recortado a
// los límites del slice. Páginas o tamaños no positivos devuelven un slice vacío.
func PaginateArray[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 || len(items) == 0 {
		return []T{}
	}
	// page-1 > última página indexable, sin multiplicar para no desbordar
	if page-1 > (len(items)-1)/pageSize {
		return []T{}
	}
	start := (page - 1) * pageSize
	end := len(items)
	if pageSize < end-start {
		end = start + pageSize
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
