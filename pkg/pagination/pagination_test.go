package pagination_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/podocare-api/pkg/pagination"
)

const E = pagination.Ellipsis

func TestComputeVisiblePages(t *testing.T) {
	cases := []struct {
		name    string
		current int
		total   int
		want    []pagination.Slot
	}{
		{"sin páginas se trata como 1", 1, 0, []pagination.Slot{1}},
		{"total negativo", 3, -4, []pagination.Slot{1}},
		{"siete páginas completas", 4, 7, []pagination.Slot{1, 2, 3, 4, 5, 6, 7}},
		{"inicio", 2, 20, []pagination.Slot{1, 2, 3, 4, 5, E, 20}},
		{"borde del inicio", 4, 20, []pagination.Slot{1, 2, 3, 4, 5, E, 20}},
		{"medio", 10, 20, []pagination.Slot{1, E, 9, 10, 11, E, 20}},
		{"borde del final", 17, 20, []pagination.Slot{1, E, 16, 17, 18, 19, 20}},
		{"final", 20, 20, []pagination.Slot{1, E, 16, 17, 18, 19, 20}},
		{"ocho páginas en la mitad", 5, 8, []pagination.Slot{1, E, 4, 5, 6, 7, 8}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, pagination.ComputeVisiblePages(tc.current, tc.total))
		})
	}
}

func TestComputeVisiblePages_BandaMedia(t *testing.T) {
	for total := 8; total <= 60; total++ {
		for current := 5; current < total-3; current++ {
			got := pagination.ComputeVisiblePages(current, total)
			require.Len(t, got, 7)
			assert.Equal(t, pagination.Slot(1), got[0])
			assert.Equal(t, pagination.Slot(total), got[6])
			ellipses := 0
			for _, s := range got {
				if s.IsEllipsis() {
					ellipses++
				}
			}
			assert.Equal(t, 2, ellipses, "current=%d total=%d", current, total)
		}
	}
}

func TestSlot_String(t *testing.T) {
	assert.Equal(t, "…", pagination.Ellipsis.String())
	assert.Equal(t, "12", pagination.Slot(12).String())
}

func TestComputeItemRange(t *testing.T) {
	assert.Equal(t, pagination.ItemRange{}, pagination.ComputeItemRange(1, 10, 0))
	assert.Equal(t, pagination.ItemRange{Start: 1, End: 10}, pagination.ComputeItemRange(1, 10, 23))
	assert.Equal(t, pagination.ItemRange{Start: 21, End: 23}, pagination.ComputeItemRange(3, 10, 23))
}

func TestPaginateArray_PaginaEnormeNoDesborda(t *testing.T) {
	items := []int{1, 2, 3}
	assert.Empty(t, pagination.PaginateArray(items, 1<<62+1, 2))
	assert.Equal(t, []int{1, 2, 3}, pagination.PaginateArray(items, 1, math.MaxInt))

	page := pagination.Paginate(items, pagination.Params{Page: 1<<62 + 1, Limit: 2})
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)

	assert.Equal(t, 1, pagination.TotalPages(3, math.MaxInt))
	r := pagination.ComputeItemRange(1<<62+1, 2, 3)
	assert.Equal(t, math.MaxInt, r.Start)
	assert.Equal(t, 3, r.End)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, pagination.ClampPage(-3, 5))
	assert.Equal(t, 1, pagination.ClampPage(0, 5))
	assert.Equal(t, 5, pagination.ClampPage(9, 5))
	assert.Equal(t, 1, pagination.ClampPage(4, 0))
	assert.Equal(t, 3, pagination.ClampPage(3, 5))
}

func TestPaginateArray(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	assert.Equal(t, []int{1, 2, 3}, pagination.PaginateArray(items, 1, 3))
	assert.Equal(t, []int{7}, pagination.PaginateArray(items, 3, 3))
	assert.Empty(t, pagination.PaginateArray(items, 4, 3))
	assert.Empty(t, pagination.PaginateArray(items, 0, 3))
	assert.Empty(t, pagination.PaginateArray(items, 1, 0))

	page := pagination.PaginateArray(items, 1, 2)
	page[0] = 99
	assert.Equal(t, 1, items[0], "el resultado no debe compartir memoria con el origen")
}

func TestPaginate_VeintitresItems(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}
	page := pagination.Paginate(items, pagination.Params{Page: 3, Limit: 10})
	assert.Len(t, page.Items, 3)
	assert.Equal(t, 23, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 10, page.Limit)
}

func TestParams_WithDefaults(t *testing.T) {
	p := pagination.Params{}.WithDefaults(0)
	assert.Equal(t, pagination.DefaultPage, p.Page)
	assert.Equal(t, pagination.DefaultLimit, p.Limit)

	p = pagination.Params{Page: 2}.WithDefaults(12)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 12, p.Limit)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, pagination.TotalPages(37, 15))
	assert.Equal(t, 0, pagination.TotalPages(0, 15))
	assert.Equal(t, 1, pagination.TotalPages(15, 15))
	assert.Equal(t, 1, pagination.TotalPages(10, 0))
}

func TestNewPage_ItemsNuncaNil(t *testing.T) {
	page := pagination.NewPage[string](nil, 0, 0, 15)
	require.NotNil(t, page.Items)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 0, page.TotalPages)
}
