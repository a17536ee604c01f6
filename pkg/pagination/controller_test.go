package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/podocare-api/pkg/pagination"
)

func TestController_GoToPageAcota(t *testing.T) {
	c := pagination.NewController(10)
	c.SetTotalItems(23)

	c.GoToPage(9)
	assert.Equal(t, 3, c.CurrentPage())
	c.GoToPage(-1)
	assert.Equal(t, 1, c.CurrentPage())
	assert.False(t, c.HasPrevious())
	assert.True(t, c.HasNext())
}

func TestController_SetPageSizeVuelveAPrimera(t *testing.T) {
	c := pagination.NewController(10)
	c.SetTotalItems(100)
	c.GoToPage(5)

	c.SetPageSize(10)
	assert.Equal(t, 1, c.CurrentPage(), "cambiar el tamaño siempre vuelve a la página 1")
	assert.Equal(t, 10, c.TotalPages())
}

func TestController_TotalItemsReduceYAcota(t *testing.T) {
	c := pagination.NewController(10)
	c.SetTotalItems(100)
	c.GoToPage(10)

	c.SetTotalItems(35)
	assert.Equal(t, 4, c.CurrentPage())
	assert.Equal(t, pagination.ItemRange{Start: 31, End: 35}, c.ItemRange())

	c.SetTotalItems(0)
	assert.Equal(t, 1, c.CurrentPage())
	assert.Equal(t, 1, c.TotalPages())
	assert.Equal(t, []pagination.Slot{1}, c.VisiblePages())
}

func TestController_NextPrevious(t *testing.T) {
	c := pagination.NewController(0)
	assert.Equal(t, pagination.DefaultLimit, c.PageSize())
	c.SetTotalItems(40)

	c.Next()
	c.Next()
	c.Next()
	assert.Equal(t, 3, c.CurrentPage())
	c.Previous()
	assert.Equal(t, 2, c.CurrentPage())

	p := c.Params("ana")
	assert.Equal(t, pagination.Params{Page: 2, Limit: pagination.DefaultLimit, Search: "ana"}, p)
}
