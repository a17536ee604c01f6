package pagination

// Controller estado de paginación que consume la interfaz: (página actual, tamaño).
// TotalPages es derivado y se recalcula cuando cambian totalItems o pageSize.
// El valor cero no es utilizable; construir con NewController.
type Controller struct {
	currentPage int
	pageSize    int
	totalItems  int
}

// NewController crea el controlador en la página 1. pageSize <= 0 usa DefaultLimit.
func NewController(pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultLimit
	}
	return &Controller{currentPage: 1, pageSize: pageSize}
}

// CurrentPage página seleccionada.
func (c *Controller) CurrentPage() int { return c.currentPage }

// PageSize tamaño de página.
func (c *Controller) PageSize() int { return c.pageSize }

// TotalItems total de ítems conocido.
func (c *Controller) TotalItems() int { return c.totalItems }

// TotalPages nunca es menor que 1 para la interfaz.
func (c *Controller) TotalPages() int {
	if n := TotalPages(c.totalItems, c.pageSize); n > 1 {
		return n
	}
	return 1
}

// GoToPage mueve a la página p acotada con ClampPage.
func (c *Controller) GoToPage(p int) {
	c.currentPage = ClampPage(p, c.TotalPages())
}

// Next avanza una página si existe.
func (c *Controller) Next() { c.GoToPage(c.currentPage + 1) }

// Previous retrocede una página si existe.
func (c *Controller) Previous() { c.GoToPage(c.currentPage - 1) }

// HasNext indica si hay una página posterior.
func (c *Controller) HasNext() bool { return c.currentPage < c.TotalPages() }

// HasPrevious indica si hay una página anterior.
func (c *Controller) HasPrevious() bool { return c.currentPage > 1 }

// SetPageSize cambia el tamaño y siempre vuelve a la página 1.
func (c *Controller) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultLimit
	}
	c.pageSize = size
	c.currentPage = 1
}

// SetTotalItems actualiza el total; si la página actual queda fuera de rango
// se acota sin aviso.
func (c *Controller) SetTotalItems(total int) {
	if total < 0 {
		total = 0
	}
	c.totalItems = total
	c.currentPage = ClampPage(c.currentPage, c.TotalPages())
}

// VisiblePages secuencia de slots para la barra de páginas.
func (c *Controller) VisiblePages() []Slot {
	return ComputeVisiblePages(c.currentPage, c.TotalPages())
}

// ItemRange rango de ítems mostrado en la página actual.
func (c *Controller) ItemRange() ItemRange {
	return ComputeItemRange(c.currentPage, c.pageSize, c.totalItems)
}

// Params parámetros para pedir la página actual a un repositorio.
func (c *Controller) Params(search string) Params {
	return Params{Page: c.currentPage, Limit: c.pageSize, Search: search}
}
