package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/pkg/pagination"
)

// BuildQuery arma la query canónica de GetAll: page, limit, search, los
// filtros y extra. Omite valores vacíos o cero; Encode ordena las claves.
func BuildQuery(params pagination.Params, extra map[string]string) url.Values {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if s := strings.TrimSpace(params.Search); s != "" {
		q.Set("search", s)
	}
	for k, v := range params.Filters {
		if strings.TrimSpace(v) != "" {
			q.Set(k, v)
		}
	}
	for k, v := range extra {
		if strings.TrimSpace(v) != "" {
			q.Set(k, v)
		}
	}
	return q
}

func rangeQuery(r domain.DateRange) url.Values {
	start, end := r.Query()
	return url.Values{"startDate": {start}, "endDate": {end}}
}
