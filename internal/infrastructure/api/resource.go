package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/pkg/pagination"
)

// Resource CRUD genérico sobre una ruta REST (/patient, /sale, ...).
type Resource[T entity.Entity, C any, U any] struct {
	client *Client
	path   string
	entity string
	decode func(json.RawMessage) (T, error)
}

func newResource[T entity.Entity, C any, U any](c *Client, path, name string, decode func(json.RawMessage) (T, error)) *Resource[T, C, U] {
	return &Resource[T, C, U]{client: c, path: path, entity: name, decode: decode}
}

// GetAll GET /<path>?page&limit&search&<filtros>.
func (r *Resource[T, C, U]) GetAll(ctx context.Context, params pagination.Params) (*pagination.Page[T], error) {
	params = params.WithDefaults(r.client.defaultLimit)
	env, err := r.client.data(ctx, http.MethodGet, r.path, BuildQuery(params, nil), nil)
	if err != nil {
		return nil, r.mapError(err)
	}
	return r.decodePage(env, params)
}

// GetByID (nil, nil) si el servidor responde 404.
func (r *Resource[T, C, U]) GetByID(ctx context.Context, id string) (*T, error) {
	return r.one(ctx, "/"+url.PathEscape(id), nil)
}

// Create valida localmente y hace POST /<path>.
func (r *Resource[T, C, U]) Create(ctx context.Context, in C) (*T, error) {
	if v, ok := any(in).(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	env, err := r.client.data(ctx, http.MethodPost, r.path, nil, in)
	if err != nil {
		return nil, r.mapError(err)
	}
	return r.decodeOne(env.Data)
}

// Update PUT /<path>/:id; los campos nil del patch no viajan.
func (r *Resource[T, C, U]) Update(ctx context.Context, id string, patch U) (*T, error) {
	env, err := r.client.data(ctx, http.MethodPut, r.path+"/"+url.PathEscape(id), nil, patch)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, domain.NewNotFoundError(r.entity, id)
		}
		return nil, r.mapError(err)
	}
	return r.decodeOne(env.Data)
}

// Delete DELETE /<path>/:id. No exige data en la respuesta.
func (r *Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	_, err := r.client.do(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return domain.NewNotFoundError(r.entity, id)
		}
		return r.mapError(err)
	}
	return nil
}

// ── helpers para los buscadores ───────────────────────────────────────────────

// one GET de un único registro; 404 → (nil, nil).
func (r *Resource[T, C, U]) one(ctx context.Context, sub string, query url.Values) (*T, error) {
	env, err := r.client.data(ctx, http.MethodGet, r.path+sub, query, nil)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, r.mapError(err)
	}
	return r.decodeOne(env.Data)
}

// list GET de una colección no paginada; 404 → lista vacía.
func (r *Resource[T, C, U]) list(ctx context.Context, sub string, query url.Values) ([]T, error) {
	env, err := r.client.data(ctx, http.MethodGet, r.path+sub, query, nil)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return []T{}, nil
		}
		return nil, r.mapError(err)
	}
	return decodeList(env.Data, r.decode)
}

// fetch GET o POST que decodifica data en out (estadísticas, resultados de uso).
func (r *Resource[T, C, U]) fetch(ctx context.Context, method, sub string, query url.Values, body any, out any) error {
	_, err := r.send(ctx, method, sub, query, body, out)
	return err
}

// send como fetch, devolviendo además el envoltorio (avisos).
func (r *Resource[T, C, U]) send(ctx context.Context, method, sub string, query url.Values, body any, out any) (*envelope, error) {
	env, err := r.client.data(ctx, method, r.path+sub, query, body)
	if err != nil {
		return nil, r.mapError(err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return nil, &domain.TransportError{Method: method, Path: r.path + sub, Status: http.StatusOK, Message: "data con formato inesperado", Err: err}
	}
	return env, nil
}

func (r *Resource[T, C, U]) decodeOne(raw json.RawMessage) (*T, error) {
	item, err := r.decode(raw)
	if err != nil {
		return nil, &domain.TransportError{Path: r.path, Status: http.StatusOK, Message: "data con formato inesperado", Err: err}
	}
	return &item, nil
}

// decodePage acepta data = {data, total, page, limit} o data = [...] con la
// paginación al nivel del envoltorio. TotalPages se calcula aquí.
func (r *Resource[T, C, U]) decodePage(env *envelope, params pagination.Params) (*pagination.Page[T], error) {
	var paged struct {
		Data  json.RawMessage `json:"data"`
		Total *int            `json:"total"`
		Page  int             `json:"page"`
		Limit int             `json:"limit"`
	}
	itemsRaw := env.Data
	total, page, limit := env.Total, env.Page, env.Limit
	if json.Unmarshal(env.Data, &paged) == nil {
		itemsRaw, total, page, limit = paged.Data, paged.Total, paged.Page, paged.Limit
	}
	items, err := decodeList(itemsRaw, r.decode)
	if err != nil {
		return nil, &domain.TransportError{Method: http.MethodGet, Path: r.path, Status: http.StatusOK, Message: "listado con formato inesperado", Err: err}
	}
	n := len(items)
	if total != nil {
		n = *total
	}
	if page < 1 {
		page = params.Page
	}
	if limit < 1 {
		limit = params.Limit
	}
	return pagination.NewPage(items, n, page, limit), nil
}

func decodeList[T any](raw json.RawMessage, decode func(json.RawMessage) (T, error)) ([]T, error) {
	if !hasData(raw) {
		return []T{}, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		var wrapped struct {
			Data []json.RawMessage `json:"data"`
		}
		if err2 := json.Unmarshal(raw, &wrapped); err2 != nil {
			return nil, err
		}
		elems = wrapped.Data
	}
	out := make([]T, 0, len(elems))
	for _, e := range elems {
		item, err := decode(e)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// mapError conserva el *domain.TransportError y, para 400/422 y 409, lo
// envuelve en el error de dominio equivalente.
func (r *Resource[T, C, U]) mapError(err error) error {
	var te *domain.TransportError
	if !errors.As(err, &te) {
		return err
	}
	switch te.Status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &domain.ValidationError{Entity: r.entity, Message: te.Message, Err: te}
	case http.StatusConflict:
		return fmt.Errorf("%s: %w: %w", r.entity, domain.ErrDuplicate, te)
	}
	return te
}

func isStatus(err error, status int) bool {
	var te *domain.TransportError
	return errors.As(err, &te) && te.Status == status
}
