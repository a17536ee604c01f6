package dto

import (
	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/pkg/pagination"
)

// Estados del envoltorio.
const (
	StateSuccess = "success"
	StateError   = "error"
)

// WarningPartialWrite la escritura principal se aplicó y la bitácora no.
const WarningPartialWrite = "PARTIAL_WRITE"

// Envelope respuesta estándar del backend: {state, message, data, warning}.
type Envelope struct {
	State   string   `json:"state"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Warning *Warning `json:"warning,omitempty"`
}

// Warning aviso adjunto a una respuesta exitosa.
type Warning struct {
	Code    string `json:"code"`
	Applied string `json:"applied,omitempty"`
	Message string `json:"message"`
}

// PartialWarning aviso de escritura parcial; el cliente lo vuelve a
// convertir en *domain.PartialWriteError.
func PartialWarning(pw *domain.PartialWriteError) *Warning {
	msg := ""
	if pw.Err != nil {
		msg = pw.Err.Error()
	}
	return &Warning{Code: WarningPartialWrite, Applied: pw.Applied, Message: msg}
}

// OK envoltorio exitoso con data.
func OK(data any) Envelope {
	return Envelope{State: StateSuccess, Data: data}
}

// PageResponse data de un listado paginado.
type PageResponse[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPageResponse adapta la página del repositorio al formato de respuesta.
func NewPageResponse[T any](p *pagination.Page[T]) PageResponse[T] {
	return PageResponse[T]{Data: p.Items, Total: p.Total, Page: p.Page, Limit: p.Limit, TotalPages: p.TotalPages}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	State   string `json:"state"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Fail construye un ErrorResponse.
func Fail(code, message string) ErrorResponse {
	return ErrorResponse{State: StateError, Code: code, Message: message}
}
