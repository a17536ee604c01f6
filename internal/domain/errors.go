package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInsufficientBalance = errors.New("saldo insuficiente")
	ErrNoSessionsLeft      = errors.New("el paquete no tiene sesiones disponibles")
	ErrValidation          = errors.New("validación fallida")
	ErrStorage             = errors.New("error de almacenamiento")
	ErrTransport           = errors.New("error de transporte")
)

// ValidationError el payload viola una regla de negocio. Se produce antes de
// cualquier escritura, nunca queda aplicado a medias.
type ValidationError struct {
	Entity  string
	Field   string
	Message string
	Err     error // causa concreta opcional (ej. ErrInsufficientBalance)
}

// NewValidationError construye un ValidationError.
func NewValidationError(entity, field, message string, cause error) *ValidationError {
	return &ValidationError{Entity: entity, Field: field, Message: message, Err: cause}
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Entity, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Entity, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *ValidationError) Unwrap() error         { return e.Err }

// NotFoundError la operación apuntó a un id inexistente.
type NotFoundError struct {
	Entity string
	ID     string
}

// NewNotFoundError construye un NotFoundError.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StorageError el backend local no pudo persistir (cuota, serialización, conexión).
// Siempre se propaga: implica que la intención del llamador se perdió.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("almacenamiento %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
func (e *StorageError) Unwrap() error         { return e.Err }

// TransportError la petición al backend remoto falló (red, estado no 2xx o
// envoltorio malformado). Message lleva el mensaje del servidor si lo hubo.
type TransportError struct {
	Method  string
	Path    string
	Status  int // 0 si no hubo respuesta
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, msg)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, msg)
}

func (e *TransportError) Is(target error) bool { return target == ErrTransport }
func (e *TransportError) Unwrap() error         { return e.Err }

// Unavailable indica que el backend no respondió de forma útil (sin respuesta,
// 5xx o 429). Un 4xx es una respuesta válida del servidor y no cuenta.
func (e *TransportError) Unavailable() bool {
	return e.Status == 0 || e.Status >= http.StatusInternalServerError || e.Status == http.StatusTooManyRequests
}

// PartialWriteError la escritura primaria se aplicó pero la secundaria (bitácora)
// falló. El llamador recibe igualmente el resultado primario.
type PartialWriteError struct {
	Applied string // qué quedó aplicado, ej. "abono actualizado"
	Err     error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("escritura parcial (%s): %v", e.Applied, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }

// IsUnavailable indica si err es un TransportError de backend no disponible.
func IsUnavailable(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Unavailable()
}
