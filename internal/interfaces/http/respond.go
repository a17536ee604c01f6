package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/podocare-api/internal/application/dto"
	"github.com/jhoicas/podocare-api/internal/domain"
)

// ok responde 200 con el envoltorio {state: success, data}.
func ok(c *fiber.Ctx, data any) error {
	return c.JSON(dto.OK(data))
}

// created responde 201 con el envoltorio.
func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.OK(data))
}

func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.Fail(code, message))
}

func badBody(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
}

// writeError traduce los errores de dominio a estado HTTP:
//   - ValidationError            → 422
//   - NotFound                   → 404
//   - Duplicate / Conflict       → 409
//   - TransportError             → 502
//   - Storage y demás            → 500
func writeError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return fail(c, fiber.StatusUnprocessableEntity, validationCode(err), ve.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		return fail(c, fiber.StatusConflict, "DUPLICATE", err.Error())
	case errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, domain.ErrTransport):
		return fail(c, fiber.StatusBadGateway, "UPSTREAM", err.Error())
	case errors.Is(err, domain.ErrStorage):
		return fail(c, fiber.StatusInternalServerError, "STORAGE", err.Error())
	}
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
}

func validationCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "INSUFFICIENT_BALANCE"
	case errors.Is(err, domain.ErrNoSessionsLeft):
		return "NO_SESSIONS_LEFT"
	case errors.Is(err, domain.ErrConflict):
		return "CONFLICT"
	}
	return "VALIDATION"
}

// partial responde 200 con data y warning PARTIAL_WRITE cuando la escritura
// principal se aplicó y solo falló la bitácora; cualquier otro error pasa por
// writeError.
func partial(c *fiber.Ctx, data any, err error) error {
	var pw *domain.PartialWriteError
	if errors.As(err, &pw) && data != nil {
		return c.JSON(dto.Envelope{State: dto.StateSuccess, Message: pw.Error(), Data: data, Warning: dto.PartialWarning(pw)})
	}
	return writeError(c, err)
}

// ErrorHandler manejador de errores de fiber con el mismo envoltorio.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fail(c, fe.Code, "HTTP_ERROR", fe.Message)
	}
	return writeError(c, err)
}
