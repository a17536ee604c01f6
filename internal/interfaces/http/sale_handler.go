package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/podocare-api/internal/application/billing"
	"github.com/jhoicas/podocare-api/internal/application/dto"
	"github.com/jhoicas/podocare-api/internal/domain"
)

// SaleHandler cobro del punto de venta y recibo en PDF (protegido).
type SaleHandler struct {
	checkout *billing.CheckoutUseCase
	receipt  *billing.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(checkout *billing.CheckoutUseCase, receipt *billing.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{checkout: checkout, receipt: receipt}
}

// Checkout godoc
// @Summary      Cobrar una venta
// @Description  Registra la venta, descuenta inventario, consume el abono (si aplica) y registra el pago.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Carrito"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sale/checkout [post]
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.WorkerID == "" {
		in.WorkerID = GetWorkerID(c)
	}
	out, err := h.checkout.Checkout(c.Context(), in)
	if err != nil {
		var pw *domain.PartialWriteError
		if errors.As(err, &pw) && out != nil {
			out.Warnings = append(out.Warnings, pw.Error())
			return c.Status(fiber.StatusCreated).JSON(dto.Envelope{State: dto.StateSuccess, Message: "venta registrada con escrituras pendientes", Data: out, Warning: dto.PartialWarning(pw)})
		}
		return writeError(c, err)
	}
	return created(c, out)
}

// DownloadReceipt godoc
// @Summary      Recibo de venta en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sale/{id}/receipt [get]
func (h *SaleHandler) DownloadReceipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipt.DownloadReceiptPDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(pdf)
}
