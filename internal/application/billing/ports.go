package billing

import (
	"context"

	"github.com/jhoicas/podocare-api/internal/domain/entity"
)

// InventoryUseCase salida de inventario por cada línea vendida.
// Si devuelve error (ej. ErrInsufficientStock) la línea no se descontó.
type InventoryUseCase interface {
	RegisterExit(ctx context.Context, productID string, quantity int, reference, workerID string) (*entity.ProductMovement, error)
}

// ClinicInfo datos del emisor impresos en el recibo.
type ClinicInfo struct {
	Name    string
	NIT     string
	Address string
	Phone   string
	Email   string
}

// ReceiptPDFGenerator genera el recibo de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, patient *entity.Patient, clinic ClinicInfo) ([]byte, error)
}
