package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// ReceiptUseCase genera el recibo (PDF) de una venta.
type ReceiptUseCase struct {
	sales     repository.SaleRepository
	patients  repository.PatientRepository
	generator ReceiptPDFGenerator
	clinic    ClinicInfo
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	sales repository.SaleRepository,
	patients repository.PatientRepository,
	generator ReceiptPDFGenerator,
	clinic ClinicInfo,
) *ReceiptUseCase {
	return &ReceiptUseCase{sales: sales, patients: patients, generator: generator, clinic: clinic}
}

// DownloadReceiptPDF carga la venta y su paciente y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - *domain.NotFoundError      si la venta no existe.
//   - domain.ErrConflict         si la venta está anulada.
func (uc *ReceiptUseCase) DownloadReceiptPDF(ctx context.Context, saleID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar venta ───────────────────────────────────────────────────────
	sale, err := uc.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.NewNotFoundError("venta", saleID)
	}
	if sale.Status == entity.SaleCancelled {
		return nil, "", fmt.Errorf("%w: la venta %s está anulada", domain.ErrConflict, sale.ID)
	}

	// ── 2. Paciente (opcional: mostrador) ─────────────────────────────────────
	patient := sale.Patient
	if patient == nil && sale.PatientID != "" {
		patient, err = uc.patients.GetByID(ctx, sale.PatientID)
		if err != nil {
			return nil, "", fmt.Errorf("recibo: obtener paciente: %w", err)
		}
	}

	// ── 3. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, sale, patient, uc.clinic)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("recibo_%s.pdf", sale.ID), nil
}
