package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/podocare-api/internal/application/billing"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "999", formatMoney("999"))
	assert.Equal(t, "25.000", formatMoney("25000"))
	assert.Equal(t, "1.000.000", formatMoney("1000000"))
	assert.Equal(t, "$45.000", money(decimal.NewFromInt(45000)))
	assert.Equal(t, "-$1.500", money(decimal.NewFromInt(-1500)))
}

func TestGenerateReceiptPDF(t *testing.T) {
	in := entity.SaleInput{
		Items: []entity.SaleItem{
			{ProductID: "prd-001", ProductName: "Crema urea 10%", Quantity: 2, UnitPrice: decimal.NewFromInt(32000)},
		},
		Discount:      decimal.NewFromInt(4000),
		PaymentMethod: entity.PaymentCash,
	}
	sale := in.Build("sale-1", time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC))
	patient := &entity.Patient{FirstName: "María", LastName: "Gómez", DocumentType: "CC", DocumentNumber: "52123456"}

	for _, p := range []*entity.Patient{patient, nil} {
		out, err := NewReceiptGenerator().GenerateReceiptPDF(context.Background(), &sale, p, billing.ClinicInfo{Name: "PodoCare"})
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	}
}
