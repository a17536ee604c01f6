package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/podocare-api/internal/application/billing"
	"github.com/jhoicas/podocare-api/internal/application/dto"
	"github.com/jhoicas/podocare-api/internal/application/inventory"
	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/infrastructure/blob"
	"github.com/jhoicas/podocare-api/internal/infrastructure/local"
	"github.com/jhoicas/podocare-api/pkg/pagination"
)

var testNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func newSet() *local.Set {
	return local.NewSet(local.Options{
		Store:   blob.NewMemory(),
		Latency: local.NoLatency{},
		Now:     func() time.Time { return testNow },
		Logger:  zerolog.Nop(),
	})
}

func newCheckout(set *local.Set) *billing.CheckoutUseCase {
	inv := inventory.NewRegisterMovementUseCase(set.Products, set.ProductMovements)
	return billing.NewCheckoutUseCase(set.Products, set.Sales, set.Payments, set.Abonos, inv, zerolog.Nop())
}

func countSales(t *testing.T, set *local.Set) int {
	t.Helper()
	page, err := set.Sales.GetAll(context.Background(), pagination.Params{})
	require.NoError(t, err)
	return page.Total
}

func TestCheckout_Efectivo(t *testing.T) {
	ctx := context.Background()
	set := newSet()

	out, err := newCheckout(set).Checkout(ctx, dto.CheckoutRequest{
		PatientID:     "pat-001",
		WorkerID:      "wrk-003",
		Items:         []dto.CheckoutItemRequest{{ProductID: "prd-001", Quantity: 2}},
		Discount:      decimal.NewFromInt(5000),
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(65000).Equal(out.Sale.Total), "total %s", out.Sale.Total)
	assert.Equal(t, "Crema hidratante urea 10%", out.Sale.Items[0].ProductName)
	require.Len(t, out.Movements, 1)
	assert.Equal(t, out.Sale.ID, out.Movements[0].Reference)
	assert.Equal(t, 22, out.Movements[0].NewStock)
	require.NotNil(t, out.Payment)
	assert.Equal(t, out.Sale.ID, out.Payment.SaleID)
	assert.True(t, out.Payment.Amount.Equal(out.Sale.Total))
	assert.Nil(t, out.AbonoUsage)
	assert.Empty(t, out.Warnings)

	p, _ := set.Products.GetByID(ctx, "prd-001")
	assert.Equal(t, 22, p.Stock)
	payments, _ := set.Payments.GetByPatientID(ctx, "pat-001")
	assert.Len(t, payments, 2)
}

func TestCheckout_ConAbono(t *testing.T) {
	ctx := context.Background()
	set := newSet()

	out, err := newCheckout(set).Checkout(ctx, dto.CheckoutRequest{
		PatientID:     "pat-003",
		Items:         []dto.CheckoutItemRequest{{ProductID: "prd-003", Quantity: 1}},
		PaymentMethod: entity.PaymentAbono,
		AbonoID:       "abn-001",
	})
	require.NoError(t, err)
	require.NotNil(t, out.AbonoUsage)
	assert.Equal(t, out.Sale.ID, out.AbonoUsage.SaleID)

	abono, _ := set.Abonos.GetByID(ctx, "abn-001")
	assert.True(t, decimal.NewFromInt(135000).Equal(abono.RemainingAmount), "saldo %s", abono.RemainingAmount)
	require.NotNil(t, out.Payment)
	assert.Equal(t, entity.PaymentAbono, out.Payment.Method)
}

func TestCheckout_RechazosSinEscrituras(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CheckoutRequest
		want error
	}{
		{
			name: "stock insuficiente acumulado",
			in: dto.CheckoutRequest{
				PaymentMethod: entity.PaymentCash,
				Items: []dto.CheckoutItemRequest{
					{ProductID: "prd-002", Quantity: 2},
					{ProductID: "prd-002", Quantity: 2},
				},
			},
			want: domain.ErrInsufficientStock,
		},
		{
			name: "producto inexistente",
			in:   dto.CheckoutRequest{PaymentMethod: entity.PaymentCash, Items: []dto.CheckoutItemRequest{{ProductID: "prd-999", Quantity: 1}}},
			want: domain.ErrNotFound,
		},
		{
			name: "carrito vacío",
			in:   dto.CheckoutRequest{PaymentMethod: entity.PaymentCash},
			want: domain.ErrValidation,
		},
		{
			name: "abono de otro paciente",
			in: dto.CheckoutRequest{
				PatientID: "pat-001", AbonoID: "abn-001", PaymentMethod: entity.PaymentAbono,
				Items: []dto.CheckoutItemRequest{{ProductID: "prd-001", Quantity: 1}},
			},
			want: domain.ErrConflict,
		},
		{
			name: "saldo de abono insuficiente",
			in: dto.CheckoutRequest{
				PatientID: "pat-003", AbonoID: "abn-001", PaymentMethod: entity.PaymentAbono,
				Items: []dto.CheckoutItemRequest{{ProductID: "prd-003", Quantity: 4}},
			},
			want: domain.ErrInsufficientBalance,
		},
		{
			name: "abono sin paciente",
			in: dto.CheckoutRequest{
				AbonoID: "abn-001", PaymentMethod: entity.PaymentAbono,
				Items: []dto.CheckoutItemRequest{{ProductID: "prd-001", Quantity: 1}},
			},
			want: domain.ErrValidation,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set := newSet()
			_, err := newCheckout(set).Checkout(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, 0, countSales(t, set))

			p, _ := set.Products.GetByID(ctx, "prd-002")
			assert.Equal(t, 3, p.Stock)
		})
	}
}

func TestCheckout_Mostrador(t *testing.T) {
	ctx := context.Background()
	set := newSet()

	price := decimal.NewFromInt(30000)
	out, err := newCheckout(set).Checkout(ctx, dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{{ProductID: "prd-002", Quantity: 1, UnitPrice: &price}},
		PaymentMethod: entity.PaymentCard,
	})
	require.NoError(t, err)
	assert.Nil(t, out.Payment)
	assert.True(t, price.Equal(out.Sale.Total))
	assert.Equal(t, 1, countSales(t, set))
}

// failingExit simula un inventario que rechaza la salida después de crear la venta.
type failingExit struct{}

func (failingExit) RegisterExit(context.Context, string, int, string, string) (*entity.ProductMovement, error) {
	return nil, &domain.StorageError{Op: "escribir", Key: "products", Err: errors.New("sin espacio")}
}

func TestCheckout_EscrituraParcial(t *testing.T) {
	ctx := context.Background()
	set := newSet()
	uc := billing.NewCheckoutUseCase(set.Products, set.Sales, set.Payments, set.Abonos, failingExit{}, zerolog.Nop())

	out, err := uc.Checkout(ctx, dto.CheckoutRequest{
		PatientID:     "pat-002",
		Items:         []dto.CheckoutItemRequest{{ProductID: "prd-001", Quantity: 1}},
		PaymentMethod: entity.PaymentCash,
	})
	var pw *domain.PartialWriteError
	require.ErrorAs(t, err, &pw)
	assert.Equal(t, "venta registrada", pw.Applied)
	assert.ErrorIs(t, err, domain.ErrStorage)
	require.NotNil(t, out)
	assert.NotEmpty(t, out.Sale.ID)
	assert.Nil(t, out.Payment)
	assert.Equal(t, 1, countSales(t, set))
}
