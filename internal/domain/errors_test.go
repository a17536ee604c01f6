package domain_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/podocare-api/internal/domain"
)

func TestValidationError_IsYUnwrap(t *testing.T) {
	err := fmt.Errorf("usar abono: %w",
		domain.NewValidationError("abono", "amount", "saldo insuficiente", domain.ErrInsufficientBalance))

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "amount", ve.Field)
}

func TestNotFoundError(t *testing.T) {
	err := domain.NewNotFoundError("paciente", "p-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "p-1")
}

func TestStorageError(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := &domain.StorageError{Op: "guardar", Key: "podocare_patients", Err: cause}
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, cause)
}

func TestTransportError_Unavailable(t *testing.T) {
	cases := []struct {
		status int
		want   bool
	}{
		{0, true},
		{http.StatusBadGateway, true},
		{http.StatusTooManyRequests, true},
		{http.StatusBadRequest, false},
		{http.StatusNotFound, false},
	}
	for _, tc := range cases {
		err := &domain.TransportError{Method: "GET", Path: "/patient", Status: tc.status, Message: "x"}
		assert.Equal(t, tc.want, err.Unavailable(), "status %d", tc.status)
		assert.Equal(t, tc.want, domain.IsUnavailable(fmt.Errorf("envuelto: %w", err)))
		assert.ErrorIs(t, err, domain.ErrTransport)
	}
	assert.False(t, domain.IsUnavailable(errors.New("otro")))
}

func TestPartialWriteError(t *testing.T) {
	cause := &domain.StorageError{Op: "guardar", Key: "k", Err: errors.New("disco lleno")}
	err := &domain.PartialWriteError{Applied: "abono actualizado", Err: cause}
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Contains(t, err.Error(), "abono actualizado")
}

func TestDateRange(t *testing.T) {
	r, err := domain.ParseDateRange("2024-03-01", "2024-03-31T23:59:59Z")
	require.NoError(t, err)

	assert.True(t, r.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), "el inicio es inclusivo")
	assert.True(t, r.Contains(time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)), "el fin es inclusivo")
	assert.False(t, r.Contains(time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)))

	_, err = domain.ParseDateRange("2024-03-10", "2024-03-01")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = domain.ParseDateRange("ayer", "2024-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	s, e := r.Query()
	assert.Equal(t, "2024-03-01T00:00:00Z", s)
	assert.Equal(t, "2024-03-31T23:59:59Z", e)

	day, err := domain.ParseDateRange("2025-03-14", "2025-03-14")
	require.NoError(t, err)
	assert.True(t, day.Contains(time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)), "un solo día cubre el día completo")
	assert.True(t, day.Contains(time.Date(2025, 3, 14, 23, 59, 59, 999999999, time.UTC)))
	assert.False(t, day.Contains(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)))
}
