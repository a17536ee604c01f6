package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout formato de fecha corta aceptado en filtros (además de RFC3339).
const DateLayout = "2006-01-02"

// DateRange rango de fechas inclusivo en ambos extremos.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains indica si t cae en [Start, End].
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ParseDateRange interpreta los límites como RFC3339 o fecha corta. Un inicio
// corto es medianoche UTC; un fin corto cubre el día completo.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, NewValidationError("rango", "startDate", err.Error(), ErrInvalidInput)
	}
	e, err := ParseEndDate(end)
	if err != nil {
		return DateRange{}, NewValidationError("rango", "endDate", err.Error(), ErrInvalidInput)
	}
	if e.Before(s) {
		return DateRange{}, NewValidationError("rango", "endDate", "anterior a startDate", ErrInvalidInput)
	}
	return DateRange{Start: s, End: e}, nil
}

// ParseDate acepta RFC3339 (con o sin fracciones) o "2006-01-02".
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("fecha vacía")
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q", v)
	}
	return t, nil
}

// ParseEndDate como ParseDate, pero una fecha corta se extiende al último
// instante de ese día.
func ParseEndDate(v string) (time.Time, error) {
	t, err := ParseDate(v)
	if err != nil {
		return t, err
	}
	if len(strings.TrimSpace(v)) == len(DateLayout) {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// Query formatea los límites para enviarlos como query string.
func (r DateRange) Query() (start, end string) {
	return r.Start.UTC().Format(time.RFC3339Nano), r.End.UTC().Format(time.RFC3339Nano)
}
