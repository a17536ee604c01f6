package hybrid_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
	"github.com/jhoicas/podocare-api/internal/infrastructure/api"
	"github.com/jhoicas/podocare-api/internal/infrastructure/blob"
	"github.com/jhoicas/podocare-api/internal/infrastructure/hybrid"
	"github.com/jhoicas/podocare-api/internal/infrastructure/local"
)

type fixture struct {
	repos  *repository.Repositories
	calls  atomic.Int32
	status atomic.Int32
	body   atomic.Value
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{now: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)}
	f.status.Store(http.StatusOK)
	f.body.Store(`{"data":{"id":"remote-1","firstName":"Remota"}}`)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(int(f.status.Load()))
		_, _ = io.WriteString(w, f.body.Load().(string))
	}))
	t.Cleanup(srv.Close)

	client, err := api.NewClient(api.Config{BaseURL: srv.URL}, srv.Client(), zerolog.Nop())
	require.NoError(t, err)
	set := local.NewSet(local.Options{
		Store:   blob.NewMemory(),
		Latency: local.NoLatency{},
		Now:     func() time.Time { return f.now },
		Logger:  zerolog.Nop(),
	})
	gate := hybrid.NewGate(time.Minute, zerolog.Nop()).WithClock(func() time.Time { return f.now })
	f.repos = hybrid.NewRepositories(api.NewRepositories(client), set.Repositories(), gate)
	return f
}

func TestHybrid_APIDisponible(t *testing.T) {
	f := newFixture(t)
	p, err := f.repos.Patients.GetByID(context.Background(), "remote-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Remota", p.FirstName)
	assert.EqualValues(t, 1, f.calls.Load())
}

func TestHybrid_RespaldoLocalYReintento(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.status.Store(http.StatusServiceUnavailable)
	f.body.Store(`{}`)

	// La semilla local tiene pat-001.
	p, err := f.repos.Patients.GetByID(ctx, "pat-001")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.EqualValues(t, 1, f.calls.Load())

	// Con el interruptor abierto no se llama a la API.
	_, err = f.repos.Workers.GetActive(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, f.calls.Load())

	// Pasado el plazo se vuelve a intentar.
	f.now = f.now.Add(2 * time.Minute)
	f.status.Store(http.StatusOK)
	f.body.Store(`{"data":[]}`)
	list, err := f.repos.Workers.GetActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.EqualValues(t, 2, f.calls.Load())
}

func TestHybrid_ErroresDelClienteNoCaenALocal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.status.Store(http.StatusNotFound)
	f.body.Store(`{"state":"error","message":"no existe"}`)
	err := f.repos.Patients.Delete(ctx, "pat-001")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// pat-001 sigue en local: la API respondió y no se usó el respaldo.
	f.status.Store(http.StatusBadGateway)
	p, err := f.repos.Patients.GetByID(ctx, "pat-001")
	require.NoError(t, err)
	assert.NotNil(t, p)

	f.now = f.now.Add(2 * time.Minute)
	f.status.Store(http.StatusUnprocessableEntity)
	f.body.Store(`{"state":"error","message":"documento duplicado"}`)
	_, err = f.repos.Patients.Create(ctx, entity.PatientInput{FirstName: "A", LastName: "B", DocumentNumber: "9"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestHybrid_ContextoCanceladoNoAbreElInterruptor(t *testing.T) {
	f := newFixture(t)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.repos.Patients.GetByID(cancelled, "remote-1")
	assert.ErrorIs(t, err, context.Canceled)

	expired, cancelExpired := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancelExpired()
	_, err = f.repos.Workers.GetActive(expired)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	before := f.calls.Load()
	p, err := f.repos.Patients.GetByID(context.Background(), "remote-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Remota", p.FirstName)
	assert.EqualValues(t, 1, f.calls.Load()-before)
}

func TestGate(t *testing.T) {
	now := time.Unix(0, 0)
	g := hybrid.NewGate(0, zerolog.Nop()).WithClock(func() time.Time { return now })
	assert.False(t, g.Open())
}
