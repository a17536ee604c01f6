package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
	"github.com/jhoicas/podocare-api/internal/infrastructure/api"
	"github.com/jhoicas/podocare-api/pkg/pagination"
)

func newRepos(t *testing.T, h http.HandlerFunc) *repository.Repositories {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := api.NewClient(api.Config{BaseURL: srv.URL + "/api", APIKey: "secret"}, srv.Client(), zerolog.Nop())
	require.NoError(t, err)
	return api.NewRepositories(c)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNewClient_RequiereURLAbsoluta(t *testing.T) {
	_, err := api.NewClient(api.Config{BaseURL: "/api"}, nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestGetAll_DesenvuelvePaginado(t *testing.T) {
	var gotQuery string
	repos := newRepos(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/patient", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		gotQuery = r.URL.RawQuery
		writeJSON(w, 200, `{"state":"success","data":{"data":[{"_id":"p1","firstName":"Ana"}],"total":37,"page":1,"limit":15}}`)
	})

	page, err := repos.Patients.GetAll(context.Background(), pagination.Params{Search: "ana"})
	require.NoError(t, err)
	assert.Equal(t, "limit=15&page=1&search=ana", gotQuery)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "p1", page.Items[0].ID)
	assert.Equal(t, 37, page.Total)
	assert.Equal(t, 3, page.TotalPages)
}

func TestGetAll_ArregloConPaginacionEnElEnvoltorio(t *testing.T) {
	repos := newRepos(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"success":true,"data":[{"id":"w1"},{"id":"w2"}],"total":2,"page":1,"limit":10}`)
	})
	page, err := repos.Workers.GetAll(context.Background(), pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 1, page.TotalPages)
}

func TestEnvoltorioDeError(t *testing.T) {
	cases := map[string]string{
		"state":   `{"state":"error","message":"falló"}`,
		"success": `{"success":false,"message":"falló"}`,
		"error":   `{"error":"falló"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			repos := newRepos(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, 200, body)
			})
			_, err := repos.Patients.GetByID(context.Background(), "p1")
			var te *domain.TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, "falló", te.Message)
			assert.False(t, domain.IsUnavailable(err))
		})
	}
}

func TestSinData_EsErrorDeTransporte(t *testing.T) {
	repos := newRepos(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"state":"success"}`)
	})
	_, err := repos.Patients.GetByID(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestGetByID_404EsNil(t *testing.T) {
	repos := newRepos(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 404, `{"state":"error","message":"no existe"}`)
	})
	p, err := repos.Patients.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, p)

	err = repos.Patients.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestErroresDelServidor(t *testing.T) {
	status := http.StatusBadRequest
	repos := newRepos(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, `{"state":"error","message":"documento inválido"}`)
	})
	in := entity.PatientInput{FirstName: "Ana", LastName: "Pérez", DocumentNumber: "1"}

	_, err := repos.Patients.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)
	var te *domain.TransportError
	assert.ErrorAs(t, err, &te)

	status = http.StatusConflict
	_, err = repos.Patients.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	status = http.StatusServiceUnavailable
	_, err = repos.Patients.Create(context.Background(), in)
	assert.True(t, domain.IsUnavailable(err))
}

func TestCreate_ValidaAntesDeEnviar(t *testing.T) {
	var calls atomic.Int32
	repos := newRepos(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, 201, `{"data":{}}`)
	})
	_, err := repos.Patients.Create(context.Background(), entity.PatientInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, calls.Load())
}

func TestUpdate_OmiteCamposNil(t *testing.T) {
	var body map[string]any
	repos := newRepos(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/patient/p1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, 200, `{"data":{"id":"p1","phone":"300"}}`)
	})
	phone := "300"
	p, err := repos.Patients.Update(context.Background(), "p1", entity.PatientPatch{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "300", p.Phone)
	assert.Equal(t, map[string]any{"phone": "300"}, body)
}

func TestNormalizaReferencias(t *testing.T) {
	repos := newRepos(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/appointment/patient/p1", r.URL.Path)
		writeJSON(w, 200, `{"data":[
			{"_id":"a1","patientId":{"_id":"p1","firstName":"Ana"},"workerId":"w1"},
			{"id":"a2","patientId":"p1","workerId":{"id":"w2","firstName":"Luis"}}
		]}`)
	})
	list, err := repos.Appointments.GetByPatientID(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "a1", list[0].ID)
	assert.Equal(t, "p1", list[0].PatientID)
	require.NotNil(t, list[0].Patient)
	assert.Equal(t, "p1", list[0].Patient.ID)
	assert.Equal(t, "Ana", list[0].Patient.FirstName)
	assert.Equal(t, "w1", list[0].WorkerID)
	assert.Nil(t, list[0].Worker)

	assert.Equal(t, "p1", list[1].PatientID)
	assert.Equal(t, "w2", list[1].WorkerID)
	require.NotNil(t, list[1].Worker)
	assert.Equal(t, "Luis", list[1].Worker.FirstName)
}

func TestBuscadores_404EsListaVacia(t *testing.T) {
	repos := newRepos(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 404, `{}`)
	})
	list, err := repos.Products.GetLowStock(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestGetByDateRange_EnviaLimites(t *testing.T) {
	repos := newRepos(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payment/date-range", r.URL.Path)
		assert.Equal(t, "2025-03-01T00:00:00Z", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2025-03-31T23:59:59.999999999Z", r.URL.Query().Get("endDate"))
		writeJSON(w, 200, `{"data":[]}`)
	})
	dr, err := domain.ParseDateRange("2025-03-01", "2025-03-31")
	require.NoError(t, err)
	list, err := repos.Payments.GetByDateRange(context.Background(), dr)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetPatientBalance_NumeroUObjeto(t *testing.T) {
	body := `{"data":150000}`
	repos := newRepos(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/abono/patient/p1/balance", r.URL.Path)
		writeJSON(w, 200, body)
	})
	b, err := repos.Abonos.GetPatientBalance(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, b.Equal(decimal.NewFromInt(150000)))

	body = `{"data":{"balance":"2500.50"}}`
	b, err = repos.Abonos.GetPatientBalance(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, b.Equal(decimal.RequireFromString("2500.50")))
}

func TestUseAbono(t *testing.T) {
	repos := newRepos(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/abono/missing/use" {
			writeJSON(w, 404, `{}`)
			return
		}
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/abono/a1/use", r.URL.Path)
		writeJSON(w, 200, `{"data":{"abono":{"_id":"a1","patientId":"p1","remainingAmount":"60"},"usage":{"_id":"u1","abonoId":"a1","amount":"40"}}}`)
	})
	ctx := context.Background()

	_, err := repos.Abonos.UseAbono(ctx, "a1", entity.UseAbonoInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	res, err := repos.Abonos.UseAbono(ctx, "a1", entity.UseAbonoInput{Amount: decimal.NewFromInt(40)})
	require.NoError(t, err)
	assert.Equal(t, "a1", res.Abono.ID)
	assert.True(t, res.Abono.RemainingAmount.Equal(decimal.NewFromInt(60)))
	require.NotNil(t, res.Usage)
	assert.Equal(t, "u1", res.Usage.ID)

	_, err = repos.Abonos.UseAbono(ctx, "missing", entity.UseAbonoInput{Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUseSession(t *testing.T) {
	repos := newRepos(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/patient-package/pp1/use-session", r.URL.Path)
		writeJSON(w, 200, `{"data":{"patientPackage":{"id":"pp1","packageId":{"_id":"k1","name":"Plan 5"},"remainingSessions":4,"usedSessions":1},"session":{"id":"s1","sessionNumber":1}}}`)
	})
	res, err := repos.PatientPackages.UseSession(context.Background(), "pp1", entity.UseSessionInput{})
	require.NoError(t, err)
	assert.Equal(t, "k1", res.PatientPackage.PackageID)
	require.NotNil(t, res.PatientPackage.Package)
	assert.Equal(t, "Plan 5", res.PatientPackage.Package.Name)
	require.NotNil(t, res.Session)
	assert.Equal(t, 1, res.Session.SessionNumber)
}

func TestUseAbono_AvisoDeEscrituraParcial(t *testing.T) {
	repos := newRepos(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"state":"success","message":"escritura parcial","data":{"abono":{"id":"a1","remainingAmount":"60"}},"warning":{"code":"PARTIAL_WRITE","applied":"abono actualizado","message":"cuota excedida"}}`)
	})
	res, err := repos.Abonos.UseAbono(context.Background(), "a1", entity.UseAbonoInput{Amount: decimal.NewFromInt(40)})
	var pw *domain.PartialWriteError
	require.ErrorAs(t, err, &pw)
	assert.Equal(t, "abono actualizado", pw.Applied)
	assert.Contains(t, err.Error(), "cuota excedida")
	require.NotNil(t, res)
	assert.Equal(t, "a1", res.Abono.ID)
	assert.Nil(t, res.Usage)
}

func TestUseSession_AvisoDeEscrituraParcial(t *testing.T) {
	repos := newRepos(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"state":"success","data":{"patientPackage":{"id":"pp1","remainingSessions":3}},"warning":{"code":"PARTIAL_WRITE","applied":"paquete actualizado","message":"disco lleno"}}`)
	})
	res, err := repos.PatientPackages.UseSession(context.Background(), "pp1", entity.UseSessionInput{})
	var pw *domain.PartialWriteError
	require.ErrorAs(t, err, &pw)
	assert.Equal(t, "paquete actualizado", pw.Applied)
	require.NotNil(t, res)
	assert.Equal(t, 3, res.PatientPackage.RemainingSessions)
	assert.Nil(t, res.Session)
}

func TestTimeout_EsNoDisponible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	c, err := api.NewClient(api.Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil, zerolog.Nop())
	require.NoError(t, err)

	_, err = api.NewRepositories(c).Patients.GetByID(context.Background(), "p1")
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
}

func TestRateLimit_CancelaConElContexto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"data":{"id":"p1"}}`)
	}))
	t.Cleanup(srv.Close)
	c, err := api.NewClient(api.Config{BaseURL: srv.URL, RateLimit: 0.001, RateBurst: 1}, nil, zerolog.Nop())
	require.NoError(t, err)
	repos := api.NewRepositories(c)

	_, err = repos.Patients.GetByID(context.Background(), "p1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = repos.Patients.GetByID(ctx, "p1")
	var te *domain.TransportError
	require.True(t, errors.As(err, &te))
	assert.Zero(t, te.Status)
}

func TestBuildQuery_OmiteVacios(t *testing.T) {
	q := api.BuildQuery(pagination.Params{
		Page:    2,
		Limit:   20,
		Search:  "  ",
		Filters: map[string]string{"status": "scheduled", "workerId": ""},
	}, map[string]string{"sort": "date"})
	assert.Equal(t, "limit=20&page=2&sort=date&status=scheduled", q.Encode())
}
