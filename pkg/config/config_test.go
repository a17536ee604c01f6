package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/podocare-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Repository.Type)
	assert.Equal(t, "/api", cfg.Repository.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.Repository.APITimeout)
	assert.Equal(t, 30*time.Second, cfg.Repository.FallbackRetryAfter)
	assert.Equal(t, 15, cfg.Repository.DefaultLimit)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("REPOSITORY_TYPE", "Hybrid")
	t.Setenv("API_BASE_URL", "https://clinica.example.com/api")
	t.Setenv("API_TIMEOUT_SECONDS", "3")
	t.Setenv("API_RATE_LIMIT", "2.5")
	t.Setenv("ENABLE_LOCAL_FALLBACK", "true")
	t.Setenv("LOCAL_LATENCY_MIN_MS", "100")
	t.Setenv("LOCAL_LATENCY_MAX_MS", "300")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CLINIC_NAME", "Pies Sanos")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "hybrid", cfg.Repository.Type)
	assert.Equal(t, "https://clinica.example.com/api", cfg.Repository.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.Repository.APITimeout)
	assert.InDelta(t, 2.5, cfg.Repository.RateLimit, 1e-9)
	assert.True(t, cfg.Repository.EnableLocalFallback)
	assert.Equal(t, 100*time.Millisecond, cfg.Repository.LatencyMin)
	assert.Equal(t, 300*time.Millisecond, cfg.Repository.LatencyMax)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "Pies Sanos", cfg.Clinic.Name)
}

func TestLoad_LatenciaInvertida(t *testing.T) {
	t.Setenv("LOCAL_LATENCY_MIN_MS", "500")
	t.Setenv("LOCAL_LATENCY_MAX_MS", "100")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "podocare", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/podocare?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otra"
	assert.Equal(t, "postgres://otra", c.ConnectionString())
}
