// Package factory construye el agregado de repositorios según la configuración.
package factory

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/podocare-api/internal/domain/repository"
	"github.com/jhoicas/podocare-api/internal/infrastructure/api"
	"github.com/jhoicas/podocare-api/internal/infrastructure/blob"
	"github.com/jhoicas/podocare-api/internal/infrastructure/hybrid"
	"github.com/jhoicas/podocare-api/internal/infrastructure/local"
	"github.com/jhoicas/podocare-api/pkg/config"
)

// Tipos de repositorio soportados.
const (
	TypeAPI    = "api"
	TypeLocal  = "local"
	TypeHybrid = "hybrid"
)

// DefaultAPIBaseURL ruta del backend cuando se sirve en el mismo origen.
const DefaultAPIBaseURL = "/api"

// ErrInvalidType tipo de repositorio desconocido.
var ErrInvalidType = errors.New("tipo de repositorio inválido")

// Config configuración inmutable del agregado. Otra configuración implica
// construir otro agregado.
type Config struct {
	Type                string
	APIBaseURL          string
	APIKey              string
	EnableLocalFallback bool
	LocalStoragePrefix  string
	RequestTimeout      time.Duration
	DefaultLimit        int
	Latency             local.Latency // nil = 100–300 ms
	FallbackRetryAfter  time.Duration
	RateLimit           float64
	RateBurst           int
}

// DefaultConfig modo local con los valores por defecto.
func DefaultConfig() Config {
	return Config{
		Type:               TypeLocal,
		APIBaseURL:         DefaultAPIBaseURL,
		LocalStoragePrefix: local.DefaultPrefix,
		RequestTimeout:     api.DefaultTimeout,
		FallbackRetryAfter: hybrid.DefaultRetryAfter,
	}
}

// FromConfig traduce la configuración de la aplicación. Latencia 0/0 desactiva
// la espera simulada.
func FromConfig(rc config.RepositoryConfig) Config {
	cfg := Config{
		Type:                rc.Type,
		APIBaseURL:          rc.APIBaseURL,
		APIKey:              rc.APIKey,
		EnableLocalFallback: rc.EnableLocalFallback,
		LocalStoragePrefix:  rc.LocalStoragePrefix,
		RequestTimeout:      rc.APITimeout,
		DefaultLimit:        rc.DefaultLimit,
		FallbackRetryAfter:  rc.FallbackRetryAfter,
		RateLimit:           rc.RateLimit,
		RateBurst:           rc.RateBurst,
	}
	if rc.LatencyMin == 0 && rc.LatencyMax == 0 {
		cfg.Latency = local.NoLatency{}
	} else {
		cfg.Latency = local.RandomLatency{Min: rc.LatencyMin, Max: rc.LatencyMax}
	}
	return cfg
}

// Deps dependencias externas. Store nil usa un almacén en memoria.
type Deps struct {
	Store      repository.BlobStore
	HTTPClient *http.Client
	Logger     zerolog.Logger
	Now        func() time.Time
}

// New construye el agregado: api, local o hybrid (también api con
// EnableLocalFallback).
func New(cfg Config, deps Deps) (*repository.Repositories, error) {
	typ := strings.ToLower(strings.TrimSpace(cfg.Type))
	log := deps.Logger.With().Str("component", "repositories").Str("type", typ).Logger()

	switch typ {
	case TypeLocal:
		log.Info().Str("prefix", prefix(cfg)).Msg("repositorios locales")
		return newLocal(cfg, deps).Repositories(), nil
	case TypeAPI, TypeHybrid:
		remote, err := newAPI(cfg, deps)
		if err != nil {
			return nil, err
		}
		if typ == TypeAPI && !cfg.EnableLocalFallback {
			log.Info().Str("base_url", cfg.APIBaseURL).Msg("repositorios remotos")
			return remote, nil
		}
		gate := hybrid.NewGate(cfg.FallbackRetryAfter, deps.Logger)
		log.Info().Str("base_url", cfg.APIBaseURL).Str("prefix", prefix(cfg)).Msg("repositorios híbridos")
		return hybrid.NewRepositories(remote, newLocal(cfg, deps).Repositories(), gate), nil
	}
	return nil, fmt.Errorf("factory: %w: %q", ErrInvalidType, cfg.Type)
}

func newAPI(cfg Config, deps Deps) (*repository.Repositories, error) {
	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	client, err := api.NewClient(api.Config{
		BaseURL:      baseURL,
		APIKey:       cfg.APIKey,
		Timeout:      cfg.RequestTimeout,
		RateLimit:    cfg.RateLimit,
		RateBurst:    cfg.RateBurst,
		DefaultLimit: cfg.DefaultLimit,
	}, deps.HTTPClient, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("factory: %w", err)
	}
	return api.NewRepositories(client), nil
}

func newLocal(cfg Config, deps Deps) *local.Set {
	store := deps.Store
	if store == nil {
		store = blob.NewMemory()
	}
	return local.NewSet(local.Options{
		Store:        store,
		Prefix:       prefix(cfg),
		Latency:      cfg.Latency,
		Now:          deps.Now,
		DefaultLimit: cfg.DefaultLimit,
		Logger:       deps.Logger,
	})
}

func prefix(cfg Config) string {
	if cfg.LocalStoragePrefix == "" {
		return local.DefaultPrefix
	}
	return cfg.LocalStoragePrefix
}
