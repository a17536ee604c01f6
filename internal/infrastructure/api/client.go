// Package api implementa los repositorios contra el backend REST.
//
// Todas las respuestas usan el envoltorio {state|success, message, error, data};
// los listados paginados llegan como data = {data, total, page, limit}.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jhoicas/podocare-api/internal/domain"
)

// DefaultTimeout tiempo máximo por petición si no se configura otro.
const DefaultTimeout = 10 * time.Second

const maxBodyBytes = 10 << 20

// Config parámetros del cliente HTTP.
type Config struct {
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	RateLimit    float64 // peticiones por segundo; 0 = sin límite
	RateBurst    int
	DefaultLimit int
}

// Client cliente del backend REST. Se inyecta explícitamente; no hay instancia global.
type Client struct {
	baseURL      *url.URL
	apiKey       string
	http         *http.Client
	limiter      *rate.Limiter
	defaultLimit int
	log          zerolog.Logger
}

// NewClient valida la URL base (debe ser absoluta). httpClient nil crea uno
// con cfg.Timeout.
func NewClient(cfg Config, httpClient *http.Client, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: base url %q: %w", cfg.BaseURL, err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("api: base url %q debe ser absoluta (http://host/api)", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	} else if httpClient.Timeout == 0 {
		hc := *httpClient
		hc.Timeout = timeout
		httpClient = &hc
	}
	c := &Client{
		baseURL:      base,
		apiKey:       cfg.APIKey,
		http:         httpClient,
		defaultLimit: cfg.DefaultLimit,
		log:          log.With().Str("component", "api_client").Logger(),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c, nil
}

// envelope respuesta del backend. Total/Page/Limit se aceptan también al
// nivel superior cuando data es directamente el arreglo.
type envelope struct {
	State   string          `json:"state"`
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
	Data    json.RawMessage `json:"data"`
	Warning *warning        `json:"warning"`
	Total   *int            `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}

// warning aviso de una respuesta exitosa.
type warning struct {
	Code    string `json:"code"`
	Applied string `json:"applied"`
	Message string `json:"message"`
}

// warningPartialWrite código con el que el backend marca una escritura parcial.
const warningPartialWrite = "PARTIAL_WRITE"

// partialWrite *domain.PartialWriteError si el backend marcó la respuesta
// como escritura parcial; nil en otro caso.
func (e *envelope) partialWrite() error {
	if e == nil || e.Warning == nil || !strings.EqualFold(e.Warning.Code, warningPartialWrite) {
		return nil
	}
	msg := e.Warning.Message
	if msg == "" {
		msg = e.Message
	}
	return &domain.PartialWriteError{Applied: e.Warning.Applied, Err: errors.New(msg)}
}

// failed indica un envoltorio de error aunque el estado HTTP sea 2xx.
func (e envelope) failed() bool {
	if strings.EqualFold(e.State, "error") {
		return true
	}
	if e.Success != nil && !*e.Success {
		return true
	}
	return hasValue(e.Error)
}

// errorMessage prefiere message; si no, el campo error (string u objeto con message).
func (e envelope) errorMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if !hasValue(e.Error) {
		return ""
	}
	var s string
	if json.Unmarshal(e.Error, &s) == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(e.Error, &obj) == nil && obj.Message != "" {
		return obj.Message
	}
	return string(e.Error)
}

// hasValue descarta ausente, null, false y "".
func hasValue(raw json.RawMessage) bool {
	v := strings.TrimSpace(string(raw))
	return v != "" && v != "null" && v != "false" && v != `""`
}

// do ejecuta la petición y devuelve el envoltorio ya validado. Cualquier fallo
// (red, estado no 2xx, envoltorio de error o malformado) es *domain.TransportError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	fail := func(status int, msg string, err error) error {
		return &domain.TransportError{Method: method, Path: path, Status: status, Message: msg, Err: err}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fail(0, "", err)
		}
	}

	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fail(0, "serializar cuerpo", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fail(0, "", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("petición fallida")
		return nil, fail(0, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fail(resp.StatusCode, "leer respuesta", err)
	}
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api")

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ""
		if decodeErr == nil {
			msg = env.errorMessage()
		}
		if msg == "" {
			msg = statusMessage(resp.StatusCode)
		}
		return nil, fail(resp.StatusCode, msg, nil)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return &envelope{}, nil
	}
	if decodeErr != nil {
		return nil, fail(resp.StatusCode, "respuesta no es un envoltorio JSON válido", decodeErr)
	}
	if env.failed() {
		msg := env.errorMessage()
		if msg == "" {
			msg = "el servidor reportó un error"
		}
		return nil, fail(resp.StatusCode, msg, nil)
	}
	return &env, nil
}

// data exige un data no nulo en respuestas exitosas.
func (c *Client) data(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	env, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	if !hasData(env.Data) {
		return nil, &domain.TransportError{Method: method, Path: path, Status: http.StatusOK, Message: "respuesta sin data"}
	}
	return env, nil
}

func hasData(raw json.RawMessage) bool {
	v := strings.TrimSpace(string(raw))
	return v != "" && v != "null"
}

func statusMessage(status int) string {
	switch {
	case status == http.StatusNotFound:
		return "recurso no encontrado"
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return "no autorizado"
	case status == http.StatusTooManyRequests:
		return "demasiadas peticiones"
	case status >= 500:
		return "error del servidor"
	}
	return fmt.Sprintf("estado HTTP %d", status)
}
