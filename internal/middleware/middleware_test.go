package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capturarLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	anterior := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = anterior })
	return &buf
}

func TestRequestIDGeraEPropaga(t *testing.T) {
	var visto string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visto = RequestIDDe(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, visto)
	assert.Equal(t, visto, w.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", visto)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestLoggerRegistraStatus(t *testing.T) {
	buf := capturarLog(t)
	h := RequestID(Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nada", http.StatusNotFound)
	})))

	req := httptest.NewRequest(http.MethodGet, "/veiculos/9", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var linha map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &linha))
	assert.Equal(t, "req-1", linha["request_id"])
	assert.Equal(t, "GET", linha["method"])
	assert.Equal(t, "/veiculos/9", linha["path"])
	assert.Equal(t, float64(404), linha["status"])
	assert.Equal(t, "info", linha["level"])
}

func TestLoggerStatusPadrao(t *testing.T) {
	buf := capturarLog(t)
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, buf.String(), `"status":200`)
}

func TestRecovery(t *testing.T) {
	buf := capturarLog(t)
	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("segredo interno")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "segredo")
	assert.Contains(t, buf.String(), "panic recuperado")
}
