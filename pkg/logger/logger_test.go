package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"PlisioPay/pkg/correlation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestCorrelationHandler_InjectsID(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCorrelationHandler(slog.NewJSONHandler(&buf, nil)))

	ctx := correlation.WithID(context.Background(), "session-1")
	log.InfoContext(ctx, "polled", slog.String("invoice_id", "inv1"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "session-1", record["correlation_id"])
	assert.Equal(t, "inv1", record["invoice_id"])
}

func TestNew_MasksEmail(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", Output: &buf})

	log.Debug("set user email", slog.String("email", "payer@example.com"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "p***@example.com", record["email"])
}

func TestMaskEmail(t *testing.T) {
	tests := map[string]string{
		"payer@example.com": "p***@example.com",
		"not-an-email":      "***",
		"@example.com":      "***",
	}
	for in, want := range tests {
		assert.Equal(t, want, maskEmail(nil, slog.String("email", in)).Value.String(), in)
	}
	assert.Equal(t, "inv1", maskEmail(nil, slog.String("invoice_id", "inv1")).Value.String())
}

func TestCorrelationHandler_BoundIDWins(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCorrelationHandler(slog.NewJSONHandler(&buf, nil))).
		With(slog.String(CorrelationKey, "session-1"))

	log.InfoContext(correlation.WithID(context.Background(), "request-9"), "step published")

	assert.Equal(t, 1, strings.Count(buf.String(), CorrelationKey))
	assert.Contains(t, buf.String(), "session-1")
}

func newGinEngine(log *slog.Logger, withBodies bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CorrelationMiddleware(), GinRequestLogger(log, withBodies))
	r.POST("/sessions/:session_id/email", func(c *gin.Context) {
		c.JSON(http.StatusConflict, gin.H{"error": "step does not accept an email"})
	})
	return r
}

func TestCorrelationMiddleware(t *testing.T) {
	r := newGinEngine(slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)), false)

	t.Run("echoes incoming id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/sessions/s1/email", nil)
		req.Header.Set(correlation.HeaderName, "abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc", w.Header().Get(correlation.HeaderName))
	})

	t.Run("generates id when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sessions/s1/email", nil))

		assert.NotEmpty(t, w.Header().Get(correlation.HeaderName))
	})
}

func TestGinRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCorrelationHandler(slog.NewJSONHandler(&buf, nil)))
	r := newGinEngine(log, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sessions/s1/email", strings.NewReader(`{"email":"payer@example.com"}`))
	req.Header.Set(correlation.HeaderName, "corr-1")
	r.ServeHTTP(w, req)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "corr-1", record["correlation_id"])
	assert.Equal(t, float64(http.StatusConflict), record["status"])
	assert.Equal(t, map[string]any{"email": "payer@example.com"}, record["request_body"])
	assert.Equal(t, map[string]any{"error": "step does not accept an email"}, record["response_body"])
}

func TestMaybeJSON(t *testing.T) {
	assert.Nil(t, maybeJSON("k", nil).Value.Any())
	assert.Equal(t, "plain text", maybeJSON("k", []byte(" plain text ")).Value.String())
}
