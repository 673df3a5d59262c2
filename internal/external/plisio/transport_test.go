//go:build !integration

package plisio

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"PlisioPay/internal/domain/invoice"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","data":{"txn_id":"inv1","view_key":"vk1"}}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	client := NewClient(Config{
		BaseURL:       server.URL,
		Timeout:       5 * time.Second,
		EnableLogging: true,
		Logger:        slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})

	created, err := client.CreateInvoice(context.Background(), invoice.NewRequest{APIKey: "top-secret"})

	require.NoError(t, err)
	assert.Equal(t, invoice.ID("inv1"), created.ID)
	assert.Contains(t, buf.String(), "Plisio response")
	assert.Contains(t, buf.String(), "txn_id")
	assert.NotContains(t, buf.String(), "top-secret")
}

func TestClient_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	client := newTestClient(server.URL, 1)
	assert.NoError(t, client.Ping(context.Background()))

	server.Close()
	assert.ErrorIs(t, client.Ping(context.Background()), invoice.ErrServiceUnavailable)
}
