//go:build integration
// +build integration

package plisio_test

import (
	"context"
	"testing"
	"time"

	"PlisioPay/internal/domain/invoice"
	"PlisioPay/internal/external/plisio"
	"PlisioPay/internal/testinfra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Wiremock(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	wm, err := testinfra.NewWiremock(ctx, "testdata/wiremock")
	require.NoError(t, err)
	t.Cleanup(func() { wm.Cleanup(context.Background()) })

	client := plisio.NewClient(plisio.Config{BaseURL: wm.BaseURL, Timeout: 5 * time.Second})
	t.Cleanup(func() { _ = client.Close() })

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, client.Ping(ctx))
	})

	t.Run("fetch invoice", func(t *testing.T) {
		d, err := client.FetchInvoice(ctx, " 65f1c0a2e4b0a1b2c3d4e5f6 ", "vk-7f3a9c")

		require.NoError(t, err)
		assert.Equal(t, invoice.StatusPending, d.Invoice.Status)
		assert.Equal(t, "Coffee Corner", d.Shop.Name)
		assert.Len(t, d.AvailableCurrencies, 2)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := client.FetchInvoice(ctx, "missing", "vk")

		var nf *invoice.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.NotContains(t, nf.URL, "api_key")
	})

	t.Run("validation message is unwrapped", func(t *testing.T) {
		_, err := client.SetUserEmail(ctx, "bad", "65f1c0a2e4b0a1b2c3d4e5f6", "vk-7f3a9c")

		var apiErr *invoice.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Email is not a valid email address.", apiErr.Message)
		assert.Equal(t, 422, apiErr.Code)
	})

	t.Run("create invoice falls back to txn id", func(t *testing.T) {
		created, err := client.CreateInvoice(ctx, invoice.NewRequest{
			APIKey:         "shop-key",
			SourceCurrency: "USD",
			SourceAmount:   "12.5",
			OrderName:      "Coffee",
			OrderNumber:    "order-42",
		})

		require.NoError(t, err)
		assert.Equal(t, invoice.ID("65f1c0a2e4b0a1b2c3d4e5f6"), created.ID)
		assert.Equal(t, invoice.ViewKey("vk-7f3a9c"), created.ViewKey)
	})
}
