package handlers

import (
	"errors"
	"testing"
	"time"

	"PlisioPay/internal/domain/invoice"
	"PlisioPay/internal/domain/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStepView_Error(t *testing.T) {
	now := time.Date(2024, 3, 14, 15, 0, 0, 0, time.UTC)
	textErr := &invoice.ResponseTextError{Cause: errors.New("invalid character '<'"), ResponseText: "<html>502</html>"}

	testCases := []struct {
		name     string
		step     payment.Error
		expected ErrorView
	}{
		{
			name:     "verbose shows raw response",
			step:     payment.Error{Err: textErr, ShowDetails: true},
			expected: ErrorView{Message: textErr.Error(), Diagnostics: "<html>502</html>"},
		},
		{
			name:     "quiet hides raw response",
			step:     payment.Error{Err: textErr},
			expected: ErrorView{Message: textErr.Error()},
		},
		{
			name:     "not found is flagged",
			step:     payment.Error{Err: &invoice.NotFoundError{URL: "https://api.plisio.net/api/v1/invoices/x"}, ShowDetails: true},
			expected: ErrorView{Message: (&invoice.NotFoundError{URL: "https://api.plisio.net/api/v1/invoices/x"}).Error(), NotFound: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sv := NewStepView("s1", tc.step, now)

			assert.Equal(t, payment.KindError, sv.Kind)
			require.NotNil(t, sv.Error)
			assert.Equal(t, tc.expected, *sv.Error)
			assert.Nil(t, sv.Invoice)
			assert.Empty(t, sv.Actions)
		})
	}
}

func TestNewStepView_ErrorKeepsStaleInvoice(t *testing.T) {
	d := invoice.Details{
		Invoice:  invoice.Invoice{ID: "inv1", ViewKey: "key1", Status: invoice.StatusPending, WalletHash: "bc1q"},
		Shop:     invoice.Shop{Name: "Coffee Corner"},
		Currency: invoice.CryptoCurrency{ID: invoice.CurrencyBTC, Code: "BTC", Precision: 8, OutputPrecision: 8},
	}

	sv := NewStepView("s1", payment.Error{Err: errors.New("connection reset"), Details: &d}, time.Now())

	require.NotNil(t, sv.Invoice)
	assert.Equal(t, invoice.ID("inv1"), sv.Invoice.ID)
	assert.Equal(t, "bc1q", sv.Invoice.QRPayload)
	require.NotNil(t, sv.Shop)
	assert.Equal(t, "Coffee Corner", sv.Shop.Name)
}

func TestNewStepView_Initial(t *testing.T) {
	sv := NewStepView("s1", payment.Initial{Loading: true}, time.Now())

	assert.Equal(t, payment.KindInitial, sv.Kind)
	assert.True(t, sv.Loading)
	assert.NotNil(t, sv.Actions)
	assert.Nil(t, sv.Invoice)
}
