package payment

import (
	"context"
	"errors"
	"testing"

	"PlisioPay/internal/domain/invoice"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func btc() invoice.CryptoCurrency {
	return invoice.CryptoCurrency{ID: invoice.CurrencyBTC, Code: "BTC", Name: "Bitcoin", Precision: 8, OutputPrecision: 8}
}

func eth() invoice.CryptoCurrency {
	return invoice.CryptoCurrency{ID: invoice.CurrencyETH, Code: "ETH", Name: "Ethereum", Precision: 18, OutputPrecision: 6}
}

func details(status invoice.Status, mods ...func(*invoice.Details)) invoice.Details {
	d := invoice.Details{
		Invoice: invoice.Invoice{
			ID:           "inv1",
			ViewKey:      "key1",
			Status:       status,
			StatusCode:   1,
			Amount:       invoice.MustAmount("0.5"),
			UnpaidAmount: invoice.MustAmount("0.5"),
			Currency:     invoice.CurrencyBTC,
			UserEmailSet: true,
		},
		Shop:                invoice.Shop{Name: "Coffee Corner"},
		Currency:            btc(),
		AvailableCurrencies: []invoice.CryptoCurrency{btc()},
	}
	for _, mod := range mods {
		mod(&d)
	}
	return d
}

func withCurrencies(cs ...invoice.CryptoCurrency) func(*invoice.Details) {
	return func(d *invoice.Details) { d.AvailableCurrencies = cs }
}

func withoutEmail(d *invoice.Details) { d.Invoice.UserEmailSet = false }

func TestProject(t *testing.T) {
	notFound := &invoice.NotFoundError{URL: "https://api.plisio.net/api/v1/invoices/inv1"}
	apiErr := &invoice.APIError{Name: "Bad Request", Message: "Invalid view key", Code: 400}

	testCases := []struct {
		name        string
		state       State
		showDetails bool
		expected    Kind
	}{
		{name: "fresh session", state: State{}, expected: KindInitial},
		{name: "not found hidden", state: State{Err: notFound}, expected: KindInitial},
		{name: "not found shown", state: State{Err: notFound}, showDetails: true, expected: KindError},
		{name: "not found with cached details", state: State{Err: notFound, Details: ptr(details(invoice.StatusNew))}, expected: KindError},
		{name: "api error", state: State{Err: apiErr}, expected: KindError},
		{name: "first load", state: State{IsLoading: true}, expected: KindInitial},
		{name: "loading flag", state: State{IsLoading: true, Details: ptr(details(invoice.StatusNew))}, expected: KindLoading},
		{name: "undefined status", state: State{Details: ptr(details(invoice.StatusUndefined))}, expected: KindLoading},
		{name: "cancelled duplicate", state: State{Details: ptr(details(invoice.StatusCancelledDuplicate))}, expected: KindLoading},
		{name: "completed", state: State{Details: ptr(details(invoice.StatusCompleted, withoutEmail))}, expected: KindCompletion},
		{name: "expired", state: State{Details: ptr(details(invoice.StatusExpired))}, expected: KindCompletion},
		{
			name: "confirming",
			state: State{Details: ptr(details(invoice.StatusPendingInternal, withoutEmail, func(d *invoice.Details) {
				d.Invoice.UnpaidAmount = invoice.Zero
			}))},
			expected: KindConfirmation,
		},
		{name: "email required", state: State{Details: ptr(details(invoice.StatusNew, withoutEmail, withCurrencies(btc(), eth())))}, expected: KindUserEmail},
		{name: "currency choice", state: State{Details: ptr(details(invoice.StatusNew, withCurrencies(btc(), eth())))}, expected: KindCurrency},
		{
			name:     "currency chosen",
			state:    State{CurrencySelected: true, Details: ptr(details(invoice.StatusNew, withCurrencies(btc(), eth())))},
			expected: KindPayment,
		},
		{name: "single currency", state: State{Details: ptr(details(invoice.StatusPending))}, expected: KindPayment},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			step := Project(tc.state, tc.showDetails, Commands{})

			assert.Equal(t, tc.expected, step.Kind())
			assert.Equal(t, step, Project(tc.state, tc.showDetails, Commands{}), "projection is deterministic")
		})
	}
}

func TestProject_Payloads(t *testing.T) {
	t.Run("initial carries loading flag", func(t *testing.T) {
		assert.Equal(t, Initial{Loading: true}, Project(State{IsLoading: true}, false, Commands{}))
		assert.Equal(t, Default, Project(State{}, false, Commands{}))
	})

	t.Run("error keeps stale details", func(t *testing.T) {
		d := details(invoice.StatusPending)
		err := errors.New("connection reset")

		step := Project(State{Err: err, Details: &d}, true, Commands{})

		require.IsType(t, Error{}, step)
		e := step.(Error)
		assert.Equal(t, err, e.Err)
		assert.Equal(t, &d, e.Details)
		assert.True(t, e.ShowDetails)
		assert.Equal(t, "connection reset", e.Message())
	})

	t.Run("payment exposes currency change", func(t *testing.T) {
		var changed bool
		d := details(invoice.StatusNew, withCurrencies(btc(), eth()))

		step := Project(State{CurrencySelected: true, Details: &d}, false, Commands{ChangeCurrency: func() { changed = true }})

		require.IsType(t, Payment{}, step)
		p := step.(Payment)
		assert.True(t, p.CanChangeCurrency)
		p.ChangeCurrency()
		assert.True(t, changed)
	})

	t.Run("user email exposes submit and last error", func(t *testing.T) {
		var submitted string
		d := details(invoice.StatusNew, withoutEmail)
		cmds := Commands{SubmitEmail: func(_ context.Context, email string) { submitted = email }}

		step := Project(State{Details: &d, EmailError: "Invalid email"}, false, cmds)

		require.IsType(t, UserEmail{}, step)
		u := step.(UserEmail)
		assert.Equal(t, "Invalid email", u.EmailError)
		u.SubmitEmail(context.Background(), "payer@example.com")
		assert.Equal(t, "payer@example.com", submitted)
	})

	t.Run("currency lists options and selects", func(t *testing.T) {
		var selected invoice.CurrencyID
		d := details(invoice.StatusNew, withCurrencies(btc(), eth()))
		cmds := Commands{SelectCurrency: func(_ context.Context, id invoice.CurrencyID) { selected = id }}

		step := Project(State{Details: &d}, false, cmds)

		require.IsType(t, Currency{}, step)
		c := step.(Currency)
		assert.Len(t, c.Currencies, 2)
		c.Select(context.Background(), invoice.CurrencyETH)
		assert.Equal(t, invoice.CurrencyETH, selected)
	})
}

func TestError_Diagnostics(t *testing.T) {
	textErr := &invoice.ResponseTextError{Cause: errors.New("invalid character '<'"), ResponseText: "<html>502</html>"}

	assert.Equal(t, "<html>502</html>", Error{Err: textErr, ShowDetails: true}.Diagnostics())
	assert.Empty(t, Error{Err: textErr}.Diagnostics())
	assert.Empty(t, Error{Err: errors.New("boom"), ShowDetails: true}.Diagnostics())
}

func TestView_FormattedAmounts(t *testing.T) {
	d := details(invoice.StatusPending, func(d *invoice.Details) {
		d.Currency = eth()
		d.Invoice.Amount = invoice.MustAmount("1.2345678")
		d.Invoice.PendingAmount = invoice.MustAmount("0.2")
		d.Invoice.ReceivedAmount = invoice.MustAmount("1")
		d.Invoice.UnpaidAmount = invoice.MustAmount("0.0345678")
	})
	v := View{Details: d}

	assert.Equal(t, "1.234568 ETH", v.FormattedFullAmount())
	assert.Equal(t, "0.200000 ETH", v.FormattedPendingAmount())
	assert.Equal(t, "1.000000 ETH", v.FormattedReceivedAmount())
	assert.Equal(t, "0.034568 ETH", v.FormattedUnpaidAmount())
	assert.Equal(t, "0.034568", v.FormattedUnpaidAmountPlain())
	assert.Equal(t, invoice.IndicatorProgress, v.Indicator())
}

func TestDetailsOf(t *testing.T) {
	d := details(invoice.StatusCompleted)

	got, ok := DetailsOf(Completion{View: View{Details: d}})
	assert.True(t, ok)
	assert.Equal(t, d, got)

	_, ok = DetailsOf(Initial{})
	assert.False(t, ok)

	_, ok = DetailsOf(Error{Err: errors.New("x")})
	assert.False(t, ok)
}
