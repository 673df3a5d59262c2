package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"PlisioPay/internal/domain/invoice"
	"PlisioPay/internal/domain/payment"
	"PlisioPay/internal/messaging"
	"PlisioPay/pkg/correlation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type eventRecorder struct {
	mu     sync.Mutex
	events []StepEvent
	envs   []messaging.Envelope
	signal chan struct{}
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{signal: make(chan struct{}, 64)}
}

func (r *eventRecorder) Publish(_ context.Context, env messaging.Envelope) error {
	var ev StepEvent
	if err := json.Unmarshal(env.Payload, &ev); err != nil {
		return err
	}
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.envs = append(r.envs, env)
	r.mu.Unlock()
	r.signal <- struct{}{}
	return nil
}

func (r *eventRecorder) Close() error { return nil }

func (r *eventRecorder) waitFor(t *testing.T, kind payment.Kind) StepEvent {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		r.mu.Lock()
		for _, ev := range r.events {
			if ev.Step == kind {
				r.mu.Unlock()
				return ev
			}
		}
		r.mu.Unlock()

		select {
		case <-r.signal:
		case <-deadline:
			t.Fatalf("no %s event published", kind)
		}
	}
}

func pendingDetails() invoice.Details {
	btc := invoice.CryptoCurrency{ID: invoice.CurrencyBTC, Code: "BTC", Precision: 8, OutputPrecision: 8}
	return invoice.Details{
		Invoice: invoice.Invoice{
			ID:           "inv1",
			ViewKey:      "key1",
			Status:       invoice.StatusPending,
			Amount:       invoice.MustAmount("0.5"),
			UnpaidAmount: invoice.MustAmount("0.5"),
			Currency:     invoice.CurrencyBTC,
			UserEmailSet: true,
		},
		Currency:            btc,
		AvailableCurrencies: []invoice.CryptoCurrency{btc},
	}
}

func newTestManager(t *testing.T, opts ...Option) (*Manager, *payment.MockInvoiceAPI, *eventRecorder) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := payment.NewMockInvoiceAPI(ctrl)
	rec := newEventRecorder()

	opts = append([]Option{WithMachineOptions(payment.WithPollInterval(time.Hour))}, opts...)
	m := NewManager(api, rec, opts...)
	t.Cleanup(m.CloseAll)
	return m, api, rec
}

func TestManager_OpenPublishesSteps(t *testing.T) {
	m, api, rec := newTestManager(t)
	api.EXPECT().FetchInvoice(gomock.Any(), invoice.ID("inv1"), invoice.ViewKey("key1")).Return(pendingDetails(), nil)

	s := m.Open()
	require.NotEmpty(t, s.ID)
	rec.waitFor(t, payment.KindInitial)

	s.Machine.LoadInvoice("inv1", "key1")

	ev := rec.waitFor(t, payment.KindPayment)
	assert.Equal(t, s.ID, ev.SessionID)
	assert.Equal(t, invoice.ID("inv1"), ev.InvoiceID)
	assert.Equal(t, invoice.StatusPending, ev.Status)
	assert.Equal(t, "0.5", ev.UnpaidAmount)

	rec.mu.Lock()
	env := rec.envs[len(rec.envs)-1]
	rec.mu.Unlock()
	assert.Equal(t, StepChangedEvent, env.Type)
	assert.Equal(t, s.ID, env.Key)
	assert.Equal(t, s.ID, env.CorrelationID)
}

func TestManager_FetchCarriesSessionCorrelation(t *testing.T) {
	m, api, rec := newTestManager(t)
	s := m.Open()

	api.EXPECT().FetchInvoice(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ invoice.ID, _ invoice.ViewKey) (invoice.Details, error) {
			assert.Equal(t, s.ID, correlation.FromContext(ctx))
			return pendingDetails(), nil
		})

	s.Machine.LoadInvoice("inv1", "key1")
	rec.waitFor(t, payment.KindPayment)
}

func TestManager_GetAndClose(t *testing.T) {
	m, _, _ := newTestManager(t)

	_, err := m.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	s := m.Open()
	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, m.Len())

	require.NoError(t, m.Close(s.ID))
	assert.ErrorIs(t, m.Close(s.ID), ErrSessionNotFound)
	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestManager_ReapIdle(t *testing.T) {
	var mu sync.Mutex
	now := time.Date(2024, 3, 14, 15, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		now = now.Add(d)
		mu.Unlock()
	}

	m, _, _ := newTestManager(t, WithIdleTTL(10*time.Minute), withNow(clock))
	idle := m.Open()
	busy := m.Open()

	advance(6 * time.Minute)
	_, err := m.Get(busy.ID)
	require.NoError(t, err)
	advance(6 * time.Minute)

	assert.Equal(t, 1, m.reapIdle())

	_, err = m.Get(idle.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(busy.ID)
	assert.NoError(t, err)
}

func TestManager_RunStopsWithContext(t *testing.T) {
	m, _, _ := newTestManager(t, WithIdleTTL(time.Minute), WithJanitorInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestManager_CloseAll(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.Open()
	m.Open()

	m.CloseAll()

	assert.Equal(t, 0, m.Len())
}

func TestNewStepEvent(t *testing.T) {
	at := time.Date(2024, 3, 14, 15, 0, 0, 0, time.UTC)
	d := pendingDetails()

	t.Run("initial loading", func(t *testing.T) {
		ev := newStepEvent("s1", payment.Initial{Loading: true}, at)
		assert.Equal(t, payment.KindInitial, ev.Step)
		assert.True(t, ev.Loading)
		assert.Empty(t, ev.InvoiceID)
	})

	t.Run("error keeps stale invoice", func(t *testing.T) {
		ev := newStepEvent("s1", payment.Error{Err: errors.New("connection reset"), Details: &d}, at)
		assert.Equal(t, "connection reset", ev.Error)
		assert.Equal(t, invoice.ID("inv1"), ev.InvoiceID)
	})

	t.Run("loading flag", func(t *testing.T) {
		ev := newStepEvent("s1", payment.Loading{View: payment.View{Details: d}}, at)
		assert.True(t, ev.Loading)
		assert.Equal(t, invoice.CurrencyBTC, ev.Currency)
	})

	t.Run("same sheet ignores time", func(t *testing.T) {
		a := newStepEvent("s1", payment.Payment{View: payment.View{Details: d}}, at)
		b := newStepEvent("s1", payment.Payment{View: payment.View{Details: d}}, at.Add(time.Minute))
		c := newStepEvent("s1", payment.Confirmation{View: payment.View{Details: d}}, at)

		assert.True(t, a.sameAs(b))
		assert.False(t, a.sameAs(c))
	})
}
