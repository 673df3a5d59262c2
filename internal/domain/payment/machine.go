package payment

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"PlisioPay/internal/domain/invoice"
)

var (
	ErrNoInvoiceCreator = errors.New("invoice creation is not configured")
	ErrMachineClosed    = errors.New("payment machine is closed")
)

// Machine drives one payment sheet: it polls the current invoice, runs the
// user actions and publishes the projected step after every state change.
//
// At most one operation runs at a time. An operation is either the poll loop
// or a single action call; starting one cancels the previous one, and results
// of a cancelled operation are dropped.
type Machine struct {
	api              InvoiceAPI
	creator          InvoiceCreator
	memo             InvoiceMemo
	logger           *slog.Logger
	interval         time.Duration
	showErrorDetails bool
	observer         func(Step)
	gauge            Gauge
	baseCtx          context.Context
	now              func() time.Time
	after            func(time.Duration) <-chan time.Time
	commands         Commands

	mu     sync.Mutex
	state  State
	step   Step
	gen    uint64
	cancel context.CancelFunc
	subs   map[int]chan Step
	nextID int
	closed bool

	wg sync.WaitGroup
}

func NewMachine(api InvoiceAPI, opts ...Option) *Machine {
	m := &Machine{
		api:      api,
		logger:   slog.Default(),
		interval: DefaultPollInterval,
		gauge:    nopGauge{},
		baseCtx:  context.Background(),
		now:      time.Now,
		after:    time.After,
		step:     Default,
		subs:     make(map[int]chan Step),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.commands = Commands{
		SubmitEmail:    m.SetUserEmail,
		SelectCurrency: m.SetCurrency,
		ChangeCurrency: m.ChangeCurrency,
	}
	return m
}

// Step returns the last published step.
func (m *Machine) Step() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

// State returns a copy of the current session state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe returns a channel holding the latest step. Slow readers skip
// intermediate steps. The channel is closed by the returned func or by Close.
func (m *Machine) Subscribe() (<-chan Step, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan Step, 1)
	if m.closed {
		ch <- m.step
		close(ch)
		return ch, func() {}
	}
	id := m.nextID
	m.nextID++
	m.subs[id] = ch
	ch <- m.step

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(ch)
		}
	}
}

// LoadInvoice starts polling an invoice. Loading the pair already loaded
// resumes the current (possibly redirected) target and keeps the currency choice.
func (m *Machine) LoadInvoice(id invoice.ID, key invoice.ViewKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadLocked(Target{ID: id, ViewKey: key}.Trimmed())
}

func (m *Machine) loadLocked(t Target) {
	if m.closed {
		return
	}
	if m.state.Original != nil && *m.state.Original == t {
		m.resumeLocked()
		return
	}

	m.state = State{Original: ptr(t)}
	if !m.startLocked(t, true) {
		m.publishLocked()
	}
}

// SetUserEmail attaches the payer's e-mail to the current invoice.
func (m *Machine) SetUserEmail(ctx context.Context, email string) {
	m.mu.Lock()
	if m.closed || m.state.Current == nil {
		m.mu.Unlock()
		return
	}
	target := *m.state.Current
	opCtx, gen, cancel := m.beginLocked(ctx)
	defer cancel()

	s := m.state
	s.EmailError = ""
	s.IsLoading = true
	s.Err = nil
	m.setLocked(s)
	m.mu.Unlock()

	d, err := m.api.SetUserEmail(opCtx, email, target.ID, target.ViewKey)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.finishLocked(gen) {
		return
	}
	s = m.state
	if err != nil {
		m.logger.InfoContext(opCtx, "set user email failed", "invoice_id", target.ID, "email", email, "error", err)
		s.EmailError = err.Error()
	} else {
		s.Details = &d
	}
	s.CurrencySelected = false
	s.IsLoading = false
	s.Err = nil
	m.setLocked(s)

	if err == nil {
		m.startLocked(nextTarget(d, target), false)
	}
}

// SetCurrency switches the current invoice to another currency. Choosing the
// currency already in use only marks the choice as made.
func (m *Machine) SetCurrency(ctx context.Context, id invoice.CurrencyID) {
	m.mu.Lock()
	if m.closed || m.state.Current == nil {
		m.mu.Unlock()
		return
	}
	id = id.Trimmed()
	if d := m.state.Details; d != nil && d.Currency.ID == id {
		s := m.state
		s.CurrencySelected = true
		m.setLocked(s)
		m.mu.Unlock()
		return
	}
	target := *m.state.Current
	opCtx, gen, cancel := m.beginLocked(ctx)
	defer cancel()

	s := m.state
	s.IsLoading = true
	s.Err = nil
	m.setLocked(s)
	m.mu.Unlock()

	d, err := m.api.SetCurrency(opCtx, id, target.ID, target.ViewKey)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.finishLocked(gen) {
		return
	}
	s = m.state
	if err != nil {
		m.logger.WarnContext(opCtx, "set currency failed", "invoice_id", target.ID, "currency", id, "error", err)
	} else {
		s.Details = &d
	}
	s.IsLoading = err == nil
	s.CurrencySelected = true
	s.Err = err
	m.setLocked(s)

	if err == nil {
		m.startLocked(nextTarget(d, target), false)
	}
}

// ChangeCurrency goes back to currency selection when the invoice allows it.
func (m *Machine) ChangeCurrency() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.state.Details == nil || !m.state.Details.CanChangeCurrency() {
		return
	}
	s := m.state
	s.CurrencySelected = false
	m.setLocked(s)
}

// NewInvoice creates an invoice and loads it. An unexpired invoice remembered
// for the same order is loaded instead of creating a new one.
func (m *Machine) NewInvoice(ctx context.Context, req invoice.NewRequest) error {
	if m.creator == nil {
		return ErrNoInvoiceCreator
	}
	key := req.MemoKey()
	if r, ok := m.recall(ctx, key); ok {
		m.logger.DebugContext(ctx, "reusing remembered invoice", "invoice_id", r.ID, "memo_key", key)
		m.LoadInvoice(r.ID, r.ViewKey)
		return nil
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrMachineClosed
	}
	opCtx, gen, cancel := m.beginLocked(ctx)
	defer cancel()

	s := m.state
	s.EmailError = ""
	s.IsLoading = true
	s.Err = nil
	m.setLocked(s)
	m.mu.Unlock()

	created, err := m.creator.CreateInvoice(opCtx, req)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.finishLocked(gen) {
		return context.Canceled
	}
	if err != nil {
		m.logger.WarnContext(opCtx, "create invoice failed", "order_number", key, "error", err)
		m.setLocked(m.state.withFailure(err))
		return err
	}
	if req.ExpireMin > 0 {
		m.remember(opCtx, invoice.Remembered{
			Key:       key,
			ID:        created.ID,
			ViewKey:   created.ViewKey,
			ExpiresAt: m.now().Add(time.Duration(req.ExpireMin) * time.Minute),
		})
	}
	m.loadLocked(Target{ID: created.ID, ViewKey: created.ViewKey}.Trimmed())
	return nil
}

func (m *Machine) recall(ctx context.Context, key string) (invoice.Remembered, bool) {
	if m.memo == nil || key == "" {
		return invoice.Remembered{}, false
	}
	r, ok, err := m.memo.Recall(ctx, key)
	if err != nil {
		m.logger.WarnContext(ctx, "recall invoice failed", "memo_key", key, "error", err)
		return invoice.Remembered{}, false
	}
	return r, ok && r.IsValidAt(m.now())
}

func (m *Machine) remember(ctx context.Context, r invoice.Remembered) {
	if m.memo == nil || r.Key == "" {
		return
	}
	if err := m.memo.Remember(ctx, r); err != nil {
		m.logger.WarnContext(ctx, "remember invoice failed", "memo_key", r.Key, "error", err)
	}
}

// Reset stops all work and returns to the Default step.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
	m.setLocked(State{})
}

// Start resumes polling the last known target immediately.
func (m *Machine) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resumeLocked()
}

// Stop cancels polling and keeps the state, so Start can resume.
func (m *Machine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

// Close stops all work, closes subscriptions and waits for the poll loop to exit.
func (m *Machine) Close() {
	m.mu.Lock()
	m.stopLocked()
	if !m.closed {
		m.closed = true
		for id, ch := range m.subs {
			delete(m.subs, id)
			close(ch)
		}
	}
	m.mu.Unlock()

	m.wg.Wait()
}

func (m *Machine) resumeLocked() {
	if m.closed || m.state.Current == nil {
		return
	}
	m.startLocked(*m.state.Current, true)
}

func (m *Machine) stopLocked() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.gen++
}

// beginLocked cancels the running operation and registers an action call.
// The action context keeps the caller's values but is cancelled only by the machine.
func (m *Machine) beginLocked(ctx context.Context) (context.Context, uint64, context.CancelFunc) {
	m.stopLocked()
	opCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m.cancel = cancel
	return opCtx, m.gen, cancel
}

// finishLocked reports whether the action started at gen is still the current operation.
func (m *Machine) finishLocked(gen uint64) bool {
	if m.gen != gen {
		return false
	}
	m.cancel = nil
	return true
}

// startLocked replaces the running operation with a poll loop for t.
// It reports false when t is blank and nothing was started.
func (m *Machine) startLocked(t Target, immediate bool) bool {
	m.stopLocked()
	if m.closed || t.IsBlank() {
		return false
	}
	ctx, cancel := context.WithCancel(m.baseCtx)
	m.cancel = cancel
	gen := m.gen

	m.setLocked(m.state.withInterim(t))

	m.wg.Add(1)
	go m.poll(ctx, gen, t, !immediate)
	return true
}

func (m *Machine) poll(ctx context.Context, gen uint64, t Target, wait bool) {
	defer m.wg.Done()
	m.gauge.Inc()
	defer m.gauge.Dec()

	log := m.logger.With("invoice_id", t.ID)
	log.DebugContext(ctx, "poll loop started", "immediate", !wait)
	defer func() { log.DebugContext(context.WithoutCancel(ctx), "poll loop stopped") }()

	for {
		if wait {
			select {
			case <-ctx.Done():
				return
			case <-m.after(m.interval):
			}
		}
		wait = true

		d, err := m.api.FetchInvoice(ctx, t.ID, t.ViewKey)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.WarnContext(ctx, "fetch invoice failed", "error", err)
			m.apply(gen, func(s State) State { return s.withFailure(err) })
			return
		}
		if !m.apply(gen, func(s State) State { return s.withFetched(d) }) {
			return
		}

		if next, ok := d.RedirectTarget(); ok {
			key := d.Invoice.ViewKey.Trimmed()
			if key == "" {
				key = t.ViewKey
			}
			t = Target{ID: next, ViewKey: key}
			log.InfoContext(ctx, "invoice replaced", "active_invoice_id", t.ID)
			log = m.logger.With("invoice_id", t.ID)
			wait = false
			if !m.apply(gen, func(s State) State { return s.withInterim(t) }) {
				return
			}
			continue
		}
		if d.Invoice.Status.IsFinished() {
			log.InfoContext(ctx, "invoice finished", "status", d.Invoice.Status)
			return
		}
	}
}

// nextTarget is the invoice to poll after a server reply, falling back to the
// previous view key when the reply carries none.
func nextTarget(d invoice.Details, prev Target) Target {
	t := Target{ID: d.Invoice.ID, ViewKey: d.Invoice.ViewKey}.Trimmed()
	if t.ID == "" {
		t.ID = prev.ID
	}
	if t.ViewKey == "" {
		t.ViewKey = prev.ViewKey
	}
	return t
}

// apply replaces the state if gen is still the current operation.
func (m *Machine) apply(gen uint64, fn func(State) State) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return false
	}
	m.setLocked(fn(m.state))
	return true
}

func (m *Machine) setLocked(s State) {
	m.state = s
	m.publishLocked()
}

func (m *Machine) publishLocked() {
	step := Project(m.state, m.showErrorDetails, m.commands)
	m.step = step
	for _, ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		ch <- step
	}
	if m.observer != nil {
		m.observer(step)
	}
}
