// Package session hosts many payment machines, one per payer session, and
// forwards their steps to the configured sinks.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"PlisioPay/internal/domain/payment"
	"PlisioPay/internal/messaging"
	"PlisioPay/pkg/correlation"
	"PlisioPay/pkg/metrics"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("payment session not found")

const (
	defaultJanitorInterval = time.Minute
	publishTimeout         = 5 * time.Second
)

type Option func(*Manager)

// WithIdleTTL closes sessions not accessed for ttl. Zero keeps sessions until closed.
func WithIdleTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.idleTTL = ttl }
}

func WithJanitorInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.janitorInterval = d
		}
	}
}

// WithMachineOptions is applied to every machine the manager opens.
func WithMachineOptions(opts ...payment.Option) Option {
	return func(m *Manager) { m.machineOpts = append(m.machineOpts, opts...) }
}

func withNow(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

type Manager struct {
	api             payment.InvoiceAPI
	publisher       messaging.Publisher
	machineOpts     []payment.Option
	idleTTL         time.Duration
	janitorInterval time.Duration
	now             func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a manager. A nil publisher disables step events.
func NewManager(api payment.InvoiceAPI, publisher messaging.Publisher, opts ...Option) *Manager {
	if publisher == nil {
		publisher = messaging.NewFanout()
	}
	m := &Manager{
		api:             api,
		publisher:       publisher,
		janitorInterval: defaultJanitorInterval,
		now:             time.Now,
		sessions:        make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open creates a session with a fresh machine in the Initial step.
func (m *Manager) Open() *Session {
	id := uuid.NewString()
	ctx := correlation.WithID(context.Background(), id)
	log := slog.Default().With(slog.String("session_id", id))

	opts := make([]payment.Option, 0, len(m.machineOpts)+3)
	opts = append(opts, m.machineOpts...)
	opts = append(opts,
		payment.WithContext(ctx),
		payment.WithLogger(log),
		payment.WithPollGauge(metrics.ActivePolls),
	)

	s := newSession(id, payment.NewMachine(m.api, opts...), m.now())
	// The subscription is closed by Machine.Close.
	steps, _ := s.Machine.Subscribe()
	go s.watch(ctx, steps, m.publisher, m.now)

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	metrics.ActiveSessions.Inc()
	log.InfoContext(ctx, "Payment session opened")
	return s
}

// Get returns the session and marks it as used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(m.now())
	return s, nil
}

func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	s.close()
	metrics.ActiveSessions.Dec()
	slog.Info("Payment session closed", slog.String("session_id", id))
	return nil
}

func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	var wg sync.WaitGroup
	for _, s := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.close()
			metrics.ActiveSessions.Dec()
		}()
	}
	wg.Wait()
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Run reaps idle sessions until ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	if m.idleTTL <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(m.janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.reapIdle(); n > 0 {
				slog.Info("Idle payment sessions closed", slog.Int("count", n))
			}
		}
	}
}

func (m *Manager) reapIdle() int {
	if m.idleTTL <= 0 {
		return 0
	}
	deadline := m.now().Add(-m.idleTTL)

	m.mu.Lock()
	var idle []string
	for id, s := range m.sessions {
		if s.lastSeen().Before(deadline) {
			idle = append(idle, id)
		}
	}
	m.mu.Unlock()

	n := 0
	for _, id := range idle {
		if m.Close(id) == nil {
			n++
		}
	}
	return n
}
