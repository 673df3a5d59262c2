package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu       sync.Mutex
	got      []Envelope
	err      error
	closed   bool
	closeErr error
}

func (p *recordingPublisher) Publish(_ context.Context, env Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.got = append(p.got, env)
	return nil
}

func (p *recordingPublisher) Close() error {
	p.closed = true
	return p.closeErr
}

func TestNewEnvelope(t *testing.T) {
	env, err := NewEnvelope("session-1", "payment.step.changed", map[string]string{"step": "payment"})
	require.NoError(t, err)

	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, "session-1", env.Key)
	assert.JSONEq(t, `{"step":"payment"}`, string(env.Payload))
	assert.False(t, env.Timestamp.IsZero())

	_, err = NewEnvelope("k", "t", make(chan int))
	assert.Error(t, err)
}

func TestFanout_Publish(t *testing.T) {
	env, err := NewEnvelope("session-1", "payment.step.changed", json.RawMessage(`{}`))
	require.NoError(t, err)

	t.Run("delivers to every sink", func(t *testing.T) {
		a, b := &recordingPublisher{}, &recordingPublisher{}
		f := NewFanout(Sink{Name: "kafka", Publisher: a}, Sink{Name: "opensearch", Publisher: b})

		require.NoError(t, f.Publish(context.Background(), env))
		assert.Equal(t, []Envelope{env}, a.got)
		assert.Equal(t, []Envelope{env}, b.got)
	})

	t.Run("failing sink does not block others", func(t *testing.T) {
		bad := &recordingPublisher{err: errors.New("broker down")}
		good := &recordingPublisher{}
		f := NewFanout(Sink{Name: "kafka", Publisher: bad}, Sink{Name: "opensearch", Publisher: good})

		err := f.Publish(context.Background(), env)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "kafka: broker down")
		assert.Len(t, good.got, 1)
	})

	t.Run("no sinks", func(t *testing.T) {
		assert.NoError(t, NewFanout().Publish(context.Background(), env))
	})
}

func TestFanout_Close(t *testing.T) {
	a := &recordingPublisher{}
	b := &recordingPublisher{closeErr: errors.New("flush failed")}
	f := NewFanout(Sink{Name: "kafka", Publisher: a}, Sink{Name: "opensearch", Publisher: b})

	err := f.Close()

	assert.True(t, a.closed)
	assert.True(t, b.closed)
	assert.ErrorContains(t, err, "close opensearch")
}
