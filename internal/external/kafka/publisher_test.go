package kafka

import (
	"encoding/json"
	"testing"

	"PlisioPay/internal/messaging"
	"PlisioPay/pkg/correlation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMessage(t *testing.T) {
	env, err := messaging.NewEnvelope("session-1", "payment.step.changed", map[string]string{"step": "payment"})
	require.NoError(t, err)
	env.CorrelationID = "session-1"

	msg, err := toMessage(env)
	require.NoError(t, err)

	assert.Equal(t, []byte("session-1"), msg.Key)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, correlation.HeaderName, msg.Headers[1].Key)

	var decoded messaging.Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, env.EventID, decoded.EventID)
	assert.JSONEq(t, `{"step":"payment"}`, string(decoded.Payload))
}

func TestToMessage_WithoutCorrelation(t *testing.T) {
	env, err := messaging.NewEnvelope("session-2", "payment.step.changed", nil)
	require.NoError(t, err)

	msg, err := toMessage(env)
	require.NoError(t, err)
	assert.Len(t, msg.Headers, 1)
}

func TestNewPublisher(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"}, "paysheet.steps")
	assert.Equal(t, "paysheet.steps", p.Topic())
	assert.NoError(t, p.Close())
}
