package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "https://api.plisio.net/api/v1", cfg.PlisioBaseURL)
	assert.Equal(t, 10*time.Second, cfg.PollInterval)
	assert.Equal(t, 1, cfg.PlisioRetryAttempts)
	assert.Equal(t, MemoMemory, cfg.MemoBackend)
	assert.Empty(t, cfg.StepSinks)
}

func TestNew_FromEnv(t *testing.T) {
	t.Setenv("PLISIO_ADDITIONAL_HEADERS", "X-Shop:coffee,X-Env:test")
	t.Setenv("PAYSHEET_POLL_INTERVAL", "3s")
	t.Setenv("MEMO_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("STEP_SINKS", "kafka,opensearch")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("OPENSEARCH_URLS", "http://os:9200")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"X-Shop": "coffee", "X-Env": "test"}, cfg.PlisioAdditionalHeaders)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.HasSink(SinkKafka))
	assert.True(t, cfg.HasSink(SinkOpensearch))
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{PlisioBaseURL: "http://plisio", PollInterval: time.Second, PlisioRetryAttempts: 1, MemoBackend: MemoMemory}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "postgres without url", mutate: func(c *Config) { c.MemoBackend = MemoPostgres }, wantErr: "PG_URL"},
		{name: "redis without addr", mutate: func(c *Config) { c.MemoBackend = MemoRedis }, wantErr: "REDIS_ADDR"},
		{name: "unknown backend", mutate: func(c *Config) { c.MemoBackend = "etcd" }, wantErr: "unknown MEMO_BACKEND"},
		{name: "kafka sink without brokers", mutate: func(c *Config) { c.StepSinks = []string{SinkKafka} }, wantErr: "KAFKA_BROKERS"},
		{name: "unknown sink", mutate: func(c *Config) { c.StepSinks = []string{"stdout"} }, wantErr: "unknown step sink"},
		{name: "zero poll interval", mutate: func(c *Config) { c.PollInterval = 0 }, wantErr: "PAYSHEET_POLL_INTERVAL"},
		{name: "no attempts", mutate: func(c *Config) { c.PlisioRetryAttempts = 0 }, wantErr: "PLISIO_RETRY_ATTEMPTS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
