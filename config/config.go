package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	MemoMemory   = "memory"
	MemoPostgres = "postgres"
	MemoRedis    = "redis"

	SinkKafka      = "kafka"
	SinkOpensearch = "opensearch"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"3000"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	// Logs request and response bodies of the REST host.
	LogHTTPBodies bool `env:"LOG_HTTP_BODIES" envDefault:"false"`

	PlisioBaseURL           string            `env:"PLISIO_BASE_URL" envDefault:"https://api.plisio.net/api/v1"`
	PlisioAdditionalHeaders map[string]string `env:"PLISIO_ADDITIONAL_HEADERS"`
	PlisioEnableLogging     bool              `env:"PLISIO_ENABLE_LOGGING" envDefault:"false"`
	PlisioShowErrorDetails  bool              `env:"PLISIO_SHOW_ERROR_DETAILS" envDefault:"false"`
	PlisioAPIKey            string            `env:"PLISIO_API_KEY"`
	HTTPPlisioClientTimeout time.Duration     `env:"HTTP_PLISIO_CLIENT_TIMEOUT" envDefault:"20s"`
	PlisioRetryAttempts     int               `env:"PLISIO_RETRY_ATTEMPTS" envDefault:"1"`
	PlisioRetryBaseDelay    time.Duration     `env:"PLISIO_RETRY_BASE_DELAY" envDefault:"200ms"`
	PlisioRetryMaxDelay     time.Duration     `env:"PLISIO_RETRY_MAX_DELAY" envDefault:"2s"`

	PollInterval   time.Duration `env:"PAYSHEET_POLL_INTERVAL" envDefault:"10s"`
	SessionIdleTTL time.Duration `env:"PAYSHEET_SESSION_IDLE_TTL" envDefault:"30m"`

	// Remembered-invoice store: "memory", "postgres" or "redis"
	MemoBackend string `env:"MEMO_BACKEND" envDefault:"memory"`

	PgURL     string `env:"PG_URL"`
	PgPoolMax int    `env:"PG_POOL_MAX" envDefault:"10"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Step event sinks, any of "kafka", "opensearch"
	StepSinks []string `env:"STEP_SINKS" envSeparator:","`

	KafkaBrokers    []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaStepsTopic string   `env:"KAFKA_STEPS_TOPIC" envDefault:"paysheet.steps"`

	OpensearchUrls       []string `env:"OPENSEARCH_URLS" envSeparator:","`
	OpensearchIndexSteps string   `env:"OPENSEARCH_INDEX_STEPS" envDefault:"paysheet-steps"`
}

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c Config) HasSink(name string) bool {
	return slices.Contains(c.StepSinks, name)
}

// Validate checks that every enabled backend has the settings it needs.
func (c Config) Validate() error {
	var errs []error

	if c.PlisioBaseURL == "" {
		errs = append(errs, errors.New("PLISIO_BASE_URL is required"))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, errors.New("PAYSHEET_POLL_INTERVAL must be positive"))
	}
	if c.PlisioRetryAttempts < 1 {
		errs = append(errs, errors.New("PLISIO_RETRY_ATTEMPTS must be at least 1"))
	}

	switch c.MemoBackend {
	case MemoMemory:
	case MemoPostgres:
		if c.PgURL == "" {
			errs = append(errs, errors.New("PG_URL is required for postgres memo backend"))
		}
	case MemoRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for redis memo backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MEMO_BACKEND %q", c.MemoBackend))
	}

	for _, sink := range c.StepSinks {
		switch sink {
		case SinkKafka:
			if len(c.KafkaBrokers) == 0 {
				errs = append(errs, errors.New("KAFKA_BROKERS is required for kafka step sink"))
			}
		case SinkOpensearch:
			if len(c.OpensearchUrls) == 0 {
				errs = append(errs, errors.New("OPENSEARCH_URLS is required for opensearch step sink"))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown step sink %q", sink))
		}
	}

	return errors.Join(errs...)
}
