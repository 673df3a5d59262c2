//go:build integration
// +build integration

package testinfra

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type TestSuite struct {
	Postgres *PostgresContainer
	Redis    *RedisContainer
	Kafka    *KafkaContainer
	Wiremock *WiremockContainer
}

type SuiteOptions struct {
	WithPostgres bool
	WithRedis    bool
	WithKafka    bool
	WithWiremock bool
	MappingsPath string // for Wiremock
}

// NewTestSuite starts the requested containers in parallel.
func NewTestSuite(ctx context.Context, opts SuiteOptions) (*TestSuite, error) {
	suite := &TestSuite{}
	var wg sync.WaitGroup
	errCh := make(chan error, 4)

	start := func(enabled bool, name string, run func() error) {
		if !enabled {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(); err != nil {
				errCh <- fmt.Errorf("%s: %w", name, err)
			}
		}()
	}

	start(opts.WithPostgres, "postgres", func() (err error) {
		suite.Postgres, err = NewPostgres(ctx)
		return err
	})
	start(opts.WithRedis, "redis", func() (err error) {
		suite.Redis, err = NewRedis(ctx)
		return err
	})
	start(opts.WithKafka, "kafka", func() (err error) {
		suite.Kafka, err = NewKafka(ctx)
		return err
	})
	start(opts.WithWiremock, "wiremock", func() (err error) {
		suite.Wiremock, err = NewWiremock(ctx, opts.MappingsPath)
		return err
	})

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		suite.Cleanup(ctx) // cleanup partially started containers
		return nil, fmt.Errorf("failed to start containers: %w", errors.Join(errs...))
	}

	return suite, nil
}

func (s *TestSuite) Cleanup(ctx context.Context) {
	if s.Wiremock != nil {
		s.Wiremock.Cleanup(ctx)
	}
	if s.Kafka != nil {
		s.Kafka.Cleanup(ctx)
	}
	if s.Redis != nil {
		s.Redis.Cleanup(ctx)
	}
	if s.Postgres != nil {
		s.Postgres.Cleanup(ctx)
	}
}
