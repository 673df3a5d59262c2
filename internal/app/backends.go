package app

import (
	"context"
	"fmt"
	"log/slog"

	"PlisioPay/config"
	"PlisioPay/internal/app/migrations"
	"PlisioPay/internal/domain/payment"
	"PlisioPay/internal/external/kafka"
	"PlisioPay/internal/external/opensearch"
	"PlisioPay/internal/messaging"
	memo_repo "PlisioPay/internal/repo/memo"
	"PlisioPay/pkg/health"
	"PlisioPay/pkg/postgres"

	"github.com/redis/go-redis/v9"
)

type memoBackend struct {
	store  payment.InvoiceMemo
	purger purger
	close  func()
}

// openMemo builds the remembered-invoice store selected by MEMO_BACKEND.
func openMemo(ctx context.Context, cfg config.Config, registry *health.Registry) (memoBackend, error) {
	switch cfg.MemoBackend {
	case config.MemoPostgres:
		if err := migrations.Apply(cfg.PgURL); err != nil {
			return memoBackend{}, fmt.Errorf("apply migrations: %w", err)
		}
		pool, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
		if err != nil {
			return memoBackend{}, fmt.Errorf("postgres.New: %w", err)
		}
		registry.Add(health.NewPingChecker("postgres", pool))
		repo := memo_repo.NewPgMemoRepo(pool)
		return memoBackend{store: repo, purger: repo, close: pool.Close}, nil

	case config.MemoRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		repo := memo_repo.NewRedisMemoRepo(client)
		if err := repo.Ping(ctx); err != nil {
			_ = repo.Close()
			return memoBackend{}, fmt.Errorf("redis ping: %w", err)
		}
		registry.Add(health.NewPingChecker("redis", repo))
		return memoBackend{store: repo, close: func() { _ = repo.Close() }}, nil

	default:
		repo := memo_repo.NewMemoryMemoRepo()
		return memoBackend{store: repo, purger: repo, close: func() {}}, nil
	}
}

// openSinks builds the step event fan-out from STEP_SINKS. Sinks are
// optional for readiness: a down sink degrades the service.
func openSinks(ctx context.Context, cfg config.Config, registry *health.Registry) (*messaging.Fanout, error) {
	var sinks []messaging.Sink

	if cfg.HasSink(config.SinkKafka) {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaStepsTopic)
		sinks = append(sinks, messaging.Sink{Name: config.SinkKafka, Publisher: publisher})
		registry.AddOptional(health.NewKafkaChecker(cfg.KafkaBrokers, cfg.KafkaStepsTopic))
		slog.Info("Step events go to kafka", "topic", cfg.KafkaStepsTopic)
	}

	if cfg.HasSink(config.SinkOpensearch) {
		sink, err := opensearch.NewStepSink(ctx, cfg.OpensearchUrls, cfg.OpensearchIndexSteps)
		if err != nil {
			_ = messaging.NewFanout(sinks...).Close()
			return nil, fmt.Errorf("opensearch.NewStepSink: %w", err)
		}
		sinks = append(sinks, messaging.Sink{Name: config.SinkOpensearch, Publisher: sink})
		registry.AddOptional(health.NewPingChecker("opensearch", sink))
		slog.Info("Step events go to opensearch", "index", cfg.OpensearchIndexSteps)
	}

	return messaging.NewFanout(sinks...), nil
}
