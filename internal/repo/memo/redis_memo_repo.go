package memo_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"PlisioPay/internal/domain/invoice"
	"PlisioPay/internal/domain/payment"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "paysheet:memo:"

// RedisMemoRepo stores each remembered invoice under a key that expires with the invoice.
type RedisMemoRepo struct {
	client redis.UniversalClient
	now    func() time.Time
}

var _ payment.InvoiceMemo = (*RedisMemoRepo)(nil)

func NewRedisMemoRepo(client redis.UniversalClient) *RedisMemoRepo {
	return &RedisMemoRepo{client: client, now: time.Now}
}

func redisKey(key string) string {
	return redisKeyPrefix + strings.TrimSpace(key)
}

func (r *RedisMemoRepo) Recall(ctx context.Context, key string) (invoice.Remembered, bool, error) {
	raw, err := r.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return invoice.Remembered{}, false, nil
	}
	if err != nil {
		return invoice.Remembered{}, false, fmt.Errorf("recall invoice: %w", err)
	}

	var rem invoice.Remembered
	if err := json.Unmarshal(raw, &rem); err != nil {
		return invoice.Remembered{}, false, fmt.Errorf("decode remembered invoice: %w", err)
	}
	if !rem.IsValidAt(r.now()) {
		return invoice.Remembered{}, false, nil
	}
	return rem, true, nil
}

func (r *RedisMemoRepo) Remember(ctx context.Context, rem invoice.Remembered) error {
	rem.Key = strings.TrimSpace(rem.Key)
	if rem.Key == "" {
		return ErrEmptyKey
	}

	ttl := rem.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}

	raw, err := json.Marshal(rem)
	if err != nil {
		return fmt.Errorf("encode remembered invoice: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(rem.Key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("remember invoice: %w", err)
	}
	return nil
}

func (r *RedisMemoRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisMemoRepo) Close() error {
	return r.client.Close()
}
