// Package memo_repo stores remembered invoices in memory, PostgreSQL or Redis.
package memo_repo

import (
	"context"
	"strings"
	"sync"
	"time"

	"PlisioPay/internal/domain/invoice"
	"PlisioPay/internal/domain/payment"
)

// MemoryMemoRepo keeps remembered invoices for the lifetime of the process.
type MemoryMemoRepo struct {
	mu    sync.RWMutex
	items map[string]invoice.Remembered
	now   func() time.Time
}

var _ payment.InvoiceMemo = (*MemoryMemoRepo)(nil)

func NewMemoryMemoRepo() *MemoryMemoRepo {
	return &MemoryMemoRepo{items: map[string]invoice.Remembered{}, now: time.Now}
}

func (r *MemoryMemoRepo) Recall(_ context.Context, key string) (invoice.Remembered, bool, error) {
	key = strings.TrimSpace(key)

	r.mu.RLock()
	rem, ok := r.items[key]
	r.mu.RUnlock()

	if !ok {
		return invoice.Remembered{}, false, nil
	}
	now := r.now()
	if rem.IsValidAt(now) {
		return rem, true, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// The entry may have been replaced since the read lock was released.
	if cur, ok := r.items[key]; ok {
		if cur.IsValidAt(now) {
			return cur, true, nil
		}
		delete(r.items, key)
	}
	return invoice.Remembered{}, false, nil
}

func (r *MemoryMemoRepo) Remember(_ context.Context, rem invoice.Remembered) error {
	rem.Key = strings.TrimSpace(rem.Key)
	if rem.Key == "" {
		return ErrEmptyKey
	}

	r.mu.Lock()
	r.items[rem.Key] = rem
	r.mu.Unlock()
	return nil
}

// Purge drops expired entries and reports how many were removed.
func (r *MemoryMemoRepo) Purge(_ context.Context) (int64, error) {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for k, rem := range r.items {
		if !rem.IsValidAt(now) {
			delete(r.items, k)
			n++
		}
	}
	return n, nil
}
