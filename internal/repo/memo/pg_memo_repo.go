package memo_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"PlisioPay/internal/domain/invoice"
	"PlisioPay/internal/domain/payment"
	"PlisioPay/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

const rememberedTable = "remembered_invoices"

type PgMemoRepo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
	now     func() time.Time
}

var _ payment.InvoiceMemo = (*PgMemoRepo)(nil)

func NewPgMemoRepo(pg *postgres.Postgres) *PgMemoRepo {
	return &PgMemoRepo{db: pg.Pool, builder: pg.Builder, now: time.Now}
}

// Recall returns the remembered invoice for key unless it has expired.
func (r *PgMemoRepo) Recall(ctx context.Context, key string) (invoice.Remembered, bool, error) {
	query, args, err := r.builder.Select("memo_key", "invoice_id", "view_key", "expires_at").
		From(rememberedTable).
		Where(squirrel.Eq{"memo_key": strings.TrimSpace(key)}).
		Where(squirrel.GtOrEq{"expires_at": r.now().UTC()}).
		ToSql()
	if err != nil {
		return invoice.Remembered{}, false, fmt.Errorf("build recall query: %w", err)
	}

	var memoKey, invoiceID, viewKey string
	var expiresAt time.Time
	err = r.db.QueryRow(ctx, query, args...).Scan(&memoKey, &invoiceID, &viewKey, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return invoice.Remembered{}, false, nil
	}
	if err != nil {
		return invoice.Remembered{}, false, fmt.Errorf("recall invoice: %w", err)
	}
	return invoice.Remembered{
		Key:       memoKey,
		ID:        invoice.ID(invoiceID),
		ViewKey:   invoice.ViewKey(viewKey),
		ExpiresAt: expiresAt,
	}, true, nil
}

// Remember inserts or replaces the invoice remembered for rem.Key.
func (r *PgMemoRepo) Remember(ctx context.Context, rem invoice.Remembered) error {
	key := strings.TrimSpace(rem.Key)
	if key == "" {
		return ErrEmptyKey
	}

	query, args, err := r.builder.Insert(rememberedTable).
		Columns("memo_key", "invoice_id", "view_key", "expires_at").
		Values(key, rem.ID.String(), rem.ViewKey.String(), rem.ExpiresAt.UTC()).
		Suffix("ON CONFLICT (memo_key) DO UPDATE SET invoice_id = EXCLUDED.invoice_id, view_key = EXCLUDED.view_key, expires_at = EXCLUDED.expires_at, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build remember query: %w", err)
	}

	if _, err = r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("remember invoice: %w", err)
	}
	return nil
}

// Purge deletes expired rows.
func (r *PgMemoRepo) Purge(ctx context.Context) (int64, error) {
	query, args, err := r.builder.Delete(rememberedTable).
		Where(squirrel.Lt{"expires_at": r.now().UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build purge query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge invoices: %w", err)
	}
	return tag.RowsAffected(), nil
}
