package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgres(t *testing.T) (*Postgres, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return &Postgres{
		Pool:    mock,
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, mock
}

func TestInTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		pg, mock := newMockPostgres(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM remembered_invoices").WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		err := pg.InTransaction(ctx, func(tx Executor) error {
			_, err := tx.Exec(ctx, "DELETE FROM remembered_invoices")
			return err
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		pg, mock := newMockPostgres(t)
		mock.ExpectBegin()
		mock.ExpectRollback()
		boom := errors.New("boom")

		err := pg.InTransaction(ctx, func(Executor) error { return boom })

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		pg, mock := newMockPostgres(t)
		mock.ExpectBegin().WillReturnError(errors.New("no connection"))

		err := pg.InTransaction(ctx, func(Executor) error { return nil })

		require.Error(t, err)
		assert.Contains(t, err.Error(), "begin transaction")
	})
}

func TestPing(t *testing.T) {
	pg, mock := newMockPostgres(t)
	mock.ExpectPing()

	require.NoError(t, pg.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New("://not-a-url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse postgres config")
}
