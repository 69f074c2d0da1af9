package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertDocument = `INSERT INTO documents (id, name, date, day_length, updated_at)
	VALUES (?, ?, '2025-03-15', 420, '2025-03-15T08:00:00Z')`

var errDeliberate = errors.New("deliberate failure")

func newUoW(t *testing.T) (*db.SQLiteUnitOfWork, *sql.DB) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database), database
}

func documentExists(t *testing.T, database *sql.DB, id string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM documents WHERE id = ?`, id).Scan(&n))
	return n == 1
}

func TestWithinTx(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(ctx context.Context, tx db.DBTX) error
		wantErr error
		kept    bool
	}{
		{
			name: "commits when fn succeeds",
			fn: func(ctx context.Context, tx db.DBTX) error {
				_, err := tx.ExecContext(ctx, insertDocument, "doc", "work.json")
				return err
			},
			kept: true,
		},
		{
			name: "rolls back when fn fails",
			fn: func(ctx context.Context, tx db.DBTX) error {
				if _, err := tx.ExecContext(ctx, insertDocument, "doc", "work.json"); err != nil {
					return err
				}
				return errDeliberate
			},
			wantErr: errDeliberate,
		},
		{
			name: "rolls back a statement that broke a constraint",
			fn: func(ctx context.Context, tx db.DBTX) error {
				if _, err := tx.ExecContext(ctx, insertDocument, "doc", "work.json"); err != nil {
					return err
				}
				_, err := tx.ExecContext(ctx, insertDocument, "other", "work.json")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow, database := newUoW(t)

			err := uow.WithinTx(context.Background(), tt.fn)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.kept:
				require.NoError(t, err)
			default:
				require.Error(t, err)
			}
			assert.Equal(t, tt.kept, documentExists(t, database, "doc"))
		})
	}
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	uow, database := newUoW(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_, _ = tx.ExecContext(ctx, insertDocument, "doc", "work.json")
			panic("boom")
		})
	})

	assert.False(t, documentExists(t, database, "doc"))
}

func TestWithinTx_FnMayEndTransactionItself(t *testing.T) {
	uow, database := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, insertDocument, "doc", "work.json")
		require.NoError(t, err)
		require.NoError(t, tx.(*sql.Tx).Rollback())
		return errDeliberate
	})

	assert.ErrorIs(t, err, errDeliberate)
	assert.NotContains(t, err.Error(), "rolling back")
	assert.False(t, documentExists(t, database, "doc"))
}
