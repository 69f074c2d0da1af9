package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/dayplan/internal/db"
)

// FailingUoW runs the real SQLite transaction but makes the FailOn-th write
// (1-based) return Err, so a document save can be broken between its task
// rows. Reads are never counted.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingWrites{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type failingWrites struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.writes++
	if f.writes == f.failOn {
		return nil, fmt.Errorf("write %d: %w", f.writes, f.err)
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
