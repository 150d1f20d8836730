package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/kanri/internal/db"
)

// FailingExecUoW runs transactions normally but fails the first
// ExecContext whose SQL contains Match. Tests use it to check that a board
// mutation and its revision row commit or roll back together.
type FailingExecUoW struct {
	DB    *sql.DB
	Match string
	Err   error
}

func (u *FailingExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	if db.InTx(ctx) {
		return db.ErrNestedTx
	}
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failingExec{DBTX: tx, match: u.Match, err: u.Err}
	if fnErr := fn(db.MarkTx(ctx), wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingExec struct {
	db.DBTX
	match string
	err   error
	fired bool
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if !f.fired && strings.Contains(query, f.match) {
		f.fired = true
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
