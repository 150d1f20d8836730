package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNestedTx is returned when WithinTx is called from inside another
// WithinTx callback. The pool holds one connection, so a nested BeginTx
// would wait forever for the outer transaction to release it.
var ErrNestedTx = errors.New("nested transaction")

type txKey struct{}

// UnitOfWork manages transactional boundaries. The callback receives a DBTX
// backed by a *sql.Tx; callers build tx-scoped repositories from it.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork implements UnitOfWork using database/sql transactions.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

// InTx reports whether ctx belongs to a WithinTx callback.
func InTx(ctx context.Context) bool {
	return ctx.Value(txKey{}) != nil
}

// MarkTx returns a context that InTx recognises. Alternative UnitOfWork
// implementations use it to keep nesting detection working.
func MarkTx(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, true)
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	if InTx(ctx) {
		return ErrNestedTx
	}

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(MarkTx(ctx), tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rolling back after %w: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
