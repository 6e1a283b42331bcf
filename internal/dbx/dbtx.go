// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx,
// a helper to run functions inside a transaction, and an after-commit
// hook mechanism for work that must not start before the enclosing
// unit of work is durable (e.g. dispatching translation jobs).
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type hooksKey struct{}

type commitHooks struct {
	fns []func(context.Context)
}

// RunAfterCommit defers fn until the transaction started by WithTx commits.
// Outside of WithTx there is no pending transaction, so fn runs immediately.
// Hooks registered in a transaction that rolls back are discarded.
func RunAfterCommit(ctx context.Context, fn func(context.Context)) {
	if h, ok := ctx.Value(hooksKey{}).(*commitHooks); ok {
		h.fns = append(h.fns, fn)
		return
	}
	fn(ctx)
}

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
// After a successful commit, hooks registered via RunAfterCommit during fn
// are executed in registration order.
//
// Typical use:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    // use tx instead of db
//	    _, err := tx.ExecContext(ctx, "UPDATE ...")
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	hooks := &commitHooks{}
	hctx := context.WithValue(ctx, hooksKey{}, hooks)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
		if err != nil {
			return
		}
		// Hooks run with the caller's context: the transaction is gone
		// and nested RunAfterCommit calls must execute immediately.
		for _, fn := range hooks.fns {
			fn(ctx)
		}
	}()

	err = fn(hctx, tx)
	return err
}
