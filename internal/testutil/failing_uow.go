package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/epcrisk/internal/db"
)

// FaultyUoW runs the callback in a real transaction but returns Err from a
// chosen write. With Match set, the first ExecContext whose SQL contains
// Match fails. Otherwise the FailOn'th write fails, counting from 1.
// Reads are never intercepted.
type FaultyUoW struct {
	DB     *sql.DB
	FailOn int
	Match  string
	Err    error

	// Writes lists the statements attempted in the last transaction.
	Writes []string
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin faulty tx: %w", err)
	}

	u.Writes = u.Writes[:0]
	if err := fn(ctx, &faultyTx{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type faultyTx struct {
	db.DBTX
	uow *FaultyUoW
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	u := f.uow
	u.Writes = append(u.Writes, query)
	hit := len(u.Writes) == u.FailOn
	if u.Match != "" {
		hit = strings.Contains(query, u.Match)
	}
	if hit {
		return nil, u.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
