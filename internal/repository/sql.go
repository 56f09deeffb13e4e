package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/resobingo-backend/internal/repository/storage"
)

// rebind rewrites ? placeholders into the $n form PostgreSQL expects.
func rebind(driver, query string) string {
	if driver != storage.DriverPostgres {
		return query
	}

	var builder strings.Builder
	builder.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			builder.WriteByte('$')
			builder.WriteString(strconv.Itoa(n))
			continue
		}
		builder.WriteRune(r)
	}

	return builder.String()
}

// withTx runs fn inside a transaction, rolling back when it fails.
func withTx(ctx context.Context, conn *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
