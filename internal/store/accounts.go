package store

import (
	"context"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type accountRepo struct {
	drv *entsql.Driver
}

func (r *accountRepo) CreateAccount(ctx context.Context, username, passwordHash string) error {
	query, args := builder().Insert("users").
		Columns("username", "password").
		Values(username, passwordHash).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		if isConstraintErr(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *accountRepo) GetAccount(ctx context.Context, username string) (*Account, error) {
	query, args := builder().Select("username", "password").
		From(entsql.Table("users")).
		Where(entsql.EQ("username", username)).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query account: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query account: %w", err)
		}
		return nil, ErrNotFound
	}

	var a Account
	if err := rows.Scan(&a.Username, &a.PasswordHash); err != nil {
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &a, nil
}

// isConstraintErr reports whether err is a SQLite constraint violation
// (primary key or unique).
func isConstraintErr(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}
