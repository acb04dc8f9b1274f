package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/roach88/atlas/internal/querysql"
)

var compiler = querysql.NewSQLCompiler()

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

// selectAll runs sel and scans every row into a T.
func selectAll[T any](ctx context.Context, q queryer, sel querysql.Select) ([]T, error) {
	query, args, err := compiler.CompileSelect(sel)
	if err != nil {
		return nil, err
	}

	var rows []T
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

// selectOne runs sel and scans the first row into a T.
// Returns ErrNotFound when the result set is empty.
func selectOne[T any](ctx context.Context, q queryer, sel querysql.Select) (T, error) {
	var row T

	query, args, err := compiler.CompileSelect(sel)
	if err != nil {
		return row, err
	}

	err = sqlx.GetContext(ctx, q, &row, query+" LIMIT 1", args...)
	if errors.Is(err, sql.ErrNoRows) {
		return row, ErrNotFound
	}
	return row, err
}

// execUpdate compiles and runs u, returning ErrNotFound when no row changed.
func execUpdate(ctx context.Context, q queryer, u querysql.Update) error {
	query, args, err := compiler.CompileUpdate(u)
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// withTx runs fn inside a transaction and commits when fn succeeds.
// Driver failures are wrapped in StoreError; ErrNotFound and validation
// errors returned by fn pass through untouched.
func withTx(ctx context.Context, db *sqlx.DB, op string, fn func(tx *sqlx.Tx) error) error {
	if db == nil {
		return storeError(op, errClosed)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return storeError(op, fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback() // No-op if committed

	if err := fn(tx); err != nil {
		return classify(op, err)
	}

	if err := tx.Commit(); err != nil {
		return storeError(op, fmt.Errorf("commit: %w", err))
	}
	return nil
}

// classify wraps driver errors and leaves domain errors alone.
func classify(op string, err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoResults) {
		return err
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	if isValidation(err) {
		return err
	}
	return storeError(op, err)
}

// optional maps an inserted pointer to its column value: nil becomes NULL
// and any other value, "" included, is stored as given.
func optional(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// nullable maps an edit pointer to its column value: "" becomes NULL.
func nullable(p *string) any {
	if p == nil || *p == "" {
		return nil
	}
	return *p
}

// keyFilter locates a row by its natural key, guarded by id when known.
func keyFilter(keyColumn, key, idColumn string, id int64) querysql.Predicate {
	and := querysql.And{Predicates: []querysql.Predicate{
		querysql.Equals{Field: keyColumn, Value: key},
	}}
	if id != 0 {
		and.Predicates = append(and.Predicates, querysql.Equals{Field: idColumn, Value: id})
	}
	return and
}

// byID locates a row by primary key.
func byID(idColumn string, id int64) querysql.Predicate {
	return querysql.Equals{Field: idColumn, Value: id}
}
