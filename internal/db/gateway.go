package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrOperationFailed wraps every statement failure returned by the Gateway.
// The driver error stays in the chain for logging and errors.Is checks.
var ErrOperationFailed = errors.New("operation failed")

// Statement is one parameterized SQL template with its positional arguments.
// Templates use ? placeholders and are rebound to the driver's bind style.
type Statement struct {
	Query string
	Args  []interface{}
}

// Gateway executes SQL templates against the database.
type Gateway struct {
	db *sqlx.DB
}

func NewGateway(db *sqlx.DB) *Gateway {
	return &Gateway{db: db}
}

// DB exposes the underlying handle for migrations and health checks.
func (g *Gateway) DB() *sqlx.DB {
	return g.db
}

func (g *Gateway) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	if err := g.db.SelectContext(ctx, dest, g.db.Rebind(query), args...); err != nil {
		return fail("select", err)
	}
	return nil
}

// Get scans a single row into dest. A missing row is reported as an error
// satisfying errors.Is(err, sql.ErrNoRows).
func (g *Gateway) Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	if err := g.db.GetContext(ctx, dest, g.db.Rebind(query), args...); err != nil {
		return fail("get", err)
	}
	return nil
}

func (g *Gateway) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res, err := g.db.ExecContext(ctx, g.db.Rebind(query), args...)
	if err != nil {
		return 0, fail("exec", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fail("rows affected", err)
	}
	return affected, nil
}

// Batch runs all statements inside one transaction. Either every statement is
// applied or none is.
func (g *Gateway) Batch(ctx context.Context, stmts []Statement) error {
	if len(stmts) == 0 {
		return nil
	}
	tx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return fail("begin", err)
	}
	for i, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, tx.Rebind(stmt.Query), stmt.Args...); err != nil {
			_ = tx.Rollback()
			return fail(fmt.Sprintf("batch statement %d", i), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fail("commit", err)
	}
	return nil
}

// IsNotFound reports whether err came from a query that matched no row.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func fail(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrOperationFailed, op, err)
}
