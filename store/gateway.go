package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrConnectivity marks failures to reach the database at all.
var ErrConnectivity = errors.New("database unreachable")

// Querier runs parameterized statements. Both the Gateway and the
// transaction handed to a unit of work implement it.
type Querier interface {
	Exec(ctx context.Context, stmt string, args ...any) (int64, error)
	Query(ctx context.Context, stmt string, args ...any) (*RowSet, error)
	Dialect() Dialect
}

// UnitOfWork is a sequence of statements run inside one transaction.
type UnitOfWork func(ctx context.Context, q Querier) error

type sqlRunner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type runner struct {
	r       sqlRunner
	dialect Dialect
	log     logrus.FieldLogger
}

func (r *runner) Dialect() Dialect {
	return r.dialect
}

// Exec runs a statement and returns the number of affected rows.
func (r *runner) Exec(ctx context.Context, stmt string, args ...any) (int64, error) {
	res, err := r.r.ExecContext(ctx, stmt, args...)
	if err != nil {
		r.log.WithError(err).WithField("statement", compact(stmt)).Error("Error executing statement")
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

// Query runs a statement and buffers every returned row.
func (r *runner) Query(ctx context.Context, stmt string, args ...any) (*RowSet, error) {
	rows, err := r.r.QueryContext(ctx, stmt, args...)
	if err != nil {
		r.log.WithError(err).WithField("statement", compact(stmt)).Error("Error executing query")
		return nil, err
	}
	defer rows.Close()

	rs, err := collect(rows)
	if err != nil {
		r.log.WithError(err).WithField("statement", compact(stmt)).Error("Error reading rows")
		return nil, err
	}
	return rs, nil
}

// Gateway is the single entry point to the destination database.
type Gateway struct {
	runner
	db *sql.DB
}

// New wraps an open pool.
func New(db *sql.DB, dialect Dialect, log logrus.FieldLogger) *Gateway {
	return &Gateway{
		runner: runner{r: db, dialect: dialect, log: log},
		db:     db,
	}
}

// DB exposes the underlying pool, e.g. to read legacy tables that live in
// the destination database.
func (g *Gateway) DB() *sql.DB {
	return g.db
}

// Ping verifies the connection to the database.
func (g *Gateway) Ping(ctx context.Context) error {
	if err := g.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrConnectivity, err)
	}
	return nil
}

// Close closes the pool.
func (g *Gateway) Close() error {
	return g.db.Close()
}

// WithTransaction runs fn on one connection inside a transaction. The
// transaction commits when fn returns nil and rolls back when fn returns an
// error or panics; the connection goes back to the pool either way.
func (g *Gateway) WithTransaction(ctx context.Context, fn UnitOfWork) (err error) {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", ErrConnectivity, err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				g.log.WithError(rbErr).Error("Rollback after panic failed")
			}
			panic(p)
		}
	}()

	if err := fn(ctx, &runner{r: tx, dialect: g.dialect, log: g.log}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			g.log.WithError(rbErr).Error("Rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// compact folds a multi-line statement into one line for logging.
func compact(stmt string) string {
	return strings.Join(strings.Fields(stmt), " ")
}
