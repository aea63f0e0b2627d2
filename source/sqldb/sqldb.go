package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/imtaco/gymmigrate/store"
)

// Source reads legacy tables through database/sql. It serves MySQL,
// PostgreSQL and SQLite, and can share the destination pool when the
// legacy tables live next to the destination tables.
type Source struct {
	db       *sql.DB
	dialect  store.Dialect
	attached bool
}

// New creates a source that opens its own pool on Connect.
func New(dialect store.Dialect) *Source {
	return &Source{dialect: dialect}
}

// Attach reads from an already open pool, typically the destination
// database. Close leaves the pool open.
func Attach(db *sql.DB, dialect store.Dialect) *Source {
	return &Source{db: db, dialect: dialect, attached: true}
}

// Connect establishes a connection to the source database
func (s *Source) Connect(ctx context.Context, connStr string) error {
	if s.attached {
		return nil
	}
	db, err := sql.Open(s.dialect.DriverName(), connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", s.dialect, err)
	}
	s.db = db
	return nil
}

// Close closes the database connection unless it is borrowed
func (s *Source) Close() error {
	if s.db != nil && !s.attached {
		return s.db.Close()
	}
	return nil
}

// Ping verifies the connection to the database
func (s *Source) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not connected")
	}
	return s.db.PingContext(ctx)
}

// QueryRows executes a query and returns rows for a table
func (s *Source) QueryRows(ctx context.Context, tableName string, columns []string) (*sql.Rows, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not connected")
	}
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = s.dialect.Quote(col)
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), s.dialect.Quote(tableName))
	return s.db.QueryContext(ctx, query)
}

// ConvertValue converts driver values into plain Go values
func (s *Source) ConvertValue(value any, dataType string) any {
	// MySQL returns text, DECIMAL and (without parseTime) DATE columns as bytes.
	if b, ok := value.([]byte); ok {
		return string(b)
	}
	return value
}
