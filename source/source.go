package source

import (
	"context"
	"database/sql"
)

// SourceDB defines the interface for reading the legacy tables
type SourceDB interface {
	// Connect establishes a connection to the source database
	Connect(ctx context.Context, connStr string) error

	// Close closes the database connection
	Close() error

	// Ping verifies the connection to the database
	Ping(ctx context.Context) error

	// QueryRows executes a query and returns rows for a table
	QueryRows(ctx context.Context, tableName string, columns []string) (*sql.Rows, error)

	// ConvertValue converts driver-specific values into plain Go values
	// (nil, string, int64, float64, bool or time.Time)
	ConvertValue(value any, dataType string) any
}
