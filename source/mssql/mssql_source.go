package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	mssql "github.com/denisenkom/go-mssqldb"
)

// MSSQLSource implements the SourceDB interface for legacy exports kept on
// Microsoft SQL Server
type MSSQLSource struct {
	db *sql.DB
}

// New creates a new MSSQL source database instance
func New() *MSSQLSource {
	return &MSSQLSource{}
}

// Connect establishes a connection to the MSSQL database
func (m *MSSQLSource) Connect(ctx context.Context, connStr string) error {
	db, err := sql.Open("sqlserver", connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to MSSQL: %w", err)
	}
	m.db = db
	return nil
}

// Close closes the database connection
func (m *MSSQLSource) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// Ping verifies the connection to the database
func (m *MSSQLSource) Ping(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("database not connected")
	}
	return m.db.PingContext(ctx)
}

// QueryRows executes a query and returns rows for a table
func (m *MSSQLSource) QueryRows(ctx context.Context, tableName string, columns []string) (*sql.Rows, error) {
	if m.db == nil {
		return nil, fmt.Errorf("database not connected")
	}
	quotedColumns := make([]string, len(columns))
	for i, col := range columns {
		quotedColumns[i] = fmt.Sprintf("[%s]", strings.ReplaceAll(col, "]", "]]"))
	}
	columnsStr := strings.Join(quotedColumns, ", ")

	query := fmt.Sprintf("SELECT %s FROM [%s] WITH (NOLOCK)", columnsStr, strings.ReplaceAll(tableName, "]", "]]"))
	return m.db.QueryContext(ctx, query)
}

// ConvertValue converts MSSQL values into plain Go values
func (m *MSSQLSource) ConvertValue(value any, dataType string) any {
	if value == nil {
		return nil
	}

	dataTypeUpper := strings.ToUpper(dataType)

	switch v := value.(type) {
	case bool:
		// BIT flags such as isActive are compared numerically downstream
		if v {
			return int64(1)
		}
		return int64(0)
	case mssql.UniqueIdentifier:
		return strings.ToLower(v.String())
	case []byte:
		if strings.Contains(dataTypeUpper, "UNIQUEIDENTIFIER") && len(v) == 16 {
			var uid mssql.UniqueIdentifier
			if err := uid.Scan(v); err == nil {
				return strings.ToLower(uid.String())
			}
		}
		// DECIMAL, NUMERIC and MONEY arrive as ASCII-encoded numeric text
		return string(v)
	case time.Time:
		return v
	case string:
		if strings.Contains(dataTypeUpper, "UNIQUEIDENTIFIER") {
			return strings.ToLower(v)
		}
		return v
	default:
		return v
	}
}
