package store

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Dialect captures the SQL syntax differences between the engines the
// migration talks to.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
	MSSQL    Dialect = "mssql"
)

// ParseDialect maps a configured driver name to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mysql", "mariadb":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	case "mssql", "sqlserver":
		return MSSQL, nil
	default:
		return "", fmt.Errorf("unsupported database type: %q", name)
	}
}

// DriverName returns the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	switch d {
	case MSSQL:
		return "sqlserver"
	default:
		return string(d)
	}
}

// Placeholder returns the bind marker for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	switch d {
	case Postgres:
		return fmt.Sprintf("$%d", n)
	case MSSQL:
		return fmt.Sprintf("@p%d", n)
	default:
		return "?"
	}
}

// Quote quotes an identifier such as a table or column name.
func (d Dialect) Quote(ident string) string {
	switch d {
	case MySQL:
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	case Postgres:
		return pgx.Identifier{ident}.Sanitize()
	case MSSQL:
		return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
	default:
		return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
	}
}

// NullSafeEqual renders a comparison that treats two NULLs as equal.
func (d Dialect) NullSafeEqual(left, right string) string {
	switch d {
	case MySQL:
		return left + " <=> " + right
	case SQLite:
		return left + " IS " + right
	case Postgres:
		return left + " IS NOT DISTINCT FROM " + right
	default:
		return fmt.Sprintf("(%s = %s OR (%s IS NULL AND %s IS NULL))", left, right, left, right)
	}
}

// FromDual is appended to a table-less SELECT that carries a WHERE clause.
func (d Dialect) FromDual() string {
	if d == MySQL {
		return " FROM DUAL"
	}
	return ""
}
