package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RowSet is a fully buffered query result.
type RowSet struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows.
func (rs *RowSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

// Empty reports whether the result holds no rows.
func (rs *RowSet) Empty() bool {
	return rs.Len() == 0
}

// Record returns row i keyed by column name.
func (rs *RowSet) Record(i int) Record {
	rec := make(Record, len(rs.Columns))
	for j, col := range rs.Columns {
		rec[col] = rs.Rows[i][j]
	}
	return rec
}

func collect(rows *sql.Rows) (*RowSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	rs := &RowSet{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			// Text columns arrive as []byte from the MySQL driver.
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		rs.Rows = append(rs.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return rs, nil
}

// Record is a row keyed by column name.
type Record map[string]any

// Text returns the column as a string pointer, nil for NULL.
func (r Record) Text(col string) *string {
	return AsString(r[col])
}

// Int returns the column as an integer pointer, nil for NULL or non-numeric
// values.
func (r Record) Int(col string) *int64 {
	return AsInt64(r[col])
}

// AsString converts a driver value to a string pointer.
func AsString(v any) *string {
	var s string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s = t
	case []byte:
		s = string(t)
	case time.Time:
		s = t.Format(time.RFC3339)
	default:
		s = fmt.Sprint(t)
	}
	return &s
}

// AsInt64 converts a driver value to an integer pointer.
func AsInt64(v any) *int64 {
	var n int64
	switch t := v.(type) {
	case nil:
		return nil
	case int64:
		n = t
	case int32:
		n = int64(t)
	case int:
		n = int64(t)
	case uint64:
		n = int64(t)
	case float64:
		n = int64(t)
	case bool:
		if t {
			n = 1
		}
	case []byte:
		return AsInt64(string(t))
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(strings.TrimSpace(t), 64)
			if ferr != nil {
				return nil
			}
			parsed = int64(f)
		}
		n = parsed
	default:
		return nil
	}
	return &n
}

// AsDate converts a DATE-like driver value into YYYY-MM-DD.
func AsDate(v any) *string {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		if t.IsZero() {
			return nil
		}
		s := t.Format(time.DateOnly)
		return &s
	default:
		s := AsString(v)
		if s == nil || strings.TrimSpace(*s) == "" {
			return nil
		}
		// "1990-05-01 00:00:00" and RFC 3339 values keep only the date part.
		if len(*s) > len(time.DateOnly) {
			if _, err := time.Parse(time.DateOnly, (*s)[:len(time.DateOnly)]); err == nil {
				d := (*s)[:len(time.DateOnly)]
				return &d
			}
		}
		return s
	}
}
