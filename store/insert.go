package store

import (
	"context"
	"fmt"
	"strings"
)

// Column is one physical column/value pair of a row to write.
type Column struct {
	Name  string
	Value any
}

// InsertIfAbsent inserts one row unless a row matching every guard column
// already exists. The guard is evaluated by the database in the same
// statement, so it also sees rows inserted earlier in the same transaction.
// It returns the number of inserted rows (0 or 1).
func InsertIfAbsent(ctx context.Context, q Querier, table string, row []Column, guard []Column) (int64, error) {
	stmt, args := BuildInsertIfAbsent(q.Dialect(), table, row, guard)
	return q.Exec(ctx, stmt, args...)
}

// BuildInsertIfAbsent renders the statement used by InsertIfAbsent.
func BuildInsertIfAbsent(d Dialect, table string, row []Column, guard []Column) (string, []any) {
	cols := make([]string, 0, len(row))
	marks := make([]string, 0, len(row))
	args := make([]any, 0, len(row)+len(guard))

	for _, c := range row {
		cols = append(cols, d.Quote(c.Name))
		args = append(args, c.Value)
		marks = append(marks, d.Placeholder(len(args)))
	}

	quoted := d.Quote(table)
	stmt := fmt.Sprintf("INSERT INTO %s (%s) SELECT %s", quoted, strings.Join(cols, ", "), strings.Join(marks, ", "))
	if len(guard) == 0 {
		return stmt, args
	}

	conds := make([]string, 0, len(guard))
	for _, g := range guard {
		args = append(args, g.Value)
		conds = append(conds, d.NullSafeEqual(d.Quote(g.Name), d.Placeholder(len(args))))
	}
	stmt += fmt.Sprintf("%s WHERE NOT EXISTS (SELECT 1 FROM %s WHERE %s)",
		d.FromDual(), quoted, strings.Join(conds, " AND "))
	return stmt, args
}
