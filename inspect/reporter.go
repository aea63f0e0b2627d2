// Package inspect prints destination rows and legacy data problems for
// operators checking a batch by eye.
package inspect

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"

	"github.com/imtaco/gymmigrate/mapper"
	"github.com/imtaco/gymmigrate/source"
	"github.com/imtaco/gymmigrate/store"
)

// DefaultLimit caps Dump when no positive limit is given.
const DefaultLimit = 20

// Reporter renders read-only views of the destination database.
type Reporter struct {
	q   store.Querier
	nm  mapper.NameMapper
	out io.Writer
	log logrus.FieldLogger
}

// NewReporter creates a reporter writing tables to out.
func NewReporter(q store.Querier, nm mapper.NameMapper, out io.Writer, log logrus.FieldLogger) *Reporter {
	if nm == nil {
		nm = mapper.NewDestinationNameMapper()
	}
	return &Reporter{q: q, nm: nm, out: out, log: log}
}

// Dump prints up to limit rows of a destination table. table may be the
// logical or the physical name. Failures are logged, never returned.
func (r *Reporter) Dump(ctx context.Context, table string, limit int) {
	physical := r.nm.MapTableName(table)
	log := r.log.WithField("table", physical)
	if !slices.Contains(mapper.PhysicalTables(r.nm), physical) {
		log.Warn("Not a destination table, skipping inspection")
		return
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	stmt := fmt.Sprintf("SELECT * FROM %s LIMIT %d", r.q.Dialect().Quote(physical), limit)
	rs, err := r.q.Query(ctx, stmt)
	if err != nil {
		log.WithError(err).Error("Failed to inspect table")
		return
	}
	if rs.Empty() {
		fmt.Fprintf(r.out, "Table %s is empty.\n", physical)
		return
	}

	fmt.Fprintf(r.out, "Table %s (first %d rows):\n", physical, rs.Len())
	tw := tablewriter.NewWriter(r.out)
	tw.SetHeader(rs.Columns)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	for _, row := range rs.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			if s := store.AsString(v); s != nil {
				cells[i] = *s
			} else {
				cells[i] = "NULL"
			}
		}
		tw.Append(cells)
	}
	tw.Render()
}

// UnmatchedSales returns the distinct sales-person first names of the
// legacy member and imported_leads tables that match no admin, sorted.
// Those rows migrate without created_by.
func (r *Reporter) UnmatchedSales(ctx context.Context, src source.SourceDB) ([]string, error) {
	admins := mapper.NewLookupTable[int64]()
	stmt := fmt.Sprintf("SELECT %s AS id, %s AS first_name FROM %s",
		r.column(mapper.TableAdmins, "id"), r.column(mapper.TableAdmins, "first_name"),
		r.q.Dialect().Quote(r.nm.MapTableName(mapper.TableAdmins)))
	rs, err := r.q.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to load admins: %w", err)
	}
	for i := 0; i < rs.Len(); i++ {
		rec := rs.Record(i)
		if id, name := rec.Int("id"), rec.Text("first_name"); id != nil && name != nil {
			admins.Add(*name, *id)
		}
	}

	members, err := source.ReadMembers(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy members: %w", err)
	}
	leads, err := source.ReadImportedLeads(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy imported leads: %w", err)
	}

	values := make([]*string, 0, len(members)+len(leads))
	for _, m := range members {
		values = append(values, m.Sales)
	}
	for _, l := range leads {
		values = append(values, l.SalesPerson)
	}
	unmatched := mapper.UnmatchedSalesPeople(values, admins)
	r.log.WithFields(logrus.Fields{"admins": admins.Len(), "unmatched": len(unmatched)}).Info("Checked legacy sales people")
	return unmatched, nil
}

// PrintNames writes one name per line, or a note when there are none.
func (r *Reporter) PrintNames(names []string) {
	if len(names) == 0 {
		fmt.Fprintln(r.out, "Every sales person matches an admin.")
		return
	}
	for _, n := range names {
		fmt.Fprintln(r.out, n)
	}
}

func (r *Reporter) column(table, col string) string {
	return r.q.Dialect().Quote(r.nm.MapColumnName(table, col))
}
