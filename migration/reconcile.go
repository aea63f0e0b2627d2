package migration

import (
	"context"
	"fmt"

	"github.com/imtaco/gymmigrate/mapper"
	"github.com/imtaco/gymmigrate/store"
)

// LinkUnresolvedLeads points every lead without a customer at the customer
// whose contact number equals the lead's phone number. When several
// customers share the number the lowest id wins. Leads that already have a
// customer are never touched, so repeated passes only ever link more leads.
// It returns the number of leads linked.
func LinkUnresolvedLeads(ctx context.Context, q store.Querier, nm mapper.NameMapper) (int64, error) {
	d := q.Dialect()
	leads := d.Quote(nm.MapTableName(mapper.TableLeads))
	customers := d.Quote(nm.MapTableName(mapper.TableCustomers))
	leadCol := func(c string) string { return d.Quote(nm.MapColumnName(mapper.TableLeads, c)) }
	customerCol := func(c string) string { return d.Quote(nm.MapColumnName(mapper.TableCustomers, c)) }

	match := fmt.Sprintf("FROM %s c WHERE c.%s = %s.%s", customers, customerCol("contact_number"), leads, leadCol("phone_number"))
	stmt := fmt.Sprintf(
		"UPDATE %s SET %s = (SELECT MIN(c.%s) %s) WHERE %s IS NULL AND %s IS NOT NULL AND EXISTS (SELECT 1 %s)",
		leads, leadCol("customer_id"), customerCol("id"), match,
		leadCol("customer_id"), leadCol("phone_number"), match,
	)

	n, err := q.Exec(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("failed to link leads to customers: %w", err)
	}
	return n, nil
}
