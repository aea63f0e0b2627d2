package migration

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/imtaco/gymmigrate/mapper"
	"github.com/imtaco/gymmigrate/source"
	"github.com/imtaco/gymmigrate/store"
)

// Step names of the customer target.
const (
	StepReconcile = "reconcile leads"
)

// CustomerStepName and LeadStepName name the per-variant steps.
func CustomerStepName(variant string) string { return variant + " customers" }
func LeadStepName(variant string) string     { return variant + " leads" }

// customerSteps reads the legacy rows and lookups, then plans every
// customer step, every lead step and the reconciliation pass, in that order.
func (o *Orchestrator) customerSteps(ctx context.Context, src source.SourceDB, batch BatchTags, log logrus.FieldLogger) ([]step, error) {
	lk, err := o.loadLookups(ctx, log)
	if err != nil {
		return nil, err
	}

	leadDefaults := mapper.LeadDefaults{
		GymID:   o.cfg.Defaults.GymID,
		Source:  o.cfg.Defaults.LeadSource,
		BatchNo: batch.Leads,
	}

	var customerSteps, leadSteps []step
	for _, v := range o.cfg.Variants {
		customerTag := batch.Customers
		if v.TagCustomersAsLeads {
			customerTag = batch.Leads
		}

		switch v.Name {
		case mapper.VariantMemberName:
			members, err := source.ReadMembers(ctx, src)
			if err != nil {
				return nil, fmt.Errorf("failed to read legacy members: %w", err)
			}
			log.WithFields(logrus.Fields{"variant": v.Name, "rows": len(members)}).Info("Loaded legacy rows")

			customers := make([]mapper.Customer, 0, len(members))
			for _, m := range members {
				if c, ok := mapper.CustomerFromMember(m, v, lk, customerTag); ok {
					customers = append(customers, c)
				}
			}
			customerSteps = append(customerSteps, insertStep(o, CustomerStepName(v.Name), mapper.TableCustomers, customers, len(members)))
			leadSteps = append(leadSteps, step{
				name:   LeadStepName(v.Name),
				entity: mapper.TableLeads,
				run:    o.leadsFromCustomers(lk, customerTag, leadDefaults),
			})

		case mapper.VariantImportedLeadsName:
			imported, err := source.ReadImportedLeads(ctx, src)
			if err != nil {
				return nil, fmt.Errorf("failed to read legacy imported leads: %w", err)
			}
			log.WithFields(logrus.Fields{"variant": v.Name, "rows": len(imported)}).Info("Loaded legacy rows")

			customers := make([]mapper.Customer, 0, len(imported))
			leads := make([]mapper.Lead, 0, len(imported))
			for _, il := range imported {
				if c, ok := mapper.CustomerFromImportedLead(il, v, lk, customerTag); ok {
					customers = append(customers, c)
				}
				if l, ok := mapper.LeadFromImportedLead(il, v, lk, leadDefaults); ok {
					leads = append(leads, l)
				}
			}
			customerSteps = append(customerSteps, insertStep(o, CustomerStepName(v.Name), mapper.TableCustomers, customers, len(imported)))
			leadSteps = append(leadSteps, insertStep(o, LeadStepName(v.Name), mapper.TableLeads, leads, len(imported)))

		default:
			return nil, fmt.Errorf("no legacy source for variant %s", v.Name)
		}
	}

	customerSteps[len(customerSteps)-1].reach = StateCustomersMigrated
	leadSteps[len(leadSteps)-1].reach = StateLeadsMigrated

	steps := append(customerSteps, leadSteps...)
	return append(steps, step{
		name:   StepReconcile,
		entity: mapper.TableLeads,
		reach:  StateReconciled,
		run: func(ctx context.Context, q store.Querier, res *StepResult) error {
			n, err := LinkUnresolvedLeads(ctx, q, o.cfg.NameMapper)
			res.Updated = n
			return err
		},
	}), nil
}

// insertStep plans a step that writes pre-mapped rows. total is the number
// of source rows the rows were mapped from.
func insertStep[T row](o *Orchestrator, name, logical string, rows []T, total int) step {
	return step{
		name:   name,
		entity: logical,
		run: func(ctx context.Context, q store.Querier, res *StepResult) error {
			if err := insertRows(ctx, q, o.cfg.NameMapper, logical, rows, res); err != nil {
				return err
			}
			res.Skipped = int64(total) - res.Inserted
			return nil
		},
	}
}

// leadsFromCustomers derives one lead per customer of the batch that has
// none yet. The customers are read inside the step's transaction so the
// rows committed by the customer step are visible.
func (o *Orchestrator) leadsFromCustomers(lk mapper.Lookups, customerTag string, d mapper.LeadDefaults) func(context.Context, store.Querier, *StepResult) error {
	return func(ctx context.Context, q store.Querier, res *StepResult) error {
		rs, err := selectRows(ctx, q, o.cfg.NameMapper, mapper.TableCustomers, mapper.StoredCustomerColumns,
			store.Column{Name: "batch_no", Value: customerTag})
		if err != nil {
			return fmt.Errorf("failed to read migrated customers: %w", err)
		}

		leads := make([]mapper.Lead, 0, rs.Len())
		for i := 0; i < rs.Len(); i++ {
			c, ok := mapper.StoredCustomerFromRecord(rs.Record(i))
			if !ok {
				continue
			}
			if l, ok := mapper.LeadFromCustomer(c, lk, d); ok {
				leads = append(leads, l)
			}
		}
		if err := insertRows(ctx, q, o.cfg.NameMapper, mapper.TableLeads, leads, res); err != nil {
			return err
		}
		res.Skipped = int64(rs.Len()) - res.Inserted
		return nil
	}
}

// loadLookups builds the country and admin lookup tables. Rows are read in
// whatever order the database returns them; admins sharing a first name
// resolve to the first one returned.
func (o *Orchestrator) loadLookups(ctx context.Context, log logrus.FieldLogger) (mapper.Lookups, error) {
	lk := mapper.NewLookups()

	rs, err := selectRows(ctx, o.gw, o.cfg.NameMapper, mapper.TableCountries, []string{"id", "name", "dial_code"})
	if err != nil {
		return lk, fmt.Errorf("failed to load countries: %w", err)
	}
	for i := 0; i < rs.Len(); i++ {
		rec := rs.Record(i)
		id, name := rec.Int("id"), rec.Text("name")
		if id == nil || name == nil {
			continue
		}
		lk.AddCountry(mapper.Country{ID: *id, Name: *name, DialCode: rec.Text("dial_code")})
	}

	rs, err = selectRows(ctx, o.gw, o.cfg.NameMapper, mapper.TableAdmins, []string{"id", "first_name"})
	if err != nil {
		return lk, fmt.Errorf("failed to load admins: %w", err)
	}
	for i := 0; i < rs.Len(); i++ {
		rec := rs.Record(i)
		id, name := rec.Int("id"), rec.Text("first_name")
		if id == nil || name == nil {
			continue
		}
		lk.Admins.Add(*name, *id)
	}

	if amb := lk.Admins.Ambiguous(); len(amb) > 0 {
		log.WithField("first_names", amb).Warn("Several admins share a first name; sales matches use the first one returned")
	}
	log.WithFields(logrus.Fields{"countries": lk.Countries.Len(), "admins": lk.Admins.Len()}).Info("Loaded lookup tables")
	return lk, nil
}
