package migration

import (
	"context"
	"fmt"
	"strconv"

	"github.com/imtaco/gymmigrate/mapper"
	"github.com/imtaco/gymmigrate/source"
	"github.com/imtaco/gymmigrate/store"
)

// Step names of the membership target.
const (
	StepPlanGroups   = "membership groups"
	StepPlans        = "membership plans"
	StepPaymentPlans = "payment plans"
)

// membershipSteps reads the legacy memberships and plans the group, plan
// and payment plan steps. Plans resolve their group and payment plans their
// plan from what the previous step committed.
func (o *Orchestrator) membershipSteps(ctx context.Context, src source.SourceDB, batch BatchTags) ([]step, error) {
	rows, err := source.ReadMemberships(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy memberships: %w", err)
	}
	o.log.WithField("rows", len(rows)).Info("Loaded legacy memberships")

	d := mapper.PlanDefaults{
		AdminID:   o.cfg.Defaults.AdminID,
		GymID:     o.cfg.Defaults.GymID,
		CountryID: o.cfg.Defaults.CountryID,
		Currency:  o.cfg.Defaults.Currency,
		Now:       o.cfg.Now(),
	}
	nm := o.cfg.NameMapper

	categories := mapper.DistinctCategories(rows)
	groups := make([]mapper.PlanGroup, len(categories))
	for i, c := range categories {
		groups[i] = mapper.GroupFromCategory(c, batch.MembershipGroups)
	}

	return []step{
		{
			name:   StepPlanGroups,
			entity: mapper.TablePlanGroups,
			reach:  StateGroupsMigrated,
			run: func(ctx context.Context, q store.Querier, res *StepResult) error {
				if err := insertRows(ctx, q, nm, mapper.TablePlanGroups, groups, res); err != nil {
					return err
				}
				res.Skipped = int64(len(groups)) - res.Inserted
				n, err := backfillGroupOwners(ctx, q, nm, d)
				res.Updated = n
				return err
			},
		},
		{
			name:   StepPlans,
			entity: mapper.TablePlans,
			reach:  StatePlansMigrated,
			run: func(ctx context.Context, q store.Querier, res *StepResult) error {
				lookup, err := idsByName(ctx, q, nm, mapper.TablePlanGroups)
				if err != nil {
					return fmt.Errorf("failed to load membership groups: %w", err)
				}
				plans := make([]mapper.SinglePlan, 0, len(rows))
				for _, m := range rows {
					if p, ok := mapper.PlanFromMembership(m, lookup, d, batch.SingleMemberships); ok {
						plans = append(plans, p)
					}
				}
				if err := insertRows(ctx, q, nm, mapper.TablePlans, plans, res); err != nil {
					return err
				}
				res.Skipped = int64(len(rows)) - res.Inserted
				return nil
			},
		},
		{
			name:   StepPaymentPlans,
			entity: mapper.TablePaymentPlans,
			reach:  StatePaymentPlansMigrated,
			run: func(ctx context.Context, q store.Querier, res *StepResult) error {
				lookup, err := idsByName(ctx, q, nm, mapper.TablePlans,
					store.Column{Name: "batch_no", Value: batch.SingleMemberships})
				if err != nil {
					return fmt.Errorf("failed to load membership plans: %w", err)
				}
				payments := make([]mapper.PaymentPlan, 0, len(rows))
				for _, m := range rows {
					if p, ok := mapper.PaymentPlanFromMembership(m, lookup, o.cfg.PriceParser, d, batch.PaymentPlans); ok {
						payments = append(payments, p)
					}
				}
				if err := insertRows(ctx, q, nm, mapper.TablePaymentPlans, payments, res); err != nil {
					return err
				}
				res.Skipped = int64(len(rows)) - res.Inserted
				return nil
			},
		},
	}, nil
}

// backfillGroupOwners stamps the gym and admin on groups that have none.
func backfillGroupOwners(ctx context.Context, q store.Querier, nm mapper.NameMapper, d mapper.PlanDefaults) (int64, error) {
	dl := q.Dialect()
	t := mapper.TablePlanGroups
	gym := dl.Quote(nm.MapColumnName(t, "gym_id"))
	stmt := fmt.Sprintf("UPDATE %s SET %s = %s, %s = %s WHERE %s IS NULL",
		dl.Quote(nm.MapTableName(t)),
		gym, dl.Placeholder(1),
		dl.Quote(nm.MapColumnName(t, "admin_id")), dl.Placeholder(2),
		gym)
	n, err := q.Exec(ctx, stmt, d.GymID, strconv.FormatInt(d.AdminID, 10))
	if err != nil {
		return 0, fmt.Errorf("failed to backfill membership group owners: %w", err)
	}
	return n, nil
}

// idsByName loads a name to id lookup from a destination table.
func idsByName(ctx context.Context, q store.Querier, nm mapper.NameMapper, logical string, filter ...store.Column) (*mapper.LookupTable[int64], error) {
	rs, err := selectRows(ctx, q, nm, logical, []string{"id", "name"}, filter...)
	if err != nil {
		return nil, err
	}
	lookup := mapper.NewLookupTable[int64]()
	for i := 0; i < rs.Len(); i++ {
		rec := rs.Record(i)
		id, name := rec.Int("id"), rec.Text("name")
		if id == nil || name == nil {
			continue
		}
		lookup.Add(*name, *id)
	}
	return lookup, nil
}
