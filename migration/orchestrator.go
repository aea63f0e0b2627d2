package migration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/imtaco/gymmigrate/mapper"
	"github.com/imtaco/gymmigrate/schema"
	"github.com/imtaco/gymmigrate/store"
)

var errDryRun = errors.New("dry run")

// transactor runs a unit of work in a transaction.
type transactor func(ctx context.Context, fn store.UnitOfWork) error

// step is one independently committed unit of a batch.
type step struct {
	name   string
	entity string
	// reach is the state the batch enters once this step commits.
	reach State
	run   func(ctx context.Context, q store.Querier, res *StepResult) error
}

// Orchestrator sequences the migration of one batch.
type Orchestrator struct {
	gw  *store.Gateway
	cfg Config
	log logrus.FieldLogger
}

// New validates cfg and returns an orchestrator writing through gw.
func New(gw *store.Gateway, cfg Config, log logrus.FieldLogger) (*Orchestrator, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid migration configuration: %w", err)
	}
	return &Orchestrator{gw: gw, cfg: cfg, log: log}, nil
}

// RunBatch provisions the schema, seeds reference data and runs every step
// of the configured target. Each step commits on its own; the first failing
// step is rolled back and reported as a *StepError, and the steps before it
// stay committed. The report is returned in both cases.
func (o *Orchestrator) RunBatch(ctx context.Context, batch BatchTags, src Source) (*Report, error) {
	if err := batch.Validate(o.cfg.Target); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:    uuid.New(),
		Target:   o.cfg.Target,
		Variants: o.variantNames(),
		Batch:    batch,
		State:    StatePending,
		DryRun:   o.cfg.DryRun,
		Started:  o.cfg.Now(),
	}
	m := newMachine(o.cfg.Target)
	log := o.log.WithFields(logrus.Fields{"run_id": report.RunID, "target": o.cfg.Target})

	start := time.Now()
	defer func() {
		report.State = m.state
		report.Elapsed = time.Since(start)
	}()
	fail := func(err error) (*Report, error) {
		m.fail()
		log.WithError(err).Error("Migration failed")
		return report, err
	}

	if src.DB == nil {
		return fail(fmt.Errorf("no source database configured"))
	}
	if err := src.DB.Connect(ctx, src.ConnStr); err != nil {
		return fail(fmt.Errorf("%w: failed to connect to source database: %w", store.ErrConnectivity, err))
	}
	defer src.DB.Close()
	if err := src.DB.Ping(ctx); err != nil {
		return fail(fmt.Errorf("%w: failed to ping source database: %w", store.ErrConnectivity, err))
	}

	if err := o.prepare(ctx, log); err != nil {
		return fail(err)
	}
	if err := m.advance(StateTablesReady); err != nil {
		return fail(err)
	}

	var steps []step
	var err error
	switch o.cfg.Target {
	case TargetCustomers:
		steps, err = o.customerSteps(ctx, src.DB, batch, log)
	case TargetMemberships:
		steps, err = o.membershipSteps(ctx, src.DB, batch)
	}
	if err != nil {
		return fail(err)
	}

	if o.cfg.DryRun {
		err = o.gw.WithTransaction(ctx, func(ctx context.Context, q store.Querier) error {
			nested := func(ctx context.Context, fn store.UnitOfWork) error { return fn(ctx, q) }
			if err := o.runSteps(ctx, steps, nested, m, report, log); err != nil {
				return err
			}
			return errDryRun
		})
		if errors.Is(err, errDryRun) {
			err = nil
		}
	} else {
		err = o.runSteps(ctx, steps, o.gw.WithTransaction, m, report, log)
	}
	if err != nil {
		return fail(err)
	}

	if err := m.advance(StateDone); err != nil {
		return fail(err)
	}
	log.WithFields(logrus.Fields{
		"inserted": report.Inserted(),
		"dry_run":  o.cfg.DryRun,
		"elapsed":  time.Since(start).Round(time.Millisecond),
	}).Info("Migration completed successfully")
	return report, nil
}

// prepare provisions the schema and seeds reference rows. A dry run
// expects both to be in place already.
func (o *Orchestrator) prepare(ctx context.Context, log logrus.FieldLogger) error {
	if o.cfg.DryRun {
		log.Info("Dry run: skipping provisioning and seeding")
		return nil
	}
	if !o.cfg.SkipProvision {
		if err := schema.NewProvisioner(o.gw, log).EnsureSchema(ctx, o.tables()); err != nil {
			return err
		}
	}
	if o.cfg.Target == TargetCustomers && !o.cfg.SkipSeed {
		seeder := schema.NewSeeder(o.gw, log)
		seeder.IgnoreDuplicates = o.cfg.IgnoreDuplicateSeeds
		if _, err := seeder.SeedReferenceData(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) runSteps(ctx context.Context, steps []step, tx transactor, m *machine, report *Report, log logrus.FieldLogger) error {
	for _, s := range steps {
		slog := log.WithFields(logrus.Fields{"step": s.name, "entity": s.entity})
		stepErr := func(err error) error {
			committed := map[string]int64{}
			if !o.cfg.DryRun {
				committed = report.Inserted()
			}
			return &StepError{
				Step:      s.name,
				Entity:    s.entity,
				State:     m.state,
				Committed: committed,
				Duplicate: store.IsDuplicateKey(err),
				Err:       err,
			}
		}

		if err := ctx.Err(); err != nil {
			return stepErr(err)
		}

		slog.Info("Starting step")
		res := StepResult{Step: s.name, Entity: s.entity}
		start := time.Now()
		err := tx(ctx, func(ctx context.Context, q store.Querier) error {
			return s.run(ctx, q, &res)
		})
		res.Elapsed = time.Since(start)
		if err != nil {
			return stepErr(err)
		}

		report.Steps = append(report.Steps, res)
		slog.WithFields(logrus.Fields{
			"inserted": res.Inserted,
			"updated":  res.Updated,
			"skipped":  res.Skipped,
			"elapsed":  res.Elapsed.Round(time.Millisecond),
		}).Info("Step completed")

		if s.reach != "" {
			if err := m.advance(s.reach); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *Orchestrator) tables() []schema.Table {
	if o.cfg.Target == TargetMemberships {
		return schema.PlanTables()
	}
	return schema.CRMTables()
}

func (o *Orchestrator) variantNames() []string {
	if o.cfg.Target != TargetCustomers {
		return nil
	}
	names := make([]string, len(o.cfg.Variants))
	for i, v := range o.cfg.Variants {
		names[i] = v.Name
	}
	return names
}

// row is a destination record with its dedup guard.
type row interface {
	Columns() []store.Column
	Guard() []store.Column
}

// insertRows writes every row not already present and counts the inserts.
func insertRows[T row](ctx context.Context, q store.Querier, nm mapper.NameMapper, logical string, rows []T, res *StepResult) error {
	table := nm.MapTableName(logical)
	for _, r := range rows {
		n, err := store.InsertIfAbsent(ctx, q, table, mapColumns(nm, logical, r.Columns()), mapColumns(nm, logical, r.Guard()))
		if err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
		res.Inserted += n
	}
	return nil
}

func mapColumns(nm mapper.NameMapper, table string, cols []store.Column) []store.Column {
	out := make([]store.Column, len(cols))
	for i, c := range cols {
		out[i] = store.Column{Name: nm.MapColumnName(table, c.Name), Value: c.Value}
	}
	return out
}

// selectRows reads columns of a destination table. The result is keyed by
// the logical column names.
func selectRows(ctx context.Context, q store.Querier, nm mapper.NameMapper, logical string, columns []string, filter ...store.Column) (*store.RowSet, error) {
	d := q.Dialect()
	exprs := make([]string, len(columns))
	for i, col := range columns {
		exprs[i] = fmt.Sprintf("%s AS %s", d.Quote(nm.MapColumnName(logical, col)), d.Quote(col))
	}
	stmt := fmt.Sprintf("SELECT %s FROM %s", strings.Join(exprs, ", "), d.Quote(nm.MapTableName(logical)))

	args := make([]any, 0, len(filter))
	conds := make([]string, 0, len(filter))
	for _, f := range filter {
		args = append(args, f.Value)
		conds = append(conds, fmt.Sprintf("%s = %s", d.Quote(nm.MapColumnName(logical, f.Name)), d.Placeholder(len(args))))
	}
	if len(conds) > 0 {
		stmt += " WHERE " + strings.Join(conds, " AND ")
	}
	return q.Query(ctx, stmt, args...)
}
