package migration

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imtaco/gymmigrate/mapper"
	"github.com/imtaco/gymmigrate/schema"
	"github.com/imtaco/gymmigrate/source/sqldb"
	"github.com/imtaco/gymmigrate/store"
)

var legacyDDL = []string{
	`CREATE TABLE member (member TEXT, email TEXT, phone TEXT, nationality TEXT, gender TEXT,
		status TEXT, birthDay TEXT, sales TEXT, membershipCode TEXT)`,
	`CREATE TABLE imported_leads (name TEXT, emailAddress TEXT, mobileNumber TEXT, nationality TEXT,
		salesPerson TEXT, leadSource TEXT, leadType TEXT)`,
	`CREATE TABLE membership (membership TEXT, category TEXT, isActive INTEGER, period INTEGER,
		prices TEXT, type TEXT)`,
}

var testBatch = DeriveBatchTags("UFCMBZ", "28APR25", 1)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newRehearsal opens a fresh SQLite destination holding the legacy tables.
func newRehearsal(t *testing.T) (*store.Gateway, Source) {
	t.Helper()
	ctx := context.Background()
	gw, err := store.Open(ctx, store.Config{Driver: "sqlite3", Path: filepath.Join(t.TempDir(), "rehearsal.db")}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { gw.Close() })

	for _, stmt := range legacyDDL {
		_, err := gw.Exec(ctx, stmt)
		require.NoError(t, err)
	}
	return gw, Source{DB: sqldb.Attach(gw.DB(), store.SQLite)}
}

func exec(t *testing.T, gw *store.Gateway, stmt string, args ...any) {
	t.Helper()
	_, err := gw.Exec(context.Background(), stmt, args...)
	require.NoError(t, err)
}

func count(t *testing.T, gw *store.Gateway, stmt string, args ...any) int64 {
	t.Helper()
	rs, err := gw.Query(context.Background(), stmt, args...)
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())
	n := rs.Record(0).Int("n")
	require.NotNil(t, n)
	return *n
}

func newOrchestrator(t *testing.T, gw *store.Gateway, cfg Config) *Orchestrator {
	t.Helper()
	if cfg.Defaults.GymID == "" {
		cfg.Defaults.GymID = "gym-1"
	}
	cfg.Now = func() time.Time { return time.Date(2025, 4, 28, 9, 0, 0, 0, time.UTC) }
	o, err := New(gw, cfg, testLogger())
	require.NoError(t, err)
	return o
}

func insertJane(t *testing.T, gw *store.Gateway) {
	exec(t, gw, `INSERT INTO member (member, email, phone, nationality, gender, status, birthDay, sales)
		VALUES ('Jane Doe', 'j@x.com', '501234567', 'United Arab Emirates', 'F', 'Active', '1990-05-01', 'Import')`)
}

func TestRunBatchMigratesMembers(t *testing.T) {
	gw, src := newRehearsal(t)
	insertJane(t, gw)
	o := newOrchestrator(t, gw, Config{Target: TargetCustomers})

	report, err := o.RunBatch(context.Background(), testBatch, src)
	require.NoError(t, err)
	assert.Equal(t, StateDone, report.State)
	assert.Equal(t, []string{mapper.VariantMemberName}, report.Variants)

	rs, err := gw.Query(context.Background(), `SELECT id, first_name, last_name, contact_number, country_id, gender, status, dob, batch_no FROM customers`)
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())
	c := rs.Record(0)
	assert.Equal(t, "Jane", *c.Text("first_name"))
	assert.Equal(t, "Doe", *c.Text("last_name"))
	assert.Equal(t, "+971501234567", *c.Text("contact_number"))
	assert.Equal(t, int64(schema.DefaultCountryID), *c.Int("country_id"))
	assert.Equal(t, mapper.GenderFemale, *c.Text("gender"))
	assert.Equal(t, mapper.StatusActive, *c.Text("status"))
	assert.Equal(t, "1990-05-01", *store.AsDate(c["dob"]))
	assert.Equal(t, testBatch.Customers, *c.Text("batch_no"))

	rs, err = gw.Query(context.Background(), `SELECT customer_id, phone_number, nationality, lead_status, batch_no FROM leads`)
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())
	l := rs.Record(0)
	assert.Equal(t, *c.Int("id"), *l.Int("customer_id"))
	assert.Equal(t, "+971501234567", *l.Text("phone_number"))
	assert.Equal(t, schema.DefaultCountryName, *l.Text("nationality"))
	assert.Equal(t, mapper.LeadStatusNewMember, *l.Text("lead_status"))
	assert.Equal(t, testBatch.Leads, *l.Text("batch_no"))

	assert.Equal(t, map[string]int64{mapper.TableCustomers: 1, mapper.TableLeads: 1}, report.Inserted())
	res, ok := report.Step(StepReconcile)
	require.True(t, ok)
	assert.Equal(t, int64(0), res.Updated)
}

func TestRunBatchIsIdempotent(t *testing.T) {
	gw, src := newRehearsal(t)
	insertJane(t, gw)
	exec(t, gw, `INSERT INTO member (member, email) VALUES ('No Phone', 'np@x.com')`)
	o := newOrchestrator(t, gw, Config{Target: TargetCustomers})

	first, err := o.RunBatch(context.Background(), testBatch, src)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{mapper.TableCustomers: 2, mapper.TableLeads: 2}, first.Inserted())

	second, err := o.RunBatch(context.Background(), testBatch, src)
	require.NoError(t, err)
	assert.Equal(t, StateDone, second.State)
	assert.Equal(t, map[string]int64{mapper.TableCustomers: 0, mapper.TableLeads: 0}, second.Inserted())

	res, ok := second.Step(CustomerStepName(mapper.VariantMemberName))
	require.True(t, ok)
	assert.Equal(t, int64(2), res.Skipped)

	assert.Equal(t, int64(2), count(t, gw, `SELECT COUNT(*) AS n FROM customers`))
	assert.Equal(t, int64(2), count(t, gw, `SELECT COUNT(*) AS n FROM leads`))
	assert.Equal(t, int64(1), count(t, gw, `SELECT COUNT(*) AS n FROM countries`))
	assert.Equal(t, int64(1), count(t, gw, `SELECT COUNT(*) AS n FROM admins`))
}

func TestRunBatchImportedLeadsAreReconciled(t *testing.T) {
	gw, src := newRehearsal(t)
	insertJane(t, gw)
	// Same number as Jane: neither a second customer nor a second lead.
	exec(t, gw, `INSERT INTO imported_leads (name, mobileNumber, nationality, salesPerson)
		VALUES ('Jane Q Doe', '501234567', 'United Arab Emirates', 'import')`)
	// No dial code: the local number is kept and the lead type is dropped.
	exec(t, gw, `INSERT INTO imported_leads (name, mobileNumber, nationality, leadType)
		VALUES ('Omar Ali', '502222222', 'Atlantis', 'banana')`)

	o := newOrchestrator(t, gw, Config{
		Target:   TargetCustomers,
		Variants: []mapper.Variant{mapper.VariantMember, mapper.VariantImportedLeads},
	})
	report, err := o.RunBatch(context.Background(), testBatch, src)
	require.NoError(t, err)
	assert.Equal(t, StateDone, report.State)

	names := make([]string, len(report.Steps))
	for i, s := range report.Steps {
		names[i] = s.Step
	}
	assert.Equal(t, []string{
		CustomerStepName(mapper.VariantMemberName),
		CustomerStepName(mapper.VariantImportedLeadsName),
		LeadStepName(mapper.VariantMemberName),
		LeadStepName(mapper.VariantImportedLeadsName),
		StepReconcile,
	}, names)

	imported, ok := report.Step(CustomerStepName(mapper.VariantImportedLeadsName))
	require.True(t, ok)
	assert.Equal(t, int64(1), imported.Inserted)
	assert.Equal(t, int64(1), imported.Skipped)

	leads, ok := report.Step(LeadStepName(mapper.VariantImportedLeadsName))
	require.True(t, ok)
	assert.Equal(t, int64(1), leads.Inserted)
	assert.Equal(t, int64(1), leads.Skipped)

	assert.Equal(t, int64(1), count(t, gw, `SELECT COUNT(*) AS n FROM customers WHERE batch_no = ? AND contact_number = '502222222'`, testBatch.Leads))
	assert.Equal(t, int64(2), count(t, gw, `SELECT COUNT(*) AS n FROM leads`))
	assert.Equal(t, int64(1), count(t, gw, `SELECT COUNT(*) AS n FROM leads WHERE first_name = 'Omar' AND lead_type IS NULL AND lead_status = 'HOT'`))

	reconcile, ok := report.Step(StepReconcile)
	require.True(t, ok)
	assert.Equal(t, int64(1), reconcile.Updated)
	assert.Equal(t, int64(0), count(t, gw, `SELECT COUNT(*) AS n FROM leads WHERE customer_id IS NULL`))
	assert.Equal(t, int64(1), count(t, gw, `SELECT COUNT(*) AS n FROM leads l JOIN customers c ON c.id = l.customer_id WHERE c.first_name = 'Omar'`))
}

func TestLinkUnresolvedLeadsOnlyFillsMissingLinks(t *testing.T) {
	ctx := context.Background()
	gw, _ := newRehearsal(t)
	require.NoError(t, schema.NewProvisioner(gw, testLogger()).EnsureSchema(ctx, schema.CRMTables()))
	nm := mapper.NewDestinationNameMapper()

	exec(t, gw, `INSERT INTO customers (id, first_name, contact_number, status, batch_no) VALUES (1, 'A', '+9711', 'ACTIVE', 'b')`)
	exec(t, gw, `INSERT INTO customers (id, first_name, contact_number, status, batch_no) VALUES (2, 'B', '+9712', 'ACTIVE', 'b')`)
	exec(t, gw, `INSERT INTO leads (first_name, phone_number, customer_id, gym_id, lead_status, gender, batch_no) VALUES ('x', '+9711', 2, 'g', 'HOT', 'any', 'b')`)
	exec(t, gw, `INSERT INTO leads (first_name, phone_number, gym_id, lead_status, gender, batch_no) VALUES ('y', '+9711', 'g', 'HOT', 'any', 'b')`)
	exec(t, gw, `INSERT INTO leads (first_name, gym_id, lead_status, gender, batch_no) VALUES ('z', 'g', 'HOT', 'any', 'b')`)

	n, err := LinkUnresolvedLeads(ctx, gw, nm)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, int64(1), count(t, gw, `SELECT COUNT(*) AS n FROM leads WHERE first_name = 'x' AND customer_id = 2`))
	assert.Equal(t, int64(1), count(t, gw, `SELECT COUNT(*) AS n FROM leads WHERE first_name = 'y' AND customer_id = 1`))
	assert.Equal(t, int64(1), count(t, gw, `SELECT COUNT(*) AS n FROM leads WHERE customer_id IS NULL`))

	n, err = LinkUnresolvedLeads(ctx, gw, nm)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestRunBatchMigratesMemberships(t *testing.T) {
	gw, src := newRehearsal(t)
	exec(t, gw, `INSERT INTO membership VALUES ('Gold', 'Champion', 1, 7, 'Price Name = Monthly, Price Value = 250.00', 'recurring')`)
	exec(t, gw, `INSERT INTO membership VALUES ('Silver', 'champion ', 0, NULL, 'n/a', NULL)`)
	exec(t, gw, `INSERT INTO membership VALUES ('Kids', 'Junior', NULL, NULL, 'Price Name = Term, Price Value = 90', NULL)`)
	exec(t, gw, `INSERT INTO membership VALUES ('Orphan', NULL, 1, NULL, NULL, NULL)`)

	o := newOrchestrator(t, gw, Config{
		Target:   TargetMemberships,
		Defaults: Defaults{GymID: "gym-1", AdminID: 3, CountryID: "country-1"},
	})
	report, err := o.RunBatch(context.Background(), testBatch, src)
	require.NoError(t, err)
	assert.Equal(t, StateDone, report.State)
	assert.Nil(t, report.Variants)

	assert.Equal(t, map[string]int64{
		mapper.TablePlanGroups:   2,
		mapper.TablePlans:        3,
		mapper.TablePaymentPlans: 2,
	}, report.Inserted())

	groups, ok := report.Step(StepPlanGroups)
	require.True(t, ok)
	assert.Equal(t, int64(2), groups.Updated)
	assert.Equal(t, int64(2), count(t, gw, `SELECT COUNT(*) AS n FROM MembershipPlanGroup WHERE gymId = 'gym-1' AND adminId = '3'`))
	assert.Equal(t, int64(1), count(t, gw, `SELECT COUNT(*) AS n FROM SingleMembershipPlan WHERE isChampion = 1 AND status = 'Active'`))
	assert.Equal(t, int64(1), count(t, gw, `SELECT COUNT(*) AS n FROM PaymentPlan WHERE price = 250 AND name = 'Monthly' AND currency = 'AED'`))

	again, err := o.RunBatch(context.Background(), testBatch, src)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		mapper.TablePlanGroups:   0,
		mapper.TablePlans:        0,
		mapper.TablePaymentPlans: 0,
	}, again.Inserted())
	groups, _ = again.Step(StepPlanGroups)
	assert.Equal(t, int64(0), groups.Updated)
}

func TestRunBatchStopsAtFailingStep(t *testing.T) {
	ctx := context.Background()
	gw, src := newRehearsal(t)
	insertJane(t, gw)
	require.NoError(t, schema.NewProvisioner(gw, testLogger()).EnsureSchema(ctx, schema.CRMTables()))
	exec(t, gw, `DROP TABLE leads`)

	o := newOrchestrator(t, gw, Config{Target: TargetCustomers, SkipProvision: true})
	report, err := o.RunBatch(ctx, testBatch, src)
	require.Error(t, err)

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, LeadStepName(mapper.VariantMemberName), stepErr.Step)
	assert.Equal(t, StateCustomersMigrated, stepErr.State)
	assert.Equal(t, map[string]int64{mapper.TableCustomers: 1}, stepErr.Committed)
	assert.False(t, stepErr.Duplicate)

	assert.Equal(t, StateFailed, report.State)
	assert.Len(t, report.Steps, 1)
	assert.Equal(t, int64(1), count(t, gw, `SELECT COUNT(*) AS n FROM customers`))
}

func TestRunBatchDryRunRollsBack(t *testing.T) {
	ctx := context.Background()
	gw, src := newRehearsal(t)
	insertJane(t, gw)
	require.NoError(t, schema.NewProvisioner(gw, testLogger()).EnsureSchema(ctx, schema.CRMTables()))
	_, err := schema.NewSeeder(gw, testLogger()).SeedReferenceData(ctx)
	require.NoError(t, err)

	o := newOrchestrator(t, gw, Config{Target: TargetCustomers, DryRun: true})
	report, err := o.RunBatch(ctx, testBatch, src)
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, StateDone, report.State)
	assert.Equal(t, map[string]int64{mapper.TableCustomers: 1, mapper.TableLeads: 1}, report.Inserted())

	assert.Equal(t, int64(0), count(t, gw, `SELECT COUNT(*) AS n FROM customers`))
	assert.Equal(t, int64(0), count(t, gw, `SELECT COUNT(*) AS n FROM leads`))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	gw, _ := newRehearsal(t)
	log := testLogger()

	_, err := New(gw, Config{Target: "invoices", Defaults: Defaults{GymID: "g"}}, log)
	assert.Error(t, err)

	_, err = New(gw, Config{Target: TargetCustomers}, log)
	assert.ErrorContains(t, err, "gym id")

	_, err = New(gw, Config{Target: TargetMemberships, Defaults: Defaults{GymID: "g"}}, log)
	assert.ErrorContains(t, err, "country id")

	_, err = New(gw, Config{
		Target:   TargetCustomers,
		Defaults: Defaults{GymID: "g"},
		Variants: []mapper.Variant{mapper.VariantMember, mapper.VariantMember},
	}, log)
	assert.ErrorContains(t, err, "listed twice")
}

func TestRunBatchRejectsMissingTags(t *testing.T) {
	gw, src := newRehearsal(t)
	o := newOrchestrator(t, gw, Config{Target: TargetCustomers})
	_, err := o.RunBatch(context.Background(), BatchTags{Customers: "x"}, src)
	assert.ErrorContains(t, err, "leads")
}
