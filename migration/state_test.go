package migration

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name     string
		target   Target
		from, to State
		want     bool
	}{
		{"first step", TargetCustomers, StatePending, StateTablesReady, true},
		{"customers in order", TargetCustomers, StateCustomersMigrated, StateLeadsMigrated, true},
		{"reconcile then done", TargetCustomers, StateReconciled, StateDone, true},
		{"skip leads", TargetCustomers, StateCustomersMigrated, StateReconciled, false},
		{"backwards", TargetCustomers, StateLeadsMigrated, StateCustomersMigrated, false},
		{"other lifecycle", TargetCustomers, StateTablesReady, StateGroupsMigrated, false},
		{"groups to plans", TargetMemberships, StateGroupsMigrated, StatePlansMigrated, true},
		{"fail anywhere", TargetMemberships, StatePlansMigrated, StateFailed, true},
		{"done is terminal", TargetCustomers, StateDone, StateFailed, false},
		{"failed is terminal", TargetCustomers, StateFailed, StateTablesReady, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.target, tt.from, tt.to))
		})
	}
}

func TestMachine(t *testing.T) {
	m := newMachine(TargetMemberships)
	for _, s := range Lifecycle(TargetMemberships)[1:] {
		require.NoError(t, m.advance(s))
	}
	assert.Equal(t, StateDone, m.state)
	m.fail()
	assert.Equal(t, StateDone, m.state)

	m = newMachine(TargetCustomers)
	require.NoError(t, m.advance(StateTablesReady))
	assert.Error(t, m.advance(StateLeadsMigrated))
	m.fail()
	assert.Equal(t, StateFailed, m.state)
	assert.Error(t, m.advance(StateCustomersMigrated))
}

func TestParseTarget(t *testing.T) {
	target, err := ParseTarget("memberships")
	require.NoError(t, err)
	assert.Equal(t, TargetMemberships, target)

	_, err = ParseTarget("invoices")
	assert.Error(t, err)
}

func TestBatchTags(t *testing.T) {
	tags := DeriveBatchTags("UFCMBZ", FormatBatchDate(time.Date(2025, 4, 28, 0, 0, 0, 0, time.UTC)), 1)
	assert.Equal(t, BatchTags{
		Customers:         "UFCMBZ_customers_28APR25_1",
		Leads:             "UFCMBZ_leads_28APR25_1",
		MembershipGroups:  "UFCMBZ_MembershipPlanGroup_28APR25_1",
		SingleMemberships: "UFCMBZ_SingleMembershipPlan_28APR25_1",
		PaymentPlans:      "UFCMBZ_PaymentPlan_28APR25_1",
	}, tags)

	merged := BatchTags{Leads: "custom"}.Merge(tags)
	assert.Equal(t, "custom", merged.Leads)
	assert.Equal(t, tags.Customers, merged.Customers)

	assert.NoError(t, BatchTags{Customers: "a", Leads: "b"}.Validate(TargetCustomers))
	assert.ErrorContains(t, BatchTags{Customers: "a", Leads: "b"}.Validate(TargetMemberships), "batch tag")
	assert.Error(t, tags.Validate("invoices"))
}

func TestStepError(t *testing.T) {
	cause := errors.New("boom")
	err := &StepError{
		Step:      "member leads",
		Entity:    "leads",
		State:     StateCustomersMigrated,
		Committed: map[string]int64{"leads": 0, "customers": 3},
		Err:       cause,
	}
	assert.Equal(t, "step member leads (leads) failed after CUSTOMERS_MIGRATED (committed: customers=3, leads=0): boom", err.Error())
	assert.ErrorIs(t, err, cause)

	err.Committed = nil
	assert.Equal(t, "step member leads (leads) failed after CUSTOMERS_MIGRATED: boom", err.Error())
}

func TestReportPrint(t *testing.T) {
	color.NoColor = true
	r := &Report{
		Target:   TargetCustomers,
		Variants: []string{"member", "imported_leads"},
		State:    StateDone,
		DryRun:   true,
		Elapsed:  1500 * time.Millisecond,
		Steps: []StepResult{
			{Step: "member customers", Entity: "customers", Inserted: 4, Skipped: 1, Elapsed: 20 * time.Millisecond},
			{Step: "reconcile leads", Entity: "leads", Updated: 2},
		},
	}

	var buf bytes.Buffer
	r.Print(&buf)
	out := buf.String()
	assert.Contains(t, out, "customers DONE in 1.5s (dry run, rolled back)")
	assert.Contains(t, out, "Variants: member, imported_leads")
	assert.Contains(t, out, "member customers")
	assert.Contains(t, out, "reconcile leads")

	assert.Equal(t, map[string]int64{"customers": 4, "leads": 0}, r.Inserted())
	_, ok := r.Step("missing")
	assert.False(t, ok)
}
