package migration

import "fmt"

// State is the progress of one migration batch.
type State string

const (
	StatePending              State = "PENDING"
	StateTablesReady          State = "TABLES_READY"
	StateCustomersMigrated    State = "CUSTOMERS_MIGRATED"
	StateLeadsMigrated        State = "LEADS_MIGRATED"
	StateReconciled           State = "RECONCILED"
	StateGroupsMigrated       State = "GROUPS_MIGRATED"
	StatePlansMigrated        State = "PLANS_MIGRATED"
	StatePaymentPlansMigrated State = "PAYMENT_PLANS_MIGRATED"
	StateDone                 State = "DONE"
	StateFailed               State = "FAILED"
)

// Target selects which family of destination tables a batch fills.
type Target string

const (
	TargetCustomers   Target = "customers"
	TargetMemberships Target = "memberships"
)

// ParseTarget validates a target name.
func ParseTarget(s string) (Target, error) {
	switch Target(s) {
	case TargetCustomers, TargetMemberships:
		return Target(s), nil
	default:
		return "", fmt.Errorf("unknown migration target %q", s)
	}
}

var lifecycles = map[Target][]State{
	TargetCustomers: {
		StatePending, StateTablesReady, StateCustomersMigrated,
		StateLeadsMigrated, StateReconciled, StateDone,
	},
	TargetMemberships: {
		StatePending, StateTablesReady, StateGroupsMigrated,
		StatePlansMigrated, StatePaymentPlansMigrated, StateDone,
	},
}

// Lifecycle returns the states a successful batch of target passes through.
func Lifecycle(t Target) []State {
	return append([]State(nil), lifecycles[t]...)
}

// CanTransition reports whether a batch of target may move from one state
// to the other. Batches only move forward one state at a time; FAILED is
// reachable from every state that is neither DONE nor FAILED.
func CanTransition(t Target, from, to State) bool {
	if from == StateDone || from == StateFailed {
		return false
	}
	if to == StateFailed {
		return true
	}
	states := lifecycles[t]
	for i := 0; i+1 < len(states); i++ {
		if states[i] == from {
			return states[i+1] == to
		}
	}
	return false
}

// machine tracks the state of one batch.
type machine struct {
	target Target
	state  State
}

func newMachine(t Target) *machine {
	return &machine{target: t, state: StatePending}
}

func (m *machine) advance(to State) error {
	if !CanTransition(m.target, m.state, to) {
		return fmt.Errorf("illegal state transition %s -> %s for %s", m.state, to, m.target)
	}
	m.state = to
	return nil
}

func (m *machine) fail() {
	if m.state != StateDone && m.state != StateFailed {
		m.state = StateFailed
	}
}
