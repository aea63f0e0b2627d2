package migration

import (
	"fmt"
	"strings"
	"time"
)

// Entity labels used in derived batch tags.
const (
	entityCustomers         = "customers"
	entityLeads             = "leads"
	entityMembershipGroups  = "MembershipPlanGroup"
	entitySingleMemberships = "SingleMembershipPlan"
	entityPaymentPlans      = "PaymentPlan"
)

// BatchTags are the provenance strings stamped on the rows one run inserts,
// one per destination entity.
type BatchTags struct {
	Customers         string `mapstructure:"customers"`
	Leads             string `mapstructure:"leads"`
	MembershipGroups  string `mapstructure:"membership_groups"`
	SingleMemberships string `mapstructure:"single_memberships"`
	PaymentPlans      string `mapstructure:"payment_plans"`
}

// DeriveBatchTags builds tags shaped <tenant>_<entity>_<date>_<sequence>,
// e.g. UFCMBZ_customers_28APR25_1.
func DeriveBatchTags(tenant, date string, sequence int) BatchTags {
	tag := func(entity string) string {
		return fmt.Sprintf("%s_%s_%s_%d", tenant, entity, date, sequence)
	}
	return BatchTags{
		Customers:         tag(entityCustomers),
		Leads:             tag(entityLeads),
		MembershipGroups:  tag(entityMembershipGroups),
		SingleMemberships: tag(entitySingleMemberships),
		PaymentPlans:      tag(entityPaymentPlans),
	}
}

// FormatBatchDate renders a date the way batch tags carry it (28APR25).
func FormatBatchDate(t time.Time) string {
	return strings.ToUpper(t.Format("02Jan06"))
}

// Merge returns b with every empty tag taken from fallback.
func (b BatchTags) Merge(fallback BatchTags) BatchTags {
	pick := func(v, fb string) string {
		if v != "" {
			return v
		}
		return fb
	}
	return BatchTags{
		Customers:         pick(b.Customers, fallback.Customers),
		Leads:             pick(b.Leads, fallback.Leads),
		MembershipGroups:  pick(b.MembershipGroups, fallback.MembershipGroups),
		SingleMemberships: pick(b.SingleMemberships, fallback.SingleMemberships),
		PaymentPlans:      pick(b.PaymentPlans, fallback.PaymentPlans),
	}
}

// Validate checks that every tag target writes with is set.
func (b BatchTags) Validate(t Target) error {
	var required map[string]string
	switch t {
	case TargetCustomers:
		required = map[string]string{"customers": b.Customers, "leads": b.Leads}
	case TargetMemberships:
		required = map[string]string{
			"membership_groups":  b.MembershipGroups,
			"single_memberships": b.SingleMemberships,
			"payment_plans":      b.PaymentPlans,
		}
	default:
		return fmt.Errorf("unknown migration target %q", t)
	}
	for name, tag := range required {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("batch tag %s is required for %s", name, t)
		}
	}
	return nil
}
