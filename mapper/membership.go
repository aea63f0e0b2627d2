package mapper

import (
	"strconv"
	"strings"
	"time"

	"github.com/imtaco/gymmigrate/source"
	"github.com/imtaco/gymmigrate/store"
)

// Plan status values used by the plan tables.
const (
	PlanStatusActive   = "Active"
	PlanStatusInactive = "Inactive"

	planTargetMinAge = 4
	planTargetMaxAge = 91
	championCategory = "champion"
)

// PlanDefaults are the run-level values stamped on membership rows.
type PlanDefaults struct {
	AdminID   int64
	GymID     string
	CountryID string
	Currency  string
	Now       time.Time
}

// PlanGroup is one MembershipPlanGroup row.
type PlanGroup struct {
	Name        string
	Description string
	BatchNo     string
}

// Columns returns the values to insert.
func (g PlanGroup) Columns() []store.Column {
	return []store.Column{
		{Name: "name", Value: g.Name},
		{Name: "description", Value: g.Description},
		{Name: "batch_no", Value: g.BatchNo},
	}
}

// Guard keeps group names unique.
func (g PlanGroup) Guard() []store.Column {
	return []store.Column{{Name: "name", Value: g.Name}}
}

// DistinctCategories returns the legacy categories in first-seen order,
// ignoring blanks and case or whitespace variants of a category already seen.
func DistinctCategories(rows []source.Membership) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range rows {
		if m.Category == nil {
			continue
		}
		name := strings.TrimSpace(*m.Category)
		k := NormalizeKey(name)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, name)
	}
	return out
}

// GroupFromCategory builds the group for a legacy category.
func GroupFromCategory(category, batch string) PlanGroup {
	return PlanGroup{Name: category, Description: category, BatchNo: batch}
}

// SinglePlan is one SingleMembershipPlan row.
type SinglePlan struct {
	Name                    string
	Description             string
	Status                  string
	Trial                   bool
	Visible                 bool
	TargetMinAge            int
	TargetMaxAge            int
	AdminID                 string
	MembershipPlanGroupID   int64
	CreatedAt               time.Time
	UpdatedAt               time.Time
	TargetGender            string
	GracePeriodCancellation *int64
	GracePeriodChange       *int64
	GracePeriodEarlyRenewal *int64
	GracePeriodRelocation   *int64
	GracePeriodTransfer     *int64
	IsChampion              bool
	BatchNo                 string
}

// Columns returns the values to insert.
func (p SinglePlan) Columns() []store.Column {
	return []store.Column{
		{Name: "name", Value: p.Name},
		{Name: "description", Value: p.Description},
		{Name: "status", Value: p.Status},
		{Name: "trial", Value: p.Trial},
		{Name: "visible", Value: p.Visible},
		{Name: "target_min_age", Value: p.TargetMinAge},
		{Name: "target_max_age", Value: p.TargetMaxAge},
		{Name: "admin_id", Value: p.AdminID},
		{Name: "membership_plan_group_id", Value: p.MembershipPlanGroupID},
		{Name: "created_at", Value: p.CreatedAt},
		{Name: "updated_at", Value: p.UpdatedAt},
		{Name: "target_gender", Value: p.TargetGender},
		{Name: "grace_period_cancellation", Value: p.GracePeriodCancellation},
		{Name: "grace_period_change", Value: p.GracePeriodChange},
		{Name: "grace_period_early_renewal", Value: p.GracePeriodEarlyRenewal},
		{Name: "grace_period_relocation", Value: p.GracePeriodRelocation},
		{Name: "grace_period_transfer", Value: p.GracePeriodTransfer},
		{Name: "is_champion", Value: p.IsChampion},
		{Name: "batch_no", Value: p.BatchNo},
	}
}

// Guard keeps one plan per name and group per batch.
func (p SinglePlan) Guard() []store.Column {
	return []store.Column{
		{Name: "name", Value: p.Name},
		{Name: "membership_plan_group_id", Value: p.MembershipPlanGroupID},
		{Name: "batch_no", Value: p.BatchNo},
	}
}

// PlanFromMembership maps a legacy membership row to its plan. ok is false
// when the row has no name or its category matches no group.
func PlanFromMembership(m source.Membership, groups *LookupTable[int64], d PlanDefaults, batch string) (SinglePlan, bool) {
	name := trimmed(m.Membership)
	if name == nil {
		return SinglePlan{}, false
	}
	groupID, ok := groups.Lookup(m.Category)
	if !ok {
		return SinglePlan{}, false
	}

	status := PlanStatusInactive
	if m.IsActive != nil && *m.IsActive == 1 {
		status = PlanStatusActive
	}
	return SinglePlan{
		Name:                    *name,
		Description:             *name,
		Status:                  status,
		Visible:                 m.IsActive != nil,
		TargetMinAge:            planTargetMinAge,
		TargetMaxAge:            planTargetMaxAge,
		AdminID:                 strconv.FormatInt(d.AdminID, 10),
		MembershipPlanGroupID:   groupID,
		CreatedAt:               d.Now,
		UpdatedAt:               d.Now,
		TargetGender:            LeadGenderAny,
		GracePeriodCancellation: m.Period,
		GracePeriodChange:       m.Period,
		GracePeriodEarlyRenewal: m.Period,
		GracePeriodRelocation:   m.Period,
		GracePeriodTransfer:     m.Period,
		IsChampion:              m.Category != nil && NormalizeKey(*m.Category) == championCategory,
		BatchNo:                 batch,
	}, true
}

// PaymentPlan is one PaymentPlan row.
type PaymentPlan struct {
	Name                   string
	Price                  float64
	SingleMembershipPlanID string
	AdminID                string
	CountryID              string
	Currency               string
	Type                   *string
	CreatedAt              time.Time
	UpdatedAt              time.Time
	BatchNo                string
}

// Columns returns the values to insert.
func (p PaymentPlan) Columns() []store.Column {
	return []store.Column{
		{Name: "name", Value: p.Name},
		{Name: "price", Value: p.Price},
		{Name: "single_membership_plan_id", Value: p.SingleMembershipPlanID},
		{Name: "admin_id", Value: p.AdminID},
		{Name: "country_id", Value: p.CountryID},
		{Name: "currency", Value: p.Currency},
		{Name: "type", Value: p.Type},
		{Name: "created_at", Value: p.CreatedAt},
		{Name: "updated_at", Value: p.UpdatedAt},
		{Name: "batch_no", Value: p.BatchNo},
	}
}

// Guard keeps one payment plan per plan and price name per batch.
func (p PaymentPlan) Guard() []store.Column {
	return []store.Column{
		{Name: "single_membership_plan_id", Value: p.SingleMembershipPlanID},
		{Name: "name", Value: p.Name},
		{Name: "batch_no", Value: p.BatchNo},
	}
}

// PaymentPlanFromMembership maps a legacy membership row to its payment
// plan. ok is false when the plan is unknown or the price text does not
// parse.
func PaymentPlanFromMembership(m source.Membership, plans *LookupTable[int64], parser PriceParser, d PlanDefaults, batch string) (PaymentPlan, bool) {
	if m.Prices == nil {
		return PaymentPlan{}, false
	}
	planID, ok := plans.Lookup(m.Membership)
	if !ok {
		return PaymentPlan{}, false
	}
	quote, ok := parser.Parse(*m.Prices)
	if !ok {
		return PaymentPlan{}, false
	}
	return PaymentPlan{
		Name:                   quote.Name,
		Price:                  quote.Amount,
		SingleMembershipPlanID: strconv.FormatInt(planID, 10),
		AdminID:                strconv.FormatInt(d.AdminID, 10),
		CountryID:              d.CountryID,
		Currency:               d.Currency,
		Type:                   trimmed(m.Type),
		CreatedAt:              d.Now,
		UpdatedAt:              d.Now,
		BatchNo:                batch,
	}, true
}
