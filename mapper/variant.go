package mapper

import "fmt"

// Variant is one named legacy rule set. The member and imported-lead
// migrations historically used different splitting, phone and gender rules;
// they stay separate strategies selected by the caller.
type Variant struct {
	Name   string
	Split  SplitStrategy
	Phone  PhoneMode
	Gender GenderPolicy
	// TagCustomersAsLeads stamps customers with the leads batch tag, as the
	// imported-lead migration always did.
	TagCustomersAsLeads bool
}

// Variant names.
const (
	VariantMemberName        = "member"
	VariantImportedLeadsName = "imported_leads"
)

// VariantMember migrates the legacy member table into customers and
// derives one lead per new customer.
var VariantMember = Variant{
	Name:   VariantMemberName,
	Split:  SplitFirstSpace,
	Phone:  PhoneStrict,
	Gender: GenderStrict,
}

// VariantImportedLeads migrates the legacy imported_leads table into both
// customers and leads and links them afterwards.
var VariantImportedLeads = Variant{
	Name:                VariantImportedLeadsName,
	Split:               SplitLastSpace,
	Phone:               PhoneNullSafe,
	Gender:              GenderDefaulted,
	TagCustomersAsLeads: true,
}

// LookupVariant returns the built-in variant with the given name.
func LookupVariant(name string) (Variant, error) {
	switch name {
	case VariantMemberName:
		return VariantMember, nil
	case VariantImportedLeadsName:
		return VariantImportedLeads, nil
	default:
		return Variant{}, fmt.Errorf("unknown source variant %q", name)
	}
}
