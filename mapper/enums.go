package mapper

import (
	"fmt"
	"strings"
)

// Destination enum values. They must match the deployed column definitions
// byte for byte.
const (
	GenderMale         = "MALE"
	GenderFemale       = "FEMALE"
	GenderRatherNotSay = "RATHER_NOT_SAY"
	LeadGenderAny      = "any"

	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"

	LeadTypeWalkIn           = "WALK_IN"
	LeadTypeMarketing        = "MARKETING"
	LeadTypeTelephoneEnquiry = "TELEPHONE_ENQUIRY"
	LeadTypeSelfGenerated    = "SELF_GENERATED"

	LeadStatusNewMember = "NEW_MEMBER"
	LeadStatusHot       = "HOT"
)

// GenderPolicy decides the value used for codes other than M and F.
type GenderPolicy string

const (
	// GenderStrict leaves unknown genders NULL.
	GenderStrict GenderPolicy = "strict"
	// GenderDefaulted falls back to RATHER_NOT_SAY.
	GenderDefaulted GenderPolicy = "defaulted"
)

// ParseGenderPolicy validates a configured policy name.
func ParseGenderPolicy(s string) (GenderPolicy, error) {
	switch GenderPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case GenderStrict:
		return GenderStrict, nil
	case GenderDefaulted:
		return GenderDefaulted, nil
	default:
		return "", fmt.Errorf("unknown gender policy %q", s)
	}
}

// NormalizeGender maps legacy M/F codes to the customer gender enum.
func NormalizeGender(code *string, policy GenderPolicy) *string {
	var g string
	if code != nil {
		switch strings.ToUpper(strings.TrimSpace(*code)) {
		case "M":
			g = GenderMale
		case "F":
			g = GenderFemale
		}
	}
	if g == "" {
		if policy != GenderDefaulted {
			return nil
		}
		g = GenderRatherNotSay
	}
	return &g
}

// LeadGender is the lead's copy of a customer gender; leads default to "any".
func LeadGender(g *string) string {
	if g == nil {
		return LeadGenderAny
	}
	return *g
}

var leadTypes = map[string]string{
	"wi":                LeadTypeWalkIn,
	"marketing":         LeadTypeMarketing,
	"tel":               LeadTypeTelephoneEnquiry,
	"ms self generated": LeadTypeSelfGenerated,
}

// TranslateLeadType maps a legacy lead code to the lead_type enum. Unknown
// codes map to nil and never reject the row.
func TranslateLeadType(code *string) *string {
	if code == nil {
		return nil
	}
	t, ok := leadTypes[strings.ToLower(strings.TrimSpace(*code))]
	if !ok {
		return nil
	}
	return &t
}

// NormalizeStatus maps a legacy status to ACTIVE/INACTIVE. Anything that is
// not explicitly inactive counts as active.
func NormalizeStatus(s *string) string {
	if s == nil {
		return StatusActive
	}
	switch strings.ToLower(strings.TrimSpace(*s)) {
	case "inactive", "in-active", "in active", "0", "false", "no":
		return StatusInactive
	}
	return StatusActive
}
