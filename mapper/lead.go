package mapper

import (
	"github.com/imtaco/gymmigrate/source"
	"github.com/imtaco/gymmigrate/store"
)

// LeadDefaults are the run-level values stamped on every lead.
type LeadDefaults struct {
	GymID   string
	Source  string
	BatchNo string
}

// Lead is one row for the leads table.
type Lead struct {
	FirstName     string
	LastName      *string
	Email         *string
	PhoneNumber   *string
	Nationality   *string
	Source        *string
	BatchNo       string
	CustomerID    *int64
	Status        string
	CountryID     *int64
	GymID         string
	CreatedBy     *int64
	LastUpdatedBy *int64
	LeadCreatedBy *int64
	DOB           *string
	Gender        string
	CustomerCode  *string
	LeadType      *string
	LeadStatus    string
}

// Columns returns the values to insert.
func (l Lead) Columns() []store.Column {
	return []store.Column{
		{Name: "first_name", Value: l.FirstName},
		{Name: "last_name", Value: l.LastName},
		{Name: "email", Value: l.Email},
		{Name: "phone_number", Value: l.PhoneNumber},
		{Name: "nationality", Value: l.Nationality},
		{Name: "source", Value: l.Source},
		{Name: "batch_no", Value: l.BatchNo},
		{Name: "customer_id", Value: l.CustomerID},
		{Name: "status", Value: l.Status},
		{Name: "country_id", Value: l.CountryID},
		{Name: "gym_id", Value: l.GymID},
		{Name: "created_by", Value: l.CreatedBy},
		{Name: "last_updated_by", Value: l.LastUpdatedBy},
		{Name: "lead_created_by", Value: l.LeadCreatedBy},
		{Name: "dob", Value: l.DOB},
		{Name: "gender", Value: l.Gender},
		{Name: "customer_code", Value: l.CustomerCode},
		{Name: "lead_type", Value: l.LeadType},
		{Name: "lead_status", Value: l.LeadStatus},
	}
}

// Guard returns the dedup key: one lead per customer, otherwise one lead per
// phone number (or name and email when the phone is unknown) per batch.
func (l Lead) Guard() []store.Column {
	switch {
	case l.CustomerID != nil:
		return []store.Column{{Name: "customer_id", Value: l.CustomerID}}
	case l.PhoneNumber != nil:
		return []store.Column{
			{Name: "batch_no", Value: l.BatchNo},
			{Name: "phone_number", Value: l.PhoneNumber},
		}
	default:
		return []store.Column{
			{Name: "batch_no", Value: l.BatchNo},
			{Name: "first_name", Value: l.FirstName},
			{Name: "last_name", Value: l.LastName},
			{Name: "email", Value: l.Email},
		}
	}
}

// LeadFromCustomer derives the lead of a freshly migrated member customer.
// Customers without a first name produce no lead.
func LeadFromCustomer(c StoredCustomer, lk Lookups, d LeadDefaults) (Lead, bool) {
	if c.FirstName == nil {
		return Lead{}, false
	}
	id := c.ID
	status := StatusActive
	if c.Status != nil {
		status = *c.Status
	}
	src := d.Source
	return Lead{
		FirstName:     *c.FirstName,
		LastName:      c.LastName,
		Email:         c.Email,
		PhoneNumber:   c.ContactNumber,
		Nationality:   lk.CountryName(c.CountryID),
		Source:        &src,
		BatchNo:       d.BatchNo,
		CustomerID:    &id,
		Status:        status,
		CountryID:     c.CountryID,
		GymID:         d.GymID,
		CreatedBy:     c.CreatedBy,
		LastUpdatedBy: c.LastUpdatedBy,
		LeadCreatedBy: c.CreatedBy,
		DOB:           c.DOB,
		Gender:        LeadGender(c.Gender),
		CustomerCode:  c.CustomerCode,
		LeadStatus:    LeadStatusNewMember,
	}, true
}

// LeadFromImportedLead maps a legacy imported_leads row directly. The
// customer link is left for the reconciliation pass. Unknown lead types
// become NULL and the row is still kept.
func LeadFromImportedLead(il source.ImportedLead, v Variant, lk Lookups, d LeadDefaults) (Lead, bool) {
	name := v.Split.Split(il.Name)
	if name.First == nil {
		return Lead{}, false
	}
	country, found := lk.Countries.Lookup(il.Nationality)

	l := Lead{
		FirstName:   *name.First,
		LastName:    name.Last,
		Email:       trimmed(il.EmailAddress),
		PhoneNumber: NormalizePhone(dialCode(country, found), il.MobileNumber, v.Phone),
		Nationality: trimmed(il.Nationality),
		Source:      trimmed(il.LeadSource),
		BatchNo:     d.BatchNo,
		Status:      StatusActive,
		GymID:       d.GymID,
		Gender:      LeadGenderAny,
		LeadType:    TranslateLeadType(il.LeadType),
		LeadStatus:  LeadStatusHot,
	}
	if l.Source == nil && d.Source != "" {
		src := d.Source
		l.Source = &src
	}
	if found {
		l.CountryID = &country.ID
	}
	if id, ok := lk.Admins.Lookup(il.SalesPerson); ok {
		l.CreatedBy, l.LastUpdatedBy, l.LeadCreatedBy = &id, &id, &id
	}
	return l, true
}
