package mapper

import (
	"strings"

	"github.com/imtaco/gymmigrate/source"
	"github.com/imtaco/gymmigrate/store"
)

// Customer is one row for the customers table. Column names are logical;
// the orchestrator maps them through a NameMapper before writing.
type Customer struct {
	FirstName     *string
	LastName      *string
	Email         *string
	ContactNumber *string
	CountryID     *int64
	Status        string
	Gender        *string
	DOB           *string
	BatchNo       string
	CreatedBy     *int64
	LastUpdatedBy *int64
	CustomerCode  *string
}

// Columns returns the values to insert.
func (c Customer) Columns() []store.Column {
	return []store.Column{
		{Name: "first_name", Value: c.FirstName},
		{Name: "last_name", Value: c.LastName},
		{Name: "email", Value: c.Email},
		{Name: "contact_number", Value: c.ContactNumber},
		{Name: "country_id", Value: c.CountryID},
		{Name: "status", Value: c.Status},
		{Name: "gender", Value: c.Gender},
		{Name: "dob", Value: c.DOB},
		{Name: "batch_no", Value: c.BatchNo},
		{Name: "created_by", Value: c.CreatedBy},
		{Name: "last_updated_by", Value: c.LastUpdatedBy},
		{Name: "customer_code", Value: c.CustomerCode},
	}
}

// Guard returns the dedup key. A known contact number identifies the person
// across every batch; without one the person is identified by name and
// email within the batch.
func (c Customer) Guard() []store.Column {
	if c.ContactNumber != nil {
		return []store.Column{{Name: "contact_number", Value: c.ContactNumber}}
	}
	return []store.Column{
		{Name: "batch_no", Value: c.BatchNo},
		{Name: "first_name", Value: c.FirstName},
		{Name: "last_name", Value: c.LastName},
		{Name: "email", Value: c.Email},
	}
}

// CustomerFromMember maps a legacy member row. ok is false when the row
// carries neither a name, an email nor a phone.
func CustomerFromMember(m source.Member, v Variant, lk Lookups, batch string) (Customer, bool) {
	name := v.Split.Split(m.Member)
	country, found := lk.Countries.Lookup(m.Nationality)

	c := Customer{
		FirstName:    name.First,
		LastName:     name.Last,
		Email:        trimmed(m.Email),
		Status:       NormalizeStatus(m.Status),
		Gender:       NormalizeGender(m.Gender, v.Gender),
		DOB:          m.BirthDay,
		BatchNo:      batch,
		CustomerCode: trimmed(m.MembershipCode),
	}
	c.ContactNumber = NormalizePhone(dialCode(country, found), m.Phone, v.Phone)
	if found {
		c.CountryID = &country.ID
	}
	if id, ok := lk.Admins.Lookup(m.Sales); ok {
		c.CreatedBy, c.LastUpdatedBy = &id, &id
	}
	return c, !c.empty()
}

// CustomerFromImportedLead maps a legacy imported_leads row to the customer
// it represents. Imported contacts are always ACTIVE.
func CustomerFromImportedLead(il source.ImportedLead, v Variant, lk Lookups, batch string) (Customer, bool) {
	name := v.Split.Split(il.Name)
	country, found := lk.Countries.Lookup(il.Nationality)

	c := Customer{
		FirstName: name.First,
		LastName:  name.Last,
		Email:     trimmed(il.EmailAddress),
		Status:    StatusActive,
		Gender:    NormalizeGender(nil, v.Gender),
		BatchNo:   batch,
	}
	c.ContactNumber = NormalizePhone(dialCode(country, found), il.MobileNumber, v.Phone)
	if found {
		c.CountryID = &country.ID
	}
	if id, ok := lk.Admins.Lookup(il.SalesPerson); ok {
		c.CreatedBy, c.LastUpdatedBy = &id, &id
	}
	return c, !c.empty()
}

func (c Customer) empty() bool {
	return c.FirstName == nil && c.Email == nil && c.ContactNumber == nil
}

// StoredCustomer is a customers row read back after insertion.
type StoredCustomer struct {
	ID            int64
	FirstName     *string
	LastName      *string
	Email         *string
	ContactNumber *string
	CountryID     *int64
	Status        *string
	Gender        *string
	DOB           *string
	CreatedBy     *int64
	LastUpdatedBy *int64
	CustomerCode  *string
}

// StoredCustomerColumns lists the columns StoredCustomerFromRecord reads.
var StoredCustomerColumns = []string{
	"id", "first_name", "last_name", "email", "contact_number", "country_id",
	"status", "gender", "dob", "created_by", "last_updated_by", "customer_code",
}

// StoredCustomerFromRecord decodes a customers row. ok is false when the id
// is missing.
func StoredCustomerFromRecord(r store.Record) (StoredCustomer, bool) {
	id := r.Int("id")
	if id == nil {
		return StoredCustomer{}, false
	}
	return StoredCustomer{
		ID:            *id,
		FirstName:     r.Text("first_name"),
		LastName:      r.Text("last_name"),
		Email:         r.Text("email"),
		ContactNumber: r.Text("contact_number"),
		CountryID:     r.Int("country_id"),
		Status:        r.Text("status"),
		Gender:        r.Text("gender"),
		DOB:           store.AsDate(r["dob"]),
		CreatedBy:     r.Int("created_by"),
		LastUpdatedBy: r.Int("last_updated_by"),
		CustomerCode:  r.Text("customer_code"),
	}, true
}

func dialCode(c Country, found bool) *string {
	if !found {
		return nil
	}
	return c.DialCode
}

// trimmed returns nil for nil or blank input and the trimmed text otherwise.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
