package source

import (
	"context"
	"fmt"

	"github.com/imtaco/gymmigrate/store"
)

// Legacy table names. Their shape is owned by the legacy system.
const (
	TableMember        = "member"
	TableImportedLeads = "imported_leads"
	TableMembership    = "membership"
)

// Member is one row of the legacy member table.
type Member struct {
	Member         *string // full name
	Email          *string
	Phone          *string // local number without dial code
	Nationality    *string
	Gender         *string
	Status         *string
	BirthDay       *string // YYYY-MM-DD
	Sales          *string
	MembershipCode *string
}

var memberColumns = []string{
	"member", "email", "phone", "nationality", "gender", "status", "birthDay", "sales", "membershipCode",
}

// ImportedLead is one row of the legacy imported_leads table.
type ImportedLead struct {
	Name         *string
	EmailAddress *string
	MobileNumber *string
	Nationality  *string
	SalesPerson  *string
	LeadSource   *string
	LeadType     *string
}

var importedLeadColumns = []string{
	"name", "emailAddress", "mobileNumber", "nationality", "salesPerson", "leadSource", "leadType",
}

// Membership is one row of the legacy membership table.
type Membership struct {
	Membership *string
	Category   *string
	IsActive   *int64
	Period     *int64
	Prices     *string
	Type       *string
}

var membershipColumns = []string{
	"membership", "category", "isActive", "period", "prices", "type",
}

// ReadMembers loads every member row.
func ReadMembers(ctx context.Context, src SourceDB) ([]Member, error) {
	var out []Member
	err := readTable(ctx, src, TableMember, memberColumns, func(r store.Record) {
		out = append(out, Member{
			Member:         r.Text("member"),
			Email:          r.Text("email"),
			Phone:          r.Text("phone"),
			Nationality:    r.Text("nationality"),
			Gender:         r.Text("gender"),
			Status:         r.Text("status"),
			BirthDay:       store.AsDate(r["birthDay"]),
			Sales:          r.Text("sales"),
			MembershipCode: r.Text("membershipCode"),
		})
	})
	return out, err
}

// ReadImportedLeads loads every imported_leads row.
func ReadImportedLeads(ctx context.Context, src SourceDB) ([]ImportedLead, error) {
	var out []ImportedLead
	err := readTable(ctx, src, TableImportedLeads, importedLeadColumns, func(r store.Record) {
		out = append(out, ImportedLead{
			Name:         r.Text("name"),
			EmailAddress: r.Text("emailAddress"),
			MobileNumber: r.Text("mobileNumber"),
			Nationality:  r.Text("nationality"),
			SalesPerson:  r.Text("salesPerson"),
			LeadSource:   r.Text("leadSource"),
			LeadType:     r.Text("leadType"),
		})
	})
	return out, err
}

// ReadMemberships loads every membership row.
func ReadMemberships(ctx context.Context, src SourceDB) ([]Membership, error) {
	var out []Membership
	err := readTable(ctx, src, TableMembership, membershipColumns, func(r store.Record) {
		out = append(out, Membership{
			Membership: r.Text("membership"),
			Category:   r.Text("category"),
			IsActive:   r.Int("isActive"),
			Period:     r.Int("period"),
			Prices:     r.Text("prices"),
			Type:       r.Text("type"),
		})
	})
	return out, err
}

// readTable streams a legacy table through the source's value conversion.
func readTable(ctx context.Context, src SourceDB, table string, columns []string, fn func(store.Record)) error {
	rows, err := src.QueryRows(ctx, table, columns)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return fmt.Errorf("failed to get column types: %w", err)
	}

	values := make([]any, len(columns))
	valuePtrs := make([]any, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(valuePtrs...); err != nil {
			return fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		rec := make(store.Record, len(columns))
		for i, col := range columns {
			rec[col] = src.ConvertValue(values[i], colTypes[i].DatabaseTypeName())
		}
		fn(rec)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating %s rows: %w", table, err)
	}
	return nil
}
