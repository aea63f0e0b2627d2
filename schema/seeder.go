package schema

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/imtaco/gymmigrate/store"
)

// Default reference rows.
const (
	DefaultCountryID   = 1
	DefaultCountryName = "United Arab Emirates"
	DefaultDialCode    = "+971"
	DefaultCityName    = "Dubai"
	ImportAdminEmail   = "team.import@gmail.com"
	ImportAdminFirst   = "Import"
	ImportAdminLast    = "Team"
)

// Seeder inserts the reference rows that migrated customers point at.
type Seeder struct {
	q   store.Querier
	log logrus.FieldLogger

	// IgnoreDuplicates treats unique-key violations from an already
	// populated database as success.
	IgnoreDuplicates bool
}

// NewSeeder returns a seeder writing through q.
func NewSeeder(q store.Querier, log logrus.FieldLogger) *Seeder {
	return &Seeder{q: q, log: log}
}

type seedRow struct {
	table string
	row   []store.Column
	guard []store.Column
}

func referenceRows() []seedRow {
	return []seedRow{
		{
			table: Countries,
			row: []store.Column{
				{Name: "id", Value: DefaultCountryID},
				{Name: "name", Value: DefaultCountryName},
				{Name: "status", Value: "ACTIVE"},
				{Name: "iso_code", Value: "AE"},
				{Name: "dial_code", Value: DefaultDialCode},
				{Name: "flag_photo", Value: "https://gms-public-assets.s3-eu-west-1.amazonaws.com/flags/png250px/ae.png"},
				{Name: "vat", Value: 5},
				{Name: "service_phone_number", Value: DefaultDialCode},
				{Name: "time_zone_identifier", Value: "Asia/Dubai"},
				{Name: "vat_id", Value: "1SEDF"},
				{Name: "currency_name", Value: "AED"},
				{Name: "currency_code", Value: "AED"},
				{Name: "currency_symbol", Value: "AE"},
				{Name: "currency_decimal_place", Value: 4},
				{Name: "currency_loweset_denomination", Value: 0.1},
				{Name: "currency_sub_unit_name", Value: "Phil"},
			},
			guard: []store.Column{{Name: "id", Value: DefaultCountryID}},
		},
		{
			table: CountryCities,
			row: []store.Column{
				{Name: "name", Value: DefaultCityName},
				{Name: "country_id", Value: DefaultCountryID},
			},
			guard: []store.Column{
				{Name: "name", Value: DefaultCityName},
				{Name: "country_id", Value: DefaultCountryID},
			},
		},
		{
			table: Admins,
			row: []store.Column{
				{Name: "first_name", Value: ImportAdminFirst},
				{Name: "last_name", Value: ImportAdminLast},
				{Name: "email", Value: ImportAdminEmail},
				{Name: "status", Value: "ACTIVE"},
				{Name: "created_by", Value: 1},
				{Name: "last_updated_by", Value: 1},
			},
			guard: []store.Column{{Name: "email", Value: ImportAdminEmail}},
		},
	}
}

// SeedReferenceData inserts the default country, city and import admin.
// Rows that already exist are left alone. It returns the number of rows
// inserted.
func (s *Seeder) SeedReferenceData(ctx context.Context) (int64, error) {
	var inserted int64
	for _, r := range referenceRows() {
		n, err := store.InsertIfAbsent(ctx, s.q, r.table, r.row, r.guard)
		if err != nil {
			if s.IgnoreDuplicates && store.IsDuplicateKey(err) {
				s.log.WithError(err).WithField("table", r.table).Warn("Reference row already present, skipping")
				continue
			}
			return inserted, fmt.Errorf("failed to seed %s: %w", r.table, err)
		}
		inserted += n
	}

	s.log.WithField("rows", inserted).Info("Sample data inserted successfully")
	return inserted, nil
}
