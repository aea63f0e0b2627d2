package migration

import (
	"fmt"
	"time"

	"github.com/imtaco/gymmigrate/mapper"
	"github.com/imtaco/gymmigrate/source"
)

// Defaults are the run-level values stamped on migrated rows.
type Defaults struct {
	GymID      string
	AdminID    int64
	CountryID  string
	Currency   string
	LeadSource string
}

// Config holds all configuration for a migration run
type Config struct {
	Target   Target
	Variants []mapper.Variant
	Defaults Defaults

	// SkipProvision leaves the schema alone; the tables must exist.
	SkipProvision bool
	// SkipSeed leaves the reference rows alone.
	SkipSeed bool
	// IgnoreDuplicateSeeds tolerates duplicate-key failures while seeding.
	IgnoreDuplicateSeeds bool
	// DryRun runs every step in one transaction and rolls it back.
	DryRun bool

	NameMapper  mapper.NameMapper
	PriceParser mapper.PriceParser
	Now         func() time.Time
}

// Source describes where the legacy tables are read from.
type Source struct {
	DB      source.SourceDB
	ConnStr string
}

func (c *Config) applyDefaults() {
	if c.NameMapper == nil {
		c.NameMapper = mapper.NewDestinationNameMapper()
	}
	if c.PriceParser == nil {
		c.PriceParser = mapper.DelimitedPriceParser{}
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Target == TargetCustomers && len(c.Variants) == 0 {
		c.Variants = []mapper.Variant{mapper.VariantMember}
	}
	if c.Defaults.Currency == "" {
		c.Defaults.Currency = "AED"
	}
	if c.Defaults.LeadSource == "" {
		c.Defaults.LeadSource = "MIGRATION"
	}
}

func (c *Config) validate() error {
	if _, err := ParseTarget(string(c.Target)); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, v := range c.Variants {
		if seen[v.Name] {
			return fmt.Errorf("source variant %s listed twice", v.Name)
		}
		seen[v.Name] = true
	}
	if c.Defaults.GymID == "" {
		return fmt.Errorf("a default gym id is required")
	}
	if c.Target == TargetMemberships && c.Defaults.CountryID == "" {
		return fmt.Errorf("a default country id is required for payment plans")
	}
	return nil
}
