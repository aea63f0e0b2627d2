package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/imtaco/gymmigrate/mapper"
	"github.com/imtaco/gymmigrate/migration"
	"github.com/imtaco/gymmigrate/store"
)

// Source types. "destination" reads the legacy tables from the destination
// database itself.
const (
	sourceDestination = "destination"
	sourceMySQL       = "mysql"
	sourcePostgres    = "postgres"
	sourceMSSQL       = "mssql"
)

// VariantOverride replaces parts of a built-in variant's rules.
type VariantOverride struct {
	Split  string `mapstructure:"split"`
	Phone  string `mapstructure:"phone"`
	Gender string `mapstructure:"gender"`
}

// Config holds all application configuration
type Config struct {
	Destination struct {
		Driver       string `mapstructure:"driver"`
		Host         string `mapstructure:"host"`
		Port         int    `mapstructure:"port"`
		User         string `mapstructure:"user"`
		Password     string `mapstructure:"password"`
		Name         string `mapstructure:"name"`
		Path         string `mapstructure:"path"`
		DSN          string `mapstructure:"dsn"`
		MaxOpenConns int    `mapstructure:"max_open_conns"`
	} `mapstructure:"destination"`

	Source struct {
		Type    string `mapstructure:"type"`
		ConnStr string `mapstructure:"conn_str"`
	} `mapstructure:"source"`

	Batch struct {
		Tenant   string `mapstructure:"tenant"`
		Date     string `mapstructure:"date"`
		Sequence int    `mapstructure:"sequence"`
		// Tags override the derived tag of single entities.
		Tags migration.BatchTags `mapstructure:"tags"`
	} `mapstructure:"batch"`

	Defaults struct {
		GymID      string `mapstructure:"gym_id"`
		AdminID    int64  `mapstructure:"admin_id"`
		CountryID  string `mapstructure:"country_id"`
		Currency   string `mapstructure:"currency"`
		LeadSource string `mapstructure:"lead_source"`
	} `mapstructure:"defaults"`

	Variants         []string                   `mapstructure:"variants"`
	VariantOverrides map[string]VariantOverride `mapstructure:"variant_overrides"`

	Seed struct {
		Skip             bool `mapstructure:"skip"`
		IgnoreDuplicates bool `mapstructure:"ignore_duplicates"`
	} `mapstructure:"seed"`

	Inspect struct {
		Enabled bool     `mapstructure:"enabled"`
		Limit   int      `mapstructure:"limit"`
		Tables  []string `mapstructure:"tables"`
	} `mapstructure:"inspect"`

	SkipProvision bool   `mapstructure:"skip_provision"`
	DryRun        bool   `mapstructure:"dry_run"`
	LogLevel      string `mapstructure:"log_level"`
	LogFormat     string `mapstructure:"log_format"`
}

// LoadConfig loads configuration from environment variables and a config
// file. An empty path looks for gymmigrate.yaml in the working directory.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("destination.driver", "mysql")
	v.SetDefault("destination.host", "localhost")
	v.SetDefault("destination.port", 3306)
	v.SetDefault("destination.user", "")
	v.SetDefault("destination.password", "")
	v.SetDefault("destination.name", "")
	v.SetDefault("destination.path", "")
	v.SetDefault("destination.dsn", "")
	v.SetDefault("destination.max_open_conns", 4)
	v.SetDefault("source.type", sourceDestination)
	v.SetDefault("source.conn_str", "")
	v.SetDefault("batch.tenant", "")
	v.SetDefault("batch.date", "")
	v.SetDefault("batch.sequence", 1)
	v.SetDefault("defaults.gym_id", "")
	v.SetDefault("defaults.country_id", "")
	v.SetDefault("defaults.admin_id", 1)
	v.SetDefault("defaults.currency", "AED")
	v.SetDefault("defaults.lead_source", "MIGRATION")
	v.SetDefault("variants", []string{mapper.VariantMemberName})
	v.SetDefault("seed.skip", false)
	v.SetDefault("seed.ignore_duplicates", true)
	v.SetDefault("skip_provision", false)
	v.SetDefault("dry_run", false)
	v.SetDefault("inspect.enabled", false)
	v.SetDefault("inspect.limit", 10)
	v.SetDefault("log_level", "INFO")
	v.SetDefault("log_format", "text")

	// Enable environment variable reading
	v.SetEnvPrefix("GYMMIGRATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Map legacy environment variables
	v.BindEnv("destination.host", "GYMMIGRATE_DESTINATION_HOST", "DB_HOST")
	v.BindEnv("destination.port", "GYMMIGRATE_DESTINATION_PORT", "DB_PORT")
	v.BindEnv("destination.user", "GYMMIGRATE_DESTINATION_USER", "DB_USER")
	v.BindEnv("destination.password", "GYMMIGRATE_DESTINATION_PASSWORD", "DB_PASSWORD")
	v.BindEnv("destination.name", "GYMMIGRATE_DESTINATION_NAME", "DB_NAME")
	v.BindEnv("source.conn_str", "GYMMIGRATE_SOURCE_CONN_STR", "SOURCE_URL")
	v.BindEnv("log_level", "GYMMIGRATE_LOG_LEVEL", "LOG_LEVEL")
	v.BindEnv("variants", "GYMMIGRATE_VARIANTS")

	// Try to read config file (optional unless named explicitly)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("gymmigrate")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		_ = v.ReadInConfig()
	}

	// Unmarshal into config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Parse variants string if provided via environment
	if len(config.Variants) == 1 && strings.Contains(config.Variants[0], ",") {
		config.Variants = splitList(config.Variants[0])
	}

	return &config, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := store.ParseDialect(c.Destination.Driver); err != nil {
		return fmt.Errorf("invalid destination driver: %w", err)
	}
	switch c.Source.Type {
	case sourceDestination:
	case sourceMySQL, sourcePostgres, sourceMSSQL:
		if c.Source.ConnStr == "" {
			return fmt.Errorf("source connection string is required for %s (set SOURCE_URL or GYMMIGRATE_SOURCE_CONN_STR)", c.Source.Type)
		}
	default:
		return fmt.Errorf("unsupported source database type: %s", c.Source.Type)
	}
	if c.Batch.Sequence < 1 {
		return fmt.Errorf("batch sequence must be positive, got %d", c.Batch.Sequence)
	}
	if c.Inspect.Limit < 1 {
		c.Inspect.Limit = 10
	}
	return nil
}

// StoreConfig returns the destination connection settings.
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Driver:       c.Destination.Driver,
		Host:         c.Destination.Host,
		Port:         c.Destination.Port,
		User:         c.Destination.User,
		Password:     c.Destination.Password,
		Database:     c.Destination.Name,
		Path:         c.Destination.Path,
		DSN:          c.Destination.DSN,
		MaxOpenConns: c.Destination.MaxOpenConns,
	}
}

// BatchTags derives the tags from tenant, date and sequence and applies the
// explicit overrides. The date defaults to now.
func (c *Config) BatchTags(now time.Time) migration.BatchTags {
	derived := migration.BatchTags{}
	if c.Batch.Tenant != "" {
		date := c.Batch.Date
		if date == "" {
			date = migration.FormatBatchDate(now)
		}
		derived = migration.DeriveBatchTags(c.Batch.Tenant, date, c.Batch.Sequence)
	}
	return c.Batch.Tags.Merge(derived)
}

// ResolveVariants returns the configured variants with their overrides.
func (c *Config) ResolveVariants() ([]mapper.Variant, error) {
	out := make([]mapper.Variant, 0, len(c.Variants))
	for _, name := range c.Variants {
		v, err := mapper.LookupVariant(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		if o, ok := c.VariantOverrides[v.Name]; ok {
			if o.Split != "" {
				if v.Split, err = mapper.ParseSplitStrategy(o.Split); err != nil {
					return nil, fmt.Errorf("variant %s: %w", v.Name, err)
				}
			}
			if o.Phone != "" {
				if v.Phone, err = mapper.ParsePhoneMode(o.Phone); err != nil {
					return nil, fmt.Errorf("variant %s: %w", v.Name, err)
				}
			}
			if o.Gender != "" {
				if v.Gender, err = mapper.ParseGenderPolicy(o.Gender); err != nil {
					return nil, fmt.Errorf("variant %s: %w", v.Name, err)
				}
			}
		}
		out = append(out, v)
	}
	return out, nil
}

// MigrationConfig builds the orchestrator configuration for target.
func (c *Config) MigrationConfig(target migration.Target) (migration.Config, error) {
	cfg := migration.Config{
		Target: target,
		Defaults: migration.Defaults{
			GymID:      c.Defaults.GymID,
			AdminID:    c.Defaults.AdminID,
			CountryID:  c.Defaults.CountryID,
			Currency:   c.Defaults.Currency,
			LeadSource: c.Defaults.LeadSource,
		},
		SkipProvision:        c.SkipProvision,
		SkipSeed:             c.Seed.Skip,
		IgnoreDuplicateSeeds: c.Seed.IgnoreDuplicates,
		DryRun:               c.DryRun,
	}
	if target == migration.TargetCustomers {
		variants, err := c.ResolveVariants()
		if err != nil {
			return cfg, err
		}
		cfg.Variants = variants
	}
	return cfg, nil
}
