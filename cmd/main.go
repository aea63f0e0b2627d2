package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/imtaco/gymmigrate/inspect"
	"github.com/imtaco/gymmigrate/mapper"
	"github.com/imtaco/gymmigrate/migration"
	"github.com/imtaco/gymmigrate/source"
	"github.com/imtaco/gymmigrate/source/mssql"
	"github.com/imtaco/gymmigrate/source/sqldb"
	"github.com/imtaco/gymmigrate/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	cfg *Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var cfgFile string

	root := &cobra.Command{
		Use:           "gymmigrate",
		Short:         "Migrate legacy gym member data into the CRM and plan tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd, cfgFile)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./gymmigrate.yaml)")
	flags.String("tenant", "", "tenant prefix of the derived batch tags")
	flags.String("batch-date", "", "date part of the derived batch tags, e.g. 28APR25 (default today)")
	flags.Int("batch", 0, "batch sequence number")
	flags.Bool("dry-run", false, "run every step and roll everything back")
	flags.Bool("inspect", false, "print the migrated tables afterwards")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		a.customersCmd(),
		a.membershipsCmd(),
		a.inspectCmd(),
		a.unmatchedSalesCmd(),
	)
	return root
}

// load reads the configuration, applies command-line overrides and sets up
// logging.
func (a *app) load(cmd *cobra.Command, cfgFile string) error {
	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("tenant") {
		cfg.Batch.Tenant, _ = flags.GetString("tenant")
	}
	if flags.Changed("batch-date") {
		cfg.Batch.Date, _ = flags.GetString("batch-date")
	}
	if flags.Changed("batch") {
		cfg.Batch.Sequence, _ = flags.GetInt("batch")
	}
	if flags.Changed("dry-run") {
		cfg.DryRun, _ = flags.GetBool("dry-run")
	}
	if flags.Changed("inspect") {
		cfg.Inspect.Enabled, _ = flags.GetBool("inspect")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if f := flags.Lookup("variant"); f != nil && f.Changed {
		cfg.Variants, _ = flags.GetStringSlice("variant")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

func newLogger(level, format string) (*logrus.Logger, error) {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return log, nil
}

func (a *app) customersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Migrate legacy members and imported leads into customers and leads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.migrate(cmd, migration.TargetCustomers)
		},
	}
	cmd.Flags().StringSlice("variant", nil,
		fmt.Sprintf("source variants to migrate (%s, %s)", mapper.VariantMemberName, mapper.VariantImportedLeadsName))
	return cmd
}

func (a *app) membershipsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "memberships",
		Short: "Migrate legacy memberships into plan groups, plans and payment plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.migrate(cmd, migration.TargetMemberships)
		},
	}
}

func (a *app) migrate(cmd *cobra.Command, target migration.Target) error {
	ctx := cmd.Context()

	gw, err := store.Open(ctx, a.cfg.StoreConfig(), a.log)
	if err != nil {
		return err
	}
	defer gw.Close()

	mc, err := a.cfg.MigrationConfig(target)
	if err != nil {
		return err
	}
	o, err := migration.New(gw, mc, a.log)
	if err != nil {
		return err
	}

	report, err := o.RunBatch(ctx, a.cfg.BatchTags(time.Now()), migration.Source{
		DB:      a.sourceDB(gw),
		ConnStr: a.cfg.Source.ConnStr,
	})
	if report != nil {
		report.Print(cmd.OutOrStdout())
	}
	if err != nil {
		var stepErr *migration.StepError
		if errors.As(err, &stepErr) {
			a.log.WithFields(logrus.Fields{
				"step":      stepErr.Step,
				"entity":    stepErr.Entity,
				"state":     stepErr.State,
				"committed": stepErr.Committed,
				"duplicate": stepErr.Duplicate,
			}).Error("Batch stopped; earlier steps stay committed and a re-run skips their rows")
		}
		return err
	}

	if a.cfg.Inspect.Enabled {
		r := inspect.NewReporter(gw, nil, cmd.OutOrStdout(), a.log)
		for _, table := range inspectTables(target, a.cfg.Inspect.Tables) {
			r.Dump(ctx, table, a.cfg.Inspect.Limit)
		}
	}
	return nil
}

func inspectTables(target migration.Target, configured []string) []string {
	if len(configured) > 0 {
		return configured
	}
	if target == migration.TargetMemberships {
		return []string{mapper.TablePlanGroups, mapper.TablePlans, mapper.TablePaymentPlans}
	}
	return []string{mapper.TableCustomers, mapper.TableLeads}
}

func (a *app) inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [table...]",
		Short: "Print the first rows of destination tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gw, err := store.Open(ctx, a.cfg.StoreConfig(), a.log)
			if err != nil {
				return err
			}
			defer gw.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			if limit < 1 {
				limit = a.cfg.Inspect.Limit
			}
			tables := args
			if len(tables) == 0 {
				tables = mapper.PhysicalTables(mapper.NewDestinationNameMapper())
			}

			r := inspect.NewReporter(gw, nil, cmd.OutOrStdout(), a.log)
			for _, table := range tables {
				r.Dump(ctx, table, limit)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 0, "rows per table (default inspect.limit)")
	return cmd
}

func (a *app) unmatchedSalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unmatched-sales",
		Short: "List legacy sales people that match no admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gw, err := store.Open(ctx, a.cfg.StoreConfig(), a.log)
			if err != nil {
				return err
			}
			defer gw.Close()

			src := a.sourceDB(gw)
			if err := src.Connect(ctx, a.cfg.Source.ConnStr); err != nil {
				return fmt.Errorf("%w: failed to connect to source database: %w", store.ErrConnectivity, err)
			}
			defer src.Close()

			r := inspect.NewReporter(gw, nil, cmd.OutOrStdout(), a.log)
			names, err := r.UnmatchedSales(ctx, src)
			if err != nil {
				return err
			}
			r.PrintNames(names)
			return nil
		},
	}
}

// sourceDB picks the legacy reader for the configured source type.
func (a *app) sourceDB(gw *store.Gateway) source.SourceDB {
	switch a.cfg.Source.Type {
	case sourceMySQL:
		return sqldb.New(store.MySQL)
	case sourcePostgres:
		return sqldb.New(store.Postgres)
	case sourceMSSQL:
		return mssql.New()
	default:
		return sqldb.Attach(gw.DB(), gw.Dialect())
	}
}
