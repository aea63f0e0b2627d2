package schema

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/imtaco/gymmigrate/store"
)

// ErrSchema marks a failure to provision the destination schema. No data
// may be migrated after it.
var ErrSchema = errors.New("schema provisioning failed")

// Provisioner creates destination tables that do not exist yet.
type Provisioner struct {
	q   store.Querier
	log logrus.FieldLogger
}

// NewProvisioner returns a provisioner writing through q.
func NewProvisioner(q store.Querier, log logrus.FieldLogger) *Provisioner {
	return &Provisioner{q: q, log: log}
}

// EnsureSchema issues create-if-absent statements for tables, parents
// before children. Running it against a provisioned database changes
// nothing.
func (p *Provisioner) EnsureSchema(ctx context.Context, tables []Table) error {
	levels, err := TablesByDependencyLevel(tables)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}

	dialect := p.q.Dialect()
	p.log.Infof("Found %d dependency levels", len(levels))
	for i, level := range levels {
		p.log.Infof("Level %d: %s", i, strings.Join(tableNames(level), ", "))
	}

	for _, level := range levels {
		for _, table := range level {
			stmts, ok := table.DDL[dialect]
			if !ok {
				return fmt.Errorf("%w: no definition of %s for %s", ErrSchema, table.Name, dialect)
			}
			for _, stmt := range stmts {
				if _, err := p.q.Exec(ctx, stmt); err != nil {
					return fmt.Errorf("%w: failed to create %s: %w", ErrSchema, table.Name, err)
				}
			}
			p.log.WithField("table", table.Name).Debug("Table ready")
		}
	}

	p.log.WithField("tables", len(tables)).Info("Tables created successfully")
	return nil
}

func tableNames(tables []Table) []string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return names
}
