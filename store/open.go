package store

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
)

// Config describes the destination database.
type Config struct {
	Driver       string
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	Path         string // sqlite file
	DSN          string // overrides every other field when set
	MaxOpenConns int
}

// DataSourceName builds the driver-specific connection string.
func (c Config) DataSourceName() (Dialect, string, error) {
	dialect, err := ParseDialect(c.Driver)
	if err != nil {
		return "", "", err
	}
	if c.DSN != "" {
		return dialect, c.DSN, nil
	}

	switch dialect {
	case MySQL:
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
		mc.DBName = c.Database
		mc.ParseTime = true
		mc.Loc = time.UTC
		return dialect, mc.FormatDSN(), nil
	case SQLite:
		if c.Path == "" {
			return "", "", fmt.Errorf("sqlite destination requires a path")
		}
		dsn := c.Path
		if !strings.Contains(dsn, "?") {
			dsn += "?_pragma=foreign_keys(1)"
		}
		return dialect, dsn, nil
	default:
		return "", "", fmt.Errorf("%s is not supported as a destination", dialect)
	}
}

// Open connects to the destination database and verifies the connection.
func Open(ctx context.Context, cfg Config, log logrus.FieldLogger) (*Gateway, error) {
	dialect, dsn, err := cfg.DataSourceName()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", ErrConnectivity, dialect, err)
	}

	maxOpen := cfg.MaxOpenConns
	if dialect == SQLite || maxOpen < 1 {
		// SQLite allows a single writer.
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)

	gw := New(db, dialect, log)
	if err := gw.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.WithFields(logrus.Fields{"driver": dialect, "max_open_conns": maxOpen}).Info("Connected to destination database")
	return gw, nil
}
