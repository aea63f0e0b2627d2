package inspect

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imtaco/gymmigrate/mapper"
	"github.com/imtaco/gymmigrate/source/sqldb"
	"github.com/imtaco/gymmigrate/store"
)

func newMockReporter(t *testing.T) (*Reporter, sqlmock.Sqlmock, *bytes.Buffer, *test.Hook) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger, hook := test.NewNullLogger()
	var out bytes.Buffer
	return NewReporter(store.New(db, store.MySQL, logger), nil, &out, logger), mock, &out, hook
}

func TestDumpRendersRows(t *testing.T) {
	r, mock, out, _ := newMockReporter(t)

	rows := sqlmock.NewRows([]string{"id", "first_name", "contact_number"}).
		AddRow(int64(1), "Jane", "+971501234567").
		AddRow(int64(2), "Omar", nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `customers` LIMIT 5")).WillReturnRows(rows)

	r.Dump(context.Background(), "customers", 5)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, out.String(), "Table customers (first 2 rows):")
	assert.Contains(t, out.String(), "first_name")
	assert.Contains(t, out.String(), "+971501234567")
	assert.Contains(t, out.String(), "NULL")
}

func TestDumpMapsLogicalNames(t *testing.T) {
	r, mock, out, _ := newMockReporter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `MembershipPlanGroup` LIMIT 20")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	r.Dump(context.Background(), mapper.TablePlanGroups, 0)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, "Table MembershipPlanGroup is empty.\n", out.String())
}

func TestDumpSwallowsFailures(t *testing.T) {
	r, mock, out, hook := newMockReporter(t)

	mock.ExpectQuery("SELECT").WillReturnError(fmt.Errorf("connection reset"))
	r.Dump(context.Background(), "leads", 3)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, out.String())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "Failed to inspect table", hook.LastEntry().Message)

	r.Dump(context.Background(), "mysql.user", 3)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, out.String())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestUnmatchedSales(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	gw, err := store.Open(ctx, store.Config{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "inspect.db")}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { gw.Close() })

	for _, stmt := range []string{
		`CREATE TABLE admins (id INTEGER PRIMARY KEY, first_name TEXT)`,
		`CREATE TABLE member (member TEXT, email TEXT, phone TEXT, nationality TEXT, gender TEXT,
			status TEXT, birthDay TEXT, sales TEXT, membershipCode TEXT)`,
		`CREATE TABLE imported_leads (name TEXT, emailAddress TEXT, mobileNumber TEXT, nationality TEXT,
			salesPerson TEXT, leadSource TEXT, leadType TEXT)`,
		`INSERT INTO admins (id, first_name) VALUES (1, 'Sara'), (2, 'Import')`,
		`INSERT INTO member (member, sales) VALUES ('a', 'sara k'), ('b', 'Khalid M'), ('c', NULL), ('d', 'khalid')`,
		`INSERT INTO imported_leads (name, salesPerson) VALUES ('e', 'Ahmed'), ('f', '  ')`,
	} {
		_, err := gw.Exec(ctx, stmt)
		require.NoError(t, err)
	}

	var out bytes.Buffer
	r := NewReporter(gw, nil, &out, logger)
	names, err := r.UnmatchedSales(ctx, sqldb.Attach(gw.DB(), store.SQLite))
	require.NoError(t, err)
	assert.Equal(t, []string{"Ahmed", "Khalid"}, names)

	r.PrintNames(names)
	r.PrintNames(nil)
	assert.Equal(t, "Ahmed\nKhalid\nEvery sales person matches an admin.\n", out.String())
}
