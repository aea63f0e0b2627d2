package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockGateway(t *testing.T) (*Gateway, sqlmock.Sqlmock, *test.Hook) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger, hook := test.NewNullLogger()
	return New(db, MySQL, logger), mock, hook
}

func TestExec(t *testing.T) {
	gw, mock, hook := newMockGateway(t)
	ctx := context.Background()

	mock.ExpectExec("UPDATE leads").WithArgs("x").WillReturnResult(sqlmock.NewResult(0, 3))
	n, err := gw.Exec(ctx, "UPDATE leads SET gym_id = ?", "x")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	mock.ExpectExec("DELETE").WillReturnError(fmt.Errorf("boom"))
	_, err = gw.Exec(ctx, "DELETE FROM leads")
	require.Error(t, err)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "DELETE FROM leads", hook.LastEntry().Data["statement"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryNormalizesBytes(t *testing.T) {
	gw, mock, _ := newMockGateway(t)

	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow(int64(1), []byte("United Arab Emirates")).
		AddRow(int64(2), nil)
	mock.ExpectQuery("SELECT id, name FROM countries").WillReturnRows(rows)

	rs, err := gw.Query(context.Background(), "SELECT id, name FROM countries")
	require.NoError(t, err)
	require.Equal(t, 2, rs.Len())
	assert.Equal(t, []string{"id", "name"}, rs.Columns)
	assert.Equal(t, "United Arab Emirates", rs.Rows[0][1])

	rec := rs.Record(1)
	assert.Nil(t, rec.Text("name"))
	assert.Equal(t, int64(2), *rec.Int("id"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commit on success", func(t *testing.T) {
		gw, mock, _ := newMockGateway(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO customers").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := gw.WithTransaction(ctx, func(ctx context.Context, q Querier) error {
			_, err := q.Exec(ctx, "INSERT INTO customers (first_name) VALUES (?)", "Jane")
			return err
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback and return the original error", func(t *testing.T) {
		gw, mock, _ := newMockGateway(t)
		cause := errors.New("constraint violated")
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO leads").WillReturnError(cause)
		mock.ExpectRollback()

		err := gw.WithTransaction(ctx, func(ctx context.Context, q Querier) error {
			_, err := q.Exec(ctx, "INSERT INTO leads (first_name) VALUES (?)", "Jane")
			return err
		})
		assert.ErrorIs(t, err, cause)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on panic", func(t *testing.T) {
		gw, mock, _ := newMockGateway(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.PanicsWithValue(t, "kaboom", func() {
			_ = gw.WithTransaction(ctx, func(ctx context.Context, q Querier) error {
				panic("kaboom")
			})
		})
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure is a connectivity error", func(t *testing.T) {
		gw, mock, _ := newMockGateway(t)
		mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		err := gw.WithTransaction(ctx, func(ctx context.Context, q Querier) error {
			t.Fatal("unit of work must not run")
			return nil
		})
		assert.ErrorIs(t, err, ErrConnectivity)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInsertIfAbsent(t *testing.T) {
	gw, mock, _ := newMockGateway(t)

	stmt := "INSERT INTO `customers` (`first_name`, `contact_number`) SELECT ?, ? FROM DUAL " +
		"WHERE NOT EXISTS (SELECT 1 FROM `customers` WHERE `contact_number` <=> ?)"
	mock.ExpectExec(regexp.QuoteMeta(stmt)).
		WithArgs("Jane", "+971501234567", "+971501234567").
		WillReturnResult(sqlmock.NewResult(7, 1))

	n, err := InsertIfAbsent(context.Background(), gw, "customers",
		[]Column{{"first_name", "Jane"}, {"contact_number", "+971501234567"}},
		[]Column{{"contact_number", "+971501234567"}},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildInsertIfAbsentDialects(t *testing.T) {
	row := []Column{{"name", "Gold"}}
	guard := []Column{{"name", "Gold"}}

	tests := []struct {
		dialect Dialect
		want    string
	}{
		{SQLite, `INSERT INTO "t" ("name") SELECT ? WHERE NOT EXISTS (SELECT 1 FROM "t" WHERE "name" IS ?)`},
		{Postgres, `INSERT INTO "t" ("name") SELECT $1 WHERE NOT EXISTS (SELECT 1 FROM "t" WHERE "name" IS NOT DISTINCT FROM $2)`},
		{MSSQL, `INSERT INTO [t] ([name]) SELECT @p1 WHERE NOT EXISTS (SELECT 1 FROM [t] WHERE ([name] = @p2 OR ([name] IS NULL AND @p2 IS NULL)))`},
	}
	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			stmt, args := BuildInsertIfAbsent(tt.dialect, "t", row, guard)
			assert.Equal(t, tt.want, stmt)
			assert.Equal(t, []any{"Gold", "Gold"}, args)
		})
	}

	stmt, args := BuildInsertIfAbsent(MySQL, "t", row, nil)
	assert.Equal(t, "INSERT INTO `t` (`name`) SELECT ?", stmt)
	assert.Len(t, args, 1)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, IsDuplicateKey(fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})))
	assert.False(t, IsDuplicateKey(&mysql.MySQLError{Number: 1146, Message: "Table doesn't exist"}))
	assert.False(t, IsDuplicateKey(errors.New("Duplicate entry")))
	assert.False(t, IsDuplicateKey(nil))
}

func TestParseDialect(t *testing.T) {
	for in, want := range map[string]Dialect{
		"mariadb":   MySQL,
		"MySQL":     MySQL,
		"sqlite3":   SQLite,
		"postgres":  Postgres,
		"sqlserver": MSSQL,
	} {
		got, err := ParseDialect(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDialect("oracle")
	assert.Error(t, err)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "`batch``no`", MySQL.Quote("batch`no"))
	assert.Equal(t, `"batchNo"`, Postgres.Quote("batchNo"))
	assert.Equal(t, "[member]", MSSQL.Quote("member"))
	assert.Equal(t, `"leads"`, SQLite.Quote("leads"))
}

func TestConfigDataSourceName(t *testing.T) {
	d, dsn, err := Config{Driver: "mysql", Host: "127.0.0.1", Port: 3306, User: "root", Password: "password", Database: "importedData"}.DataSourceName()
	require.NoError(t, err)
	assert.Equal(t, MySQL, d)
	assert.Contains(t, dsn, "root:password@tcp(127.0.0.1:3306)/importedData")
	assert.Contains(t, dsn, "parseTime=true")

	_, _, err = Config{Driver: "sqlite"}.DataSourceName()
	assert.Error(t, err)

	d, dsn, err = Config{Driver: "sqlite3", Path: "/tmp/rehearsal.db"}.DataSourceName()
	require.NoError(t, err)
	assert.Equal(t, SQLite, d)
	assert.Equal(t, "/tmp/rehearsal.db?_pragma=foreign_keys(1)", dsn)

	_, _, err = Config{Driver: "postgres", Host: "db"}.DataSourceName()
	assert.Error(t, err)
}

func TestAsDate(t *testing.T) {
	assert.Equal(t, "1990-05-01", *AsDate("1990-05-01 00:00:00"))
	assert.Equal(t, "1990-05-01", *AsDate("1990-05-01"))
	assert.Nil(t, AsDate(""))
	assert.Nil(t, AsDate(nil))
}
