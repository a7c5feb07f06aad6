package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	database, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "gateway.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	_, err = database.Exec(`CREATE TABLE notes (id TEXT PRIMARY KEY, body TEXT NOT NULL)`)
	require.NoError(t, err)
	return NewGateway(database)
}

func TestGatewayExecAndSelect(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(t)

	affected, err := gw.Exec(ctx, `INSERT INTO notes (id, body) VALUES (?, ?)`, "a", "first")
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	var bodies []string
	require.NoError(t, gw.Select(ctx, &bodies, `SELECT body FROM notes WHERE id = ?`, "a"))
	assert.Equal(t, []string{"first"}, bodies)
}

func TestGatewayGetMissingRow(t *testing.T) {
	gw := newTestGateway(t)

	var body string
	err := gw.Get(context.Background(), &body, `SELECT body FROM notes WHERE id = ?`, "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.True(t, errors.Is(err, ErrOperationFailed))
}

func TestGatewayBatchRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(t)

	err := gw.Batch(ctx, []Statement{
		{Query: `INSERT INTO notes (id, body) VALUES (?, ?)`, Args: []interface{}{"a", "one"}},
		{Query: `INSERT INTO notes (id, body) VALUES (?, ?)`, Args: []interface{}{"a", "duplicate"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOperationFailed))

	var count int
	require.NoError(t, gw.Get(ctx, &count, `SELECT COUNT(*) FROM notes`))
	assert.Equal(t, 0, count)
}

func TestGatewayBatchCommits(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(t)

	require.NoError(t, gw.Batch(ctx, nil))
	require.NoError(t, gw.Batch(ctx, []Statement{
		{Query: `INSERT INTO notes (id, body) VALUES (?, ?)`, Args: []interface{}{"a", "one"}},
		{Query: `INSERT INTO notes (id, body) VALUES (?, ?)`, Args: []interface{}{"b", "two"}},
	}))

	var count int
	require.NoError(t, gw.Get(ctx, &count, `SELECT COUNT(*) FROM notes`))
	assert.Equal(t, 2, count)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	assert.Error(t, err)
}

var errNoRowCount = errors.New("row count unavailable")

// noRowCountConn executes every statement but cannot report affected rows.
type noRowCountConn struct{}

func (noRowCountConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("prepare unsupported") }
func (noRowCountConn) Close() error                        { return nil }
func (noRowCountConn) Begin() (driver.Tx, error)           { return nil, errors.New("tx unsupported") }

func (noRowCountConn) ExecContext(context.Context, string, []driver.NamedValue) (driver.Result, error) {
	return noRowCountResult{}, nil
}

type noRowCountResult struct{}

func (noRowCountResult) LastInsertId() (int64, error) { return 0, nil }
func (noRowCountResult) RowsAffected() (int64, error) { return 0, errNoRowCount }

type noRowCountConnector struct{}

func (noRowCountConnector) Connect(context.Context) (driver.Conn, error) { return noRowCountConn{}, nil }
func (noRowCountConnector) Driver() driver.Driver                        { return noRowCountDriver{} }

type noRowCountDriver struct{}

func (noRowCountDriver) Open(string) (driver.Conn, error) { return noRowCountConn{}, nil }

func TestGatewayExecReportsRowsAffectedFailure(t *testing.T) {
	database := sqlx.NewDb(sql.OpenDB(noRowCountConnector{}), "sqlite")
	t.Cleanup(func() { _ = database.Close() })

	affected, err := NewGateway(database).Exec(context.Background(), `UPDATE notes SET body = ? WHERE id = ?`, "x", "a")
	require.Error(t, err)
	assert.Zero(t, affected)
	assert.ErrorIs(t, err, ErrOperationFailed)
	assert.ErrorIs(t, err, errNoRowCount)
}
