package table

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/ama-bakery/pos/internal/database"
	"github.com/ama-bakery/pos/internal/entity"
)

// The stubs below emulate a driver with MySQL's default changed-rows
// semantics: every UPDATE reports zero affected rows, as happens when the new
// value equals the stored one. The repository must not read that as a missing
// row.

type changedRowsConn struct {
	exists bool
}

func (c *changedRowsConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *changedRowsConn) Close() error { return nil }

func (c *changedRowsConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

func (c *changedRowsConn) ExecContext(context.Context, string, []driver.NamedValue) (driver.Result, error) {
	return zeroRowsResult{}, nil
}

func (c *changedRowsConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	if !strings.Contains(query, "EXISTS") {
		return nil, errors.New("unexpected query: " + query)
	}
	var v int64
	if c.exists {
		v = 1
	}
	return &singleValueRows{value: v}, nil
}

type zeroRowsResult struct{}

func (zeroRowsResult) LastInsertId() (int64, error) { return 0, nil }
func (zeroRowsResult) RowsAffected() (int64, error) { return 0, nil }

type singleValueRows struct {
	value int64
	done  bool
}

func (r *singleValueRows) Columns() []string { return []string{"exists"} }
func (r *singleValueRows) Close() error      { return nil }

func (r *singleValueRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true
	dest[0] = r.value
	return nil
}

type stubConnector struct {
	conn driver.Conn
}

func (c stubConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c stubConnector) Driver() driver.Driver                        { return stubDriver{} }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("use the connector")
}

func newChangedRowsRepo(exists bool) *Repository {
	db := bun.NewDB(sql.OpenDB(stubConnector{conn: &changedRowsConn{exists: exists}}), sqlitedialect.New())
	return NewRepository(&database.Connections{Writer: db, Reader: db})
}

func TestUpdateStatusSameValueIsNotAMiss(t *testing.T) {
	repo := newChangedRowsRepo(true)

	err := repo.UpdateStatus(context.Background(), nil, 3, entity.TableOccupied)
	require.NoError(t, err)
}

func TestUpdateStatusMissingTable(t *testing.T) {
	repo := newChangedRowsRepo(false)

	err := repo.UpdateStatus(context.Background(), nil, 999, entity.TableAvailable)
	assert.ErrorIs(t, err, ErrNotFound)
}
