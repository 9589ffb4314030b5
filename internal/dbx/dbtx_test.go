package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:dbxtest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE t (k TEXT PRIMARY KEY, v TEXT)`)
	require.NoError(t, err)
	return db
}

func TestWithTx_Commits(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := WithTx(ctx, db, nil, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO t(k,v) VALUES('a','1')`)
		return err
	})
	require.NoError(t, err)

	var v string
	require.NoError(t, db.QueryRow(`SELECT v FROM t WHERE k='a'`).Scan(&v))
	require.Equal(t, "1", v)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := WithTx(ctx, db, nil, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO t(k,v) VALUES('a','1')`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n))
	require.Zero(t, n)
}
