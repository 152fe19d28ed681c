package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/gig-conflicts/pkg/dbmetrics"
)

func newDB(t *testing.T) (*dbmetrics.DB, *TransactionManager) {
	t.Helper()

	raw, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "tx.db"))
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { raw.Close() })

	_, err = raw.Exec(`CREATE TABLE items (name TEXT NOT NULL)`)
	require.NoError(t, err)

	db := dbmetrics.Plain(raw)
	return db, NewTransactionManager(db)
}

func count(t *testing.T, db *dbmetrics.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM items`).Scan(&n))
	return n
}

func insert(ctx context.Context, db *dbmetrics.DB, name string) error {
	_, err := dbmetrics.GetExecutor(ctx, db).ExecContext(ctx, `INSERT INTO items (name) VALUES (?)`, name)
	return err
}

func TestDo_CommitAndRollback(t *testing.T) {
	db, tm := newDB(t)
	ctx := context.Background()

	err := tm.Do(ctx, func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return insert(ctx, db, "kept")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count(t, db))

	boom := errors.New("boom")
	err = tm.Do(ctx, func(ctx context.Context) error {
		require.NoError(t, insert(ctx, db, "dropped"))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, count(t, db))
}

func TestDo_JoinsOuterTransaction(t *testing.T) {
	db, tm := newDB(t)
	ctx := context.Background()

	err := tm.Do(ctx, func(outer context.Context) error {
		require.NoError(t, insert(outer, db, "outer"))
		return tm.Do(outer, func(inner context.Context) error {
			return insert(inner, db, "inner")
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count(t, db))
}

func TestDo_RollsBackOnPanic(t *testing.T) {
	db, tm := newDB(t)

	assert.Panics(t, func() {
		_ = tm.Do(context.Background(), func(ctx context.Context) error {
			_ = insert(ctx, db, "lost")
			panic("boom")
		})
	})
	assert.Equal(t, 0, count(t, db))
}
