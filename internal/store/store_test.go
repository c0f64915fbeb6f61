package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/ivrstats/internal/model"
)

func TestInsertAndListRecords(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "nested", "calls.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	in := []model.Record{
		{ConsentResult: model.ConsentYes, TimeAttempted: "09:00:00+02:00", DateAttempted: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), DurationSeconds: 42.5},
		{ConsentResult: "no_consent", TimeAttempted: "bad", DurationSeconds: 0},
	}
	n, err := st.InsertRecords(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := st.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out, err := st.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[0].ConsentResult, out[0].ConsentResult)
	assert.Equal(t, in[0].TimeAttempted, out[0].TimeAttempted)
	assert.True(t, in[0].DateAttempted.Equal(out[0].DateAttempted))
	assert.Equal(t, 42.5, out[0].DurationSeconds)
	assert.True(t, out[1].DateAttempted.IsZero())
}

func TestInsertNoRecords(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "calls.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	n, err := st.InsertRecords(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpenReadOnlyDoesNotMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foreign.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE calls (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	st, err := OpenReadOnly(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	cols, err := st.Columns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cols)

	_, err = st.InsertRecords(context.Background(), []model.Record{{ConsentResult: model.ConsentYes}})
	assert.Error(t, err)
}

func TestOpenReadOnlyMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	_, err := OpenReadOnly(path)
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestColumns(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "calls.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	cols, err := st.Columns(context.Background())
	require.NoError(t, err)
	for _, col := range RequiredColumns {
		assert.Contains(t, cols, col)
	}
}
