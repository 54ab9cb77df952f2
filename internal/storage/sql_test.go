package storage

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := Migrations.ReadFile("migrations/0001_init.up.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)
	return db
}

func TestSQLRequestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewSQLRequestStore(testDB(t))

	first, err := store.Add(ctx, samplePayload(1))
	require.NoError(t, err)
	second, err := store.Add(ctx, samplePayload(2))
	require.NoError(t, err)

	list, err := store.List(ctx, StatusNew)
	require.NoError(t, err)
	require.Len(t, list, 2)
	ids := []string{list[0].ID, list[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)

	got, ok, err := store.Get(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, samplePayload(1), got.Payload)
	assert.Equal(t, StatusNew, got.Status)

	_, ok, err = store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLRequestStoreMarkProcessed(t *testing.T) {
	ctx := context.Background()
	store := NewSQLRequestStore(testDB(t))

	req, err := store.Add(ctx, samplePayload(1))
	require.NoError(t, err)

	done, err := store.MarkProcessed(ctx, req.ID, 99)
	require.NoError(t, err)
	assert.True(t, done)

	got, ok, err := store.Get(ctx, req.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StatusProcessed, got.Status)
	assert.EqualValues(t, 99, got.ProcessedBy)
	require.NotNil(t, got.ProcessedAt)

	done, err = store.MarkProcessed(ctx, req.ID, 100)
	require.NoError(t, err)
	assert.False(t, done)

	done, err = store.MarkProcessed(ctx, "missing", 99)
	require.NoError(t, err)
	assert.False(t, done)

	// the processed request no longer shows in the new list
	list, err := store.List(ctx, StatusNew)
	require.NoError(t, err)
	assert.Empty(t, list)
	list, err = store.List(ctx, StatusProcessed)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSQLSubmissionLogAppend(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	log := NewSQLSubmissionLog(db)

	rec := Record{
		FullName:       "Amina Yusuf",
		Phone:          "+971501234567",
		Cities:         []string{"Mecca", "Medina"},
		Days:           "7",
		People:         "2",
		NeedTranslator: "Yes",
		ReferralSource: "Instagram",
	}
	require.NoError(t, log.Append(ctx, rec))
	require.NoError(t, log.Append(ctx, rec))

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM submissions`))
	assert.Equal(t, 2, count)

	var cities string
	require.NoError(t, db.Get(&cities, `SELECT cities FROM submissions LIMIT 1`))
	assert.Equal(t, "Mecca, Medina", cities)
}

func TestSQLLanguageStoreUpsert(t *testing.T) {
	ctx := context.Background()
	store := NewSQLLanguageStore(testDB(t))

	_, ok, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, 42, "ru"))
	require.NoError(t, store.Set(ctx, 42, "de"))

	lang, ok, err := store.Get(ctx, 42)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "de", lang)
}
