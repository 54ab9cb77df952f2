package storage

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload(userID int64) Payload {
	return Payload{
		UserID:         userID,
		FirstName:      "Amina",
		FullName:       "Amina Yusuf",
		Phone:          "+971501234567",
		CurrentCity:    "Casablanca",
		CitiesToVisit:  []string{"Mecca", "Medina"},
		OtherCities:    []string{"Amman"},
		Days:           "7",
		People:         "2",
		NeedTranslator: "Yes",
		TranslatorLanguage: "EN",
		StartDate:      "2026-09-15",
		ReferralSource: "Instagram",
		LangCode:       "en",
	}
}

func TestFileRequestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewFileRequestStore(t.TempDir())

	first, err := store.Add(ctx, samplePayload(1))
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	assert.Equal(t, StatusNew, first.Status)

	second, err := store.Add(ctx, samplePayload(2))
	require.NoError(t, err)

	// newest first
	list, err := store.List(ctx, StatusNew)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	got, ok, err := store.Get(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, samplePayload(1), got.Payload)

	_, ok, err = store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileRequestStoreMarkProcessed(t *testing.T) {
	ctx := context.Background()
	store := NewFileRequestStore(t.TempDir())

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

	// second press loses, attribution stays with the first admin
	done, err = store.MarkProcessed(ctx, req.ID, 100)
	require.NoError(t, err)
	assert.False(t, done)
	got, _, _ = store.Get(ctx, req.ID)
	assert.EqualValues(t, 99, got.ProcessedBy)

	done, err = store.MarkProcessed(ctx, "missing", 99)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestFileRequestStoreMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, requestsFile), []byte("{not json"), 0o644))

	store := NewFileRequestStore(dir)
	list, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFileSubmissionLogWritesHeaderOnce(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	log := NewFileSubmissionLog(dir)

	rec := Record{
		Timestamp:      time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		FullName:       "Amina Yusuf",
		Phone:          "+971501234567",
		CurrentCity:    "Casablanca",
		Cities:         []string{"Mecca", "Medina"},
		Days:           "7",
		People:         "2",
		NeedTranslator: "Yes",
		TranslatorLanguage: "EN",
		StartDate:      "2026-09-15",
		ReferralSource: "Instagram",
	}
	require.NoError(t, log.Append(ctx, rec))
	require.NoError(t, log.Append(ctx, rec))

	f, err := os.Open(filepath.Join(dir, submissionsFile))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "Amina Yusuf", rows[1][1])
	assert.Equal(t, "Mecca, Medina", rows[1][4])
	assert.Equal(t, "2026-09-01T12:00:00Z", rows[1][0])
}

func TestFileLanguageStore(t *testing.T) {
	ctx := context.Background()
	store := NewFileLanguageStore(t.TempDir())

	_, ok, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, 42, "ru"))
	require.NoError(t, store.Set(ctx, 43, "de"))
	require.NoError(t, store.Set(ctx, 42, "en")) // overwrite

	lang, ok, err := store.Get(ctx, 42)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "en", lang)
}

func TestPayloadAllCities(t *testing.T) {
	p := samplePayload(1)
	assert.Equal(t, []string{"Mecca", "Medina", "Amman"}, p.AllCities())
}
