package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/flowtests/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func tableOf(entries ...models.MetricEntry) models.MetricTable {
	return models.MetricTable(entries)
}

func TestNewStore(t *testing.T) {
	tests := []struct {
		name   string
		dbPath string
	}{
		{name: "in-memory database", dbPath: ":memory:"},
		{name: "creates parent directories", dbPath: filepath.Join(t.TempDir(), "nested", "history.db")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStore(tt.dbPath)
			require.NoError(t, err)
			defer store.Close()

			count, err := store.RunCount(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 0, count)
		})
	}
}

func TestRecordRunRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	metrics := models.NewMetrics()
	metrics.Set("Foo", tableOf(
		models.MetricEntry{Key: 32, Value: models.MetricTuple{1, 2, 3, 4}},
		models.MetricEntry{Key: 16, Value: models.MetricTuple{5, 6, 7, 8}},
	))
	metrics.Set("Bar", models.MetricTable{})

	runID, err := store.RecordRun(ctx, "flowtests.html", metrics)
	require.NoError(t, err)
	assert.Len(t, runID, 36)

	records, err := store.SubjectHistory(ctx, "Foo")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, runID, records[0].Run.ID)
	assert.Equal(t, "flowtests.html", records[0].Run.ReportPath)
	assert.Equal(t, tableOf(
		models.MetricEntry{Key: 32, Value: models.MetricTuple{1, 2, 3, 4}},
		models.MetricEntry{Key: 16, Value: models.MetricTuple{5, 6, 7, 8}},
	), records[0].Table)

	records, err = store.SubjectHistory(ctx, "Bar")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSubjectHistoryNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		store.now = func() time.Time { return at }

		metrics := models.NewMetrics()
		metrics.Set("Foo", tableOf(models.MetricEntry{Key: 16, Value: models.MetricTuple{float64(i), 0, 0, 0}}))
		id, err := store.RecordRun(ctx, "r.html", metrics)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	records, err := store.SubjectHistory(ctx, "Foo")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, ids[2], records[0].Run.ID)
	assert.Equal(t, ids[1], records[1].Run.ID)
	assert.Equal(t, ids[0], records[2].Run.ID)
	assert.Equal(t, 2.0, records[0].Table[0].Value[0])
	assert.True(t, records[0].Run.StartedAt.Equal(base.Add(2*time.Hour)))

	count, err := store.RunCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRecordRunNilMetrics(t *testing.T) {
	store := newTestStore(t)

	_, err := store.RecordRun(context.Background(), "r.html", nil)
	require.NoError(t, err)

	count, err := store.RunCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
