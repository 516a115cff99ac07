package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszwojcik89/worklog/schema"
)

func newSQLiteAnalysisStore(t *testing.T) *AnalysisStoreImpl {
	store, err := NewAnalysisStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "analysis.db"))
	require.NoError(t, err, "Failed to create SQLite analysis store")
	t.Cleanup(func() { _ = store.Close() })
	return store.(*AnalysisStoreImpl)
}

// TestAnalysisRunLifecycle records a run from begin to end and reads it back.
func TestAnalysisRunLifecycle(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	startTime := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun(startTime, "worklogs.csv", "abc123")
	require.NoError(t, err)
	assert.Positive(t, runID, "run ID should be assigned")

	run := schema.AnalysisRun{
		RunTime:      startTime,
		RowsRead:     100,
		RowsAccepted: 95,
		RowsRejected: 5,
		People:       9,
		TotalHours:   3433.6,
		DurationMs:   250,
	}
	require.NoError(t, store.EndRun(runID, run))

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, runID, got.RunID)
	assert.Equal(t, "worklogs.csv", got.SourceFile)
	assert.Equal(t, "abc123", got.Fingerprint)
	assert.Equal(t, 100, got.RowsRead)
	assert.Equal(t, 95, got.RowsAccepted)
	assert.Equal(t, 5, got.RowsRejected)
	assert.Equal(t, 9, got.People)
	assert.InDelta(t, 3433.6, got.TotalHours, 1e-9)
	assert.Equal(t, int64(250), got.DurationMs)
	assert.True(t, got.RunTime.Equal(startTime))
}

// TestAnalysisListRunsOrder returns the newest runs first and honors the limit.
func TestAnalysisListRunsOrder(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []int64
	for i := range 3 {
		id, err := store.BeginRun(base.Add(time.Duration(i)*time.Hour), "in.csv", "fp")
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := store.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].RunID)
	assert.Equal(t, ids[1], runs[1].RunID)

	all, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[0], all[0].RunID)
}

// TestAnalysisPersonTotals stores and retrieves per-person rollups.
func TestAnalysisPersonTotals(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	runID, err := store.BeginRun(time.Now(), "in.csv", "fp")
	require.NoError(t, err)

	totals := []schema.PersonRunTotal{
		{Person: "Anna Nowak", TotalHours: 408, CreativeHours: 200, CreativeScore: 120, TaskCount: 10},
		{Person: "Jan Kowalski", TotalHours: 408, CreativeHours: 150, CreativeScore: 90, TaskCount: 8},
	}
	for _, total := range totals {
		require.NoError(t, store.RecordPersonTotal(runID, total))
	}

	got, err := store.GetAllPersonTotals()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Anna Nowak", got[0].Person)
	assert.Equal(t, runID, got[0].RunID)
	assert.InDelta(t, 408.0, got[0].TotalHours, 1e-9)
	assert.Equal(t, 10, got[0].TaskCount)
}

// TestAnalysisStatus reports run counts and table sizes.
func TestAnalysisStatus(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)

	runID, err := store.BeginRun(time.Now(), "in.csv", "fp")
	require.NoError(t, err)
	require.NoError(t, store.RecordPersonTotal(runID, schema.PersonRunTotal{Person: "Jan"}))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.Equal(t, int64(1), status.TableSizes[analysisRunsTable])
	assert.Equal(t, int64(1), status.TableSizes[personTotalsTable])
}

// TestAnalysisNoneBackend verifies all operations are no-ops.
func TestAnalysisNoneBackend(t *testing.T) {
	store, err := NewAnalysisStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), "in.csv", "fp")
	assert.NoError(t, err)
	assert.Zero(t, runID)

	assert.NoError(t, store.EndRun(runID, schema.AnalysisRun{}))
	assert.NoError(t, store.RecordPersonTotal(runID, schema.PersonRunTotal{}))

	runs, err := store.ListRuns(10)
	assert.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

// TestClearAnalysis wipes both analysis tables.
func TestClearAnalysis(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "analysis.db")

	store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	runID, err := store.BeginRun(time.Now(), "in.csv", "fp")
	require.NoError(t, err)
	require.NoError(t, store.RecordPersonTotal(runID, schema.PersonRunTotal{Person: "Jan"}))
	require.NoError(t, store.Close())

	require.NoError(t, ClearAnalysis(schema.SQLiteBackend, dbPath))

	store, err = NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.TotalRuns)
	assert.Zero(t, status.TableSizes[personTotalsTable])
}
