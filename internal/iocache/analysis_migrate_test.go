package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszwojcik89/worklog/schema"
)

// TestMigrateAnalysisNoneBackend rejects migrations for the none backend.
func TestMigrateAnalysisNoneBackend(t *testing.T) {
	err := MigrateAnalysis(schema.NoneBackend, "", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

// TestMigrateAnalysisSQLite applies and rolls back the schema on a fresh database.
func TestMigrateAnalysisSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "analysis.db")

	// Up to latest
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))

	// Idempotent re-run
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))

	// Tables are usable after migration
	store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	runID, err := store.BeginRun(time.Now().UTC(), "in.csv", "fp")
	require.NoError(t, err)
	assert.Positive(t, runID)
	require.NoError(t, store.Close())

	// All the way down
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 0))
}

// TestMigrateAnalysisUnsupportedBackend rejects unknown backends.
func TestMigrateAnalysisUnsupportedBackend(t *testing.T) {
	err := MigrateAnalysis(schema.DatabaseBackend("oracle"), "", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}
