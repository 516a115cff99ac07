// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/lukaszwojcik89/worklog/schema"
)

// CacheManager defines the interface for managing persistence stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetReportStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cached report storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	Clear() error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking pipeline runs and storing
// per-person rollups.
type AnalysisStore interface {
	// BeginRun creates a new analysis run and returns its unique ID
	BeginRun(startTime time.Time, sourceFile, fingerprint string) (int64, error)

	// EndRun updates the analysis run with completion data
	EndRun(runID int64, run schema.AnalysisRun) error

	// RecordPersonTotal stores one person's rollup for a run
	RecordPersonTotal(runID int64, total schema.PersonRunTotal) error

	// ListRuns returns the most recent runs, newest first
	ListRuns(limit int) ([]schema.AnalysisRun, error)

	// GetAllRuns retrieves every recorded run, oldest first
	GetAllRuns() ([]schema.AnalysisRun, error)

	// GetAllPersonTotals retrieves every stored person rollup, ordered by run
	GetAllPersonTotals() ([]schema.PersonRunTotal, error)

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// Close closes the underlying connection
	Close() error
}
