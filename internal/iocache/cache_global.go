package iocache

import (
	"fmt"
	"sync"

	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/lukaszwojcik89/worklog/schema"
)

// reportTable is the table holding cached report payloads.
const reportTable = "report_cache"

// Manager is the global cache manager instance.
var Manager = &CacheStoreManager{}

var (
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitCaching initializes the global persistence stores. Safe to call more
// than once; only the first call takes effect.
func InitCaching(cacheBackend schema.DatabaseBackend, cacheConnStr string, analysisBackend schema.DatabaseBackend, analysisConnStr string) error {
	var initErr error

	// An unset analysis backend means tracking is disabled
	if analysisBackend == "" {
		analysisBackend = schema.NoneBackend
	}

	initOnce.Do(func() {
		report, err := NewCacheStore(reportTable, cacheBackend, cacheConnStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize report cache: %w", err)
			return
		}

		analysis, err := NewAnalysisStore(analysisBackend, analysisConnStr)
		if err != nil {
			_ = report.Close()
			initErr = fmt.Errorf("failed to initialize analysis store: %w", err)
			return
		}

		Manager.Lock()
		Manager.report = report
		Manager.analysis = analysis
		Manager.Unlock()
	})

	return initErr
}

// CloseCaching closes all persistence stores. Safe to call more than once.
func CloseCaching() error {
	var closeErr error

	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()

		if Manager.report != nil {
			if err := Manager.report.Close(); err != nil {
				closeErr = fmt.Errorf("failed to close report cache: %w", err)
			}
			Manager.report = nil
		}
		if Manager.analysis != nil {
			if err := Manager.analysis.Close(); err != nil && closeErr == nil {
				closeErr = fmt.Errorf("failed to close analysis store: %w", err)
			}
			Manager.analysis = nil
		}
	})

	return closeErr
}

// ClearCache removes all cached report entries for the given backend.
func ClearCache(backend schema.DatabaseBackend, connStr string) error {
	if backend == schema.NoneBackend {
		return nil
	}

	store, err := NewCacheStore(reportTable, backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to open cache for clearing: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// ClearAnalysis removes all recorded runs and person totals for the given
// backend.
func ClearAnalysis(backend schema.DatabaseBackend, connStr string) error {
	if backend == schema.NoneBackend {
		return nil
	}

	store, err := NewAnalysisStore(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to open analysis store for clearing: %w", err)
	}
	defer func() { _ = store.Close() }()

	impl, ok := store.(*AnalysisStoreImpl)
	if !ok || impl.db == nil {
		return nil
	}

	for _, table := range []string{personTotalsTable, analysisRunsTable} {
		if err := clearSQLTable(impl, table); err != nil {
			return err
		}
	}
	return nil
}

// clearSQLTable deletes all rows from the given analysis table.
func clearSQLTable(impl *AnalysisStoreImpl, table string) error {
	query := fmt.Sprintf("DELETE FROM %s", quoteTableName(table, impl.backend))
	if _, err := impl.db.Exec(query); err != nil {
		return fmt.Errorf("failed to clear table %s: %w", table, err)
	}
	return nil
}

// GetDBFilePath returns the default SQLite cache database path.
func GetDBFilePath() string {
	return contract.GetCacheDBFilePath()
}

// GetAnalysisDBFilePath returns the default SQLite analysis database path.
func GetAnalysisDBFilePath() string {
	return contract.GetAnalysisDBFilePath()
}
