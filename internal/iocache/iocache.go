// Package iocache is for caching worklog pipeline results and tracking runs.
package iocache

import (
	"sync"

	"github.com/lukaszwojcik89/worklog/internal/contract"
)

// CacheStoreManager manages the report cache and the analysis run store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	report       contract.CacheStore
	analysis     contract.AnalysisStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetReportStore returns the report CacheStore.
func (mgr *CacheStoreManager) GetReportStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.report
}

// GetAnalysisStore returns the analysis AnalysisStore.
func (mgr *CacheStoreManager) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}
