package iocache

import (
	"time"

	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/lukaszwojcik89/worklog/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetReportStore implements the CacheManager interface.
func (m *MockCacheManager) GetReportStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetAnalysisStore implements the CacheManager interface.
func (m *MockCacheManager) GetAnalysisStore() contract.AnalysisStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.AnalysisStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	return args.Get(0).([]byte), args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// Clear implements the CacheStore interface.
func (m *MockCacheStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// MockAnalysisStore is a mock implementation of AnalysisStore for testing.
type MockAnalysisStore struct {
	mock.Mock
}

var _ contract.AnalysisStore = &MockAnalysisStore{} // Compile-time check

// BeginRun implements the AnalysisStore interface.
func (m *MockAnalysisStore) BeginRun(startTime time.Time, sourceFile, fingerprint string) (int64, error) {
	args := m.Called(startTime, sourceFile, fingerprint)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the AnalysisStore interface.
func (m *MockAnalysisStore) EndRun(runID int64, run schema.AnalysisRun) error {
	args := m.Called(runID, run)
	return args.Error(0)
}

// RecordPersonTotal implements the AnalysisStore interface.
func (m *MockAnalysisStore) RecordPersonTotal(runID int64, total schema.PersonRunTotal) error {
	args := m.Called(runID, total)
	return args.Error(0)
}

// ListRuns implements the AnalysisStore interface.
func (m *MockAnalysisStore) ListRuns(limit int) ([]schema.AnalysisRun, error) {
	args := m.Called(limit)
	runs, _ := args.Get(0).([]schema.AnalysisRun)
	return runs, args.Error(1)
}

// GetAllRuns implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllRuns() ([]schema.AnalysisRun, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.AnalysisRun)
	return runs, args.Error(1)
}

// GetAllPersonTotals implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllPersonTotals() ([]schema.PersonRunTotal, error) {
	args := m.Called()
	totals, _ := args.Get(0).([]schema.PersonRunTotal)
	return totals, args.Error(1)
}

// Close implements the AnalysisStore interface.
func (m *MockAnalysisStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetStatus() (schema.AnalysisStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.AnalysisStatus), args.Error(1)
}
