package core

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/lukaszwojcik89/worklog/internal/ingest"
	"github.com/lukaszwojcik89/worklog/schema"
)

// fakeStore is an in-memory CacheStore that counts operations.
type fakeStore struct {
	data     map[string][]byte
	versions map[string]int
	stamps   map[string]int64
	sets     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		data:     make(map[string][]byte),
		versions: make(map[string]int),
		stamps:   make(map[string]int64),
	}
}

func (f *fakeStore) Get(key string) ([]byte, int, int64, error) {
	value, ok := f.data[key]
	if !ok {
		return nil, 0, 0, sql.ErrNoRows
	}
	return value, f.versions[key], f.stamps[key], nil
}

func (f *fakeStore) Set(key string, value []byte, version int, ts int64) error {
	f.data[key] = value
	f.versions[key] = version
	f.stamps[key] = ts
	f.sets++
	return nil
}

func (f *fakeStore) Clear() error                           { f.data = map[string][]byte{}; return nil }
func (f *fakeStore) GetStatus() (schema.CacheStatus, error) { return schema.CacheStatus{}, nil }
func (f *fakeStore) Close() error                           { return nil }

type fakeManager struct{ store contract.CacheStore }

func (f *fakeManager) GetReportStore() contract.CacheStore      { return f.store }
func (f *fakeManager) GetAnalysisStore() contract.AnalysisStore { return nil }

func sourceFromCSV(t *testing.T, csv string) *ingest.Source {
	t.Helper()
	src, err := ingest.ReadBytes([]byte(csv), "worklogs.csv", false)
	require.NoError(t, err)
	return src
}

const cachingCSV = `Author,Issue Key,Issue Summary,Start Date,Time Spent,Procent pracy twórczej
Jan Kowalski,PROJ-1,Fix login,2026-01-15,10:00,90
Jan Kowalski,PROJ-1,Fix login,2026-01-16,2:00,90
Anna Nowak,PROJ-2,Implement export,2026-01-16,3:00,50
`

// TestCachedAggregateHit computes once and serves the identical result from
// cache on the second call.
func TestCachedAggregateHit(t *testing.T) {
	src := sourceFromCSV(t, cachingCSV)
	cfg := &contract.Config{}
	store := newFakeStore()
	mgr := &fakeManager{store: store}

	first, err := cachedAggregate(src, cfg, mgr)
	require.NoError(t, err)
	assert.Equal(t, 1, store.sets, "first call should populate the cache")

	second, err := cachedAggregate(src, cfg, mgr)
	require.NoError(t, err)
	assert.Equal(t, 1, store.sets, "second call should not recompute")
	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, first.Report.Accepted, second.Report.Accepted)
}

// TestCachedAggregateNoStore falls back to direct computation.
func TestCachedAggregateNoStore(t *testing.T) {
	src := sourceFromCSV(t, cachingCSV)

	output, err := cachedAggregate(src, &contract.Config{}, &fakeManager{})
	require.NoError(t, err)
	require.Len(t, output.Rows, 2)
	assert.Equal(t, "Anna Nowak", output.Rows[0].Person)
	assert.InDelta(t, 12.0, output.Rows[1].TotalHours, 1e-9, "repeated entries merge")
}

// TestCachedAggregateStale recomputes past the staleness horizon or on a
// version bump.
func TestCachedAggregateStale(t *testing.T) {
	src := sourceFromCSV(t, cachingCSV)
	cfg := &contract.Config{}
	store := newFakeStore()
	mgr := &fakeManager{store: store}

	_, err := cachedAggregate(src, cfg, mgr)
	require.NoError(t, err)

	// Age the entry past the 7-day horizon
	key := generateCacheKey(src, cfg)
	store.stamps[key] = time.Now().Add(-8 * 24 * time.Hour).Unix()

	_, err = cachedAggregate(src, cfg, mgr)
	require.NoError(t, err)
	assert.Equal(t, 2, store.sets, "stale entry should be recomputed")

	// Old schema version is also a miss
	store.versions[key] = currentCacheVersion - 1
	_, err = cachedAggregate(src, cfg, mgr)
	require.NoError(t, err)
	assert.Equal(t, 3, store.sets, "version mismatch should be recomputed")
}

// TestCacheKeyDistinguishesInputs changes with content and legacy flag.
func TestCacheKeyDistinguishesInputs(t *testing.T) {
	src := sourceFromCSV(t, cachingCSV)
	other := sourceFromCSV(t, cachingCSV+"Anna Nowak,PROJ-3,Docs,2026-01-17,1:00,\n")

	plain := &contract.Config{}
	legacy := &contract.Config{LegacyFormat: true}

	assert.NotEqual(t, generateCacheKey(src, plain), generateCacheKey(other, plain))
	assert.NotEqual(t, generateCacheKey(src, plain), generateCacheKey(src, legacy))
	assert.Equal(t, generateCacheKey(src, plain), generateCacheKey(src, plain))
}

// TestCachedAggregateEmptyInput propagates ErrEmptyInput with the report.
func TestCachedAggregateEmptyInput(t *testing.T) {
	src := sourceFromCSV(t, "Author,Issue Key,Time Spent\nJan,PROJ-1,bogus\n")
	store := newFakeStore()

	output, err := cachedAggregate(src, &contract.Config{}, &fakeManager{store: store})
	require.ErrorIs(t, err, schema.ErrEmptyInput)
	require.NotNil(t, output.Report)
	assert.Len(t, output.Report.Rejects, 1)
	assert.Zero(t, store.sets, "failed runs are never cached")
}
