package schema

import "time"

// CacheStatus holds status information about the aggregation cache store.
type CacheStatus struct {
	Backend         string
	Connected       bool
	TotalEntries    int64
	LastEntryTime   time.Time
	OldestEntryTime time.Time
	TableSizeBytes  int64
}

// AnalysisStatus holds status information about the analysis run store.
type AnalysisStatus struct {
	Backend       string
	Connected     bool
	TotalRuns     int64
	LastRunID     int64
	LastRunTime   time.Time
	OldestRunTime time.Time
	TableSizes    map[string]int64
}

// AnalysisRun is one recorded pipeline execution in the analysis store.
type AnalysisRun struct {
	RunID        int64
	RunTime      time.Time
	SourceFile   string
	Fingerprint  string // SHA-256 of the raw input bytes
	RowsRead     int
	RowsAccepted int
	RowsRejected int
	People       int
	TotalHours   float64
	DurationMs   int64
}

// PersonRunTotal is one person's rollup stored alongside an analysis run.
type PersonRunTotal struct {
	RunID         int64
	Person        string
	TotalHours    float64
	CreativeHours float64
	CreativeScore float64
	TaskCount     int
}
