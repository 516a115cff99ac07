package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// TaskCategory represents the keyword-derived class of a task.
	TaskCategory string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All task categories, in classification order. The order is part of the
// contract: the first category whose keyword matches wins.
const (
	CategoryBug      TaskCategory = "Bug/Hotfix"
	CategoryReview   TaskCategory = "Code Review"
	CategoryTesting  TaskCategory = "Testing"
	CategoryDev      TaskCategory = "Development"
	CategoryAnalysis TaskCategory = "Analysis/Design"
	CategoryDevOps   TaskCategory = "DevOps/Infrastructure"
	CategoryTraining TaskCategory = "Training"
	CategoryAdmin    TaskCategory = "Administration/Support"
	CategoryMeetings TaskCategory = "Meetings"
	CategoryOther    TaskCategory = "Other"
)

// AllCategories lists every category in classification order, Other last.
var AllCategories = []TaskCategory{
	CategoryBug,
	CategoryReview,
	CategoryTesting,
	CategoryDev,
	CategoryAnalysis,
	CategoryDevOps,
	CategoryTraining,
	CategoryAdmin,
	CategoryMeetings,
	CategoryOther,
}

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Creative-percentage display bands. Only the rendering layer cares about
// these; core computations never branch on them.
const (
	PctBandLow  = 50.0 // pct <= 50 renders as the low band
	PctBandHigh = 80.0 // pct > 80 renders as the high band
)
