// Package schema has configs, models and shared helpers for all parts of worklog.
package schema

import "time"

// RawEntry is one row as read from a worklog export before any validation.
// Every field is kept as raw text; the normalizer decides what survives.
type RawEntry struct {
	Author      string // Person who logged the time
	IssueKey    string // Task identifier, e.g. "PROJ-123"
	IssueSum    string // Task summary text
	StartDate   string // Date the work was logged on
	TimeSpent   string // Logged time, usually "HH:MM"
	CreativePct string // Creative work percentage, numeric or "90%"
	IssueType   string // Story, Bug, Task, ...
	IssueStatus string // Workflow status at export time
	Components  string // Optional component/module annotation
	Line        int    // 1-based source line, for reject reporting
}

// Entry is the canonical, validated form of a single worklog row.
// Entries are created once during normalization and never mutated.
type Entry struct {
	Person     string    // Trimmed, encoding-repaired author name
	TaskKey    string    // Task identifier
	TaskSum    string    // Task summary text
	Date       time.Time // Calendar date of the logged work (zero for legacy rows)
	Month      string    // "YYYY-MM" derived from Date, "" when Date is zero
	Hours      float64   // Non-negative, parsed from TimeSpent
	Pct        float64   // Creative percentage in [0,100], valid when HasPct
	HasPct     bool      // Whether a creative percentage was recorded
	TaskType   string
	TaskStatus string
}

// CreativeHours returns hours × pct/100 for this entry (0 without a pct).
func (e Entry) CreativeHours() float64 {
	if !e.HasPct {
		return 0
	}
	return e.Hours * e.Pct / 100
}

// AggregateRow is the per-(person, task key) rollup of worklog entries.
// The composite key is load-bearing: grouping by task key alone collapses
// rows from different authors sharing a task and silently drops their hours.
type AggregateRow struct {
	Person        string
	TaskKey       string
	TaskSum       string  // Most frequent non-empty summary in the group
	TotalHours    float64 // Σ hours over the group's entries
	WeightedPct   float64 // Hours-weighted average creative pct, valid when HasPct
	HasPct        bool
	CreativeHours float64 // TotalHours × WeightedPct/100
	CreativeScore float64 // CreativeHours × WeightedPct/100
	EntryCount    int
	TaskType      string
	TaskStatus    string
	FirstDate     time.Time
	LastDate      time.Time
	Category      TaskCategory // Derived annotation, assigned after aggregation
}

// RejectReason classifies why a raw row was excluded during normalization.
type RejectReason string

// All reject reasons.
const (
	RejectBadTime      RejectReason = "bad_time"      // Time Spent failed to parse
	RejectBadPct       RejectReason = "bad_pct"       // Creative percentage out of range or malformed
	RejectBadDate      RejectReason = "bad_date"      // Start Date failed to parse
	RejectMissingField RejectReason = "missing_field" // Person or task key absent
)

// Reject records a single excluded raw row.
type Reject struct {
	Line   int
	Reason RejectReason
	Detail string
}

// RejectReport accumulates excluded rows alongside an accepted sequence.
// A single malformed row never aborts processing of the rest of the file.
type RejectReport struct {
	Accepted int
	Rejects  []Reject
}

// Add appends one reject to the report.
func (r *RejectReport) Add(line int, reason RejectReason, detail string) {
	r.Rejects = append(r.Rejects, Reject{Line: line, Reason: reason, Detail: detail})
}

// Counts returns the number of rejects per reason.
func (r *RejectReport) Counts() map[RejectReason]int {
	counts := make(map[RejectReason]int, len(r.Rejects))
	for _, rej := range r.Rejects {
		counts[rej.Reason]++
	}
	return counts
}

// CategoryBreakdown is the dataset-wide hours rollup for one task category.
type CategoryBreakdown struct {
	Category      TaskCategory
	TaskCount     int     // Number of aggregate rows in the category
	Hours         float64 // Σ hours over those rows
	CreativeHours float64
	Share         float64 // Percent of all logged hours
}

// PersonStats is the per-person productivity summary.
type PersonStats struct {
	Person        string
	TaskCount     int     // Number of (person, task) aggregate rows
	TotalHours    float64 // All logged hours
	CreativeHours float64 // Σ creative hours over all rows
	AvgPct        float64 // Hours-weighted average pct over rows with data, valid when HasPct
	HasPct        bool
	Coverage      float64 // Percent of rows that carry a creative pct
	CreativeScore float64 // Σ per-row creative scores
	TopTask       AggregateRow
	HasTopTask    bool
	TopByScore    bool // TopTask chosen by score; false means longest-task fallback
}
