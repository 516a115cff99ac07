// Package parquet provides record types and writers for exporting worklog
// aggregates and analysis data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/lukaszwojcik89/worklog/schema"
	"github.com/parquet-go/parquet-go"
)

// AggregateRecord is one (person, task key) rollup row for Parquet export.
type AggregateRecord struct {
	Person      string `parquet:"person,snappy"`
	TaskKey     string `parquet:"task_key,snappy"`
	TaskSummary string `parquet:"task_summary,snappy"`

	TotalHours float64 `parquet:"total_hours,snappy"`

	// WeightedPct is the hours-weighted creative percentage (nullable when no
	// row in the group carried one)
	WeightedPct *float64 `parquet:"weighted_pct,optional,snappy"`

	CreativeHours float64 `parquet:"creative_hours,snappy"`
	CreativeScore float64 `parquet:"creative_score,snappy"`
	EntryCount    int32   `parquet:"entry_count,snappy"`
	TaskType      string  `parquet:"task_type,snappy"`
	TaskStatus    string  `parquet:"task_status,snappy"`

	// FirstDate and LastDate are nullable for legacy rows that carry no dates
	FirstDate *time.Time `parquet:"first_date,optional,snappy"`
	LastDate  *time.Time `parquet:"last_date,optional,snappy"`

	Category string `parquet:"category,snappy"`
}

// AnalysisRunRecord is one recorded pipeline run for Parquet export.
// This struct maps to the worklog_analysis_runs database table.
type AnalysisRunRecord struct {
	RunID        int64     `parquet:"run_id,snappy"`
	StartTime    time.Time `parquet:"start_time,snappy"`
	DurationMs   int64     `parquet:"run_duration_ms,snappy"`
	SourceFile   string    `parquet:"source_file,snappy"`
	Fingerprint  string    `parquet:"fingerprint,snappy"`
	RowsRead     int32     `parquet:"rows_read,snappy"`
	RowsAccepted int32     `parquet:"rows_accepted,snappy"`
	RowsRejected int32     `parquet:"rows_rejected,snappy"`
	People       int32     `parquet:"people,snappy"`
	TotalHours   float64   `parquet:"total_hours,snappy"`
}

// PersonTotalRecord is one per-person rollup stored alongside a run.
// This struct maps to the worklog_person_totals database table.
type PersonTotalRecord struct {
	RunID         int64   `parquet:"run_id,snappy"`
	Person        string  `parquet:"person,snappy"`
	TotalHours    float64 `parquet:"total_hours,snappy"`
	CreativeHours float64 `parquet:"creative_hours,snappy"`
	CreativeScore float64 `parquet:"creative_score,snappy"`
	TaskCount     int32   `parquet:"task_count,snappy"`
}

// writeRecords writes a slice of records to a Parquet file using struct
// schema inference from the record tags.
func writeRecords[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteAggregatesParquet writes aggregate rollup rows to a Parquet file.
func WriteAggregatesParquet(data []AggregateRecord, outputPath string) error {
	return writeRecords(data, outputPath)
}

// WriteAnalysisRunsParquet writes analysis run records to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRunRecord, outputPath string) error {
	return writeRecords(data, outputPath)
}

// WritePersonTotalsParquet writes person rollup records to a Parquet file.
func WritePersonTotalsParquet(data []PersonTotalRecord, outputPath string) error {
	return writeRecords(data, outputPath)
}

// ConvertAggregateRecords converts schema.AggregateRow to AggregateRecord for Parquet export.
func ConvertAggregateRecords(rows []schema.AggregateRow) []AggregateRecord {
	result := make([]AggregateRecord, len(rows))
	for i, row := range rows {
		record := AggregateRecord{
			Person:        row.Person,
			TaskKey:       row.TaskKey,
			TaskSummary:   row.TaskSum,
			TotalHours:    row.TotalHours,
			CreativeHours: row.CreativeHours,
			CreativeScore: row.CreativeScore,
			EntryCount:    int32(row.EntryCount),
			TaskType:      row.TaskType,
			TaskStatus:    row.TaskStatus,
			Category:      string(row.Category),
		}
		if row.HasPct {
			pct := row.WeightedPct
			record.WeightedPct = &pct
		}
		if !row.FirstDate.IsZero() {
			first := row.FirstDate
			record.FirstDate = &first
		}
		if !row.LastDate.IsZero() {
			last := row.LastDate
			record.LastDate = &last
		}
		result[i] = record
	}
	return result
}

// ConvertAnalysisRunRecords converts schema.AnalysisRun to AnalysisRunRecord for Parquet export.
func ConvertAnalysisRunRecords(runs []schema.AnalysisRun) []AnalysisRunRecord {
	result := make([]AnalysisRunRecord, len(runs))
	for i, run := range runs {
		result[i] = AnalysisRunRecord{
			RunID:        run.RunID,
			StartTime:    run.RunTime,
			DurationMs:   run.DurationMs,
			SourceFile:   run.SourceFile,
			Fingerprint:  run.Fingerprint,
			RowsRead:     int32(run.RowsRead),
			RowsAccepted: int32(run.RowsAccepted),
			RowsRejected: int32(run.RowsRejected),
			People:       int32(run.People),
			TotalHours:   run.TotalHours,
		}
	}
	return result
}

// ConvertPersonTotalRecords converts schema.PersonRunTotal to PersonTotalRecord for Parquet export.
func ConvertPersonTotalRecords(totals []schema.PersonRunTotal) []PersonTotalRecord {
	result := make([]PersonTotalRecord, len(totals))
	for i, total := range totals {
		result[i] = PersonTotalRecord{
			RunID:         total.RunID,
			Person:        total.Person,
			TotalHours:    total.TotalHours,
			CreativeHours: total.CreativeHours,
			CreativeScore: total.CreativeScore,
			TaskCount:     int32(total.TaskCount),
		}
	}
	return result
}
