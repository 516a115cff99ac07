package iocache

import (
	"errors"
	"fmt"

	"github.com/lukaszwojcik89/worklog/internal/parquet"
)

// ExecuteAnalysisExport exports recorded runs and person rollups to Parquet files.
func ExecuteAnalysisExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the analysis store
	store := Manager.GetAnalysisStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.TotalRuns)
	fmt.Printf("Total person records: %d\n", status.TableSizes[personTotalsTable])

	// Retrieve all analysis runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}

	// Retrieve all person rollups
	totals, err := store.GetAllPersonTotals()
	if err != nil {
		return fmt.Errorf("failed to retrieve person totals: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertAnalysisRunRecords(runs)
	parquetTotals := parquet.ConvertPersonTotalRecords(totals)

	// Write analysis runs to Parquet
	runsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	fmt.Printf("Exported %d analysis runs to: %s\n", len(parquetRuns), runsFile)

	// Write person rollups to Parquet
	totalsFile := outputFile + ".person_totals.parquet"
	if err := parquet.WritePersonTotalsParquet(parquetTotals, totalsFile); err != nil {
		return fmt.Errorf("failed to write person totals: %w", err)
	}
	fmt.Printf("Exported %d person records to: %s\n", len(parquetTotals), totalsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
