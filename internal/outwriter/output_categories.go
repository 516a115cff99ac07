package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/lukaszwojcik89/worklog/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintCategories outputs the dataset-wide category breakdown, dispatching
// based on the output format configured.
func PrintCategories(breakdowns []schema.CategoryBreakdown, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, breakdowns)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForCategories(w, breakdowns, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for category breakdowns")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCategoryTable(breakdowns, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeCategoryTable generates and writes the human-readable table.
func writeCategoryTable(breakdowns []schema.CategoryBreakdown, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Category", "Tasks", "Hours", "Creative", "Share"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, b := range breakdowns {
		data = append(data, []string{
			string(b.Category),
			strconv.Itoa(b.TaskCount),
			schema.FormatHours(b.Hours),
			schema.FormatHours(b.CreativeHours),
			fmtFloat(b.Share) + "%",
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Breakdown completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForCategories writes the breakdown in CSV format.
func writeCSVResultsForCategories(w io.Writer, breakdowns []schema.CategoryBreakdown, fmtFloat func(float64) string) error {
	header := []string{"category", "task_count", "hours", "creative_hours", "share_pct"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, b := range breakdowns {
			rec := []string{
				string(b.Category),
				strconv.Itoa(b.TaskCount),
				fmtFloat(b.Hours),
				fmtFloat(b.CreativeHours),
				fmtFloat(b.Share),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
