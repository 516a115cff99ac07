package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/lukaszwojcik89/worklog/internal/parquet"
	"github.com/lukaszwojcik89/worklog/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintAggregates outputs the per-(person, task) rollup, dispatching based on
// the output format configured. The rejection tally always goes to stderr so
// it survives output redirection.
func PrintAggregates(rows []schema.AggregateRow, report *schema.RejectReport, cfg *contract.Config, duration time.Duration) error {
	printRejectSummary(report)

	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeAggregateJSONResults(rows, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeAggregateCSVResults(rows, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("--output-file is required for parquet output")
		}
		if err := parquet.WriteAggregatesParquet(parquet.ConvertAggregateRecords(rows), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAggregateTable(rows, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// printRejectSummary reports excluded rows on stderr, one line per reason.
func printRejectSummary(report *schema.RejectReport) {
	if report == nil || len(report.Rejects) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "⚠️  %d of %d rows rejected:\n", len(report.Rejects), report.Accepted+len(report.Rejects))
	for reason, count := range report.Counts() {
		fmt.Fprintf(os.Stderr, "  %s: %d\n", reason, count)
	}
}

// writeAggregateJSONResults handles opening the file and calling the JSON writer.
func writeAggregateJSONResults(rows []schema.AggregateRow, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForAggregates(w, rows)
	}, "Wrote JSON")
}

// writeAggregateCSVResults handles opening the file and calling the CSV writer.
func writeAggregateCSVResults(rows []schema.AggregateRow, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForAggregates(csvWriter, rows, fmtFloat)
	}, "Wrote CSV")
}

// writeAggregateTable generates and writes the human-readable table.
func writeAggregateTable(rows []schema.AggregateRow, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Person", "Task", "Summary", "Hours", "Pct", "Creative", "Band", "Category"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	summaryWidth := getMaxTableSummaryWidth(cfg)
	var data [][]string
	for i, row := range rows {
		pct := "-"
		if row.HasPct {
			pct = fmtFloat(row.WeightedPct)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			row.Person,
			row.TaskKey,
			contract.TruncateText(row.TaskSum, summaryWidth),
			schema.FormatHours(row.TotalHours),
			pct,
			schema.FormatHours(row.CreativeHours),
			pctLabel(row.WeightedPct, row.HasPct, cfg.UseColors),
			string(row.Category),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	var totalHours, creativeHours float64
	for _, row := range rows {
		totalHours += row.TotalHours
		creativeHours += row.CreativeHours
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d rows (total hours: %s, creative hours: %s)\n",
		len(rows), schema.FormatHours(totalHours), schema.FormatHours(creativeHours)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Report completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForAggregates writes the rollup in CSV format.
func writeCSVResultsForAggregates(w *csv.Writer, rows []schema.AggregateRow, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"person",
		"task_key",
		"task_summary",
		"total_hours",
		"hours_hhmm",
		"weighted_pct",
		"creative_hours",
		"creative_score",
		"band",
		"category",
		"entries",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, row := range rows {
		pct := ""
		if row.HasPct {
			pct = fmtFloat(row.WeightedPct)
		}
		rec := []string{
			strconv.Itoa(i + 1),
			row.Person,
			row.TaskKey,
			row.TaskSum,
			fmtFloat(row.TotalHours),
			schema.FormatHours(row.TotalHours),
			pct,
			fmtFloat(row.CreativeHours),
			fmtFloat(row.CreativeScore),
			contract.GetPlainPctLabel(row.WeightedPct, row.HasPct),
			string(row.Category),
			strconv.Itoa(row.EntryCount),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForAggregates writes the rollup in JSON format.
func writeJSONResultsForAggregates(w io.Writer, rows []schema.AggregateRow) error {
	type JSONAggregateRow struct {
		Rank int    `json:"rank"`
		Band string `json:"band"`
		schema.AggregateRow
	}

	output := make([]JSONAggregateRow, len(rows))
	for i, row := range rows {
		output[i] = JSONAggregateRow{
			Rank:         i + 1,
			Band:         contract.GetPlainPctLabel(row.WeightedPct, row.HasPct),
			AggregateRow: row,
		}
	}

	return writeJSON(w, output)
}
