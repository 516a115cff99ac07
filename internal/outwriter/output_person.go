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

// PrintPersons outputs per-person summaries, dispatching based on the output
// format configured.
func PrintPersons(stats []schema.PersonStats, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForPersons(w, stats)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForPersons(w, stats, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for person summaries")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePersonTable(stats, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writePersonTable generates and writes the human-readable table.
func writePersonTable(stats []schema.PersonStats, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Person", "Tasks", "Hours", "Creative", "Avg Pct", "Band", "Coverage", "Score", "Top Task"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, s := range stats {
		avgPct := "-"
		if s.HasPct {
			avgPct = fmtFloat(s.AvgPct)
		}
		topTask := "-"
		if s.HasTopTask {
			topTask = s.TopTask.TaskKey
			if !s.TopByScore {
				// Longest-task fallback when nobody recorded a pct
				topTask += " (by hours)"
			}
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			s.Person,
			strconv.Itoa(s.TaskCount),
			schema.FormatHours(s.TotalHours),
			schema.FormatHours(s.CreativeHours),
			avgPct,
			pctLabel(s.AvgPct, s.HasPct, cfg.UseColors),
			fmtFloat(s.Coverage) + "%",
			fmtFloat(s.CreativeScore),
			topTask,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	var totalHours float64
	for _, s := range stats {
		totalHours += s.TotalHours
	}
	if _, err := fmt.Fprintf(writer, "Showing %d people (total hours: %s)\n", len(stats), schema.FormatHours(totalHours)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Summary completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForPersons writes the summaries in CSV format.
func writeCSVResultsForPersons(w io.Writer, stats []schema.PersonStats, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"person",
		"task_count",
		"total_hours",
		"creative_hours",
		"avg_pct",
		"band",
		"coverage_pct",
		"creative_score",
		"top_task",
		"top_by_score",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, s := range stats {
			avgPct := ""
			if s.HasPct {
				avgPct = fmtFloat(s.AvgPct)
			}
			topTask := ""
			if s.HasTopTask {
				topTask = s.TopTask.TaskKey
			}
			rec := []string{
				strconv.Itoa(i + 1),
				s.Person,
				strconv.Itoa(s.TaskCount),
				fmtFloat(s.TotalHours),
				fmtFloat(s.CreativeHours),
				avgPct,
				contract.GetPlainPctLabel(s.AvgPct, s.HasPct),
				fmtFloat(s.Coverage),
				fmtFloat(s.CreativeScore),
				topTask,
				strconv.FormatBool(s.TopByScore),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForPersons writes the summaries in JSON format.
func writeJSONResultsForPersons(w io.Writer, stats []schema.PersonStats) error {
	type JSONPersonStats struct {
		Rank int    `json:"rank"`
		Band string `json:"band"`
		schema.PersonStats
	}

	output := make([]JSONPersonStats, len(stats))
	for i, s := range stats {
		output[i] = JSONPersonStats{
			Rank:        i + 1,
			Band:        contract.GetPlainPctLabel(s.AvgPct, s.HasPct),
			PersonStats: s,
		}
	}

	return writeJSON(w, output)
}
