package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/lukaszwojcik89/worklog/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintCost outputs a cost allocation, dispatching based on the output format
// configured.
func PrintCost(allocation schema.CostAllocation, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtMoney := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, allocation)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForCost(w, allocation, fmtFloat, fmtMoney)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for cost allocations")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCostTables(allocation, cfg, fmtFloat, fmtMoney, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeCostTables writes the human-readable allocation: a header block, the
// category table and the task table.
func writeCostTables(allocation schema.CostAllocation, cfg *contract.Config, fmtFloat, fmtMoney func(float64) string, duration time.Duration, writer io.Writer) error {
	fmt.Fprintf(writer, "Cost allocation for %s (window: %s)\n", allocation.Person, allocation.Window.Key())
	fmt.Fprintf(writer, "Gross: %s, hourly rate: %s (%s monthly hours)\n",
		fmtMoney(allocation.Gross), fmtMoney(allocation.HourlyRate), fmtFloat(allocation.MonthlyHours))

	if allocation.NoHours {
		fmt.Fprintf(writer, "No hours logged in the window. All costs are zero.\n")
		if len(allocation.MonthsWithData) > 0 {
			fmt.Fprintf(writer, "Months with logged hours: %s\n", strings.Join(allocation.MonthsWithData, ", "))
		}
		return nil
	}

	fmt.Fprintf(writer, "Total: %s for %s logged (creative: %s for %s)\n",
		fmtMoney(allocation.TotalCost), schema.FormatHours(allocation.TotalHours),
		fmtMoney(allocation.CreativeCost), schema.FormatHours(allocation.CreativeHours))

	// Category table keeps all categories so the shape never shifts
	catTable := tablewriter.NewWriter(writer)
	catTable.Header([]string{"Category", "Hours", "Cost", "Creative Hours", "Creative Cost"})
	catTable.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var catData [][]string
	for _, cat := range allocation.Categories {
		catData = append(catData, []string{
			string(cat.Category),
			schema.FormatHours(cat.Hours),
			fmtMoney(cat.Cost),
			schema.FormatHours(cat.CreativeHours),
			fmtMoney(cat.CreativeCost),
		})
	}
	if err := catTable.Bulk(catData); err != nil {
		return err
	}
	if err := catTable.Render(); err != nil {
		return err
	}

	// Task table, most expensive first
	taskTable := tablewriter.NewWriter(writer)
	taskTable.Header([]string{"Rank", "Task", "Summary", "Hours", "Cost"})
	taskTable.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	summaryWidth := getMaxTableSummaryWidth(cfg)
	var taskData [][]string
	for i, task := range allocation.Tasks {
		taskData = append(taskData, []string{
			strconv.Itoa(i + 1),
			task.TaskKey,
			contract.TruncateText(task.TaskSum, summaryWidth),
			schema.FormatHours(task.Hours),
			fmtMoney(task.Cost),
		})
	}
	if err := taskTable.Bulk(taskData); err != nil {
		return err
	}
	if err := taskTable.Render(); err != nil {
		return err
	}

	if allocation.HasTasks {
		fmt.Fprintf(writer, "Most expensive: %s (%s), least expensive: %s (%s)\n",
			allocation.MostExpensive.TaskKey, fmtMoney(allocation.MostExpensive.Cost),
			allocation.LeastExpensive.TaskKey, fmtMoney(allocation.LeastExpensive.Cost))
	}
	fmt.Fprintf(writer, "Allocation completed in %v\n", duration)
	return nil
}

// writeCSVResultsForCost writes the allocation in CSV format, one row per
// task plus one row per category.
func writeCSVResultsForCost(w io.Writer, allocation schema.CostAllocation, fmtFloat, fmtMoney func(float64) string) error {
	header := []string{"kind", "name", "summary", "hours", "cost", "creative_hours", "creative_cost"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, cat := range allocation.Categories {
			rec := []string{
				"category",
				string(cat.Category),
				"",
				fmtFloat(cat.Hours),
				fmtMoney(cat.Cost),
				fmtFloat(cat.CreativeHours),
				fmtMoney(cat.CreativeCost),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		for _, task := range allocation.Tasks {
			rec := []string{
				"task",
				task.TaskKey,
				task.TaskSum,
				fmtFloat(task.Hours),
				fmtMoney(task.Cost),
				"",
				"",
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
