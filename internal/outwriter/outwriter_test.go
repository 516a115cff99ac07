package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/lukaszwojcik89/worklog/schema"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Precision:    1,
		Output:       schema.TextOut,
		Width:        120,
		CacheBackend: schema.SQLiteBackend,
	}
}

func sampleRows() []schema.AggregateRow {
	return []schema.AggregateRow{
		{
			Person:        "Jan Kowalski",
			TaskKey:       "PROJ-1",
			TaskSum:       "Fix login",
			TotalHours:    12.5,
			WeightedPct:   90,
			HasPct:        true,
			CreativeHours: 11.25,
			CreativeScore: 10.125,
			EntryCount:    3,
			Category:      schema.CategoryBug,
		},
		{
			Person:     "Anna Nowak",
			TaskKey:    "PROJ-2",
			TaskSum:    "Implement export",
			TotalHours: 3,
			EntryCount: 1,
			Category:   schema.CategoryDev,
		},
	}
}

// TestWriteAggregateTable renders every row plus the trailing summary lines.
func TestWriteAggregateTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	fmtFloat, _ := createFormatters(cfg.Precision)

	err := writeAggregateTable(sampleRows(), cfg, fmtFloat, 5*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Jan Kowalski")
	assert.Contains(t, out, "PROJ-1")
	assert.Contains(t, out, "12:30", "hours render as H:MM")
	assert.Contains(t, out, "High", "90 pct lands in the high band")
	assert.Contains(t, out, "Bug/Hotfix")
	assert.Contains(t, out, "-", "missing pct renders as a dash")
	assert.Contains(t, out, "Showing top 2 rows")
	assert.Contains(t, out, "total hours: 15:30")
}

// TestWriteAggregateCSV produces one record per row with a stable header.
func TestWriteAggregateCSV(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(2)

	csvWriter := csv.NewWriter(&buf)
	require.NoError(t, writeCSVResultsForAggregates(csvWriter, sampleRows(), fmtFloat))
	csvWriter.Flush()

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus two rows")

	assert.Equal(t, "rank", records[0][0])
	assert.Equal(t, "PROJ-1", records[1][2])
	assert.Equal(t, "90.00", records[1][6])
	assert.Equal(t, "", records[2][6], "missing pct stays empty in CSV")
	assert.Equal(t, "-", records[2][9], "missing pct band is the no-band marker")
}

// TestWriteAggregateJSON includes rank and band alongside the row fields.
func TestWriteAggregateJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSONResultsForAggregates(&buf, sampleRows()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, float64(1), decoded[0]["rank"])
	assert.Equal(t, "High", decoded[0]["band"])
	assert.Equal(t, "Jan Kowalski", decoded[0]["Person"])
}

// TestWriteCostTables covers the monthly allocation and the zero-hours case.
func TestWriteCostTables(t *testing.T) {
	cfg := testConfig()
	fmtFloat, fmtMoney := createFormatters(cfg.Precision)

	allocation := schema.CostAllocation{
		Person:       "Jan Kowalski",
		Window:       schema.MonthWindow(2026, time.January),
		Gross:        16000,
		MonthlyHours: 168,
		HourlyRate:   16000.0 / 168,
		TotalHours:   100,
		TotalCost:    16000,
		CreativeCost: 8000,
		Categories: []schema.CategoryCost{
			{Category: schema.CategoryBug, Hours: 40, Cost: 6400},
			{Category: schema.CategoryMeetings},
		},
		Tasks: []schema.TaskCost{
			{TaskKey: "PROJ-1", TaskSum: "Fix login", Hours: 60, Cost: 9600},
			{TaskKey: "PROJ-2", TaskSum: "Standup", Hours: 40, Cost: 6400},
		},
		MostExpensive:  schema.TaskCost{TaskKey: "PROJ-1", Cost: 9600},
		LeastExpensive: schema.TaskCost{TaskKey: "PROJ-2", Cost: 6400},
		HasTasks:       true,
	}

	var buf bytes.Buffer
	require.NoError(t, writeCostTables(allocation, cfg, fmtFloat, fmtMoney, time.Millisecond, &buf))

	out := buf.String()
	assert.Contains(t, out, "window: 2026-01")
	assert.Contains(t, out, "Total: 16000.00")
	assert.Contains(t, out, "Bug/Hotfix")
	assert.Contains(t, out, "Most expensive: PROJ-1 (9600.00)")
	assert.Contains(t, out, "least expensive: PROJ-2 (6400.00)")

	buf.Reset()
	empty := schema.CostAllocation{
		Person:         "Jan Kowalski",
		Window:         schema.MonthWindow(2026, time.March),
		Gross:          16000,
		MonthlyHours:   168,
		NoHours:        true,
		MonthsWithData: []string{"2026-01", "2026-02"},
	}
	require.NoError(t, writeCostTables(empty, cfg, fmtFloat, fmtMoney, time.Millisecond, &buf))
	assert.Contains(t, buf.String(), "No hours logged in the window")
	assert.Contains(t, buf.String(), "Months with logged hours: 2026-01, 2026-02")
}

// TestWritePersonTable renders summaries with band labels and top tasks.
func TestWritePersonTable(t *testing.T) {
	cfg := testConfig()
	fmtFloat, _ := createFormatters(cfg.Precision)

	stats := []schema.PersonStats{
		{
			Person:        "Jan Kowalski",
			TaskCount:     3,
			TotalHours:    120,
			CreativeHours: 90,
			AvgPct:        75,
			HasPct:        true,
			Coverage:      100,
			CreativeScore: 67.5,
			TopTask:       schema.AggregateRow{TaskKey: "PROJ-1"},
			HasTopTask:    true,
			TopByScore:    true,
		},
		{
			Person:     "Anna Nowak",
			TaskCount:  1,
			TotalHours: 8,
			TopTask:    schema.AggregateRow{TaskKey: "PROJ-9"},
			HasTopTask: true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writePersonTable(stats, cfg, fmtFloat, time.Millisecond, &buf))

	out := buf.String()
	assert.Contains(t, out, "Jan Kowalski")
	assert.Contains(t, out, "Medium", "75 pct lands in the middle band")
	assert.Contains(t, out, "PROJ-1")
	assert.Contains(t, out, "PROJ-9 (by hours)", "fallback pick is flagged")
	assert.Contains(t, out, "Showing 2 people")
}

// TestWriteCategoryCSV emits every category with its share.
func TestWriteCategoryCSV(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	breakdowns := []schema.CategoryBreakdown{
		{Category: schema.CategoryBug, TaskCount: 2, Hours: 30, CreativeHours: 27, Share: 75},
		{Category: schema.CategoryOther, TaskCount: 1, Hours: 10, Share: 25},
	}

	var buf bytes.Buffer
	require.NoError(t, writeCSVResultsForCategories(&buf, breakdowns, fmtFloat))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Bug/Hotfix", records[1][0])
	assert.Equal(t, "75.0", records[1][4])
}

// TestGetMaxTableSummaryWidth clamps to the configured bounds.
func TestGetMaxTableSummaryWidth(t *testing.T) {
	assert.Equal(t, 60, getMaxTableSummaryWidth(&contract.Config{Width: 120}))
	assert.Equal(t, 15, getMaxTableSummaryWidth(&contract.Config{Width: 40}), "narrow terminals keep a readable minimum")
	assert.Equal(t, 70, getMaxTableSummaryWidth(&contract.Config{Width: 500}), "very wide terminals are capped")
}

// TestPrintRejectSummaryQuiet stays silent without rejects.
func TestPrintRejectSummaryQuiet(t *testing.T) {
	// Nothing to assert on stderr directly; just exercise both paths.
	printRejectSummary(nil)
	printRejectSummary(&schema.RejectReport{Accepted: 5})

	report := &schema.RejectReport{Accepted: 5}
	report.Add(3, schema.RejectBadTime, "bad time")
	printRejectSummary(report)
}
