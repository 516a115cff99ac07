package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszwojcik89/worklog/core/agg"
	"github.com/lukaszwojcik89/worklog/core/algo"
	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/lukaszwojcik89/worklog/internal/ingest"
	"github.com/lukaszwojcik89/worklog/schema"
)

// TestCategoryBreakdowns keeps every category in classification order and
// computes hour shares over the whole dataset.
func TestCategoryBreakdowns(t *testing.T) {
	rows := []schema.AggregateRow{
		{Person: "Jan", TaskKey: "PROJ-1", TotalHours: 30, CreativeHours: 27, Category: schema.CategoryBug},
		{Person: "Jan", TaskKey: "PROJ-2", TotalHours: 50, CreativeHours: 25, Category: schema.CategoryDev},
		{Person: "Anna", TaskKey: "PROJ-3", TotalHours: 20, Category: schema.CategoryDev},
	}

	breakdowns := CategoryBreakdowns(rows)
	require.Len(t, breakdowns, len(schema.AllCategories))

	for i, cat := range schema.AllCategories {
		assert.Equal(t, cat, breakdowns[i].Category, "categories keep classification order")
	}

	byCat := make(map[schema.TaskCategory]schema.CategoryBreakdown)
	for _, b := range breakdowns {
		byCat[b.Category] = b
	}

	bug := byCat[schema.CategoryBug]
	assert.Equal(t, 1, bug.TaskCount)
	assert.InDelta(t, 30.0, bug.Hours, 1e-9)
	assert.InDelta(t, 30.0, bug.Share, 1e-9)

	dev := byCat[schema.CategoryDev]
	assert.Equal(t, 2, dev.TaskCount)
	assert.InDelta(t, 70.0, dev.Hours, 1e-9)
	assert.InDelta(t, 70.0, dev.Share, 1e-9)

	// Untouched categories stay present with zero hours
	assert.Zero(t, byCat[schema.CategoryMeetings].Hours)
	assert.Zero(t, byCat[schema.CategoryMeetings].Share)
}

// TestCategoryBreakdownsEmpty returns the full zeroed table.
func TestCategoryBreakdownsEmpty(t *testing.T) {
	breakdowns := CategoryBreakdowns(nil)
	require.Len(t, breakdowns, len(schema.AllCategories))
	for _, b := range breakdowns {
		assert.Zero(t, b.Hours)
		assert.Zero(t, b.Share)
	}
}

// TestExecuteCostValidation rejects missing person and gross before touching
// the input file.
func TestExecuteCostValidation(t *testing.T) {
	ctx := context.Background()

	err := ExecuteCost(ctx, &contract.Config{InputFile: "does-not-exist.csv"})
	assert.ErrorContains(t, err, "--person is required")

	err = ExecuteCost(ctx, &contract.Config{InputFile: "does-not-exist.csv", Person: "Jan"})
	assert.ErrorContains(t, err, "--gross must be greater than 0")
}

// TestPipelineDeterminism runs the whole pipeline twice over the same bytes
// and requires identical results end to end: normalization, aggregation,
// classification, person summaries and the cost allocation. Rerunning an
// analysis must never shift a number.
func TestPipelineDeterminism(t *testing.T) {
	const export = "Author,Issue Key,Issue Summary,Start Date,Time Spent,Procent pracy twórczej\n" +
		"Jan Kowalski,PROJ-1,Fix login bug,2026-01-15,10:00,90\n" +
		"Anna Nowak,PROJ-2,Implement export,2026-01-16,3:00,50\n" +
		"Anna Nowak,PROJ-2,Implement export,2026-02-02,2:30,\n" +
		"Piotr Zieliński,PROJ-3,Code review backend,2026-02-03,5:00,40\n" +
		"Marta Lis,,Orphaned row,2026-02-04,1:00,\n"

	run := func() ([]schema.AggregateRow, []schema.PersonStats, schema.CostAllocation) {
		src, err := ingest.ReadBytes([]byte(export), "worklogs.csv", false)
		require.NoError(t, err)

		entries, report, err := Normalize(src.Rows, src.Legacy)
		require.NoError(t, err)
		require.Len(t, report.Rejects, 1, "the keyless row is excluded")

		rows := agg.Aggregate(entries)
		algo.NewClassifier(nil).ClassifyRows(rows)
		stats := PersonSummaries(rows)
		alloc := Allocate(entries, CostInput{
			Person:       "Anna Nowak",
			Gross:        8400,
			MonthlyHours: 168,
			Window:       schema.MonthWindow(2026, time.January),
		})
		return rows, stats, alloc
	}

	rows1, stats1, alloc1 := run()
	rows2, stats2, alloc2 := run()

	assert.Equal(t, rows1, rows2, "aggregate rollup is identical across runs")
	assert.Equal(t, stats1, stats2, "person summaries are identical across runs")
	assert.Equal(t, alloc1, alloc2, "cost allocation is identical across runs")
}

// TestFilterPerson matches on the exact normalized name.
func TestFilterPerson(t *testing.T) {
	stats := []schema.PersonStats{
		{Person: "Jan Kowalski"},
		{Person: "Anna Nowak"},
	}

	matched := filterPerson(stats, "Anna Nowak")
	require.Len(t, matched, 1)
	assert.Equal(t, "Anna Nowak", matched[0].Person)

	assert.Empty(t, filterPerson(stats, "anna nowak"), "matching is exact after normalization")
}
