// Package core has the pipeline logic for normalization, aggregation,
// creative metrics and cost allocation.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lukaszwojcik89/worklog/core/algo"
	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/lukaszwojcik89/worklog/internal/ingest"
	"github.com/lukaszwojcik89/worklog/internal/iocache"
	"github.com/lukaszwojcik89/worklog/internal/outwriter"
	"github.com/lukaszwojcik89/worklog/schema"
)

// ExecutorFunc defines the function signature for executing different report modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// GetReportResults runs the aggregation pipeline and returns the classified,
// ranked per-(person, task) rollup with the rejection tally. The run is
// recorded in the analysis store when one is configured.
func GetReportResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.AggregateRow, *schema.RejectReport, error) {
	start := time.Now()

	src, err := ingest.ReadFile(cfg.InputFile, cfg.LegacyFormat)
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	runID := beginRun(mgr, start, cfg.InputFile, src.Fingerprint)

	output, err := cachedAggregate(src, cfg, mgr)
	if err != nil {
		return nil, nil, describeEmptyInput(err, output)
	}

	classifier := algo.NewClassifier(cfg.ExtraKeywords)
	classifier.ClassifyRows(output.Rows)

	ranked := output.Rows
	if len(ranked) > cfg.ResultLimit {
		ranked = ranked[:cfg.ResultLimit]
	}

	endRun(mgr, runID, start, time.Since(start), src, output)
	return ranked, output.Report, nil
}

// GetCostResults allocates one person's gross compensation across their
// tasks and categories inside the configured window. Cost allocation works
// on raw entries, so it bypasses the aggregate cache.
func GetCostResults(ctx context.Context, cfg *contract.Config) (schema.CostAllocation, error) {
	if cfg.Person == "" {
		return schema.CostAllocation{}, errors.New("--person is required")
	}
	if cfg.Gross <= 0 {
		return schema.CostAllocation{}, errors.New("--gross must be greater than 0")
	}

	src, err := ingest.ReadFile(cfg.InputFile, cfg.LegacyFormat)
	if err != nil {
		return schema.CostAllocation{}, err
	}
	if err := ctx.Err(); err != nil {
		return schema.CostAllocation{}, err
	}

	entries, report, err := Normalize(src.Rows, src.Legacy)
	if err != nil {
		return schema.CostAllocation{}, describeEmptyInput(err, &pipelineOutput{Report: report})
	}

	return Allocate(entries, CostInput{
		Person:       cfg.Person,
		Gross:        cfg.Gross,
		MonthlyHours: cfg.MonthlyHours,
		Window:       cfg.Window,
		Classifier:   algo.NewClassifier(cfg.ExtraKeywords),
	}), nil
}

// GetPersonResults returns per-person productivity summaries ranked by total
// creative score, narrowed to one person when the config names one.
func GetPersonResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.PersonStats, error) {
	src, err := ingest.ReadFile(cfg.InputFile, cfg.LegacyFormat)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output, err := cachedAggregate(src, cfg, mgr)
	if err != nil {
		return nil, describeEmptyInput(err, output)
	}

	stats := PersonSummaries(output.Rows)
	if cfg.Person != "" {
		stats = filterPerson(stats, cfg.Person)
		if len(stats) == 0 {
			return nil, fmt.Errorf("no logged work found for person '%s'", cfg.Person)
		}
	}
	if len(stats) > cfg.ResultLimit {
		stats = stats[:cfg.ResultLimit]
	}
	return stats, nil
}

// GetCategoryResults returns the dataset-wide hours breakdown per task
// category.
func GetCategoryResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.CategoryBreakdown, error) {
	src, err := ingest.ReadFile(cfg.InputFile, cfg.LegacyFormat)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output, err := cachedAggregate(src, cfg, mgr)
	if err != nil {
		return nil, describeEmptyInput(err, output)
	}

	classifier := algo.NewClassifier(cfg.ExtraKeywords)
	classifier.ClassifyRows(output.Rows)

	return CategoryBreakdowns(output.Rows), nil
}

// ExecuteReport runs the aggregation pipeline and prints the per-(person,
// task) rollup. It serves as the main entry point for the 'report' command.
func ExecuteReport(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	rows, report, err := GetReportResults(ctx, cfg, iocache.Manager)
	if err != nil {
		return err
	}
	return outwriter.PrintAggregates(rows, report, cfg, time.Since(start))
}

// ExecuteCost allocates one person's gross compensation across their tasks
// and categories inside the configured window.
func ExecuteCost(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	allocation, err := GetCostResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintCost(allocation, cfg, time.Since(start))
}

// ExecutePerson prints the per-person productivity summary, ranked by total
// creative score.
func ExecutePerson(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	stats, err := GetPersonResults(ctx, cfg, iocache.Manager)
	if err != nil {
		return err
	}
	return outwriter.PrintPersons(stats, cfg, time.Since(start))
}

// ExecuteCategories prints the dataset-wide hours breakdown per task category.
func ExecuteCategories(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	breakdowns, err := GetCategoryResults(ctx, cfg, iocache.Manager)
	if err != nil {
		return err
	}
	return outwriter.PrintCategories(breakdowns, cfg, time.Since(start))
}

// CategoryBreakdowns rolls aggregate rows up per category, every category
// present in classification order so tables keep a stable shape.
func CategoryBreakdowns(rows []schema.AggregateRow) []schema.CategoryBreakdown {
	byCategory := make(map[schema.TaskCategory]*schema.CategoryBreakdown, len(schema.AllCategories))
	var totalHours float64

	for _, row := range rows {
		breakdown, ok := byCategory[row.Category]
		if !ok {
			breakdown = &schema.CategoryBreakdown{Category: row.Category}
			byCategory[row.Category] = breakdown
		}
		breakdown.TaskCount++
		breakdown.Hours += row.TotalHours
		breakdown.CreativeHours += row.CreativeHours
		totalHours += row.TotalHours
	}

	out := make([]schema.CategoryBreakdown, 0, len(schema.AllCategories))
	for _, cat := range schema.AllCategories {
		breakdown := schema.CategoryBreakdown{Category: cat}
		if found, ok := byCategory[cat]; ok {
			breakdown = *found
		}
		if totalHours > 0 {
			breakdown.Share = breakdown.Hours / totalHours * 100
		}
		out = append(out, breakdown)
	}
	return out
}

// filterPerson narrows the summaries to a single person.
func filterPerson(stats []schema.PersonStats, person string) []schema.PersonStats {
	out := make([]schema.PersonStats, 0, 1)
	for _, s := range stats {
		if s.Person == person {
			out = append(out, s)
		}
	}
	return out
}

// describeEmptyInput annotates ErrEmptyInput with the reject tally so the
// user learns why nothing survived. Other errors pass through unchanged.
func describeEmptyInput(err error, output *pipelineOutput) error {
	if !errors.Is(err, schema.ErrEmptyInput) || output == nil || output.Report == nil {
		return err
	}
	return fmt.Errorf("%w (%d rows rejected)", err, len(output.Report.Rejects))
}

// beginRun opens an analysis run record; returns 0 when tracking is off.
func beginRun(mgr contract.CacheManager, start time.Time, sourceFile, fingerprint string) int64 {
	if mgr == nil {
		return 0
	}
	store := mgr.GetAnalysisStore()
	if store == nil {
		return 0
	}
	runID, err := store.BeginRun(start, sourceFile, fingerprint)
	if err != nil {
		contract.LogWarn("recording analysis run", err)
		return 0
	}
	return runID
}

// endRun completes the analysis run record with the pipeline outcome and the
// per-person rollups. Recording failures are warnings, never run failures.
func endRun(mgr contract.CacheManager, runID int64, start time.Time, duration time.Duration, src *ingest.Source, output *pipelineOutput) {
	if mgr == nil || runID == 0 {
		return
	}
	store := mgr.GetAnalysisStore()
	if store == nil {
		return
	}

	stats := PersonSummaries(output.Rows)
	run := schema.AnalysisRun{
		RunTime:      start,
		SourceFile:   src.Path,
		Fingerprint:  src.Fingerprint,
		RowsRead:     len(src.Rows),
		RowsAccepted: output.Report.Accepted,
		RowsRejected: len(output.Report.Rejects),
		People:       len(stats),
		DurationMs:   duration.Milliseconds(),
	}
	for _, s := range stats {
		run.TotalHours += s.TotalHours
	}
	if err := store.EndRun(runID, run); err != nil {
		contract.LogWarn("finishing analysis run", err)
		return
	}

	for _, s := range stats {
		total := schema.PersonRunTotal{
			RunID:         runID,
			Person:        s.Person,
			TotalHours:    s.TotalHours,
			CreativeHours: s.CreativeHours,
			CreativeScore: s.CreativeScore,
			TaskCount:     s.TaskCount,
		}
		if err := store.RecordPersonTotal(runID, total); err != nil {
			contract.LogWarn("recording person total", err)
			return
		}
	}
}
