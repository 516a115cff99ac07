// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/lukaszwojcik89/worklog/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAggregates prints the per-(person, task) rollup using the configured output format.
func (ow *OutWriter) WriteAggregates(rows []schema.AggregateRow, report *schema.RejectReport, cfg *contract.Config, duration time.Duration) error {
	return PrintAggregates(rows, report, cfg, duration)
}

// WriteCost prints a cost allocation using the configured output format.
func (ow *OutWriter) WriteCost(allocation schema.CostAllocation, cfg *contract.Config, duration time.Duration) error {
	return PrintCost(allocation, cfg, duration)
}

// WritePersons prints per-person summaries using the configured output format.
func (ow *OutWriter) WritePersons(stats []schema.PersonStats, cfg *contract.Config, duration time.Duration) error {
	return PrintPersons(stats, cfg, duration)
}

// WriteCategories prints the category breakdown using the configured output format.
func (ow *OutWriter) WriteCategories(breakdowns []schema.CategoryBreakdown, cfg *contract.Config, duration time.Duration) error {
	return PrintCategories(breakdowns, cfg, duration)
}
