// Package agg rolls canonical worklog entries up into per-(person, task)
// aggregate rows.
package agg

import (
	"sort"
	"time"

	"github.com/lukaszwojcik89/worklog/schema"
)

// groupKey is the composite aggregation key. Grouping must include the
// person: several people log time against the same task key, and collapsing
// them drops everyone's hours but one.
type groupKey struct {
	person  string
	taskKey string
}

// group accumulates one (person, task) bucket while streaming entries.
type group struct {
	totalHours float64
	pctHours   float64 // Hours from entries that carry a percentage
	weightSum  float64 // Σ pct × hours over those entries
	count      int
	taskType   string
	taskStatus string
	firstDate  time.Time
	lastDate   time.Time

	sumCounts map[string]int // Occurrences per non-empty summary
	sumOrder  []string       // First-seen order, for deterministic ties
}

func (g *group) add(e schema.Entry) {
	g.totalHours += e.Hours
	g.count++
	if e.HasPct {
		g.pctHours += e.Hours
		g.weightSum += e.Pct * e.Hours
	}
	if g.taskType == "" {
		g.taskType = e.TaskType
	}
	if g.taskStatus == "" {
		g.taskStatus = e.TaskStatus
	}
	if !e.Date.IsZero() {
		if g.firstDate.IsZero() || e.Date.Before(g.firstDate) {
			g.firstDate = e.Date
		}
		if e.Date.After(g.lastDate) {
			g.lastDate = e.Date
		}
	}
	if e.TaskSum != "" {
		if _, seen := g.sumCounts[e.TaskSum]; !seen {
			g.sumOrder = append(g.sumOrder, e.TaskSum)
		}
		g.sumCounts[e.TaskSum]++
	}
}

// summary picks the most frequent non-empty summary text; ties go to the
// summary seen first.
func (g *group) summary() string {
	best := ""
	bestCount := 0
	for _, s := range g.sumOrder {
		if g.sumCounts[s] > bestCount {
			best = s
			bestCount = g.sumCounts[s]
		}
	}
	return best
}

// Aggregate groups entries by (person, task key) and computes the rollup
// metrics. The sum of TotalHours over the result always equals the sum of
// Hours over the input; nothing is filtered here.
func Aggregate(entries []schema.Entry) []schema.AggregateRow {
	groups := make(map[groupKey]*group)
	order := make([]groupKey, 0)

	for _, e := range entries {
		key := groupKey{person: e.Person, taskKey: e.TaskKey}
		g, ok := groups[key]
		if !ok {
			g = &group{sumCounts: make(map[string]int)}
			groups[key] = g
			order = append(order, key)
		}
		g.add(e)
	}

	rows := make([]schema.AggregateRow, 0, len(order))
	for _, key := range order {
		g := groups[key]
		row := schema.AggregateRow{
			Person:     key.person,
			TaskKey:    key.taskKey,
			TaskSum:    g.summary(),
			TotalHours: g.totalHours,
			EntryCount: g.count,
			TaskType:   g.taskType,
			TaskStatus: g.taskStatus,
			FirstDate:  g.firstDate,
			LastDate:   g.lastDate,
		}
		if g.pctHours > 0 {
			row.HasPct = true
			row.WeightedPct = g.weightSum / g.pctHours
			// Only hours that carry a percentage contribute creative
			// hours; the weighted pct is never extrapolated onto the
			// rest of the group.
			row.CreativeHours = g.weightSum / 100
			row.CreativeScore = row.CreativeHours * row.WeightedPct / 100
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Person != rows[j].Person {
			return rows[i].Person < rows[j].Person
		}
		if rows[i].TotalHours != rows[j].TotalHours {
			return rows[i].TotalHours > rows[j].TotalHours
		}
		return rows[i].TaskKey < rows[j].TaskKey
	})
	return rows
}

// FilterWindow returns the entries that fall inside the window. The result
// shares no backing array with the input.
func FilterWindow(entries []schema.Entry, w schema.Window) []schema.Entry {
	out := make([]schema.Entry, 0, len(entries))
	for _, e := range entries {
		if w.Contains(e) {
			out = append(out, e)
		}
	}
	return out
}

// Months lists the distinct month keys present in the entries, sorted
// ascending. Legacy rows without a month are skipped.
func Months(entries []schema.Entry) []string {
	seen := make(map[string]struct{})
	months := make([]string, 0)
	for _, e := range entries {
		if e.Month == "" {
			continue
		}
		if _, ok := seen[e.Month]; !ok {
			seen[e.Month] = struct{}{}
			months = append(months, e.Month)
		}
	}
	sort.Strings(months)
	return months
}
