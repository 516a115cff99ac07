package core

import (
	"sort"

	"github.com/lukaszwojcik89/worklog/core/agg"
	"github.com/lukaszwojcik89/worklog/core/algo"
	"github.com/lukaszwojcik89/worklog/schema"
)

// CostInput carries the caller-supplied parameters of a cost allocation.
type CostInput struct {
	Person       string
	Gross        float64 // Gross monthly compensation, > 0
	MonthlyHours float64 // Standard working-hours baseline, > 0
	Window       schema.Window
	Classifier   *algo.Classifier // nil means the built-in rule table
}

// Allocate distributes the person's compensation across their tasks and
// categories inside the window.
//
// The two window variants use different formulas on purpose. A specific
// month attributes the full monthly pay to that month's logged work
// proportionally, whatever the hours; the all window values each hour at
// Gross/MonthlyHours. Collapsing them into one formula is exactly the kind
// of shortcut that produces wrong business numbers.
func Allocate(entries []schema.Entry, in CostInput) schema.CostAllocation {
	result := schema.CostAllocation{
		Person:       in.Person,
		Window:       in.Window,
		Gross:        in.Gross,
		MonthlyHours: in.MonthlyHours,
		HourlyRate:   in.Gross / in.MonthlyHours,
	}

	personEntries := make([]schema.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Person == in.Person {
			personEntries = append(personEntries, e)
		}
	}
	scoped := agg.FilterWindow(personEntries, in.Window)

	classifier := in.Classifier
	if classifier == nil {
		classifier = algo.NewClassifier(nil)
	}
	rows := agg.Aggregate(scoped)
	classifier.ClassifyRows(rows)
	for _, row := range rows {
		result.TotalHours += row.TotalHours
		result.CreativeHours += row.CreativeHours
	}

	if result.TotalHours == 0 {
		// Zero hours in the window is a reportable condition, not an
		// arithmetic error. Every cost stays zero, including the total.
		// The months that do carry data go along so the caller can point
		// at a window that would work.
		result.NoHours = true
		result.MonthsWithData = agg.Months(personEntries)
		result.Categories = emptyCategories()
		return result
	}

	// costOf maps logged hours onto money for the active window variant.
	var costOf func(hours float64) float64
	if in.Window.All {
		result.TotalCost = result.TotalHours * result.HourlyRate
		costOf = func(hours float64) float64 { return hours * result.HourlyRate }
	} else {
		result.TotalCost = in.Gross
		costOf = func(hours float64) float64 { return hours / result.TotalHours * in.Gross }
	}
	result.CreativeCost = costOf(result.CreativeHours)

	result.Categories = categoryCosts(rows, costOf)
	result.Tasks = taskCosts(rows, costOf)
	if len(result.Tasks) > 0 {
		result.HasTasks = true
		result.MostExpensive = result.Tasks[0]
		// Ties on cost go to the lexically smaller key on both ends.
		least := result.Tasks[len(result.Tasks)-1]
		for i := len(result.Tasks) - 2; i >= 0; i-- {
			if result.Tasks[i].Cost != least.Cost {
				break
			}
			least = result.Tasks[i]
		}
		result.LeastExpensive = least
	}
	return result
}

func emptyCategories() []schema.CategoryCost {
	out := make([]schema.CategoryCost, 0, len(schema.AllCategories))
	for _, cat := range schema.AllCategories {
		out = append(out, schema.CategoryCost{Category: cat})
	}
	return out
}

// categoryCosts returns one entry per category in classification order,
// zero-hour categories included so tables keep a stable shape.
func categoryCosts(rows []schema.AggregateRow, costOf func(float64) float64) []schema.CategoryCost {
	hours := make(map[schema.TaskCategory]float64)
	creative := make(map[schema.TaskCategory]float64)
	for _, row := range rows {
		hours[row.Category] += row.TotalHours
		creative[row.Category] += row.CreativeHours
	}

	out := make([]schema.CategoryCost, 0, len(schema.AllCategories))
	for _, cat := range schema.AllCategories {
		cc := schema.CategoryCost{
			Category:      cat,
			Hours:         hours[cat],
			CreativeHours: creative[cat],
		}
		if cc.Hours > 0 {
			cc.Cost = costOf(cc.Hours)
		}
		if cc.CreativeHours > 0 {
			cc.CreativeCost = costOf(cc.CreativeHours)
		}
		out = append(out, cc)
	}
	return out
}

// taskCosts collapses the person's aggregate rows onto tasks with logged
// hours, sorted by cost descending with key order breaking ties.
func taskCosts(rows []schema.AggregateRow, costOf func(float64) float64) []schema.TaskCost {
	out := make([]schema.TaskCost, 0, len(rows))
	for _, row := range rows {
		if row.TotalHours <= 0 {
			continue
		}
		out = append(out, schema.TaskCost{
			TaskKey: row.TaskKey,
			TaskSum: row.TaskSum,
			Hours:   row.TotalHours,
			Cost:    costOf(row.TotalHours),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost > out[j].Cost
		}
		return out[i].TaskKey < out[j].TaskKey
	})
	return out
}
