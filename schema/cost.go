package schema

import (
	"fmt"
	"time"
)

// Window is the time scope of a cost computation: one specific month or the
// entire dataset. The two variants drive structurally different allocation
// formulas, so the tag is modelled explicitly instead of an empty month
// string sprinkled through the allocator.
type Window struct {
	All   bool
	Year  int
	Month time.Month
}

// AllWindow returns the window covering the entire dataset.
func AllWindow() Window {
	return Window{All: true}
}

// MonthWindow returns the window for a single calendar month.
func MonthWindow(year int, month time.Month) Window {
	return Window{Year: year, Month: month}
}

// Key returns "all" or "YYYY-MM".
func (w Window) Key() string {
	if w.All {
		return "all"
	}
	return fmt.Sprintf("%04d-%02d", w.Year, int(w.Month))
}

// Contains reports whether the entry's month falls inside the window.
// Entries without a date (legacy rows) only match the all window.
func (w Window) Contains(e Entry) bool {
	if w.All {
		return true
	}
	return e.Month == w.Key()
}

// CategoryCost is the cost attributed to one task category.
type CategoryCost struct {
	Category      TaskCategory
	Hours         float64
	CreativeHours float64
	Cost          float64
	CreativeCost  float64
}

// TaskCost is the cost attributed to one task.
type TaskCost struct {
	TaskKey string
	TaskSum string
	Hours   float64
	Cost    float64
}

// CostAllocation distributes a person's gross compensation across the tasks
// and categories they logged time against inside a window.
//
// The monthly and all-time variants are not the same formula with different
// inputs: a specific month attributes the full monthly pay proportionally,
// while the all window values hours at the derived hourly rate.
type CostAllocation struct {
	Person         string
	Window         Window
	Gross          float64 // Gross monthly compensation supplied by the caller
	MonthlyHours   float64 // Standard working-hours baseline (typically 168)
	HourlyRate     float64 // Gross / MonthlyHours
	TotalHours     float64 // Logged hours inside the window
	CreativeHours  float64
	TotalCost      float64
	CreativeCost   float64
	NoHours        bool     // Window had zero logged hours; all costs are zero
	MonthsWithData []string // On NoHours: months where the person did log hours
	Categories     []CategoryCost
	Tasks          []TaskCost // Sorted by cost descending, then task key
	MostExpensive  TaskCost
	LeastExpensive TaskCost
	HasTasks       bool // False when no task logged hours in the window
}
