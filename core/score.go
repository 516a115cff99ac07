package core

import (
	"sort"

	"github.com/lukaszwojcik89/worklog/schema"
)

// CreativeHours returns hours × pct/100.
func CreativeHours(hours, pct float64) float64 {
	return hours * pct / 100
}

// CreativeScore returns creative hours × pct/100, i.e. hours × (pct/100)².
// The quadratic shape is deliberate: it rewards the combination of high time
// and high creativity over either alone.
func CreativeScore(hours, pct float64) float64 {
	return CreativeHours(hours, pct) * pct / 100
}

// PersonSummaries rolls aggregate rows up per person, ranked by total
// creative score descending, ties by name.
func PersonSummaries(rows []schema.AggregateRow) []schema.PersonStats {
	byPerson := make(map[string]*schema.PersonStats)
	order := make([]string, 0)

	pctHours := make(map[string]float64)
	weightSum := make(map[string]float64)
	pctRows := make(map[string]int)

	for _, row := range rows {
		stats, ok := byPerson[row.Person]
		if !ok {
			stats = &schema.PersonStats{Person: row.Person}
			byPerson[row.Person] = stats
			order = append(order, row.Person)
		}
		stats.TaskCount++
		stats.TotalHours += row.TotalHours
		stats.CreativeHours += row.CreativeHours
		stats.CreativeScore += row.CreativeScore
		if row.HasPct {
			pctRows[row.Person]++
			pctHours[row.Person] += row.TotalHours
			weightSum[row.Person] += row.WeightedPct * row.TotalHours
		}

		top := pickTopTask(stats, row)
		if top != nil {
			stats.TopTask = *top
			stats.HasTopTask = true
		}
	}

	out := make([]schema.PersonStats, 0, len(order))
	for _, person := range order {
		stats := byPerson[person]
		if pctHours[person] > 0 {
			stats.HasPct = true
			stats.AvgPct = weightSum[person] / pctHours[person]
		}
		if stats.TaskCount > 0 {
			stats.Coverage = float64(pctRows[person]) / float64(stats.TaskCount) * 100
		}
		out = append(out, *stats)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreativeScore != out[j].CreativeScore {
			return out[i].CreativeScore > out[j].CreativeScore
		}
		return out[i].Person < out[j].Person
	})
	return out
}

// pickTopTask decides whether row displaces the person's current top task.
// Rows with a creative score compete on score; without any scored row the
// longest task stands in, flagged via TopByScore. Returns nil when the
// current pick stays.
func pickTopTask(stats *schema.PersonStats, row schema.AggregateRow) *schema.AggregateRow {
	rowScored := row.HasPct && row.CreativeScore > 0

	if !stats.HasTopTask {
		stats.TopByScore = rowScored
		return &row
	}
	if rowScored {
		if !stats.TopByScore || row.CreativeScore > stats.TopTask.CreativeScore {
			stats.TopByScore = true
			return &row
		}
		return nil
	}
	if !stats.TopByScore && row.TotalHours > stats.TopTask.TotalHours {
		return &row
	}
	return nil
}
