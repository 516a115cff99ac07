// Package algo has the task classification rules.
package algo

import (
	"strings"

	"github.com/lukaszwojcik89/worklog/schema"
)

// rule binds one category to its keyword set. Keywords are lower-case
// substrings, Polish stems included, matched against summary plus type text.
type rule struct {
	category schema.TaskCategory
	keywords []string
}

// rules is evaluated top to bottom; the first category with a matching
// keyword wins. The slice order is the contract, never reorder casually:
// several stems ("obsług", "przegląd") appear under more than one category
// and earlier entries shadow later ones.
var rules = []rule{
	{schema.CategoryBug, []string{
		"bug", "hotfix", "crash", "błąd", "error", "problem z",
		"niezgodność", "uszkodz", "awaria", "napr", "fix",
	}},
	{schema.CategoryReview, []string{
		"code review", "pull request", "review", "pr ",
		"feedback code", "sprawdzenie kodu",
	}},
	{schema.CategoryTesting, []string{
		"test", "qa", "validation", "weryfikacja", "acceptance",
		"e2e", "unit", "testowani", "testy",
	}},
	{schema.CategoryDev, []string{
		"feature", "implement", "develop", "build", "funkcj", "kod",
		"refactor", "wdrożeni", "stworz", "endpoint", "komponent",
		"obsług", "logik", "edycj", "popraw", "ulepsz", "improve",
	}},
	{schema.CategoryAnalysis, []string{
		"analiz", "przegląd", "diagram", "design", "dokumentuj",
		"architektur", "zapoznani", "sprawdz", "research", "badani",
		"ocen", "koncepcj", "wymagan",
	}},
	{schema.CategoryDevOps, []string{
		"deploy", "deployment", "ci/cd", "ci ", "cd ", "pipeline",
		"gitlab-ci", "docker", "kubernetes", "infra", "serwer",
		"baza danych", "monitoring", "logging", "konfiguruj",
		"infrastructure", "środowisk",
	}},
	{schema.CategoryTraining, []string{
		"szkoleni", "webinar", "training", "workshop", "kurs", "nauk",
		"edukacj", "certyfikacj", "copilot", "samoszkoleni",
	}},
	{schema.CategoryAdmin, []string{
		"administracj", "support", "help desk", "help ", "incident",
		"zgłoszeni", "wsparci", "mail", "telefon", "biuro", "dostęp",
		"uprawni", "konto", "papierologi",
	}},
	{schema.CategoryMeetings, []string{
		"spotkani", "meeting", "call", "standup", "daily", "retro",
		"retrospectiv", "planning", "refinement", "grooming", "sesj",
		"briefing", "sync", "kick-off", "komitet", "posiedzeni",
		"dyskusj", "scrum",
	}},
}

// Classifier matches task text against an ordered rule table. The zero
// value is unusable; build one with NewClassifier.
type Classifier struct {
	rules []rule
}

// NewClassifier builds a classifier from the built-in table plus optional
// per-category keyword extensions. Extensions append after the built-in
// keywords of their category, so rule precedence stays unchanged.
func NewClassifier(extra map[schema.TaskCategory][]string) *Classifier {
	if len(extra) == 0 {
		return &Classifier{rules: rules}
	}
	merged := make([]rule, len(rules))
	for i, r := range rules {
		merged[i] = rule{category: r.category, keywords: r.keywords}
		if more, ok := extra[r.category]; ok {
			kws := make([]string, 0, len(r.keywords)+len(more))
			kws = append(kws, r.keywords...)
			kws = append(kws, more...)
			merged[i].keywords = kws
		}
	}
	return &Classifier{rules: merged}
}

// Classify assigns a category from the task summary and type. Matching is
// case-insensitive substring search in fixed rule order; text with no
// keyword falls through to Other.
func (c *Classifier) Classify(summary, taskType string) schema.TaskCategory {
	text := strings.ToLower(summary + " " + taskType)
	for _, r := range c.rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.category
			}
		}
	}
	return schema.CategoryOther
}

// ClassifyRows fills the Category annotation on every aggregate row in
// place.
func (c *Classifier) ClassifyRows(rows []schema.AggregateRow) {
	for i := range rows {
		rows[i].Category = c.Classify(rows[i].TaskSum, rows[i].TaskType)
	}
}

// Classify runs the built-in rule table without extensions.
func Classify(summary, taskType string) schema.TaskCategory {
	return NewClassifier(nil).Classify(summary, taskType)
}

// ClassifyRows annotates rows with the built-in rule table.
func ClassifyRows(rows []schema.AggregateRow) {
	NewClassifier(nil).ClassifyRows(rows)
}
