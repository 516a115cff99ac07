package core

import (
	"strings"
	"time"

	"github.com/lukaszwojcik89/worklog/schema"
)

// Date layouts seen in worklog exports, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02.01.2006",
	"02.01.2006 15:04",
}

// parseDate accepts an empty value only for legacy rows, which carry no date
// and are still canonical; they just never match a month window. Flat export
// rows must carry one.
func parseDate(raw string, legacy bool) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		if legacy {
			return time.Time{}, nil
		}
		return time.Time{}, schema.NewValidationError("date", raw, "missing start date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, schema.NewParseError("date", raw, "unrecognized date format")
}

// rejectReason maps the failing field of a row error onto a reject category.
func rejectReason(err *schema.RowError) schema.RejectReason {
	switch err.Field {
	case "time":
		return schema.RejectBadTime
	case "creative_pct":
		return schema.RejectBadPct
	case "date":
		return schema.RejectBadDate
	default:
		return schema.RejectMissingField
	}
}

// normalizeRow converts one raw row to canonical form. The row error, when
// non-nil, names the first field that could not be accepted.
func normalizeRow(raw schema.RawEntry, legacy bool) (schema.Entry, *schema.RowError) {
	person := schema.NormalizeName(RepairText(raw.Author))
	if person == "" {
		return schema.Entry{}, schema.NewValidationError("person", raw.Author, "missing person name")
	}
	taskKey := strings.TrimSpace(raw.IssueKey)
	if taskKey == "" {
		return schema.Entry{}, schema.NewValidationError("task_key", raw.IssueKey, "missing task key")
	}

	hours, err := ParseTime(raw.TimeSpent)
	if err != nil {
		return schema.Entry{}, err.(*schema.RowError)
	}
	pct, hasPct, err := ParsePercent(raw.CreativePct)
	if err != nil {
		return schema.Entry{}, err.(*schema.RowError)
	}
	date, err := parseDate(raw.StartDate, legacy)
	if err != nil {
		return schema.Entry{}, err.(*schema.RowError)
	}

	return schema.Entry{
		Person:     person,
		TaskKey:    taskKey,
		TaskSum:    strings.TrimSpace(RepairText(raw.IssueSum)),
		Date:       date,
		Month:      schema.MonthKey(date),
		Hours:      hours,
		Pct:        pct,
		HasPct:     hasPct,
		TaskType:   strings.TrimSpace(raw.IssueType),
		TaskStatus: strings.TrimSpace(raw.IssueStatus),
	}, nil
}

// Normalize converts raw rows into the canonical entry sequence. Rows that
// fail to parse or validate are excluded and recorded in the reject report;
// processing always continues past a bad row. Legacy sources are allowed to
// omit the date, flat exports are not. When nothing survives, the error is
// schema.ErrEmptyInput, so callers can tell "bad upload" apart from "empty
// result".
func Normalize(rows []schema.RawEntry, legacy bool) ([]schema.Entry, *schema.RejectReport, error) {
	entries := make([]schema.Entry, 0, len(rows))
	report := &schema.RejectReport{}

	for _, raw := range rows {
		entry, rowErr := normalizeRow(raw, legacy)
		if rowErr != nil {
			report.Add(raw.Line, rejectReason(rowErr), rowErr.Error())
			continue
		}
		entries = append(entries, entry)
	}
	report.Accepted = len(entries)

	if len(entries) == 0 {
		return nil, report, schema.ErrEmptyInput
	}
	return entries, report, nil
}
