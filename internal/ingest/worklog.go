package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/lukaszwojcik89/worklog/schema"
)

// Source is one parsed worklog export.
type Source struct {
	Path        string
	Fingerprint string // SHA-256 of the raw bytes
	Legacy      bool   // Parsed from the hierarchical layout (rows carry no date)
	Rows        []schema.RawEntry
}

// Header spellings accepted per field, compared after lower-casing. Exports
// come from differently localized tools, so both English and Polish names
// appear in the wild.
var headerAliases = map[string][]string{
	"author":  {"author", "autor", "person", "osoba"},
	"key":     {"issue key", "key", "klucz"},
	"summary": {"issue summary", "summary", "zadanie", "opis"},
	"date":    {"start date", "date", "data"},
	"time":    {"time spent", "czas", "time"},
	"pct":     {"procent pracy twórczej", "creative percent", "procent", "pct"},
	"type":    {"issue type", "type", "typ"},
	"status":  {"issue status", "status"},
	"comp":    {"components", "komponenty"},
}

// mapHeader resolves each column index to a known field, ignoring columns
// nobody asked for.
func mapHeader(header []string) map[string]int {
	cols := make(map[string]int)
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		for field, aliases := range headerAliases {
			if _, taken := cols[field]; taken {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					cols[field] = i
					break
				}
			}
		}
	}
	return cols
}

func cell(record []string, cols map[string]int, field string) string {
	idx, ok := cols[field]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// parseWorklogCSV reads the flat export layout. The header row is required;
// column order is free.
func parseWorklogCSV(data []byte) ([]schema.RawEntry, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("worklog file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read worklog header: %w", err)
	}

	cols := mapHeader(header)
	for _, required := range []string{"author", "key", "time"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("worklog header is missing a %s column", required)
		}
	}

	var rows []schema.RawEntry
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read worklog line %d: %w", line, err)
		}
		rows = append(rows, schema.RawEntry{
			Author:      cell(record, cols, "author"),
			IssueKey:    cell(record, cols, "key"),
			IssueSum:    cell(record, cols, "summary"),
			StartDate:   cell(record, cols, "date"),
			TimeSpent:   cell(record, cols, "time"),
			CreativePct: cell(record, cols, "pct"),
			IssueType:   cell(record, cols, "type"),
			IssueStatus: cell(record, cols, "status"),
			Components:  cell(record, cols, "comp"),
			Line:        line,
		})
	}
	return rows, nil
}
