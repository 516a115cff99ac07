package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lukaszwojcik89/worklog/schema"
)

// Legacy hierarchical layout: a level column plus one shared description
// column. Level 0 carries the person name, level 1 a task with key and
// total time, level 2 the creative percentage of the preceding task.
var legacyAliases = map[string][]string{
	"level": {"level", "poziom"},
	"desc":  {"users / issues / procent pracy twórczej", "description", "opis"},
	"key":   {"key", "klucz"},
	"time":  {"total time spent", "time spent", "czas"},
}

func parseLegacyCSV(data []byte) ([]schema.RawEntry, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("legacy report is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read legacy header: %w", err)
	}

	cols := make(map[string]int)
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		for field, aliases := range legacyAliases {
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
	for _, required := range []string{"level", "desc"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("legacy header is missing a %s column", required)
		}
	}

	var rows []schema.RawEntry
	currentUser := ""
	currentTask := -1 // Index into rows of the last level-1 row
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read legacy line %d: %w", line, err)
		}

		levelStr := strings.TrimSpace(cell(record, cols, "level"))
		level, err := strconv.Atoi(levelStr)
		if err != nil {
			// Rows without a numeric level are ignored, matching the
			// tolerant behavior of the report generator itself.
			continue
		}
		desc := cell(record, cols, "desc")

		switch level {
		case 0:
			currentUser = desc
			currentTask = -1
		case 1:
			if currentUser == "" {
				continue
			}
			key := strings.TrimSpace(cell(record, cols, "key"))
			if key == "" {
				// Legacy tasks sometimes lack a key; the summary text
				// is the only stable identity left.
				key = strings.TrimSpace(desc)
			}
			rows = append(rows, schema.RawEntry{
				Author:    currentUser,
				IssueKey:  key,
				IssueSum:  desc,
				TimeSpent: cell(record, cols, "time"),
				Line:      line,
			})
			currentTask = len(rows) - 1
		case 2:
			if currentTask >= 0 && strings.TrimSpace(desc) != "" {
				rows[currentTask].CreativePct = desc
			}
		}
	}
	return rows, nil
}
