// Package ingest reads worklog exports from disk into raw rows.
//
// Two layouts are supported: the flat worklog CSV (one logged row per line,
// with dates) and the legacy hierarchical report where person, task and
// creative percentage sit on separate lines distinguished by a level column.
package ingest

import (
	"crypto/sha256"
	"fmt"
	"os"
)

// Fingerprint returns the SHA-256 hex digest of the raw input bytes. The
// digest keys the report cache and identifies the source in the analysis
// store.
func Fingerprint(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// ReadFile loads a worklog export and returns its raw rows together with
// the content fingerprint. Set legacy for the hierarchical layout.
func ReadFile(path string, legacy bool) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read worklog file: %w", err)
	}
	return ReadBytes(data, path, legacy)
}

// ReadBytes parses an in-memory export. Useful for tests and for callers
// that already hold the file contents.
func ReadBytes(data []byte, path string, legacy bool) (*Source, error) {
	src := &Source{
		Path:        path,
		Fingerprint: Fingerprint(data),
		Legacy:      legacy,
	}
	var err error
	if legacy {
		src.Rows, err = parseLegacyCSV(data)
	} else {
		src.Rows, err = parseWorklogCSV(data)
	}
	if err != nil {
		return nil, err
	}
	return src, nil
}
