//go:build integration || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedWorklogPath holds the path to a shared worklog binary built once for all tests.
	sharedWorklogPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// sampleWorklogCSV is a small but representative export: mojibake in a name,
// repeated entries for one task and a missing percentage.
const sampleWorklogCSV = "Author,Issue Key,Issue Summary,Start Date,Time Spent,Procent pracy twórczej\n" +
	"Jan KowalczyÅ„ski,PROJ-1,Fix login bug,2026-01-15,10:00,90\n" +
	"Jan KowalczyÅ„ski,PROJ-1,Fix login bug,2026-01-16,2:30,90\n" +
	"Anna Nowak,PROJ-2,Implement export feature,2026-01-16,3:00,50\n" +
	"Anna Nowak,PROJ-3,Sprint planning meeting,2026-02-02,1:00,\n" +
	"Piotr Wiśniewski,PROJ-4,Code review backend,2026-02-03,25:00,40\n"

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getWorklogBinary returns the path to the worklog binary, building it once if needed.
func getWorklogBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "worklog-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		worklogPath := filepath.Join(tempDir, "worklog")
		buildCmd := exec.Command("go", "build", "-o", worklogPath, "./cmd/worklog")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build worklog: %v", err))
		}

		sharedWorklogPath = worklogPath
	})

	return sharedWorklogPath
}

// writeSampleCSV writes the sample export into the test's temp dir.
func writeSampleCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worklogs.csv")
	if err := os.WriteFile(path, []byte(sampleWorklogCSV), 0o644); err != nil {
		t.Fatalf("failed to write sample CSV: %v", err)
	}
	return path
}
