//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestWorklogWithMySQL tests the worklog CLI with a MySQL backend.
func TestWorklogWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "worklog",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/worklog?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("WORKLOG_CACHE_BACKEND", "mysql")
	_ = os.Setenv("WORKLOG_CACHE_DB_CONNECT", connStr)
	_ = os.Setenv("WORKLOG_ANALYSIS_BACKEND", "mysql")
	_ = os.Setenv("WORKLOG_ANALYSIS_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("WORKLOG_CACHE_BACKEND") }()
	defer func() { _ = os.Unsetenv("WORKLOG_CACHE_DB_CONNECT") }()
	defer func() { _ = os.Unsetenv("WORKLOG_ANALYSIS_BACKEND") }()
	defer func() { _ = os.Unsetenv("WORKLOG_ANALYSIS_DB_CONNECT") }()

	runBackendScenario(t)
}

// TestWorklogWithPostgres tests the worklog CLI with a PostgreSQL backend.
func TestWorklogWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	_ = os.Setenv("WORKLOG_CACHE_BACKEND", "postgresql")
	_ = os.Setenv("WORKLOG_CACHE_DB_CONNECT", connStr)
	_ = os.Setenv("WORKLOG_ANALYSIS_BACKEND", "postgresql")
	_ = os.Setenv("WORKLOG_ANALYSIS_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("WORKLOG_CACHE_BACKEND") }()
	defer func() { _ = os.Unsetenv("WORKLOG_CACHE_DB_CONNECT") }()
	defer func() { _ = os.Unsetenv("WORKLOG_ANALYSIS_BACKEND") }()
	defer func() { _ = os.Unsetenv("WORKLOG_ANALYSIS_DB_CONNECT") }()

	runBackendScenario(t)
}

// runBackendScenario exercises the full command surface against the
// configured backend: migrations, a report run, status checks and cleanup.
func runBackendScenario(t *testing.T) {
	t.Helper()

	csvPath := writeSampleCSV(t)

	// Run worklog analysis migrate (fresh schema)
	err := runWorklogCommand(t, "analysis", "migrate")
	require.NoError(t, err)

	// Run worklog cache clear
	err = runWorklogCommand(t, "cache", "clear")
	require.NoError(t, err)

	// Run worklog analysis clear
	err = runWorklogCommand(t, "analysis", "clear")
	require.NoError(t, err)

	// Run worklog report twice so the second run hits the cache
	err = runWorklogCommand(t, "report", csvPath, "--limit", "5")
	require.NoError(t, err)
	err = runWorklogCommand(t, "report", csvPath, "--limit", "5")
	require.NoError(t, err)

	// Run worklog cache status
	err = runWorklogCommand(t, "cache", "status")
	require.NoError(t, err)

	// Run worklog analysis status
	err = runWorklogCommand(t, "analysis", "status")
	require.NoError(t, err)
}

func runWorklogCommand(t *testing.T, args ...string) error {
	worklogPath := getWorklogBinary()
	cmd := exec.Command(worklogPath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
