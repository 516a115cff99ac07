package cmd

import (
	"fmt"

	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/lukaszwojcik89/worklog/internal/iocache"
	"github.com/lukaszwojcik89/worklog/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize caching with the loaded config (no analysis tracking for cache commands)
	if err := iocache.InitCaching(backend, connStr, schema.NoneBackend, ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by report commands. This avoids input file
// handling and complex config processing for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the aggregation cache (improves performance)",
	Long: `Manage the aggregation cache that speeds up repeated runs.

Worklog caches the normalized, aggregated rollup per input fingerprint so
re-running a report on the same export skips the parsing pipeline entirely.
Entries are keyed by the file's content hash, so an edited export never
serves stale results.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  # Check cache status
  worklog cache status

  # Clear cache after changing category keywords
  worklog cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached aggregation data",
	Long: `Delete all cached aggregation results from the configured backend.

Use this when:
- The cache may be stale or corrupted
- Measuring pipeline performance without cache
- Reclaiming disk space after analyzing many exports

Examples:
  # Clear SQLite cache (default)
  worklog cache clear

  # Clear MySQL cache (set connection string via env variable)
  WORKLOG_CACHE_BACKEND=mysql WORKLOG_CACHE_DB_CONNECT="..." worklog cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the aggregation cache.

Displays:
- Backend type and connection status
- Total number of cached rollups
- Last and oldest cache entry timestamps

Examples:
  # Check cache status
  worklog cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetReportStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}
