package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lukaszwojcik89/worklog/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit  = 25
	MaxResultLimit      = 1000
	DefaultPrecision    = 1
	DefaultMonthlyHours = 168 // Standard full-time working hours per month
)

// Config holds the runtime configuration for a worklog run.
// This struct remains the "final, validated" config.
type Config struct {
	InputFile    string
	LegacyFormat bool // Input uses the hierarchical three-level layout
	Person       string
	Window       schema.Window
	Gross        float64
	MonthlyHours float64
	ResultLimit  int
	Precision    int
	Output       schema.OutputMode
	OutputFile   string
	Width        int // Terminal width override (0 = auto-detect)

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	// ExtraKeywords extends the built-in category keyword table from the
	// config file. Keys must name known categories.
	ExtraKeywords map[schema.TaskCategory][]string

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// Clone returns a copy of the config safe for per-request mutation. The
// keyword extension map is copied so callers cannot alias the base config.
func (c *Config) Clone() *Config {
	clone := *c
	if c.ExtraKeywords != nil {
		clone.ExtraKeywords = make(map[schema.TaskCategory][]string, len(c.ExtraKeywords))
		for cat, kws := range c.ExtraKeywords {
			clone.ExtraKeywords[cat] = append([]string(nil), kws...)
		}
	}
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputFileStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile        string `mapstructure:"output-file"`
	Limit             int    `mapstructure:"limit"`
	Precision         int    `mapstructure:"precision"`
	Output            string `mapstructure:"output"`
	Width             int    `mapstructure:"width"`
	Legacy            bool   `mapstructure:"legacy"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`
	Emoji             string `mapstructure:"emoji"`
	Color             string `mapstructure:"color"`

	// --- Fields from costCmd and personCmd flags ---
	Person       string  `mapstructure:"person"`
	Window       string  `mapstructure:"window"`
	Gross        float64 `mapstructure:"gross"`
	MonthlyHours float64 `mapstructure:"monthly-hours"`

	// --- Category keyword extensions from config file ---
	Categories map[string][]string `mapstructure:"categories"`
}

// ParseWindow parses "all" or "YYYY-MM" into a window value.
func ParseWindow(s string) (schema.Window, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "all" {
		return schema.AllWindow(), nil
	}
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return schema.Window{}, fmt.Errorf("invalid window '%s'. must be 'all' or 'YYYY-MM'", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return schema.Window{}, fmt.Errorf("invalid window year '%s'", parts[0])
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return schema.Window{}, fmt.Errorf("invalid window month '%s'. must be 01-12", parts[1])
	}
	return schema.MonthWindow(year, time.Month(month)), nil
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processCostInputs(cfg, input); err != nil {
		return err
	}
	if err := processCategoryExtensions(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// validateSimpleInputs processes and validates all non-cost related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.InputFile = strings.TrimSpace(input.InputFileStr)
	cfg.LegacyFormat = input.Legacy
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	return nil
}

// processCostInputs validates the person, window and compensation fields.
func processCostInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Person = strings.TrimSpace(input.Person)

	window, err := ParseWindow(input.Window)
	if err != nil {
		return err
	}
	cfg.Window = window

	if input.Gross < 0 {
		return fmt.Errorf("gross compensation cannot be negative (received %.2f)", input.Gross)
	}
	cfg.Gross = input.Gross

	cfg.MonthlyHours = input.MonthlyHours
	if cfg.MonthlyHours == 0 {
		cfg.MonthlyHours = DefaultMonthlyHours
	}
	if cfg.MonthlyHours <= 0 {
		return fmt.Errorf("monthly hours must be greater than 0 (received %.2f)", input.MonthlyHours)
	}

	return nil
}

// processCategoryExtensions validates the config-file keyword extensions
// against the known category set.
func processCategoryExtensions(cfg *Config, input *ConfigRawInput) error {
	if len(input.Categories) == 0 {
		return nil
	}

	known := make(map[schema.TaskCategory]struct{}, len(schema.AllCategories))
	for _, cat := range schema.AllCategories {
		known[cat] = struct{}{}
	}

	cfg.ExtraKeywords = make(map[schema.TaskCategory][]string, len(input.Categories))
	for name, keywords := range input.Categories {
		cat := schema.TaskCategory(name)
		if _, ok := known[cat]; !ok {
			return fmt.Errorf("unknown category '%s' in keyword extensions", name)
		}
		cleaned := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				cleaned = append(cleaned, kw)
			}
		}
		if len(cleaned) > 0 {
			cfg.ExtraKeywords[cat] = cleaned
		}
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Analysis Backend Validation ---
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend != "" {
		if _, ok := schema.ValidCacheBackends[cfg.AnalysisBackend]; !ok {
			return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
		}
		cfg.AnalysisDBConnect = input.AnalysisDBConnect
		if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
			return err
		}

		// Validate that cache and analysis use different databases
		if cfg.CacheBackend == cfg.AnalysisBackend && cfg.CacheBackend != schema.NoneBackend {
			// For SQLite, resolve to actual file paths to catch default path conflicts
			if cfg.CacheBackend == schema.SQLiteBackend {
				cacheDBPath := cfg.CacheDBConnect
				if cacheDBPath == "" {
					cacheDBPath = GetCacheDBFilePath()
				}
				analysisDBPath := cfg.AnalysisDBConnect
				if analysisDBPath == "" {
					analysisDBPath = GetAnalysisDBFilePath()
				}
				if cacheDBPath == analysisDBPath {
					return fmt.Errorf("cache and analysis storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
				}
			}
		}
	}

	return nil
}
