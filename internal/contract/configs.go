package contract

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/rotnitxe/kpknfit/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit  = 25
	MaxResultLimit      = 1000
	DefaultPrecision    = 1
	DefaultFrequency    = 2
	MaxFrequency        = 7
	DefaultAthleteID    = "default"
	DefaultLogLevel     = "warn"
	DefaultRestSeconds  = 90
	DefaultSessionLimit = schema.DefaultSessionLimit
	DefaultWeeklyMRV    = schema.DefaultWeeklyMRV
)

// Config holds the runtime configuration for an evaluation.
// This struct remains the "final, validated" config.
type Config struct {
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	Phase        schema.TrainingPhase
	Intensity    schema.IntensityTier
	Frequency    int
	SessionLimit float64
	WeeklyMRV    float64
	RestSeconds  int

	AthleteID    string
	AthleteFile  string // optional YAML/JSON file that overrides the settings store
	HistoryFile  string // optional daily stress history for the ACWR
	InferMissing bool

	CatalogBackend   schema.DatabaseBackend
	CatalogDBConnect string // Please use env var as this is plaintext

	MemoBackend   schema.DatabaseBackend
	MemoDBConnect string // Please use env var as this is plaintext

	LogLevel zapcore.Level
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile       string  `mapstructure:"output-file"`
	Limit            int     `mapstructure:"limit"`
	Precision        int     `mapstructure:"precision"`
	Output           string  `mapstructure:"output"`
	Width            int     `mapstructure:"width"`
	Color            string  `mapstructure:"color"`
	Phase            string  `mapstructure:"phase"`
	Intensity        string  `mapstructure:"intensity"`
	Frequency        int     `mapstructure:"frequency"`
	SessionLimit     float64 `mapstructure:"session-limit"`
	WeeklyMRV        float64 `mapstructure:"weekly-mrv"`
	Rest             int     `mapstructure:"rest"`
	Athlete          string  `mapstructure:"athlete"`
	AthleteFile      string  `mapstructure:"athlete-file"`
	CatalogBackend   string  `mapstructure:"catalog-backend"`
	CatalogDBConnect string  `mapstructure:"catalog-db-connect"`
	MemoBackend      string  `mapstructure:"memo-backend"`
	MemoDBConnect    string  `mapstructure:"memo-db-connect"`
	LogLevel         string  `mapstructure:"log-level"`

	// --- Fields from sessionCmd and weekCmd flags ---
	InferMissing bool   `mapstructure:"infer-missing"`
	History      string `mapstructure:"history"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateTrainingInputs(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of connection strings
// for the networked backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend, schema.MemoryBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	case schema.RedisBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.HasPrefix(connStr, "redis://") && !strings.HasPrefix(connStr, "rediss://") && !strings.Contains(connStr, ":") {
			return fmt.Errorf("Redis connection string must be host:port or a redis:// URL")
		}
	}
	return nil
}

// validateBackendConfigs validates catalog and memo backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CatalogBackend = schema.DatabaseBackend(strings.ToLower(input.CatalogBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CatalogBackend]; !ok {
		return fmt.Errorf("invalid catalog backend '%s'. must be sqlite, mysql, postgresql, none", input.CatalogBackend)
	}
	cfg.CatalogDBConnect = input.CatalogDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CatalogBackend, cfg.CatalogDBConnect); err != nil {
		return err
	}

	cfg.MemoBackend = schema.DatabaseBackend(strings.ToLower(input.MemoBackend))
	if _, ok := schema.ValidMemoBackends[cfg.MemoBackend]; !ok {
		return fmt.Errorf("invalid memo backend '%s'. must be sqlite, mysql, postgresql, redis, memory, none", input.MemoBackend)
	}
	cfg.MemoDBConnect = input.MemoDBConnect
	if err := ValidateDatabaseConnectionString(cfg.MemoBackend, cfg.MemoDBConnect); err != nil {
		return err
	}

	// Catalog and memo tables never share a SQLite file
	if cfg.CatalogBackend == schema.SQLiteBackend && cfg.MemoBackend == schema.SQLiteBackend {
		catalogPath := cfg.CatalogDBConnect
		if catalogPath == "" {
			catalogPath = GetCatalogDBFilePath()
		}
		memoPath := cfg.MemoDBConnect
		if memoPath == "" {
			memoPath = GetMemoDBFilePath()
		}
		if catalogPath == memoPath {
			return fmt.Errorf("catalog and memo storage must use different SQLite database files. Both resolve to %q", catalogPath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.AthleteFile = input.AthleteFile
	cfg.HistoryFile = input.History
	cfg.InferMissing = input.InferMissing

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, xlsx, parquet", input.Output)
	}
	if (cfg.Output == schema.XLSXOut || cfg.Output == schema.ParquetOut) && cfg.OutputFile == "" {
		return fmt.Errorf("output format '%s' requires --output-file", cfg.Output)
	}

	level := input.LogLevel
	if level == "" {
		level = DefaultLogLevel
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level value: %w", err)
	}
	cfg.LogLevel = lvl
	return nil
}

// validateTrainingInputs processes the periodization and aggregation fields.
func validateTrainingInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Phase = schema.TrainingPhase(strings.ToLower(input.Phase))
	if _, ok := schema.ValidPhases[cfg.Phase]; !ok {
		return fmt.Errorf("invalid phase '%s'. must be accumulation, transformation, realization, deload", input.Phase)
	}

	cfg.Intensity = schema.IntensityTier(strings.ToLower(input.Intensity))
	if _, ok := schema.ValidIntensityTiers[cfg.Intensity]; !ok {
		return fmt.Errorf("invalid intensity '%s'. must be failure, rpe_8_9, rpe_6_7", input.Intensity)
	}

	if input.Frequency < 1 || input.Frequency > MaxFrequency {
		return fmt.Errorf("frequency must be between 1 and %d (received %d)", MaxFrequency, input.Frequency)
	}
	cfg.Frequency = input.Frequency

	if input.SessionLimit < 0 || input.WeeklyMRV < 0 || input.Rest < 0 {
		return fmt.Errorf("session-limit, weekly-mrv and rest cannot be negative")
	}
	cfg.SessionLimit = input.SessionLimit
	if cfg.SessionLimit == 0 {
		cfg.SessionLimit = DefaultSessionLimit
	}
	cfg.WeeklyMRV = input.WeeklyMRV
	if cfg.WeeklyMRV == 0 {
		cfg.WeeklyMRV = DefaultWeeklyMRV
	}
	cfg.RestSeconds = input.Rest
	if cfg.RestSeconds == 0 {
		cfg.RestSeconds = DefaultRestSeconds
	}

	cfg.AthleteID = strings.TrimSpace(input.Athlete)
	if cfg.AthleteID == "" {
		cfg.AthleteID = DefaultAthleteID
	}
	return nil
}
