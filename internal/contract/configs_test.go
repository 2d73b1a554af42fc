package contract

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/rotnitxe/kpknfit/schema"
)

// validInput returns a raw input that passes validation with default stores.
func validInput(t *testing.T) *ConfigRawInput {
	dir := t.TempDir()
	return &ConfigRawInput{
		Limit:            10,
		Precision:        1,
		Output:           "text",
		Color:            "no",
		Phase:            string(schema.AccumulationPhase),
		Intensity:        string(schema.RPE89Tier),
		Frequency:        2,
		CatalogBackend:   string(schema.SQLiteBackend),
		CatalogDBConnect: filepath.Join(dir, "catalog.db"),
		MemoBackend:      string(schema.SQLiteBackend),
		MemoDBConnect:    filepath.Join(dir, "memo.db"),
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "invalid phase", mutate: func(in *ConfigRawInput) { in.Phase = "peaking" }, expectError: true},
		{name: "deload phase", mutate: func(in *ConfigRawInput) { in.Phase = "DELOAD" }},
		{name: "invalid intensity", mutate: func(in *ConfigRawInput) { in.Intensity = "rpe_10" }, expectError: true},
		{name: "frequency zero", mutate: func(in *ConfigRawInput) { in.Frequency = 0 }, expectError: true},
		{name: "frequency above week", mutate: func(in *ConfigRawInput) { in.Frequency = 8 }, expectError: true},
		{name: "limit too large", mutate: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }, expectError: true},
		{name: "precision out of range", mutate: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: true},
		{name: "unknown output", mutate: func(in *ConfigRawInput) { in.Output = "yaml" }, expectError: true},
		{name: "xlsx without file", mutate: func(in *ConfigRawInput) { in.Output = "xlsx" }, expectError: true},
		{name: "xlsx with file", mutate: func(in *ConfigRawInput) { in.Output = "xlsx"; in.OutputFile = "out.xlsx" }},
		{name: "bad color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: true},
		{name: "bad log level", mutate: func(in *ConfigRawInput) { in.LogLevel = "loud" }, expectError: true},
		{name: "negative session limit", mutate: func(in *ConfigRawInput) { in.SessionLimit = -1 }, expectError: true},
		{name: "redis memo", mutate: func(in *ConfigRawInput) { in.MemoBackend = "redis"; in.MemoDBConnect = "localhost:6379" }},
		{name: "redis memo without address", mutate: func(in *ConfigRawInput) { in.MemoBackend = "redis"; in.MemoDBConnect = "" }, expectError: true},
		{name: "redis catalog is rejected", mutate: func(in *ConfigRawInput) { in.CatalogBackend = "redis" }, expectError: true},
		{name: "memory memo", mutate: func(in *ConfigRawInput) { in.MemoBackend = "memory" }},
		{
			name: "shared sqlite file",
			mutate: func(in *ConfigRawInput) {
				in.MemoDBConnect = in.CatalogDBConnect
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(t)
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput(t)))

	assert.Equal(t, schema.AccumulationPhase, cfg.Phase)
	assert.Equal(t, schema.RPE89Tier, cfg.Intensity)
	assert.Equal(t, DefaultSessionLimit, cfg.SessionLimit)
	assert.Equal(t, DefaultWeeklyMRV, cfg.WeeklyMRV)
	assert.Equal(t, DefaultRestSeconds, cfg.RestSeconds)
	assert.Equal(t, DefaultAthleteID, cfg.AthleteID)
	assert.Equal(t, zapcore.WarnLevel, cfg.LogLevel)
	assert.False(t, cfg.UseColors)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{schema.SQLiteBackend, "", false},
		{schema.NoneBackend, "", false},
		{schema.MemoryBackend, "", false},
		{schema.MySQLBackend, "", true},
		{schema.MySQLBackend, "user:pass@tcp(localhost:3306)/kpkn", false},
		{schema.MySQLBackend, "user:pass@localhost/kpkn", true},
		{schema.PostgreSQLBackend, "host=localhost dbname=kpkn", false},
		{schema.PostgreSQLBackend, "host=localhost", true},
		{schema.RedisBackend, "redis://localhost:6379/0", false},
		{schema.RedisBackend, "localhost:6379", false},
		{schema.RedisBackend, "localhost", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend)+"/"+tt.conn, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Phase: schema.RealizationPhase, Frequency: 3}
	clone := cfg.Clone()
	clone.Frequency = 5
	assert.Equal(t, 3, cfg.Frequency)
	assert.Equal(t, schema.RealizationPhase, clone.Phase)
}
