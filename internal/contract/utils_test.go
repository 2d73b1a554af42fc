package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLabels(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{0, LowValue},
		{39.9, LowValue},
		{40, ModerateValue},
		{59.9, ModerateValue},
		{60, HighValue},
		{79.9, HighValue},
		{80, CriticalValue},
		{130, CriticalValue},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetPlainLabel(tt.pct), "drain %.1f%%", tt.pct)
		assert.Contains(t, GetColorLabel(tt.pct), tt.want)
	}
}

func TestSelectOutputFile(t *testing.T) {
	file, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, file)

	path := filepath.Join(t.TempDir(), "week.csv")
	file, err = SelectOutputFile(path)
	require.NoError(t, err)
	require.NoError(t, file.Close())
	assert.FileExists(t, path)

	_, err = SelectOutputFile(filepath.Join(t.TempDir(), "missing", "week.csv"))
	assert.Error(t, err)
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "Barbell...", TruncateName("Barbell Back Squat", 10))
	assert.Equal(t, "Squat", TruncateName("Squat", 10))
	assert.Equal(t, "Squat", TruncateName("Squat", 3), "widths of 3 or less never truncate")
	assert.Equal(t, "Sentadi...", TruncateName("Sentadilla búlgara", 10))
}

func TestColorizeText(t *testing.T) {
	assert.Contains(t, ColorizeText(CriticalValue), CriticalValue)
	assert.Equal(t, "Optimal", ColorizeText("Optimal"))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("perhaps")
	assert.Error(t, err)
}

func TestGetDBFilePaths(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	catalog := GetCatalogDBFilePath()
	memo := GetMemoDBFilePath()
	assert.Contains(t, catalog, ".kpkn_catalog.db")
	assert.Contains(t, memo, ".kpkn_memo.db")
	assert.NotEqual(t, catalog, memo)
	assert.True(t, strings.HasPrefix(catalog, homeDir), "path %s should start with home dir %s", catalog, homeDir)
}

func TestLoggerDefaultsToNop(t *testing.T) {
	SetLogger(nil)
	assert.NotNil(t, Logger())
	LogWarn("ignored in tests", assert.AnError)
}
