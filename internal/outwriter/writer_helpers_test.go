package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		precision int
		value     float64
		want      string
	}{
		{1, 17.46, "17.5"},
		{2, 17.456, "17.46"},
		{0, 2.6, "3"},
		{2, -3.333, "-3.33"},
	}
	for _, tt := range tests {
		fmtFloat, intFmt := createFormatters(tt.precision)
		assert.Equal(t, tt.want, fmtFloat(tt.value))
		assert.Equal(t, "%d", intFmt)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	drain := schema.SetDrainResult{CNSDrainPct: 4.5, MuscularDrainPct: 3, SpinalDrainPct: 0}
	require.NoError(t, writeJSON(&buf, drain))
	assert.Equal(t, "{\n  \"cns_drain_pct\": 4.5,\n  \"muscular_drain_pct\": 3,\n  \"spinal_drain_pct\": 0\n}\n", buf.String())

	err := writeJSON(&buf, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	rows := [][]string{{"Chest", "12"}, {"Back", "Lats, upper"}}
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"muscle", "sets"}, func(w *csv.Writer) error {
		return w.WriteAll(rows)
	})
	require.NoError(t, err)
	assert.Equal(t, "muscle,sets\nChest,12\nBack,\"Lats, upper\"\n", buf.String())

	err = writeCSVWithHeader(&buf, []string{"muscle"}, func(*csv.Writer) error { return assert.AnError })
	assert.ErrorIs(t, err, assert.AnError)
}

func TestWriteWithFile(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		called := false
		err := writeWithFile("", func(io.Writer) error {
			called = true
			return nil
		}, "Wrote tanks")
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tanks.json")
		err := writeWithFile(path, func(w io.Writer) error {
			return writeJSON(w, schema.BatteryTanks{CNS: 280, Muscular: 350, Spinal: 250})
		}, "Wrote tanks")
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		var tanks schema.BatteryTanks
		require.NoError(t, json.Unmarshal(content, &tanks))
		assert.InDelta(t, 350.0, tanks.Muscular, 1e-9)
	})

	t.Run("writer error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tanks.csv")
		err := writeWithFile(path, func(io.Writer) error { return assert.AnError }, "Wrote tanks")
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("bad path", func(t *testing.T) {
		err := writeWithFile("/nonexistent/dir/tanks.csv", func(io.Writer) error { return nil }, "Wrote tanks")
		require.Error(t, err)
	})
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	err := renderTable(&buf, []string{"Muscle", "Sets"}, [][]string{{"Chest", "12"}, {"Back", "9"}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, strings.ToUpper(out), "MUSCLE")
	assert.Contains(t, out, "Chest")
	assert.Contains(t, out, "9")
}

func TestSiblingPath(t *testing.T) {
	assert.Equal(t, "out/week_exercises.parquet", siblingPath("out/week.parquet", "exercises"))
	assert.Equal(t, "report_exercises", siblingPath("report", "exercises"))
}

func TestUnsupportedOutput(t *testing.T) {
	err := unsupportedOutput("parquet", "plans")
	require.Error(t, err)
	assert.Equal(t, "output format 'parquet' is not supported for plans", err.Error())
}

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeLines(&buf, "a", "", "b"))
	assert.Equal(t, "a\n\nb\n", buf.String())
}

func TestDrainCellsAndLabels(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	cells := drainCells(schema.SetDrainResult{CNSDrainPct: 12.34, MuscularDrainPct: 8, SpinalDrainPct: 0.05}, fmtFloat)
	assert.Equal(t, []string{"12.3", "8.0", "0.1"}, cells)

	plain := &contract.Config{UseColors: false}
	assert.Equal(t, contract.CriticalValue, labelFor(plain, 85))
	assert.Equal(t, contract.LowValue, labelFor(plain, 10))

	colored := &contract.Config{UseColors: true}
	assert.Contains(t, labelFor(colored, 65), contract.HighValue)
}
