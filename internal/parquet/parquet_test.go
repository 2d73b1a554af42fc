package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotnitxe/kpknfit/schema"
)

func sampleSessions() []schema.SessionSummary {
	return []schema.SessionSummary{
		{
			SessionID: "push-a",
			Exercises: []schema.ExerciseDrain{
				{Index: 0, ExerciseID: "bench", Name: "Bench Press", PrimaryMuscle: "Chest", WorkingSets: 2,
					Drain: schema.SetDrainResult{CNSDrainPct: 9.5, MuscularDrainPct: 7.1, SpinalDrainPct: 1.2}, Contribution: 80},
				{Index: 1, ExerciseID: "fly", Name: "Cable Fly", PrimaryMuscle: "Chest", WorkingSets: 1,
					Drain: schema.SetDrainResult{CNSDrainPct: 1.5, MuscularDrainPct: 2.5}, Contribution: 20,
					Culprit: true, CulpritFor: []string{"Chest"}},
			},
			Sets: []schema.SetSnapshot{
				{ExerciseIndex: 0, SetIndex: 0, ExerciseID: "bench", Muscle: "Chest", AccumulatedSets: 0, RestSeconds: 120, EffectiveRPE: 8,
					Drain: schema.SetDrainResult{CNSDrainPct: 4.5, MuscularDrainPct: 3.4, SpinalDrainPct: 0.6}},
				{ExerciseIndex: 0, SetIndex: 1, ExerciseID: "bench", Muscle: "Chest", AccumulatedSets: 1, RestSeconds: 120, EffectiveRPE: 9,
					Drain: schema.SetDrainResult{CNSDrainPct: 5.0, MuscularDrainPct: 3.7, SpinalDrainPct: 0.6},
					Running: schema.SetDrainResult{CNSDrainPct: 9.5, MuscularDrainPct: 7.1, SpinalDrainPct: 1.2}},
			},
		},
	}
}

func TestSetDrainStructTags(t *testing.T) {
	schema := parquet.SchemaOf(new(SetDrain))
	require.NotNil(t, schema)

	expectedColumns := []string{
		"evaluation_id",
		"session_id",
		"evaluated_at",
		"exercise_index",
		"set_index",
		"exercise_id",
		"muscle",
		"accumulated_sets",
		"rest_seconds",
		"effective_rpe",
		"cns_drain_pct",
		"muscular_drain_pct",
		"spinal_drain_pct",
		"running_cns_pct",
		"running_muscular_pct",
		"running_spinal_pct",
	}
	for _, colName := range expectedColumns {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestExerciseDrainStructTags(t *testing.T) {
	schema := parquet.SchemaOf(new(ExerciseDrain))
	require.NotNil(t, schema)

	for _, colName := range []string{"evaluation_id", "name", "primary_muscle", "contribution", "culprit_for"} {
		_, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteSetDrainParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "sets.parquet")
	at := time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)

	data := ConvertSetSnapshots("eval-1", at, sampleSessions())
	require.Len(t, data, 2)
	require.NoError(t, WriteSetDrainParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[SetDrain](file)
	defer reader.Close()

	readData := make([]SetDrain, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	assert.Equal(t, len(data), n)
	for i := range data {
		assert.Equal(t, "eval-1", readData[i].EvaluationID)
		assert.Equal(t, "push-a", readData[i].SessionID)
		assert.Equal(t, data[i].SetIndex, readData[i].SetIndex)
		assert.InDelta(t, data[i].CNSDrainPct, readData[i].CNSDrainPct, 1e-9)
		assert.WithinDuration(t, at, readData[i].EvaluatedAt, time.Nanosecond)
	}
	assert.InDelta(t, 9.5, readData[1].RunningCNSPct, 1e-9)
}

func TestWriteExerciseDrainParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "exercises.parquet")
	data := ConvertExerciseDrains("eval-2", time.Now(), sampleSessions())
	require.Len(t, data, 2)
	assert.Nil(t, data[0].CulpritFor)
	require.NotNil(t, data[1].CulpritFor)
	assert.Equal(t, "Chest", *data[1].CulpritFor)

	require.NoError(t, WriteExerciseDrainParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[ExerciseDrain](file)
	defer reader.Close()

	readData := make([]ExerciseDrain, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 2, n)
	assert.Nil(t, readData[0].CulpritFor)
	require.NotNil(t, readData[1].CulpritFor)
	assert.Equal(t, "Chest", *readData[1].CulpritFor)
	assert.Equal(t, "Cable Fly", readData[1].Name)
}

func TestWriteSetDrainParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteSetDrainParquet([]SetDrain{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "An empty parquet file still has a footer")
}

func TestWriteSetDrainParquet_InvalidPath(t *testing.T) {
	err := WriteSetDrainParquet(nil, "/nonexistent/directory/sets.parquet")
	assert.Error(t, err)
}
