// Package parquet exports per-set and per-exercise drain data to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/rotnitxe/kpknfit/schema"
)

// SetDrain is one working set of an evaluated session.
type SetDrain struct {
	// EvaluationID groups the rows written by one command run
	EvaluationID string `parquet:"evaluation_id,snappy"`

	// SessionID is the session the set belongs to
	SessionID string `parquet:"session_id,snappy"`

	// EvaluatedAt is when the session was evaluated (stored as TIMESTAMP with nanosecond precision)
	EvaluatedAt time.Time `parquet:"evaluated_at,snappy"`

	ExerciseIndex   int32  `parquet:"exercise_index,snappy"`
	SetIndex        int32  `parquet:"set_index,snappy"`
	ExerciseID      string `parquet:"exercise_id,snappy"`
	Muscle          string `parquet:"muscle,snappy"`
	AccumulatedSets int32  `parquet:"accumulated_sets,snappy"`
	RestSeconds     int32  `parquet:"rest_seconds,snappy"`

	EffectiveRPE float64 `parquet:"effective_rpe,snappy"`

	// Drain of this set in percent of each tank (unclamped)
	CNSDrainPct      float64 `parquet:"cns_drain_pct,snappy"`
	MuscularDrainPct float64 `parquet:"muscular_drain_pct,snappy"`
	SpinalDrainPct   float64 `parquet:"spinal_drain_pct,snappy"`

	// Running session totals after this set (clamped to [0,100])
	RunningCNSPct      float64 `parquet:"running_cns_pct,snappy"`
	RunningMuscularPct float64 `parquet:"running_muscular_pct,snappy"`
	RunningSpinalPct   float64 `parquet:"running_spinal_pct,snappy"`
}

// ExerciseDrain is the aggregated drain of one exercise of an evaluated session.
type ExerciseDrain struct {
	EvaluationID  string    `parquet:"evaluation_id,snappy"`
	SessionID     string    `parquet:"session_id,snappy"`
	EvaluatedAt   time.Time `parquet:"evaluated_at,snappy"`
	ExerciseIndex int32     `parquet:"exercise_index,snappy"`
	ExerciseID    string    `parquet:"exercise_id,snappy"`
	Name          string    `parquet:"name,snappy"`
	PrimaryMuscle string    `parquet:"primary_muscle,snappy"`
	WorkingSets   int32     `parquet:"working_sets,snappy"`

	CNSDrainPct      float64 `parquet:"cns_drain_pct,snappy"`
	MuscularDrainPct float64 `parquet:"muscular_drain_pct,snappy"`
	SpinalDrainPct   float64 `parquet:"spinal_drain_pct,snappy"`
	Contribution     float64 `parquet:"contribution,snappy"`

	// CulpritFor lists the muscles whose session limit this exercise crossed (nullable)
	CulpritFor *string `parquet:"culprit_for,optional,snappy"`
}

// WriteSetDrainParquet writes a slice of SetDrain structs to a Parquet file.
func WriteSetDrainParquet(data []SetDrain, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteExerciseDrainParquet writes a slice of ExerciseDrain structs to a Parquet file.
func WriteExerciseDrainParquet(data []ExerciseDrain, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows whose schema is derived from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertSetSnapshots converts the per-set records of session summaries for Parquet export.
func ConvertSetSnapshots(evaluationID string, at time.Time, sessions []schema.SessionSummary) []SetDrain {
	var result []SetDrain
	for _, s := range sessions {
		for _, set := range s.Sets {
			result = append(result, SetDrain{
				EvaluationID:       evaluationID,
				SessionID:          s.SessionID,
				EvaluatedAt:        at,
				ExerciseIndex:      int32(set.ExerciseIndex),
				SetIndex:           int32(set.SetIndex),
				ExerciseID:         set.ExerciseID,
				Muscle:             set.Muscle,
				AccumulatedSets:    int32(set.AccumulatedSets),
				RestSeconds:        int32(set.RestSeconds),
				EffectiveRPE:       set.EffectiveRPE,
				CNSDrainPct:        set.Drain.CNSDrainPct,
				MuscularDrainPct:   set.Drain.MuscularDrainPct,
				SpinalDrainPct:     set.Drain.SpinalDrainPct,
				RunningCNSPct:      set.Running.CNSDrainPct,
				RunningMuscularPct: set.Running.MuscularDrainPct,
				RunningSpinalPct:   set.Running.SpinalDrainPct,
			})
		}
	}
	return result
}

// ConvertExerciseDrains converts the exercise drains of session summaries for Parquet export.
func ConvertExerciseDrains(evaluationID string, at time.Time, sessions []schema.SessionSummary) []ExerciseDrain {
	var result []ExerciseDrain
	for _, s := range sessions {
		for _, e := range s.Exercises {
			row := ExerciseDrain{
				EvaluationID:     evaluationID,
				SessionID:        s.SessionID,
				EvaluatedAt:      at,
				ExerciseIndex:    int32(e.Index),
				ExerciseID:       e.ExerciseID,
				Name:             e.Name,
				PrimaryMuscle:    e.PrimaryMuscle,
				WorkingSets:      int32(e.WorkingSets),
				CNSDrainPct:      e.Drain.CNSDrainPct,
				MuscularDrainPct: e.Drain.MuscularDrainPct,
				SpinalDrainPct:   e.Drain.SpinalDrainPct,
				Contribution:     e.Contribution,
			}
			if len(e.CulpritFor) > 0 {
				muscles := schema.FormatMuscles(e.CulpritFor)
				row.CulpritFor = &muscles
			}
			result = append(result, row)
		}
	}
	return result
}
