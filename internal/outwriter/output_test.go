package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pq "github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/internal/parquet"
	"github.com/rotnitxe/kpknfit/schema"
)

func testConfig(t *testing.T, mode schema.OutputMode, name string) *contract.Config {
	t.Helper()
	return &contract.Config{
		Output:      mode,
		OutputFile:  filepath.Join(t.TempDir(), name),
		Precision:   1,
		ResultLimit: 10,
		Width:       120,
		MemoBackend: schema.MemoryBackend,
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func sampleSummary() schema.SessionSummary {
	squat := schema.ExerciseDrain{
		Index: 0, ExerciseID: "squat", Name: "Back Squat", PrimaryMuscle: "Quads", WorkingSets: 4,
		Drain:        schema.SetDrainResult{CNSDrainPct: 20, MuscularDrainPct: 25, SpinalDrainPct: 30},
		Contribution: 75, Culprit: true, CulpritFor: []string{"Quads"},
	}
	ext := schema.ExerciseDrain{
		Index: 1, ExerciseID: "leg-ext", Name: "Leg Extension", PrimaryMuscle: "Quads", WorkingSets: 3,
		Drain:        schema.SetDrainResult{CNSDrainPct: 5, MuscularDrainPct: 10, SpinalDrainPct: 0},
		Contribution: 25,
	}
	return schema.SessionSummary{
		SessionID:       "leg-day",
		PerMuscleVolume: map[string]float64{"Quads": 7.5},
		Totals:          schema.SetDrainResult{CNSDrainPct: 25, MuscularDrainPct: 35, SpinalDrainPct: 30},
		StressScore:     64,
		StressLevel:     "Optimal",
		Alerts: []schema.VolumeAlert{{
			SessionID: "leg-day", Muscle: "Quads", Kind: schema.OverloadAlert, Volume: 7.5, Threshold: 6,
			Message: "Quads: 7.5 effective sets exceed the session limit of 6.0", CulpritExerciseName: "Back Squat",
		}},
		WeekAlerts:      []schema.WeekAlert{},
		Exercises:       []schema.ExerciseDrain{squat, ext},
		ExerciseRanking: []schema.ExerciseDrain{squat, ext},
		MuscleRanking: []schema.MuscleVolume{{
			Muscle: "Quads", EffectiveVolume: 7.5, FatigueShare: 31.5, StimulusSets: 6, FlatSets: 7, WeeklyFlatVolume: 7, SessionLimit: 6, WeeklyMRV: 18, WorkingSets: 7,
		}},
		Sets: []schema.SetSnapshot{
			{ExerciseIndex: 0, SetIndex: 0, ExerciseID: "squat", Muscle: "Quads", RestSeconds: 180, EffectiveRPE: 8,
				Drain: schema.SetDrainResult{CNSDrainPct: 5}, Running: schema.SetDrainResult{CNSDrainPct: 5}},
			{ExerciseIndex: 0, SetIndex: 1, ExerciseID: "squat", Muscle: "Quads", AccumulatedSets: 1, RestSeconds: 180, EffectiveRPE: 9,
				Drain: schema.SetDrainResult{CNSDrainPct: 6}, Running: schema.SetDrainResult{CNSDrainPct: 11}},
		},
	}
}

func sampleSessionReport() schema.SessionReport {
	return schema.SessionReport{
		EvaluationID: "eval-1",
		EvaluatedAt:  time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		AthleteID:    "ana",
		Tanks:        schema.BatteryTanks{CNS: 280, Muscular: 350, Spinal: 250},
		Unresolved:   []string{"Mystery Move"},
		Summary:      sampleSummary(),
	}
}

func sampleRecommendationReport() schema.RecommendationReport {
	base := schema.VolumeRecommendation{MuscleGroup: "Chest", MinEffectiveVolume: 14, MaxAdaptiveVolume: 20, MaxRecoverableVolume: 25, FrequencyCap: 20}
	adjusted := base
	adjusted.MaxAdaptiveVolume = 17
	return schema.RecommendationReport{
		AthleteID: "ana", Phase: schema.AccumulationPhase, Intensity: schema.RPE89Tier, Frequency: 2,
		Classification: &schema.Classification{Score: 11, Band: schema.AdvancedBand, Range: schema.VolumeRange{Min: 14, Max: 22}},
		Lifts:          &schema.LiftsRecommendation{Level: schema.AdvancedBand, Phase: schema.AccumulationPhase, MinLifts: 325, MaxLifts: 625},
		Recommendations: []schema.AdjustedRecommendation{{
			Base: base, Adjusted: adjusted, Adjustment: schema.FeedbackAdjustment{Factor: 0.9, Reason: schema.RecoveryDebtReason},
		}},
	}
}

func TestWriteRecommendations(t *testing.T) {
	report := sampleRecommendationReport()

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "rec.txt")
		require.NoError(t, WriteRecommendations(report, cfg, time.Millisecond))
		out := readFile(t, cfg.OutputFile)
		assert.Contains(t, out, "score 11, advanced band")
		assert.Contains(t, out, "Chest")
		assert.Contains(t, out, "recovery_debt")
		assert.Contains(t, out, "325-625 lifts")
	})

	t.Run("csv", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut, "rec.csv")
		require.NoError(t, WriteRecommendations(report, cfg, 0))
		records := readCSV(t, cfg.OutputFile)
		require.Len(t, records, 2)
		assert.Equal(t, recommendationHeader, records[0])
		assert.Equal(t, []string{"1", "Chest", "14", "20", "25", "20", "14", "17", "25", "0.9", "recovery_debt"}, records[1])
	})

	t.Run("json", func(t *testing.T) {
		cfg := testConfig(t, schema.JSONOut, "rec.json")
		require.NoError(t, WriteRecommendations(report, cfg, 0))
		var decoded schema.RecommendationReport
		require.NoError(t, json.Unmarshal([]byte(readFile(t, cfg.OutputFile)), &decoded))
		assert.Equal(t, report, decoded)
	})

	t.Run("xlsx", func(t *testing.T) {
		cfg := testConfig(t, schema.XLSXOut, "rec.xlsx")
		require.NoError(t, WriteRecommendations(report, cfg, 0))
		f, err := excelize.OpenFile(cfg.OutputFile)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		rows, err := f.GetRows("Recommendations")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "muscle", rows[0][1])
		assert.Equal(t, "Chest", rows[1][1])
	})

	t.Run("parquet is rejected", func(t *testing.T) {
		cfg := testConfig(t, schema.ParquetOut, "rec.parquet")
		assert.Error(t, WriteRecommendations(report, cfg, 0))
	})
}

func TestWritePlan(t *testing.T) {
	report := schema.PlanReport{
		Program: "PPL", AthleteID: "ana", Phase: schema.AccumulationPhase, Intensity: schema.RPE89Tier,
		Comparisons: []schema.PlanComparison{
			{Muscle: "Chest", PlannedVolume: 12, Frequency: 2, Status: schema.WithinPlan,
				Recommendation: schema.VolumeRecommendation{MuscleGroup: "Chest", MinEffectiveVolume: 10, MaxAdaptiveVolume: 14, MaxRecoverableVolume: 18}},
			{Muscle: "Triceps", PlannedVolume: 6, Frequency: 2, Status: schema.UnderPlan,
				Recommendation: schema.VolumeRecommendation{MuscleGroup: "Triceps", MinEffectiveVolume: 12, MaxAdaptiveVolume: 17, MaxRecoverableVolume: 21}},
		},
		Issues: []schema.SessionVolumeIssue{{Session: "Push", Muscle: "Chest", Check: schema.SessionVolumeCheck{Sets: 13, Max: 12, Warning: 10, OverLimit: true, Warn: true}}},
	}

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "plan.txt")
		require.NoError(t, WritePlan(report, cfg, 0))
		out := readFile(t, cfg.OutputFile)
		assert.Contains(t, out, "Program PPL")
		assert.Contains(t, out, "Push: 13 sets of Chest is over the limit")
		assert.Contains(t, out, "under")
	})

	t.Run("csv", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut, "plan.csv")
		require.NoError(t, WritePlan(report, cfg, 0))
		records := readCSV(t, cfg.OutputFile)
		require.Len(t, records, 3)
		assert.Equal(t, []string{"2", "Triceps", "6.0", "2", "12", "17", "21", "under"}, records[2])
	})

	t.Run("xlsx has a sheet per table", func(t *testing.T) {
		cfg := testConfig(t, schema.XLSXOut, "plan.xlsx")
		require.NoError(t, WritePlan(report, cfg, 0))
		f, err := excelize.OpenFile(cfg.OutputFile)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, []string{"Plan", "Session Checks"}, f.GetSheetList())
	})
}

func TestWriteSession(t *testing.T) {
	report := sampleSessionReport()

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "session.txt")
		require.NoError(t, WriteSession(report, cfg, time.Millisecond))
		out := readFile(t, cfg.OutputFile)
		assert.Contains(t, out, "Session leg-day: stress 64.0 (Optimal)")
		assert.Contains(t, out, "Back Squat")
		assert.Contains(t, out, "exceed the session limit")
		assert.Contains(t, out, "Skipped without a fatigue profile: Mystery Move")
		assert.Contains(t, out, "Evaluation eval-1")
	})

	t.Run("csv ranks exercises", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut, "session.csv")
		require.NoError(t, WriteSession(report, cfg, 0))
		records := readCSV(t, cfg.OutputFile)
		require.Len(t, records, 3)
		assert.Equal(t, exerciseHeader, records[0])
		assert.Equal(t, "squat", records[1][2])
		assert.Equal(t, "Quads", records[1][11])
		assert.Equal(t, "leg-ext", records[2][2])
	})

	t.Run("json", func(t *testing.T) {
		cfg := testConfig(t, schema.JSONOut, "session.json")
		require.NoError(t, WriteSession(report, cfg, 0))
		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(readFile(t, cfg.OutputFile)), &decoded))
		assert.Equal(t, "eval-1", decoded["evaluation_id"])
		assert.Contains(t, decoded, "summary")
	})

	t.Run("parquet writes sets and exercises", func(t *testing.T) {
		cfg := testConfig(t, schema.ParquetOut, "session.parquet")
		require.NoError(t, WriteSession(report, cfg, 0))

		sets, err := pq.ReadFile[parquet.SetDrain](cfg.OutputFile)
		require.NoError(t, err)
		require.Len(t, sets, 2)
		assert.Equal(t, "eval-1", sets[1].EvaluationID)
		assert.InDelta(t, 11.0, sets[1].RunningCNSPct, 1e-9)

		exercises, err := pq.ReadFile[parquet.ExerciseDrain](siblingPath(cfg.OutputFile, "exercises"))
		require.NoError(t, err)
		require.Len(t, exercises, 2)
		require.NotNil(t, exercises[0].CulpritFor)
		assert.Equal(t, "Quads", *exercises[0].CulpritFor)
		assert.Nil(t, exercises[1].CulpritFor)
	})

	t.Run("xlsx", func(t *testing.T) {
		cfg := testConfig(t, schema.XLSXOut, "session.xlsx")
		require.NoError(t, WriteSession(report, cfg, 0))
		f, err := excelize.OpenFile(cfg.OutputFile)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		rows, err := f.GetRows("Alerts")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Back Squat", rows[1][6])
	})
}

func TestWriteWeek(t *testing.T) {
	second := sampleSummary()
	second.SessionID = "leg-day-2"
	report := schema.WeekReport{
		EvaluationID: "eval-2",
		EvaluatedAt:  time.Date(2026, 3, 6, 10, 0, 0, 0, time.UTC),
		AthleteID:    "ana",
		Tanks:        schema.BatteryTanks{CNS: 280, Muscular: 350, Spinal: 250},
		Week: schema.WeekSummary{
			Sessions:         []schema.SessionSummary{sampleSummary(), second},
			WeeklyFlatVolume: map[string]float64{"Quads": 14},
			WeekAlerts:       []schema.WeekAlert{},
			MeanDrain:        schema.SetDrainResult{CNSDrainPct: 25},
			DailyLoads:       []float64{64, 0, 0, 64, 0, 0, 0},
			ACWR:             &schema.ACWRResult{Acute: 40, Chronic: 30, Ratio: 1.33, Zone: "risk zone"},
		},
	}

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "week.txt")
		require.NoError(t, WriteWeek(report, cfg, 0))
		out := readFile(t, cfg.OutputFile)
		assert.Contains(t, out, "Week of 2 sessions")
		assert.Contains(t, out, "Session leg-day-2")
		assert.Contains(t, out, "ACWR 1.3")
		assert.Contains(t, out, "Daily stress: 64.0 0.0 0.0 64.0 0.0 0.0 0.0")
		assert.Contains(t, out, "risk zone")
	})

	t.Run("csv has a row per session", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut, "week.csv")
		require.NoError(t, WriteWeek(report, cfg, 0))
		records := readCSV(t, cfg.OutputFile)
		require.Len(t, records, 3)
		assert.Equal(t, []string{"leg-day-2", "64.0", "Optimal", "25.0", "35.0", "30.0", "1"}, records[2])
	})

	t.Run("parquet keeps both sessions", func(t *testing.T) {
		cfg := testConfig(t, schema.ParquetOut, "week.parquet")
		require.NoError(t, WriteWeek(report, cfg, 0))
		sets, err := pq.ReadFile[parquet.SetDrain](cfg.OutputFile)
		require.NoError(t, err)
		assert.Len(t, sets, 4)
	})

	t.Run("xlsx", func(t *testing.T) {
		cfg := testConfig(t, schema.XLSXOut, "week.xlsx")
		require.NoError(t, WriteWeek(report, cfg, 0))
		f, err := excelize.OpenFile(cfg.OutputFile)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, []string{"Week", "Weekly Volume", "Exercises", "Muscles", "Alerts"}, f.GetSheetList())
	})
}

func TestWriteTanks(t *testing.T) {
	report := schema.TanksReport{
		AthleteID: "ana",
		Settings:  schema.Settings{BodyweightKg: 82, CalorieGoal: schema.DeficitGoal},
		Baseline:  schema.BatteryTanks{CNS: 280, Muscular: 350, Spinal: 250},
		Tanks:     schema.BatteryTanks{CNS: 266, Muscular: 329.4, Spinal: 261.4},
	}

	cfg := testConfig(t, schema.TextOut, "tanks.txt")
	require.NoError(t, WriteTanks(report, cfg))
	out := readFile(t, cfg.OutputFile)
	assert.Contains(t, out, "Bodyweight 82.0 kg, deficit calories, moderate life stress")
	assert.Contains(t, out, "329.4")

	cfg = testConfig(t, schema.CSVOut, "tanks.csv")
	require.NoError(t, WriteTanks(report, cfg))
	records := readCSV(t, cfg.OutputFile)
	assert.Equal(t, [][]string{
		{"channel", "baseline", "tank"},
		{"cns", "280.0", "266.0"},
		{"muscular", "350.0", "329.4"},
		{"spinal", "250.0", "261.4"},
	}, records)

	assert.Error(t, WriteTanks(report, testConfig(t, schema.XLSXOut, "tanks.xlsx")))
}

func TestWriteMetrics(t *testing.T) {
	model := &schema.MetricsRenderModel{
		Title:       "Model",
		Description: "desc",
		Tables: []schema.MetricsTable{{
			Name: "phase_factors", Purpose: "Volume scaling",
			Factors: []schema.MetricsFactor{{Key: "accumulation", Value: 1}, {Key: "deload", Value: 0.4}},
		}},
		Formulas: map[string]string{"mrv": "round(mav * 1.25)"},
	}

	cfg := testConfig(t, schema.TextOut, "metrics.txt")
	require.NoError(t, WriteMetrics(model, cfg))
	out := readFile(t, cfg.OutputFile)
	assert.Contains(t, out, "phase_factors: Volume scaling")
	assert.Contains(t, out, "deload=0.4")
	assert.Contains(t, out, "mrv = round(mav * 1.25)")

	cfg = testConfig(t, schema.CSVOut, "metrics.csv")
	require.NoError(t, WriteMetrics(model, cfg))
	records := readCSV(t, cfg.OutputFile)
	assert.Equal(t, []string{"phase_factors", "deload", "0.4"}, records[2])
}

func TestWriteCatalog(t *testing.T) {
	exercises := []schema.ExerciseFatigueProfile{
		{ID: "bench", Name: "Bench Press", EFC: 3.5, CNC: 3.5, SSC: 0.3, PrimaryMuscle: "Chest", Equipment: "barbell"},
	}

	cfg := testConfig(t, schema.TextOut, "catalog.txt")
	require.NoError(t, WriteCatalog(exercises, cfg))
	assert.Contains(t, readFile(t, cfg.OutputFile), "Catalog holds 1 exercises")

	cfg = testConfig(t, schema.JSONOut, "catalog.json")
	require.NoError(t, WriteCatalog(exercises, cfg))
	var decoded schema.CatalogFile
	require.NoError(t, json.Unmarshal([]byte(readFile(t, cfg.OutputFile)), &decoded))
	assert.Equal(t, exercises, decoded.Exercises)
}

func TestGetMaxTableNameWidth(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{width: 60, want: 15},
		{width: 100, want: 30},
		{width: 400, want: 50},
	}
	for _, tt := range tests {
		cfg := &contract.Config{Width: tt.width}
		assert.Equal(t, tt.want, GetMaxTableNameWidth(cfg), "width %d", tt.width)
	}
}

func TestLabelFor(t *testing.T) {
	cfg := &contract.Config{}
	assert.Equal(t, "Critical", labelFor(cfg, 85))
	assert.Equal(t, "Low", labelFor(cfg, 5))
	cfg.UseColors = true
	assert.True(t, strings.Contains(labelFor(cfg, 85), "Critical"))
}
