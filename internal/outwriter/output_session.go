package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/internal/parquet"
	"github.com/rotnitxe/kpknfit/schema"
)

var exerciseHeader = []string{
	"session", "rank", "exercise_id", "exercise", "primary_muscle", "working_sets",
	"cns_pct", "muscular_pct", "spinal_pct", "contribution", "label", "culprit_for",
}

// WriteSession outputs a session evaluation, dispatching based on the output format configured.
func WriteSession(report schema.SessionReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	sessions := []schema.SessionSummary{report.Summary}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, exerciseHeader, func(cw *csv.Writer) error {
				return writeExerciseRows(cw, sessions, fmtFloat, intFmt)
			})
		}, "Wrote CSV")
	case schema.XLSXOut:
		return writeXLSX(cfg.OutputFile, sessionSheets(sessions))
	case schema.ParquetOut:
		return writeDrainParquet(report.EvaluationID, report.EvaluatedAt, sessions, cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if _, err := fmt.Fprintf(w, "🔋 Tanks for %s: CNS %s, Muscular %s, Spinal %s\n",
				report.AthleteID, fmtFloat(report.Tanks.CNS), fmtFloat(report.Tanks.Muscular), fmtFloat(report.Tanks.Spinal)); err != nil {
				return err
			}
			if err := writeSessionText(w, report.Summary, cfg, fmtFloat); err != nil {
				return err
			}
			if err := writeUnresolved(w, report.Unresolved); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Evaluation %s completed in %v. Memo backend: %s\n", report.EvaluationID, duration, cfg.MemoBackend)
			return err
		}, "Wrote table")
	}
}

// writeSessionText writes the exercise ranking, muscle ranking and alerts of one session.
func writeSessionText(w io.Writer, s schema.SessionSummary, cfg *contract.Config, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "\n🏋️ Session %s: stress %s (%s)\n", s.SessionID, fmtFloat(s.StressScore), s.StressLevel); err != nil {
		return err
	}

	nameWidth := GetMaxTableNameWidth(cfg)
	var exercises [][]string
	for _, e := range schema.EnrichExercises(s.ExerciseRanking) {
		row := []string{strconv.Itoa(e.Rank), contract.TruncateName(e.Name, nameWidth), e.PrimaryMuscle, strconv.Itoa(e.WorkingSets)}
		row = append(row, drainCells(e.Drain, fmtFloat)...)
		row = append(row, fmtFloat(e.Contribution), labelFor(cfg, e.Contribution))
		exercises = append(exercises, row)
	}
	exercises = topRows(exercises, cfg.ResultLimit)
	if err := renderTable(w, []string{"Rank", "Exercise", "Muscle", "Sets", "CNS%", "Musc%", "Spinal%", "Share%", "Label"}, exercises); err != nil {
		return err
	}

	var muscles [][]string
	for _, m := range schema.EnrichMuscles(s.MuscleRanking) {
		label := m.Label
		if cfg.UseColors {
			label = contract.ColorizeText(label)
		}
		muscles = append(muscles, []string{
			strconv.Itoa(m.Rank), m.Muscle, fmtFloat(m.FatigueShare), fmtFloat(m.EffectiveVolume), fmtFloat(m.StimulusSets),
			fmtFloat(m.FlatSets), fmtFloat(m.WeeklyFlatVolume), fmtFloat(m.SessionLimit), fmtFloat(m.WeeklyMRV), label,
		})
	}
	muscles = topRows(muscles, cfg.ResultLimit)
	if err := renderTable(w, []string{"Rank", "Muscle", "Fatigue%", "Effective", "Stimulus", "Flat", "Week", "Limit", "MRV", "Label"}, muscles); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Session drain: CNS %s%%, Muscular %s%%, Spinal %s%%\n",
		fmtFloat(s.Totals.CNSDrainPct), fmtFloat(s.Totals.MuscularDrainPct), fmtFloat(s.Totals.SpinalDrainPct)); err != nil {
		return err
	}
	for _, a := range s.Alerts {
		if _, err := fmt.Fprintf(w, "🚨 %s\n", a.Message); err != nil {
			return err
		}
	}
	for _, a := range s.WeekAlerts {
		if _, err := fmt.Fprintf(w, "📈 %s\n", a.Message); err != nil {
			return err
		}
	}
	return nil
}

func writeUnresolved(w io.Writer, unresolved []string) error {
	if len(unresolved) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "Skipped without a fatigue profile: %s\n", strings.Join(unresolved, ", "))
	return err
}

func topRows(rows [][]string, limit int) [][]string {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

func writeExerciseRows(w *csv.Writer, sessions []schema.SessionSummary, fmtFloat func(float64) string, intFmt string) error {
	for _, s := range sessions {
		for _, e := range schema.EnrichExercises(s.ExerciseRanking) {
			rec := []string{s.SessionID, strconv.Itoa(e.Rank), e.ExerciseID, e.Name, e.PrimaryMuscle, fmt.Sprintf(intFmt, e.WorkingSets)}
			rec = append(rec, drainCells(e.Drain, fmtFloat)...)
			rec = append(rec, fmtFloat(e.Contribution), e.Label, strings.Join(e.CulpritFor, "|"))
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

func sessionSheets(sessions []schema.SessionSummary) []xlsxSheet {
	exercises := xlsxSheet{Name: "Exercises", Header: exerciseHeader}
	muscles := xlsxSheet{Name: "Muscles", Header: []string{
		"session", "rank", "muscle", "fatigue_share", "effective_volume", "stimulus_sets", "flat_sets",
		"weekly_flat_volume", "session_limit", "weekly_mrv", "label",
	}}
	alerts := xlsxSheet{Name: "Alerts", Header: []string{"session", "muscle", "kind", "volume", "threshold", "fail_ratio", "culprit", "message"}}

	for _, s := range sessions {
		for _, e := range schema.EnrichExercises(s.ExerciseRanking) {
			exercises.Rows = append(exercises.Rows, []any{
				s.SessionID, e.Rank, e.ExerciseID, e.Name, e.PrimaryMuscle, e.WorkingSets,
				e.Drain.CNSDrainPct, e.Drain.MuscularDrainPct, e.Drain.SpinalDrainPct,
				e.Contribution, e.Label, strings.Join(e.CulpritFor, "|"),
			})
		}
		for _, m := range schema.EnrichMuscles(s.MuscleRanking) {
			muscles.Rows = append(muscles.Rows, []any{
				s.SessionID, m.Rank, m.Muscle, m.FatigueShare, m.EffectiveVolume, m.StimulusSets, m.FlatSets,
				m.WeeklyFlatVolume, m.SessionLimit, m.WeeklyMRV, m.Label,
			})
		}
		for _, a := range s.Alerts {
			alerts.Rows = append(alerts.Rows, []any{
				s.SessionID, a.Muscle, string(a.Kind), a.Volume, a.Threshold, a.FailRatio, a.CulpritExerciseName, a.Message,
			})
		}
	}
	return []xlsxSheet{exercises, muscles, alerts}
}

// writeDrainParquet writes the per-set rows to path and the per-exercise rows
// to a sibling file.
func writeDrainParquet(evaluationID string, at time.Time, sessions []schema.SessionSummary, path string) error {
	sets := parquet.ConvertSetSnapshots(evaluationID, at, sessions)
	if err := parquet.WriteSetDrainParquet(sets, path); err != nil {
		return err
	}
	exercisesPath := siblingPath(path, "exercises")
	if err := parquet.WriteExerciseDrainParquet(parquet.ConvertExerciseDrains(evaluationID, at, sessions), exercisesPath); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s and %s\n", path, exercisesPath)
	return nil
}
