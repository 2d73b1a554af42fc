package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

var weekHeader = []string{"session", "stress", "level", "cns_pct", "muscular_pct", "spinal_pct", "alerts"}

// WriteWeek outputs a week evaluation, dispatching based on the output format configured.
func WriteWeek(report schema.WeekReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	week := report.Week

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, weekHeader, func(cw *csv.Writer) error {
				return writeWeekRows(cw, week, fmtFloat, intFmt)
			})
		}, "Wrote CSV")
	case schema.XLSXOut:
		return writeXLSX(cfg.OutputFile, append(weekSheets(week), sessionSheets(week.Sessions)...))
	case schema.ParquetOut:
		return writeDrainParquet(report.EvaluationID, report.EvaluatedAt, week.Sessions, cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWeekText(w, report, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

func writeWeekRows(w *csv.Writer, week schema.WeekSummary, fmtFloat func(float64) string, intFmt string) error {
	for _, s := range week.Sessions {
		rec := []string{s.SessionID, fmtFloat(s.StressScore), s.StressLevel}
		rec = append(rec, drainCells(s.Totals, fmtFloat)...)
		rec = append(rec, fmt.Sprintf(intFmt, len(s.Alerts)))
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeWeekText writes every session followed by the weekly totals.
func writeWeekText(w io.Writer, report schema.WeekReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	week := report.Week
	if _, err := fmt.Fprintf(w, "🔋 Tanks for %s: CNS %s, Muscular %s, Spinal %s\n",
		report.AthleteID, fmtFloat(report.Tanks.CNS), fmtFloat(report.Tanks.Muscular), fmtFloat(report.Tanks.Spinal)); err != nil {
		return err
	}
	for _, s := range week.Sessions {
		if err := writeSessionText(w, s, cfg, fmtFloat); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\n📅 Week of %d sessions\n", len(week.Sessions)); err != nil {
		return err
	}
	var data [][]string
	for _, m := range slices.Sorted(maps.Keys(week.WeeklyFlatVolume)) {
		data = append(data, []string{m, fmtFloat(week.WeeklyFlatVolume[m])})
	}
	if err := renderTable(w, []string{"Muscle", "Flat sets"}, data); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Mean drain: CNS %s%% (±%s), Muscular %s%% (±%s), Spinal %s%% (±%s)\n",
		fmtFloat(week.MeanDrain.CNSDrainPct), fmtFloat(week.StdDevDrain.CNSDrainPct),
		fmtFloat(week.MeanDrain.MuscularDrainPct), fmtFloat(week.StdDevDrain.MuscularDrainPct),
		fmtFloat(week.MeanDrain.SpinalDrainPct), fmtFloat(week.StdDevDrain.SpinalDrainPct)); err != nil {
		return err
	}
	if len(week.DailyLoads) > 0 {
		days := make([]string, len(week.DailyLoads))
		for i, l := range week.DailyLoads {
			days[i] = fmtFloat(l)
		}
		if _, err := fmt.Fprintf(w, "Daily stress: %s\n", strings.Join(days, " ")); err != nil {
			return err
		}
	}
	if a := week.ACWR; a != nil {
		if _, err := fmt.Fprintf(w, "ACWR %s (acute %s, chronic %s): %s\n",
			fmtFloat(a.Ratio), fmtFloat(a.Acute), fmtFloat(a.Chronic), a.Zone); err != nil {
			return err
		}
	}
	for _, a := range week.WeekAlerts {
		if _, err := fmt.Fprintf(w, "📈 %s\n", a.Message); err != nil {
			return err
		}
	}
	if err := writeUnresolved(w, report.Unresolved); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Evaluation %s completed in %v. Memo backend: %s\n", report.EvaluationID, duration, cfg.MemoBackend)
	return err
}

func weekSheets(week schema.WeekSummary) []xlsxSheet {
	sessions := xlsxSheet{Name: "Week", Header: weekHeader}
	for _, s := range week.Sessions {
		sessions.Rows = append(sessions.Rows, []any{
			s.SessionID, s.StressScore, s.StressLevel,
			s.Totals.CNSDrainPct, s.Totals.MuscularDrainPct, s.Totals.SpinalDrainPct, len(s.Alerts),
		})
	}
	volume := xlsxSheet{Name: "Weekly Volume", Header: []string{"muscle", "flat_sets"}}
	for _, m := range slices.Sorted(maps.Keys(week.WeeklyFlatVolume)) {
		volume.Rows = append(volume.Rows, []any{m, week.WeeklyFlatVolume[m]})
	}
	return []xlsxSheet{sessions, volume}
}
