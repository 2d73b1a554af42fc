package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

var planHeader = []string{"rank", "muscle", "planned_volume", "frequency", "mev", "mav", "mrv", "status"}

// WritePlan outputs a program comparison, dispatching based on the output format configured.
func WritePlan(report schema.PlanReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, planHeader, func(cw *csv.Writer) error {
				return writePlanRows(cw, report, fmtFloat, intFmt)
			})
		}, "Wrote CSV")
	case schema.XLSXOut:
		return writeXLSX(cfg.OutputFile, planSheets(report))
	case schema.ParquetOut:
		return unsupportedOutput(cfg.Output, "plans")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePlanTable(w, report, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

func writePlanRows(w *csv.Writer, report schema.PlanReport, fmtFloat func(float64) string, intFmt string) error {
	for i, c := range report.Comparisons {
		rec := []string{
			strconv.Itoa(i + 1),
			c.Muscle,
			fmtFloat(c.PlannedVolume),
			fmt.Sprintf(intFmt, c.Frequency),
			fmt.Sprintf(intFmt, c.Recommendation.MinEffectiveVolume),
			fmt.Sprintf(intFmt, c.Recommendation.MaxAdaptiveVolume),
			fmt.Sprintf(intFmt, c.Recommendation.MaxRecoverableVolume),
			c.Status,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// statusText colors a plan status for the table.
func statusText(cfg *contract.Config, status string) string {
	if !cfg.UseColors {
		return status
	}
	switch status {
	case schema.OverPlan:
		return color.New(color.FgRed).Sprint(status)
	case schema.UnderPlan:
		return color.New(color.FgYellow).Sprint(status)
	default:
		return color.New(color.FgGreen).Sprint(status)
	}
}

// writePlanTable generates and writes the human-readable table.
func writePlanTable(w io.Writer, report schema.PlanReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "📋 Program %s for athlete %s (%s, %s)\n", report.Program, report.AthleteID, report.Phase, report.Intensity); err != nil {
		return err
	}
	headers := []string{"Rank", "Muscle", "Planned", "Freq", "MEV", "MAV", "MRV", "Status"}
	var data [][]string
	for i, c := range report.Comparisons {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			c.Muscle,
			fmtFloat(c.PlannedVolume),
			strconv.Itoa(c.Frequency),
			strconv.Itoa(c.Recommendation.MinEffectiveVolume),
			strconv.Itoa(c.Recommendation.MaxAdaptiveVolume),
			strconv.Itoa(c.Recommendation.MaxRecoverableVolume),
			statusText(cfg, c.Status),
		})
	}
	if err := renderTable(w, headers, data); err != nil {
		return err
	}

	for _, issue := range report.Issues {
		verdict := "near the limit"
		if issue.Check.OverLimit {
			verdict = "over the limit"
		}
		if _, err := fmt.Fprintf(w, "⚠️  %s: %d sets of %s is %s (max %s)\n",
			issue.Session, issue.Check.Sets, issue.Muscle, verdict, fmtFloat(issue.Check.Max)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Compared %d muscles in %v\n", len(report.Comparisons), duration)
	return err
}

func planSheets(report schema.PlanReport) []xlsxSheet {
	plan := xlsxSheet{Name: "Plan", Header: planHeader}
	for i, c := range report.Comparisons {
		plan.Rows = append(plan.Rows, []any{
			i + 1, c.Muscle, c.PlannedVolume, c.Frequency,
			c.Recommendation.MinEffectiveVolume, c.Recommendation.MaxAdaptiveVolume, c.Recommendation.MaxRecoverableVolume,
			c.Status,
		})
	}
	issues := xlsxSheet{Name: "Session Checks", Header: []string{"session", "muscle", "sets", "max", "warning", "over_limit"}}
	for _, issue := range report.Issues {
		issues.Rows = append(issues.Rows, []any{
			issue.Session, issue.Muscle, issue.Check.Sets, issue.Check.Max, issue.Check.Warning, issue.Check.OverLimit,
		})
	}
	return []xlsxSheet{plan, issues}
}
