package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

var recommendationHeader = []string{
	"rank", "muscle", "mev", "mav", "mrv", "frequency_cap",
	"adjusted_mev", "adjusted_mav", "adjusted_mrv", "feedback_factor", "feedback_reason",
}

// WriteRecommendations outputs volume recommendations, dispatching based on the output format configured.
func WriteRecommendations(report schema.RecommendationReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, recommendationHeader, func(cw *csv.Writer) error {
				return writeRecommendationRows(cw, report, fmtFloat, intFmt)
			})
		}, "Wrote CSV")
	case schema.XLSXOut:
		return writeXLSX(cfg.OutputFile, []xlsxSheet{recommendationSheet(report)})
	case schema.ParquetOut:
		return unsupportedOutput(cfg.Output, "recommendations")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecommendationTable(w, report, fmtFloat, duration)
		}, "Wrote table")
	}
}

func writeRecommendationRows(w *csv.Writer, report schema.RecommendationReport, fmtFloat func(float64) string, intFmt string) error {
	for i, r := range report.Recommendations {
		rec := []string{
			strconv.Itoa(i + 1),
			r.Base.MuscleGroup,
			fmt.Sprintf(intFmt, r.Base.MinEffectiveVolume),
			fmt.Sprintf(intFmt, r.Base.MaxAdaptiveVolume),
			fmt.Sprintf(intFmt, r.Base.MaxRecoverableVolume),
			fmt.Sprintf(intFmt, r.Base.FrequencyCap),
			fmt.Sprintf(intFmt, r.Adjusted.MinEffectiveVolume),
			fmt.Sprintf(intFmt, r.Adjusted.MaxAdaptiveVolume),
			fmt.Sprintf(intFmt, r.Adjusted.MaxRecoverableVolume),
			fmtFloat(r.Adjustment.Factor),
			r.Adjustment.Reason,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeRecommendationTable generates and writes the human-readable table.
func writeRecommendationTable(w io.Writer, report schema.RecommendationReport, fmtFloat func(float64) string, duration time.Duration) error {
	if c := report.Classification; c != nil {
		if _, err := fmt.Fprintf(w, "🏋️ Athlete %s: score %d, %s band (%.0f-%.0f sets)\n",
			report.AthleteID, c.Score, c.Band, c.Range.Min, c.Range.Max); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintf(w, "🏋️ Athlete %s: no profile, neutral recommendations\n", report.AthleteID); err != nil {
		return err
	}

	headers := []string{"Rank", "Muscle", "MEV", "MAV", "MRV", "Cap", "Factor", "Adjusted MAV", "Reason"}
	var data [][]string
	for i, r := range report.Recommendations {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.Base.MuscleGroup,
			strconv.Itoa(r.Base.MinEffectiveVolume),
			strconv.Itoa(r.Base.MaxAdaptiveVolume),
			strconv.Itoa(r.Base.MaxRecoverableVolume),
			strconv.Itoa(r.Base.FrequencyCap),
			fmtFloat(r.Adjustment.Factor),
			strconv.Itoa(r.Adjusted.MaxAdaptiveVolume),
			r.Adjustment.Reason,
		})
	}
	if err := renderTable(w, headers, data); err != nil {
		return err
	}

	if l := report.Lifts; l != nil {
		if _, err := fmt.Fprintf(w, "Strength block target: %d-%d lifts per week (%s, %s)\n", l.MinLifts, l.MaxLifts, l.Level, l.Phase); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Phase %s, intensity %s, %d sessions per muscle. Computed in %v\n",
		report.Phase, report.Intensity, report.Frequency, duration)
	return err
}

func recommendationSheet(report schema.RecommendationReport) xlsxSheet {
	sheet := xlsxSheet{Name: "Recommendations", Header: recommendationHeader}
	for i, r := range report.Recommendations {
		sheet.Rows = append(sheet.Rows, []any{
			i + 1,
			r.Base.MuscleGroup,
			r.Base.MinEffectiveVolume,
			r.Base.MaxAdaptiveVolume,
			r.Base.MaxRecoverableVolume,
			r.Base.FrequencyCap,
			r.Adjusted.MinEffectiveVolume,
			r.Adjusted.MaxAdaptiveVolume,
			r.Adjusted.MaxRecoverableVolume,
			r.Adjustment.Factor,
			r.Adjustment.Reason,
		})
	}
	return sheet
}
