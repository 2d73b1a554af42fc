package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

// WriteTanks outputs the capacity tanks of an athlete, dispatching based on the output format configured.
func WriteTanks(report schema.TanksReport, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	rows := [][]string{
		{string(schema.CNSChannel), fmtFloat(report.Baseline.CNS), fmtFloat(report.Tanks.CNS)},
		{string(schema.MuscularChannel), fmtFloat(report.Baseline.Muscular), fmtFloat(report.Tanks.Muscular)},
		{string(schema.SpinalChannel), fmtFloat(report.Baseline.Spinal), fmtFloat(report.Tanks.Spinal)},
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"channel", "baseline", "tank"}, func(cw *csv.Writer) error {
				return cw.WriteAll(rows)
			})
		}, "Wrote CSV")
	case schema.TextOut, "":
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			s := report.Settings
			goal, stress := string(s.CalorieGoal), string(s.LifeStress)
			if goal == "" {
				goal = string(schema.MaintenanceGoal)
			}
			if stress == "" {
				stress = string(schema.ModerateStress)
			}
			if err := writeLines(w,
				"🔋 Capacity tanks for "+report.AthleteID,
				"Bodyweight "+fmtFloat(s.BodyweightKg)+" kg, "+goal+" calories, "+stress+" life stress",
			); err != nil {
				return err
			}
			return renderTable(w, []string{"Channel", "Baseline", "Tank"}, rows)
		}, "Wrote table")
	default:
		return unsupportedOutput(cfg.Output, "tanks")
	}
}
