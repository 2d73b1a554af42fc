package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

var catalogHeader = []string{"id", "name", "primary_muscle", "equipment", "efc", "cnc", "ssc"}

// WriteCatalog outputs the exercises of the catalog, dispatching based on the output format configured.
func WriteCatalog(exercises []schema.ExerciseFatigueProfile, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schema.CatalogFile{Exercises: exercises})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, catalogHeader, func(cw *csv.Writer) error {
				for _, e := range exercises {
					if err := cw.Write([]string{e.ID, e.Name, e.PrimaryMuscle, e.Equipment, fmtFloat(e.EFC), fmtFloat(e.CNC), fmtFloat(e.SSC)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.XLSXOut:
		sheet := xlsxSheet{Name: "Catalog", Header: catalogHeader}
		for _, e := range exercises {
			sheet.Rows = append(sheet.Rows, []any{e.ID, e.Name, e.PrimaryMuscle, e.Equipment, e.EFC, e.CNC, e.SSC})
		}
		return writeXLSX(cfg.OutputFile, []xlsxSheet{sheet})
	case schema.TextOut, "":
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			nameWidth := GetMaxTableNameWidth(cfg)
			var data [][]string
			for _, e := range exercises {
				data = append(data, []string{e.ID, contract.TruncateName(e.Name, nameWidth), e.PrimaryMuscle, fmtFloat(e.EFC), fmtFloat(e.CNC), fmtFloat(e.SSC)})
			}
			if err := renderTable(w, []string{"ID", "Name", "Muscle", "EFC", "CNC", "SSC"}, data); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Catalog holds %d exercises\n", len(exercises))
			return err
		}, "Wrote table")
	default:
		return unsupportedOutput(cfg.Output, "the catalog")
	}
}
