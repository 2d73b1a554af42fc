package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

// WriteMetrics displays the lookup tables and formulas of the engine.
func WriteMetrics(model *schema.MetricsRenderModel, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"table", "key", "value"}, func(cw *csv.Writer) error {
				return writeMetricsRows(cw, model)
			})
		}, "Wrote CSV")
	case schema.TextOut, "":
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsText(w, model)
		}, "Wrote text")
	default:
		return unsupportedOutput(cfg.Output, "metrics")
	}
}

func writeMetricsRows(w *csv.Writer, model *schema.MetricsRenderModel) error {
	for _, t := range model.Tables {
		for _, f := range t.Factors {
			if err := w.Write([]string{t.Name, f.Key, fmt.Sprintf("%g", f.Value)}); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeMetricsText displays metrics in human-readable text format.
func writeMetricsText(w io.Writer, model *schema.MetricsRenderModel) error {
	if err := writeLines(w,
		"📐 "+model.Title,
		strings.Repeat("=", len(model.Title)+3),
		"",
		model.Description,
		"",
	); err != nil {
		return err
	}

	for _, t := range model.Tables {
		parts := make([]string, len(t.Factors))
		for i, f := range t.Factors {
			parts[i] = fmt.Sprintf("%s=%.4g", f.Key, f.Value)
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n   %s\n\n", t.Name, t.Purpose, strings.Join(parts, ", ")); err != nil {
			return err
		}
	}

	if err := writeLines(w, "🧮 Formulas"); err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(model.Formulas)) {
		if _, err := fmt.Fprintf(w, "   %s = %s\n", name, model.Formulas[name]); err != nil {
			return err
		}
	}
	return nil
}
