package iocache

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/rotnitxe/kpknfit/schema"
)

// PrintMemoStatus prints memo store status information.
func PrintMemoStatus(w io.Writer, status schema.CacheStatus) {
	_, _ = fmt.Fprintf(w, "Memo Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		_, _ = fmt.Fprintf(w, "Last Entry: %s\n", status.LastEntryTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Entry: %s\n", status.OldestEntryTime.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintCatalogStatus prints catalog store status information.
func PrintCatalogStatus(w io.Writer, status schema.CatalogStatus) {
	_, _ = fmt.Fprintf(w, "Catalog Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Schema Version: %d (latest %d)\n", status.SchemaVersion, LatestVersion)
	_, _ = fmt.Fprintf(w, "Exercises: %d\n", status.TotalExercises)
	_, _ = fmt.Fprintf(w, "Athletes: %d\n", status.TotalAthletes)
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	for _, table := range slices.Sorted(maps.Keys(status.TableSizes)) {
		_, _ = fmt.Fprintf(w, "  %s: %d bytes\n", table, status.TableSizes[table])
	}
}
