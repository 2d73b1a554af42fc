package schema

// MetricsFactor is one row of a factor table.
type MetricsFactor struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// MetricsTable represents a lookup table of the engine for display purposes.
type MetricsTable struct {
	Name    string          `json:"name"`
	Purpose string          `json:"purpose"`
	Factors []MetricsFactor `json:"factors"`
}

// MetricsRenderModel contains all processed data needed for displaying the engine's tables.
type MetricsRenderModel struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Tables      []MetricsTable    `json:"tables"`
	Formulas    map[string]string `json:"formulas"`
}
