package domain

// ValidationReport is the advisory outcome of inspecting a dataset. Errors
// are schema-breaking, warnings are not. It is built once per validation
// call and never modified afterwards.
type ValidationReport struct {
	Valid    bool        `json:"is_valid"`
	Errors   []string    `json:"errors"`
	Warnings []string    `json:"warnings"`
	Info     QualityInfo `json:"info"`
}

// QualityInfo carries the data-quality counters reported on every run.
type QualityInfo struct {
	TotalRows     int     `json:"total_rows"`
	TotalColumns  int     `json:"total_columns"`
	MissingValues int     `json:"missing_values"`
	DuplicateRows int     `json:"duplicate_rows"`
	MemoryUsageMB float64 `json:"memory_usage_mb"`
}
