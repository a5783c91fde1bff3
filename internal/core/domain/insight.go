package domain

// Intent is the category of information a free-text query asks about.
type Intent string

const (
	IntentROI          Intent = "roi"
	IntentBudget       Intent = "budget"
	IntentChannel      Intent = "channel"
	IntentOptimization Intent = "optimization"
	IntentTrend        Intent = "trend"
	IntentGeneral      Intent = "general"
)

const (
	SourceTemplate   = "template"
	SourceCompletion = "completion"
)

// SeriesPoint is optional chart data attached to a report.
type SeriesPoint struct {
	Label string `json:"label"`
	Value Number `json:"value"`
}

// InsightReport is the answer to a free-text query.
type InsightReport struct {
	Intent Intent        `json:"intent"`
	Text   string        `json:"text"`
	Source string        `json:"source"`
	Series []SeriesPoint `json:"series,omitempty"`
}
