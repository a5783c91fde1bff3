package domain

import "time"

// Portfolio holds dataset-wide totals and means. Metrics whose source column
// is absent are zero.
type Portfolio struct {
	Campaigns        int     `json:"campaigns"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalSpend       float64 `json:"total_spend"`
	TotalBudget      float64 `json:"total_budget"`
	AvgROI           float64 `json:"avg_roi"`
	TotalImpressions float64 `json:"total_impressions"`
	AvgEngagement    float64 `json:"avg_engagement"`
}

// ChannelStats is one row of the channel breakdown.
type ChannelStats struct {
	Channel     string  `json:"channel"`
	Campaigns   int     `json:"campaigns"`
	MeanROI     Number  `json:"mean_roi"`
	TotalSpend  float64 `json:"total_spend"`
	TotalBudget float64 `json:"total_budget"`
}

// TimePoint is one dated row of the time-series view.
type TimePoint struct {
	Date    time.Time         `json:"date"`
	Row     int               `json:"row"`
	Metrics map[string]Number `json:"metrics"`
}

// TimeSeries lists dated rows in chronological order.
type TimeSeries struct {
	DateField string      `json:"date_field"`
	Points    []TimePoint `json:"points"`
}

// ROIStats describes the ROI distribution.
type ROIStats struct {
	Count    int    `json:"count"`
	Mean     Number `json:"mean_roi"`
	Median   Number `json:"median_roi"`
	Min      Number `json:"min_roi"`
	Max      Number `json:"max_roi"`
	Positive int    `json:"positive_roi_campaigns"`
	Negative int    `json:"negative_roi_campaigns"`
}

// ColumnAnalysis classifies the dataset columns by resolved type.
type ColumnAnalysis struct {
	Numeric     []string       `json:"numeric_columns"`
	Categorical []string       `json:"categorical_columns"`
	Dates       []string       `json:"date_columns"`
	Missing     map[string]int `json:"missing_data"`
}

// DatasetSummary describes a freshly loaded dataset.
type DatasetSummary struct {
	ID         string           `json:"id"`
	Source     string           `json:"source"`
	Rows       int              `json:"rows"`
	Columns    []string         `json:"columns"`
	Validation ValidationReport `json:"validation"`
}
