package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campaign-insights/internal/core/aggregate"
	"campaign-insights/internal/core/domain"

	"github.com/osteele/liquid"
)

const (
	ActionSuggestions = "suggestions"
	ActionAnalysis    = "analysis"
	ActionTips        = "tips"

	strongROI   = 20.0
	healthyROI  = 15.0
	seriesLimit = 5
	monthsShown = 6
)

var ErrUnknownAction = errors.New("unknown quick action")

// Question is one request to an Answerer: either a classified free-text
// query or a named quick action.
type Question struct {
	Intent domain.Intent
	Text   string
	Action string
}

// Answerer produces a report for a question. Template and completion
// backends are interchangeable behind it.
type Answerer interface {
	Answer(ctx context.Context, q Question, snap Snapshot) (domain.InsightReport, error)
}

// TemplateAnswerer renders deterministic reports from aggregate and
// segmentation outputs. It never fabricates numbers and answers with an
// upload prompt when no data is loaded.
type TemplateAnswerer struct {
	tpl *renderer
}

// NewTemplateAnswerer parses the embedded answer templates.
func NewTemplateAnswerer() (*TemplateAnswerer, error) {
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &TemplateAnswerer{tpl: r}, nil
}

func (a *TemplateAnswerer) Answer(_ context.Context, q Question, snap Snapshot) (domain.InsightReport, error) {
	if q.Action != "" {
		return a.action(q.Action, snap)
	}

	report := domain.InsightReport{Intent: q.Intent, Source: domain.SourceTemplate}
	name := string(q.Intent)
	var b liquid.Bindings
	switch {
	case !snap.HasData():
		name = "no_data"
	case q.Intent == domain.IntentROI:
		b, report.Series = roiBindings(snap.Dataset)
	case q.Intent == domain.IntentBudget:
		b, report.Series = budgetBindings(snap.Dataset)
	case q.Intent == domain.IntentChannel:
		b, report.Series = channelBindings(snap.Dataset)
	case q.Intent == domain.IntentOptimization:
		b = optimizationBindings(snap)
	case q.Intent == domain.IntentTrend:
		b, report.Series = trendBindings(snap.Dataset)
	default:
		report.Intent = domain.IntentGeneral
		name = string(domain.IntentGeneral)
		b = generalBindings(snap)
	}

	text, err := a.tpl.render(name, b)
	if err != nil {
		return domain.InsightReport{}, err
	}
	report.Text = text
	return report, nil
}

func (a *TemplateAnswerer) action(action string, snap Snapshot) (domain.InsightReport, error) {
	report := domain.InsightReport{Intent: domain.IntentOptimization, Source: domain.SourceTemplate}
	var b liquid.Bindings
	switch action {
	case ActionSuggestions:
		if !snap.HasData() {
			report.Text = "Upload campaign data to get personalized suggestions."
			return report, nil
		}
		b = suggestionBindings(snap.Dataset)
	case ActionAnalysis:
		report.Intent = domain.IntentGeneral
		if !snap.HasData() {
			report.Text = "Upload campaign data for performance analysis."
			return report, nil
		}
		b = analysisBindings(snap.Dataset)
	case ActionTips:
		b = liquid.Bindings{"has_data": snap.HasData()}
	default:
		return domain.InsightReport{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	text, err := a.tpl.render(action, b)
	if err != nil {
		return domain.InsightReport{}, err
	}
	report.Text = text
	return report, nil
}

func roiBindings(ds *domain.Dataset) (liquid.Bindings, []domain.SeriesPoint) {
	p := aggregate.Portfolio(ds)
	b := liquid.Bindings{
		"campaigns": count(p.Campaigns),
		"avg_roi":   percent(p.AvgROI),
		"strong":    p.AvgROI > strongROI,
		"has_stats": false,
	}
	if stats, err := aggregate.ROI(ds); err == nil && stats.Count > 0 {
		b["has_stats"] = true
		b["median_roi"] = percent(stats.Median.Float())
		b["best_roi"] = percent(stats.Max.Float())
		b["worst_roi"] = percent(stats.Min.Float())
		b["positive"] = count(stats.Positive)
		b["negative"] = count(stats.Negative)
	}

	var series []domain.SeriesPoint
	if top, err := aggregate.TopN(ds, domain.FieldROI, seriesLimit); err == nil {
		for _, r := range top {
			if r.ROI.Valid() {
				series = append(series, domain.SeriesPoint{Label: label(r), Value: r.ROI})
			}
		}
	}
	return b, series
}

func budgetBindings(ds *domain.Dataset) (liquid.Bindings, []domain.SeriesPoint) {
	p := aggregate.Portfolio(ds)
	avgSpend := aggregate.Mean(ds, domain.FieldSpend)
	b := liquid.Bindings{
		"campaigns":       count(p.Campaigns),
		"total_budget":    money(p.TotalBudget),
		"total_spend":     money(p.TotalSpend),
		"avg_spend":       money(numberOrZero(avgSpend)),
		"has_utilization": p.TotalBudget > 0,
		"has_channels":    false,
	}
	if p.TotalBudget > 0 {
		b["utilization"] = percent(p.TotalSpend / p.TotalBudget * 100)
	}

	var series []domain.SeriesPoint
	if stats, err := aggregate.Channels(ds); err == nil && len(stats) > 0 {
		rows := make([]map[string]any, len(stats))
		for i, s := range stats {
			rows[i] = map[string]any{"name": s.Channel, "spend": money(s.TotalSpend), "budget": money(s.TotalBudget)}
			series = append(series, domain.SeriesPoint{Label: s.Channel, Value: domain.Number(s.TotalSpend)})
		}
		b["has_channels"] = true
		b["channels"] = rows
	}
	return b, series
}

func channelBindings(ds *domain.Dataset) (liquid.Bindings, []domain.SeriesPoint) {
	stats, err := aggregate.Channels(ds)
	if err != nil || len(stats) == 0 {
		return liquid.Bindings{"has_channels": false}, nil
	}

	rows := make([]map[string]any, len(stats))
	series := make([]domain.SeriesPoint, len(stats))
	for i, s := range stats {
		rows[i] = map[string]any{
			"name":      s.Channel,
			"roi":       optionalPercent(s.MeanROI),
			"campaigns": count(s.Campaigns),
			"spend":     money(s.TotalSpend),
		}
		series[i] = domain.SeriesPoint{Label: s.Channel, Value: s.MeanROI}
	}
	return liquid.Bindings{
		"has_channels": true,
		"channels":     rows,
		"best":         stats[0].Channel,
	}, series
}

func optimizationBindings(snap Snapshot) liquid.Bindings {
	ds := snap.Dataset
	b := liquid.Bindings{
		"has_best":     false,
		"has_roi":      false,
		"has_segments": len(snap.Segments) > 0,
		"segments":     count(len(snap.Segments)),
	}
	if best, ok := bestChannel(ds); ok {
		b["has_best"] = true
		b["best"] = best
	}
	if stats, err := aggregate.ROI(ds); err == nil && stats.Count > 0 {
		b["has_roi"] = true
		b["avg_roi"] = percent(stats.Mean.Float())
		b["above_average"] = count(aggregate.CountAbove(ds, domain.FieldROI, stats.Mean.Float()))
		b["negative"] = count(stats.Negative)
	}
	return b
}

type monthBucket struct {
	month    string
	n        int
	spend    float64
	roiSum   float64
	roiCount int
}

func trendBindings(ds *domain.Dataset) (liquid.Bindings, []domain.SeriesPoint) {
	ts, err := aggregate.TimeSeries(ds)
	if err != nil || len(ts.Points) == 0 {
		return liquid.Bindings{"has_series": false}, nil
	}

	var buckets []*monthBucket
	for _, p := range ts.Points {
		key := p.Date.Format("2006-01")
		if len(buckets) == 0 || buckets[len(buckets)-1].month != key {
			buckets = append(buckets, &monthBucket{month: key})
		}
		m := buckets[len(buckets)-1]
		m.n++
		if v := p.Metrics[domain.FieldSpend]; v.Valid() {
			m.spend += v.Float()
		}
		if v := p.Metrics[domain.FieldROI]; v.Valid() {
			m.roiSum += v.Float()
			m.roiCount++
		}
	}

	series := make([]domain.SeriesPoint, len(buckets))
	rows := make([]map[string]any, 0, monthsShown)
	for i, m := range buckets {
		roi := domain.NoData()
		if m.roiCount > 0 {
			roi = domain.Number(m.roiSum / float64(m.roiCount))
		}
		series[i] = domain.SeriesPoint{Label: m.month, Value: roi}
		if i >= len(buckets)-monthsShown {
			rows = append(rows, map[string]any{
				"month":     m.month,
				"campaigns": count(m.n),
				"spend":     money(m.spend),
				"has_roi":   roi.Valid(),
				"roi":       optionalPercent(roi),
			})
		}
	}

	return liquid.Bindings{
		"has_series": true,
		"points":     count(len(ts.Points)),
		"first":      ts.Points[0].Date.Format(time.DateOnly),
		"last":       ts.Points[len(ts.Points)-1].Date.Format(time.DateOnly),
		"date_field": ts.DateField,
		"months":     rows,
	}, series
}

func generalBindings(snap Snapshot) liquid.Bindings {
	ds := snap.Dataset
	p := aggregate.Portfolio(ds)
	names := ds.ColumnNames()
	columns := strings.Join(names[:min(5, len(names))], ", ")
	if len(names) > 5 {
		columns += "..."
	}
	return liquid.Bindings{
		"campaigns":        count(p.Campaigns),
		"total_revenue":    money(p.TotalRevenue),
		"total_spend":      money(p.TotalSpend),
		"avg_roi":          percent(p.AvgROI),
		"columns":          columns,
		"has_email":        snap.Email.TotalCampaigns > 0,
		"email_campaigns":  count(snap.Email.TotalCampaigns),
		"email_recipients": count(snap.Email.TotalRecipients),
	}
}

func suggestionBindings(ds *domain.Dataset) liquid.Bindings {
	b := liquid.Bindings{"has_best": false, "has_roi": false}
	if best, ok := bestChannel(ds); ok {
		b["has_best"] = true
		b["best"] = best
	}
	if mean := aggregate.Mean(ds, domain.FieldROI); mean.Valid() {
		b["has_roi"] = true
		b["above_average"] = count(aggregate.CountAbove(ds, domain.FieldROI, mean.Float()))
	}
	b["has_specifics"] = b["has_best"] == true || b["has_roi"] == true
	return b
}

func analysisBindings(ds *domain.Dataset) liquid.Bindings {
	mean := aggregate.Mean(ds, domain.FieldROI)
	_, hasSpend := ds.Numeric(domain.FieldSpend)
	b := liquid.Bindings{
		"campaigns":   count(ds.Len()),
		"has_roi":     mean.Valid(),
		"avg_roi":     percent(numberOrZero(mean)),
		"strong":      mean.Valid() && mean.Float() > healthyROI,
		"has_spend":   hasSpend,
		"total_spend": money(aggregate.Sum(ds, domain.FieldSpend)),
		"has_best":    false,
	}
	if best, ok := bestChannel(ds); ok {
		b["has_best"] = true
		b["best"] = best
	}
	return b
}

// bestChannel is the channel with the highest mean ROI, if any channel has
// ROI data.
func bestChannel(ds *domain.Dataset) (string, bool) {
	stats, err := aggregate.Channels(ds)
	if err != nil || len(stats) == 0 || !stats[0].MeanROI.Valid() {
		return "", false
	}
	return stats[0].Channel, true
}

func label(r domain.CampaignRecord) string {
	switch {
	case r.Name != "":
		return r.Name
	case r.ID != "":
		return r.ID
	default:
		return fmt.Sprintf("row %d", r.Row+1)
	}
}

func optionalPercent(n domain.Number) string {
	if !n.Valid() {
		return "n/a"
	}
	return percent(n.Float())
}

func numberOrZero(n domain.Number) float64 {
	if !n.Valid() {
		return 0
	}
	return n.Float()
}
