package insight

import (
	"strings"

	"campaign-insights/internal/core/aggregate"
	"campaign-insights/internal/core/domain"
)

const noDataSummary = "No campaign data available."

// Summarize describes the snapshot with aggregate figures only. Row-level
// data never leaves the process through it.
func Summarize(snap Snapshot) string {
	var parts []string
	if snap.HasData() {
		ds := snap.Dataset
		parts = append(parts, "Total Campaigns: "+count(ds.Len()))

		if _, ok := ds.Numeric(domain.FieldSpend); ok {
			parts = append(parts,
				"Total Spend: "+money(aggregate.Sum(ds, domain.FieldSpend)),
				"Average Spend: "+money(numberOrZero(aggregate.Mean(ds, domain.FieldSpend))),
			)
		}
		if stats, err := aggregate.ROI(ds); err == nil && stats.Count > 0 {
			parts = append(parts,
				"Average ROI: "+percent(stats.Mean.Float())+"%",
				"Best ROI: "+percent(stats.Max.Float())+"%",
				"Worst ROI: "+percent(stats.Min.Float())+"%",
			)
		}
		if top := aggregate.TopChannels(ds, 3); len(top) > 0 {
			names := make([]string, len(top))
			for i, c := range top {
				names[i] = c.Channel
			}
			parts = append(parts, "Top Channels: "+strings.Join(names, ", "))
		}
		if len(snap.Segments) > 0 {
			parts = append(parts, "Campaign Segments: "+count(len(snap.Segments)))
		}
	}

	if e := snap.Email; e.TotalCampaigns > 0 {
		parts = append(parts,
			"Email Campaigns Sent: "+count(e.TotalCampaigns),
			"Email Recipients: "+count(e.TotalRecipients),
			"Average Open Rate: "+percent(e.AvgOpenRate)+"%",
			"Average Click Rate: "+percent(e.AvgClickRate)+"%",
		)
	}

	if len(parts) == 0 {
		return noDataSummary
	}
	return strings.Join(parts, "; ")
}
