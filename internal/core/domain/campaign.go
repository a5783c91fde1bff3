package domain

import (
	"math"
	"strconv"
	"time"
)

// Recognized column names. Uploaded headers are snake-cased before matching.
const (
	FieldCampaignID       = "campaign_id"
	FieldCampaignName     = "campaign_name"
	FieldChannel          = "channel"
	FieldDate             = "date"
	FieldCampaignDate     = "campaign_date"
	FieldStartDate        = "start_date"
	FieldEndDate          = "end_date"
	FieldBudget           = "budget"
	FieldSpend            = "spend"
	FieldRevenue          = "revenue"
	FieldImpressions      = "impressions"
	FieldClicks           = "clicks"
	FieldConversions      = "conversions"
	FieldROI              = "roi"
	FieldCTR              = "ctr"
	FieldCPA              = "cpa"
	FieldROAS             = "roas"
	FieldEngagementRate   = "engagement_rate"
	FieldCampaignDuration = "campaign_duration"
)

var (
	// DateFields are parsed to calendar dates on ingestion.
	DateFields = []string{FieldDate, FieldCampaignDate, FieldStartDate, FieldEndDate}

	// NumericFields are coerced to numbers on ingestion.
	NumericFields = []string{
		FieldBudget, FieldSpend, FieldRevenue, FieldImpressions,
		FieldClicks, FieldROI, FieldEngagementRate, FieldConversions,
	}

	// DerivedFields are computed from the input fields. NaN in them means the
	// ratio is undefined, not that a value is missing.
	DerivedFields = []string{
		FieldROI, FieldCTR, FieldCPA, FieldROAS,
		FieldEngagementRate, FieldCampaignDuration,
	}

	// FinancialFields must not be negative in a healthy dataset.
	FinancialFields = []string{FieldBudget, FieldSpend, FieldRevenue}

	// RequiredFields must be present for a dataset to be valid.
	RequiredFields = []string{FieldCampaignID, FieldBudget, FieldSpend}
)

// Number is a metric value where NaN means "no data". It encodes as JSON
// null when it holds no data.
type Number float64

// NoData returns the missing-value sentinel.
func NoData() Number { return Number(math.NaN()) }

// Valid reports whether n holds a finite value.
func (n Number) Valid() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (n Number) Float() float64 { return float64(n) }

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(n), 'f', -1, 64), nil
}

// CampaignRecord is the typed view of one dataset row.
type CampaignRecord struct {
	Row              int               `json:"row"`
	ID               string            `json:"campaign_id"`
	Name             string            `json:"campaign_name,omitempty"`
	Channel          string            `json:"channel,omitempty"`
	StartDate        *time.Time        `json:"start_date,omitempty"`
	EndDate          *time.Time        `json:"end_date,omitempty"`
	Budget           Number            `json:"budget"`
	Spend            Number            `json:"spend"`
	Revenue          Number            `json:"revenue"`
	Impressions      Number            `json:"impressions"`
	Clicks           Number            `json:"clicks"`
	Conversions      Number            `json:"conversions"`
	ROI              Number            `json:"roi"`
	CTR              Number            `json:"ctr"`
	CPA              Number            `json:"cpa"`
	ROAS             Number            `json:"roas"`
	EngagementRate   Number            `json:"engagement_rate"`
	CampaignDuration Number            `json:"campaign_duration"`
	Extra            map[string]string `json:"extra,omitempty"`
}

// Record projects row i onto a CampaignRecord. Columns that are not part of
// the campaign model are copied into Extra in their export form.
func (d *Dataset) Record(i int) CampaignRecord {
	rec := CampaignRecord{Row: i}
	numbers := map[string]*Number{
		FieldBudget:           &rec.Budget,
		FieldSpend:            &rec.Spend,
		FieldRevenue:          &rec.Revenue,
		FieldImpressions:      &rec.Impressions,
		FieldClicks:           &rec.Clicks,
		FieldConversions:      &rec.Conversions,
		FieldROI:              &rec.ROI,
		FieldCTR:              &rec.CTR,
		FieldCPA:              &rec.CPA,
		FieldROAS:             &rec.ROAS,
		FieldEngagementRate:   &rec.EngagementRate,
		FieldCampaignDuration: &rec.CampaignDuration,
	}
	for _, n := range numbers {
		*n = NoData()
	}

	for _, c := range d.columns {
		if dst, ok := numbers[c.Name]; ok {
			if c.Kind == KindNumeric {
				*dst = Number(c.Nums[i])
			}
			continue
		}
		switch c.Name {
		case FieldCampaignID:
			rec.ID = c.Format(i)
		case FieldCampaignName:
			rec.Name = c.Format(i)
		case FieldChannel:
			rec.Channel = c.Format(i)
		case FieldStartDate:
			rec.StartDate = dateAt(c, i)
		case FieldEndDate:
			rec.EndDate = dateAt(c, i)
		default:
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[c.Name] = c.Format(i)
		}
	}
	return rec
}

func dateAt(c *Column, i int) *time.Time {
	if c.Kind != KindDate || c.IsNull(i) {
		return nil
	}
	t := c.Dates[i]
	return &t
}
