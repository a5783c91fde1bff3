package domain

import "time"

// EmailStatusSent is the status recorded when the sender reports none.
const EmailStatusSent = "Sent"

// EmailCampaignRecord is one entry of the campaign history ledger. Open and
// click rates are stored as percentage strings such as "23.4%".
type EmailCampaignRecord struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	CampaignName    string    `json:"campaign_name"`
	Subject         string    `json:"subject"`
	RecipientsCount int       `json:"recipients_count"`
	Status          string    `json:"status"`
	OpenRate        string    `json:"open_rate"`
	ClickRate       string    `json:"click_rate"`
}

// EmailReport aggregates the ledger.
type EmailReport struct {
	TotalCampaigns  int     `json:"total_campaigns"`
	TotalRecipients int     `json:"total_recipients"`
	AvgOpenRate     float64 `json:"avg_open_rate"`
	AvgClickRate    float64 `json:"avg_click_rate"`
}
