package port

import "context"

// EmailMessage is an email campaign as handed to the delivery collaborator.
type EmailMessage struct {
	CampaignName string   `json:"campaign_name" validate:"required"`
	Subject      string   `json:"subject" validate:"required"`
	Content      string   `json:"content"`
	Recipients   []string `json:"recipients" validate:"dive,email"`
}

// Mailer delivers an email campaign. Delivery itself is outside the core.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EngagementMetrics are open and click rates in percent.
type EngagementMetrics struct {
	OpenRate  float64
	ClickRate float64
}

// EngagementSource supplies engagement metrics for a completed send. The
// default implementation simulates them; a delivery-telemetry client can
// replace it without touching the ledger.
type EngagementSource interface {
	Engagement(ctx context.Context, campaignName string, recipients int) (EngagementMetrics, error)
}
