package port

import (
	"context"
	"io"

	"campaign-insights/internal/core/domain"
)

// AnalyticsUseCase defines the operations exposed by the analytics workspace.
// It is the primary port into the application. Every method works on the
// dataset currently loaded into the workspace and returns domain.ErrNoDataset
// when none is, except the insight methods, which answer with a "no data
// yet" report instead.
type AnalyticsUseCase interface {
	// LoadCSV normalizes a delimited upload and replaces the current dataset.
	LoadCSV(ctx context.Context, r io.Reader, source string) (*domain.DatasetSummary, error)
	// LoadSample replaces the current dataset with a synthetic one.
	LoadSample(ctx context.Context, rows int, seed int64) (*domain.DatasetSummary, error)
	// ImportObject loads a CSV object from the configured object store.
	ImportObject(ctx context.Context, bucket, key string) (*domain.DatasetSummary, error)

	Validate(ctx context.Context) (domain.ValidationReport, error)
	Export(ctx context.Context, format string) (*ExportFile, error)
	// ExportObject writes the current dataset to the configured object store.
	ExportObject(ctx context.Context, bucket, key, format string) error

	Portfolio(ctx context.Context) (domain.Portfolio, error)
	TopCampaigns(ctx context.Context, metric string, n int) ([]domain.CampaignRecord, error)
	Channels(ctx context.Context) ([]domain.ChannelStats, error)
	TimeSeries(ctx context.Context) (domain.TimeSeries, error)
	ROI(ctx context.Context) (domain.ROIStats, error)
	ColumnAnalysis(ctx context.Context) (domain.ColumnAnalysis, error)

	// Segment clusters the current dataset into k groups. k <= 0 uses the
	// configured default.
	Segment(ctx context.Context, k int) (*SegmentResult, error)

	Ask(ctx context.Context, query string) (domain.InsightReport, error)
	QuickAction(ctx context.Context, action string) (domain.InsightReport, error)

	// SendEmailCampaign hands the message to the mailer and records the send
	// in the campaign history ledger.
	SendEmailCampaign(ctx context.Context, msg EmailMessage) (*SendResult, error)
	EmailHistory(ctx context.Context) ([]domain.EmailCampaignRecord, bool)
	EmailReport(ctx context.Context) domain.EmailReport
}

// ExportFile is a serialized dataset ready to be written to a client.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SegmentResult pairs a cluster assignment with its per-cluster profile.
type SegmentResult struct {
	Assignment domain.ClusterAssignment `json:"assignment"`
	Profiles   []domain.ClusterProfile  `json:"profiles"`
}

// SendResult reports the outcome of an email campaign send.
type SendResult struct {
	Record   domain.EmailCampaignRecord `json:"record"`
	Invalid  []string                   `json:"invalid_recipients,omitempty"`
	Accepted int                        `json:"accepted"`
}
