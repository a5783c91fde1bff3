// Package mailer holds port.Mailer implementations.
package mailer

import (
	"context"
	"log/slog"

	"campaign-insights/internal/core/port"
)

// Simulated accepts every message and logs it instead of delivering.
type Simulated struct {
	logger *slog.Logger
}

// NewSimulated returns a mailer that only logs.
func NewSimulated(logger *slog.Logger) *Simulated {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulated{logger: logger}
}

func (m *Simulated) Send(ctx context.Context, msg port.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.logger.InfoContext(ctx, "email campaign dispatched (simulated)",
		slog.String("campaign", msg.CampaignName),
		slog.String("subject", msg.Subject),
		slog.Int("recipients", len(msg.Recipients)),
	)
	return nil
}

var _ port.Mailer = (*Simulated)(nil)
