package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"campaign-insights/internal/core/port"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

const charset = "UTF-8"

// SendEmailAPI is the part of the SES v2 client the mailer uses.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, opts ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SES delivers campaigns through Amazon SES, one message per recipient so
// addresses are never disclosed to each other.
type SES struct {
	client SendEmailAPI
	from   string
	logger *slog.Logger
}

// NewSES sends from the verified identity from.
func NewSES(client SendEmailAPI, from string, logger *slog.Logger) *SES {
	if logger == nil {
		logger = slog.Default()
	}
	return &SES{client: client, from: from, logger: logger}
}

// NewSESFromRegion builds a mailer on the default AWS credential chain.
func NewSESFromRegion(ctx context.Context, region, from string, logger *slog.Logger) (*SES, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewSES(sesv2.NewFromConfig(cfg), from, logger), nil
}

// Send stops at the first rejected recipient and reports how many messages
// went out before it.
func (m *SES) Send(ctx context.Context, msg port.EmailMessage) error {
	for i, to := range msg.Recipients {
		out, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
			FromEmailAddress: aws.String(m.from),
			Destination:      &types.Destination{ToAddresses: []string{to}},
			Content: &types.EmailContent{
				Simple: &types.Message{
					Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charset)},
					Body: &types.Body{
						Text: &types.Content{Data: aws.String(msg.Content), Charset: aws.String(charset)},
					},
				},
			},
			EmailTags: []types.MessageTag{
				{Name: aws.String("campaign"), Value: aws.String(tagValue(msg.CampaignName))},
			},
		})
		if err != nil {
			return fmt.Errorf("ses send %d/%d: %w", i+1, len(msg.Recipients), err)
		}
		m.logger.DebugContext(ctx, "ses message accepted",
			slog.String("campaign", msg.CampaignName),
			slog.String("message_id", aws.ToString(out.MessageId)),
		)
	}
	m.logger.InfoContext(ctx, "email campaign dispatched",
		slog.String("campaign", msg.CampaignName),
		slog.Int("recipients", len(msg.Recipients)),
	)
	return nil
}

// tagValue keeps the characters SES accepts in message tag values.
func tagValue(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			out = append(out, r)
		case r == ' ':
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "unnamed"
	}
	if len(out) > 256 {
		out = out[:256]
	}
	return string(out)
}

var _ port.Mailer = (*SES)(nil)
