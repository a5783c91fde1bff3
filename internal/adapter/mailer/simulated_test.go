package mailer

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"campaign-insights/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulated_Send(t *testing.T) {
	var buf bytes.Buffer
	m := NewSimulated(slog.New(slog.NewTextHandler(&buf, nil)))

	err := m.Send(context.Background(), port.EmailMessage{
		CampaignName: "Spring", Subject: "Hi", Recipients: []string{"a@x.io", "b@x.io"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "campaign=Spring")
	assert.Contains(t, buf.String(), "recipients=2")
}

func TestSimulated_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewSimulated(nil).Send(ctx, port.EmailMessage{}), context.Canceled)
}
