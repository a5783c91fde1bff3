package mailer

import (
	"context"
	"errors"
	"testing"

	"campaign-insights/internal/core/port"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	inputs []*sesv2.SendEmailInput
	failAt int
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.failAt > 0 && len(f.inputs) == f.failAt {
		return nil, errors.New("throttled")
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("m-1")}, nil
}

func TestSES_SendOnePerRecipient(t *testing.T) {
	fake := &fakeSES{}
	m := NewSES(fake, "team@example.com", nil)

	err := m.Send(context.Background(), port.EmailMessage{
		CampaignName: "Spring Sale!",
		Subject:      "Hi",
		Content:      "Body",
		Recipients:   []string{"a@example.com", "b@example.com"},
	})
	require.NoError(t, err)
	require.Len(t, fake.inputs, 2)

	first := fake.inputs[0]
	assert.Equal(t, "team@example.com", aws.ToString(first.FromEmailAddress))
	assert.Equal(t, []string{"a@example.com"}, first.Destination.ToAddresses)
	assert.Equal(t, "Hi", aws.ToString(first.Content.Simple.Subject.Data))
	assert.Equal(t, "Body", aws.ToString(first.Content.Simple.Body.Text.Data))
	assert.Equal(t, "Spring_Sale", aws.ToString(first.EmailTags[0].Value))
}

func TestSES_StopsOnError(t *testing.T) {
	fake := &fakeSES{failAt: 2}
	err := NewSES(fake, "f@example.com", nil).Send(context.Background(), port.EmailMessage{
		Recipients: []string{"a@example.com", "b@example.com", "c@example.com"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2/3")
	assert.Len(t, fake.inputs, 2)
}

func TestTagValue(t *testing.T) {
	assert.Equal(t, "unnamed", tagValue("!!!"))
	assert.Equal(t, "Q3_push-2", tagValue("Q3 push-2"))
}
