package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"campaign-insights/internal/core/port"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoker struct {
	got  *bedrockruntime.InvokeModelInput
	body string
	err  error
}

func (f *fakeInvoker) InvokeModel(_ context.Context, in *bedrockruntime.InvokeModelInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: []byte(f.body)}, nil
}

func TestComplete(t *testing.T) {
	fake := &fakeInvoker{body: `{"content":[{"type":"text","text":"Focus on "},{"type":"text","text":"Email."}],"stop_reason":"end_turn"}`}
	c := New(fake, "")

	out, err := c.Complete(context.Background(), port.CompletionRequest{
		System: "sys", Prompt: "question", MaxTokens: 256, Temperature: 0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Focus on Email.", out)
	assert.Equal(t, "bedrock", c.Name())

	require.NotNil(t, fake.got)
	assert.Equal(t, DefaultModel, aws.ToString(fake.got.ModelId))
	var sent request
	require.NoError(t, json.Unmarshal(fake.got.Body, &sent))
	assert.Equal(t, anthropicVersion, sent.AnthropicVersion)
	assert.Equal(t, 256, sent.MaxTokens)
	assert.Equal(t, "sys", sent.System)
	require.Len(t, sent.Messages, 1)
	assert.Equal(t, "question", sent.Messages[0].Content[0].Text)
}

func TestComplete_Errors(t *testing.T) {
	_, err := New(&fakeInvoker{err: errors.New("throttled")}, "m").Complete(context.Background(), port.CompletionRequest{})
	assert.ErrorContains(t, err, "throttled")

	_, err = New(&fakeInvoker{body: "not json"}, "m").Complete(context.Background(), port.CompletionRequest{})
	assert.Error(t, err)

	_, err = New(&fakeInvoker{body: `{"content":[]}`}, "m").Complete(context.Background(), port.CompletionRequest{})
	assert.Error(t, err)
}
