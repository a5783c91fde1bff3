// Package bedrock implements port.TextCompleter on AWS Bedrock Anthropic
// models.
package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"campaign-insights/internal/core/port"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const (
	DefaultModel = "anthropic.claude-3-haiku-20240307-v1:0"

	anthropicVersion = "bedrock-2023-05-31"
)

// InvokeAPI is the part of the Bedrock runtime client the completer uses.
type InvokeAPI interface {
	InvokeModel(ctx context.Context, in *bedrockruntime.InvokeModelInput, opts ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type request struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	System           string    `json:"system,omitempty"`
	Messages         []message `json:"messages"`
	Temperature      float64   `json:"temperature,omitempty"`
}

type response struct {
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
}

// Completer sends completion requests to one Bedrock model.
type Completer struct {
	client  InvokeAPI
	modelID string
}

// New returns a completer for modelID, or DefaultModel when it is empty.
func New(client InvokeAPI, modelID string) *Completer {
	if modelID == "" {
		modelID = DefaultModel
	}
	return &Completer{client: client, modelID: modelID}
}

// NewFromRegion builds a completer on the default AWS credential chain.
func NewFromRegion(ctx context.Context, region, modelID string) (*Completer, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return New(bedrockruntime.NewFromConfig(cfg), modelID), nil
}

// Name identifies the backend in logs and cache keys.
func (c *Completer) Name() string { return "bedrock" }

// Complete invokes the model with the Anthropic messages body and returns the
// concatenated text blocks of the reply.
func (c *Completer) Complete(ctx context.Context, req port.CompletionRequest) (string, error) {
	body, err := json.Marshal(request{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        req.MaxTokens,
		System:           req.System,
		Messages: []message{{
			Role:    "user",
			Content: []contentBlock{{Type: "text", Text: req.Prompt}},
		}},
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	out, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("invoke %s: %w", c.modelID, err)
	}

	var resp response
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("response has no text content")
	}
	return sb.String(), nil
}
