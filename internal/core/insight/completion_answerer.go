package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campaign-insights/internal/core/domain"
	"campaign-insights/internal/core/port"
)

const (
	DefaultCompletionTimeout = 30 * time.Second
	DefaultMaxTokens         = 1024
	DefaultTemperature       = 0.7

	systemPrompt = "You are an expert marketing analytics consultant."

	questionPrompt = `You are a marketing analytics expert. Use the campaign data context below to answer the user's question with helpful insights and recommendations.

Campaign Data Context:
%s

User Question: %s

Give a comprehensive, actionable answer with specific insights and recommendations.`

	suggestionsPrompt = `Based on this campaign data: %s

Suggest 3-5 new campaign ideas with specific recommendations for:
- Budget allocation
- Target channels
- Expected outcomes`

	analysisPrompt = `Analyze the performance of these marketing campaigns: %s

Provide insights on:
- Top performing campaigns and why
- Areas needing improvement
- Optimization opportunities`
)

var errEmptyCompletion = errors.New("empty completion")

// CompletionAnswerer forwards questions, together with an aggregate-only
// summary of the snapshot, to a text-completion backend and returns its
// answer verbatim.
type CompletionAnswerer struct {
	completer   port.TextCompleter
	timeout     time.Duration
	maxTokens   int
	temperature float64
}

// CompletionOption configures a CompletionAnswerer.
type CompletionOption func(*CompletionAnswerer)

// WithTimeout bounds each backend call. Non-positive values are ignored.
func WithTimeout(d time.Duration) CompletionOption {
	return func(a *CompletionAnswerer) {
		if d > 0 {
			a.timeout = d
		}
	}
}

func WithMaxTokens(n int) CompletionOption {
	return func(a *CompletionAnswerer) {
		if n > 0 {
			a.maxTokens = n
		}
	}
}

func WithTemperature(t float64) CompletionOption {
	return func(a *CompletionAnswerer) { a.temperature = t }
}

// NewCompletionAnswerer answers questions by prompting c with the dataset
// summary.
func NewCompletionAnswerer(c port.TextCompleter, opts ...CompletionOption) *CompletionAnswerer {
	a := &CompletionAnswerer{
		completer:   c,
		timeout:     DefaultCompletionTimeout,
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Answer fails with *domain.ExternalBackendError when the backend errors,
// times out or returns nothing.
func (a *CompletionAnswerer) Answer(ctx context.Context, q Question, snap Snapshot) (domain.InsightReport, error) {
	summary := Summarize(snap)

	var prompt string
	intent := q.Intent
	switch q.Action {
	case "":
		prompt = fmt.Sprintf(questionPrompt, summary, q.Text)
	case ActionSuggestions:
		prompt = fmt.Sprintf(suggestionsPrompt, summary)
		intent = domain.IntentOptimization
	case ActionAnalysis:
		prompt = fmt.Sprintf(analysisPrompt, summary)
		intent = domain.IntentGeneral
	default:
		return domain.InsightReport{}, fmt.Errorf("%w: %q", ErrUnknownAction, q.Action)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.completer.Complete(ctx, port.CompletionRequest{
		System:      systemPrompt,
		Prompt:      prompt,
		Context:     summary,
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = errEmptyCompletion
	}
	if err != nil {
		return domain.InsightReport{}, &domain.ExternalBackendError{Backend: a.completer.Name(), Err: err}
	}

	return domain.InsightReport{Intent: intent, Text: text, Source: domain.SourceCompletion}, nil
}
