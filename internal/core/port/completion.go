package port

import "context"

// TextCompleter is a generative-text backend: a request goes in, text comes
// out, and the call may fail. Implementations must honour ctx cancellation.
type TextCompleter interface {
	// Name identifies the backend in logs and errors.
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest carries the user question and an aggregate-only context
// summary. It never contains raw dataset rows.
type CompletionRequest struct {
	System      string
	Prompt      string
	Context     string
	MaxTokens   int
	Temperature float64
}
