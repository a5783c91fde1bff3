package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"campaign-insights/internal/core/domain"
)

// Router classifies questions with an ordered rule list and answers them,
// trying the optional completion backend before the templates. Backend
// failures are logged and never reach the caller.
type Router struct {
	rules     Rules
	templates *TemplateAnswerer
	primary   Answerer
	logger    *slog.Logger
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithAnswerer puts a backend in front of the templates.
func WithAnswerer(a Answerer) RouterOption {
	return func(r *Router) { r.primary = a }
}

// WithLogger sets the logger that records backend fallbacks.
func WithLogger(l *slog.Logger) RouterOption {
	return func(r *Router) { r.logger = l }
}

// NewRouter classifies questions with rules and answers them from templates
// unless an answerer is configured with WithAnswerer.
func NewRouter(rules Rules, templates *TemplateAnswerer, opts ...RouterOption) *Router {
	r := &Router{
		rules:     rules,
		templates: templates,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rules returns the rule list in match order.
func (r *Router) Rules() Rules { return r.rules }

// Classify returns the intent of query.
func (r *Router) Classify(query string) domain.Intent { return r.rules.Classify(query) }

// Ask answers a free-text question.
func (r *Router) Ask(ctx context.Context, query string, snap Snapshot) (domain.InsightReport, error) {
	q := Question{Intent: r.Classify(query), Text: query}
	return r.answer(ctx, q, snap)
}

// QuickAction answers one of the predefined actions. Tips are static and
// never go to the backend.
func (r *Router) QuickAction(ctx context.Context, action string, snap Snapshot) (domain.InsightReport, error) {
	switch action {
	case ActionSuggestions, ActionAnalysis:
		return r.answer(ctx, Question{Action: action}, snap)
	case ActionTips:
		return r.templates.Answer(ctx, Question{Action: action}, snap)
	default:
		return domain.InsightReport{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

func (r *Router) answer(ctx context.Context, q Question, snap Snapshot) (domain.InsightReport, error) {
	if r.primary != nil {
		report, err := r.primary.Answer(ctx, q, snap)
		if err == nil {
			return report, nil
		}
		attrs := []any{slog.String("intent", string(q.Intent)), slog.Any("error", err)}
		var backendErr *domain.ExternalBackendError
		if errors.As(err, &backendErr) {
			attrs = append(attrs, slog.String("backend", backendErr.Backend))
		}
		if q.Action != "" {
			attrs = append(attrs, slog.String("action", q.Action))
		}
		r.logger.WarnContext(ctx, "completion failed, falling back to templates", attrs...)
	}
	return r.templates.Answer(ctx, q, snap)
}
