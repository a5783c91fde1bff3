// Package rediscache memoizes text completions in Redis so repeated questions
// over the same data summary do not hit the backend again.
package rediscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"campaign-insights/internal/core/port"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL is how long a cached completion is kept.
	DefaultTTL = time.Hour

	keyPrefix = "insights:completion:"
)

// Completer wraps another TextCompleter with a read-through cache. Cache
// failures are logged and bypassed; only backend failures are returned.
type Completer struct {
	next   port.TextCompleter
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures a Completer.
type Option func(*Completer)

// WithTTL sets the cache expiry. Non-positive values keep DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Completer) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLogger sets the logger used for cache failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Completer) { c.logger = l }
}

// New caches the answers of next in rdb.
func New(next port.TextCompleter, rdb redis.Cmdable, opts ...Option) *Completer {
	c := &Completer{
		next:   next,
		rdb:    rdb,
		ttl:    DefaultTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name reports the wrapped backend's name.
func (c *Completer) Name() string { return c.next.Name() }

// Complete returns the cached answer for req or asks the wrapped backend
// and stores its answer.
func (c *Completer) Complete(ctx context.Context, req port.CompletionRequest) (string, error) {
	key := c.key(req)

	cached, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		return cached, nil
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "completion cache read failed", slog.Any("error", err))
	}

	text, err := c.next.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	if text == "" {
		return text, nil
	}
	if err := c.rdb.Set(ctx, key, text, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "completion cache write failed", slog.Any("error", err))
	}
	return text, nil
}

func (c *Completer) key(req port.CompletionRequest) string {
	h := sha256.New()
	for _, part := range []string{
		c.next.Name(),
		req.System,
		req.Prompt,
		strconv.Itoa(req.MaxTokens),
		strconv.FormatFloat(req.Temperature, 'g', -1, 64),
	} {
		fmt.Fprintf(h, "%d:%s", len(part), part)
	}
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

var _ port.TextCompleter = (*Completer)(nil)
