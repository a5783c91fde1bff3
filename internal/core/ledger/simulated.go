package ledger

import (
	"context"
	"math/rand"
	"sync"

	"campaign-insights/internal/core/port"
)

// Simulated open and click rate ranges, in percent.
const (
	minOpenRate  = 15.0
	maxOpenRate  = 35.0
	minClickRate = 2.0
	maxClickRate = 8.0
)

// SimulatedEngagement stands in for delivery telemetry with seeded uniform
// draws. It is safe for concurrent use.
type SimulatedEngagement struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedEngagement returns a source whose draws are fixed by seed.
func NewSimulatedEngagement(seed int64) *SimulatedEngagement {
	return &SimulatedEngagement{rng: rand.New(rand.NewSource(seed))}
}

func (s *SimulatedEngagement) Engagement(context.Context, string, int) (port.EngagementMetrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return port.EngagementMetrics{
		OpenRate:  minOpenRate + s.rng.Float64()*(maxOpenRate-minOpenRate),
		ClickRate: minClickRate + s.rng.Float64()*(maxClickRate-minClickRate),
	}, nil
}
