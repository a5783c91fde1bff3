// Package ledger keeps the append-only history of sent email campaigns.
package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"campaign-insights/internal/core/domain"
	"campaign-insights/internal/core/port"

	"github.com/google/uuid"
)

// Entry is what the sending collaborator reports about one send.
type Entry struct {
	CampaignName string
	Subject      string
	Recipients   int
	// Status defaults to domain.EmailStatusSent.
	Status string
}

// Ledger records one entry per completed send. Record, Entries and Report
// are not safe for concurrent use; the owner serializes access. Measure
// touches no ledger state and may run outside that serialization.
type Ledger struct {
	entries    []domain.EmailCampaignRecord
	engagement port.EngagementSource
	now        func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New returns an empty ledger that asks engagement for the open and click
// rates of every send.
func New(engagement port.EngagementSource, opts ...Option) *Ledger {
	l := &Ledger{engagement: engagement, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Measure fetches the engagement metrics for e from the ledger's source.
func (l *Ledger) Measure(ctx context.Context, e Entry) (port.EngagementMetrics, error) {
	m, err := l.engagement.Engagement(ctx, e.CampaignName, e.Recipients)
	if err != nil {
		return port.EngagementMetrics{}, fmt.Errorf("engagement metrics: %w", err)
	}
	return m, nil
}

// Record stores e with the metrics obtained from Measure and returns the
// stored record. Nothing about delivery is checked.
func (l *Ledger) Record(e Entry, m port.EngagementMetrics) domain.EmailCampaignRecord {
	status := e.Status
	if status == "" {
		status = domain.EmailStatusSent
	}
	rec := domain.EmailCampaignRecord{
		ID:              uuid.NewString(),
		Timestamp:       l.now().UTC(),
		CampaignName:    e.CampaignName,
		Subject:         e.Subject,
		RecipientsCount: e.Recipients,
		Status:          status,
		OpenRate:        FormatRate(m.OpenRate),
		ClickRate:       FormatRate(m.ClickRate),
	}
	l.entries = append(l.entries, rec)
	return rec
}

// Entries returns a copy of the history in insertion order. ok is false when
// nothing has been recorded yet.
func (l *Ledger) Entries() (entries []domain.EmailCampaignRecord, ok bool) {
	if len(l.entries) == 0 {
		return nil, false
	}
	return append([]domain.EmailCampaignRecord(nil), l.entries...), true
}

// Len reports how many sends have been recorded.
func (l *Ledger) Len() int { return len(l.entries) }

// Report totals the history. Rates that cannot be parsed are left out of the
// means; an empty ledger reports zeros.
func (l *Ledger) Report() domain.EmailReport {
	r := domain.EmailReport{TotalCampaigns: len(l.entries)}
	var openSum, clickSum float64
	var openN, clickN int
	for _, e := range l.entries {
		r.TotalRecipients += e.RecipientsCount
		if v, ok := ParseRate(e.OpenRate); ok {
			openSum += v
			openN++
		}
		if v, ok := ParseRate(e.ClickRate); ok {
			clickSum += v
			clickN++
		}
	}
	if openN > 0 {
		r.AvgOpenRate = openSum / float64(openN)
	}
	if clickN > 0 {
		r.AvgClickRate = clickSum / float64(clickN)
	}
	return r
}

// FormatRate renders a percentage with one decimal, e.g. "23.4%".
func FormatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// ParseRate reads a value produced by FormatRate.
func ParseRate(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
