package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"sync"

	"campaign-insights/internal/core/aggregate"
	"campaign-insights/internal/core/domain"
	"campaign-insights/internal/core/ingest"
	"campaign-insights/internal/core/insight"
	"campaign-insights/internal/core/ledger"
	"campaign-insights/internal/core/port"
	"campaign-insights/internal/core/segment"
	"campaign-insights/internal/core/validate"

	"github.com/go-playground/validator/v10"
)

// DefaultTopN is used when TopCampaigns is called with n <= 0.
const DefaultTopN = 10

// Workspace is the analytics session. It owns the current dataset, the last
// clustering result and the email ledger, and orchestrates the core packages
// to implement port.AnalyticsUseCase. Loaded datasets are never mutated, so
// readers take a reference under the read lock and compute without it.
type Workspace struct {
	mu       sync.RWMutex
	dataset  *domain.Dataset
	source   string
	segments *port.SegmentResult
	ledger   *ledger.Ledger

	router      *insight.Router
	mailer      port.Mailer
	store       port.ObjectStore
	segmentOpts segment.Options
	logger      *slog.Logger
}

type Option func(*Workspace)

// WithObjectStore enables ImportObject and ExportObject.
func WithObjectStore(s port.ObjectStore) Option {
	return func(w *Workspace) { w.store = s }
}

// WithSegmentOptions overrides the k-means defaults used by Segment.
func WithSegmentOptions(o segment.Options) Option {
	return func(w *Workspace) { w.segmentOpts = o }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Workspace) { w.logger = l }
}

// NewWorkspace returns an empty session. Options add the object store,
// logger and clustering settings.
func NewWorkspace(router *insight.Router, mailer port.Mailer, ldg *ledger.Ledger, opts ...Option) *Workspace {
	w := &Workspace{
		router:      router,
		mailer:      mailer,
		ledger:      ldg,
		segmentOpts: segment.DefaultOptions(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) LoadCSV(ctx context.Context, r io.Reader, source string) (*domain.DatasetSummary, error) {
	ds, err := ingest.Load(r, source)
	if err != nil {
		return nil, err
	}
	return w.publish(ctx, ds, source), nil
}

func (w *Workspace) LoadSample(ctx context.Context, rows int, seed int64) (*domain.DatasetSummary, error) {
	if rows <= 0 {
		rows = ingest.DefaultSampleRows
	}
	ds, err := ingest.Generate(rows, seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := ingest.Normalize(ds); err != nil {
		return nil, fmt.Errorf("normalize sample: %w", err)
	}
	return w.publish(ctx, ds, fmt.Sprintf("sample(rows=%d,seed=%d)", rows, seed)), nil
}

// ImportObject loads a dataset kept in the object store. Keys ending in
// .xlsx are read as spreadsheets, everything else as CSV.
func (w *Workspace) ImportObject(ctx context.Context, bucket, key string) (*domain.DatasetSummary, error) {
	if w.store == nil {
		return nil, domain.ErrNoObjectStore
	}
	data, err := w.store.Get(ctx, bucket, key)
	if err != nil {
		return nil, err
	}

	source := "s3://" + bucket + "/" + key
	var ds *domain.Dataset
	if strings.EqualFold(path.Ext(key), ".xlsx") {
		ds, err = ingest.ParseExcel(bytes.NewReader(data), source)
		if err == nil {
			err = ingest.Normalize(ds)
		}
	} else {
		ds, err = ingest.Load(bytes.NewReader(data), source)
	}
	if err != nil {
		return nil, err
	}
	return w.publish(ctx, ds, source), nil
}

// publish swaps in ds and drops the cluster result of the previous dataset.
func (w *Workspace) publish(ctx context.Context, ds *domain.Dataset, source string) *domain.DatasetSummary {
	report := validate.Validate(ds)

	w.mu.Lock()
	w.dataset = ds
	w.source = source
	w.segments = nil
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "dataset loaded",
		slog.String("dataset_id", ds.ID()),
		slog.String("source", source),
		slog.Int("rows", ds.Len()),
		slog.Int("columns", len(ds.ColumnNames())),
		slog.Bool("valid", report.Valid),
	)
	return &domain.DatasetSummary{
		ID:         ds.ID(),
		Source:     source,
		Rows:       ds.Len(),
		Columns:    ds.ColumnNames(),
		Validation: report,
	}
}

func (w *Workspace) current() (*domain.Dataset, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.dataset == nil {
		return nil, domain.ErrNoDataset
	}
	return w.dataset, nil
}

func (w *Workspace) Validate(_ context.Context) (domain.ValidationReport, error) {
	ds, err := w.current()
	if err != nil {
		return domain.ValidationReport{}, err
	}
	return validate.Validate(ds), nil
}

func (w *Workspace) Export(_ context.Context, format string) (*port.ExportFile, error) {
	ds, err := w.current()
	if err != nil {
		return nil, err
	}
	mime, ext, err := ingest.ContentType(format)
	if err != nil {
		return nil, err
	}
	data, err := ingest.Export(ds, format)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}
	return &port.ExportFile{
		Filename:    "campaign_data" + ext,
		ContentType: mime,
		Data:        data,
	}, nil
}

func (w *Workspace) ExportObject(ctx context.Context, bucket, key, format string) error {
	if w.store == nil {
		return domain.ErrNoObjectStore
	}
	file, err := w.Export(ctx, format)
	if err != nil {
		return err
	}
	if err := w.store.Put(ctx, bucket, key, file.Data, file.ContentType); err != nil {
		return err
	}
	w.logger.InfoContext(ctx, "dataset exported",
		slog.String("bucket", bucket),
		slog.String("key", key),
		slog.Int("bytes", len(file.Data)),
	)
	return nil
}

func (w *Workspace) Portfolio(_ context.Context) (domain.Portfolio, error) {
	ds, err := w.current()
	if err != nil {
		return domain.Portfolio{}, err
	}
	return aggregate.Portfolio(ds), nil
}

func (w *Workspace) TopCampaigns(_ context.Context, metric string, n int) ([]domain.CampaignRecord, error) {
	ds, err := w.current()
	if err != nil {
		return nil, err
	}
	if metric == "" {
		metric = domain.FieldROI
	}
	if n <= 0 {
		n = DefaultTopN
	}
	return aggregate.TopN(ds, metric, n)
}

func (w *Workspace) Channels(_ context.Context) ([]domain.ChannelStats, error) {
	ds, err := w.current()
	if err != nil {
		return nil, err
	}
	return aggregate.Channels(ds)
}

func (w *Workspace) TimeSeries(_ context.Context) (domain.TimeSeries, error) {
	ds, err := w.current()
	if err != nil {
		return domain.TimeSeries{}, err
	}
	return aggregate.TimeSeries(ds)
}

func (w *Workspace) ROI(_ context.Context) (domain.ROIStats, error) {
	ds, err := w.current()
	if err != nil {
		return domain.ROIStats{}, err
	}
	return aggregate.ROI(ds)
}

func (w *Workspace) ColumnAnalysis(_ context.Context) (domain.ColumnAnalysis, error) {
	ds, err := w.current()
	if err != nil {
		return domain.ColumnAnalysis{}, err
	}
	return aggregate.Columns(ds), nil
}

// Segment clusters the current dataset. The result is kept for insight
// reports only while the dataset it was computed on is still current.
func (w *Workspace) Segment(ctx context.Context, k int) (*port.SegmentResult, error) {
	ds, err := w.current()
	if err != nil {
		return nil, err
	}
	opts := w.segmentOpts
	if k > 0 {
		opts.K = k
	}

	a, err := segment.Cluster(ds, opts)
	if err != nil {
		return nil, err
	}
	profiles, err := segment.Profiles(ds, a)
	if err != nil {
		return nil, err
	}
	res := &port.SegmentResult{Assignment: a, Profiles: profiles}

	w.mu.Lock()
	if w.dataset == ds {
		w.segments = res
	}
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "segmentation finished",
		slog.String("dataset_id", ds.ID()),
		slog.Int("k", a.K),
		slog.Any("features", a.Features),
		slog.Float64("inertia", a.Inertia),
	)
	return res, nil
}

func (w *Workspace) snapshot() insight.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	snap := insight.Snapshot{
		Dataset: w.dataset,
		Email:   w.ledger.Report(),
	}
	if w.segments != nil && !w.segments.Assignment.Stale(w.dataset) {
		snap.Segments = w.segments.Profiles
	}
	return snap
}

func (w *Workspace) Ask(ctx context.Context, query string) (domain.InsightReport, error) {
	if strings.TrimSpace(query) == "" {
		return domain.InsightReport{}, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	return w.router.Ask(ctx, query, w.snapshot())
}

func (w *Workspace) QuickAction(ctx context.Context, action string) (domain.InsightReport, error) {
	return w.router.QuickAction(ctx, action, w.snapshot())
}

// SendEmailCampaign drops malformed recipients, hands the message to the
// mailer and records the send. A failed delivery leaves no ledger entry.
func (w *Workspace) SendEmailCampaign(ctx context.Context, msg port.EmailMessage) (*port.SendResult, error) {
	msg.CampaignName = strings.TrimSpace(msg.CampaignName)
	msg.Subject = strings.TrimSpace(msg.Subject)
	valid, invalid := splitRecipients(msg.Recipients)
	msg.Recipients = valid

	if err := emailValidator.Struct(msg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if len(valid) == 0 {
		return nil, domain.ErrNoRecipients
	}

	if err := w.mailer.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("send %q: %w", msg.CampaignName, err)
	}

	entry := ledger.Entry{
		CampaignName: msg.CampaignName,
		Subject:      msg.Subject,
		Recipients:   len(valid),
	}
	// Measure may block on the engagement source and runs unlocked.
	metrics, err := w.ledger.Measure(ctx, entry)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	rec := w.ledger.Record(entry, metrics)
	w.mu.Unlock()

	if len(invalid) > 0 {
		w.logger.WarnContext(ctx, "invalid recipients skipped",
			slog.String("campaign", msg.CampaignName),
			slog.Int("count", len(invalid)),
		)
	}
	return &port.SendResult{Record: rec, Invalid: invalid, Accepted: len(valid)}, nil
}

func (w *Workspace) EmailHistory(_ context.Context) ([]domain.EmailCampaignRecord, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.ledger.Entries()
}

func (w *Workspace) EmailReport(_ context.Context) domain.EmailReport {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.ledger.Report()
}

var emailValidator = validator.New()

// splitRecipients trims every address and separates the valid ones. Blank
// entries are ignored.
func splitRecipients(in []string) (valid, invalid []string) {
	for _, raw := range in {
		addr := strings.TrimSpace(raw)
		if addr == "" {
			continue
		}
		if err := emailValidator.Var(addr, "required,email"); err != nil {
			invalid = append(invalid, addr)
			continue
		}
		valid = append(valid, addr)
	}
	return valid, invalid
}

var _ port.AnalyticsUseCase = (*Workspace)(nil)
