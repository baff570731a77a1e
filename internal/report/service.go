package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"takeon/internal/platform/config"
	platformredis "takeon/internal/platform/redis"
	progress "takeon/internal/progress/models"
	reportmetrics "takeon/internal/report/metrics"
	scheme "takeon/internal/scheme/models"
	id "takeon/pkg/domain"
	dErrors "takeon/pkg/domain-errors"
	"takeon/pkg/platform/audit"
	"takeon/pkg/requestcontext"
)

// SchemeReader supplies the scheme whose name labels the report.
type SchemeReader interface {
	GetScheme(ctx context.Context, schemeID id.SchemeID) (*scheme.Scheme, error)
}

// ProgressReader supplies the display snapshot the renderer consumes. The
// report reads a snapshot; it never observes an in-flight reconciliation.
type ProgressReader interface {
	ListForDisplay(ctx context.Context, schemeID id.SchemeID) ([]progress.DisplayRecord, error)
}

// Document is a rendered report ready for download.
type Document struct {
	Filename string
	Content  []byte
}

// Service generates client-facing progress reports. Concurrent requests for
// the same scheme share a single render via singleflight, and rendered
// bytes are cached briefly in Redis when configured.
type Service struct {
	schemes  SchemeReader
	progress ProgressReader
	renderer *Renderer
	cache    *platformredis.Client
	group    singleflight.Group
	logger   *slog.Logger
	metrics  *reportmetrics.Metrics
	emitter  *audit.Emitter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithCache(cache *platformredis.Client) Option {
	return func(s *Service) { s.cache = cache }
}

func WithMetrics(m *reportmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditEmitter(emitter *audit.Emitter) Option {
	return func(s *Service) { s.emitter = emitter }
}

func NewService(schemes SchemeReader, progressReader ProgressReader, opts ...Option) (*Service, error) {
	if schemes == nil {
		return nil, fmt.Errorf("scheme reader is required")
	}
	if progressReader == nil {
		return nil, fmt.Errorf("progress reader is required")
	}
	s := &Service{
		schemes:  schemes,
		progress: progressReader,
		renderer: NewRenderer(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate renders the weekly progress report for one scheme. Missing
// optional fields never fail rendering; the only failure modes are the
// scheme or record reads themselves.
func (s *Service) Generate(ctx context.Context, schemeID id.SchemeID) (*Document, error) {
	if schemeID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "scheme id is required")
	}
	start := time.Now()

	sch, err := s.schemes.GetScheme(ctx, schemeID)
	if err != nil {
		return nil, err
	}

	day := id.DateOf(requestcontext.Now(ctx))
	filename := fmt.Sprintf("%s_TakeOn_Report_%s.pdf", sch.Name, day)
	cacheKey := fmt.Sprintf("report:%s:%s", schemeID, day)

	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		if s.metrics != nil {
			s.metrics.IncrementCacheHits()
		}
		return &Document{Filename: filename, Content: cached}, nil
	}

	content, err, _ := s.group.Do(cacheKey, func() (any, error) {
		records, err := s.progress.ListForDisplay(ctx, schemeID)
		if err != nil {
			return nil, err
		}
		return s.renderer.Render(sch.Name, records)
	})
	if err != nil {
		return nil, err
	}
	pdfBytes := content.([]byte)

	s.toCache(ctx, cacheKey, pdfBytes)

	if s.metrics != nil {
		s.metrics.IncrementReportsGenerated()
		s.metrics.ObserveRender(start)
	}
	s.emitter.Emit(ctx, audit.Event{
		Action:    audit.ActionReportGenerated,
		Subject:   schemeID.String(),
		Operator:  requestcontext.Operator(ctx),
		RequestID: requestcontext.RequestID(ctx),
		Timestamp: requestcontext.Now(ctx),
	})

	return &Document{Filename: filename, Content: pdfBytes}, nil
}

// fromCache returns cached bytes or nil. Cache failures degrade to a fresh
// render; they are logged, never surfaced.
func (s *Service) fromCache(ctx context.Context, key string) []byte {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return data
}

func (s *Service) toCache(ctx context.Context, key string, data []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, config.ReportCacheTTL).Err(); err != nil {
		s.logger.WarnContext(ctx, "failed to cache report",
			"key", key,
			"error", err,
		)
	}
}
