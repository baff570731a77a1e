// Package service orchestrates scheme intake: persist the scheme, then
// instantiate its take-on checklist from the current catalog snapshot.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	catalog "takeon/internal/catalog/models"
	progress "takeon/internal/progress/models"
	schememetrics "takeon/internal/scheme/metrics"
	"takeon/internal/scheme/models"
	id "takeon/pkg/domain"
	dErrors "takeon/pkg/domain-errors"
	"takeon/pkg/platform/audit"
	"takeon/pkg/requestcontext"
)

// Store is the persistence contract for schemes.
type Store interface {
	Create(ctx context.Context, scheme *models.Scheme) error
	FindByID(ctx context.Context, schemeID id.SchemeID) (*models.Scheme, error)
	List(ctx context.Context) ([]*models.Scheme, error)
}

// CatalogReader supplies the catalog snapshot used at instantiation time.
type CatalogReader interface {
	List(ctx context.Context) ([]*catalog.Item, error)
}

// Instantiator creates the scheme's initial progress records.
type Instantiator interface {
	Instantiate(ctx context.Context, schemeID id.SchemeID, schemeType catalog.SchemeType, items []*catalog.Item) (int, []*progress.Record, error)
}

// Service manages scheme intake and lookup.
type Service struct {
	store        Store
	catalog      CatalogReader
	instantiator Instantiator
	logger       *slog.Logger
	metrics      *schememetrics.Metrics
	emitter      *audit.Emitter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *schememetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditEmitter(emitter *audit.Emitter) Option {
	return func(s *Service) { s.emitter = emitter }
}

func New(store Store, catalogReader CatalogReader, instantiator Instantiator, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("scheme store is required")
	}
	if catalogReader == nil {
		return nil, fmt.Errorf("catalog reader is required")
	}
	if instantiator == nil {
		return nil, fmt.Errorf("instantiator is required")
	}
	s := &Service{
		store:        store,
		catalog:      catalogReader,
		instantiator: instantiator,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreateScheme validates and persists a new scheme, then copies the matching
// catalog items into its initial checklist. The copied-item count is returned
// so callers can tell an empty checklist apart from a failure; zero matching
// items is informational, not fatal.
//
// The catalog is read before the scheme is written: a catalog read failure
// aborts intake without creating anything to clean up.
func (s *Service) CreateScheme(ctx context.Context, scheme *models.Scheme) (*models.Scheme, int, error) {
	start := time.Now()

	if err := scheme.Validate(); err != nil {
		return nil, 0, err
	}

	items, err := s.catalog.List(ctx)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeUnavailable, "read checklist catalog")
	}

	scheme.ID = id.NewSchemeID()
	scheme.CreatedAt = requestcontext.Now(ctx)

	if err := s.store.Create(ctx, scheme); err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeUnavailable, "create scheme "+scheme.ID.String())
	}

	created, _, err := s.instantiator.Instantiate(ctx, scheme.ID, scheme.Type, items)
	if err != nil {
		// The scheme exists but has no checklist. Surface the failure with
		// the scheme id so the caller can retry instantiation as a whole.
		return nil, 0, err
	}

	if s.metrics != nil {
		s.metrics.IncrementSchemesCreated()
		s.metrics.ObserveInstantiate(start)
	}
	s.emitter.Emit(ctx, audit.Event{
		Action:    audit.ActionSchemeCreated,
		Subject:   scheme.ID.String(),
		Operator:  requestcontext.Operator(ctx),
		RequestID: requestcontext.RequestID(ctx),
		Timestamp: scheme.CreatedAt,
	})

	s.logger.InfoContext(ctx, "scheme created",
		"request_id", requestcontext.RequestID(ctx),
		"scheme_id", scheme.ID,
		"scheme_type", scheme.Type,
		"checklist_items", created,
	)
	return scheme, created, nil
}

// GetScheme retrieves one scheme by id.
func (s *Service) GetScheme(ctx context.Context, schemeID id.SchemeID) (*models.Scheme, error) {
	if schemeID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "scheme id is required")
	}
	scheme, err := s.store.FindByID(ctx, schemeID)
	if err != nil {
		return nil, wrapSchemeErr(err, schemeID)
	}
	return scheme, nil
}

// ListSchemes returns all schemes for selection UIs, in creation order.
func (s *Service) ListSchemes(ctx context.Context) ([]*models.Scheme, error) {
	schemes, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "read schemes")
	}
	return schemes, nil
}
