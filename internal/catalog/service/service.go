// Package service orchestrates template catalog management.
package service

import (
	"context"
	"log/slog"

	"takeon/internal/catalog/models"
	id "takeon/pkg/domain"
	dErrors "takeon/pkg/domain-errors"
	"takeon/pkg/platform/audit"
	"takeon/pkg/requestcontext"
)

// Store is the persistence contract for the catalog.
type Store interface {
	Create(ctx context.Context, item *models.Item) error
	List(ctx context.Context) ([]*models.Item, error)
}

// Service manages the master checklist catalog.
type Service struct {
	store   Store
	logger  *slog.Logger
	emitter *audit.Emitter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditEmitter(emitter *audit.Emitter) Option {
	return func(s *Service) { s.emitter = emitter }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateItem adds a new template item to the catalog. Existing schemes are
// unaffected: instantiation snapshots the catalog at scheme-creation time.
func (s *Service) CreateItem(ctx context.Context, description string, party models.Party, schemeType models.SchemeType) (*models.Item, error) {
	item, err := models.NewItem(id.NewTemplateItemID(), description, party, schemeType, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, item); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "create checklist item "+item.ID.String())
	}

	s.emitter.Emit(ctx, audit.Event{
		Action:    audit.ActionChecklistItemCreated,
		Subject:   item.ID.String(),
		Operator:  requestcontext.Operator(ctx),
		RequestID: requestcontext.RequestID(ctx),
		Timestamp: requestcontext.Now(ctx),
	})
	return item, nil
}

// ListItems returns the full catalog snapshot in creation order.
func (s *Service) ListItems(ctx context.Context) ([]*models.Item, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "read checklist catalog")
	}
	return items, nil
}
