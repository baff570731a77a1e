// Package service implements the instantiation and reconciliation engines
// over the progress record store.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	catalog "takeon/internal/catalog/models"
	progressmetrics "takeon/internal/progress/metrics"
	"takeon/internal/progress/models"
	id "takeon/pkg/domain"
	dErrors "takeon/pkg/domain-errors"
	"takeon/pkg/platform/audit"
	"takeon/pkg/requestcontext"
)

// Store is the persistence contract for progress records.
type Store interface {
	// CreateBatch persists the whole record set atomically.
	CreateBatch(ctx context.Context, records []*models.Record) error
	// ListByScheme returns a scheme's records in creation order.
	ListByScheme(ctx context.Context, schemeID id.SchemeID) ([]*models.Record, error)
	// UpdateFields applies a partial update keyed by record id.
	UpdateFields(ctx context.Context, recordID id.RecordID, update models.FieldUpdate) error
	// CountByScheme reports how many records a scheme already has.
	CountByScheme(ctx context.Context, schemeID id.SchemeID) (int, error)
}

// CatalogReader supplies template descriptions for the display join.
type CatalogReader interface {
	List(ctx context.Context) ([]*catalog.Item, error)
}

// Service carries the two engines that mutate progress records.
type Service struct {
	store   Store
	catalog CatalogReader
	logger  *slog.Logger
	metrics *progressmetrics.Metrics
	emitter *audit.Emitter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *progressmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditEmitter(emitter *audit.Emitter) Option {
	return func(s *Service) { s.emitter = emitter }
}

func New(store Store, catalogReader CatalogReader, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("progress store is required")
	}
	s := &Service{
		store:   store,
		catalog: catalogReader,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Instantiate snapshots every catalog item matching the scheme's type into a
// fresh progress record bound to the scheme. The responsible-party category
// is copied forward onto each record so report filtering never depends on
// the catalog's later state. The batch is written all-or-nothing; on failure
// the caller retries instantiation for the whole scheme.
//
// Zero matching items is not an error: the scheme simply starts with an
// empty checklist and the caller is told so via the returned count.
func (s *Service) Instantiate(ctx context.Context, schemeID id.SchemeID, schemeType catalog.SchemeType, items []*catalog.Item) (int, []*models.Record, error) {
	if schemeID.IsNil() {
		return 0, nil, dErrors.New(dErrors.CodeInvalidInput, "scheme id is required")
	}
	if !schemeType.IsValid() {
		return 0, nil, dErrors.New(dErrors.CodeInvalidInput, "scheme type must be BC or HOA")
	}

	// Re-running instantiation has no natural de-duplication key beyond
	// (scheme id, template item id), so it is refused outright.
	existing, err := s.store.CountByScheme(ctx, schemeID)
	if err != nil {
		return 0, nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "read progress records for scheme "+schemeID.String())
	}
	if existing > 0 {
		return 0, nil, dErrors.New(dErrors.CodeConflict, "scheme "+schemeID.String()+" already has a checklist")
	}

	now := requestcontext.Now(ctx)
	var records []*models.Record
	for _, item := range items {
		if item.SchemeType != schemeType {
			continue
		}
		records = append(records, &models.Record{
			ID:             id.NewRecordID(),
			SchemeID:       schemeID,
			TemplateItemID: item.ID,
			Party:          item.Party,
			SchemeType:     item.SchemeType,
			Position:       len(records),
			Complete:       false,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	if len(records) == 0 {
		s.logger.InfoContext(ctx, "no matching checklist items for scheme",
			"scheme_id", schemeID,
			"scheme_type", schemeType,
		)
		return 0, nil, nil
	}

	if err := s.store.CreateBatch(ctx, records); err != nil {
		return 0, nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "create checklist for scheme "+schemeID.String())
	}

	if s.metrics != nil {
		s.metrics.AddRecordsInstantiated(len(records))
	}
	s.emitter.Emit(ctx, audit.Event{
		Action:    audit.ActionChecklistInstantiated,
		Subject:   schemeID.String(),
		Operator:  requestcontext.Operator(ctx),
		RequestID: requestcontext.RequestID(ctx),
		Count:     len(records),
		Timestamp: now,
	})
	return len(records), records, nil
}

// Reconcile computes the field-level deltas between the stored records and a
// user-edited view and applies only those. Entries match stored records by
// stable id, never by position. Each dirty record is written independently;
// a write failure on one record does not abort the rest, and the result
// enumerates per-id outcomes so the caller can retry only the failures.
//
// Reconciliation is idempotent: reapplying the same edited view against the
// post-update state yields zero further updates.
func (s *Service) Reconcile(ctx context.Context, schemeID id.SchemeID, edited []models.EditedEntry) (*models.ReconcileResult, error) {
	if schemeID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "scheme id is required")
	}
	start := time.Now()

	stored, err := s.store.ListByScheme(ctx, schemeID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "read progress records for scheme "+schemeID.String())
	}

	byID := make(map[id.RecordID]*models.Record, len(stored))
	for _, r := range stored {
		byID[r.ID] = r
	}

	// Validate the whole view before writing anything: an unknown id means
	// the edited view is stale or corrupt, and zero updates are applied.
	for _, entry := range edited {
		if _, ok := byID[entry.ID]; !ok {
			return nil, dErrors.New(dErrors.CodeInvalidInput,
				"edited view references unknown record "+entry.ID.String())
		}
	}

	result := &models.ReconcileResult{}
	for _, entry := range edited {
		record := byID[entry.ID]
		update, dirty := models.Diff(record, entry)
		if !dirty {
			continue
		}

		if err := s.store.UpdateFields(ctx, entry.ID, update); err != nil {
			s.logger.ErrorContext(ctx, "failed to update progress record",
				"request_id", requestcontext.RequestID(ctx),
				"scheme_id", schemeID,
				"record_id", entry.ID,
				"error", err,
			)
			result.Failed = append(result.Failed, models.FailedUpdate{
				ID:  entry.ID,
				Err: dErrors.Wrap(err, dErrors.CodeUnavailable, "update progress record "+entry.ID.String()),
			})
			continue
		}
		result.Updated = append(result.Updated, entry.ID)
	}

	if s.metrics != nil {
		s.metrics.AddRecordsUpdated(len(result.Updated))
		s.metrics.AddUpdateFailures(len(result.Failed))
		s.metrics.ObserveReconcile(start)
	}
	if len(result.Updated) > 0 {
		s.emitter.Emit(ctx, audit.Event{
			Action:    audit.ActionProgressUpdated,
			Subject:   schemeID.String(),
			Operator:  requestcontext.Operator(ctx),
			RequestID: requestcontext.RequestID(ctx),
			Count:     len(result.Updated),
			Timestamp: requestcontext.Now(ctx),
		})
	}
	return result, nil
}

// ListByScheme returns the stored records for a scheme in creation order.
func (s *Service) ListByScheme(ctx context.Context, schemeID id.SchemeID) ([]*models.Record, error) {
	records, err := s.store.ListByScheme(ctx, schemeID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "read progress records for scheme "+schemeID.String())
	}
	return records, nil
}

// ListForDisplay joins each record with its template description for the
// editable grid. The join supplies display text only; the record's own
// snapshot fields govern category and type.
func (s *Service) ListForDisplay(ctx context.Context, schemeID id.SchemeID) ([]models.DisplayRecord, error) {
	records, err := s.ListByScheme(ctx, schemeID)
	if err != nil {
		return nil, err
	}

	descriptions := make(map[id.TemplateItemID]string)
	if s.catalog != nil {
		items, err := s.catalog.List(ctx)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "read checklist catalog")
		}
		for _, item := range items {
			descriptions[item.ID] = item.Description
		}
	}

	out := make([]models.DisplayRecord, 0, len(records))
	for _, r := range records {
		out = append(out, models.DisplayRecord{
			Record:      *r,
			Description: descriptions[r.TemplateItemID],
		})
	}
	return out, nil
}
