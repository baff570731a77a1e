// Package service manages the department contact directory.
package service

import (
	"context"
	"log/slog"

	"takeon/internal/department/models"
	id "takeon/pkg/domain"
	dErrors "takeon/pkg/domain-errors"
	"takeon/pkg/platform/audit"
	"takeon/pkg/requestcontext"
)

// Store is the persistence contract for the directory.
type Store interface {
	Create(ctx context.Context, dept *models.Department) error
	List(ctx context.Context) ([]*models.Department, error)
}

// Service manages department contacts used for take-on correspondence.
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

// CreateDepartment adds a contact to the directory.
func (s *Service) CreateDepartment(ctx context.Context, name, email string) (*models.Department, error) {
	dept, err := models.NewDepartment(id.NewDepartmentID(), name, email, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, dept); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "create department "+dept.ID.String())
	}

	s.emitter.Emit(ctx, audit.Event{
		Action:    audit.ActionDepartmentContactAdded,
		Subject:   dept.ID.String(),
		Operator:  requestcontext.Operator(ctx),
		RequestID: requestcontext.RequestID(ctx),
		Timestamp: requestcontext.Now(ctx),
	})
	return dept, nil
}

// ListDepartments returns the directory sorted by name.
func (s *Service) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	departments, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "read department directory")
	}
	return departments, nil
}
