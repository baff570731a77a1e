package store

import (
	"context"
	"sync"

	"takeon/internal/scheme/models"
	id "takeon/pkg/domain"
	"takeon/pkg/platform/sentinel"
)

// InMemory keeps schemes in process memory, preserving creation order.
type InMemory struct {
	mu      sync.RWMutex
	schemes []*models.Scheme
	byID    map[id.SchemeID]*models.Scheme
}

func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[id.SchemeID]*models.Scheme)}
}

func (s *InMemory) Create(_ context.Context, scheme *models.Scheme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[scheme.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := *scheme
	s.schemes = append(s.schemes, &cp)
	s.byID[scheme.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, schemeID id.SchemeID) (*models.Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scheme, exists := s.byID[schemeID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	cp := *scheme
	return &cp, nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Scheme, len(s.schemes))
	for i, scheme := range s.schemes {
		cp := *scheme
		out[i] = &cp
	}
	return out, nil
}
