package store

import (
	"context"
	"sync"

	"takeon/internal/catalog/models"
	id "takeon/pkg/domain"
	"takeon/pkg/platform/sentinel"
)

// InMemory keeps the catalog in process memory, preserving creation order.
// Used in tests and when no database is configured.
type InMemory struct {
	mu    sync.RWMutex
	items []*models.Item
	byID  map[id.TemplateItemID]*models.Item
}

func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[id.TemplateItemID]*models.Item)}
}

func (s *InMemory) Create(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[item.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := *item
	s.items = append(s.items, &cp)
	s.byID[item.ID] = &cp
	return nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Item, len(s.items))
	for i, item := range s.items {
		cp := *item
		out[i] = &cp
	}
	return out, nil
}
