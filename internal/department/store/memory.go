// Package store provides department directory persistence.
package store

import (
	"context"
	"sort"
	"sync"

	"takeon/internal/department/models"
	id "takeon/pkg/domain"
)

// InMemory keeps the directory in process memory. Used in tests and when no
// database is configured.
type InMemory struct {
	mu          sync.RWMutex
	departments []*models.Department
	byID        map[id.DepartmentID]*models.Department
}

func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[id.DepartmentID]*models.Department)}
}

func (s *InMemory) Create(_ context.Context, dept *models.Department) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *dept
	s.departments = append(s.departments, &stored)
	s.byID[dept.ID] = &stored
	return nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Department, 0, len(s.departments))
	for _, dept := range s.departments {
		copied := *dept
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
