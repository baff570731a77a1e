package store

import (
	"context"
	"sort"
	"sync"

	"takeon/internal/progress/models"
	id "takeon/pkg/domain"
	"takeon/pkg/platform/sentinel"
	"takeon/pkg/requestcontext"
)

// InMemory keeps progress records in process memory. Batch creation is
// atomic under the store lock, matching the all-or-nothing contract of the
// postgres implementation.
type InMemory struct {
	mu       sync.RWMutex
	records  map[id.RecordID]*models.Record
	byScheme map[id.SchemeID][]id.RecordID
}

func NewInMemory() *InMemory {
	return &InMemory{
		records:  make(map[id.RecordID]*models.Record),
		byScheme: make(map[id.SchemeID][]id.RecordID),
	}
}

func (s *InMemory) CreateBatch(_ context.Context, records []*models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		if _, exists := s.records[r.ID]; exists {
			return sentinel.ErrConflict
		}
	}
	for _, r := range records {
		cp := r.Clone()
		s.records[r.ID] = cp
		s.byScheme[r.SchemeID] = append(s.byScheme[r.SchemeID], r.ID)
	}
	return nil
}

func (s *InMemory) ListByScheme(_ context.Context, schemeID id.SchemeID) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byScheme[schemeID]
	out := make([]*models.Record, 0, len(ids))
	for _, recordID := range ids {
		out = append(out, s.records[recordID].Clone())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *InMemory) UpdateFields(ctx context.Context, recordID id.RecordID, update models.FieldUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.records[recordID]
	if !exists {
		return sentinel.ErrNotFound
	}
	record.Apply(update, requestcontext.Now(ctx))
	return nil
}

func (s *InMemory) CountByScheme(_ context.Context, schemeID id.SchemeID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byScheme[schemeID]), nil
}
