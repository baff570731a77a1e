package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"takeon/internal/catalog/models"
	id "takeon/pkg/domain"
)

type CatalogStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestCatalogStoreSuite(t *testing.T) {
	suite.Run(t, new(CatalogStoreSuite))
}

func (s *CatalogStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *CatalogStoreSuite) newItem(description string) *models.Item {
	item, err := models.NewItem(id.NewTemplateItemID(), description, models.PartyPretor, models.SchemeTypeBC, time.Now())
	s.Require().NoError(err)
	return item
}

func (s *CatalogStoreSuite) TestCreateAndList() {
	s.Run("lists items in creation order", func() {
		first := s.newItem("Obtain rules")
		second := s.newItem("Collect levy roll")
		s.Require().NoError(s.store.Create(s.ctx, first))
		s.Require().NoError(s.store.Create(s.ctx, second))

		items, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(items, 2)
		s.Equal(first.ID, items[0].ID)
		s.Equal(second.ID, items[1].ID)
	})

	s.Run("returned items do not alias stored state", func() {
		item := s.newItem("Obtain rules")
		s.Require().NoError(s.store.Create(s.ctx, item))

		items, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		items[0].Description = "mutated"

		again, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Equal("Obtain rules", again[0].Description)
	})
}
