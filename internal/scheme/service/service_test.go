package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	catalog "takeon/internal/catalog/models"
	catalogstore "takeon/internal/catalog/store"
	progressservice "takeon/internal/progress/service"
	progressstore "takeon/internal/progress/store"
	"takeon/internal/scheme/models"
	schemestore "takeon/internal/scheme/store"
	id "takeon/pkg/domain"
	dErrors "takeon/pkg/domain-errors"
	"takeon/pkg/requestcontext"
)

// brokenCatalog models a catalog read failure at intake time.
type brokenCatalog struct{}

func (brokenCatalog) List(context.Context) ([]*catalog.Item, error) {
	return nil, errors.New("connection refused")
}

type SchemeServiceSuite struct {
	suite.Suite
	store         *schemestore.InMemory
	catalog       *catalogstore.InMemory
	progressStore *progressstore.InMemory
	service       *Service
	ctx           context.Context
}

func TestSchemeServiceSuite(t *testing.T) {
	suite.Run(t, new(SchemeServiceSuite))
}

func (s *SchemeServiceSuite) SetupTest() {
	s.store = schemestore.NewInMemory()
	s.catalog = catalogstore.NewInMemory()
	s.progressStore = progressstore.NewInMemory()

	instantiator, err := progressservice.New(s.progressStore, s.catalog)
	s.Require().NoError(err)

	s.service, err = New(s.store, s.catalog, instantiator)
	s.Require().NoError(err)
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC))
}

func (s *SchemeServiceSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *SchemeServiceSuite) addItem(description string, schemeType catalog.SchemeType) {
	item, err := catalog.NewItem(id.NewTemplateItemID(), description, catalog.PartyPretor, schemeType, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.catalog.Create(s.ctx, item))
}

func (s *SchemeServiceSuite) validScheme() *models.Scheme {
	return &models.Scheme{
		Name:               "Villa Toscana",
		Type:               catalog.SchemeTypeBC,
		PortfolioManager:   "A. Naidoo",
		PMEmail:            "a.naidoo@pretor.co.za",
		RegistrationNumber: "SS123/2001",
	}
}

func (s *SchemeServiceSuite) TestNew() {
	s.Run("nil dependencies return errors", func() {
		instantiator, err := progressservice.New(s.progressStore, s.catalog)
		s.Require().NoError(err)

		_, err = New(nil, s.catalog, instantiator)
		s.Error(err)
		_, err = New(s.store, nil, instantiator)
		s.Error(err)
		_, err = New(s.store, s.catalog, nil)
		s.Error(err)
	})
}

func (s *SchemeServiceSuite) TestCreateScheme() {
	s.Run("persists the scheme and copies matching items", func() {
		s.addItem("Obtain rules", catalog.SchemeTypeBC)
		s.addItem("HOA constitution", catalog.SchemeTypeHOA)
		s.addItem("Collect levy roll", catalog.SchemeTypeBC)

		created, copied, err := s.service.CreateScheme(s.ctx, s.validScheme())
		s.Require().NoError(err)
		s.False(created.ID.IsNil())
		s.Equal(2, copied)
		s.Equal(time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC), created.CreatedAt)

		records, err := s.progressStore.ListByScheme(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Len(records, 2)
	})

	s.Run("zero matching items still creates the scheme", func() {
		s.addItem("HOA constitution", catalog.SchemeTypeHOA)

		created, copied, err := s.service.CreateScheme(s.ctx, s.validScheme())
		s.Require().NoError(err)
		s.Zero(copied)

		found, err := s.service.GetScheme(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Equal("Villa Toscana", found.Name)
	})

	s.Run("rejects an invalid scheme before any writes", func() {
		scheme := s.validScheme()
		scheme.PMEmail = "not-an-email"

		_, _, err := s.service.CreateScheme(s.ctx, scheme)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		schemes, err := s.service.ListSchemes(s.ctx)
		s.Require().NoError(err)
		s.Empty(schemes)
	})

	s.Run("catalog read failure aborts intake cleanly", func() {
		instantiator, err := progressservice.New(s.progressStore, s.catalog)
		s.Require().NoError(err)
		svc, err := New(s.store, brokenCatalog{}, instantiator)
		s.Require().NoError(err)

		_, _, err = svc.CreateScheme(s.ctx, s.validScheme())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))

		schemes, err := svc.ListSchemes(s.ctx)
		s.Require().NoError(err)
		s.Empty(schemes)
	})
}

func (s *SchemeServiceSuite) TestGetScheme() {
	s.Run("returns not found for unknown id", func() {
		_, err := s.service.GetScheme(s.ctx, id.NewSchemeID())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("rejects nil id", func() {
		_, err := s.service.GetScheme(s.ctx, id.SchemeID{})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *SchemeServiceSuite) TestListSchemes() {
	s.Run("returns schemes in creation order", func() {
		first := s.validScheme()
		_, _, err := s.service.CreateScheme(s.ctx, first)
		s.Require().NoError(err)

		second := s.validScheme()
		second.Name = "Waterkloof Gardens"
		second.Type = catalog.SchemeTypeHOA
		_, _, err = s.service.CreateScheme(s.ctx, second)
		s.Require().NoError(err)

		schemes, err := s.service.ListSchemes(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(schemes, 2)
		s.Equal("Villa Toscana", schemes[0].Name)
		s.Equal("Waterkloof Gardens", schemes[1].Name)
	})
}
