package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	catalog "takeon/internal/catalog/models"
	catalogstore "takeon/internal/catalog/store"
	"takeon/internal/progress/models"
	progressstore "takeon/internal/progress/store"
	id "takeon/pkg/domain"
	dErrors "takeon/pkg/domain-errors"
	"takeon/pkg/requestcontext"
)

// failingStore wraps the in-memory store and fails UpdateFields for one
// record id, modelling a partial storage outage mid-reconciliation.
type failingStore struct {
	*progressstore.InMemory
	failID id.RecordID
}

func (f *failingStore) UpdateFields(ctx context.Context, recordID id.RecordID, update models.FieldUpdate) error {
	if recordID == f.failID {
		return errors.New("write timeout")
	}
	return f.InMemory.UpdateFields(ctx, recordID, update)
}

type ProgressServiceSuite struct {
	suite.Suite
	store   *progressstore.InMemory
	catalog *catalogstore.InMemory
	service *Service
	ctx     context.Context
}

func TestProgressServiceSuite(t *testing.T) {
	suite.Run(t, new(ProgressServiceSuite))
}

func (s *ProgressServiceSuite) SetupTest() {
	s.store = progressstore.NewInMemory()
	s.catalog = catalogstore.NewInMemory()
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC))

	var err error
	s.service, err = New(s.store, s.catalog)
	s.Require().NoError(err)
}

func (s *ProgressServiceSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *ProgressServiceSuite) newItem(description string, party catalog.Party, schemeType catalog.SchemeType) *catalog.Item {
	item, err := catalog.NewItem(id.NewTemplateItemID(), description, party, schemeType, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.catalog.Create(s.ctx, item))
	return item
}

func (s *ProgressServiceSuite) instantiate(schemeType catalog.SchemeType, items []*catalog.Item) (id.SchemeID, []*models.Record) {
	schemeID := id.NewSchemeID()
	_, records, err := s.service.Instantiate(s.ctx, schemeID, schemeType, items)
	s.Require().NoError(err)
	return schemeID, records
}

func (s *ProgressServiceSuite) TestNew() {
	s.Run("nil store returns error", func() {
		_, err := New(nil, s.catalog)
		s.Error(err)
		s.Contains(err.Error(), "progress store is required")
	})
}

func (s *ProgressServiceSuite) TestInstantiate() {
	s.Run("copies only items matching the scheme type", func() {
		bc1 := s.newItem("Obtain rules", catalog.PartyPretor, catalog.SchemeTypeBC)
		s.newItem("HOA constitution", catalog.PartyPretor, catalog.SchemeTypeHOA)
		bc2 := s.newItem("Collect levy roll", catalog.PartyPMA, catalog.SchemeTypeBC)

		schemeID := id.NewSchemeID()
		items, err := s.catalog.List(s.ctx)
		s.Require().NoError(err)

		count, records, err := s.service.Instantiate(s.ctx, schemeID, catalog.SchemeTypeBC, items)
		s.Require().NoError(err)
		s.Equal(2, count)
		s.Require().Len(records, 2)

		// Snapshot fields are copied from each template item, and every
		// record links back to exactly one source item.
		s.Equal(bc1.ID, records[0].TemplateItemID)
		s.Equal(catalog.PartyPretor, records[0].Party)
		s.Equal(bc2.ID, records[1].TemplateItemID)
		s.Equal(catalog.PartyPMA, records[1].Party)
		for i, r := range records {
			s.Equal(schemeID, r.SchemeID)
			s.Equal(catalog.SchemeTypeBC, r.SchemeType)
			s.Equal(i, r.Position)
			s.False(r.Complete)
			s.Nil(r.DateCompleted)
			s.Nil(r.CompletedBy)
		}
	})

	s.Run("zero matching items is not an error", func() {
		s.newItem("HOA only", catalog.PartyPretor, catalog.SchemeTypeHOA)
		items, err := s.catalog.List(s.ctx)
		s.Require().NoError(err)

		count, records, err := s.service.Instantiate(s.ctx, id.NewSchemeID(), catalog.SchemeTypeBC, items)
		s.Require().NoError(err)
		s.Zero(count)
		s.Empty(records)
	})

	s.Run("refuses a second instantiation for the same scheme", func() {
		item := s.newItem("Obtain rules", catalog.PartyPretor, catalog.SchemeTypeBC)
		schemeID, _ := s.instantiate(catalog.SchemeTypeBC, []*catalog.Item{item})

		_, _, err := s.service.Instantiate(s.ctx, schemeID, catalog.SchemeTypeBC, []*catalog.Item{item})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("rejects nil scheme id and unknown type", func() {
		_, _, err := s.service.Instantiate(s.ctx, id.SchemeID{}, catalog.SchemeTypeBC, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		_, _, err = s.service.Instantiate(s.ctx, id.NewSchemeID(), catalog.SchemeType("Sectional"), nil)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ProgressServiceSuite) TestReconcile() {
	s.Run("applies only dirty rows", func() {
		a := s.newItem("Obtain rules", catalog.PartyPretor, catalog.SchemeTypeBC)
		b := s.newItem("Collect levy roll", catalog.PartyPretor, catalog.SchemeTypeBC)
		schemeID, records := s.instantiate(catalog.SchemeTypeBC, []*catalog.Item{a, b})

		date := id.Date{Year: 2024, Month: time.March, Day: 1}
		operator := models.OperatorMe
		edited := []models.EditedEntry{
			{ID: records[0].ID, Complete: true, DateCompleted: &date, CompletedBy: &operator},
			{ID: records[1].ID, Complete: false},
		}

		result, err := s.service.Reconcile(s.ctx, schemeID, edited)
		s.Require().NoError(err)
		s.Equal([]id.RecordID{records[0].ID}, result.Updated)
		s.Empty(result.Failed)

		stored, err := s.store.ListByScheme(s.ctx, schemeID)
		s.Require().NoError(err)
		s.True(stored[0].Complete)
		s.Equal(date, *stored[0].DateCompleted)
		s.Equal(operator, *stored[0].CompletedBy)
		s.False(stored[1].Complete)
	})

	s.Run("is idempotent against the post-update state", func() {
		a := s.newItem("Obtain rules", catalog.PartyPretor, catalog.SchemeTypeBC)
		schemeID, records := s.instantiate(catalog.SchemeTypeBC, []*catalog.Item{a})

		date := id.Date{Year: 2024, Month: time.March, Day: 1}
		operator := models.OperatorBookkeeper
		edited := []models.EditedEntry{
			{ID: records[0].ID, Complete: true, DateCompleted: &date, CompletedBy: &operator, Notes: "filed"},
		}

		first, err := s.service.Reconcile(s.ctx, schemeID, edited)
		s.Require().NoError(err)
		s.Len(first.Updated, 1)

		second, err := s.service.Reconcile(s.ctx, schemeID, edited)
		s.Require().NoError(err)
		s.Empty(second.Updated)
		s.Empty(second.Failed)
	})

	s.Run("matches rows by id regardless of submission order", func() {
		a := s.newItem("Obtain rules", catalog.PartyPretor, catalog.SchemeTypeBC)
		b := s.newItem("Collect levy roll", catalog.PartyPretor, catalog.SchemeTypeBC)
		schemeID, records := s.instantiate(catalog.SchemeTypeBC, []*catalog.Item{a, b})

		// Submit the rows reversed; only the second stored record changes.
		edited := []models.EditedEntry{
			{ID: records[1].ID, Complete: false, Notes: "chasing managing agent"},
			{ID: records[0].ID, Complete: false},
		}

		result, err := s.service.Reconcile(s.ctx, schemeID, edited)
		s.Require().NoError(err)
		s.Equal([]id.RecordID{records[1].ID}, result.Updated)

		stored, err := s.store.ListByScheme(s.ctx, schemeID)
		s.Require().NoError(err)
		s.Empty(stored[0].Notes)
		s.Equal("chasing managing agent", stored[1].Notes)
	})

	s.Run("unchecking a complete row clears its completion fields", func() {
		a := s.newItem("Obtain rules", catalog.PartyPretor, catalog.SchemeTypeBC)
		schemeID, records := s.instantiate(catalog.SchemeTypeBC, []*catalog.Item{a})

		date := id.Date{Year: 2024, Month: time.March, Day: 1}
		operator := models.OperatorMe
		_, err := s.service.Reconcile(s.ctx, schemeID, []models.EditedEntry{
			{ID: records[0].ID, Complete: true, DateCompleted: &date, CompletedBy: &operator},
		})
		s.Require().NoError(err)

		// The uncheck carries stale completion fields; they must be dropped.
		result, err := s.service.Reconcile(s.ctx, schemeID, []models.EditedEntry{
			{ID: records[0].ID, Complete: false, DateCompleted: &date, CompletedBy: &operator},
		})
		s.Require().NoError(err)
		s.Len(result.Updated, 1)

		stored, err := s.store.ListByScheme(s.ctx, schemeID)
		s.Require().NoError(err)
		s.False(stored[0].Complete)
		s.Nil(stored[0].DateCompleted)
		s.Nil(stored[0].CompletedBy)
	})

	s.Run("unknown record id rejects the whole view with zero updates", func() {
		a := s.newItem("Obtain rules", catalog.PartyPretor, catalog.SchemeTypeBC)
		schemeID, records := s.instantiate(catalog.SchemeTypeBC, []*catalog.Item{a})

		edited := []models.EditedEntry{
			{ID: records[0].ID, Complete: true},
			{ID: id.NewRecordID(), Complete: true},
		}

		_, err := s.service.Reconcile(s.ctx, schemeID, edited)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		// Even the known row was not written.
		stored, err := s.store.ListByScheme(s.ctx, schemeID)
		s.Require().NoError(err)
		s.False(stored[0].Complete)
	})

	s.Run("a failed write does not abort the remaining rows", func() {
		a := s.newItem("Obtain rules", catalog.PartyPretor, catalog.SchemeTypeBC)
		b := s.newItem("Collect levy roll", catalog.PartyPretor, catalog.SchemeTypeBC)
		schemeID, records := s.instantiate(catalog.SchemeTypeBC, []*catalog.Item{a, b})

		flaky := &failingStore{InMemory: s.store, failID: records[0].ID}
		svc, err := New(flaky, s.catalog)
		s.Require().NoError(err)

		edited := []models.EditedEntry{
			{ID: records[0].ID, Complete: true},
			{ID: records[1].ID, Complete: true},
		}

		result, err := svc.Reconcile(s.ctx, schemeID, edited)
		s.Require().NoError(err)
		s.Equal([]id.RecordID{records[1].ID}, result.Updated)
		s.Require().Len(result.Failed, 1)
		s.Equal(records[0].ID, result.Failed[0].ID)
		s.True(dErrors.HasCode(result.Failed[0].Err, dErrors.CodeUnavailable))
	})
}

func (s *ProgressServiceSuite) TestListForDisplay() {
	s.Run("joins descriptions from the catalog", func() {
		a := s.newItem("Obtain rules", catalog.PartyPretor, catalog.SchemeTypeBC)
		schemeID, _ := s.instantiate(catalog.SchemeTypeBC, []*catalog.Item{a})

		display, err := s.service.ListForDisplay(s.ctx, schemeID)
		s.Require().NoError(err)
		s.Require().Len(display, 1)
		s.Equal("Obtain rules", display[0].Description)
	})
}
