package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	catalog "takeon/internal/catalog/models"
	catalogstore "takeon/internal/catalog/store"
	progressservice "takeon/internal/progress/service"
	progressstore "takeon/internal/progress/store"
	schemeservice "takeon/internal/scheme/service"
	schemestore "takeon/internal/scheme/store"
	id "takeon/pkg/domain"
	"takeon/pkg/requestcontext"
)

type SchemeHandlerSuite struct {
	suite.Suite
	router  chi.Router
	catalog *catalogstore.InMemory
}

func TestSchemeHandlerSuite(t *testing.T) {
	suite.Run(t, new(SchemeHandlerSuite))
}

func (s *SchemeHandlerSuite) SetupTest() {
	s.catalog = catalogstore.NewInMemory()
	progressSvc, err := progressservice.New(progressstore.NewInMemory(), s.catalog)
	s.Require().NoError(err)
	schemeSvc, err := schemeservice.New(schemestore.NewInMemory(), s.catalog, progressSvc)
	s.Require().NoError(err)

	s.router = chi.NewRouter()
	New(schemeSvc, slog.Default()).Register(s.router)
}

func (s *SchemeHandlerSuite) addItem(schemeType catalog.SchemeType) {
	item, err := catalog.NewItem(id.NewTemplateItemID(), "Obtain records", catalog.PartyPretor, schemeType, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.catalog.Create(context.Background(), item))
}

func (s *SchemeHandlerSuite) doRequest(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(requestcontext.WithTime(req.Context(), time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *SchemeHandlerSuite) intakeBody() map[string]any {
	return map[string]any{
		"name":                 "Villa Toscana",
		"scheme_type":          "BC",
		"appointment_date":     "2024-02-01",
		"financial_year_end":   "2024-08-31",
		"initial_request_date": "2024-02-05",
		"portfolio_manager":    "A. Naidoo",
		"pm_email":             "a.naidoo@pretor.co.za",
		"number_of_units":      42,
		"management_fees":      12500.50,
		"registration_number":  "SS123/2001",
		"vat_registered":       true,
		"vat_number":           "4123456789",
	}
}

func (s *SchemeHandlerSuite) TestCreate() {
	s.Run("creates a scheme and reports copied items", func() {
		s.addItem(catalog.SchemeTypeBC)
		s.addItem(catalog.SchemeTypeHOA)

		rec := s.doRequest(http.MethodPost, "/schemes", s.intakeBody())
		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

		var resp CreateSchemeResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal("Villa Toscana", resp.Scheme.Name)
		s.False(resp.Scheme.ID.IsNil())
		s.Equal(1, resp.CopiedItems)
		s.Equal("2024-02-01", resp.Scheme.AppointmentDate.String())
	})

	s.Run("rejects a missing portfolio manager email", func() {
		body := s.intakeBody()
		body["pm_email"] = "not-an-email"

		rec := s.doRequest(http.MethodPost, "/schemes", body)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("rejects unknown fields in the payload", func() {
		body := s.intakeBody()
		body["surprise"] = true

		rec := s.doRequest(http.MethodPost, "/schemes", body)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *SchemeHandlerSuite) TestGet() {
	s.Run("fetches a created scheme", func() {
		rec := s.doRequest(http.MethodPost, "/schemes", s.intakeBody())
		s.Require().Equal(http.StatusCreated, rec.Code)

		var created CreateSchemeResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))

		got := s.doRequest(http.MethodGet, fmt.Sprintf("/schemes/%s", created.Scheme.ID), nil)
		s.Equal(http.StatusOK, got.Code)
	})

	s.Run("unknown scheme is not found", func() {
		rec := s.doRequest(http.MethodGet, fmt.Sprintf("/schemes/%s", id.NewSchemeID()), nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *SchemeHandlerSuite) TestList() {
	s.Run("lists created schemes", func() {
		rec := s.doRequest(http.MethodPost, "/schemes", s.intakeBody())
		s.Require().Equal(http.StatusCreated, rec.Code)

		got := s.doRequest(http.MethodGet, "/schemes", nil)
		s.Require().Equal(http.StatusOK, got.Code)

		var resp ListSchemesResponse
		s.Require().NoError(json.Unmarshal(got.Body.Bytes(), &resp))
		s.Len(resp.Schemes, 1)
	})
}
