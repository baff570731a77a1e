package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	catalog "takeon/internal/catalog/models"
	progress "takeon/internal/progress/models"
	scheme "takeon/internal/scheme/models"
	id "takeon/pkg/domain"
	dErrors "takeon/pkg/domain-errors"
	"takeon/pkg/requestcontext"
)

type fakeSchemeReader struct {
	schemes map[id.SchemeID]*scheme.Scheme
}

func (f *fakeSchemeReader) GetScheme(_ context.Context, schemeID id.SchemeID) (*scheme.Scheme, error) {
	if s, ok := f.schemes[schemeID]; ok {
		return s, nil
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "scheme not found")
}

type fakeProgressReader struct {
	records []progress.DisplayRecord
	err     error
	calls   int
}

func (f *fakeProgressReader) ListForDisplay(context.Context, id.SchemeID) ([]progress.DisplayRecord, error) {
	f.calls++
	return f.records, f.err
}

type ReportServiceSuite struct {
	suite.Suite
	schemes  *fakeSchemeReader
	progress *fakeProgressReader
	service  *Service
	schemeID id.SchemeID
	ctx      context.Context
}

func TestReportServiceSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceSuite))
}

func (s *ReportServiceSuite) SetupTest() {
	s.schemeID = id.NewSchemeID()
	s.schemes = &fakeSchemeReader{schemes: map[id.SchemeID]*scheme.Scheme{
		s.schemeID: {ID: s.schemeID, Name: "Villa Toscana", Type: catalog.SchemeTypeBC},
	}}
	s.progress = &fakeProgressReader{
		records: []progress.DisplayRecord{
			{
				Record: progress.Record{
					ID:       id.NewRecordID(),
					SchemeID: s.schemeID,
					Party:    catalog.PartyPretor,
				},
				Description: "Obtain conduct rules",
			},
		},
	}

	var err error
	s.service, err = NewService(s.schemes, s.progress)
	s.Require().NoError(err)

	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2024, time.March, 1, 14, 30, 0, 0, time.UTC))
}

func (s *ReportServiceSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *ReportServiceSuite) TestNewService() {
	s.Run("nil readers return errors", func() {
		_, err := NewService(nil, s.progress)
		s.Error(err)
		_, err = NewService(s.schemes, nil)
		s.Error(err)
	})
}

func (s *ReportServiceSuite) TestGenerate() {
	s.Run("names the file after the scheme and the request date", func() {
		doc, err := s.service.Generate(s.ctx, s.schemeID)
		s.Require().NoError(err)
		s.Equal("Villa Toscana_TakeOn_Report_2024-03-01.pdf", doc.Filename)
		s.True(strings.HasPrefix(string(doc.Content), "%PDF-"))
	})

	s.Run("unknown scheme is not found", func() {
		_, err := s.service.Generate(s.ctx, id.NewSchemeID())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("rejects nil scheme id", func() {
		_, err := s.service.Generate(s.ctx, id.SchemeID{})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("progress read failure surfaces", func() {
		s.progress.err = errors.New("connection refused")
		_, err := s.service.Generate(s.ctx, s.schemeID)
		s.Require().Error(err)
	})

	s.Run("renders fresh on every call when no cache is configured", func() {
		before := s.progress.calls
		_, err := s.service.Generate(s.ctx, s.schemeID)
		s.Require().NoError(err)
		_, err = s.service.Generate(s.ctx, s.schemeID)
		s.Require().NoError(err)
		s.Equal(before+2, s.progress.calls)
	})
}
