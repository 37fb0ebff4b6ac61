package handler

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"kitledger/internal/dues"
	"kitledger/internal/roster"
	domainerrors "kitledger/pkg/domain-errors"
	"kitledger/pkg/testutil"
)

type stubService struct {
	result  dues.QueryResult
	err     error
	lastReq dues.QueryRequest
	calls   int
}

func (s *stubService) Query(_ context.Context, req dues.QueryRequest) (dues.QueryResult, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return dues.QueryResult{}, s.err
	}
	return s.result, nil
}

type HandlerSuite struct {
	suite.Suite

	service *stubService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.service = &stubService{
		result: dues.QueryResult{
			Records: []dues.MatchRecord{
				{
					Student:      roster.Student{ID: "s1", Name: "Asha", StudentID: "R-001", Course: "B.Tech", Year: 1},
					PendingValue: decimal.NewFromInt(250),
					MappedValue:  decimal.NewFromInt(250),
				},
			},
			Stats: dues.DueStats{
				TotalStudents:       1,
				TotalPendingItems:   1,
				TotalPendingAmount:  decimal.NewFromInt(250),
				ImpactedCourseCount: 1,
			},
			Total:     1,
			PageCount: 1,
		},
	}
	h := New(s.service, slog.New(slog.DiscardHandler))
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *HandlerSuite) TestQuerySuccess() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/dues/query", QueryRequest{Page: 1})
	rr := testutil.DoRequest(s.router, req)

	s.Require().Equal(http.StatusOK, rr.Code)
	resp := testutil.UnmarshalResponse[QueryResponse](s.T(), rr)
	s.Require().Len(resp.Records, 1)
	s.Equal("s1", resp.Records[0].Student.ID)
	s.Equal(1, resp.Stats.TotalStudents)
	s.Equal(1, resp.Total)
	s.Equal(1, resp.PageCount)
	s.Equal(1, s.service.calls)
}

func (s *HandlerSuite) TestQueryPassesFiltersThrough() {
	year := 2
	body := QueryRequest{
		Filters:  QueryFilters{Search: "asha", Course: "btech", Year: &year, Branch: "cse"},
		Page:     3,
		PageSize: 50,
	}
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/dues/query", body)
	rr := testutil.DoRequest(s.router, req)

	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal("asha", s.service.lastReq.Filters.Search)
	s.Equal("btech", s.service.lastReq.Filters.Course)
	s.Require().NotNil(s.service.lastReq.Filters.Year)
	s.Equal(2, *s.service.lastReq.Filters.Year)
	s.Equal(3, s.service.lastReq.Page)
	s.Equal(50, s.service.lastReq.PageSize)
}

func (s *HandlerSuite) TestQueryEmptyBodyRejected() {
	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/dues/query", "{not json")
	rr := testutil.DoRequest(s.router, req)

	s.Equal(http.StatusBadRequest, rr.Code)
	errResp := testutil.UnmarshalErrorResponse(s.T(), rr)
	s.Equal("bad_request", errResp["error"])
	s.Zero(s.service.calls)
}

func (s *HandlerSuite) TestQueryValidation() {
	body := QueryRequest{PageSize: 10000}
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/dues/query", body)
	rr := testutil.DoRequest(s.router, req)

	s.Equal(http.StatusBadRequest, rr.Code)
	errResp := testutil.UnmarshalErrorResponse(s.T(), rr)
	s.Equal("validation_error", errResp["error"])
	s.Equal("page_size must be at most 200", errResp["error_description"])
	s.Zero(s.service.calls)
}

func (s *HandlerSuite) TestQueryRosterUnavailable() {
	s.service.err = domainerrors.New(domainerrors.CodeRosterUnavailable, "roster snapshot unavailable")

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/dues/query", QueryRequest{})
	rr := testutil.DoRequest(s.router, req)

	s.Equal(http.StatusServiceUnavailable, rr.Code)
	errResp := testutil.UnmarshalErrorResponse(s.T(), rr)
	s.Equal("roster_unavailable", errResp["error"])
	s.Equal("roster snapshot unavailable", errResp["error_description"])
}

func (s *HandlerSuite) TestQueryCatalogUnavailable() {
	s.service.err = domainerrors.New(domainerrors.CodeCatalogUnavailable, "catalog snapshot unavailable")

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/dues/query", QueryRequest{})
	rr := testutil.DoRequest(s.router, req)

	s.Equal(http.StatusServiceUnavailable, rr.Code)
	errResp := testutil.UnmarshalErrorResponse(s.T(), rr)
	s.Equal("catalog_unavailable", errResp["error"])
}

func (s *HandlerSuite) TestQueryEmptyResultIsNotAnError() {
	s.service.result = dues.QueryResult{}

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/dues/query", QueryRequest{})
	rr := testutil.DoRequest(s.router, req)

	s.Require().Equal(http.StatusOK, rr.Code)
	resp := testutil.UnmarshalResponse[QueryResponse](s.T(), rr)
	s.NotNil(resp.Records)
	s.Empty(resp.Records)
	s.Zero(resp.Total)
}
