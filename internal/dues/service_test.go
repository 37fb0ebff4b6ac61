package dues

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"kitledger/internal/audit"
	"kitledger/internal/catalog"
	"kitledger/internal/roster"
	domainerrors "kitledger/pkg/domain-errors"
	"kitledger/pkg/requestcontext"
	"kitledger/pkg/testutil"
)

type stubRoster struct {
	students []roster.Student
	err      error
}

func (s *stubRoster) Snapshot(context.Context) ([]roster.Student, error) {
	return s.students, s.err
}

type stubCatalog struct {
	items []catalog.Item
	err   error
}

func (s *stubCatalog) Snapshot(context.Context) ([]catalog.Item, error) {
	return s.items, s.err
}

type ServiceSuite struct {
	suite.Suite

	rosterSrc  *stubRoster
	catalogSrc *stubCatalog
	auditStore *audit.MemoryStore
	service    *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.rosterSrc = &stubRoster{
		students: []roster.Student{
			{ID: "s1", Name: "Asha", StudentID: "R-001", Course: "B.Tech", Year: 2,
				Items: map[string]bool{"lab_manual": true}},
			{ID: "s2", Name: "Bilal", StudentID: "R-002", Course: "B.Tech", Year: 1,
				Items: map[string]bool{}},
			{ID: "s3", Name: "Chitra", StudentID: "R-003", Course: "MBA", Year: 1,
				Items: map[string]bool{}},
		},
	}
	s.catalogSrc = &stubCatalog{
		items: []catalog.Item{
			{ID: "i1", Name: "Lab Manual", Course: "b_tech", Price: decimal.NewFromInt(250)},
			{ID: "i2", Name: "Drafter", Course: "B.Tech", Price: decimal.NewFromInt(900)},
		},
	}
	s.auditStore = audit.NewMemoryStore()
	s.service = NewService(s.rosterSrc, s.catalogSrc, audit.NewPublisher(s.auditStore),
		slog.New(slog.DiscardHandler), nil)
}

func (s *ServiceSuite) TestQueryRunsFullPipeline() {
	result, err := s.service.Query(context.Background(), QueryRequest{})
	s.Require().NoError(err)

	// s3's course has no catalog entries, so only the two B.Tech students
	// appear; s2 (year 1) sorts before s1 (year 2).
	s.Require().Len(result.Records, 2)
	s.Equal("s2", result.Records[0].Student.ID)
	s.Equal("s1", result.Records[1].Student.ID)

	s.Equal(2, result.Stats.TotalStudents)
	s.Equal(3, result.Stats.TotalPendingItems)
	s.True(result.Stats.TotalPendingAmount.Equal(decimal.NewFromInt(2050)),
		"got %s", result.Stats.TotalPendingAmount)
	s.Equal(1, result.Stats.ImpactedCourseCount)
	s.Equal(2, result.Total)
	s.Equal(1, result.PageCount)
}

func (s *ServiceSuite) TestQueryStatsCoverFilteredSetNotPage() {
	result, err := s.service.Query(context.Background(), QueryRequest{Page: 1, PageSize: 1})
	s.Require().NoError(err)

	s.Len(result.Records, 1)
	s.Equal(2, result.Total)
	s.Equal(2, result.PageCount)
	s.Equal(2, result.Stats.TotalStudents, "stats must cover all filtered records")
}

func (s *ServiceSuite) TestQueryAppliesFilters() {
	year := 2
	result, err := s.service.Query(context.Background(), QueryRequest{
		Filters: Filters{Year: &year},
	})
	s.Require().NoError(err)

	s.Require().Len(result.Records, 1)
	s.Equal("s1", result.Records[0].Student.ID)
	s.Equal(1, result.Stats.TotalStudents)
}

func (s *ServiceSuite) TestQueryRosterFailure() {
	s.rosterSrc.err = errors.New("connection refused")

	_, err := s.service.Query(context.Background(), QueryRequest{})
	s.Require().Error(err)
	s.Equal(domainerrors.CodeRosterUnavailable, domainerrors.CodeOf(err))
}

func (s *ServiceSuite) TestQueryCatalogFailure() {
	s.catalogSrc.err = errors.New("timeout")

	_, err := s.service.Query(context.Background(), QueryRequest{})
	s.Require().Error(err)
	s.Equal(domainerrors.CodeCatalogUnavailable, domainerrors.CodeOf(err))
}

func (s *ServiceSuite) TestQueryEmitsAuditEvent() {
	ctx := testutil.ContextWithRequestID("req-42")
	ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.7", "kitledger-cli/1.0")

	_, err := s.service.Query(ctx, QueryRequest{})
	s.Require().NoError(err)

	events := s.auditStore.Events()
	s.Require().Len(events, 1)
	s.Equal(audit.ActionDuesQuery, events[0].Action)
	s.Equal("req-42", events[0].RequestID)
	s.Equal("203.0.113.7", events[0].ClientIP)
	s.Equal("kitledger-cli/1.0", events[0].UserAgent)
	s.Equal(2, events[0].TotalStudents)
	s.Equal("2050", events[0].PendingAmount)
	s.False(events[0].Timestamp.IsZero())
}

func (s *ServiceSuite) TestQueryAuditFailureDoesNotFailQuery() {
	s.service = NewService(s.rosterSrc, s.catalogSrc, failingPublisher{},
		slog.New(slog.DiscardHandler), nil)

	result, err := s.service.Query(context.Background(), QueryRequest{})
	s.Require().NoError(err)
	s.Len(result.Records, 2)
}

type failingPublisher struct{}

func (failingPublisher) Emit(context.Context, audit.Event) error {
	return errors.New("broker down")
}
