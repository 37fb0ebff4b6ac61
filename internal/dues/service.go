package dues

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"kitledger/internal/audit"
	"kitledger/internal/catalog"
	"kitledger/internal/dues/metrics"
	"kitledger/internal/dues/ports"
	"kitledger/internal/roster"
	domainerrors "kitledger/pkg/domain-errors"
	"kitledger/pkg/requestcontext"
)

// QueryRequest is the service-level input for one reconciliation query.
type QueryRequest struct {
	Filters  Filters
	Page     int
	PageSize int
}

// QueryResult is one page of due records plus stats over the full filtered
// set. Total and PageCount describe the filtered set, not the page.
type QueryResult struct {
	Records   []MatchRecord
	Stats     DueStats
	Total     int
	PageCount int
}

// Service runs the reconciliation pipeline over source snapshots.
type Service struct {
	roster  ports.RosterProvider
	catalog ports.CatalogProvider
	audit   ports.AuditPublisher
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(
	rosterProvider ports.RosterProvider,
	catalogProvider ports.CatalogProvider,
	auditPublisher ports.AuditPublisher,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		roster:  rosterProvider,
		catalog: catalogProvider,
		audit:   auditPublisher,
		logger:  logger,
		metrics: m,
	}
}

// Query fetches both source snapshots, recomputes the full match set, then
// filters, aggregates and pages it. Stats always describe the filtered set.
func (s *Service) Query(ctx context.Context, req QueryRequest) (QueryResult, error) {
	tracer := otel.Tracer("kitledger/dues")
	ctx, span := tracer.Start(ctx, "dues.query")
	defer span.End()

	start := time.Now()

	students, items, err := s.fetchSnapshots(ctx)
	if err != nil {
		s.metrics.IncrementOutcome("source_unavailable")
		return QueryResult{}, err
	}

	index := BuildIndex(items)
	records := Match(students, index)
	s.metrics.SetDueStudents(len(records))

	filtered := FilterRecords(records, req.Filters)
	stats := Aggregate(filtered)
	page := Paginate(filtered, req.Page, req.PageSize)

	elapsed := time.Since(start)
	s.metrics.ObserveReconcileLatency(elapsed)
	s.metrics.IncrementOutcome("ok")

	span.SetAttributes(
		attribute.Int("dues.students", len(students)),
		attribute.Int("dues.catalog_items", len(items)),
		attribute.Int("dues.due_students", len(records)),
		attribute.Int("dues.filtered", len(filtered)),
	)

	s.emitAudit(ctx, stats, elapsed)

	return QueryResult{
		Records:   page.Records,
		Stats:     stats,
		Total:     page.Total,
		PageCount: page.PageCount,
	}, nil
}

// fetchSnapshots loads both sources concurrently. A failing source is
// reported with its own error code so callers can tell the retryable
// upstream apart.
func (s *Service) fetchSnapshots(ctx context.Context) ([]roster.Student, []catalog.Item, error) {
	var (
		students []roster.Student
		items    []catalog.Item
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		var err error
		students, err = s.roster.Snapshot(gctx)
		s.metrics.ObserveSnapshotLatency("roster", time.Since(start))
		if err != nil {
			return domainerrors.Wrap(domainerrors.CodeRosterUnavailable, "roster snapshot unavailable", err)
		}
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		var err error
		items, err = s.catalog.Snapshot(gctx)
		s.metrics.ObserveSnapshotLatency("catalog", time.Since(start))
		if err != nil {
			return domainerrors.Wrap(domainerrors.CodeCatalogUnavailable, "catalog snapshot unavailable", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return students, items, nil
}

func (s *Service) emitAudit(ctx context.Context, stats DueStats, elapsed time.Duration) {
	if s.audit == nil {
		return
	}
	event := audit.Event{
		RequestID:       requestcontext.RequestID(ctx),
		ClientIP:        requestcontext.ClientIP(ctx),
		UserAgent:       requestcontext.UserAgent(ctx),
		Action:          audit.ActionDuesQuery,
		TotalStudents:   stats.TotalStudents,
		PendingItems:    stats.TotalPendingItems,
		PendingAmount:   stats.TotalPendingAmount.String(),
		ImpactedCourses: stats.ImpactedCourseCount,
		DurationMS:      elapsed.Milliseconds(),
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.Warn("audit emit failed",
			"action", event.Action,
			"request_id", event.RequestID,
			"error", err)
	}
}
