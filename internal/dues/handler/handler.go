// Package handler exposes the due reconciliation engine over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kitledger/internal/dues"
	"kitledger/pkg/platform/httputil"
	"kitledger/pkg/requestcontext"
)

// Service is the slice of the dues service the handler needs.
type Service interface {
	Query(ctx context.Context, req dues.QueryRequest) (dues.QueryResult, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/dues/query", h.HandleQuery)
}

func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[QueryRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Query(ctx, req.toServiceRequest())
	if err != nil {
		h.logger.ErrorContext(ctx, "dues query failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "dues query served",
		"request_id", requestID,
		"total", result.Total,
		"page_records", len(result.Records),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}
