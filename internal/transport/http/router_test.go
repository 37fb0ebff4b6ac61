package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitledger/internal/dues"
	dueshandler "kitledger/internal/dues/handler"
	"kitledger/pkg/platform/middleware/requestid"
	"kitledger/pkg/testutil"
)

type staticService struct{}

func (staticService) Query(context.Context, dues.QueryRequest) (dues.QueryResult, error) {
	return dues.QueryResult{}, nil
}

func newTestRouter(checks map[string]HealthCheck) http.Handler {
	h := dueshandler.New(staticService{}, slog.New(slog.DiscardHandler))
	return NewRouter(h, checks)
}

func TestHealthzHealthy(t *testing.T) {
	router := newTestRouter(map[string]HealthCheck{
		"postgres": func(context.Context) error { return nil },
	})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))

	require.Equal(t, http.StatusOK, rr.Code)
	resp := testutil.UnmarshalResponse[map[string]any](t, rr)
	assert.Equal(t, "ok", (*resp)["status"])
	deps := (*resp)["dependencies"].(map[string]any)
	assert.Equal(t, "ok", deps["postgres"])
}

func TestHealthzDegraded(t *testing.T) {
	router := newTestRouter(map[string]HealthCheck{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	resp := testutil.UnmarshalResponse[map[string]any](t, rr)
	assert.Equal(t, "degraded", (*resp)["status"])
	deps := (*resp)["dependencies"].(map[string]any)
	assert.Equal(t, "ok", deps["postgres"])
	assert.Equal(t, "connection refused", deps["redis"])
}

func TestHealthzNoChecks(t *testing.T) {
	router := newTestRouter(nil)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	router := newTestRouter(nil)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))

	assert.NotEmpty(t, rr.Header().Get(requestid.Header))
}

func TestDuesRouteMounted(t *testing.T) {
	router := newTestRouter(nil)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/dues/query", map[string]any{})
	rr := testutil.DoRequest(router, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMetricsEndpointMounted(t *testing.T) {
	router := newTestRouter(nil)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))

	assert.Equal(t, http.StatusOK, rr.Code)
}
