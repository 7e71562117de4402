package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"deal-underwriter/domain"
	"deal-underwriter/repository"
	"deal-underwriter/service"
)

const testListingsCSV = "List Price,Number of Units,Street #,Street Name,Town,Days on Market,GrossRents,Taxes\n" +
	"300000,3,12,Elm St,Springfield,5,,\n" +
	"240000,4,40,Main St,Shelbyville,10,1250,3600\n"

type testServer struct {
	handler  http.Handler
	cache    *repository.MemoryCache
	listings *service.ListingService
}

func newTestServer(t *testing.T, limiter *RateLimiter) *testServer {
	t.Helper()
	log := zerolog.Nop()

	path := filepath.Join(t.TempDir(), "listings.csv")
	require.NoError(t, os.WriteFile(path, []byte(testListingsCSV), 0o644))

	listings := service.NewListingService(repository.NewCSVListingSource(path), domain.DefaultAssumptions(), log)
	require.NoError(t, listings.Refresh(context.Background()))

	cache := repository.NewMemoryCache()
	server := NewServer(Config{
		Log:          log,
		Port:         8080,
		Underwriting: service.NewUnderwritingService(nil, log),
		Projections:  service.NewProjectionService(log),
		Listings:     listings,
		Cache:        cache,
		CacheTTL:     time.Minute,
		RateLimiter:  limiter,
	})

	return &testServer{handler: server.Handler(), cache: cache, listings: listings}
}

func (s *testServer) do(method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewBuffer(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	decodeBody(t, w, &body)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, float64(2), body["listings"])
}
