package monitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endotronic/dropbox-monitoring/internal/status"
)

func newTestRoutes(report status.Report) http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(NewCollector(fixedSnapshot{report: report}))
	return SetupRoutes(registry)
}

func TestRoutes_Metrics(t *testing.T) {
	routes := newTestRoutes(status.Report{
		State:   status.StateSyncing,
		Syncing: status.Count{N: 3, Known: true},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `dropbox_status{state="syncing"} 1`)
	assert.Contains(t, body, "dropbox_num_syncing 3")
	assert.NotContains(t, body, "dropbox_num_downloading", "absent counts are not exported")
}

func TestRoutes_Healthz(t *testing.T) {
	routes := newTestRoutes(status.Zero())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRoutes_Index(t *testing.T) {
	routes := newTestRoutes(status.Zero())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}

func TestDaemon_StopsOnCancel(t *testing.T) {
	d := NewDaemon(fixedSnapshot{report: status.Zero()}, "localhost:0")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Start(ctx) }()

	cancel()
	assert.NoError(t, <-done, "signal-driven shutdown exits cleanly")
}
