package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aegisshield/irregular-report/internal/audit"
	"github.com/aegisshield/irregular-report/internal/config"
	"github.com/aegisshield/irregular-report/internal/metrics"
	"github.com/aegisshield/irregular-report/internal/reporting"
	"github.com/aegisshield/irregular-report/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const reportBody = `{
  "reportMetadata": {"reportNumber": "IR-7", "reportDate": "2024-03-05"},
  "sourceMetadata": {"reportingPerson": {"firstName": "Dana", "lastName": "Levi"}},
  "event": {
    "briefDescription": "Cash & cheques",
    "entities": [{"kind": "person", "person": {"firstName": "Avi", "lastName": "Cohen"}}]
  }
}`

type testServer struct {
	router   *gin.Engine
	audit    *audit.Logger
	registry *prometheus.Registry
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWith(t, storage.NewMemoryStore(), Options{TicketTTL: time.Minute})
}

func newTestServerWith(t *testing.T, store storage.TicketStore, opts Options) *testServer {
	t.Helper()

	al := audit.NewLogger(config.AuditConfig{
		Enabled: true, BufferSize: 64, BatchSize: 1, FlushInterval: time.Hour, MaxEntries: 100,
	}, zap.NewNop())
	require.NoError(t, al.Start(context.Background()))
	t.Cleanup(func() { _ = al.Stop(context.Background()) })

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	engine := reporting.NewReportEngine(config.ReportingConfig{
		SchemaVersion:  "1.0",
		Indent:         "  ",
		EnabledFormats: []string{reporting.FormatXML, reporting.FormatPDF},
		PDF:            config.PDFConfig{FontFamily: "Arial", FontSize: 11, Orientation: "P"},
	}, zap.NewNop(), collector, al)

	h := NewReportHandler(engine, store, al, collector, opts, zap.NewNop())
	router := gin.New()
	h.RegisterRoutes(router)

	return &testServer{router: router, audit: al, registry: registry}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestRenderReport(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/reports/render", reportBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="IR-7.xml"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "<ReportNumber>IR-7</ReportNumber>")
	assert.Contains(t, w.Body.String(), "Cash &amp; cheques")
}

func TestRenderReport_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"disabled format", "/api/v1/reports/render?format=xlsx", reportBody, http.StatusBadRequest},
		{"unknown format", "/api/v1/reports/render?format=docx", reportBody, http.StatusBadRequest},
		{"invalid json", "/api/v1/reports/render", `{"event":`, http.StatusBadRequest},
		{"unknown field", "/api/v1/reports/render", `{"colour":"red"}`, http.StatusBadRequest},
		{"missing variant", "/api/v1/reports/render", `{"event":{"entities":[{"kind":"corporate"}]}}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestRenderReport_ModelErrorBody(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/reports/render", `{"event":{"entities":[{"kind":"corporate"}]}}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "entities[0].corporate", resp["field"])
	assert.NotEmpty(t, resp["path"])
}

func TestExportTicketLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/reports/exports?format=pdf", reportBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Ticket    string    `json:"ticket"`
		ExportID  string    `json:"export_id"`
		FileName  string    `json:"file_name"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.Ticket)
	assert.Equal(t, "IR-7.pdf", created.FileName)
	assert.True(t, created.ExpiresAt.After(time.Now()))

	// Status does not redeem the ticket.
	w = s.do(http.MethodGet, "/api/v1/reports/exports/"+created.Ticket+"/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, created.ExportID, status["export_id"])
	assert.Equal(t, reporting.StatusCompleted, status["status"])

	w = s.do(http.MethodGet, "/api/v1/reports/exports/"+created.Ticket, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))

	w = s.do(http.MethodGet, "/api/v1/reports/exports/"+created.Ticket, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/v1/reports/exports/"+created.Ticket+"/status", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, s.audit.Stop(context.Background()))
	assert.Len(t, s.audit.Query(audit.Filters{Action: audit.ActionStored}), 1)
	assert.Len(t, s.audit.Query(audit.Filters{Action: audit.ActionDownloaded}), 1)
}

func TestGetAuditLogs(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 3; i++ {
		w := s.do(http.MethodPost, "/api/v1/reports/render", reportBody)
		require.Equal(t, http.StatusOK, w.Code)
	}
	// BatchSize 1 flushes each entry as soon as the loop receives it.
	require.Eventually(t, func() bool {
		return len(s.audit.Query(audit.Filters{})) == 3
	}, time.Second, 10*time.Millisecond)

	w := s.do(http.MethodGet, "/api/v1/audit/logs?action=export.rendered&limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Logs  []audit.Entry `json:"logs"`
		Count int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "IR-7", resp.Logs[0].ReportNumber)

	for _, query := range []string{"limit=-1", "offset=x", "since=yesterday"} {
		w := s.do(http.MethodGet, "/api/v1/audit/logs?"+query, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

// failingStore simulates an unreachable ticket backend.
type failingStore struct{ err error }

func (f failingStore) Put(context.Context, *storage.StoredExport, time.Duration) (*storage.StoredExport, error) {
	return nil, f.err
}

func (f failingStore) Take(context.Context, string) (*storage.StoredExport, error) {
	return nil, f.err
}

func (f failingStore) Peek(context.Context, string) (*storage.StoredExport, error) {
	return nil, f.err
}

func (f failingStore) Close() error { return nil }

const ticketMetrics = `
# HELP aegisshield_irregular_report_tickets_not_found_total Total number of downloads with an unknown or expired ticket
# TYPE aegisshield_irregular_report_tickets_not_found_total counter
aegisshield_irregular_report_tickets_not_found_total %d
# HELP aegisshield_irregular_report_tickets_redeemed_total Total number of download tickets redeemed
# TYPE aegisshield_irregular_report_tickets_redeemed_total counter
aegisshield_irregular_report_tickets_redeemed_total %d
`

func assertTicketMetrics(t *testing.T, reg prometheus.Gatherer, notFound, redeemed int) {
	t.Helper()
	expected := fmt.Sprintf(ticketMetrics, notFound, redeemed)
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"aegisshield_irregular_report_tickets_not_found_total",
		"aegisshield_irregular_report_tickets_redeemed_total",
	))
}

func TestDownloadExport_TicketMetrics(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/reports/exports", reportBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Ticket string `json:"ticket"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/reports/exports/"+created.Ticket, "").Code)
	require.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/reports/exports/"+created.Ticket, "").Code)

	assertTicketMetrics(t, s.registry, 1, 1)
}

func TestDownloadExport_BackendFailure(t *testing.T) {
	s := newTestServerWith(t, failingStore{err: errors.New("dial tcp: connection refused")}, Options{})

	w := s.do(http.MethodGet, "/api/v1/reports/exports/some-ticket", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = s.do(http.MethodGet, "/api/v1/reports/exports/some-ticket/status", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// A backend outage is neither a redemption nor an unknown ticket.
	assertTicketMetrics(t, s.registry, 0, 0)
}

func TestRenderReport_BodyReadErrors(t *testing.T) {
	t.Run("body over the limit", func(t *testing.T) {
		s := newTestServerWith(t, storage.NewMemoryStore(), Options{MaxBodyBytes: 64})
		w := s.do(http.MethodPost, "/api/v1/reports/render", reportBody)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("broken body stream", func(t *testing.T) {
		s := newTestServer(t)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/render", iotest.ErrReader(errors.New("connection reset")))
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Failed to read request body")
	})
}
