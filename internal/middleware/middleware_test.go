package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aegisshield/irregular-report/internal/auth"
	"github.com/aegisshield/irregular-report/internal/config"
	"github.com/aegisshield/irregular-report/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(authService *auth.Service) *gin.Engine {
	router := gin.New()
	router.Use(Logging(zap.NewNop()))
	router.Use(Auth(authService))
	router.GET("/whoami", func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"user": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": claims.UserID})
	})
	return router
}

func TestAuth(t *testing.T) {
	service := auth.NewService(config.AuthConfig{Enabled: true, JWTSecret: "secret", Issuer: "aegisshield", TokenTTL: time.Hour})
	router := newRouter(service)

	token, err := service.GenerateToken("officer-1", []string{auth.RoleCompliance})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"user":"officer-1"}`, w.Body.String())
			}
		})
	}
}

func TestAuth_Disabled(t *testing.T) {
	router := newRouter(auth.NewService(config.AuthConfig{Enabled: false}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	router := gin.New()
	router.Use(Metrics(collector))
	router.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	count, err := testutil.GatherAndCount(reg, "aegisshield_irregular_report_http_requests_total")
	require.NoError(t, err)
	// one series for the route template, one for unmatched paths
	assert.Equal(t, 2, count)
}
