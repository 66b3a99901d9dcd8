package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusObserve(t *testing.T) {
	p := NewPrometheus()
	ctx := context.Background()

	p.Observe(ctx, "project.create", true, 10*time.Millisecond)
	p.Observe(ctx, "project.create", false, 5*time.Millisecond)
	p.Observe(ctx, "project.create", true, time.Millisecond)
	p.Observe(ctx, "", true, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.operations.WithLabelValues("project.create", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.operations.WithLabelValues("project.create", "error")))
}

func TestPrometheusHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := NewPrometheus()

	r := gin.New()
	r.Use(p.Middleware())
	r.GET("/things/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(p.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/7", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, `records_http_requests_total{method="GET",route="/things/:id",status="200"} 1`))
}
