package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func attrs(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestTracingWithConfig_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{Enabled: false}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSpanAttributes(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	companyID := uuid.New()
	router := gin.New()
	router.Use(RequestID(), otelgin.Middleware("ledger-test", otelgin.WithTracerProvider(tp)))
	router.GET("/companies/:company_id/boom", SpanAttributes(), func(c *gin.Context) {
		c.Set(JWTUserIDKey, "u-1")
		c.Status(http.StatusInternalServerError)
	})
	router.GET("/companies/:company_id/ok", SpanAttributes(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/companies/"+companyID.String()+"/boom", nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/companies/not-a-uuid/ok", nil))

	spans := sr.Ended()
	require.Len(t, spans, 2)

	first := attrs(spans[0])
	assert.Equal(t, companyID.String(), first["company_id"].AsString())
	assert.NotEmpty(t, first["request_id"].AsString())
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	second := attrs(spans[1])
	_, hasCompany := second["company_id"]
	assert.False(t, hasCompany)
}
