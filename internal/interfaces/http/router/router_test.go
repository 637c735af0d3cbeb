package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbook/backend/internal/interfaces/http/dto"
	"github.com/ledgerbook/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type pingRoutes struct{}

func (pingRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, dto.NewSuccessResponse("pong")) })
}

type secretRoutes struct{}

func (secretRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/secret", func(c *gin.Context) { c.JSON(http.StatusOK, dto.NewSuccessResponse("hidden")) })
}

func denyAll(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
}

func newEngine(opts ...RouterOption) *gin.Engine {
	engine := gin.New()
	NewRouter(engine, opts...).
		RegisterPublic(pingRoutes{}).
		Register(secretRoutes{}).
		Setup()
	return engine
}

func get(engine *gin.Engine, path string) (*httptest.ResponseRecorder, dto.Response) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(w, req)
	var body dto.Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestRouter_PublicAndProtectedGroups(t *testing.T) {
	engine := newEngine(WithAuth(denyAll))

	w, body := get(engine, "/api/v1/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, body = get(engine, "/api/v1/secret")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrCodeUnauthorized, body.Error.Code)
}

func TestRouter_APIVersion(t *testing.T) {
	engine := newEngine(WithAPIVersion("v2"))

	w, _ := get(engine, "/api/v2/ping")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = get(engine, "/api/v1/ping")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_NoRouteEnvelope(t *testing.T) {
	engine := newEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	req.Header.Set("X-Request-ID", "req-123")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrCodeNotFound, body.Error.Code)
	assert.Equal(t, "req-123", body.Error.RequestID)
}

func TestRouter_Health(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		engine := newEngine(WithHealthCheck("database", func(context.Context) error { return nil }))

		w, body := get(engine, "/health")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, body.Success)
		data := body.Data.(map[string]any)
		assert.Equal(t, "ok", data["status"])
		assert.Equal(t, map[string]any{"database": "ok"}, data["checks"])
	})

	t.Run("degraded", func(t *testing.T) {
		engine := newEngine(
			WithHealthCheck("database", func(context.Context) error { return nil }),
			WithHealthCheck("redis", func(context.Context) error { return errors.New("dial tcp: refused") }),
		)

		w, body := get(engine, "/health")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.False(t, body.Success)
		require.NotNil(t, body.Error)
		assert.Equal(t, dto.ErrCodeServiceUnavailable, body.Error.Code)
		data := body.Data.(map[string]any)
		assert.Equal(t, "degraded", data["status"])
		assert.Equal(t, map[string]any{"database": "ok", "redis": "unavailable"}, data["checks"])
	})
}

func TestRouter_RateLimitAppliesToAPIOnly(t *testing.T) {
	engine := newEngine(WithRateLimiter(middleware.NewRateLimiter(1, time.Minute)))

	w, _ := get(engine, "/api/v1/ping")
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := get(engine, "/api/v1/ping")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrCodeRateLimited, body.Error.Code)

	w, _ = get(engine, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}
