package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/authz"
	"github.com/ledgerbook/backend/internal/domain/identity"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/infrastructure/auth"
	"github.com/ledgerbook/backend/internal/infrastructure/config"
	"github.com/ledgerbook/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "ledgerbook-test",
	})
}

type stubRevocations struct {
	revoked map[string]bool
	err     error
}

func (s stubRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	return s.revoked[jti], s.err
}

func protectedRouter(mw gin.HandlerFunc, seen **gin.Context) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), mw)
	router.GET("/test", func(c *gin.Context) {
		if seen != nil {
			*seen = c.Copy()
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func doGet(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestJWTAuthMiddleware_ValidTokenSetsPrincipal(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()
	pair, err := svc.GenerateTokenPair(auth.Subject{UserID: userID, Username: "alice", Role: "system_admin"})
	require.NoError(t, err)

	var seen *gin.Context
	router := protectedRouter(JWTAuthMiddleware(svc, nil, nil, nil), &seen)
	rec := doGet(router, "Bearer "+pair.AccessToken)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	principal := GetPrincipal(seen)
	require.NotNil(t, principal)
	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, identity.PlatformRoleSystemAdmin, principal.Role)
	assert.Equal(t, userID.String(), GetJWTUserID(seen))
	assert.Equal(t, "alice", GetJWTClaims(seen).Username)
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(auth.Subject{UserID: uuid.New(), Username: "bob", Role: "user"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", dto.ErrCodeUnauthorized},
		{"wrong scheme", "Basic abc", dto.ErrCodeTokenInvalid},
		{"empty token", "Bearer ", dto.ErrCodeTokenInvalid},
		{"garbage token", "Bearer not-a-jwt", dto.ErrCodeTokenInvalid},
		{"refresh token used as access", "Bearer " + pair.RefreshToken, dto.ErrCodeTokenInvalid},
	}

	router := protectedRouter(JWTAuthMiddleware(svc, nil, nil, nil), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(router, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			code := errorCode(t, rec)
			if tt.header == "" {
				assert.Equal(t, tt.code, code)
			} else {
				assert.NotEmpty(t, code)
			}
		})
	}
}

func TestJWTAuthMiddleware_RevokedToken(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(auth.Subject{UserID: uuid.New(), Username: "carol", Role: "user"})
	require.NoError(t, err)
	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	router := protectedRouter(JWTAuthMiddleware(svc, stubRevocations{revoked: map[string]bool{claims.ID: true}}, nil, nil), nil)
	rec := doGet(router, "Bearer "+pair.AccessToken)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrCodeTokenInvalid, errorCode(t, rec))
}

func TestJWTAuthMiddleware_BlacklistFailureFailsOpen(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(auth.Subject{UserID: uuid.New(), Username: "dave", Role: "user"})
	require.NoError(t, err)

	router := protectedRouter(JWTAuthMiddleware(svc, stubRevocations{err: errors.New("redis down")}, nil, nil), nil)
	rec := doGet(router, "Bearer "+pair.AccessToken)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	router := protectedRouter(JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{
		Validator: newTestJWTService(),
		SkipPaths: []string{"/test"},
	}), nil)

	assert.Equal(t, http.StatusOK, doGet(router, "").Code)
}

func TestGetPrincipal_Anonymous(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetPrincipal(c))
	assert.Equal(t, uuid.Nil, GetPrincipalID(c))
}

type stubPrincipals struct {
	principal *authz.Principal
	err       error
}

func (s stubPrincipals) LoadPrincipal(_ context.Context, _ uuid.UUID) (*authz.Principal, error) {
	return s.principal, s.err
}

func TestJWTAuthMiddleware_StoredRoleWinsOverClaim(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()
	pair, err := svc.GenerateTokenPair(auth.Subject{UserID: userID, Username: "erin", Role: "system_admin"})
	require.NoError(t, err)

	loader := stubPrincipals{principal: &authz.Principal{UserID: userID, Role: identity.PlatformRoleUser}}
	var seen *gin.Context
	router := protectedRouter(JWTAuthMiddleware(svc, nil, loader, nil), &seen)
	rec := doGet(router, "Bearer "+pair.AccessToken)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, identity.PlatformRoleUser, GetPrincipal(seen).Role)
}

func TestJWTAuthMiddleware_PrincipalLookupFailures(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(auth.Subject{UserID: uuid.New(), Username: "frank", Role: "user"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"deleted account", shared.ErrUnauthorized, http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := protectedRouter(JWTAuthMiddleware(svc, nil, stubPrincipals{err: tt.err}, nil), nil)
			rec := doGet(router, "Bearer "+pair.AccessToken)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}
}
