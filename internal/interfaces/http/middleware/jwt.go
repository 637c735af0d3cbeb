package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/authz"
	"github.com/ledgerbook/backend/internal/domain/identity"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/infrastructure/auth"
	"github.com/ledgerbook/backend/internal/infrastructure/logger"
	"github.com/ledgerbook/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey    = "jwt_claims"
	JWTUserIDKey    = "jwt_user_id"
	JWTUsernameKey  = "jwt_username"
	JWTPrincipalKey = "jwt_principal"
	AuthHeaderKey   = "Authorization"
	BearerPrefix    = "Bearer "
)

// TokenValidator validates access tokens
type TokenValidator interface {
	ValidateAccessToken(token string) (*auth.Claims, error)
}

// RevocationChecker reports whether a token id has been revoked by logout or refresh
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// PrincipalLoader resolves the stored account behind a token subject.
// It returns shared.ErrUnauthorized when the account no longer exists.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, userID uuid.UUID) (*authz.Principal, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// Validator is required for token validation
	Validator TokenValidator
	// Revocations is optional; a lookup failure lets the request through and is logged
	Revocations RevocationChecker
	// Principals is optional; when set the platform role is read from storage
	// instead of the token claims
	Principals PrincipalLoader
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	Logger    *zap.Logger
}

// JWTAuthMiddleware creates JWT authentication middleware
func JWTAuthMiddleware(validator TokenValidator, revocations RevocationChecker, principals PrincipalLoader, log *zap.Logger) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{
		Validator:   validator,
		Revocations: revocations,
		Principals:  principals,
		Logger:      log,
	})
}

// JWTAuthMiddlewareWithConfig creates JWT authentication middleware with custom config.
// On success the claims and the authorization principal are stored on the gin context
// and the user id is added to the request logger context.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, cfg, nil, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
		if tokenString == "" {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing token")
			return
		}

		claims, err := cfg.Validator.ValidateAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, cfg, err, "Token validation failed")
			return
		}

		userID, err := claims.UserUUID()
		if err != nil {
			abortUnauthorized(c, cfg, auth.ErrInvalidClaims, "Invalid subject")
			return
		}

		if cfg.Revocations != nil && claims.ID != "" {
			revoked, err := cfg.Revocations.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				cfg.Logger.Error("Failed to check token blacklist",
					zap.String("jti", claims.ID),
					zap.Error(err))
			} else if revoked {
				abortUnauthorized(c, cfg, auth.ErrTokenBlacklisted, "Token has been revoked")
				return
			}
		}

		principal, ok := resolvePrincipal(c, cfg, claims, userID)
		if !ok {
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTUsernameKey, claims.Username)
		c.Set(JWTPrincipalKey, principal)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		cfg.Logger.Debug("JWT authentication successful",
			zap.String("user_id", claims.UserID),
			zap.String("username", claims.Username),
		)

		c.Next()
	}
}

// resolvePrincipal builds the request principal. With a loader configured the
// account must still exist; otherwise the role claim is used as issued.
func resolvePrincipal(c *gin.Context, cfg JWTMiddlewareConfig, claims *auth.Claims, userID uuid.UUID) (*authz.Principal, bool) {
	if cfg.Principals == nil {
		role := identity.PlatformRole(claims.Role)
		if !role.IsValid() {
			role = identity.PlatformRoleUser
		}
		return &authz.Principal{UserID: userID, Role: role}, true
	}

	principal, err := cfg.Principals.LoadPrincipal(c.Request.Context(), userID)
	switch {
	case err == nil:
		return principal, true
	case errors.Is(err, shared.ErrUnauthorized):
		abortUnauthorized(c, cfg, nil, "Token subject no longer exists")
	default:
		cfg.Logger.Error("Failed to load token subject",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "An internal error occurred", c.GetString(RequestIDKey)))
	}
	return nil, false
}

func abortUnauthorized(c *gin.Context, cfg JWTMiddlewareConfig, err error, message string) {
	cfg.Logger.Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("message", message),
		zap.String("path", c.Request.URL.Path),
	)

	code := dto.ErrCodeUnauthorized
	text := "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code = dto.ErrCodeTokenExpired
		text = "Token has expired"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		code = dto.ErrCodeTokenInvalid
		text = "Token has been revoked"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidTokenType),
		errors.Is(err, auth.ErrInvalidClaims), errors.Is(err, auth.ErrTokenNotYetValid):
		code = dto.ErrCodeTokenInvalid
		text = "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, text, c.GetString(RequestIDKey)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetPrincipal returns the authenticated principal, or nil for anonymous requests
func GetPrincipal(c *gin.Context) *authz.Principal {
	if p, exists := c.Get(JWTPrincipalKey); exists {
		if principal, ok := p.(*authz.Principal); ok {
			return principal
		}
	}
	return nil
}

// GetPrincipalID returns the principal's user id or uuid.Nil
func GetPrincipalID(c *gin.Context) uuid.UUID {
	if p := GetPrincipal(c); p != nil {
		return p.UserID
	}
	return uuid.Nil
}
