package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/authz"
	"github.com/ledgerbook/backend/internal/domain/identity"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/infrastructure/auth"
	"github.com/ledgerbook/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "invalid username or password")

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Register creates a regular platform account
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*UserDTO, error) {
	if err := ensureAvailable(ctx, s.userRepo, input.Username, input.Email, nil); err != nil {
		return nil, err
	}

	user, err := identity.NewUser(input.Username, input.Email, input.Password, identity.PlatformRoleUser)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	dto := toUserDTO(user)
	return &dto, nil
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	log := logger.Enrich(ctx, s.logger)

	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if shared.IsNotFound(err) {
			log.Warn("Login for unknown user", zap.String("username", input.Username), zap.String("ip", input.IP))
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(input.Password) {
		log.Warn("Invalid password attempt", zap.String("username", input.Username), zap.String("ip", input.IP))
		return nil, errInvalidCredentials
	}

	pair, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	log.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  toUserDTO(user),
	}, nil
}

// RefreshToken rotates a refresh token. The presented token is revoked.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*LoginResult, error) {
	log := logger.Enrich(ctx, s.logger)

	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		log.Warn("Refresh token validation failed", zap.Error(err))
		return nil, tokenError(err)
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		log.Warn("Revoked refresh token presented", zap.String("user_id", claims.UserID))
		return nil, tokenError(auth.ErrTokenBlacklisted)
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return nil, tokenError(auth.ErrInvalidClaims)
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, tokenError(auth.ErrInvalidToken)
		}
		return nil, err
	}

	if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		return nil, err
	}

	pair, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	log.Info("Token refreshed", zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  toUserDTO(user),
	}, nil
}

// Logout revokes the current access token until it expires
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.AccessJTI != "" {
		if err := s.blacklist.Revoke(ctx, input.AccessJTI, input.AccessTTL); err != nil {
			return err
		}
	}
	if input.RefreshToken != "" {
		if claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken); err == nil {
			if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
				return err
			}
		}
	}

	logger.Enrich(ctx, s.logger).Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// IsRevoked reports whether a token id has been revoked
func (s *AuthService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.blacklist.IsRevoked(ctx, jti)
}

// LoadPrincipal resolves the stored account behind a verified token subject.
// A deleted account is UNAUTHORIZED; the platform role is always the stored one.
func (s *AuthService) LoadPrincipal(ctx context.Context, userID uuid.UUID) (*authz.Principal, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}
	return &authz.Principal{UserID: user.ID, Role: user.Role}, nil
}

// GetCurrentUser retrieves the caller's account
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(user)
	return &dto, nil
}

// ChangePassword changes a user's password after checking the old one
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}

	if !user.VerifyPassword(input.OldPassword) {
		logger.Enrich(ctx, s.logger).Warn("Password change with wrong old password",
			zap.String("user_id", input.UserID.String()))
		return shared.NewDomainError(errInvalidCredentials.Code, "Incorrect old password")
	}
	if err := user.SetPassword(input.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	logger.Enrich(ctx, s.logger).Info("User password changed", zap.String("user_id", input.UserID.String()))
	return nil
}

func (s *AuthService) issue(user *identity.User) (*auth.TokenPair, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.Subject{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role.String(),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, err
	}
	return pair, nil
}

// tokenError maps token validation failures to domain errors
func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid token")
	}
}

// ensureAvailable fails with a conflict when username or email belong to another account
func ensureAvailable(ctx context.Context, repo identity.UserRepository, username, email string, excludeID *uuid.UUID) error {
	if username != "" {
		taken, err := repo.ExistsByUsername(ctx, username, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewConflictError("User with username '" + username + "' already exists")
		}
	}
	if email != "" {
		taken, err := repo.ExistsByEmail(ctx, email, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewConflictError("User with email '" + email + "' already exists")
		}
	}
	return nil
}
