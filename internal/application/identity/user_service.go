package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/authz"
	"github.com/ledgerbook/backend/internal/domain/identity"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/domain/tenancy"
	"github.com/ledgerbook/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// UserService handles platform-level account administration
type UserService struct {
	userRepo    identity.UserRepository
	companyRepo tenancy.CompanyRepository
	txScope     TransactionScope
	logger      *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo identity.UserRepository,
	companyRepo tenancy.CompanyRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		txScope:     txScope,
		logger:      logger,
	}
}

func requireAdmin(principal *authz.Principal) error {
	if principal == nil {
		return shared.ErrUnauthorized
	}
	if !authz.RequireSystemAdmin(principal) {
		return shared.ErrForbidden
	}
	return nil
}

func requireSelfOrAdmin(principal *authz.Principal, id uuid.UUID) error {
	if principal == nil {
		return shared.ErrUnauthorized
	}
	if principal.UserID != id && !principal.IsSystemAdmin() {
		return shared.ErrForbidden
	}
	return nil
}

// List returns a page of users
func (s *UserService) List(ctx context.Context, principal *authz.Principal, filter shared.Filter) (*UserListResult, error) {
	if err := requireAdmin(principal); err != nil {
		return nil, err
	}

	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(users, total, max(filter.Page, 1), filter.Limit())
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = toUserDTO(u)
	}
	return &UserListResult{
		Users:      out,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// Create creates an account with an explicit platform role
func (s *UserService) Create(ctx context.Context, principal *authz.Principal, input CreateUserInput) (*UserDTO, error) {
	if err := requireAdmin(principal); err != nil {
		return nil, err
	}

	role := identity.PlatformRoleUser
	if input.Role != "" {
		r, err := identity.ParsePlatformRole(input.Role)
		if err != nil {
			return nil, err
		}
		role = r
	}

	if err := ensureAvailable(ctx, s.userRepo, input.Username, input.Email, nil); err != nil {
		return nil, err
	}
	user, err := identity.NewUser(input.Username, input.Email, input.Password, role)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", role.String()),
		zap.String("created_by", principal.UserID.String()))

	dto := toUserDTO(user)
	return &dto, nil
}

// Get returns an account; users may read themselves, admins anyone
func (s *UserService) Get(ctx context.Context, principal *authz.Principal, id uuid.UUID) (*UserDTO, error) {
	if err := requireSelfOrAdmin(principal, id); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(user)
	return &dto, nil
}

// Update changes account fields. Only a system admin may change the role.
func (s *UserService) Update(ctx context.Context, principal *authz.Principal, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	if err := requireSelfOrAdmin(principal, id); err != nil {
		return nil, err
	}
	if input.Role != nil && !principal.IsSystemAdmin() {
		return nil, shared.NewDomainError(shared.ErrForbidden.Code, "Only a system admin can change roles")
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != user.Username {
		if err := ensureAvailable(ctx, s.userRepo, *input.Username, "", &user.ID); err != nil {
			return nil, err
		}
		if err := user.ChangeUsername(*input.Username); err != nil {
			return nil, err
		}
	}
	if input.Email != nil && *input.Email != user.Email {
		if err := ensureAvailable(ctx, s.userRepo, "", *input.Email, &user.ID); err != nil {
			return nil, err
		}
		if err := user.ChangeEmail(*input.Email); err != nil {
			return nil, err
		}
	}
	if input.Password != nil {
		if err := user.SetPassword(*input.Password); err != nil {
			return nil, err
		}
	}
	if input.Role != nil {
		role, err := identity.ParsePlatformRole(*input.Role)
		if err != nil {
			return nil, err
		}
		if err := user.SetRole(role); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("User updated", zap.String("user_id", user.ID.String()))

	dto := toUserDTO(user)
	return &dto, nil
}

// Delete removes an account. Owners of companies must transfer or delete them first.
// Memberships are dropped and employee links cleared in the same transaction.
func (s *UserService) Delete(ctx context.Context, principal *authz.Principal, id uuid.UUID) error {
	if err := requireAdmin(principal); err != nil {
		return err
	}
	if principal.UserID == id {
		return shared.NewConflictError("You cannot delete your own account")
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}
	owned, err := s.companyRepo.CountOwnedBy(ctx, id)
	if err != nil {
		return err
	}
	if owned > 0 {
		return shared.NewConflictError("User still owns companies and cannot be deleted")
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.EmployeeRepo().UnlinkUser(ctx, id); err != nil {
			return err
		}
		if err := repos.MembershipRepo().DeleteByUser(ctx, id); err != nil {
			return err
		}
		return repos.UserRepo().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	logger.Enrich(ctx, s.logger).Info("User deleted",
		zap.String("user_id", id.String()),
		zap.String("deleted_by", principal.UserID.String()))
	return nil
}
