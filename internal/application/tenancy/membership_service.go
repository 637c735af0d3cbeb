package tenancy

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

// MembershipService manages who belongs to a company and with which role
type MembershipService struct {
	membershipRepo tenancy.MembershipRepository
	userRepo       identity.UserRepository
	authorizer     *Authorizer
	logger         *zap.Logger
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(
	membershipRepo tenancy.MembershipRepository,
	userRepo identity.UserRepository,
	authorizer *Authorizer,
	logger *zap.Logger,
) *MembershipService {
	return &MembershipService{
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		authorizer:     authorizer,
		logger:         logger,
	}
}

// List returns the members of a company ordered by username
func (s *MembershipService) List(ctx context.Context, principal *authz.Principal, companyID uuid.UUID) ([]MemberResponse, error) {
	if _, err := s.authorizer.Authorize(ctx, principal, companyID, authz.ReadPolicy, "membership.list"); err != nil {
		return nil, err
	}

	members, err := s.membershipRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]MemberResponse, len(members))
	for i, m := range members {
		out[i] = ToMemberResponse(m)
	}
	return out, nil
}

// AddOrUpdate grants a user a role in the company. created reports whether a new
// membership was inserted rather than an existing role changed.
func (s *MembershipService) AddOrUpdate(ctx context.Context, principal *authz.Principal, companyID uuid.UUID, input AddMemberInput) (resp *MembershipResponse, created bool, err error) {
	access, err := s.authorizer.Authorize(ctx, principal, companyID, authz.AdminPolicy, "membership.add")
	if err != nil {
		return nil, false, err
	}

	role, err := tenancy.ParseCompanyRole(input.RoleInCompany)
	if err != nil {
		return nil, false, err
	}
	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		return nil, false, err
	}
	if access.Company.IsOwnedBy(input.UserID) {
		return nil, false, shared.NewConflictError("The company owner already has full access and cannot be given a membership")
	}

	membership, err := s.membershipRepo.Find(ctx, input.UserID, companyID)
	switch {
	case err == nil:
		if err := membership.ChangeRole(role); err != nil {
			return nil, false, err
		}
	case shared.IsNotFound(err):
		membership, err = tenancy.NewMembership(input.UserID, companyID, role)
		if err != nil {
			return nil, false, err
		}
		created = true
	default:
		return nil, false, err
	}

	if err := s.membershipRepo.Save(ctx, membership); err != nil {
		return nil, false, err
	}

	logger.Enrich(ctx, s.logger).Info("Membership saved",
		zap.String("company_id", companyID.String()),
		zap.String("user_id", input.UserID.String()),
		zap.String("role", role.String()),
		zap.Bool("created", created),
	)

	out := ToMembershipResponse(membership)
	return &out, created, nil
}

// Remove revokes a user's membership. The owner cannot be removed.
func (s *MembershipService) Remove(ctx context.Context, principal *authz.Principal, companyID, userID uuid.UUID) error {
	access, err := s.authorizer.Authorize(ctx, principal, companyID, authz.AdminPolicy, "membership.remove")
	if err != nil {
		return err
	}
	if access.Company.IsOwnedBy(userID) {
		return shared.NewDomainError(shared.ErrForbidden.Code, "The company owner cannot be removed")
	}

	if err := s.membershipRepo.Delete(ctx, userID, companyID); err != nil {
		return err
	}

	logger.Enrich(ctx, s.logger).Info("Membership removed",
		zap.String("company_id", companyID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}
