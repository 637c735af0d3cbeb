package tenancy

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/tenancy"
)

// CompanyResponse is the company representation returned to callers
type CompanyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	MyRole    string    `json:"my_role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCompanyResponse converts a domain company; role may be empty
func ToCompanyResponse(c *tenancy.Company, role tenancy.CompanyRole) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		OwnerID:   c.OwnerID,
		MyRole:    string(role),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// MemberResponse is a company member with account details
type MemberResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	CompanyID     uuid.UUID `json:"company_id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	RoleInCompany string    `json:"role_in_company"`
	JoinedAt      time.Time `json:"joined_at"`
}

// ToMemberResponse converts a domain member detail
func ToMemberResponse(m *tenancy.MemberDetail) MemberResponse {
	return MemberResponse{
		UserID:        m.UserID,
		CompanyID:     m.CompanyID,
		Username:      m.Username,
		Email:         m.Email,
		RoleInCompany: string(m.Role),
		JoinedAt:      m.JoinedAt,
	}
}

// MembershipResponse is the result of adding or updating a member
type MembershipResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	CompanyID     uuid.UUID `json:"company_id"`
	RoleInCompany string    `json:"role_in_company"`
	JoinedAt      time.Time `json:"joined_at"`
}

// ToMembershipResponse converts a domain membership
func ToMembershipResponse(m *tenancy.Membership) MembershipResponse {
	return MembershipResponse{
		UserID:        m.UserID,
		CompanyID:     m.CompanyID,
		RoleInCompany: string(m.Role),
		JoinedAt:      m.JoinedAt,
	}
}

// AddMemberInput adds a user to a company or changes its role
type AddMemberInput struct {
	UserID        uuid.UUID
	RoleInCompany string
}
