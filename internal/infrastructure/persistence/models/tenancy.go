package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/tenancy"
)

// CompanyModel is the persistence model for the Company aggregate.
type CompanyModel struct {
	BaseModel
	Name    string    `gorm:"type:varchar(150);not null;uniqueIndex"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company.
func (m *CompanyModel) ToDomain() *tenancy.Company {
	return &tenancy.Company{
		BaseEntity: m.toEntity(),
		Name:       m.Name,
		OwnerID:    m.OwnerID,
	}
}

// CompanyModelFromDomain creates a persistence model from a domain Company.
func CompanyModelFromDomain(c *tenancy.Company) *CompanyModel {
	return &CompanyModel{
		BaseModel: baseFromEntity(c.BaseEntity),
		Name:      c.Name,
		OwnerID:   c.OwnerID,
	}
}

// MembershipModel maps a (user, company) pair to a role.
type MembershipModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Role      string    `gorm:"column:role_in_company;type:varchar(20);not null"`
	JoinedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MembershipModel) TableName() string {
	return "company_memberships"
}

// ToDomain converts the persistence model to a domain Membership.
func (m *MembershipModel) ToDomain() *tenancy.Membership {
	return &tenancy.Membership{
		UserID:    m.UserID,
		CompanyID: m.CompanyID,
		Role:      tenancy.CompanyRole(m.Role),
		JoinedAt:  m.JoinedAt,
	}
}

// MembershipModelFromDomain creates a persistence model from a domain Membership.
func MembershipModelFromDomain(m *tenancy.Membership) *MembershipModel {
	return &MembershipModel{
		UserID:    m.UserID,
		CompanyID: m.CompanyID,
		Role:      m.Role.String(),
		JoinedAt:  m.JoinedAt,
	}
}

// MemberDetailRow is the result row of the membership/user join
type MemberDetailRow struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	Role      string `gorm:"column:role_in_company"`
	JoinedAt  time.Time
	Username  string
	Email     string
}

// ToDomain converts the join row to a domain MemberDetail
func (r *MemberDetailRow) ToDomain() *tenancy.MemberDetail {
	return &tenancy.MemberDetail{
		Membership: tenancy.Membership{
			UserID:    r.UserID,
			CompanyID: r.CompanyID,
			Role:      tenancy.CompanyRole(r.Role),
			JoinedAt:  r.JoinedAt,
		},
		Username: r.Username,
		Email:    r.Email,
	}
}
