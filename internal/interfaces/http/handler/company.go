package handler

import (
	"github.com/gin-gonic/gin"
	apptenancy "github.com/ledgerbook/backend/internal/application/tenancy"
	"go.uber.org/zap"
)

// CompanyRequest creates or renames a company
type CompanyRequest struct {
	Name string `json:"name" binding:"required,min=1,max=150"`
}

// AddMemberRequest grants a user a role in the company
type AddMemberRequest struct {
	UserID        string `json:"user_id" binding:"required,uuid"`
	RoleInCompany string `json:"role_in_company" binding:"required,oneof=admin editor viewer"`
}

// CompanyHandler serves companies and their memberships
type CompanyHandler struct {
	BaseHandler
	companyService    *apptenancy.CompanyService
	membershipService *apptenancy.MembershipService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *apptenancy.CompanyService, membershipService *apptenancy.MembershipService, log *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:       NewBaseHandler(log),
		companyService:    companyService,
		membershipService: membershipService,
	}
}

// RegisterRoutes mounts /companies and /companies/:company_id/users
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/companies", h.Create)
	rg.GET("/companies", h.List)

	g := rg.Group("/companies/:company_id")
	g.GET("", h.Get)
	g.PUT("", h.Rename)
	g.DELETE("", h.Delete)
	g.GET("/users", h.ListMembers)
	g.POST("/users", h.AddMember)
	g.DELETE("/users/:user_id", h.RemoveMember)
}

// Create handles POST /companies
func (h *CompanyHandler) Create(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req CompanyRequest
	if !h.bindJSON(c, &req) {
		return
	}
	company, err := h.companyService.Create(c.Request.Context(), principal, req.Name)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, company)
}

// List handles GET /companies
func (h *CompanyHandler) List(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	companies, err := h.companyService.List(c.Request.Context(), principal)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, companies)
}

// Get handles GET /companies/:company_id
func (h *CompanyHandler) Get(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	company, err := h.companyService.Get(c.Request.Context(), principal, companyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, company)
}

// Rename handles PUT /companies/:company_id
func (h *CompanyHandler) Rename(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	var req CompanyRequest
	if !h.bindJSON(c, &req) {
		return
	}
	company, err := h.companyService.Rename(c.Request.Context(), principal, companyID, req.Name)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, company)
}

// Delete handles DELETE /companies/:company_id
func (h *CompanyHandler) Delete(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	if err := h.companyService.Delete(c.Request.Context(), principal, companyID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// ListMembers handles GET /companies/:company_id/users
func (h *CompanyHandler) ListMembers(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	members, err := h.membershipService.List(c.Request.Context(), principal, companyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, members)
}

// AddMember handles POST /companies/:company_id/users. A new membership is
// 201; changing the role of an existing one is 200.
func (h *CompanyHandler) AddMember(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	var req AddMemberRequest
	if !h.bindJSON(c, &req) {
		return
	}
	userID, ok := h.uuidField(c, "user_id", req.UserID)
	if !ok {
		return
	}

	membership, created, err := h.membershipService.AddOrUpdate(c.Request.Context(), principal, companyID, apptenancy.AddMemberInput{
		UserID:        userID,
		RoleInCompany: req.RoleInCompany,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	if created {
		h.Created(c, membership)
		return
	}
	h.Success(c, membership)
}

// RemoveMember handles DELETE /companies/:company_id/users/:user_id
func (h *CompanyHandler) RemoveMember(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	userID := recordID(c, "user_id")
	if err := h.membershipService.Remove(c.Request.Context(), principal, companyID, userID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
