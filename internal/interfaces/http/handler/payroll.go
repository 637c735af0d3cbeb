package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apppayroll "github.com/ledgerbook/backend/internal/application/payroll"
	"github.com/ledgerbook/backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateEmployeeRequest is the employee creation body
type CreateEmployeeRequest struct {
	FirstName   string  `json:"first_name" binding:"required,max=100"`
	LastName    string  `json:"last_name" binding:"required,max=100"`
	Email       *string `json:"email" binding:"omitempty,email,max=120"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=30"`
	Position    *string `json:"position" binding:"omitempty,max=100"`
	HireDate    *string `json:"hire_date"`
	IsActive    *bool   `json:"is_active"`
	UserID      *string `json:"user_id" binding:"omitempty,uuid"`
}

// UpdateEmployeeRequest is a partial employee update; null clears optional fields
type UpdateEmployeeRequest struct {
	FirstName   *string          `json:"first_name" binding:"omitempty,max=100"`
	LastName    *string          `json:"last_name" binding:"omitempty,max=100"`
	Email       Optional[string] `json:"email"`
	PhoneNumber Optional[string] `json:"phone_number"`
	Position    Optional[string] `json:"position"`
	HireDate    Optional[string] `json:"hire_date"`
	IsActive    *bool            `json:"is_active"`
	UserID      Optional[string] `json:"user_id"`
}

// PromoteEmployeeRequest creates a platform account for an employee
type PromoteEmployeeRequest struct {
	Username string `json:"username" binding:"required,min=3,max=80"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Email    string `json:"email" binding:"omitempty,email,max=120"`
	Role     string `json:"role" binding:"omitempty,oneof=user system_admin"`
}

// CreateSalaryRequest records a salary payment
type CreateSalaryRequest struct {
	PaymentDate        string           `json:"payment_date" binding:"required"`
	GrossAmount        *decimal.Decimal `json:"gross_amount" binding:"required"`
	Deductions         *decimal.Decimal `json:"deductions"`
	PaymentPeriodStart *string          `json:"payment_period_start"`
	PaymentPeriodEnd   *string          `json:"payment_period_end"`
	Notes              *string          `json:"notes"`
}

// UpdateSalaryRequest is a partial salary update
type UpdateSalaryRequest struct {
	PaymentDate        *string          `json:"payment_date"`
	GrossAmount        *decimal.Decimal `json:"gross_amount"`
	Deductions         *decimal.Decimal `json:"deductions"`
	PaymentPeriodStart Optional[string] `json:"payment_period_start"`
	PaymentPeriodEnd   Optional[string] `json:"payment_period_end"`
	Notes              Optional[string] `json:"notes"`
}

// PayrollHandler serves employees, their salaries and promotion to users
type PayrollHandler struct {
	BaseHandler
	employeeService *apppayroll.EmployeeService
	salaryService   *apppayroll.SalaryService
}

// NewPayrollHandler creates a new PayrollHandler
func NewPayrollHandler(employeeService *apppayroll.EmployeeService, salaryService *apppayroll.SalaryService, log *zap.Logger) *PayrollHandler {
	return &PayrollHandler{
		BaseHandler:     NewBaseHandler(log),
		employeeService: employeeService,
		salaryService:   salaryService,
	}
}

// RegisterRoutes mounts /companies/:company_id/employees
func (h *PayrollHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/companies/:company_id/employees")
	g.GET("", h.ListEmployees)
	g.POST("", h.CreateEmployee)
	g.GET("/:id", h.GetEmployee)
	g.PUT("/:id", h.UpdateEmployee)
	g.DELETE("/:id", h.DeleteEmployee)
	g.POST("/:id/create-user", h.PromoteEmployee)

	g.GET("/:id/salaries", h.ListSalaries)
	g.POST("/:id/salaries", h.CreateSalary)
	g.GET("/:id/salaries/:salary_id", h.GetSalary)
	g.PUT("/:id/salaries/:salary_id", h.UpdateSalary)
	g.DELETE("/:id/salaries/:salary_id", h.DeleteSalary)
}

// ListEmployees handles GET /companies/:company_id/employees
func (h *PayrollHandler) ListEmployees(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	employees, err := h.employeeService.List(c.Request.Context(), principal, companyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, employees)
}

// CreateEmployee handles POST /companies/:company_id/employees
func (h *PayrollHandler) CreateEmployee(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	var req CreateEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	hireDate, err := parseOptionalDateField("hire_date", req.HireDate)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	var userID *uuid.UUID
	if req.UserID != nil {
		id, ok := h.uuidField(c, "user_id", *req.UserID)
		if !ok {
			return
		}
		userID = &id
	}

	employee, err := h.employeeService.Create(c.Request.Context(), principal, companyID, payroll.EmployeeInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Position:    req.Position,
		HireDate:    hireDate,
		IsActive:    req.IsActive,
		UserID:      userID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, employee)
}

// GetEmployee handles GET /companies/:company_id/employees/:id
func (h *PayrollHandler) GetEmployee(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	employee, err := h.employeeService.Get(c.Request.Context(), principal, companyID, recordID(c, "id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, employee)
}

// UpdateEmployee handles PUT /companies/:company_id/employees/:id
func (h *PayrollHandler) UpdateEmployee(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	var req UpdateEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	update := payroll.EmployeeUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       textPatch(req.Email),
		PhoneNumber: textPatch(req.PhoneNumber),
		Position:    textPatch(req.Position),
		IsActive:    req.IsActive,
	}
	hireDate, clearHire, err := datePatch("hire_date", req.HireDate)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	update.HireDate, update.ClearHireDate = hireDate, clearHire

	if req.UserID.Cleared() {
		update.UnlinkUser = true
	} else if v := req.UserID.Ptr(); v != nil {
		id, ok := h.uuidField(c, "user_id", *v)
		if !ok {
			return
		}
		update.UserID = &id
	}

	employee, err := h.employeeService.Update(c.Request.Context(), principal, companyID, recordID(c, "id"), update)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, employee)
}

// DeleteEmployee handles DELETE /companies/:company_id/employees/:id
func (h *PayrollHandler) DeleteEmployee(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	if err := h.employeeService.Delete(c.Request.Context(), principal, companyID, recordID(c, "id")); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// PromoteEmployee handles POST /companies/:company_id/employees/:id/create-user
func (h *PayrollHandler) PromoteEmployee(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	var req PromoteEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.employeeService.Promote(c.Request.Context(), principal, companyID, recordID(c, "id"), apppayroll.PromoteInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, result)
}

// ListSalaries handles GET /companies/:company_id/employees/:id/salaries
func (h *PayrollHandler) ListSalaries(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	salaries, err := h.salaryService.List(c.Request.Context(), principal, companyID, recordID(c, "id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, salaries)
}

// CreateSalary handles POST /companies/:company_id/employees/:id/salaries
func (h *PayrollHandler) CreateSalary(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	var req CreateSalaryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	input, err := req.toInput()
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	salary, err := h.salaryService.Create(c.Request.Context(), principal, companyID, recordID(c, "id"), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, salary)
}

func (r CreateSalaryRequest) toInput() (payroll.SalaryInput, error) {
	paid, err := parseDateField("payment_date", r.PaymentDate)
	if err != nil {
		return payroll.SalaryInput{}, err
	}
	start, err := parseOptionalDateField("payment_period_start", r.PaymentPeriodStart)
	if err != nil {
		return payroll.SalaryInput{}, err
	}
	end, err := parseOptionalDateField("payment_period_end", r.PaymentPeriodEnd)
	if err != nil {
		return payroll.SalaryInput{}, err
	}
	return payroll.SalaryInput{
		PaymentDate:        paid,
		GrossAmount:        *r.GrossAmount,
		Deductions:         r.Deductions,
		PaymentPeriodStart: start,
		PaymentPeriodEnd:   end,
		Notes:              r.Notes,
	}, nil
}

// GetSalary handles GET /companies/:company_id/employees/:id/salaries/:salary_id
func (h *PayrollHandler) GetSalary(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	salary, err := h.salaryService.Get(c.Request.Context(), principal, companyID, recordID(c, "id"), recordID(c, "salary_id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, salary)
}

// UpdateSalary handles PUT /companies/:company_id/employees/:id/salaries/:salary_id
func (h *PayrollHandler) UpdateSalary(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	var req UpdateSalaryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	update, err := req.toUpdate()
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	salary, err := h.salaryService.Update(c.Request.Context(), principal, companyID, recordID(c, "id"), recordID(c, "salary_id"), update)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, salary)
}

func (r UpdateSalaryRequest) toUpdate() (payroll.SalaryUpdate, error) {
	update := payroll.SalaryUpdate{
		GrossAmount: r.GrossAmount,
		Deductions:  r.Deductions,
		Notes:       textPatch(r.Notes),
	}
	if r.PaymentDate != nil {
		paid, err := parseDateField("payment_date", *r.PaymentDate)
		if err != nil {
			return update, err
		}
		update.PaymentDate = &paid
	}
	start, clearStart, err := datePatch("payment_period_start", r.PaymentPeriodStart)
	if err != nil {
		return update, err
	}
	end, clearEnd, err := datePatch("payment_period_end", r.PaymentPeriodEnd)
	if err != nil {
		return update, err
	}
	update.PaymentPeriodStart, update.ClearPeriodStart = start, clearStart
	update.PaymentPeriodEnd, update.ClearPeriodEnd = end, clearEnd
	return update, nil
}

// DeleteSalary handles DELETE /companies/:company_id/employees/:id/salaries/:salary_id
func (h *PayrollHandler) DeleteSalary(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	if err := h.salaryService.Delete(c.Request.Context(), principal, companyID, recordID(c, "id"), recordID(c, "salary_id")); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
