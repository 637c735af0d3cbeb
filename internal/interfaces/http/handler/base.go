// Package handler adapts HTTP requests to the application services.
package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/authz"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/ledgerbook/backend/internal/infrastructure/logger"
	"github.com/ledgerbook/backend/internal/interfaces/http/dto"
	"github.com/ledgerbook/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a BaseHandler; a nil logger discards output
func NewBaseHandler(log *zap.Logger) BaseHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return BaseHandler{logger: log}
}

func (h *BaseHandler) log(c *gin.Context) *zap.Logger {
	base := h.logger
	if base == nil {
		base = zap.NewNop()
	}
	return logger.Enrich(c.Request.Context(), base)
}

func getRequestID(c *gin.Context) string {
	return c.GetString(middleware.RequestIDKey)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		getRequestID(c),
		details,
	))
}

// HandleDomainError converts errors to HTTP responses. Domain errors keep
// their message; anything else is a 500 with a generic message and the cause
// is logged.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		status := dto.GetHTTPStatus(code)
		if status >= http.StatusInternalServerError {
			h.log(c).Error("Request failed", zap.String("code", domainErr.Code), zap.Error(err))
			if code == dto.ErrCodeInternal {
				h.Error(c, status, code, "An unexpected error occurred")
				return
			}
		}
		h.Error(c, status, code, domainErr.Message)
		return
	}

	h.log(c).Error("Unhandled error", zap.Error(err))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// bindJSON decodes the body strictly, rejecting unknown fields, then runs
// the validator. It writes the 400 itself and reports false on failure.
func (h *BaseHandler) bindJSON(c *gin.Context, dst any) bool {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Unable to read request body")
		return false
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, decodeMessage(err))
		return false
	}
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		if details := middleware.ValidationDetails(err); len(details) > 0 {
			h.ValidationError(c, details)
			return false
		}
		h.BadRequest(c, err.Error())
		return false
	}
	return true
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF):
		return "Request body is required"
	case errors.As(err, &typeErr):
		return fmt.Sprintf("Field %s has the wrong type", typeErr.Field)
	case errors.As(err, &syntaxErr):
		return "Malformed JSON"
	default:
		// json reports unknown fields as: json: unknown field "x"
		return "Invalid request body: " + err.Error()
	}
}

// principal returns the authenticated principal or writes a 401
func (h *BaseHandler) principal(c *gin.Context) (*authz.Principal, bool) {
	p := middleware.GetPrincipal(c)
	if p == nil {
		h.Unauthorized(c, "Authentication required")
		return nil, false
	}
	return p, true
}

// uuidParam parses a path parameter; a malformed id cannot name any row and is a 404
func (h *BaseHandler) uuidParam(c *gin.Context, name, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, resource+" not found")
		return uuid.Nil, false
	}
	return id, true
}

// scope resolves the principal and the company of a tenant-scoped route
func (h *BaseHandler) scope(c *gin.Context) (*authz.Principal, uuid.UUID, bool) {
	p, ok := h.principal(c)
	if !ok {
		return nil, uuid.Nil, false
	}
	companyID, ok := h.uuidParam(c, middleware.CompanyIDParam, "Company")
	if !ok {
		return nil, uuid.Nil, false
	}
	ctx := logger.WithCompanyID(c.Request.Context(), companyID.String())
	c.Request = c.Request.WithContext(ctx)
	return p, companyID, true
}

// optionalPeriod reads start_date/end_date; both may be omitted
func (h *BaseHandler) optionalPeriod(c *gin.Context) (*shared.DateRange, bool) {
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return nil, false
	}
	r, err := shared.NewOptionalDateRange(q.StartDate, q.EndDate)
	if err != nil {
		h.HandleDomainError(c, err)
		return nil, false
	}
	return r, true
}

// requiredPeriod reads a mandatory start_date/end_date pair
func (h *BaseHandler) requiredPeriod(c *gin.Context) (shared.DateRange, bool) {
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return shared.DateRange{}, false
	}
	r, err := shared.NewDateRange(q.StartDate, q.EndDate)
	if err != nil {
		h.HandleDomainError(c, err)
		return shared.DateRange{}, false
	}
	return r, true
}

// uuidField parses an id carried in the body; a malformed value is a 400
func (h *BaseHandler) uuidField(c *gin.Context, field, value string) (uuid.UUID, bool) {
	id, err := uuid.Parse(value)
	if err != nil {
		h.ValidationError(c, []dto.ValidationDetail{{Field: field, Message: "Invalid UUID format"}})
		return uuid.Nil, false
	}
	return id, true
}

// recordID parses the id of a record nested under a company. A malformed id
// becomes uuid.Nil so the service still authorizes first and then reports 404.
func recordID(c *gin.Context, name string) uuid.UUID {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil
	}
	return id
}
