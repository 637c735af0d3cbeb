package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appreport "github.com/ledgerbook/backend/internal/application/report"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ExportHandler streams CSV exports and archives them to object storage
type ExportHandler struct {
	BaseHandler
	service *appreport.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(service *appreport.ExportService, log *zap.Logger) *ExportHandler {
	return &ExportHandler{BaseHandler: NewBaseHandler(log), service: service}
}

// RegisterRoutes mounts /companies/:company_id/export
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/companies/:company_id/export")
	g.GET("/:resource", h.Download)
	g.POST("/:resource/archive", h.Archive)
}

func (h *ExportHandler) request(c *gin.Context) (appreport.ExportResource, *shared.DateRange, bool) {
	resource, err := appreport.ParseExportResource(c.Param("resource"))
	if err != nil {
		h.HandleDomainError(c, err)
		return "", nil, false
	}
	if resource == appreport.ExportInventory {
		return resource, nil, true
	}
	period, ok := h.optionalPeriod(c)
	if !ok {
		return "", nil, false
	}
	return resource, period, true
}

// Download handles GET /companies/:company_id/export/:resource
func (h *ExportHandler) Download(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	resource, period, ok := h.request(c)
	if !ok {
		return
	}
	file, err := h.service.Export(c.Request.Context(), principal, companyID, resource, period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+file.Filename)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Archive handles POST /companies/:company_id/export/:resource/archive
func (h *ExportHandler) Archive(c *gin.Context) {
	principal, companyID, ok := h.scope(c)
	if !ok {
		return
	}
	resource, period, ok := h.request(c)
	if !ok {
		return
	}
	archive, err := h.service.Archive(c.Request.Context(), principal, companyID, resource, period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, archive)
}
