// internal/handlers/analytics.go
package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/packscan/packscan-backend/internal/i18n"
	"github.com/packscan/packscan-backend/internal/inspection"
	"github.com/packscan/packscan-backend/internal/models"
	"github.com/packscan/packscan-backend/internal/services"
	"github.com/packscan/packscan-backend/internal/utils"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
	exportService    *services.ExportService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService, exportService *services.ExportService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		exportService:    exportService,
	}
}

// GET /v1/analytics?status=&limit=
func (h *AnalyticsHandler) GetReport(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	lang := utils.GetLangFromContext(c)

	var opts inspection.ReportOptions
	if status := c.Query("status"); status != "" {
		reviewStatus := models.ReviewStatus(status)
		if !reviewStatus.Valid() {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "status"), nil)
			return
		}
		opts.Status = &reviewStatus
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "limit"), nil)
			return
		}
		opts.Limit = n
	}

	report, err := h.analyticsService.Report(c.Request.Context(), actor, opts)
	if err != nil {
		utils.DomainErrorResponse(c, err, "list")
		return
	}

	utils.SuccessResponse(c, report)
}

// GET /v1/export.csv
func (h *AnalyticsHandler) ExportCSV(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	rows, err := h.exportService.Rows(c.Request.Context(), actor)
	if err != nil {
		utils.DomainErrorResponse(c, err, "list")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+services.FileName(time.Now())+`"`)
	if err := services.EncodeRows(c.Writer, rows); err != nil {
		_ = c.Error(err)
	}
}
