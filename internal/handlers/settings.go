// internal/handlers/settings.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/packscan/packscan-backend/internal/i18n"
	"github.com/packscan/packscan-backend/internal/services"
	"github.com/packscan/packscan-backend/internal/utils"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
	auditService    *services.AuditService
}

func NewSettingsHandler(settingsService *services.SettingsService, auditService *services.AuditService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		auditService:    auditService,
	}
}

// GET /v1/admin/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	view, err := h.settingsService.View(c.Request.Context())
	if err != nil {
		utils.DomainErrorResponse(c, err, "settings")
		return
	}

	utils.SuccessResponse(c, view)
}

// PUT /v1/admin/settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req services.UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.settingsService.Update(c.Request.Context(), actor, &req)
	if err != nil {
		utils.DomainErrorResponse(c, err, "settings")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(utils.GetLangFromContext(c), i18n.KeySettingsUpdated),
		"settings": view,
	})
}

// GET /v1/admin/audit-logs?page=&limit=&action=&resource_type=&user_id=
func (h *SettingsHandler) GetAuditLogs(c *gin.Context) {
	params := utils.GetPageParams(c)

	filters := services.AuditFilters{
		Action:       c.Query("action"),
		ResourceType: c.Query("resource_type"),
	}
	if userID := c.Query("user_id"); userID != "" {
		parsed, err := uuid.Parse(userID)
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationInvalid, "user_id"), nil)
			return
		}
		filters.UserID = &parsed
	}

	logs, total, err := h.auditService.List(c.Request.Context(), filters, params)
	if err != nil {
		utils.DomainErrorResponse(c, err, "audit")
		return
	}

	utils.PaginatedResponse(c, logs, utils.NewPage(params, total))
}
