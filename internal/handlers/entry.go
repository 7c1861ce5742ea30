// internal/handlers/entry.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/packscan/packscan-backend/internal/i18n"
	"github.com/packscan/packscan-backend/internal/services"
	"github.com/packscan/packscan-backend/internal/utils"
)

type EntryHandler struct {
	entryService *services.EntryService
}

func NewEntryHandler(entryService *services.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// POST /v1/lists/:id/entries
func (h *EntryHandler) ProcessPhotos(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	listID, ok := parseIDParam(c, "list")
	if !ok {
		return
	}

	var req services.ProcessRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.entryService.Process(c.Request.Context(), actor, listID, &req)
	if err != nil {
		utils.DomainErrorResponse(c, err, "list")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyEntryCreated),
		"status":  noveltyLabel(c, result.Entry.IsNewProspect),
		"entry":   result.Entry,
		"novelty": result.Novelty,
	})
}

// PUT /v1/entries/:id
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "entry")
	if !ok {
		return
	}

	var req services.UpdateEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.entryService.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		utils.DomainErrorResponse(c, err, "entry")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyEntryUpdated),
		"status":  noveltyLabel(c, result.Entry.IsNewProspect),
		"entry":   result.Entry,
		"novelty": result.Novelty,
	})
}

// DELETE /v1/entries/:id
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "entry")
	if !ok {
		return
	}

	if err := h.entryService.Delete(c.Request.Context(), actor, id); err != nil {
		utils.DomainErrorResponse(c, err, "entry")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyEntryDeleted)})
}

func noveltyLabel(c *gin.Context, isNew bool) string {
	lang := utils.GetLangFromContext(c)
	if isNew {
		return i18n.T(lang, i18n.KeyEntryNew)
	}
	return i18n.T(lang, i18n.KeyEntryKnown)
}
