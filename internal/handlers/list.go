// internal/handlers/list.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/packscan/packscan-backend/internal/i18n"
	"github.com/packscan/packscan-backend/internal/services"
	"github.com/packscan/packscan-backend/internal/utils"
)

type ListHandler struct {
	listService *services.ListService
}

func NewListHandler(listService *services.ListService) *ListHandler {
	return &ListHandler{listService: listService}
}

// GET /v1/lists?search=
func (h *ListHandler) GetLists(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	lists, err := h.listService.List(c.Request.Context(), actor, c.Query("search"))
	if err != nil {
		utils.DomainErrorResponse(c, err, "list")
		return
	}

	utils.SuccessResponseWithMeta(c, lists, gin.H{"total": len(lists)})
}

// POST /v1/lists
func (h *ListHandler) CreateList(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req services.CreateListRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.listService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		utils.DomainErrorResponse(c, err, "list")
		return
	}

	utils.CreatedResponse(c, list)
}

// GET /v1/lists/:id
func (h *ListHandler) GetList(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "list")
	if !ok {
		return
	}

	list, err := h.listService.Get(c.Request.Context(), actor, id)
	if err != nil {
		utils.DomainErrorResponse(c, err, "list")
		return
	}

	utils.SuccessResponse(c, list)
}

// POST /v1/lists/:id/submit
func (h *ListHandler) SubmitList(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "list")
	if !ok {
		return
	}

	list, err := h.listService.Submit(c.Request.Context(), actor, id)
	if err != nil {
		utils.DomainErrorResponse(c, err, "list")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyListSubmitted),
		"list":    list,
	})
}

// DELETE /v1/lists/:id
func (h *ListHandler) DeleteList(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "list")
	if !ok {
		return
	}

	if err := h.listService.Delete(c.Request.Context(), actor, id); err != nil {
		if errors.Is(err, services.ErrParentDeleteFailed) {
			// entries are gone; the client retries the same request
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "PARENT_DELETE_FAILED", err.Error(), gin.H{"retry": true})
			return
		}
		utils.DomainErrorResponse(c, err, "list")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyListDeleted)})
}
