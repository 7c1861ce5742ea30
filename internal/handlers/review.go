// internal/handlers/review.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/packscan/packscan-backend/internal/i18n"
	"github.com/packscan/packscan-backend/internal/models"
	"github.com/packscan/packscan-backend/internal/services"
	"github.com/packscan/packscan-backend/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// PUT /v1/entries/:id/review
func (h *ReviewHandler) ReviewEntry(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "entry")
	if !ok {
		return
	}

	var req services.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.reviewService.Transition(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		utils.DomainErrorResponse(c, err, "entry")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": reviewMessage(c, entry.ReviewStatus),
		"entry":   entry,
	})
}

// POST /v1/admin/review/bulk
func (h *ReviewHandler) BulkReview(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req services.BulkReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.reviewService.BulkTransition(c.Request.Context(), actor, req.IDs, req.Status)
	if err != nil {
		utils.DomainErrorResponse(c, err, "entry")
		return
	}

	utils.SuccessResponse(c, bulkPayload(c, result))
}

// POST /v1/admin/review/approve-pending
func (h *ReviewHandler) ApprovePending(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	result, err := h.reviewService.ApprovePending(c.Request.Context(), actor)
	if err != nil {
		utils.DomainErrorResponse(c, err, "entry")
		return
	}

	if len(result.Succeeded) == 0 && result.AllSucceeded {
		utils.SuccessResponse(c, gin.H{
			"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyReviewNothingToDo),
			"result":  result,
		})
		return
	}

	utils.SuccessResponse(c, bulkPayload(c, result))
}

func reviewMessage(c *gin.Context, status models.ReviewStatus) string {
	lang := utils.GetLangFromContext(c)
	if status == models.ReviewStatusRejected {
		return i18n.T(lang, i18n.KeyReviewRejected)
	}
	return i18n.T(lang, i18n.KeyReviewApproved)
}

func bulkPayload(c *gin.Context, result *services.BulkResult) gin.H {
	lang := utils.GetLangFromContext(c)
	message := i18n.T(lang, i18n.KeyReviewBulkApplied, len(result.Succeeded))
	if !result.AllSucceeded {
		message = i18n.T(lang, i18n.KeyReviewBulkPartial, len(result.Succeeded), len(result.Failed))
	}
	return gin.H{
		"message": message,
		"result":  result,
	}
}
