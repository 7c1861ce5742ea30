// internal/handlers/common.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/packscan/packscan-backend/internal/i18n"
	"github.com/packscan/packscan-backend/internal/models"
	"github.com/packscan/packscan-backend/internal/services"
	"github.com/packscan/packscan-backend/internal/utils"
)

// actorFromContext reads the identity set by the auth middleware.
func actorFromContext(c *gin.Context) (services.Actor, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return services.Actor{}, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyAuthInvalidToken))
		return services.Actor{}, false
	}

	role, _ := utils.GetUserRoleFromContext(c)
	return services.Actor{
		ID:   userID,
		Name: utils.GetUserNameFromContext(c),
		Role: models.UserRole(role),
	}, true
}

func parseIDParam(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, resource)
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	return true
}
