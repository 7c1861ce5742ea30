// internal/services/actor.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/packscan/packscan-backend/internal/inspection"
	"github.com/packscan/packscan-backend/internal/models"
	"github.com/packscan/packscan-backend/internal/repository"
	"github.com/packscan/packscan-backend/internal/utils"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrParentDeleteFailed = errors.New("list entries were deleted but the list itself was not")
)

// Actor is the authenticated caller of a use case.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role models.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

// scope restricts inspectors to their own lists; admins see everything.
func (a Actor) scope() *uuid.UUID {
	if a.IsAdmin() {
		return nil
	}
	id := a.ID
	return &id
}

// visibleList loads a list the actor may see. Lists of other inspectors are reported
// as missing so their existence is not disclosed.
func visibleList(ctx context.Context, repo repository.Repository, actor Actor, id uuid.UUID) (*models.InspectionList, error) {
	list, err := repo.GetList(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && list.InspectorID != actor.ID {
		return nil, inspection.NotFoundf("list %s", id)
	}
	return list, nil
}

// validateRequest runs the struct tags and reports the first failure as a ValidationError.
func validateRequest(req interface{}) error {
	if err := utils.ValidateStruct(req); err != nil {
		if details := utils.GetValidationErrors(err); len(details) > 0 {
			return inspection.NewValidationError(details[0].Field, details[0].Message)
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
