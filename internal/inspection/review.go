// internal/inspection/review.go
package inspection

import (
	"fmt"

	"github.com/packscan/packscan-backend/internal/models"
)

// Decision is the outcome of a capability check.
type Decision struct {
	allowed bool
	reason  string
}

func Allowed() Decision {
	return Decision{allowed: true}
}

func Denied(reason string) Decision {
	return Decision{reason: reason}
}

func (d Decision) IsAllowed() bool {
	return d.allowed
}

func (d Decision) Reason() string {
	return d.reason
}

// Err converts a denial into an AuthorizationError, nil when allowed.
func (d Decision) Err() error {
	if d.allowed {
		return nil
	}
	return &AuthorizationError{Reason: d.reason}
}

// AuthorizeReview gates approve/reject transitions to administrators.
func AuthorizeReview(role models.UserRole) Decision {
	switch role {
	case models.RoleAdmin:
		return Allowed()
	case models.RoleInspector:
		return Denied("only administrators can review entries")
	default:
		return Denied(fmt.Sprintf("unknown role %q", role))
	}
}

// AuthorizeSettingsWrite gates writes to the reference configuration.
func AuthorizeSettingsWrite(role models.UserRole) Decision {
	if role.IsAdmin() {
		return Allowed()
	}
	return Denied("only administrators can change the reference settings")
}

// ValidateReviewTarget accepts only the reachable target states. Pending is the initial
// state and never an explicit target.
func ValidateReviewTarget(target models.ReviewStatus) error {
	switch target {
	case models.ReviewStatusApproved, models.ReviewStatusRejected:
		return nil
	case models.ReviewStatusPending:
		return NewValidationError("status", "pending is not a valid review target")
	default:
		return NewValidationError("status", fmt.Sprintf("unknown review status %q", target))
	}
}

// ReviewAction is the audit action recorded for a transition.
func ReviewAction(target models.ReviewStatus) string {
	switch target {
	case models.ReviewStatusApproved:
		return "REVIEW_APPROVE"
	case models.ReviewStatusRejected:
		return "REVIEW_REJECT"
	default:
		return "REVIEW_UNKNOWN"
	}
}
