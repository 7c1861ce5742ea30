// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Users
	KeyUserNotFound = "user.not_found"

	// Inspection lists
	KeyListCreated   = "list.created"
	KeyListDeleted   = "list.deleted"
	KeyListNotFound  = "list.not_found"
	KeyListSubmitted = "list.submitted"

	// Product entries
	KeyEntryCreated  = "entry.created"
	KeyEntryUpdated  = "entry.updated"
	KeyEntryDeleted  = "entry.deleted"
	KeyEntryNotFound = "entry.not_found"
	KeyEntryNew      = "entry.new_prospect"
	KeyEntryKnown    = "entry.known"

	// Review
	KeyReviewApproved    = "review.approved"
	KeyReviewRejected    = "review.rejected"
	KeyReviewBulkApplied = "review.bulk_applied"
	KeyReviewBulkPartial = "review.bulk_partial"
	KeyReviewNothingToDo = "review.nothing_pending"

	// Extraction
	KeyExtractionFailed = "extraction.failed"

	// Settings
	KeySettingsNotFound = "settings.not_found"
	KeySettingsUpdated  = "settings.updated"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Rate limiting
	KeyRateLimited = "rate.limited"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
)
