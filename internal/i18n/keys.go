// Package i18n provides internationalization support for the pantry service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyInvalidCredentials is returned for any failed login, whether the
	// household is unknown or the password is wrong.
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	// ErrKeyForbidden indicates insufficient permissions.
	ErrKeyForbidden = "error.forbidden"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"

	ErrKeyHouseholdExists   = "error.household_exists"
	ErrKeyHouseholdNotFound = "error.household_not_found"
	ErrKeyLotNotFound       = "error.lot_not_found"
	ErrKeyRecipeNotFound    = "error.recipe_not_found"
	ErrKeyShoppingIndex     = "error.shopping_index"
	ErrKeyNotCookable       = "error.not_cookable"
	ErrKeyInsufficientStock = "error.insufficient_stock"
	ErrKeyVersionConflict   = "error.version_conflict"
	ErrKeyStoreUnavailable  = "error.store_unavailable"
	ErrKeyReportUnavailable = "error.report_unavailable"

	ErrKeyIdempotencyMismatch   = "error.idempotency_key_reused"
	ErrKeyIdempotencyInProgress = "error.idempotency_in_progress"
)

// Success message translation keys.
const (
	SuccessKeyLotAdded       = "success.lot_added"
	SuccessKeyCooked         = "success.cooked"
	SuccessKeyShoppingAdded  = "success.shopping_added"
	SuccessKeyShoppingExists = "success.shopping_exists"
	SuccessKeyReportExported = "success.report_exported"
)

// ReportKeyShoppingTitle is the title of the shopping list PDF.
const ReportKeyShoppingTitle = "report.shopping_title"
