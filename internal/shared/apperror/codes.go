package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput       = "INVALID_INPUT"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeInvalidState       = "INVALID_STATE"

	// Gating failures — stable reason codes returned to clients and
	// recorded verbatim in the audit trail.
	CodeEmployeeNotFound  = "EMPLOYEE_NOT_FOUND"
	CodeOutOfRange        = "OUT_OF_RANGE"
	CodeDeviceBlocked     = "DEVICE_BLOCKED"
	CodeDeviceAlreadyUsed = "DEVICE_ALREADY_USED_TODAY"
	CodeDeviceMismatch    = "DEVICE_MISMATCH"
	CodeAlreadyClockedIn  = "ALREADY_CLOCKED_IN"
	CodeNotClockedIn      = "NOT_CLOCKED_IN"
	CodeLowConfidence     = "LOW_CONFIDENCE"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
