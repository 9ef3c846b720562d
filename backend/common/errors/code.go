package errors

// Generic error kinds, surfaced in the response envelope's code field.
const (
	ErrInternalServer = "ERR_INTERNAL_SERVER"
	ErrInvalidInput   = "ERR_INVALID_INPUT"
	ErrUnauthorized   = "ERR_UNAUTHORIZED"
	ErrForbidden      = "ERR_FORBIDDEN"
	ErrNotFound       = "ERR_NOT_FOUND"
	ErrConfiguration  = "ERR_CONFIGURATION"
	ErrRateLimited    = "ERR_RATE_LIMITED"
)

// File lifecycle error kinds.
const (
	ErrQuotaExceeded = "ERR_QUOTA_EXCEEDED"
	ErrFileNotFound  = "ERR_FILE_NOT_FOUND"
	ErrFileGone      = "ERR_FILE_GONE"
)

// User and auth error kinds.
const (
	ErrUserNotFound       = "ERR_USER_NOT_FOUND"
	ErrEmailTaken         = "ERR_EMAIL_TAKEN"
	ErrEmptyCredentials   = "ERR_EMPTY_CREDENTIALS"
	ErrInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrInvalidToken       = "ERR_INVALID_TOKEN"
	ErrPlanNotFound       = "ERR_PLAN_NOT_FOUND"
)
