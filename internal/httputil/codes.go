package httputil

// Machine-readable error codes returned in the envelope's code field
const (
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeRouteNotFound      = "ROUTE_NOT_FOUND"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"

	// Authentication
	CodeMissingAuth        = "MISSING_AUTH"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeAccountInactive    = "ACCOUNT_INACTIVE"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeSecurityCheck      = "SECURITY_CHECK_FAILED"
	CodeForbidden          = "FORBIDDEN"

	// Account flows
	CodeSetupComplete      = "SETUP_ALREADY_COMPLETE"
	CodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
	CodeInvalidOTP         = "INVALID_OTP"
	CodeInvalidInvitation  = "INVALID_INVITATION"
	CodePasswordTooShort   = "PASSWORD_TOO_SHORT"
	CodeEmailDelivery      = "EMAIL_DELIVERY_FAILED"
	CodeSelfDeletion       = "SELF_DELETION"

	// Content
	CodeSlugAlreadyExists = "SLUG_ALREADY_EXISTS"
	CodeInvalidPage       = "INVALID_PAGE"
	CodeFileTooLarge      = "FILE_TOO_LARGE"
	CodeUploadFailed      = "UPLOAD_FAILED"
)
