package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeForbidden              = "forbidden"
	ErrCodeInvalidToken           = "invalid_token"
	ErrCodeAuthenticationRequired = "authentication_required"
	ErrCodeLoginFailed            = "login_failed"

	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"

	// Resource errors
	ErrCodeNotFound = "not_found"

	// Exam errors
	ErrCodeSessionInitFailed = "session_init_failed"
	ErrCodeQuestionsFailed   = "questions_fetch_failed"
	ErrCodeSubmitFailed      = "submit_failed"
	ErrCodeUnknownAnswer     = "unknown_answer"
	ErrCodeFinalizeFailed    = "finalize_failed"
	ErrCodeNoResult          = "no_result"
	ErrCodeResultFailed      = "result_fetch_failed"

	// Authoring / admin errors
	ErrCodeQuestionSaveFailed   = "question_save_failed"
	ErrCodeQuestionDeleteFailed = "question_delete_failed"
	ErrCodeUserCreationFailed   = "user_creation_failed"
	ErrCodeStatsFailed          = "stats_fetch_failed"
	ErrCodeReportFailed         = "report_generation_failed"

	// Server errors
	ErrCodeInternalError = "internal_error"
)
