package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	AdminNotFoundCode    = 1001
	AdminNotFoundMessage = "admin not found"

	RefreshTokenNotFoundCode    = 1002
	RefreshTokenNotFoundMessage = "refresh token not found"
	RefreshTokenExpiredCode     = 1003
	RefreshTokenExpiredMessage  = "refresh token expired"

	OTPNotFoundOrExpiredCode    = 1101
	OTPNotFoundOrExpiredMessage = "code not found or expired"
	OTPTooManyAttemptsCode      = 1102
	OTPTooManyAttemptsMessage   = "too many attempts"
	OTPInvalidCodeCode          = 1103
	OTPInvalidCodeMessage       = "invalid code"

	LeadNotFoundCode    = 2001
	LeadNotFoundMessage = "lead not found"

	AffiliateExistsCode      = 2101
	AffiliateExistsMessage   = "affiliate already exists"
	AffiliateNotFoundCode    = 2102
	AffiliateNotFoundMessage = "affiliate not found"

	BookingNotFoundCode    = 2201
	BookingNotFoundMessage = "booking not found"

	MentorshipNotFoundCode    = 2301
	MentorshipNotFoundMessage = "mentorship request not found"

	CourseNotFoundCode     = 2401
	CourseNotFoundMessage  = "course not found"
	ContentNotFoundCode    = 2402
	ContentNotFoundMessage = "content item not found"
	OrderMismatchCode      = 2403
	OrderMismatchMessage   = "ordered ids do not match existing children"

	ForecastAlreadyReviewedCode    = 2501
	ForecastAlreadyReviewedMessage = "forecast already reviewed"

	UnknownAudienceCode    = 2601
	UnknownAudienceMessage = "unknown audience"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	errorStruct := &ErrorStruct{
		ErrorCode:    UnknownErrorCode,
		ErrorMessage: UnknownErrorMessage,
	}

	messages := map[ErrorCode]ErrorMessage{
		AdminNotFoundCode:           AdminNotFoundMessage,
		RefreshTokenNotFoundCode:    RefreshTokenNotFoundMessage,
		RefreshTokenExpiredCode:     RefreshTokenExpiredMessage,
		OTPNotFoundOrExpiredCode:    OTPNotFoundOrExpiredMessage,
		OTPTooManyAttemptsCode:      OTPTooManyAttemptsMessage,
		OTPInvalidCodeCode:          OTPInvalidCodeMessage,
		LeadNotFoundCode:            LeadNotFoundMessage,
		AffiliateExistsCode:         AffiliateExistsMessage,
		AffiliateNotFoundCode:       AffiliateNotFoundMessage,
		BookingNotFoundCode:         BookingNotFoundMessage,
		MentorshipNotFoundCode:      MentorshipNotFoundMessage,
		CourseNotFoundCode:          CourseNotFoundMessage,
		ContentNotFoundCode:         ContentNotFoundMessage,
		OrderMismatchCode:           OrderMismatchMessage,
		ForecastAlreadyReviewedCode: ForecastAlreadyReviewedMessage,
		UnknownAudienceCode:         UnknownAudienceMessage,
	}

	if msg, ok := messages[code]; ok {
		errorStruct.ErrorCode = code
		errorStruct.ErrorMessage = msg
	}

	return errorStruct
}
