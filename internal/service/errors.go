package service

import "errors"

var (
	// Verification verdicts. NotFoundOrExpired deliberately covers "never
	// issued", "already used" and "timed out" so responses do not reveal
	// whether an email ever requested a code.
	ErrOTPNotFoundOrExpired = errors.New("code not found or expired")
	ErrOTPTooManyAttempts   = errors.New("too many attempts")
	ErrOTPInvalidCode       = errors.New("invalid code")

	ErrAdminNotFound           = errors.New("admin not found")
	ErrLeadNotFound            = errors.New("lead not found")
	ErrCourseNotFound          = errors.New("course not found")
	ErrAffiliateExists         = errors.New("affiliate ref code already exists")
	ErrAffiliateNotFound       = errors.New("affiliate not found")
	ErrForecastAlreadyReviewed = errors.New("forecast already reviewed")
	ErrRefreshSessionExpired   = errors.New("refresh session expired")
	ErrUnknownAudience         = errors.New("unknown audience")
	ErrOrderMismatch           = errors.New("ordered ids do not match existing children")
)
