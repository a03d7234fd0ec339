package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/traderacademy/backoffice/internal/service"
	"github.com/traderacademy/backoffice/pkg/logger"
	"go.uber.org/zap"
)

func (h *Handler) initAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/resend", h.resendCode)
		auth.POST("/verify", h.verifyCode)
		auth.POST("/refresh", h.refresh)
		auth.GET("/me", h.adminIdentityMiddleware, h.me)
	}
}

// @Summary Current Admin
// @Security AdminAuth
// @Tags Auth
// @Description Return the profile of the authenticated admin
// @ModuleID me
// @Produce  json
// @Success 200 {object} domain.Admin
// @Failure 401
// @Failure 500
// @Router /auth/me [get]
func (h *Handler) me(c *gin.Context) {
	adminID, err := h.getAdminUUID(c)
	if err != nil {
		logger.Error("get admin id failed", zap.Error(err))
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	admin, err := h.services.Auth.GetAdmin(c.Request.Context(), adminID)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			errorResponse(c, http.StatusNotFound, AdminNotFoundCode)
			return
		}
		logger.Error("get admin failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, admin)
}

type loginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// @Summary Request Login Code
// @Tags Auth
// @Description Issue a one-time sign-in code and email it to the admin. The response is identical whether or not the email is registered.
// @ModuleID login
// @Accept  json
// @Produce  json
// @Param input body loginRequest true "admin email"
// @Success 200
// @Failure 400 {object} ValidationErrorStruct
// @Failure 500
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Auth.Login(c.Request.Context(), req.Email); err != nil {
		logger.Error("login failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// @Summary Resend Login Code
// @Tags Auth
// @Description Issue a fresh code, superseding the previous one
// @ModuleID resendCode
// @Accept  json
// @Produce  json
// @Param input body loginRequest true "admin email"
// @Success 200
// @Failure 400 {object} ValidationErrorStruct
// @Failure 500
// @Router /auth/resend [post]
func (h *Handler) resendCode(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Auth.ResendCode(c.Request.Context(), req.Email); err != nil {
		logger.Error("resend code failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

type verifyCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,otpcode"`
}

type tokensResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken uuid.UUID `json:"refresh_token"`
}

// @Summary Verify Login Code
// @Tags Auth
// @Description Verify a submitted code and mint a session
// @ModuleID verifyCode
// @Accept  json
// @Produce  json
// @Param input body verifyCodeRequest true "email and code"
// @Success 200 {object} tokensResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500
// @Router /auth/verify [post]
func (h *Handler) verifyCode(c *gin.Context) {
	var req verifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	tokens, err := h.services.Auth.VerifyCode(c.Request.Context(), req.Email, req.Code, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOTPNotFoundOrExpired):
			errorResponse(c, http.StatusBadRequest, OTPNotFoundOrExpiredCode)
		case errors.Is(err, service.ErrOTPTooManyAttempts):
			errorResponse(c, http.StatusBadRequest, OTPTooManyAttemptsCode)
		case errors.Is(err, service.ErrOTPInvalidCode):
			errorResponse(c, http.StatusBadRequest, OTPInvalidCodeCode)
		case errors.Is(err, service.ErrAdminNotFound):
			errorResponse(c, http.StatusBadRequest, AdminNotFoundCode)
		default:
			logger.Error("verify code failed", zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, tokensResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// @Summary Refresh Session
// @Tags Auth
// @Description Rotate the refresh token and mint a new access token
// @ModuleID refresh
// @Accept  json
// @Produce  json
// @Param input body refreshRequest true "refresh token"
// @Success 200 {object} tokensResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500
// @Router /auth/refresh [post]
func (h *Handler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	tokens, err := h.services.Auth.Refresh(c.Request.Context(), req.RefreshToken, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		if errors.Is(err, service.ErrRefreshSessionExpired) {
			errorResponse(c, http.StatusUnauthorized, RefreshTokenExpiredCode)
			return
		}
		logger.Error("refresh failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, tokensResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}
