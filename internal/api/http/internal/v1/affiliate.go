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

func (h *Handler) initAffiliateRoutes(api *gin.RouterGroup) {
	affiliates := api.Group("/affiliates", h.adminIdentityMiddleware)
	{
		affiliates.GET("", h.listAffiliates)
		affiliates.POST("", h.createAffiliate)
		affiliates.GET("/code/:code", h.getAffiliateByCode)
		affiliates.POST("/:id/deactivate", h.deactivateAffiliate)
	}

	// Tracking endpoints are hit from public landing pages, not the admin UI.
	track := api.Group("/ref")
	{
		track.POST("/:code/click", h.trackAffiliateClick)
		track.POST("/:code/signup", h.trackAffiliateSignup)
	}
}

// @Summary List Affiliates
// @Security AdminAuth
// @Tags Affiliates
// @Description List all affiliates with their click and signup counters
// @ModuleID listAffiliates
// @Produce  json
// @Success 200 {array} domain.Affiliate
// @Failure 401
// @Failure 500
// @Router /affiliates [get]
func (h *Handler) listAffiliates(c *gin.Context) {
	affiliates, err := h.services.Affiliates.List(c.Request.Context())
	if err != nil {
		logger.Error("list affiliates failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, affiliates)
}

type createAffiliateRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=128"`
	Email string `json:"email" binding:"required,email"`
}

// @Summary Create Affiliate
// @Security AdminAuth
// @Tags Affiliates
// @Description Register an affiliate and assign a referral code
// @ModuleID createAffiliate
// @Accept  json
// @Produce  json
// @Param input body createAffiliateRequest true "affiliate details"
// @Success 201 {object} domain.Affiliate
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 500
// @Router /affiliates [post]
func (h *Handler) createAffiliate(c *gin.Context) {
	var req createAffiliateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	affiliate, err := h.services.Affiliates.Create(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrAffiliateExists) {
			errorResponse(c, http.StatusConflict, AffiliateExistsCode)
			return
		}
		logger.Error("create affiliate failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, affiliate)
}

// @Summary Get Affiliate By Referral Code
// @Security AdminAuth
// @Tags Affiliates
// @Description Look up an affiliate by its referral code
// @ModuleID getAffiliateByCode
// @Produce  json
// @Param code path string true "referral code"
// @Success 200 {object} domain.Affiliate
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500
// @Router /affiliates/code/{code} [get]
func (h *Handler) getAffiliateByCode(c *gin.Context) {
	affiliate, err := h.services.Affiliates.GetByRefCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrAffiliateNotFound) {
			errorResponse(c, http.StatusNotFound, AffiliateNotFoundCode)
			return
		}
		logger.Error("get affiliate by ref code failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, affiliate)
}

// @Summary Deactivate Affiliate
// @Security AdminAuth
// @Tags Affiliates
// @Description Deactivate an affiliate so its referral code stops counting
// @ModuleID deactivateAffiliate
// @Param id path string true "affiliate id"
// @Success 200
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500
// @Router /affiliates/{id}/deactivate [post]
func (h *Handler) deactivateAffiliate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, AffiliateNotFoundCode)
		return
	}

	if err := h.services.Affiliates.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAffiliateNotFound) {
			errorResponse(c, http.StatusNotFound, AffiliateNotFoundCode)
			return
		}
		logger.Error("deactivate affiliate failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// @Summary Track Referral Click
// @Tags Affiliates
// @Description Count a landing-page visit for a referral code
// @ModuleID trackAffiliateClick
// @Param code path string true "referral code"
// @Success 200
// @Failure 404 {object} ErrorStruct
// @Failure 500
// @Router /ref/{code}/click [post]
func (h *Handler) trackAffiliateClick(c *gin.Context) {
	if err := h.services.Affiliates.TrackClick(c.Request.Context(), c.Param("code")); err != nil {
		if errors.Is(err, service.ErrAffiliateNotFound) {
			errorResponse(c, http.StatusNotFound, AffiliateNotFoundCode)
			return
		}
		logger.Error("track click failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// @Summary Track Referral Signup
// @Tags Affiliates
// @Description Count a completed signup for a referral code
// @ModuleID trackAffiliateSignup
// @Param code path string true "referral code"
// @Success 200
// @Failure 404 {object} ErrorStruct
// @Failure 500
// @Router /ref/{code}/signup [post]
func (h *Handler) trackAffiliateSignup(c *gin.Context) {
	if err := h.services.Affiliates.TrackSignup(c.Request.Context(), c.Param("code")); err != nil {
		if errors.Is(err, service.ErrAffiliateNotFound) {
			errorResponse(c, http.StatusNotFound, AffiliateNotFoundCode)
			return
		}
		logger.Error("track signup failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
