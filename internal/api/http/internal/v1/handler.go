package v1

import (
	"github.com/traderacademy/backoffice/internal/config"
	"github.com/traderacademy/backoffice/internal/service"
	"github.com/traderacademy/backoffice/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title Trader Academy Back-office API
// @version 1.0
// @description Administrative API for the trading-education platform

// @BasePath /api/v1

// @securityDefinitions.apikey AdminAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	config *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initAuthRoutes(v1)
	h.initLeadRoutes(v1)
	h.initAffiliateRoutes(v1)
	h.initBookingRoutes(v1)
	h.initMentorshipRoutes(v1)
	h.initCourseRoutes(v1)
	h.initForecastRoutes(v1)
	h.initNotificationRoutes(v1)
}
