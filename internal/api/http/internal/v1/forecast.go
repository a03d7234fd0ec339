package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/traderacademy/backoffice/internal/domain"
	"github.com/traderacademy/backoffice/internal/service"
	"github.com/traderacademy/backoffice/pkg/logger"
	"go.uber.org/zap"
)

func (h *Handler) initForecastRoutes(api *gin.RouterGroup) {
	forecasts := api.Group("/forecasts", h.adminIdentityMiddleware)
	{
		forecasts.GET("", h.listForecasts)
		forecasts.POST("/:id/review", h.reviewForecast)
	}
}

// @Summary List Forecasts
// @Security AdminAuth
// @Tags Forecasts
// @Description List market forecasts submitted for moderation
// @ModuleID listForecasts
// @Produce  json
// @Param status query string false "status filter"
// @Success 200 {array} domain.Forecast
// @Failure 401
// @Failure 500
// @Router /forecasts [get]
func (h *Handler) listForecasts(c *gin.Context) {
	var status *domain.ForecastStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.ForecastStatus(raw)
		status = &s
	}

	forecasts, err := h.services.Forecasts.List(c.Request.Context(), status)
	if err != nil {
		logger.Error("list forecasts failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, forecasts)
}

type reviewForecastRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// @Summary Review Forecast
// @Security AdminAuth
// @Tags Forecasts
// @Description Approve or reject a pending forecast. A forecast can be reviewed once.
// @ModuleID reviewForecast
// @Accept  json
// @Param id path string true "forecast id"
// @Param input body reviewForecastRequest true "verdict"
// @Success 200
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 409 {object} ErrorStruct
// @Failure 500
// @Router /forecasts/{id}/review [post]
func (h *Handler) reviewForecast(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, ForecastAlreadyReviewedCode)
		return
	}

	var req reviewForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	adminID, err := h.getAdminUUID(c)
	if err != nil {
		logger.Error("get admin id failed", zap.Error(err))
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := h.services.Forecasts.Review(c.Request.Context(), id, *req.Approve, adminID); err != nil {
		if errors.Is(err, service.ErrForecastAlreadyReviewed) {
			errorResponse(c, http.StatusConflict, ForecastAlreadyReviewedCode)
			return
		}
		logger.Error("review forecast failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
