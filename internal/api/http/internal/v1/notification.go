package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/traderacademy/backoffice/internal/service"
	"github.com/traderacademy/backoffice/pkg/logger"
	"go.uber.org/zap"
)

func (h *Handler) initNotificationRoutes(api *gin.RouterGroup) {
	notifications := api.Group("/notifications", h.adminIdentityMiddleware)
	{
		notifications.POST("/bulk", h.sendBulkNotification)
	}
}

type bulkNotificationRequest struct {
	Audience string `json:"audience" binding:"required,oneof=leads converted_leads affiliates"`
	Subject  string `json:"subject" binding:"required,min=1,max=256"`
	Body     string `json:"body" binding:"required"`
}

type bulkNotificationResponse struct {
	Enqueued int `json:"enqueued"`
}

// @Summary Send Bulk Notification
// @Security AdminAuth
// @Tags Notifications
// @Description Fan out an email to every recipient in the audience. Delivery happens asynchronously; the response reports how many sends were enqueued.
// @ModuleID sendBulkNotification
// @Accept  json
// @Produce  json
// @Param input body bulkNotificationRequest true "audience and message"
// @Success 202 {object} bulkNotificationResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 500
// @Router /notifications/bulk [post]
func (h *Handler) sendBulkNotification(c *gin.Context) {
	var req bulkNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	enqueued, err := h.services.Notifications.SendBulk(c.Request.Context(), req.Audience, req.Subject, req.Body)
	if err != nil {
		if errors.Is(err, service.ErrUnknownAudience) {
			errorResponse(c, http.StatusBadRequest, UnknownAudienceCode)
			return
		}
		logger.Error("send bulk notification failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusAccepted, bulkNotificationResponse{Enqueued: enqueued})
}
