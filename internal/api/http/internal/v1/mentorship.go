package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/traderacademy/backoffice/internal/domain"
	"github.com/traderacademy/backoffice/pkg/logger"
	"go.uber.org/zap"
)

func (h *Handler) initMentorshipRoutes(api *gin.RouterGroup) {
	mentorship := api.Group("/mentorship", h.adminIdentityMiddleware)
	{
		mentorship.GET("", h.listMentorshipRequests)
		mentorship.POST("/:id/review", h.reviewMentorshipRequest)
	}
}

// @Summary List Mentorship Requests
// @Security AdminAuth
// @Tags Mentorship
// @Description List mentorship applications, optionally filtered by status
// @ModuleID listMentorshipRequests
// @Produce  json
// @Param status query string false "status filter"
// @Success 200 {array} domain.MentorshipRequest
// @Failure 401
// @Failure 500
// @Router /mentorship [get]
func (h *Handler) listMentorshipRequests(c *gin.Context) {
	var status *domain.MentorshipStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.MentorshipStatus(raw)
		status = &s
	}

	requests, err := h.services.Mentorship.List(c.Request.Context(), status)
	if err != nil {
		logger.Error("list mentorship requests failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, requests)
}

type reviewMentorshipRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
	Note   string `json:"note"`
}

// @Summary Review Mentorship Request
// @Security AdminAuth
// @Tags Mentorship
// @Description Approve or reject a mentorship application with an optional note
// @ModuleID reviewMentorshipRequest
// @Accept  json
// @Param id path string true "request id"
// @Param input body reviewMentorshipRequest true "verdict"
// @Success 200
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500
// @Router /mentorship/{id}/review [post]
func (h *Handler) reviewMentorshipRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, MentorshipNotFoundCode)
		return
	}

	var req reviewMentorshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Mentorship.Review(c.Request.Context(), id, domain.MentorshipStatus(req.Status), req.Note); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, MentorshipNotFoundCode)
			return
		}
		logger.Error("review mentorship request failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
