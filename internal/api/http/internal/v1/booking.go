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

func (h *Handler) initBookingRoutes(api *gin.RouterGroup) {
	bookings := api.Group("/bookings", h.adminIdentityMiddleware)
	{
		bookings.GET("", h.listBookings)
		bookings.PATCH("/:id/status", h.updateBookingStatus)
	}
}

// @Summary List Bookings
// @Security AdminAuth
// @Tags Bookings
// @Description List one-on-one session bookings, optionally filtered by status
// @ModuleID listBookings
// @Produce  json
// @Param status query string false "booking status filter"
// @Success 200 {array} domain.Booking
// @Failure 401
// @Failure 500
// @Router /bookings [get]
func (h *Handler) listBookings(c *gin.Context) {
	var status *domain.BookingStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.BookingStatus(raw)
		status = &s
	}

	bookings, err := h.services.Bookings.List(c.Request.Context(), status)
	if err != nil {
		logger.Error("list bookings failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

type updateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}

// @Summary Update Booking Status
// @Security AdminAuth
// @Tags Bookings
// @Description Confirm or cancel a booking
// @ModuleID updateBookingStatus
// @Accept  json
// @Param id path string true "booking id"
// @Param input body updateBookingStatusRequest true "new status"
// @Success 200
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500
// @Router /bookings/{id}/status [patch]
func (h *Handler) updateBookingStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, BookingNotFoundCode)
		return
	}

	var req updateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Bookings.UpdateStatus(c.Request.Context(), id, domain.BookingStatus(req.Status)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, BookingNotFoundCode)
			return
		}
		logger.Error("update booking status failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
