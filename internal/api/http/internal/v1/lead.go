package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/traderacademy/backoffice/internal/domain"
	"github.com/traderacademy/backoffice/internal/service"
	"github.com/traderacademy/backoffice/pkg/logger"
	"go.uber.org/zap"
)

func (h *Handler) initLeadRoutes(api *gin.RouterGroup) {
	leads := api.Group("/leads", h.adminIdentityMiddleware)
	{
		leads.GET("", h.listLeads)
		leads.GET("/:id", h.getLead)
		leads.PATCH("/:id/status", h.updateLeadStatus)
		leads.DELETE("/:id", h.deleteLead)
	}
}

type leadListResponse struct {
	Items []*domain.Lead `json:"items"`
	Total int64          `json:"total"`
}

// @Summary List Leads
// @Security AdminAuth
// @Tags Leads
// @Description Page through leads, optionally filtered by status
// @ModuleID listLeads
// @Produce  json
// @Param page query int false "page number, starts at 1"
// @Param limit query int false "page size"
// @Param status query string false "lead status filter"
// @Success 200 {object} leadListResponse
// @Failure 401
// @Failure 500
// @Router /leads [get]
func (h *Handler) listLeads(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var status *domain.LeadStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.LeadStatus(raw)
		status = &s
	}

	items, total, err := h.services.Leads.List(c.Request.Context(), page, limit, status)
	if err != nil {
		logger.Error("list leads failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, leadListResponse{Items: items, Total: total})
}

// @Summary Get Lead
// @Security AdminAuth
// @Tags Leads
// @Description Fetch a single lead by id
// @ModuleID getLead
// @Produce  json
// @Param id path string true "lead id"
// @Success 200 {object} domain.Lead
// @Failure 400 {object} ErrorStruct
// @Failure 401
// @Failure 500
// @Router /leads/{id} [get]
func (h *Handler) getLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, LeadNotFoundCode)
		return
	}

	lead, err := h.services.Leads.GetOneByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			errorResponse(c, http.StatusNotFound, LeadNotFoundCode)
			return
		}
		logger.Error("get lead failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, lead)
}

type updateLeadStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new contacted converted closed"`
	Notes  string `json:"notes"`
}

// @Summary Update Lead Status
// @Security AdminAuth
// @Tags Leads
// @Description Move a lead through the pipeline and append notes
// @ModuleID updateLeadStatus
// @Accept  json
// @Produce  json
// @Param id path string true "lead id"
// @Param input body updateLeadStatusRequest true "new status"
// @Success 200
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500
// @Router /leads/{id}/status [patch]
func (h *Handler) updateLeadStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, LeadNotFoundCode)
		return
	}

	var req updateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Leads.UpdateStatus(c.Request.Context(), id, domain.LeadStatus(req.Status), req.Notes); err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			errorResponse(c, http.StatusNotFound, LeadNotFoundCode)
			return
		}
		logger.Error("update lead status failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// @Summary Delete Lead
// @Security AdminAuth
// @Tags Leads
// @Description Soft-delete a lead
// @ModuleID deleteLead
// @Param id path string true "lead id"
// @Success 200
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500
// @Router /leads/{id} [delete]
func (h *Handler) deleteLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, LeadNotFoundCode)
		return
	}

	if err := h.services.Leads.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			errorResponse(c, http.StatusNotFound, LeadNotFoundCode)
			return
		}
		logger.Error("delete lead failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
