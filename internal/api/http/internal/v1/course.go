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

func (h *Handler) initCourseRoutes(api *gin.RouterGroup) {
	courses := api.Group("/courses", h.adminIdentityMiddleware)
	{
		courses.GET("", h.listCourses)
		courses.POST("", h.createCourse)
		courses.GET("/:id", h.getCourse)
		courses.PUT("/:id", h.updateCourse)
		courses.DELETE("/:id", h.deleteCourse)

		courses.GET("/:id/modules", h.listModules)
		courses.POST("/:id/modules", h.addModule)
		courses.DELETE("/:id/modules/:moduleId", h.removeModule)
		courses.PUT("/:id/modules/order", h.reorderModules)
	}

	modules := api.Group("/modules", h.adminIdentityMiddleware)
	{
		modules.PATCH("/:id", h.renameModule)
		modules.GET("/:id/sections", h.listSections)
		modules.POST("/:id/sections", h.addSection)
		modules.DELETE("/:id/sections/:sectionId", h.removeSection)
		modules.PUT("/:id/sections/order", h.reorderSections)
	}

	sections := api.Group("/sections", h.adminIdentityMiddleware)
	{
		sections.PATCH("/:id", h.renameSection)
		sections.GET("/:id/lessons", h.listLessons)
		sections.POST("/:id/lessons", h.addLesson)
		sections.DELETE("/:id/lessons/:lessonId", h.removeLesson)
		sections.PUT("/:id/lessons/order", h.reorderLessons)
	}

	lessons := api.Group("/lessons", h.adminIdentityMiddleware)
	{
		lessons.PUT("/:id", h.updateLesson)
	}
}

// @Summary List Courses
// @Security AdminAuth
// @Tags Courses
// @ModuleID listCourses
// @Produce  json
// @Success 200 {array} domain.Course
// @Failure 401
// @Failure 500
// @Router /courses [get]
func (h *Handler) listCourses(c *gin.Context) {
	courses, err := h.services.Courses.ListCourses(c.Request.Context())
	if err != nil {
		logger.Error("list courses failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, courses)
}

type createCourseRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=256"`
	Slug        string `json:"slug" binding:"required,min=2,max=128"`
	Description string `json:"description"`
}

// @Summary Create Course
// @Security AdminAuth
// @Tags Courses
// @ModuleID createCourse
// @Accept  json
// @Produce  json
// @Param input body createCourseRequest true "course details"
// @Success 201 {object} domain.Course
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 500
// @Router /courses [post]
func (h *Handler) createCourse(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	course, err := h.services.Courses.CreateCourse(c.Request.Context(), req.Title, req.Slug, req.Description)
	if err != nil {
		logger.Error("create course failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// @Summary Get Course
// @Security AdminAuth
// @Tags Courses
// @ModuleID getCourse
// @Produce  json
// @Param id path string true "course id"
// @Success 200 {object} domain.Course
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500
// @Router /courses/{id} [get]
func (h *Handler) getCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, CourseNotFoundCode)
		return
	}

	course, err := h.services.Courses.GetCourse(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			errorResponse(c, http.StatusNotFound, CourseNotFoundCode)
			return
		}
		logger.Error("get course failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, course)
}

type updateCourseRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=256"`
	Slug        string `json:"slug" binding:"required,min=2,max=128"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
}

// @Summary Update Course
// @Security AdminAuth
// @Tags Courses
// @ModuleID updateCourse
// @Accept  json
// @Param id path string true "course id"
// @Param input body updateCourseRequest true "course details"
// @Success 200
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500
// @Router /courses/{id} [put]
func (h *Handler) updateCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, CourseNotFoundCode)
		return
	}

	var req updateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	course := &domain.Course{
		ID:          id,
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Published:   req.Published,
	}

	if err := h.services.Courses.UpdateCourse(c.Request.Context(), course); err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			errorResponse(c, http.StatusNotFound, CourseNotFoundCode)
			return
		}
		logger.Error("update course failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// @Summary Delete Course
// @Security AdminAuth
// @Tags Courses
// @ModuleID deleteCourse
// @Param id path string true "course id"
// @Success 200
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500
// @Router /courses/{id} [delete]
func (h *Handler) deleteCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, CourseNotFoundCode)
		return
	}

	if err := h.services.Courses.DeleteCourse(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			errorResponse(c, http.StatusNotFound, CourseNotFoundCode)
			return
		}
		logger.Error("delete course failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// @Summary List Course Modules
// @Security AdminAuth
// @Tags Courses
// @ModuleID listModules
// @Produce  json
// @Param id path string true "course id"
// @Success 200 {array} domain.CourseModule
// @Failure 401
// @Failure 500
// @Router /courses/{id}/modules [get]
func (h *Handler) listModules(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, CourseNotFoundCode)
		return
	}

	modules, err := h.services.Courses.ListModules(c.Request.Context(), courseID)
	if err != nil {
		logger.Error("list modules failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, modules)
}

type titleRequest struct {
	Title string `json:"title" binding:"required,min=1,max=256"`
}

// @Summary Add Course Module
// @Security AdminAuth
// @Tags Courses
// @Description Append a module at the end of the course
// @ModuleID addModule
// @Accept  json
// @Produce  json
// @Param id path string true "course id"
// @Param input body titleRequest true "module title"
// @Success 201 {object} domain.CourseModule
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 500
// @Router /courses/{id}/modules [post]
func (h *Handler) addModule(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, CourseNotFoundCode)
		return
	}

	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	module, err := h.services.Courses.AddModule(c.Request.Context(), courseID, req.Title)
	if err != nil {
		logger.Error("add module failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, module)
}

// @Summary Rename Module
// @Security AdminAuth
// @Tags Courses
// @ModuleID renameModule
// @Accept  json
// @Param id path string true "module id"
// @Param input body titleRequest true "new title"
// @Success 200
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500
// @Router /modules/{id} [patch]
func (h *Handler) renameModule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, ContentNotFoundCode)
		return
	}

	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Courses.RenameModule(c.Request.Context(), id, req.Title); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, ContentNotFoundCode)
			return
		}
		logger.Error("rename module failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// @Summary Remove Module
// @Security AdminAuth
// @Tags Courses
// @Description Remove a module; remaining siblings are re-numbered contiguously
// @ModuleID removeModule
// @Param id path string true "course id"
// @Param moduleId path string true "module id"
// @Success 200
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500
// @Router /courses/{id}/modules/{moduleId} [delete]
func (h *Handler) removeModule(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, CourseNotFoundCode)
		return
	}

	moduleID, err := uuid.Parse(c.Param("moduleId"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, ContentNotFoundCode)
		return
	}

	if err := h.services.Courses.RemoveModule(c.Request.Context(), courseID, moduleID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, ContentNotFoundCode)
			return
		}
		logger.Error("remove module failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

type reorderRequest struct {
	OrderedIDs []uuid.UUID `json:"ordered_ids" binding:"required,min=1"`
}

// @Summary Reorder Modules
// @Security AdminAuth
// @Tags Courses
// @Description Set a new ordering; the id list must match the course's modules exactly
// @ModuleID reorderModules
// @Accept  json
// @Param id path string true "course id"
// @Param input body reorderRequest true "ordered module ids"
// @Success 200
// @Failure 400 {object} ErrorStruct
// @Failure 401
// @Failure 500
// @Router /courses/{id}/modules/order [put]
func (h *Handler) reorderModules(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, CourseNotFoundCode)
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Courses.ReorderModules(c.Request.Context(), courseID, req.OrderedIDs); err != nil {
		if errors.Is(err, service.ErrOrderMismatch) {
			errorResponse(c, http.StatusBadRequest, OrderMismatchCode)
			return
		}
		logger.Error("reorder modules failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// @Summary List Module Sections
// @Security AdminAuth
// @Tags Courses
// @ModuleID listSections
// @Produce  json
// @Param id path string true "module id"
// @Success 200 {array} domain.CourseSection
// @Failure 401
// @Failure 500
// @Router /modules/{id}/sections [get]
func (h *Handler) listSections(c *gin.Context) {
	moduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, ContentNotFoundCode)
		return
	}

	sections, err := h.services.Courses.ListSections(c.Request.Context(), moduleID)
	if err != nil {
		logger.Error("list sections failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, sections)
}

// @Summary Add Section
// @Security AdminAuth
// @Tags Courses
// @Description Append a section at the end of the module
// @ModuleID addSection
// @Accept  json
// @Produce  json
// @Param id path string true "module id"
// @Param input body titleRequest true "section title"
// @Success 201 {object} domain.CourseSection
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 500
// @Router /modules/{id}/sections [post]
func (h *Handler) addSection(c *gin.Context) {
	moduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, ContentNotFoundCode)
		return
	}

	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	section, err := h.services.Courses.AddSection(c.Request.Context(), moduleID, req.Title)
	if err != nil {
		logger.Error("add section failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, section)
}

// @Summary Rename Section
// @Security AdminAuth
// @Tags Courses
// @ModuleID renameSection
// @Accept  json
// @Param id path string true "section id"
// @Param input body titleRequest true "new title"
// @Success 200
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500
// @Router /sections/{id} [patch]
func (h *Handler) renameSection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, ContentNotFoundCode)
		return
	}

	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Courses.RenameSection(c.Request.Context(), id, req.Title); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, ContentNotFoundCode)
			return
		}
		logger.Error("rename section failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// @Summary Remove Section
// @Security AdminAuth
// @Tags Courses
// @Description Remove a section; remaining siblings are re-numbered contiguously
// @ModuleID removeSection
// @Param id path string true "module id"
// @Param sectionId path string true "section id"
// @Success 200
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500
// @Router /modules/{id}/sections/{sectionId} [delete]
func (h *Handler) removeSection(c *gin.Context) {
	moduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, ContentNotFoundCode)
		return
	}

	sectionID, err := uuid.Parse(c.Param("sectionId"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, ContentNotFoundCode)
		return
	}

	if err := h.services.Courses.RemoveSection(c.Request.Context(), moduleID, sectionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, ContentNotFoundCode)
			return
		}
		logger.Error("remove section failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// @Summary Reorder Sections
// @Security AdminAuth
// @Tags Courses
// @ModuleID reorderSections
// @Accept  json
// @Param id path string true "module id"
// @Param input body reorderRequest true "ordered section ids"
// @Success 200
// @Failure 400 {object} ErrorStruct
// @Failure 401
// @Failure 500
// @Router /modules/{id}/sections/order [put]
func (h *Handler) reorderSections(c *gin.Context) {
	moduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, ContentNotFoundCode)
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Courses.ReorderSections(c.Request.Context(), moduleID, req.OrderedIDs); err != nil {
		if errors.Is(err, service.ErrOrderMismatch) {
			errorResponse(c, http.StatusBadRequest, OrderMismatchCode)
			return
		}
		logger.Error("reorder sections failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// @Summary List Lessons
// @Security AdminAuth
// @Tags Courses
// @ModuleID listLessons
// @Produce  json
// @Param id path string true "section id"
// @Success 200 {array} domain.Lesson
// @Failure 401
// @Failure 500
// @Router /sections/{id}/lessons [get]
func (h *Handler) listLessons(c *gin.Context) {
	sectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, ContentNotFoundCode)
		return
	}

	lessons, err := h.services.Courses.ListLessons(c.Request.Context(), sectionID)
	if err != nil {
		logger.Error("list lessons failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, lessons)
}

type addLessonRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=256"`
	VideoURL string `json:"video_url" binding:"omitempty,url"`
	Content  string `json:"content"`
}

// @Summary Add Lesson
// @Security AdminAuth
// @Tags Courses
// @Description Append a lesson at the end of the section
// @ModuleID addLesson
// @Accept  json
// @Produce  json
// @Param id path string true "section id"
// @Param input body addLessonRequest true "lesson details"
// @Success 201 {object} domain.Lesson
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 500
// @Router /sections/{id}/lessons [post]
func (h *Handler) addLesson(c *gin.Context) {
	sectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, ContentNotFoundCode)
		return
	}

	var req addLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	lesson, err := h.services.Courses.AddLesson(c.Request.Context(), sectionID, req.Title, req.VideoURL, req.Content)
	if err != nil {
		logger.Error("add lesson failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, lesson)
}

type updateLessonRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=256"`
	VideoURL string `json:"video_url" binding:"omitempty,url"`
	Content  string `json:"content"`
}

// @Summary Update Lesson
// @Security AdminAuth
// @Tags Courses
// @ModuleID updateLesson
// @Accept  json
// @Param id path string true "lesson id"
// @Param input body updateLessonRequest true "lesson details"
// @Success 200
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500
// @Router /lessons/{id} [put]
func (h *Handler) updateLesson(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, ContentNotFoundCode)
		return
	}

	var req updateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	lesson := &domain.Lesson{
		ID:       id,
		Title:    req.Title,
		VideoURL: req.VideoURL,
		Content:  req.Content,
	}

	if err := h.services.Courses.UpdateLesson(c.Request.Context(), lesson); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, ContentNotFoundCode)
			return
		}
		logger.Error("update lesson failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// @Summary Remove Lesson
// @Security AdminAuth
// @Tags Courses
// @Description Remove a lesson; remaining siblings are re-numbered contiguously
// @ModuleID removeLesson
// @Param id path string true "section id"
// @Param lessonId path string true "lesson id"
// @Success 200
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500
// @Router /sections/{id}/lessons/{lessonId} [delete]
func (h *Handler) removeLesson(c *gin.Context) {
	sectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, ContentNotFoundCode)
		return
	}

	lessonID, err := uuid.Parse(c.Param("lessonId"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, ContentNotFoundCode)
		return
	}

	if err := h.services.Courses.RemoveLesson(c.Request.Context(), sectionID, lessonID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, ContentNotFoundCode)
			return
		}
		logger.Error("remove lesson failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// @Summary Reorder Lessons
// @Security AdminAuth
// @Tags Courses
// @ModuleID reorderLessons
// @Accept  json
// @Param id path string true "section id"
// @Param input body reorderRequest true "ordered lesson ids"
// @Success 200
// @Failure 400 {object} ErrorStruct
// @Failure 401
// @Failure 500
// @Router /sections/{id}/lessons/order [put]
func (h *Handler) reorderLessons(c *gin.Context) {
	sectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, ContentNotFoundCode)
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Courses.ReorderLessons(c.Request.Context(), sectionID, req.OrderedIDs); err != nil {
		if errors.Is(err, service.ErrOrderMismatch) {
			errorResponse(c, http.StatusBadRequest, OrderMismatchCode)
			return
		}
		logger.Error("reorder lessons failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
