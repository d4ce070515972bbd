package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eakyurek/gradehub/internal/app/models/dto"
	"github.com/eakyurek/gradehub/internal/app/services"
	"github.com/eakyurek/gradehub/internal/middleware"
)

// CourseController handles course and enrollment operations
type CourseController struct {
	courseService     *services.CourseService
	enrollmentService *services.EnrollmentService
}

// NewCourseController creates a new course controller
func NewCourseController(courseService *services.CourseService, enrollmentService *services.EnrollmentService) *CourseController {
	return &CourseController{
		courseService:     courseService,
		enrollmentService: enrollmentService,
	}
}

// Create creates a new course
// @Summary Create course
// @Description Creates a course owned by the named professor. Admins may name any professor; professors only themselves.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course details"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 409 {object} dto.ErrorResponse "Course code already in use"
// @Router /courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	principal, ok := middleware.Principal(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	course, err := c.courseService.Create(ctx.Request.Context(), principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course))
}

// GetAll lists all courses
// @Summary List courses
// @Description Retrieves all courses. Visible to every authenticated role.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /courses [get]
func (c *CourseController) GetAll(ctx *gin.Context) {
	principal, ok := middleware.Principal(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	courses, err := c.courseService.GetAll(ctx.Request.Context(), principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// GetByID retrieves a course with its roster
// @Summary Get course by ID
// @Description Retrieves a course together with its enrolled students
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailResponse} "Course retrieved"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetByID(ctx *gin.Context) {
	principal, ok := middleware.Principal(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetByID(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// Update applies a partial update to a course
// @Summary Update course
// @Description Updates the supplied fields. Permitted for admins and the owning professor.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Param request body dto.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course updated"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course code already in use"
// @Router /courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	principal, ok := middleware.Principal(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	course, err := c.courseService.Update(ctx.Request.Context(), principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// Delete removes a course with its enrollments and grades
// @Summary Delete course
// @Description Deletes a course and cascades to its enrollments and grades. Permitted for admins and the owning professor.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course deleted"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	principal, ok := middleware.Principal(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.Delete(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Course deleted"}))
}

// Enroll adds the authenticated student to a course
// @Summary Enroll in course
// @Description Enrolls the authenticated student into the course. Students only.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailResponse} "Enrolled"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Router /courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	principal, ok := middleware.Principal(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.enrollmentService.Enroll(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// Unenroll removes the authenticated student from a course
// @Summary Unenroll from course
// @Description Removes the authenticated student from the course. Students only.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailResponse} "Unenrolled"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Not enrolled"
// @Router /courses/{id}/enroll [delete]
func (c *CourseController) Unenroll(ctx *gin.Context) {
	principal, ok := middleware.Principal(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.enrollmentService.Unenroll(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}
