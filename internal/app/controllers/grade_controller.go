package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eakyurek/gradehub/internal/app/models/dto"
	"github.com/eakyurek/gradehub/internal/app/services"
	"github.com/eakyurek/gradehub/internal/middleware"
)

// GradeController handles grade operations
type GradeController struct {
	gradeService *services.GradeService
}

// NewGradeController creates a new grade controller
func NewGradeController(gradeService *services.GradeService) *GradeController {
	return &GradeController{gradeService: gradeService}
}

// Assign creates or updates a grade
// @Summary Assign grade
// @Description Writes a grade for an enrolled student. Re-grading the same student and course replaces the existing grade. Permitted for admins and the owning professor.
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AssignGradeRequest true "Grade details"
// @Success 200 {object} dto.APIResponse{data=dto.GradeResponse} "Grade assigned"
// @Failure 400 {object} dto.ErrorResponse "Student not enrolled in the course"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Course or student not found"
// @Router /grades [post]
func (c *GradeController) Assign(ctx *gin.Context) {
	principal, ok := middleware.Principal(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	var req dto.AssignGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	grade, err := c.gradeService.AssignOrUpdate(ctx.Request.Context(), principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grade))
}

// GetByStudent lists a student's grades across courses
// @Summary Get grades by student
// @Description Retrieves every grade of a student. Admins see any transcript; a student only their own.
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.GradeResponse} "Grades retrieved"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /grades/student/{studentId} [get]
func (c *GradeController) GetByStudent(ctx *gin.Context) {
	principal, ok := middleware.Principal(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	studentID, ok := idParam(ctx, "studentId")
	if !ok {
		return
	}

	grades, err := c.gradeService.GetByStudent(ctx.Request.Context(), principal, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grades))
}

// GetByCourse lists the grades of a course
// @Summary Get grades by course
// @Description Retrieves the grade sheet of a course. Admins and the owning professor see all rows; an enrolled student only their own.
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.GradeResponse} "Grades retrieved"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /grades/course/{courseId} [get]
func (c *GradeController) GetByCourse(ctx *gin.Context) {
	principal, ok := middleware.Principal(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	courseID, ok := idParam(ctx, "courseId")
	if !ok {
		return
	}

	grades, err := c.gradeService.GetByCourse(ctx.Request.Context(), principal, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grades))
}

// Delete removes a grade
// @Summary Delete grade
// @Description Deletes a grade. Permitted for admins and the professor owning the graded course.
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Grade deleted"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /grades/{id} [delete]
func (c *GradeController) Delete(ctx *gin.Context) {
	principal, ok := middleware.Principal(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.gradeService.Delete(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Grade deleted"}))
}
