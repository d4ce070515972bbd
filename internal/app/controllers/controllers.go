package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eakyurek/gradehub/internal/app/models/dto"
	"github.com/eakyurek/gradehub/internal/app/services"
)

// Controllers holds all the controller instances
type Controllers struct {
	AuthController   *AuthController
	UserController   *UserController
	CourseController *CourseController
	GradeController  *GradeController
}

// NewControllers initializes all controllers from the service container
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		AuthController:   NewAuthController(svcs.AuthService),
		UserController:   NewUserController(svcs.UserService),
		CourseController: NewCourseController(svcs.CourseService, svcs.EnrollmentService),
		GradeController:  NewGradeController(svcs.GradeService),
	}
}

// idParam parses a positive int64 path parameter. On failure it writes the
// 400 response and returns false.
func idParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// bindError writes the 400 response for a request body that failed binding.
func bindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}

// unauthenticated writes the 401 response for routes reached without a
// principal in context.
func unauthenticated(ctx *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
