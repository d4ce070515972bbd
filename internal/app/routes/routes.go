package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eakyurek/gradehub/internal/app/controllers"
	"github.com/eakyurek/gradehub/internal/app/models"
	"github.com/eakyurek/gradehub/internal/app/models/dto"
	"github.com/eakyurek/gradehub/internal/middleware"
)

// SetupRouter configures all application routes. Route-level role gates only
// cover the coarse cases (admin-only user management); the relationship
// rules for courses, enrollments and grades are decided inside the services.
func SetupRouter(
	router *gin.Engine,
	ctrls *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrls.AuthController.Register)
		auth.POST("/login", ctrls.AuthController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", ctrls.AuthController.Me)

		// User management (admin only)
		users := authenticated.Group("/users")
		users.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			users.GET("", ctrls.UserController.GetAll)
			users.GET("/:id", ctrls.UserController.GetByID)
			users.PUT("/:id", ctrls.UserController.Update)
			users.DELETE("/:id", ctrls.UserController.Delete)
		}

		// Course routes
		courses := authenticated.Group("/courses")
		{
			courses.GET("", ctrls.CourseController.GetAll)
			courses.GET("/:id", ctrls.CourseController.GetByID)
			courses.POST("", ctrls.CourseController.Create)
			courses.PUT("/:id", ctrls.CourseController.Update)
			courses.DELETE("/:id", ctrls.CourseController.Delete)

			// Enrollment is scoped to the authenticated student
			courses.POST("/:id/enroll", ctrls.CourseController.Enroll)
			courses.DELETE("/:id/enroll", ctrls.CourseController.Unenroll)
		}

		// Grade routes
		grades := authenticated.Group("/grades")
		{
			grades.POST("", ctrls.GradeController.Assign)
			grades.GET("/student/:studentId", ctrls.GradeController.GetByStudent)
			grades.GET("/course/:courseId", ctrls.GradeController.GetByCourse)
			grades.DELETE("/:id", ctrls.GradeController.Delete)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})
}
