package services

import (
	"github.com/eakyurek/gradehub/internal/app/repositories"
	"github.com/eakyurek/gradehub/internal/pkg/auth"
)

// Services holds all the service instances
type Services struct {
	AuthService       *AuthService
	UserService       *UserService
	CourseService     *CourseService
	EnrollmentService *EnrollmentService
	GradeService      *GradeService
}

// NewServices initializes all services from the repository container
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService) *Services {
	return &Services{
		AuthService: NewAuthService(repos.UserRepository, jwtService),
		UserService: NewUserService(repos.UserRepository),
		CourseService: NewCourseService(
			repos.CourseRepository,
			repos.UserRepository,
			repos.EnrollmentRepository,
		),
		EnrollmentService: NewEnrollmentService(
			repos.CourseRepository,
			repos.EnrollmentRepository,
		),
		GradeService: NewGradeService(
			repos.GradeRepository,
			repos.CourseRepository,
			repos.UserRepository,
			repos.EnrollmentRepository,
		),
	}
}
