package services

import (
	"context"

	"github.com/eakyurek/gradehub/internal/app/models"
	"github.com/eakyurek/gradehub/internal/app/models/dto"
	"github.com/eakyurek/gradehub/internal/app/policy"
	"github.com/eakyurek/gradehub/internal/pkg/apperrors"
	"github.com/eakyurek/gradehub/internal/pkg/logger"
)

// EnrollmentService handles course membership. Both operations are
// idempotent in effect but not in reporting: a duplicate enroll and an
// absent unenroll surface as conflicts instead of silent success.
type EnrollmentService struct {
	courses     CourseStore
	enrollments EnrollmentStore
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(courses CourseStore, enrollments EnrollmentStore) *EnrollmentService {
	return &EnrollmentService{
		courses:     courses,
		enrollments: enrollments,
	}
}

// Enroll adds the acting student to a course. Only students enroll, and only
// themselves; the course must exist before the membership write is attempted.
func (s *EnrollmentService) Enroll(ctx context.Context, principal policy.Principal, courseID int64) (*dto.CourseDetailResponse, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	decision := policy.Decide(principal, policy.ActionEnroll, policy.Resource{
		CourseOwnerID: course.ProfessorID,
		StudentID:     principal.ID,
	})
	if !decision.Allowed {
		return nil, apperrors.ErrPermissionDenied
	}

	if _, err := s.enrollments.Add(ctx, courseID, principal.ID); err != nil {
		return nil, err
	}

	logger.Info().Int64("courseId", courseID).Int64("studentId", principal.ID).Msg("Student enrolled")

	return s.detail(ctx, course)
}

// Unenroll removes the acting student from a course.
func (s *EnrollmentService) Unenroll(ctx context.Context, principal policy.Principal, courseID int64) (*dto.CourseDetailResponse, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	decision := policy.Decide(principal, policy.ActionUnenroll, policy.Resource{
		CourseOwnerID: course.ProfessorID,
		StudentID:     principal.ID,
	})
	if !decision.Allowed {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := s.enrollments.Remove(ctx, courseID, principal.ID); err != nil {
		return nil, err
	}

	logger.Info().Int64("courseId", courseID).Int64("studentId", principal.ID).Msg("Student unenrolled")

	return s.detail(ctx, course)
}

func (s *EnrollmentService) detail(ctx context.Context, course *models.Course) (*dto.CourseDetailResponse, error) {
	students, err := s.enrollments.ListStudentsByCourse(ctx, course.ID)
	if err != nil {
		return nil, err
	}

	roster := make([]dto.UserSummary, 0, len(students))
	for _, u := range students {
		roster = append(roster, *dto.SummaryFromUser(u))
	}

	return &dto.CourseDetailResponse{
		CourseResponse:   dto.FromCourse(course),
		EnrolledStudents: roster,
	}, nil
}
