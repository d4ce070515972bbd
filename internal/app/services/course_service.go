package services

import (
	"context"

	"github.com/eakyurek/gradehub/internal/app/models"
	"github.com/eakyurek/gradehub/internal/app/models/dto"
	"github.com/eakyurek/gradehub/internal/app/policy"
	"github.com/eakyurek/gradehub/internal/pkg/apperrors"
	"github.com/eakyurek/gradehub/internal/pkg/logger"
)

// CourseService handles the course lifecycle. Mutating operations load the
// current row first so the policy decision is made against stored ownership,
// never against request payload.
type CourseService struct {
	courses     CourseStore
	users       UserStore
	enrollments EnrollmentStore
}

// NewCourseService creates a new course service
func NewCourseService(courses CourseStore, users UserStore, enrollments EnrollmentStore) *CourseService {
	return &CourseService{
		courses:     courses,
		users:       users,
		enrollments: enrollments,
	}
}

// Create creates a course owned by the professor named in the request. The
// target user must exist and hold the PROFESSOR role before the policy check
// runs, so an admin pointing at a student gets a validation error rather
// than a row with a non-professor owner.
func (s *CourseService) Create(ctx context.Context, principal policy.Principal, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	owner, err := s.users.GetByID(ctx, req.ProfessorID)
	if err != nil {
		return nil, err
	}
	if owner.RoleType != models.RoleProfessor {
		return nil, apperrors.ErrNotAProfessor
	}

	decision := policy.Decide(principal, policy.ActionCreateCourse, policy.Resource{CourseOwnerID: owner.ID})
	if !decision.Allowed {
		return nil, apperrors.ErrPermissionDenied
	}

	course := &models.Course{
		Title:       req.Title,
		Code:        req.Code,
		Description: req.Description,
		ProfessorID: owner.ID,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	course.Professor = owner

	logger.Info().Int64("courseId", course.ID).Str("code", course.Code).Msg("Course created")

	resp := dto.FromCourse(course)
	return &resp, nil
}

// GetAll lists all courses. Visible to every authenticated role.
func (s *CourseService) GetAll(ctx context.Context, principal policy.Principal) ([]dto.CourseResponse, error) {
	decision := policy.Decide(principal, policy.ActionReadCourse, policy.Resource{})
	if !decision.Allowed {
		return nil, apperrors.ErrPermissionDenied
	}

	courses, err := s.courses.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, dto.FromCourse(c))
	}
	return out, nil
}

// GetByID retrieves a course with its enrolled-student roster.
func (s *CourseService) GetByID(ctx context.Context, principal policy.Principal, id int64) (*dto.CourseDetailResponse, error) {
	decision := policy.Decide(principal, policy.ActionReadCourse, policy.Resource{})
	if !decision.Allowed {
		return nil, apperrors.ErrPermissionDenied
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	students, err := s.enrollments.ListStudentsByCourse(ctx, id)
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

// Update applies a partial update to a course. Permitted for admins and the
// owning professor.
func (s *CourseService) Update(ctx context.Context, principal policy.Principal, id int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	decision := policy.Decide(principal, policy.ActionUpdateCourse, policy.Resource{CourseOwnerID: course.ProfessorID})
	if !decision.Allowed {
		return nil, apperrors.ErrPermissionDenied
	}

	updated, err := s.courses.Update(ctx, id, models.CoursePatch{
		Title:       req.Title,
		Code:        req.Code,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	resp := dto.FromCourse(updated)
	return &resp, nil
}

// Delete removes a course together with its enrollments and grades.
func (s *CourseService) Delete(ctx context.Context, principal policy.Principal, id int64) error {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return err
	}

	decision := policy.Decide(principal, policy.ActionDeleteCourse, policy.Resource{CourseOwnerID: course.ProfessorID})
	if !decision.Allowed {
		return apperrors.ErrPermissionDenied
	}

	if err := s.courses.DeleteCascade(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("courseId", id).Str("code", course.Code).Msg("Course deleted with enrollments and grades")
	return nil
}
