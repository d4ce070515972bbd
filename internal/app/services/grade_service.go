package services

import (
	"context"
	"errors"

	"github.com/eakyurek/gradehub/internal/app/models"
	"github.com/eakyurek/gradehub/internal/app/models/dto"
	"github.com/eakyurek/gradehub/internal/app/policy"
	"github.com/eakyurek/gradehub/internal/pkg/apperrors"
	"github.com/eakyurek/gradehub/internal/pkg/logger"
)

// GradeService handles the grade ledger. A grade is keyed on the
// (student, course) pair: assigning twice updates the existing row in place.
type GradeService struct {
	grades      GradeStore
	courses     CourseStore
	users       UserStore
	enrollments EnrollmentStore
}

// NewGradeService creates a new grade service
func NewGradeService(grades GradeStore, courses CourseStore, users UserStore, enrollments EnrollmentStore) *GradeService {
	return &GradeService{
		grades:      grades,
		courses:     courses,
		users:       users,
		enrollments: enrollments,
	}
}

// AssignOrUpdate writes a grade for an enrolled student, creating or
// replacing the (student, course) row. The enrollment requirement is checked
// by the store transactionally with the write; an unenrolled target is a
// validation failure even when the caller is fully authorized.
func (s *GradeService) AssignOrUpdate(ctx context.Context, principal policy.Principal, req *dto.AssignGradeRequest) (*dto.GradeResponse, error) {
	course, err := s.courses.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	student, err := s.users.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if student.RoleType != models.RoleStudent {
		return nil, apperrors.ErrNotAStudent
	}

	decision := policy.Decide(principal, policy.ActionAssignGrade, policy.Resource{
		CourseOwnerID: course.ProfessorID,
		StudentID:     student.ID,
	})
	if !decision.Allowed {
		return nil, apperrors.ErrPermissionDenied
	}

	grade := &models.Grade{
		StudentID:  student.ID,
		CourseID:   course.ID,
		Value:      req.Value,
		AssignedBy: principal.ID,
	}
	if err := s.grades.UpsertEnrolled(ctx, grade); err != nil {
		if errors.Is(err, apperrors.ErrNotEnrolled) {
			return nil, apperrors.NewBadRequestError("student is not enrolled in the course")
		}
		return nil, err
	}

	logger.Info().
		Int64("gradeId", grade.ID).
		Int64("studentId", student.ID).
		Int64("courseId", course.ID).
		Msg("Grade assigned")

	assigner, err := s.users.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	grade.Student = student
	grade.Course = course
	grade.Assigner = assigner

	resp := dto.FromGrade(grade)
	return &resp, nil
}

// GetByStudent lists every grade of a student across courses. Admins see any
// transcript; a student sees only their own.
func (s *GradeService) GetByStudent(ctx context.Context, principal policy.Principal, studentID int64) ([]dto.GradeResponse, error) {
	decision := policy.Decide(principal, policy.ActionReadGradesOfStudent, policy.Resource{StudentID: studentID})
	if !decision.Allowed {
		return nil, apperrors.ErrPermissionDenied
	}

	if _, err := s.users.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	grades, err := s.grades.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.FromGrades(grades), nil
}

// GetByCourse lists the grades of a course. Admins and the owning professor
// see the full sheet; an enrolled student sees only their own row.
func (s *GradeService) GetByCourse(ctx context.Context, principal policy.Principal, courseID int64) ([]dto.GradeResponse, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	resource := policy.Resource{CourseOwnerID: course.ProfessorID}
	if principal.Role == models.RoleStudent {
		enrolled, err := s.enrollments.IsEnrolled(ctx, courseID, principal.ID)
		if err != nil {
			return nil, err
		}
		resource.PrincipalEnrolled = enrolled
	}

	decision := policy.Decide(principal, policy.ActionReadGradesOfCourse, resource)
	if !decision.Allowed {
		return nil, apperrors.ErrPermissionDenied
	}

	var onlyStudentID *int64
	if decision.SelfOnly {
		onlyStudentID = &principal.ID
	}

	grades, err := s.grades.ListByCourse(ctx, courseID, onlyStudentID)
	if err != nil {
		return nil, err
	}
	return dto.FromGrades(grades), nil
}

// Delete removes a grade. Permitted for admins and the professor owning the
// graded course.
func (s *GradeService) Delete(ctx context.Context, principal policy.Principal, gradeID int64) error {
	grade, err := s.grades.GetByID(ctx, gradeID)
	if err != nil {
		return err
	}

	course, err := s.courses.GetByID(ctx, grade.CourseID)
	if err != nil {
		return err
	}

	decision := policy.Decide(principal, policy.ActionDeleteGrade, policy.Resource{
		CourseOwnerID: course.ProfessorID,
		StudentID:     grade.StudentID,
	})
	if !decision.Allowed {
		return apperrors.ErrPermissionDenied
	}

	if err := s.grades.Delete(ctx, gradeID); err != nil {
		return err
	}

	logger.Info().Int64("gradeId", gradeID).Msg("Grade deleted")
	return nil
}
