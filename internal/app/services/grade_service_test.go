package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eakyurek/gradehub/internal/app/models"
	"github.com/eakyurek/gradehub/internal/app/models/dto"
	"github.com/eakyurek/gradehub/internal/pkg/apperrors"
)

type gradeFixture struct {
	grades      *GradeService
	enrollments *EnrollmentService
	store       *memStore
}

func newGradeFixture() gradeFixture {
	m := newMemStore()
	return gradeFixture{
		grades:      NewGradeService(gradeStore{m}, courseStore{m}, m, enrollmentStore{m}),
		enrollments: NewEnrollmentService(courseStore{m}, enrollmentStore{m}),
		store:       m,
	}
}

func TestGradeService_AssignOrUpdate_Authorization(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()

	admin := f.store.seedUser(models.RoleAdmin, "admin@school.edu")
	owner := f.store.seedUser(models.RoleProfessor, "owner@school.edu")
	other := f.store.seedUser(models.RoleProfessor, "other@school.edu")
	student := f.store.seedUser(models.RoleStudent, "student@school.edu")
	course := f.store.seedCourse("CS301", owner.ID)

	_, err := f.enrollments.Enroll(ctx, principalFor(student), course.ID)
	assert.NoError(t, err)

	req := dto.AssignGradeRequest{StudentID: student.ID, CourseID: course.ID, Value: "B+"}

	resp, err := f.grades.AssignOrUpdate(ctx, principalFor(owner), &req)
	assert.NoError(t, err)
	assert.Equal(t, "B+", resp.Value)
	assert.Equal(t, student.ID, resp.Student.ID)
	assert.Equal(t, owner.ID, resp.Assigner.ID)

	_, err = f.grades.AssignOrUpdate(ctx, principalFor(admin), &req)
	assert.NoError(t, err)

	_, err = f.grades.AssignOrUpdate(ctx, principalFor(other), &req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = f.grades.AssignOrUpdate(ctx, principalFor(student), &req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestGradeService_AssignOrUpdate_RequiresEnrollment(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()

	owner := f.store.seedUser(models.RoleProfessor, "owner@school.edu")
	student := f.store.seedUser(models.RoleStudent, "student@school.edu")
	course := f.store.seedCourse("CS301", owner.ID)

	// Authorized caller, unenrolled target: validation failure, not a
	// permission failure.
	_, err := f.grades.AssignOrUpdate(ctx, principalFor(owner), &dto.AssignGradeRequest{
		StudentID: student.ID, CourseID: course.ID, Value: "A",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestGradeService_AssignOrUpdate_TargetValidation(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()

	owner := f.store.seedUser(models.RoleProfessor, "owner@school.edu")
	other := f.store.seedUser(models.RoleProfessor, "other@school.edu")
	course := f.store.seedCourse("CS301", owner.ID)

	_, err := f.grades.AssignOrUpdate(ctx, principalFor(owner), &dto.AssignGradeRequest{
		StudentID: other.ID, CourseID: course.ID, Value: "A",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotAStudent)

	_, err = f.grades.AssignOrUpdate(ctx, principalFor(owner), &dto.AssignGradeRequest{
		StudentID: 9999, CourseID: course.ID, Value: "A",
	})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = f.grades.AssignOrUpdate(ctx, principalFor(owner), &dto.AssignGradeRequest{
		StudentID: owner.ID, CourseID: 9999, Value: "A",
	})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestGradeService_AssignOrUpdate_UpsertKeepsID(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()

	owner := f.store.seedUser(models.RoleProfessor, "owner@school.edu")
	student := f.store.seedUser(models.RoleStudent, "student@school.edu")
	course := f.store.seedCourse("CS301", owner.ID)

	_, err := f.enrollments.Enroll(ctx, principalFor(student), course.ID)
	assert.NoError(t, err)

	first, err := f.grades.AssignOrUpdate(ctx, principalFor(owner), &dto.AssignGradeRequest{
		StudentID: student.ID, CourseID: course.ID, Value: "C",
	})
	assert.NoError(t, err)

	second, err := f.grades.AssignOrUpdate(ctx, principalFor(owner), &dto.AssignGradeRequest{
		StudentID: student.ID, CourseID: course.ID, Value: "A",
	})
	assert.NoError(t, err)

	// Regrading replaces the row in place: same id, new value.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "A", second.Value)

	grades, err := f.grades.GetByCourse(ctx, principalFor(owner), course.ID)
	assert.NoError(t, err)
	assert.Len(t, grades, 1)
}

func TestGradeService_GetByStudent(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()

	admin := f.store.seedUser(models.RoleAdmin, "admin@school.edu")
	owner := f.store.seedUser(models.RoleProfessor, "owner@school.edu")
	student := f.store.seedUser(models.RoleStudent, "student@school.edu")
	classmate := f.store.seedUser(models.RoleStudent, "classmate@school.edu")
	course := f.store.seedCourse("CS301", owner.ID)

	_, err := f.enrollments.Enroll(ctx, principalFor(student), course.ID)
	assert.NoError(t, err)
	_, err = f.grades.AssignOrUpdate(ctx, principalFor(owner), &dto.AssignGradeRequest{
		StudentID: student.ID, CourseID: course.ID, Value: "A",
	})
	assert.NoError(t, err)

	grades, err := f.grades.GetByStudent(ctx, principalFor(student), student.ID)
	assert.NoError(t, err)
	assert.Len(t, grades, 1)

	grades, err = f.grades.GetByStudent(ctx, principalFor(admin), student.ID)
	assert.NoError(t, err)
	assert.Len(t, grades, 1)

	// Another student's transcript is off limits.
	_, err = f.grades.GetByStudent(ctx, principalFor(classmate), student.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// Professors read course sheets, never transcripts.
	_, err = f.grades.GetByStudent(ctx, principalFor(owner), student.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestGradeService_GetByCourse_Visibility(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()

	admin := f.store.seedUser(models.RoleAdmin, "admin@school.edu")
	owner := f.store.seedUser(models.RoleProfessor, "owner@school.edu")
	other := f.store.seedUser(models.RoleProfessor, "other@school.edu")
	student := f.store.seedUser(models.RoleStudent, "student@school.edu")
	classmate := f.store.seedUser(models.RoleStudent, "classmate@school.edu")
	outsider := f.store.seedUser(models.RoleStudent, "outsider@school.edu")
	course := f.store.seedCourse("CS301", owner.ID)

	for _, s := range []*models.User{student, classmate} {
		_, err := f.enrollments.Enroll(ctx, principalFor(s), course.ID)
		assert.NoError(t, err)
		_, err = f.grades.AssignOrUpdate(ctx, principalFor(owner), &dto.AssignGradeRequest{
			StudentID: s.ID, CourseID: course.ID, Value: "B",
		})
		assert.NoError(t, err)
	}

	// Admin and owner see the full sheet.
	grades, err := f.grades.GetByCourse(ctx, principalFor(admin), course.ID)
	assert.NoError(t, err)
	assert.Len(t, grades, 2)

	grades, err = f.grades.GetByCourse(ctx, principalFor(owner), course.ID)
	assert.NoError(t, err)
	assert.Len(t, grades, 2)

	// An enrolled student sees exactly their own row.
	grades, err = f.grades.GetByCourse(ctx, principalFor(student), course.ID)
	assert.NoError(t, err)
	assert.Len(t, grades, 1)
	assert.Equal(t, student.ID, grades[0].Student.ID)

	// Non-owning professors and unenrolled students are denied.
	_, err = f.grades.GetByCourse(ctx, principalFor(other), course.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = f.grades.GetByCourse(ctx, principalFor(outsider), course.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestGradeService_Delete(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()

	owner := f.store.seedUser(models.RoleProfessor, "owner@school.edu")
	other := f.store.seedUser(models.RoleProfessor, "other@school.edu")
	student := f.store.seedUser(models.RoleStudent, "student@school.edu")
	course := f.store.seedCourse("CS301", owner.ID)

	_, err := f.enrollments.Enroll(ctx, principalFor(student), course.ID)
	assert.NoError(t, err)
	grade, err := f.grades.AssignOrUpdate(ctx, principalFor(owner), &dto.AssignGradeRequest{
		StudentID: student.ID, CourseID: course.ID, Value: "A",
	})
	assert.NoError(t, err)

	err = f.grades.Delete(ctx, principalFor(other), grade.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = f.grades.Delete(ctx, principalFor(student), grade.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = f.grades.Delete(ctx, principalFor(owner), grade.ID)
	assert.NoError(t, err)

	err = f.grades.Delete(ctx, principalFor(owner), grade.ID)
	assert.ErrorIs(t, err, apperrors.ErrGradeNotFound)
}

// TestGradeService_CourseLifecycle walks a term end to end: creation,
// enrollment, grading, a regrade, the student's own view and the final
// cascade teardown.
func TestGradeService_CourseLifecycle(t *testing.T) {
	f := newGradeFixture()
	courses := NewCourseService(courseStore{f.store}, f.store, enrollmentStore{f.store})
	ctx := context.Background()

	admin := f.store.seedUser(models.RoleAdmin, "admin@school.edu")
	prof := f.store.seedUser(models.RoleProfessor, "prof@school.edu")
	alice := f.store.seedUser(models.RoleStudent, "alice@school.edu")
	bob := f.store.seedUser(models.RoleStudent, "bob@school.edu")

	created, err := courses.Create(ctx, principalFor(prof), &dto.CreateCourseRequest{
		Title: "Algorithms", Code: "CS301", ProfessorID: prof.ID,
	})
	assert.NoError(t, err)

	for _, s := range []*models.User{alice, bob} {
		_, err := f.enrollments.Enroll(ctx, principalFor(s), created.ID)
		assert.NoError(t, err)
	}

	aliceGrade, err := f.grades.AssignOrUpdate(ctx, principalFor(prof), &dto.AssignGradeRequest{
		StudentID: alice.ID, CourseID: created.ID, Value: "B",
	})
	assert.NoError(t, err)
	_, err = f.grades.AssignOrUpdate(ctx, principalFor(prof), &dto.AssignGradeRequest{
		StudentID: bob.ID, CourseID: created.ID, Value: "C",
	})
	assert.NoError(t, err)

	regraded, err := f.grades.AssignOrUpdate(ctx, principalFor(prof), &dto.AssignGradeRequest{
		StudentID: alice.ID, CourseID: created.ID, Value: "A",
	})
	assert.NoError(t, err)
	assert.Equal(t, aliceGrade.ID, regraded.ID)

	own, err := f.grades.GetByCourse(ctx, principalFor(alice), created.ID)
	assert.NoError(t, err)
	assert.Len(t, own, 1)
	assert.Equal(t, "A", own[0].Value)

	assert.NoError(t, courses.Delete(ctx, principalFor(admin), created.ID))

	transcript, err := f.grades.GetByStudent(ctx, principalFor(alice), alice.ID)
	assert.NoError(t, err)
	assert.Empty(t, transcript)
}
