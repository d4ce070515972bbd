package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eakyurek/gradehub/internal/app/models"
	"github.com/eakyurek/gradehub/internal/app/models/dto"
	"github.com/eakyurek/gradehub/internal/app/policy"
	"github.com/eakyurek/gradehub/internal/pkg/apperrors"
)

func newCourseFixture() (*CourseService, *memStore) {
	m := newMemStore()
	svc := NewCourseService(courseStore{m}, m, enrollmentStore{m})
	return svc, m
}

func principalFor(u *models.User) policy.Principal {
	return policy.Principal{ID: u.ID, Role: u.RoleType}
}

func strPtr(s string) *string { return &s }

func TestCourseService_Create(t *testing.T) {
	svc, m := newCourseFixture()
	ctx := context.Background()

	admin := m.seedUser(models.RoleAdmin, "admin@school.edu")
	profA := m.seedUser(models.RoleProfessor, "prof.a@school.edu")
	profB := m.seedUser(models.RoleProfessor, "prof.b@school.edu")
	student := m.seedUser(models.RoleStudent, "student@school.edu")

	tests := []struct {
		name      string
		principal policy.Principal
		req       dto.CreateCourseRequest
		wantErr   error
	}{
		{
			name:      "admin creates for any professor",
			principal: principalFor(admin),
			req:       dto.CreateCourseRequest{Title: "Algorithms", Code: "CS301", ProfessorID: profA.ID},
		},
		{
			name:      "professor creates for themself",
			principal: principalFor(profA),
			req:       dto.CreateCourseRequest{Title: "Compilers", Code: "CS402", ProfessorID: profA.ID},
		},
		{
			name:      "professor cannot create for a colleague",
			principal: principalFor(profA),
			req:       dto.CreateCourseRequest{Title: "Databases", Code: "CS305", ProfessorID: profB.ID},
			wantErr:   apperrors.ErrPermissionDenied,
		},
		{
			name:      "student cannot create",
			principal: principalFor(student),
			req:       dto.CreateCourseRequest{Title: "Networks", Code: "CS340", ProfessorID: profA.ID},
			wantErr:   apperrors.ErrPermissionDenied,
		},
		{
			name:      "owner must hold the professor role",
			principal: principalFor(admin),
			req:       dto.CreateCourseRequest{Title: "Ethics", Code: "PH101", ProfessorID: student.ID},
			wantErr:   apperrors.ErrNotAProfessor,
		},
		{
			name:      "owner must exist",
			principal: principalFor(admin),
			req:       dto.CreateCourseRequest{Title: "Ethics", Code: "PH102", ProfessorID: 9999},
			wantErr:   apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Create(ctx, tt.principal, &tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.req.Code, resp.Code)
			assert.Equal(t, tt.req.ProfessorID, resp.Professor.ID)
		})
	}
}

func TestCourseService_Create_DuplicateCode(t *testing.T) {
	svc, m := newCourseFixture()
	ctx := context.Background()

	admin := m.seedUser(models.RoleAdmin, "admin@school.edu")
	prof := m.seedUser(models.RoleProfessor, "prof@school.edu")

	_, err := svc.Create(ctx, principalFor(admin), &dto.CreateCourseRequest{
		Title: "Algorithms", Code: "CS301", ProfessorID: prof.ID,
	})
	assert.NoError(t, err)

	_, err = svc.Create(ctx, principalFor(admin), &dto.CreateCourseRequest{
		Title: "Algorithms II", Code: "CS301", ProfessorID: prof.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrCourseCodeExists)
}

func TestCourseService_Update(t *testing.T) {
	svc, m := newCourseFixture()
	ctx := context.Background()

	admin := m.seedUser(models.RoleAdmin, "admin@school.edu")
	owner := m.seedUser(models.RoleProfessor, "owner@school.edu")
	other := m.seedUser(models.RoleProfessor, "other@school.edu")
	student := m.seedUser(models.RoleStudent, "student@school.edu")
	course := m.seedCourse("CS301", owner.ID)

	resp, err := svc.Update(ctx, principalFor(owner), course.ID, &dto.UpdateCourseRequest{Title: strPtr("Advanced Algorithms")})
	assert.NoError(t, err)
	assert.Equal(t, "Advanced Algorithms", resp.Title)
	assert.Equal(t, "CS301", resp.Code)

	resp, err = svc.Update(ctx, principalFor(admin), course.ID, &dto.UpdateCourseRequest{Code: strPtr("CS401")})
	assert.NoError(t, err)
	assert.Equal(t, "CS401", resp.Code)

	_, err = svc.Update(ctx, principalFor(other), course.ID, &dto.UpdateCourseRequest{Title: strPtr("Hijacked")})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.Update(ctx, principalFor(student), course.ID, &dto.UpdateCourseRequest{Title: strPtr("Hijacked")})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.Update(ctx, principalFor(admin), 9999, &dto.UpdateCourseRequest{Title: strPtr("Ghost")})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestCourseService_GetByID_IncludesRoster(t *testing.T) {
	svc, m := newCourseFixture()
	ctx := context.Background()

	owner := m.seedUser(models.RoleProfessor, "owner@school.edu")
	student := m.seedUser(models.RoleStudent, "student@school.edu")
	course := m.seedCourse("CS301", owner.ID)

	_, err := enrollmentStore{m}.Add(ctx, course.ID, student.ID)
	assert.NoError(t, err)

	resp, err := svc.GetByID(ctx, principalFor(student), course.ID)
	assert.NoError(t, err)
	assert.Len(t, resp.EnrolledStudents, 1)
	assert.Equal(t, student.ID, resp.EnrolledStudents[0].ID)
}

func TestCourseService_Delete_Cascades(t *testing.T) {
	svc, m := newCourseFixture()
	ctx := context.Background()

	owner := m.seedUser(models.RoleProfessor, "owner@school.edu")
	other := m.seedUser(models.RoleProfessor, "other@school.edu")
	student := m.seedUser(models.RoleStudent, "student@school.edu")
	course := m.seedCourse("CS301", owner.ID)
	keep := m.seedCourse("CS999", other.ID)

	enrollments := enrollmentStore{m}
	grades := gradeStore{m}
	_, err := enrollments.Add(ctx, course.ID, student.ID)
	assert.NoError(t, err)
	_, err = enrollments.Add(ctx, keep.ID, student.ID)
	assert.NoError(t, err)

	doomed := &models.Grade{StudentID: student.ID, CourseID: course.ID, Value: "A", AssignedBy: owner.ID}
	assert.NoError(t, grades.UpsertEnrolled(ctx, doomed))
	surviving := &models.Grade{StudentID: student.ID, CourseID: keep.ID, Value: "B", AssignedBy: other.ID}
	assert.NoError(t, grades.UpsertEnrolled(ctx, surviving))

	err = svc.Delete(ctx, principalFor(other), course.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.Delete(ctx, principalFor(owner), course.ID)
	assert.NoError(t, err)

	_, err = courseStore{m}.GetByID(ctx, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	_, err = grades.GetByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, apperrors.ErrGradeNotFound)

	enrolled, err := enrollments.IsEnrolled(ctx, course.ID, student.ID)
	assert.NoError(t, err)
	assert.False(t, enrolled)

	// Unrelated course data survives the cascade.
	_, err = grades.GetByID(ctx, surviving.ID)
	assert.NoError(t, err)
	enrolled, err = enrollments.IsEnrolled(ctx, keep.ID, student.ID)
	assert.NoError(t, err)
	assert.True(t, enrolled)

	err = svc.Delete(ctx, principalFor(owner), course.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}
