package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eakyurek/gradehub/internal/app/models"
	"github.com/eakyurek/gradehub/internal/pkg/apperrors"
)

func newEnrollmentFixture() (*EnrollmentService, *memStore) {
	m := newMemStore()
	svc := NewEnrollmentService(courseStore{m}, enrollmentStore{m})
	return svc, m
}

func TestEnrollmentService_Enroll(t *testing.T) {
	svc, m := newEnrollmentFixture()
	ctx := context.Background()

	owner := m.seedUser(models.RoleProfessor, "owner@school.edu")
	student := m.seedUser(models.RoleStudent, "student@school.edu")
	course := m.seedCourse("CS301", owner.ID)

	resp, err := svc.Enroll(ctx, principalFor(student), course.ID)
	assert.NoError(t, err)
	assert.Len(t, resp.EnrolledStudents, 1)
	assert.Equal(t, student.ID, resp.EnrolledStudents[0].ID)

	// Enrolling twice is reported, not silently accepted.
	_, err = svc.Enroll(ctx, principalFor(student), course.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
}

func TestEnrollmentService_Enroll_NonStudentsDenied(t *testing.T) {
	svc, m := newEnrollmentFixture()
	ctx := context.Background()

	admin := m.seedUser(models.RoleAdmin, "admin@school.edu")
	owner := m.seedUser(models.RoleProfessor, "owner@school.edu")
	course := m.seedCourse("CS301", owner.ID)

	// Nobody enrolls on a student's behalf, not even an admin.
	_, err := svc.Enroll(ctx, principalFor(admin), course.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.Enroll(ctx, principalFor(owner), course.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestEnrollmentService_Enroll_CourseMissing(t *testing.T) {
	svc, m := newEnrollmentFixture()
	ctx := context.Background()

	student := m.seedUser(models.RoleStudent, "student@school.edu")

	_, err := svc.Enroll(ctx, principalFor(student), 9999)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestEnrollmentService_Unenroll(t *testing.T) {
	svc, m := newEnrollmentFixture()
	ctx := context.Background()

	owner := m.seedUser(models.RoleProfessor, "owner@school.edu")
	student := m.seedUser(models.RoleStudent, "student@school.edu")
	course := m.seedCourse("CS301", owner.ID)

	// Leaving a course never joined is a conflict.
	_, err := svc.Unenroll(ctx, principalFor(student), course.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotEnrolled)

	_, err = svc.Enroll(ctx, principalFor(student), course.ID)
	assert.NoError(t, err)

	resp, err := svc.Unenroll(ctx, principalFor(student), course.ID)
	assert.NoError(t, err)
	assert.Empty(t, resp.EnrolledStudents)

	// Enroll again after leaving works.
	_, err = svc.Enroll(ctx, principalFor(student), course.ID)
	assert.NoError(t, err)
}
