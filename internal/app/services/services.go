// Package services holds the business logic. Every course, enrollment and
// grade operation takes the acting principal as an explicit parameter and
// consults policy.Decide before touching state; a denial returns the opaque
// apperrors.ErrPermissionDenied without revealing which rule fired.
package services

import (
	"context"

	"github.com/eakyurek/gradehub/internal/app/models"
)

// UserStore is the persistence contract for users.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// CourseStore is the persistence contract for courses.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	Update(ctx context.Context, id int64, patch models.CoursePatch) (*models.Course, error)
	DeleteCascade(ctx context.Context, id int64) error
}

// EnrollmentStore is the persistence contract for the membership relation.
// Add and Remove are atomic check-and-write operations; duplicate adds and
// absent removes are reported by the store, not re-checked here.
type EnrollmentStore interface {
	Add(ctx context.Context, courseID, studentID int64) (*models.Enrollment, error)
	Remove(ctx context.Context, courseID, studentID int64) error
	IsEnrolled(ctx context.Context, courseID, studentID int64) (bool, error)
	ListStudentsByCourse(ctx context.Context, courseID int64) ([]*models.User, error)
}

// GradeStore is the persistence contract for grades. UpsertEnrolled verifies
// membership transactionally with the write and keeps the grade id stable
// across updates of the same (student, course) pair.
type GradeStore interface {
	UpsertEnrolled(ctx context.Context, grade *models.Grade) error
	GetByID(ctx context.Context, id int64) (*models.Grade, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Grade, error)
	ListByCourse(ctx context.Context, courseID int64, onlyStudentID *int64) ([]*models.Grade, error)
	Delete(ctx context.Context, id int64) error
}
