package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eakyurek/gradehub/internal/app/models"
	"github.com/eakyurek/gradehub/internal/pkg/apperrors"
	"github.com/eakyurek/gradehub/internal/pkg/dberrors"
)

// EnrollmentRepository handles database operations for the (student, course)
// membership relation.
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Add enrolls a student into a course. The membership check and the write
// are one atomic insert: a concurrent duplicate loses on the
// enrollments_course_student_key constraint instead of racing a
// check-then-write.
func (r *EnrollmentRepository) Add(ctx context.Context, courseID, studentID int64) (*models.Enrollment, error) {
	query := squirrel.Insert("enrollments").
		Columns("course_id", "student_id").
		Values(courseID, studentID).
		Suffix("RETURNING id, enrolled_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	enrollment := &models.Enrollment{CourseID: courseID, StudentID: studentID}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&enrollment.ID, &enrollment.EnrolledAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_course_student_key") {
			return nil, apperrors.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}

	return enrollment, nil
}

// Remove unenrolls a student from a course. Removing an absent membership is
// reported, not silently accepted.
func (r *EnrollmentRepository) Remove(ctx context.Context, courseID, studentID int64) error {
	query := squirrel.Delete("enrollments").
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotEnrolled
	}

	return nil
}

// IsEnrolled checks if a student is currently a member of a course
func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, courseID, studentID int64) (bool, error) {
	query := squirrel.Select("1").
		From("enrollments").
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}

	return true, nil
}

// ListStudentsByCourse retrieves the enrolled students of a course, oldest
// enrollment first.
func (r *EnrollmentRepository) ListStudentsByCourse(ctx context.Context, courseID int64) ([]*models.User, error) {
	query := squirrel.Select("u.id", "u.email", "u.first_name", "u.last_name", "u.role_type").
		From("enrollments e").
		Join("users u ON u.id = e.student_id").
		Where("e.course_id = ?", courseID).
		OrderBy("e.enrolled_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing enrolled students: %w", err)
	}
	defer rows.Close()

	var students []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.RoleType); err != nil {
			return nil, err
		}
		students = append(students, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
