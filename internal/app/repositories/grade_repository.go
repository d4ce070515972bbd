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
)

// GradeRepository handles database operations for grades
type GradeRepository struct {
	db *pgxpool.Pool
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{db: db}
}

// UpsertEnrolled writes a grade for an enrolled student. The statement is a
// single conditional insert: the enrollment check, the one-grade-per-pair
// constraint and the write all happen atomically in the database. If the
// student is not currently enrolled no row is touched and ErrNotEnrolled is
// returned. Existing grades keep their id across updates.
func (r *GradeRepository) UpsertEnrolled(ctx context.Context, grade *models.Grade) error {
	query := `
		INSERT INTO grades (student_id, course_id, value, assigned_by, assigned_at)
		SELECT $1, $2, $3, $4, now()
		WHERE EXISTS (
			SELECT 1 FROM enrollments
			WHERE course_id = $2 AND student_id = $1
		)
		ON CONFLICT ON CONSTRAINT grades_student_course_key
		DO UPDATE SET
			value = EXCLUDED.value,
			assigned_by = EXCLUDED.assigned_by,
			assigned_at = EXCLUDED.assigned_at
		RETURNING id, assigned_at
	`

	err := r.db.QueryRow(ctx, query,
		grade.StudentID, grade.CourseID, grade.Value, grade.AssignedBy,
	).Scan(&grade.ID, &grade.AssignedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotEnrolled
		}
		return fmt.Errorf("error upserting grade: %w", err)
	}

	return nil
}

// GetByID retrieves a grade by ID
func (r *GradeRepository) GetByID(ctx context.Context, id int64) (*models.Grade, error) {
	query := `
		SELECT id, student_id, course_id, value, assigned_by, assigned_at
		FROM grades
		WHERE id = $1
	`

	var g models.Grade
	err := r.db.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.StudentID, &g.CourseID, &g.Value, &g.AssignedBy, &g.AssignedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGradeNotFound
		}
		return nil, fmt.Errorf("error retrieving grade: %w", err)
	}

	return &g, nil
}

func gradeListQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"g.id", "g.student_id", "g.course_id", "g.value", "g.assigned_by", "g.assigned_at",
		"s.id", "s.email", "s.first_name", "s.last_name", "s.role_type",
		"c.id", "c.title", "c.code",
		"a.id", "a.email", "a.first_name", "a.last_name", "a.role_type",
	).
		From("grades g").
		Join("users s ON s.id = g.student_id").
		Join("courses c ON c.id = g.course_id").
		Join("users a ON a.id = g.assigned_by").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *GradeRepository) queryGrades(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Grade, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing grades: %w", err)
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		var g models.Grade
		var student, assigner models.User
		var course models.Course
		err := rows.Scan(
			&g.ID, &g.StudentID, &g.CourseID, &g.Value, &g.AssignedBy, &g.AssignedAt,
			&student.ID, &student.Email, &student.FirstName, &student.LastName, &student.RoleType,
			&course.ID, &course.Title, &course.Code,
			&assigner.ID, &assigner.Email, &assigner.FirstName, &assigner.LastName, &assigner.RoleType,
		)
		if err != nil {
			return nil, err
		}
		g.Student = &student
		g.Course = &course
		g.Assigner = &assigner
		grades = append(grades, &g)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grades, nil
}

// ListByStudent retrieves all grades of a student across courses
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Grade, error) {
	return r.queryGrades(ctx, gradeListQuery().
		Where("g.student_id = ?", studentID).
		OrderBy("g.assigned_at DESC"))
}

// ListByCourse retrieves grades of a course. When onlyStudentID is non-nil
// the result is narrowed to that single student's row.
func (r *GradeRepository) ListByCourse(ctx context.Context, courseID int64, onlyStudentID *int64) ([]*models.Grade, error) {
	query := gradeListQuery().
		Where("g.course_id = ?", courseID).
		OrderBy("s.last_name", "s.first_name")
	if onlyStudentID != nil {
		query = query.Where("g.student_id = ?", *onlyStudentID)
	}
	return r.queryGrades(ctx, query)
}

// Delete deletes a grade by ID
func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting grade: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}

	return nil
}
