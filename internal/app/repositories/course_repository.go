package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/eakyurek/gradehub/internal/app/models"
	"github.com/eakyurek/gradehub/internal/db"
	"github.com/eakyurek/gradehub/internal/pkg/apperrors"
	"github.com/eakyurek/gradehub/internal/pkg/dberrors"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	database *db.PostgresDB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(database *db.PostgresDB) *CourseRepository {
	return &CourseRepository{database: database}
}

// Create inserts a new course. Code uniqueness is enforced by the
// courses_code_key constraint so concurrent creates cannot both succeed.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (title, code, description, professor_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.database.Pool.QueryRow(ctx, query,
		course.Title, course.Code, course.Description, course.ProfessorID,
	).Scan(&course.ID, &course.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return apperrors.ErrCourseCodeExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

const courseSelect = `
	SELECT c.id, c.title, c.code, c.description, c.professor_id, c.created_at,
	       u.id, u.email, u.first_name, u.last_name, u.role_type
	FROM courses c
	JOIN users u ON u.id = c.professor_id
`

func scanCourseWithProfessor(row pgx.Row) (*models.Course, error) {
	var c models.Course
	var p models.User
	err := row.Scan(
		&c.ID, &c.Title, &c.Code, &c.Description, &c.ProfessorID, &c.CreatedAt,
		&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.RoleType,
	)
	if err != nil {
		return nil, err
	}
	c.Professor = &p
	return &c, nil
}

// GetByID retrieves a course by ID with its owning professor populated
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := scanCourseWithProfessor(r.database.Pool.QueryRow(ctx, courseSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// GetAll retrieves all courses with their professors populated
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	rows, err := r.database.Pool.Query(ctx, courseSelect+` ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourseWithProfessor(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// Update applies a partial update. Only non-nil patch fields overwrite; the
// code constraint guards uniqueness when the code changes.
func (r *CourseRepository) Update(ctx context.Context, id int64, patch models.CoursePatch) (*models.Course, error) {
	update := squirrel.Update("courses").
		Where("id = ?", id).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	changed := false
	if patch.Title != nil {
		update = update.Set("title", *patch.Title)
		changed = true
	}
	if patch.Code != nil {
		update = update.Set("code", *patch.Code)
		changed = true
	}
	if patch.Description != nil {
		update = update.Set("description", *patch.Description)
		changed = true
	}

	if !changed {
		// Nothing to write; return the current row.
		return r.GetByID(ctx, id)
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var updatedID int64
	if err := r.database.Pool.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return nil, apperrors.ErrCourseCodeExists
		}
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

// DeleteCascade deletes a course together with its grades and enrollments in
// one transaction. The grade cleanup is explicit: the ledger must not be
// left holding rows that reference a vanished course.
func (r *CourseRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM grades WHERE course_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting course grades: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM enrollments WHERE course_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting course enrollments: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting course: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrCourseNotFound
		}

		return nil
	})
}
