package models

import "time"

// Course represents a course owned by a professor. Enrolled students are not
// embedded here; they live in the 'enrollments' relation.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Code        string    `json:"code" db:"code"` // Globally unique course code, e.g. CS301
	Description *string   `json:"description,omitempty" db:"description"`
	ProfessorID int64     `json:"professorId" db:"professor_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Professor *User `json:"professor,omitempty"`
}

// CoursePatch is a partial update; nil fields are left untouched, never
// nulled.
type CoursePatch struct {
	Title       *string
	Code        *string
	Description *string
}
