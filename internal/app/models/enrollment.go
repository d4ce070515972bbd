package models

import "time"

// Enrollment is the (student, course) membership relation. The pair is
// unique; uniqueness is enforced by the database, not by application checks.
type Enrollment struct {
	ID         int64     `json:"id" db:"id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	EnrolledAt time.Time `json:"enrolledAt" db:"enrolled_at"`

	// Relations (populated when needed)
	Student *User `json:"student,omitempty"`
}
