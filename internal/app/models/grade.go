package models

import "time"

// Grade holds the at-most-one grade per (student, course) pair. The value is
// an opaque printable string (letter, number or pass/fail token); the core
// never interprets it.
type Grade struct {
	ID         int64     `json:"id" db:"id"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	Value      string    `json:"value" db:"value"`
	AssignedBy int64     `json:"assignedBy" db:"assigned_by"`
	AssignedAt time.Time `json:"assignedAt" db:"assigned_at"`

	// Relations (populated when needed)
	Student  *User   `json:"student,omitempty"`
	Course   *Course `json:"course,omitempty"`
	Assigner *User   `json:"assigner,omitempty"`
}
