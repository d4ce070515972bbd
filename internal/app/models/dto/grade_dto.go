package dto

import (
	"time"

	"github.com/eakyurek/gradehub/internal/app/models"
)

// AssignGradeRequest is the payload for the grade upsert
type AssignGradeRequest struct {
	StudentID int64  `json:"studentId" binding:"required,gt=0" example:"20"`
	CourseID  int64  `json:"courseId" binding:"required,gt=0" example:"1"`
	Value     string `json:"value" binding:"required,max=10,printascii" example:"A"`
}

// GradeResponse is the public view of a grade
type GradeResponse struct {
	ID         int64          `json:"id" example:"1"`
	Value      string         `json:"value" example:"A"`
	Student    *UserSummary   `json:"student,omitempty"`
	Course     *CourseSummary `json:"course,omitempty"`
	Assigner   *UserSummary   `json:"assignedBy,omitempty"`
	AssignedAt time.Time      `json:"assignedAt"`
}

// FromGrade converts a model grade to its public view
func FromGrade(g *models.Grade) GradeResponse {
	return GradeResponse{
		ID:         g.ID,
		Value:      g.Value,
		Student:    SummaryFromUser(g.Student),
		Course:     SummaryFromCourse(g.Course),
		Assigner:   SummaryFromUser(g.Assigner),
		AssignedAt: g.AssignedAt,
	}
}

// FromGrades converts a slice of model grades
func FromGrades(grades []*models.Grade) []GradeResponse {
	out := make([]GradeResponse, 0, len(grades))
	for _, g := range grades {
		out = append(out, FromGrade(g))
	}
	return out
}
