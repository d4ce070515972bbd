package dto

import (
	"time"

	"github.com/eakyurek/gradehub/internal/app/models"
)

// CreateCourseRequest is the payload for course creation
type CreateCourseRequest struct {
	Title       string  `json:"title" binding:"required,max=120" example:"Algorithms"`
	Code        string  `json:"code" binding:"required,max=20" example:"CS301"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	ProfessorID int64   `json:"professorId" binding:"required,gt=0" example:"10"`
}

// UpdateCourseRequest is the payload for partial course updates. Only
// supplied fields overwrite; omitted fields are left untouched.
type UpdateCourseRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=120"`
	Code        *string `json:"code" binding:"omitempty,max=20"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// HasChanges reports whether the request supplies at least one field.
func (r UpdateCourseRequest) HasChanges() bool {
	return r.Title != nil || r.Code != nil || r.Description != nil
}

// CourseResponse is the public view of a course
type CourseResponse struct {
	ID          int64        `json:"id" example:"1"`
	Title       string       `json:"title" example:"Algorithms"`
	Code        string       `json:"code" example:"CS301"`
	Description *string      `json:"description,omitempty"`
	Professor   *UserSummary `json:"professor,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// CourseDetailResponse additionally carries the enrolled-student roster
type CourseDetailResponse struct {
	CourseResponse
	EnrolledStudents []UserSummary `json:"enrolledStudents"`
}

// FromCourse converts a model course to its public view
func FromCourse(c *models.Course) CourseResponse {
	return CourseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Code:        c.Code,
		Description: c.Description,
		Professor:   SummaryFromUser(c.Professor),
		CreatedAt:   c.CreatedAt,
	}
}

// CourseSummary is the short form embedded in grade responses
type CourseSummary struct {
	ID    int64  `json:"id" example:"1"`
	Title string `json:"title" example:"Algorithms"`
	Code  string `json:"code" example:"CS301"`
}

// SummaryFromCourse converts a model course to its short form
func SummaryFromCourse(c *models.Course) *CourseSummary {
	if c == nil {
		return nil
	}
	return &CourseSummary{
		ID:    c.ID,
		Title: c.Title,
		Code:  c.Code,
	}
}
