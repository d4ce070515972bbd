package dto

import (
	"time"

	"github.com/eakyurek/gradehub/internal/app/models"
)

// UserResponse is the public view of a user
type UserResponse struct {
	ID        int64     `json:"id" example:"1"`
	Email     string    `json:"email" example:"john.doe@school.edu"`
	FirstName string    `json:"firstName" example:"John"`
	LastName  string    `json:"lastName" example:"Doe"`
	RoleType  string    `json:"roleType" example:"STUDENT" enums:"ADMIN,PROFESSOR,STUDENT"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserSummary is the short form embedded in course and grade responses
type UserSummary struct {
	ID        int64  `json:"id" example:"1"`
	FirstName string `json:"firstName" example:"John"`
	LastName  string `json:"lastName" example:"Doe"`
	Email     string `json:"email" example:"john.doe@school.edu"`
}

// UpdateUserRequest is the admin payload for partial user updates. Omitted
// fields are left untouched, never nulled.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=30"`
	LastName  *string `json:"lastName" binding:"omitempty,max=30"`
	Email     *string `json:"email" binding:"omitempty,email"`
	RoleType  *string `json:"roleType" binding:"omitempty,oneof=ADMIN PROFESSOR STUDENT"`
}

// FromUser converts a model user to its public view
func FromUser(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		RoleType:  string(u.RoleType),
		CreatedAt: u.CreatedAt,
	}
}

// SummaryFromUser converts a model user to its short form
func SummaryFromUser(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
