package dto

// RegisterRequest is the payload for user registration. Admin accounts are
// never self-registered; they come from seeding or an existing admin.
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required,max=30" example:"John"`
	LastName  string `json:"lastName" binding:"required,max=30" example:"Doe"`
	Email     string `json:"email" binding:"required,email" example:"john.doe@school.edu"`
	Password  string `json:"password" binding:"required,min=6" example:"s3cret!"`
	RoleType  string `json:"roleType" binding:"omitempty,oneof=STUDENT PROFESSOR" example:"STUDENT"`
}

// LoginRequest is the payload for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"john.doe@school.edu"`
	Password string `json:"password" binding:"required" example:"s3cret!"`
}

// AuthResponse carries the issued token and the authenticated user
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn" example:"3600"`
	User      UserResponse `json:"user"`
}
