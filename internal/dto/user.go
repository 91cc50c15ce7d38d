package dto

// RegisterRequest is the JSON body for POST /register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the JSON body for POST /login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is returned by /register and /login.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
