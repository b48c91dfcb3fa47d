package dto

import "github.com/karadenizdev/taskman-backend/internal/models"

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest is the profile patch body. Fields are pointers so an
// absent key and a zero value stay distinguishable; anything outside this
// allow-list fails strict decoding.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Age      *int    `json:"age"`
}

// AuthResponse pairs the (sanitized) user with a freshly issued token.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}
