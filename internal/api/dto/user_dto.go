package dto

import "github.com/spec-kit/places-service/internal/domain"

// SignupRequest payload for new users. The image arrives as a separate
// multipart file part and is required.
type SignupRequest struct {
	Name     string `form:"name" json:"name" validate:"required"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,min=6"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResponse is the body returned by signup and login.
type AuthResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	Token   string `json:"token"`
}

// PublicUser is the read-facing user projection. It never carries the
// password hash.
type PublicUser struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Image  string   `json:"image"`
	Places []string `json:"places"`
}

// NewPublicUser projects a domain user.
func NewPublicUser(user domain.User) PublicUser {
	places := user.PlaceIDs
	if places == nil {
		places = []string{}
	}
	return PublicUser{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Image:  user.ImagePath,
		Places: places,
	}
}
