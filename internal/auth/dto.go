package auth

import (
	"time"

	"github.com/angelmondragon/homestock-backend/internal/users"
)

// RegisterRequest is the POST /api/auth/register payload.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	DisplayName string `json:"displayName" validate:"required,min=1,max=80"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest carries a Google ID token obtained by the client.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// Session is the outcome of a successful sign-in: the token to place in the
// cookie and the public user.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *users.PublicUser
}

// UserResponse is the body of every auth endpoint that returns a user.
type UserResponse struct {
	User *users.PublicUser `json:"user"`
}
