package auth

import (
	"github.com/litera-id/litera-backend/internal/users"
)

// RegisterRequest contains the payload required to create a member account.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required"`
	Username        string `json:"username" validate:"required,min=3,max=32"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// LoginRequest contains the credential payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenPair carries the issued credentials. Only an access token is
// minted; there is no refresh rotation.
type TokenPair struct {
	Access string `json:"access"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Token TokenPair      `json:"token"`
	User  *users.UserDTO `json:"user"`
}

// RegisterResponse is returned after account creation.
type RegisterResponse struct {
	User *users.UserDTO `json:"user"`
}
