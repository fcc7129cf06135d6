package authtoken

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/litera-id/litera-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	Role     enums.UserRole
	Name     string
	Username string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID   uuid.UUID      `json:"user_id"`
	Role     enums.UserRole `json:"role"`
	Name     string         `json:"name,omitempty"`
	Username string         `json:"username,omitempty"`
	jwt.RegisteredClaims
}
