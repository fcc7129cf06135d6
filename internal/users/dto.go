package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/litera-id/litera-backend/pkg/db/models"
	"github.com/litera-id/litera-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID         uuid.UUID      `json:"id"`
	Username   string         `json:"username"`
	Name       string         `json:"name"`
	Role       enums.UserRole `json:"role"`
	Image      *string        `json:"image,omitempty"`
	VerifiedAt *time.Time     `json:"verifiedAt,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Username     string
	PasswordHash string
	Name         string
	Role         enums.UserRole
	Image        *string
	VerifiedAt   *time.Time
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		Role:       u.Role,
		Image:      u.Image,
		VerifiedAt: u.VerifiedAt,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if role == "" {
		role = enums.UserRoleMember
	}

	return &models.User{
		Username:     c.Username,
		PasswordHash: c.PasswordHash,
		Name:         c.Name,
		Role:         role,
		Image:        c.Image,
		VerifiedAt:   c.VerifiedAt,
	}
}
