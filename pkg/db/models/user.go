package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/litera-id/litera-backend/pkg/enums"
)

// User represents a member or admin account. Login is gated on VerifiedAt
// being set; unverified accounts exist but cannot authenticate.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string         `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Name         string         `gorm:"column:name;not null"`
	Role         enums.UserRole `gorm:"column:role;not null;default:member"`
	Image        *string        `gorm:"column:image"`
	VerifiedAt   *time.Time     `gorm:"column:verified_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
