package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/litera-id/litera-backend/pkg/enums"
)

// Achievement is a milestone earned by a member; one row per (user, code).
type Achievement struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID             `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_achievements_user_code"`
	Code      enums.AchievementCode `gorm:"column:code;not null;uniqueIndex:idx_achievements_user_code"`
	Name      string                `gorm:"column:name;not null"`
	AwardedAt time.Time             `gorm:"column:awarded_at;not null"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
}
