package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/litera-id/litera-backend/pkg/enums"
)

// InventoryEntry is one append-only record of a book's stock moving.
// Delta is negative for outgoing stock and positive for incoming.
type InventoryEntry struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BookISBN  string                `gorm:"column:book_isbn;type:char(13);not null;index"`
	Delta     int                   `gorm:"column:delta;not null"`
	Reason    enums.InventoryReason `gorm:"column:reason;not null"`
	LoanID    *uuid.UUID            `gorm:"column:loan_id;type:uuid"`
	ActorID   *uuid.UUID            `gorm:"column:actor_id;type:uuid"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime;index"`
}
