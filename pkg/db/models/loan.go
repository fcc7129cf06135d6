package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/litera-id/litera-backend/pkg/enums"
)

// Loan records one member's request to borrow a quantity of a book and the
// lifecycle the request moves through. DueAt is set only when the loan is
// handed out; ReturnedAt only when it comes back.
type Loan struct {
	ID       uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID   uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	BookISBN string           `gorm:"column:book_isbn;type:char(13);not null;index"`
	Qty      int              `gorm:"column:qty;not null;default:1"`
	Notes    string           `gorm:"column:notes;not null;default:''"`
	Status   enums.LoanStatus `gorm:"column:status;not null;default:requested;index"`

	RequestedAt *time.Time `gorm:"column:requested_at"`
	ApprovedAt  *time.Time `gorm:"column:approved_at"`
	LoanedAt    *time.Time `gorm:"column:loaned_at"`
	DueAt       *time.Time `gorm:"column:due_at;index"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
	DeniedAt    *time.Time `gorm:"column:denied_at"`
	ReturnedAt  *time.Time `gorm:"column:returned_at"`

	User *User `gorm:"foreignKey:UserID"`
	Book *Book `gorm:"foreignKey:BookISBN;references:ISBN"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}
