package loans

import (
	"time"

	"github.com/google/uuid"

	"github.com/litera-id/litera-backend/pkg/db/models"
	"github.com/litera-id/litera-backend/pkg/enums"
)

// BookSummary is the catalog slice embedded in loan responses.
type BookSummary struct {
	ISBN   string  `json:"isbn"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Cover  *string `json:"cover,omitempty"`
}

// BorrowerSummary is the member slice embedded in loan responses.
type BorrowerSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
}

// LoanDTO is the transport shape for borrowing records.
type LoanDTO struct {
	ID     uuid.UUID        `json:"id"`
	UserID uuid.UUID        `json:"userId"`
	ISBN   string           `json:"isbn"`
	Qty    int              `json:"qty"`
	Notes  string           `json:"notes"`
	Status enums.LoanStatus `json:"status"`

	RequestedAt *time.Time `json:"requestedAt,omitempty"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
	LoanedAt    *time.Time `json:"loanedAt,omitempty"`
	DueAt       *time.Time `json:"dueAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	DeniedAt    *time.Time `json:"deniedAt,omitempty"`
	ReturnedAt  *time.Time `json:"returnedAt,omitempty"`

	Book     *BookSummary     `json:"book,omitempty"`
	Borrower *BorrowerSummary `json:"borrower,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromModel(l *models.Loan) *LoanDTO {
	if l == nil {
		return nil
	}

	dto := &LoanDTO{
		ID:          l.ID,
		UserID:      l.UserID,
		ISBN:        l.BookISBN,
		Qty:         l.Qty,
		Notes:       l.Notes,
		Status:      l.Status,
		RequestedAt: l.RequestedAt,
		ApprovedAt:  l.ApprovedAt,
		LoanedAt:    l.LoanedAt,
		DueAt:       l.DueAt,
		CancelledAt: l.CancelledAt,
		DeniedAt:    l.DeniedAt,
		ReturnedAt:  l.ReturnedAt,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if l.Book != nil {
		dto.Book = &BookSummary{
			ISBN:   l.Book.ISBN,
			Title:  l.Book.Title,
			Author: l.Book.Author,
			Cover:  l.Book.Cover,
		}
	}
	if l.User != nil {
		dto.Borrower = &BorrowerSummary{
			ID:       l.User.ID,
			Username: l.User.Username,
			Name:     l.User.Name,
		}
	}
	return dto
}

func FromModels(rows []models.Loan) []LoanDTO {
	out := make([]LoanDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
