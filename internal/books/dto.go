package books

import (
	"time"

	"github.com/litera-id/litera-backend/pkg/db/models"
)

// BookDTO is the transport shape for catalog entries.
type BookDTO struct {
	ISBN        string    `json:"isbn"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Publisher   string    `json:"publisher"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Stock       int       `json:"stock"`
	Cover       *string   `json:"cover,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromModel(b *models.Book) *BookDTO {
	if b == nil {
		return nil
	}

	return &BookDTO{
		ISBN:        b.ISBN,
		Title:       b.Title,
		Author:      b.Author,
		Publisher:   b.Publisher,
		Category:    b.Category,
		Description: b.Description,
		Stock:       b.Stock,
		Cover:       b.Cover,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func FromModels(rows []models.Book) []BookDTO {
	out := make([]BookDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
