package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/litera-id/litera-backend/pkg/db/models"
	"github.com/litera-id/litera-backend/pkg/enums"
)

// EntryDTO is the transport shape for one stock movement.
type EntryDTO struct {
	ID        uuid.UUID             `json:"id"`
	ISBN      string                `json:"isbn"`
	Delta     int                   `json:"delta"`
	Reason    enums.InventoryReason `json:"reason"`
	LoanID    *uuid.UUID            `json:"loanId,omitempty"`
	ActorID   *uuid.UUID            `json:"actorId,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
}

func FromModel(e *models.InventoryEntry) *EntryDTO {
	if e == nil {
		return nil
	}

	return &EntryDTO{
		ID:        e.ID,
		ISBN:      e.BookISBN,
		Delta:     e.Delta,
		Reason:    e.Reason,
		LoanID:    e.LoanID,
		ActorID:   e.ActorID,
		CreatedAt: e.CreatedAt,
	}
}

func FromModels(rows []models.InventoryEntry) []EntryDTO {
	out := make([]EntryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
