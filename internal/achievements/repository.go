package achievements

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/litera-id/litera-backend/internal/repo"
	"github.com/litera-id/litera-backend/pkg/db/models"
)

// Repository exposes achievement persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs an achievements repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListByUser returns the user's earned milestones, oldest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Achievement, error) {
	var rows []models.Achievement
	err := r.DB(ctx).
		Where("user_id = ?", userID).
		Order("awarded_at ASC").
		Find(&rows).Error
	return rows, err
}
