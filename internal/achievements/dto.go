package achievements

import (
	"time"

	"github.com/google/uuid"

	"github.com/litera-id/litera-backend/pkg/db/models"
	"github.com/litera-id/litera-backend/pkg/enums"
)

// AchievementDTO is the transport shape for earned milestones.
type AchievementDTO struct {
	ID        uuid.UUID             `json:"id"`
	Code      enums.AchievementCode `json:"code"`
	Name      string                `json:"name"`
	AwardedAt time.Time             `json:"awardedAt"`
}

func FromModel(a *models.Achievement) *AchievementDTO {
	if a == nil {
		return nil
	}

	return &AchievementDTO{
		ID:        a.ID,
		Code:      a.Code,
		Name:      a.Name,
		AwardedAt: a.AwardedAt,
	}
}

func FromModels(rows []models.Achievement) []AchievementDTO {
	out := make([]AchievementDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
