package achievements

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pkgerrors "github.com/litera-id/litera-backend/pkg/errors"
)

// Service exposes achievement read operations.
type Service interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]AchievementDTO, error)
}

type service struct {
	repo *Repository
}

// NewService constructs an achievements service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("achievements repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]AchievementDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list achievements")
	}
	return FromModels(rows), nil
}
