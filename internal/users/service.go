package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/litera-id/litera-backend/pkg/errors"
	"github.com/litera-id/litera-backend/pkg/pagination"
	"github.com/litera-id/litera-backend/pkg/types"
)

// Service exposes the admin user-management surface.
type Service interface {
	ListUsers(ctx context.Context, params pagination.Params) ([]UserDTO, types.Pagination, error)
	VerifyUser(ctx context.Context, id uuid.UUID) (*UserDTO, error)
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService constructs a users service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) ListUsers(ctx context.Context, params pagination.Params) ([]UserDTO, types.Pagination, error) {
	params = params.Normalize()

	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, types.Pagination{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list users")
	}

	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, params.Meta(total), nil
}

func (s *service) VerifyUser(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}

	if user.VerifiedAt == nil {
		at := s.now().UTC()
		if err := s.repo.MarkVerified(ctx, id, at); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: verify user")
		}
		user.VerifiedAt = &at
	}
	return FromModel(user), nil
}
