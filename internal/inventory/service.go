package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/litera-id/litera-backend/pkg/db"
	"github.com/litera-id/litera-backend/pkg/db/models"
	"github.com/litera-id/litera-backend/pkg/enums"
	pkgerrors "github.com/litera-id/litera-backend/pkg/errors"
	"github.com/litera-id/litera-backend/pkg/pagination"
	"github.com/litera-id/litera-backend/pkg/types"
)

// Service exposes the stock audit and manual adjustments.
type Service interface {
	ListEntries(ctx context.Context, params pagination.Params, filters ListFilters) ([]EntryDTO, types.Pagination, error)
	Adjust(ctx context.Context, actorID uuid.UUID, input AdjustInput) (*EntryDTO, error)
}

// AdjustInput holds a validated manual stock adjustment.
type AdjustInput struct {
	ISBN  string
	Delta int
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs an inventory service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) ListEntries(ctx context.Context, params pagination.Params, filters ListFilters) ([]EntryDTO, types.Pagination, error) {
	params = params.Normalize()

	rows, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, types.Pagination{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list inventory entries")
	}
	return FromModels(rows), params.Meta(total), nil
}

func (s *service) Adjust(ctx context.Context, actorID uuid.UUID, input AdjustInput) (*EntryDTO, error) {
	if input.Delta == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delta must be non-zero")
	}

	var entry *models.InventoryEntry
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		book, err := txRepo.FindBookByISBN(ctx, input.ISBN)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load book")
		}
		if book.Stock+input.Delta < 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "adjustment would make stock negative").
				WithDetails(map[string]any{"stock": book.Stock, "delta": input.Delta})
		}

		if err := txRepo.AdjustBookStock(ctx, input.ISBN, input.Delta); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: adjust stock")
		}

		actor := actorID
		entry, err = txRepo.Append(ctx, &models.InventoryEntry{
			BookISBN: input.ISBN,
			Delta:    input.Delta,
			Reason:   enums.InventoryReasonAdjustment,
			ActorID:  &actor,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: append inventory entry")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjust inventory")
	}

	return FromModel(entry), nil
}
