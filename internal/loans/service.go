package loans

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/litera-id/litera-backend/pkg/config"
	"github.com/litera-id/litera-backend/pkg/db"
	"github.com/litera-id/litera-backend/pkg/db/models"
	"github.com/litera-id/litera-backend/pkg/enums"
	pkgerrors "github.com/litera-id/litera-backend/pkg/errors"
	"github.com/litera-id/litera-backend/pkg/pagination"
	"github.com/litera-id/litera-backend/pkg/types"
)

// Actor identifies the authenticated principal driving a loan operation.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == enums.UserRoleAdmin
}

// Service exposes loan lifecycle operations.
type Service interface {
	ListLoans(ctx context.Context, actor Actor, params pagination.Params, filters ListFilters) ([]LoanDTO, types.Pagination, error)
	CreateLoan(ctx context.Context, actor Actor, input CreateLoanInput) (*LoanDTO, error)
	GetLoan(ctx context.Context, actor Actor, id uuid.UUID) (*LoanDTO, error)
	UpdateLoan(ctx context.Context, actor Actor, id uuid.UUID, input UpdateLoanInput) (*LoanDTO, error)
	DeleteLoan(ctx context.Context, id uuid.UUID) error
}

// CreateLoanInput holds the validated payload for a new borrowing request.
type CreateLoanInput struct {
	ISBN  string
	Qty   int
	Notes string
}

// UpdateLoanInput holds optional mutation values for a loan. A Qty of 1 is
// treated as "not specified" and leaves the stored quantity untouched.
type UpdateLoanInput struct {
	Status *enums.LoanStatus
	Notes  *string
	Qty    *int
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	window   time.Duration
	now      func() time.Time
}

// NewService constructs a loan service instance.
func NewService(repo *Repository, dbClient *db.Client, cfg config.LoanConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("loan repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	window := cfg.Window
	if window <= 0 {
		window = 14 * 24 * time.Hour
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		window:   window,
		now:      time.Now,
	}, nil
}

func (s *service) ListLoans(ctx context.Context, actor Actor, params pagination.Params, filters ListFilters) ([]LoanDTO, types.Pagination, error) {
	params = params.Normalize()
	if !actor.IsAdmin() {
		id := actor.ID
		filters.UserID = &id
	}

	rows, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, types.Pagination{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list loans")
	}
	return FromModels(rows), params.Meta(total), nil
}

func (s *service) CreateLoan(ctx context.Context, actor Actor, input CreateLoanInput) (*LoanDTO, error) {
	if input.Qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qty must be at least 1")
	}

	book, err := s.repo.FindBookByISBN(ctx, input.ISBN)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load book")
	}
	if input.Qty > book.Stock {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock").
			WithDetails(map[string]any{"stock": book.Stock, "qty": input.Qty})
	}

	now := s.now().UTC()
	loan := &models.Loan{
		UserID:      actor.ID,
		BookISBN:    book.ISBN,
		Qty:         input.Qty,
		Notes:       input.Notes,
		Status:      enums.LoanStatusRequested,
		RequestedAt: &now,
	}
	created, err := s.repo.Create(ctx, loan)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert loan")
	}
	return s.reload(ctx, created.ID)
}

func (s *service) GetLoan(ctx context.Context, actor Actor, id uuid.UUID) (*LoanDTO, error) {
	loan, err := s.findLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && loan.UserID != actor.ID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "loan does not belong to you")
	}
	return FromModel(loan), nil
}

func (s *service) UpdateLoan(ctx context.Context, actor Actor, id uuid.UUID, input UpdateLoanInput) (*LoanDTO, error) {
	if input.Qty != nil && *input.Qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qty must be at least 1")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid loan status")
	}

	loan, err := s.findLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeUpdate(actor, loan, input); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if input.Notes != nil {
			loan.Notes = *input.Notes
		}
		// A quantity of exactly 1 means the caller left it unspecified, so
		// the stored value is kept.
		if input.Qty != nil && *input.Qty != 1 {
			loan.Qty = *input.Qty
		}

		if input.Status != nil && *input.Status != loan.Status {
			if err := s.applyStatus(ctx, txRepo, loan, *input.Status, now); err != nil {
				return err
			}
		}

		if _, err := txRepo.Save(ctx, loan); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update loan")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update loan")
	}

	return s.reload(ctx, loan.ID)
}

func (s *service) DeleteLoan(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findLoan(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete loan")
	}
	return nil
}

// applyStatus moves the loan to its target status and performs the stock
// and audit writes that travel with the transition. Any status can follow
// any other; each target stamps its own timestamp.
func (s *service) applyStatus(ctx context.Context, txRepo *Repository, loan *models.Loan, target enums.LoanStatus, now time.Time) error {
	switch target {
	case enums.LoanStatusApproved:
		loan.ApprovedAt = &now
	case enums.LoanStatusCancelled:
		loan.CancelledAt = &now
		loan.ReturnedAt = nil
	case enums.LoanStatusDenied:
		loan.DeniedAt = &now
		loan.ReturnedAt = nil
	case enums.LoanStatusLoaned:
		book, err := txRepo.FindBookByISBN(ctx, loan.BookISBN)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load book")
		}
		if loan.Qty > book.Stock {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock").
				WithDetails(map[string]any{"stock": book.Stock, "qty": loan.Qty})
		}
		loan.LoanedAt = &now
		due := now.Add(s.window)
		loan.DueAt = &due
		if err := txRepo.AdjustBookStock(ctx, loan.BookISBN, -loan.Qty); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: decrement stock")
		}
		if err := txRepo.AppendInventoryEntry(ctx, &models.InventoryEntry{
			BookISBN: loan.BookISBN,
			Delta:    -loan.Qty,
			Reason:   enums.InventoryReasonLoaned,
			LoanID:   &loan.ID,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: append inventory entry")
		}
		loan.Status = target
		if _, err := txRepo.Save(ctx, loan); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update loan")
		}
		if _, err := EvaluateMilestones(ctx, txRepo, loan.UserID, now); err != nil {
			return err
		}
		return nil
	case enums.LoanStatusReturned:
		loan.ReturnedAt = &now
		if err := txRepo.AdjustBookStock(ctx, loan.BookISBN, loan.Qty); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: increment stock")
		}
		if err := txRepo.AppendInventoryEntry(ctx, &models.InventoryEntry{
			BookISBN: loan.BookISBN,
			Delta:    loan.Qty,
			Reason:   enums.InventoryReasonReturned,
			LoanID:   &loan.ID,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: append inventory entry")
		}
		loan.Status = target
		if _, err := txRepo.Save(ctx, loan); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update loan")
		}
		if _, err := EvaluateMilestones(ctx, txRepo, loan.UserID, now); err != nil {
			return err
		}
		return nil
	case enums.LoanStatusRequested:
		loan.RequestedAt = &now
	case enums.LoanStatusOverdue:
		// no companion timestamp; due_at already records when it lapsed
	}
	loan.Status = target
	return nil
}

func (s *service) authorizeUpdate(actor Actor, loan *models.Loan, input UpdateLoanInput) error {
	if actor.IsAdmin() {
		return nil
	}
	if loan.UserID != actor.ID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "loan does not belong to you")
	}
	if input.Status == nil {
		return nil
	}
	if *input.Status != enums.LoanStatusCancelled {
		return pkgerrors.New(pkgerrors.CodeForbidden, "members may only cancel their loans")
	}
	if loan.Status != enums.LoanStatusRequested && loan.Status != enums.LoanStatusApproved {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only requested or approved loans can be cancelled")
	}
	return nil
}

func (s *service) findLoan(ctx context.Context, id uuid.UUID) (*models.Loan, error) {
	loan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "loan not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load loan")
	}
	return loan, nil
}

func (s *service) reload(ctx context.Context, id uuid.UUID) (*LoanDTO, error) {
	loan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load loan")
	}
	return FromModel(loan), nil
}

// EvaluateMilestones awards any loan milestones the user has newly crossed
// and returns the codes granted. Safe to call repeatedly; existing awards
// are left untouched.
func EvaluateMilestones(ctx context.Context, repo *Repository, userID uuid.UUID, now time.Time) ([]enums.AchievementCode, error) {
	var granted []enums.AchievementCode

	loaned, err := repo.CountLoanedByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count loaned")
	}
	if loaned >= 1 {
		ok, err := repo.InsertAchievementIfAbsent(ctx, userID, enums.AchievementFirstLoan, now)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: award first_loan")
		}
		if ok {
			granted = append(granted, enums.AchievementFirstLoan)
		}
	}

	returned, err := repo.CountByUserAndStatus(ctx, userID, enums.LoanStatusReturned)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count returned")
	}
	for _, milestone := range []struct {
		code      enums.AchievementCode
		threshold int64
	}{
		{enums.AchievementFiveReturns, 5},
		{enums.AchievementBookworm, 20},
	} {
		if returned < milestone.threshold {
			continue
		}
		ok, err := repo.InsertAchievementIfAbsent(ctx, userID, milestone.code, now)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: award "+milestone.code.String())
		}
		if ok {
			granted = append(granted, milestone.code)
		}
	}
	return granted, nil
}
