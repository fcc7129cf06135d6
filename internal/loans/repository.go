package loans

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/litera-id/litera-backend/internal/repo"
	"github.com/litera-id/litera-backend/pkg/db/models"
	"github.com/litera-id/litera-backend/pkg/enums"
	"github.com/litera-id/litera-backend/pkg/pagination"
)

// ListFilters narrows the loan listing. A nil UserID means every member's
// loans are in scope.
type ListFilters struct {
	UserID *uuid.UUID
	Status *enums.LoanStatus
	ISBN   string
}

// Repository wires together loan persistence plus the stock and audit
// writes that travel in the same transaction.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(tx)}
}

// Create inserts a new loan row.
func (r *Repository) Create(ctx context.Context, loan *models.Loan) (*models.Loan, error) {
	if err := r.DB(ctx).Create(loan).Error; err != nil {
		return nil, err
	}
	return loan, nil
}

// FindByID loads a loan with its book and borrower preloaded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Loan, error) {
	var loan models.Loan
	err := r.DB(ctx).
		Preload("Book").
		Preload("User").
		First(&loan, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// Save persists the full loan row.
func (r *Repository) Save(ctx context.Context, loan *models.Loan) (*models.Loan, error) {
	if err := r.DB(ctx).Save(loan).Error; err != nil {
		return nil, err
	}
	return loan, nil
}

// SoftDelete marks the loan deleted without removing the row.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&models.Loan{}).Error
}

// List returns one page of loans, newest first.
func (r *Repository) List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Loan, int64, error) {
	params = params.Normalize()

	q := r.DB(ctx).Model(&models.Loan{})
	if filters.UserID != nil {
		q = q.Where("user_id = ?", *filters.UserID)
	}
	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
	}
	if filters.ISBN != "" {
		q = q.Where("book_isbn = ?", filters.ISBN)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Loan
	err := q.Preload("Book").
		Preload("User").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindBookByISBN loads the catalog row a loan points at.
func (r *Repository) FindBookByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	var book models.Book
	if err := r.DB(ctx).First(&book, "isbn = ?", isbn).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// AdjustBookStock applies a signed delta to the book's stock.
func (r *Repository) AdjustBookStock(ctx context.Context, isbn string, delta int) error {
	tx := r.DB(ctx).
		Model(&models.Book{}).
		Where("isbn = ?", isbn).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AppendInventoryEntry records one stock movement in the audit log.
func (r *Repository) AppendInventoryEntry(ctx context.Context, entry *models.InventoryEntry) error {
	return r.DB(ctx).Create(entry).Error
}

// CountByUserAndStatus counts the user's loans in the given status.
func (r *Repository) CountByUserAndStatus(ctx context.Context, userID uuid.UUID, status enums.LoanStatus) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Loan{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}

// InsertAchievementIfAbsent awards the milestone once; a repeat insert for
// the same (user, code) pair is a no-op.
func (r *Repository) InsertAchievementIfAbsent(ctx context.Context, userID uuid.UUID, code enums.AchievementCode, at time.Time) (bool, error) {
	row := &models.Achievement{
		UserID:    userID,
		Code:      code,
		Name:      code.DisplayName(),
		AwardedAt: at,
	}
	tx := r.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "code"}},
			DoNothing: true,
		}).
		Create(row)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// MarkOverdue flips loaned loans past their due date to overdue and
// returns how many rows changed.
func (r *Repository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	tx := r.DB(ctx).
		Model(&models.Loan{}).
		Where("status = ? AND due_at IS NOT NULL AND due_at < ?", enums.LoanStatusLoaned, now).
		Update("status", enums.LoanStatusOverdue)
	return tx.RowsAffected, tx.Error
}

// CountLoanedByUser counts the user's loans that have ever been handed out.
func (r *Repository) CountLoanedByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Loan{}).
		Where("user_id = ? AND loaned_at IS NOT NULL", userID).
		Count(&count).Error
	return count, err
}

// ListUsersWithLoanActivity returns the distinct user IDs that have at
// least one handed-out loan, for milestone back-fills.
func (r *Repository) ListUsersWithLoanActivity(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.DB(ctx).
		Model(&models.Loan{}).
		Where("loaned_at IS NOT NULL").
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}
