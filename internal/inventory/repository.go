package inventory

import (
	"context"

	"gorm.io/gorm"

	"github.com/litera-id/litera-backend/internal/repo"
	"github.com/litera-id/litera-backend/pkg/db/models"
	"github.com/litera-id/litera-backend/pkg/pagination"
)

// ListFilters narrows the stock-movement audit listing.
type ListFilters struct {
	ISBN string
}

// Repository exposes the append-only stock audit plus the book stock
// writes for manual adjustments.
type Repository struct {
	repo.Base
}

// NewRepository constructs an inventory repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(tx)}
}

// Append records one stock movement.
func (r *Repository) Append(ctx context.Context, entry *models.InventoryEntry) (*models.InventoryEntry, error) {
	if err := r.DB(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns one page of the audit log, newest first.
func (r *Repository) List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.InventoryEntry, int64, error) {
	params = params.Normalize()

	q := r.DB(ctx).Model(&models.InventoryEntry{})
	if filters.ISBN != "" {
		q = q.Where("book_isbn = ?", filters.ISBN)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.InventoryEntry
	err := q.Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindBookByISBN loads the catalog row an adjustment targets.
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
