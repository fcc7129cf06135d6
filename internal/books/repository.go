package books

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/litera-id/litera-backend/internal/repo"
	"github.com/litera-id/litera-backend/pkg/db/models"
	"github.com/litera-id/litera-backend/pkg/pagination"
)

// ListFilters narrows the catalog listing.
type ListFilters struct {
	Search   string
	Category string
}

// Repository wires together catalog persistence helpers.
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

// FindByISBN loads a single catalog entry. Soft-deleted rows are excluded
// by GORM's default scope.
func (r *Repository) FindByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	var book models.Book
	if err := r.DB(ctx).First(&book, "isbn = ?", isbn).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// Create inserts a new catalog entry.
func (r *Repository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	if err := r.DB(ctx).Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

// Update persists the full book row.
func (r *Repository) Update(ctx context.Context, book *models.Book) (*models.Book, error) {
	if err := r.DB(ctx).Save(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

// SoftDelete marks the book deleted without removing the row.
func (r *Repository) SoftDelete(ctx context.Context, isbn string) error {
	return r.DB(ctx).Where("isbn = ?", isbn).Delete(&models.Book{}).Error
}

// UpdateCover overwrites the stored cover object key.
func (r *Repository) UpdateCover(ctx context.Context, isbn string, cover *string) error {
	return r.DB(ctx).
		Model(&models.Book{}).
		Where("isbn = ?", isbn).
		UpdateColumn("cover", cover).Error
}

// AdjustStock applies a signed delta to the book's stock and returns the
// resulting value. Callers run this inside a transaction when the delta
// pairs with other writes.
func (r *Repository) AdjustStock(ctx context.Context, isbn string, delta int) (int, error) {
	tx := r.DB(ctx).
		Model(&models.Book{}).
		Where("isbn = ?", isbn).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var book models.Book
	if err := r.DB(ctx).Select("stock").First(&book, "isbn = ?", isbn).Error; err != nil {
		return 0, err
	}
	return book.Stock, nil
}

// List returns one page of the catalog with the requested ordering and
// optional search/category filters.
func (r *Repository) List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Book, int64, error) {
	params = params.Normalize()

	q := r.DB(ctx).Model(&models.Book{})
	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(author) LIKE ?)", pattern, pattern)
	}
	if category := strings.TrimSpace(filters.Category); category != "" {
		q = q.Where("category = ?", category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := params.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	var rows []models.Book
	err := q.Order(orderBy + " " + params.Sort).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
