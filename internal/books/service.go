package books

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/litera-id/litera-backend/pkg/errors"
	"github.com/litera-id/litera-backend/pkg/pagination"
	"github.com/litera-id/litera-backend/pkg/storage"
	"github.com/litera-id/litera-backend/pkg/types"

	"github.com/litera-id/litera-backend/pkg/db/models"
)

// Service exposes catalog management operations.
type Service interface {
	ListBooks(ctx context.Context, params pagination.Params, filters ListFilters) ([]BookDTO, types.Pagination, error)
	GetBook(ctx context.Context, isbn string) (*BookDTO, error)
	CreateBook(ctx context.Context, input CreateBookInput) (*BookDTO, error)
	UpdateBook(ctx context.Context, isbn string, input UpdateBookInput) (*BookDTO, error)
	DeleteBook(ctx context.Context, isbn string) error
	UploadCover(ctx context.Context, isbn string, upload CoverUpload) (*BookDTO, error)
}

// CreateBookInput holds the validated payload for a new catalog entry.
type CreateBookInput struct {
	ISBN        string
	Title       string
	Author      string
	Publisher   string
	Category    string
	Description string
	Stock       int
}

// UpdateBookInput holds optional mutation values for a catalog entry.
type UpdateBookInput struct {
	Title       *string
	Author      *string
	Publisher   *string
	Category    *string
	Description *string
	Stock       *int
}

// CoverUpload carries an uploaded cover image stream.
type CoverUpload struct {
	ContentType string
	Body        io.Reader
	Size        int64
}

// orderColumns lists the columns the catalog listing may sort on.
var orderColumns = map[string]struct{}{
	"title":      {},
	"author":     {},
	"publisher":  {},
	"category":   {},
	"created_at": {},
}

type service struct {
	repo  *Repository
	store storage.Store
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, store storage.Store) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("book repository required")
	}
	if store == nil {
		return nil, fmt.Errorf("storage driver required")
	}
	return &service{repo: repo, store: store}, nil
}

func (s *service) ListBooks(ctx context.Context, params pagination.Params, filters ListFilters) ([]BookDTO, types.Pagination, error) {
	params = params.Normalize()
	if params.OrderBy != "" {
		if _, ok := orderColumns[params.OrderBy]; !ok {
			return nil, types.Pagination{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown order_by column").
				WithDetails(map[string][]string{"order_by": {"must be one of title, author, publisher, category, created_at"}})
		}
	}

	rows, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, types.Pagination{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list books")
	}
	return FromModels(rows), params.Meta(total), nil
}

func (s *service) GetBook(ctx context.Context, isbn string) (*BookDTO, error) {
	book, err := s.findBook(ctx, isbn)
	if err != nil {
		return nil, err
	}
	return FromModel(book), nil
}

func (s *service) CreateBook(ctx context.Context, input CreateBookInput) (*BookDTO, error) {
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
	}

	book := &models.Book{
		ISBN:        strings.TrimSpace(input.ISBN),
		Title:       strings.TrimSpace(input.Title),
		Author:      strings.TrimSpace(input.Author),
		Publisher:   strings.TrimSpace(input.Publisher),
		Category:    strings.TrimSpace(input.Category),
		Description: input.Description,
		Stock:       input.Stock,
	}
	created, err := s.repo.Create(ctx, book)
	if err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "book with this ISBN already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert book")
	}
	return FromModel(created), nil
}

func (s *service) UpdateBook(ctx context.Context, isbn string, input UpdateBookInput) (*BookDTO, error) {
	if input.Stock != nil && *input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
	}

	book, err := s.findBook(ctx, isbn)
	if err != nil {
		return nil, err
	}

	applyUpdateToBook(book, input)
	updated, err := s.repo.Update(ctx, book)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update book")
	}
	return FromModel(updated), nil
}

func (s *service) DeleteBook(ctx context.Context, isbn string) error {
	if _, err := s.findBook(ctx, isbn); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, isbn); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete book")
	}
	return nil
}

func (s *service) UploadCover(ctx context.Context, isbn string, upload CoverUpload) (*BookDTO, error) {
	book, err := s.findBook(ctx, isbn)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("covers/%s-%s%s", book.ISBN, uuid.NewString(), extensionFor(upload.ContentType))
	if err := s.store.Put(ctx, key, upload.ContentType, upload.Body, upload.Size); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storage: put cover")
	}
	if err := s.repo.UpdateCover(ctx, book.ISBN, &key); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cover")
	}

	book.Cover = &key
	return FromModel(book), nil
}

func (s *service) findBook(ctx context.Context, isbn string) (*models.Book, error) {
	book, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load book")
	}
	return book, nil
}

func applyUpdateToBook(book *models.Book, input UpdateBookInput) {
	if input.Title != nil {
		book.Title = strings.TrimSpace(*input.Title)
	}
	if input.Author != nil {
		book.Author = strings.TrimSpace(*input.Author)
	}
	if input.Publisher != nil {
		book.Publisher = strings.TrimSpace(*input.Publisher)
	}
	if input.Category != nil {
		book.Category = strings.TrimSpace(*input.Category)
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.Stock != nil {
		book.Stock = *input.Stock
	}
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
