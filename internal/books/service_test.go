package books

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litera-id/litera-backend/pkg/db/models"
	pkgerrors "github.com/litera-id/litera-backend/pkg/errors"
	"github.com/litera-id/litera-backend/pkg/pagination"
)

type fakeStore struct {
	keys        []string
	contentType string
}

func (s *fakeStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	s.keys = append(s.keys, key)
	s.contentType = contentType
	_, err := io.Copy(io.Discard, body)
	return err
}

func (s *fakeStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error { return nil }

func newBookService(t *testing.T) (Service, *Repository, *fakeStore) {
	t.Helper()

	db := setupBooksTestDB(t)
	repo := NewRepository(db)
	store := &fakeStore{}
	svc, err := NewService(repo, store)
	require.NoError(t, err)
	return svc, repo, store
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected a typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
}

func TestServiceListBooksRejectsUnknownOrderBy(t *testing.T) {
	svc, _, _ := newBookService(t)

	_, _, err := svc.ListBooks(context.Background(), pagination.Params{OrderBy: "stock"}, ListFilters{})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, _, err = svc.ListBooks(context.Background(), pagination.Params{OrderBy: "title"}, ListFilters{})
	require.NoError(t, err)
}

func TestServiceCreateBook(t *testing.T) {
	svc, repo, _ := newBookService(t)
	ctx := context.Background()

	isbn := randomISBN()
	dto, err := svc.CreateBook(ctx, CreateBookInput{
		ISBN:      " " + isbn + " ",
		Title:     "  The Go Programming Language ",
		Author:    "Alan Donovan",
		Publisher: "Addison-Wesley",
		Category:  "programming",
		Stock:     3,
	})
	require.NoError(t, err)
	assert.Equal(t, isbn, dto.ISBN, "isbn is trimmed")
	assert.Equal(t, "The Go Programming Language", dto.Title)

	stored, err := repo.FindByISBN(ctx, isbn)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Stock)

	// Same ISBN again is a conflict, not a dependency failure.
	_, err = svc.CreateBook(ctx, CreateBookInput{
		ISBN:      isbn,
		Title:     "Duplicate",
		Author:    "Someone",
		Publisher: "Else",
		Category:  "general",
	})
	requireCode(t, err, pkgerrors.CodeConflict)
}

func TestServiceUpdateBook(t *testing.T) {
	svc, repo, _ := newBookService(t)
	ctx := context.Background()

	book := mustCreateBook(t, repo.DB(nil), func(b *models.Book) { b.Stock = 2 })

	title := "Renamed"
	stock := 7
	dto, err := svc.UpdateBook(ctx, book.ISBN, UpdateBookInput{Title: &title, Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", dto.Title)
	assert.Equal(t, 7, dto.Stock)
	assert.Equal(t, book.Author, dto.Author, "untouched fields survive")

	negative := -1
	_, err = svc.UpdateBook(ctx, book.ISBN, UpdateBookInput{Stock: &negative})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.UpdateBook(ctx, "0000000000000", UpdateBookInput{Title: &title})
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceDeleteBook(t *testing.T) {
	svc, repo, _ := newBookService(t)
	ctx := context.Background()

	book := mustCreateBook(t, repo.DB(nil), nil)
	require.NoError(t, svc.DeleteBook(ctx, book.ISBN))

	_, err := svc.GetBook(ctx, book.ISBN)
	requireCode(t, err, pkgerrors.CodeNotFound)

	err = svc.DeleteBook(ctx, book.ISBN)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceUploadCover(t *testing.T) {
	svc, repo, store := newBookService(t)
	ctx := context.Background()

	book := mustCreateBook(t, repo.DB(nil), nil)

	dto, err := svc.UploadCover(ctx, book.ISBN, CoverUpload{
		ContentType: "image/png",
		Body:        strings.NewReader("fake image bytes"),
		Size:        16,
	})
	require.NoError(t, err)
	require.NotNil(t, dto.Cover)
	assert.True(t, strings.HasPrefix(*dto.Cover, "covers/"+book.ISBN+"-"))
	assert.True(t, strings.HasSuffix(*dto.Cover, ".png"))

	require.Len(t, store.keys, 1)
	assert.Equal(t, "image/png", store.contentType)

	stored, err := repo.FindByISBN(ctx, book.ISBN)
	require.NoError(t, err)
	require.NotNil(t, stored.Cover)
	assert.Equal(t, *dto.Cover, *stored.Cover)
}
