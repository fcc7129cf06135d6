package books

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/litera-id/litera-backend/pkg/db/models"
)

func setupBooksTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	books := `
CREATE TABLE IF NOT EXISTS books (
  isbn TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  author TEXT NOT NULL,
  publisher TEXT NOT NULL,
  category TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  stock INTEGER NOT NULL DEFAULT 0,
  cover TEXT,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME
);`
	require.NoError(t, db.Exec(books).Error)
	return db
}

func randomISBN() string {
	id := uuid.New()
	isbn := "978"
	for _, b := range id[:10] {
		isbn += fmt.Sprintf("%d", int(b)%10)
	}
	return isbn[:13]
}

func mustCreateBook(t *testing.T, db *gorm.DB, mutate func(*models.Book)) *models.Book {
	t.Helper()

	book := &models.Book{
		ISBN:      randomISBN(),
		Title:     "Test Title",
		Author:    "Test Author",
		Publisher: "Test Publisher",
		Category:  "general",
		Stock:     1,
	}
	if mutate != nil {
		mutate(book)
	}
	require.NoError(t, db.Create(book).Error)
	return book
}
