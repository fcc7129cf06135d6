package inventory

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/litera-id/litera-backend/pkg/config"
	dbpkg "github.com/litera-id/litera-backend/pkg/db"
	"github.com/litera-id/litera-backend/pkg/db/models"
)

const sqliteUUID = `lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-4' || substr(hex(randomblob(2)),2) || '-' || substr('89ab', abs(random()) % 4 + 1, 1) || substr(hex(randomblob(2)),2) || '-' || hex(randomblob(6)))`

func setupInventoryTestClient(t *testing.T) *dbpkg.Client {
	t.Helper()

	client, err := dbpkg.New(context.Background(), config.DBConfig{
		Client: "sqlite",
		URL:    "file::memory:?cache=shared",
	}, nil)
	require.NoError(t, err)
	db := client.DB()

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
	entries := `
CREATE TABLE IF NOT EXISTS inventory_entries (
  id TEXT PRIMARY KEY DEFAULT (` + sqliteUUID + `),
  book_isbn TEXT NOT NULL,
  delta INTEGER NOT NULL,
  reason TEXT NOT NULL,
  loan_id TEXT,
  actor_id TEXT,
  created_at DATETIME
);`
	for _, ddl := range []string{books, entries} {
		require.NoError(t, db.Exec(ddl).Error)
	}

	return client
}

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return setupInventoryTestClient(t).DB()
}

func randomISBN() string {
	id := uuid.New()
	isbn := "978"
	for _, b := range id {
		isbn += fmt.Sprintf("%d", b%10)
		if len(isbn) == 13 {
			break
		}
	}
	return isbn
}

func mustCreateTestBook(t *testing.T, db *gorm.DB, stock int) *models.Book {
	t.Helper()

	book := &models.Book{
		ISBN:      randomISBN(),
		Title:     "Audit Fixture",
		Author:    "Fixture Author",
		Publisher: "Fixture Press",
		Category:  "fiction",
		Stock:     stock,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}
