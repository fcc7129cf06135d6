package loans

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/litera-id/litera-backend/pkg/config"
	dbpkg "github.com/litera-id/litera-backend/pkg/db"
	"github.com/litera-id/litera-backend/pkg/db/models"
	"github.com/litera-id/litera-backend/pkg/enums"
)

const sqliteUUID = `lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-4' || substr(hex(randomblob(2)),2) || '-' || substr('89ab', abs(random()) % 4 + 1, 1) || substr(hex(randomblob(2)),2) || '-' || hex(randomblob(6)))`

func setupLoansTestClient(t *testing.T) *dbpkg.Client {
	t.Helper()

	client, err := dbpkg.New(context.Background(), config.DBConfig{
		Client: "sqlite",
		URL:    "file::memory:?cache=shared",
	}, nil)
	require.NoError(t, err)
	db := client.DB()

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY DEFAULT (` + sqliteUUID + `),
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'member',
  image TEXT,
  verified_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
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
	loans := `
CREATE TABLE IF NOT EXISTS loans (
  id TEXT PRIMARY KEY DEFAULT (` + sqliteUUID + `),
  user_id TEXT NOT NULL,
  book_isbn TEXT NOT NULL,
  qty INTEGER NOT NULL DEFAULT 1,
  notes TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'requested',
  requested_at DATETIME,
  approved_at DATETIME,
  loaned_at DATETIME,
  due_at DATETIME,
  cancelled_at DATETIME,
  denied_at DATETIME,
  returned_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME
);`
	inventoryEntries := `
CREATE TABLE IF NOT EXISTS inventory_entries (
  id TEXT PRIMARY KEY DEFAULT (` + sqliteUUID + `),
  book_isbn TEXT NOT NULL,
  delta INTEGER NOT NULL,
  reason TEXT NOT NULL,
  loan_id TEXT,
  actor_id TEXT,
  created_at DATETIME
);`
	achievements := `
CREATE TABLE IF NOT EXISTS achievements (
  id TEXT PRIMARY KEY DEFAULT (` + sqliteUUID + `),
  user_id TEXT NOT NULL,
  code TEXT NOT NULL,
  name TEXT NOT NULL,
  awarded_at DATETIME NOT NULL,
  created_at DATETIME,
  UNIQUE (user_id, code)
);`
	require.NoError(t, db.Exec(users).Error)
	require.NoError(t, db.Exec(books).Error)
	require.NoError(t, db.Exec(loans).Error)
	require.NoError(t, db.Exec(inventoryEntries).Error)
	require.NoError(t, db.Exec(achievements).Error)
	return client
}

func setupLoansTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return setupLoansTestClient(t).DB()
}

func mustCreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		Username:     fmt.Sprintf("reader_%s", uuid.NewString()[:8]),
		PasswordHash: "hash",
		Name:         "Repo Tester",
		Role:         enums.UserRoleMember,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func mustCreateTestBook(t *testing.T, db *gorm.DB, stock int) *models.Book {
	t.Helper()

	book := &models.Book{
		ISBN:      randomISBN(),
		Title:     "The Go Programming Language",
		Author:    "Alan Donovan",
		Publisher: "Addison-Wesley",
		Category:  "programming",
		Stock:     stock,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

func mustCreateTestLoan(t *testing.T, db *gorm.DB, userID uuid.UUID, isbn string, status enums.LoanStatus, mutate func(*models.Loan)) *models.Loan {
	t.Helper()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	loan := &models.Loan{
		ID:          uuid.New(),
		UserID:      userID,
		BookISBN:    isbn,
		Qty:         1,
		Status:      status,
		RequestedAt: &now,
	}
	if mutate != nil {
		mutate(loan)
	}
	require.NoError(t, db.Create(loan).Error)
	return loan
}

func randomISBN() string {
	id := uuid.New()
	isbn := "978"
	for _, b := range id[:10] {
		isbn += fmt.Sprintf("%d", int(b)%10)
	}
	return isbn[:13]
}
