package loans

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/litera-id/litera-backend/pkg/db/models"
	"github.com/litera-id/litera-backend/pkg/enums"
	"github.com/litera-id/litera-backend/pkg/pagination"
)

func TestRepositoryCreateAndFind(t *testing.T) {
	db := setupLoansTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user := mustCreateTestUser(t, db)
	book := mustCreateTestBook(t, db, 5)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, &models.Loan{
		UserID:      user.ID,
		BookISBN:    book.ISBN,
		Qty:         2,
		Notes:       "weekend reading",
		Status:      enums.LoanStatusRequested,
		RequestedAt: &now,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)
	assert.Equal(t, 2, found.Qty)
	require.NotNil(t, found.Book)
	assert.Equal(t, book.Title, found.Book.Title)
	require.NotNil(t, found.User)
	assert.Equal(t, user.Username, found.User.Username)
}

func TestRepositoryListFilters(t *testing.T) {
	db := setupLoansTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	alice := mustCreateTestUser(t, db)
	bob := mustCreateTestUser(t, db)
	book := mustCreateTestBook(t, db, 5)
	otherBook := mustCreateTestBook(t, db, 5)

	mustCreateTestLoan(t, db, alice.ID, book.ISBN, enums.LoanStatusRequested, nil)
	mustCreateTestLoan(t, db, alice.ID, otherBook.ISBN, enums.LoanStatusReturned, nil)
	mustCreateTestLoan(t, db, bob.ID, book.ISBN, enums.LoanStatusRequested, nil)

	params := pagination.Params{Page: 1, Limit: 10}

	rows, total, err := repo.List(ctx, params, ListFilters{UserID: &alice.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, rows, 2)

	status := enums.LoanStatusReturned
	rows, total, err = repo.List(ctx, params, ListFilters{UserID: &alice.ID, Status: &status})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, otherBook.ISBN, rows[0].BookISBN)

	_, total, err = repo.List(ctx, params, ListFilters{UserID: &alice.ID, ISBN: book.ISBN})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestRepositoryAdjustBookStock(t *testing.T) {
	db := setupLoansTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	book := mustCreateTestBook(t, db, 3)

	require.NoError(t, repo.AdjustBookStock(ctx, book.ISBN, -2))
	reloaded, err := repo.FindBookByISBN(ctx, book.ISBN)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Stock)

	require.NoError(t, repo.AdjustBookStock(ctx, book.ISBN, 2))
	reloaded, err = repo.FindBookByISBN(ctx, book.ISBN)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.Stock)

	err = repo.AdjustBookStock(ctx, "0000000000000", 1)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryAppendInventoryEntry(t *testing.T) {
	db := setupLoansTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user := mustCreateTestUser(t, db)
	book := mustCreateTestBook(t, db, 3)
	loan := mustCreateTestLoan(t, db, user.ID, book.ISBN, enums.LoanStatusLoaned, nil)

	err := repo.AppendInventoryEntry(ctx, &models.InventoryEntry{
		BookISBN: book.ISBN,
		Delta:    -1,
		Reason:   enums.InventoryReasonLoaned,
		LoanID:   &loan.ID,
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.InventoryEntry{}).Where("book_isbn = ?", book.ISBN).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRepositoryInsertAchievementIfAbsent(t *testing.T) {
	db := setupLoansTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user := mustCreateTestUser(t, db)
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	awarded, err := repo.InsertAchievementIfAbsent(ctx, user.ID, enums.AchievementFirstLoan, at)
	require.NoError(t, err)
	assert.True(t, awarded)

	awarded, err = repo.InsertAchievementIfAbsent(ctx, user.ID, enums.AchievementFirstLoan, at.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, awarded)

	var count int64
	require.NoError(t, db.Model(&models.Achievement{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRepositoryMarkOverdue(t *testing.T) {
	db := setupLoansTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user := mustCreateTestUser(t, db)
	book := mustCreateTestBook(t, db, 5)

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	pastDue := now.Add(-48 * time.Hour)
	futureDue := now.Add(48 * time.Hour)
	loanedAt := now.Add(-10 * 24 * time.Hour)

	late := mustCreateTestLoan(t, db, user.ID, book.ISBN, enums.LoanStatusLoaned, func(l *models.Loan) {
		l.LoanedAt = &loanedAt
		l.DueAt = &pastDue
	})
	onTime := mustCreateTestLoan(t, db, user.ID, book.ISBN, enums.LoanStatusLoaned, func(l *models.Loan) {
		l.LoanedAt = &loanedAt
		l.DueAt = &futureDue
	})
	requested := mustCreateTestLoan(t, db, user.ID, book.ISBN, enums.LoanStatusRequested, nil)

	flipped, err := repo.MarkOverdue(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, flipped)

	reloaded, err := repo.FindByID(ctx, late.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.LoanStatusOverdue, reloaded.Status)

	reloaded, err = repo.FindByID(ctx, onTime.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.LoanStatusLoaned, reloaded.Status)

	reloaded, err = repo.FindByID(ctx, requested.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.LoanStatusRequested, reloaded.Status)

	// A second sweep finds nothing left to flip.
	flipped, err = repo.MarkOverdue(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 0, flipped)
}

func TestRepositoryMilestoneCounters(t *testing.T) {
	db := setupLoansTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user := mustCreateTestUser(t, db)
	idle := mustCreateTestUser(t, db)
	book := mustCreateTestBook(t, db, 10)

	loanedAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	returnedAt := loanedAt.Add(72 * time.Hour)
	for i := 0; i < 3; i++ {
		mustCreateTestLoan(t, db, user.ID, book.ISBN, enums.LoanStatusReturned, func(l *models.Loan) {
			l.LoanedAt = &loanedAt
			l.ReturnedAt = &returnedAt
		})
	}
	mustCreateTestLoan(t, db, user.ID, book.ISBN, enums.LoanStatusRequested, nil)

	count, err := repo.CountByUserAndStatus(ctx, user.ID, enums.LoanStatusReturned)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	count, err = repo.CountLoanedByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	count, err = repo.CountLoanedByUser(ctx, idle.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	ids, err := repo.ListUsersWithLoanActivity(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, user.ID)
	assert.NotContains(t, ids, idle.ID)
}

func TestRepositorySoftDelete(t *testing.T) {
	db := setupLoansTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user := mustCreateTestUser(t, db)
	book := mustCreateTestBook(t, db, 5)
	loan := mustCreateTestLoan(t, db, user.ID, book.ISBN, enums.LoanStatusRequested, nil)

	require.NoError(t, repo.SoftDelete(ctx, loan.ID))

	_, err := repo.FindByID(ctx, loan.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Loan{}).Where("id = ?", loan.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
