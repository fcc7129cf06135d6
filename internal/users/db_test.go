package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/litera-id/litera-backend/pkg/db/models"
	"github.com/litera-id/litera-backend/pkg/enums"
)

const sqliteUUID = `lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-4' || substr(hex(randomblob(2)),2) || '-' || substr('89ab', abs(random()) % 4 + 1, 1) || substr(hex(randomblob(2)),2) || '-' || hex(randomblob(6)))`

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	ddl := `
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
	require.NoError(t, db.Exec(ddl).Error)

	return db
}

func randomUsername(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString()[:8])
}

func mustCreateUser(t *testing.T, repo *Repository, mutate func(*CreateUserDTO)) *models.User {
	t.Helper()

	dto := CreateUserDTO{
		Username:     randomUsername("reader"),
		PasswordHash: "argon2id$fixture",
		Name:         "Fixture Reader",
		Role:         enums.UserRoleMember,
	}
	if mutate != nil {
		mutate(&dto)
	}

	user, err := repo.Create(context.Background(), dto)
	require.NoError(t, err)
	return user
}
