package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/isdelr/devconnect-be/internal/database"
	"github.com/isdelr/devconnect-be/internal/models"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func mustCreateUser(t *testing.T, db *sql.DB, name, email string) models.User {
	t.Helper()
	user, err := NewUserService(db).CreateUser(context.Background(), name, email, "secret1")
	require.NoError(t, err)
	return user
}

func strPtr(s string) *string {
	return &s
}
