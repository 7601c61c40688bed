package repositories

import (
	"database/sql"
	"testing"

	"inkwell/app/models"

	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := OpenSQL(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, email, role string) *models.User {
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "pbkdf2:sha256:600000$abcd$ef01",
		Role:         role,
	}
	require.NoError(t, NewSQLUserRepository(db).Create(user))
	return user
}

func createTestPost(t *testing.T, db *sql.DB, title string, authorID int) *models.Post {
	post := &models.Post{
		Title:    title,
		Subtitle: "A subtitle",
		Body:     "Body text long enough to pass validation",
		ImgURL:   "https://example.com/img.jpg",
		AuthorID: authorID,
	}
	require.NoError(t, NewSQLPostRepository(db).Create(post))
	return post
}
