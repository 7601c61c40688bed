package repositories

import (
	"testing"

	"inkwell/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepositoryCreateAndList(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "ada@example.com", models.RoleAdmin)
	commenter := createTestUser(t, db, "bob@example.com", models.RoleMember)
	post := createTestPost(t, db, "Commented Post", author.ID)
	other := createTestPost(t, db, "Quiet Post", author.ID)

	repo := NewSQLCommentRepository(db)
	comment := &models.Comment{Text: "great read", PostID: post.ID, AuthorID: commenter.ID}
	require.NoError(t, repo.Create(comment))
	assert.Equal(t, 1, comment.ID)

	comments, err := repo.ListByPost(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "great read", comments[0].Text)
	require.NotNil(t, comments[0].Author)
	assert.Equal(t, "bob@example.com", comments[0].Author.Email)

	// Comments stay scoped to the post they were written on.
	comments, err = repo.ListByPost(other.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentRepositoryDeleteByPost(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "ada@example.com", models.RoleAdmin)
	post := createTestPost(t, db, "Commented Post", author.ID)

	repo := NewSQLCommentRepository(db)
	require.NoError(t, repo.Create(&models.Comment{Text: "one", PostID: post.ID, AuthorID: author.ID}))
	require.NoError(t, repo.Create(&models.Comment{Text: "two", PostID: post.ID, AuthorID: author.ID}))

	require.NoError(t, repo.DeleteByPost(post.ID))

	comments, err := repo.ListByPost(post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
