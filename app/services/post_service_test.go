package services

import (
	"testing"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostService() (*PostService, *mockPostRepo, *mockCommentRepo) {
	posts := newMockPostRepo()
	comments := newMockCommentRepo()
	return NewPostService(posts, comments), posts, comments
}

func validPost(title string) *models.Post {
	return &models.Post{
		Title:    title,
		Subtitle: "A subtitle",
		Body:     "Body text long enough to pass validation",
		ImgURL:   "https://example.com/img.jpg",
	}
}

func testAdmin() *models.User {
	return &models.User{ID: 1, Name: "Ada", Email: "ada@example.com", Role: models.RoleAdmin}
}

func TestPostServiceCreate(t *testing.T) {
	svc, _, _ := newTestPostService()

	post := validPost("Hello World")
	require.NoError(t, svc.Create(post, testAdmin()))

	assert.Equal(t, 1, post.ID)
	assert.Equal(t, 1, post.AuthorID)
	assert.Equal(t, time.Now().Format(models.DateLayout), post.Date)
}

func TestPostServiceCreateDuplicateTitle(t *testing.T) {
	svc, _, _ := newTestPostService()

	require.NoError(t, svc.Create(validPost("Hello World"), testAdmin()))
	err := svc.Create(validPost("Hello World"), testAdmin())
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
}

func TestPostServiceCreateInvalid(t *testing.T) {
	svc, _, _ := newTestPostService()

	post := validPost("Hello World")
	post.Body = "short"
	assert.Error(t, svc.Create(post, testAdmin()))
}

func TestPostServiceGetAttachesComments(t *testing.T) {
	svc, _, comments := newTestPostService()

	post := validPost("Hello World")
	require.NoError(t, svc.Create(post, testAdmin()))
	require.NoError(t, comments.Create(&models.Comment{Text: "hi", PostID: post.ID, AuthorID: 2}))

	got, err := svc.Get(post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "hi", got.Comments[0].Text)
}

func TestPostServiceGetNotFound(t *testing.T) {
	svc, _, _ := newTestPostService()

	_, err := svc.Get(42)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestPostServiceEdit(t *testing.T) {
	svc, posts, _ := newTestPostService()

	post := validPost("Original")
	require.NoError(t, svc.Create(post, testAdmin()))
	originalDate := post.Date

	updated := validPost("Renamed")
	updated.Subtitle = "New subtitle"
	updated.Body = "Completely rewritten body text"
	updated.ImgURL = "https://example.com/new.jpg"
	updated.AuthorID = 99 // must be ignored
	require.NoError(t, svc.Edit(post.ID, updated))

	got, err := posts.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "New subtitle", got.Subtitle)
	assert.Equal(t, 1, got.AuthorID, "edit never changes the author")
	assert.Equal(t, originalDate, got.Date, "edit never changes the date")
}

func TestPostServiceEditNotFound(t *testing.T) {
	svc, _, _ := newTestPostService()

	err := svc.Edit(42, validPost("Ghost"))
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestPostServiceDeleteRemovesComments(t *testing.T) {
	svc, posts, comments := newTestPostService()

	post := validPost("Doomed")
	require.NoError(t, svc.Create(post, testAdmin()))
	require.NoError(t, comments.Create(&models.Comment{Text: "hi", PostID: post.ID, AuthorID: 2}))

	require.NoError(t, svc.Delete(post.ID))

	_, err := posts.GetByID(post.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	remaining, err := comments.ListByPost(post.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	assert.ErrorIs(t, svc.Delete(post.ID), repositories.ErrNotFound)
}

func TestPostServiceList(t *testing.T) {
	svc, _, _ := newTestPostService()

	require.NoError(t, svc.Create(validPost("First"), testAdmin()))
	require.NoError(t, svc.Create(validPost("Second"), testAdmin()))

	posts, err := svc.List()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "First", posts[0].Title)
	assert.Equal(t, "Second", posts[1].Title)
}
