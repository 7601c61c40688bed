package routes

import (
	"encoding/json"
	"net/http"
	"testing"

	"inkwell/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apiPost(title string) map[string]any {
	return map[string]any{
		"title":    title,
		"subtitle": "A subtitle",
		"img_url":  "https://example.com/img.jpg",
		"body":     "Body text long enough to pass validation",
	}
}

func TestAPIListEmpty(t *testing.T) {
	router := setupTestRouter(t)
	client := newTestClient(router)

	resp := listPosts(t, client)
	assert.Len(t, resp.Posts, 0)
}

func TestAPIMutationsAreAdminGated(t *testing.T) {
	router := setupTestRouter(t)

	anon := newTestClient(router)
	w := anon.doJSON(t, "POST", "/api/posts", apiPost("Nope"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := newTestClient(router)
	admin.register(t, "Alice", "a@x.com", "password1")
	member := newTestClient(router)
	member.register(t, "Bob", "b@x.com", "password2")

	w = member.doJSON(t, "POST", "/api/posts", apiPost("Still Nope"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = member.doJSON(t, "PUT", "/api/posts/1", apiPost("Still Nope"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = member.doJSON(t, "DELETE", "/api/posts/1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	assert.Len(t, listPosts(t, admin).Posts, 0)
}

func TestAPICreateAndShow(t *testing.T) {
	router := setupTestRouter(t)
	admin := newTestClient(router)
	admin.register(t, "Alice", "a@x.com", "password1")

	w := admin.doJSON(t, "POST", "/api/posts", apiPost("API Post"))
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "API Post", created.Title)
	assert.NotEmpty(t, created.Date)

	w = admin.doJSON(t, "GET", "/api/posts/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.Title, fetched.Title)
	require.NotNil(t, fetched.Author)
	assert.Equal(t, "Alice", fetched.Author.Name)
}

func TestAPICreateValidation(t *testing.T) {
	router := setupTestRouter(t)
	admin := newTestClient(router)
	admin.register(t, "Alice", "a@x.com", "password1")

	w := admin.doJSON(t, "POST", "/api/posts", map[string]any{
		"title": "Only a title",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, listPosts(t, admin).Posts, 0)
}

func TestAPICreateDuplicateTitle(t *testing.T) {
	router := setupTestRouter(t)
	admin := newTestClient(router)
	admin.register(t, "Alice", "a@x.com", "password1")

	w := admin.doJSON(t, "POST", "/api/posts", apiPost("Same Title"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = admin.doJSON(t, "POST", "/api/posts", apiPost("Same Title"))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAPIUpdatePreservesAuthorAndDate(t *testing.T) {
	router := setupTestRouter(t)
	admin := newTestClient(router)
	admin.register(t, "Alice", "a@x.com", "password1")

	w := admin.doJSON(t, "POST", "/api/posts", apiPost("Before"))
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = admin.doJSON(t, "PUT", "/api/posts/"+itoa(created.ID), apiPost("After"))
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, created.Date, updated.Date)
	assert.Equal(t, created.AuthorID, updated.AuthorID)
}

func TestAPIUpdateNotFound(t *testing.T) {
	router := setupTestRouter(t)
	admin := newTestClient(router)
	admin.register(t, "Alice", "a@x.com", "password1")

	w := admin.doJSON(t, "PUT", "/api/posts/999", apiPost("Ghost"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIDelete(t *testing.T) {
	router := setupTestRouter(t)
	admin := newTestClient(router)
	admin.register(t, "Alice", "a@x.com", "password1")

	w := admin.doJSON(t, "POST", "/api/posts", apiPost("Doomed"))
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = admin.doJSON(t, "DELETE", "/api/posts/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = admin.doJSON(t, "GET", "/api/posts/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = admin.doJSON(t, "DELETE", "/api/posts/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIShowInvalidID(t *testing.T) {
	router := setupTestRouter(t)
	client := newTestClient(router)

	// The route pattern only matches numeric IDs
	w := client.doJSON(t, "GET", "/api/posts/abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
