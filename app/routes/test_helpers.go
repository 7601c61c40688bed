package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"inkwell/app/config"
	"inkwell/app/repositories"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func setupTestViews(t *testing.T) string {
	tmpDir := t.TempDir()
	viewsDir := filepath.Join(tmpDir, "views")

	dirs := []string{
		filepath.Join(viewsDir, "posts"),
		filepath.Join(viewsDir, "auth"),
		filepath.Join(viewsDir, "pages"),
	}
	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	templates := map[string]string{
		filepath.Join(viewsDir, "layout.html"): `{{define "layout"}}<html><body>` +
			`{{if .User}}<a href="/logout">Log Out</a>{{else}}<a href="/login">Login</a>{{end}}` +
			`{{if .Flash}}<div class="flash">{{.Flash}}</div>{{end}}` +
			`{{template "content" .}}</body></html>{{end}}`,
		filepath.Join(viewsDir, "posts/index.html"): `{{define "content"}}<div class="posts">` +
			`{{range .Data.Posts}}<h2>{{.Title}}</h2>{{end}}</div>{{end}}`,
		filepath.Join(viewsDir, "posts/show.html"): `{{define "content"}}<h1>{{.Data.Post.Title}}</h1>` +
			`{{range .Data.Post.Comments}}<p class="comment">{{.Text}} by {{.Author.Name}}</p>{{end}}{{end}}`,
		filepath.Join(viewsDir, "posts/make-post.html"): `{{define "content"}}` +
			`<form><input name="title" value="{{.Data.Post.Title}}"></form>{{end}}`,
		filepath.Join(viewsDir, "auth/register.html"): `{{define "content"}}<form id="register"></form>{{end}}`,
		filepath.Join(viewsDir, "auth/login.html"):    `{{define "content"}}<form id="login"></form>{{end}}`,
		filepath.Join(viewsDir, "pages/about.html"):   `{{define "content"}}<h1>About</h1>{{end}}`,
		filepath.Join(viewsDir, "pages/contact.html"): `{{define "content"}}<h1>Contact</h1>{{end}}`,
	}
	for path, content := range templates {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	return viewsDir
}

func setupTestRouter(t *testing.T) *mux.Router {
	sqlDB, err := repositories.OpenSQL(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	kv, err := repositories.OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	cfg := &config.Config{
		Server: config.ServerConfig{Addr: ":0"},
		Sessions: config.SessionsConfig{
			Secret: "test-session-signing-secret!",
			TTL:    time.Hour,
		},
		Views: config.ViewsConfig{
			Dir:       setupTestViews(t),
			StaticDir: t.TempDir(),
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return Setup(cfg, sqlDB, kv, logger)
}

// testClient drives the router while carrying cookies between requests,
// the way a browser would.
type testClient struct {
	router  http.Handler
	cookies map[string]*http.Cookie
}

func newTestClient(router http.Handler) *testClient {
	return &testClient{router: router, cookies: make(map[string]*http.Cookie)}
}

func (c *testClient) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	c.updateCookies(w)
	return w
}

func (c *testClient) doJSON(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	c.updateCookies(w)
	return w
}

func (c *testClient) updateCookies(w *httptest.ResponseRecorder) {
	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(c.cookies, cookie.Name)
		} else {
			c.cookies[cookie.Name] = cookie
		}
	}
}

func (c *testClient) register(t *testing.T, name, email, password string) {
	w := c.do("POST", "/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
}

func (c *testClient) login(t *testing.T, email, password string) {
	w := c.do("POST", "/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
}

func (c *testClient) logout(t *testing.T) {
	w := c.do("GET", "/logout", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func postForm(title string) url.Values {
	return url.Values{
		"title":    {title},
		"subtitle": {"A subtitle"},
		"img_url":  {"https://example.com/img.jpg"},
		"body":     {"Body text long enough to pass validation"},
	}
}

type postListResponse struct {
	Posts []struct {
		ID       int    `json:"id"`
		Title    string `json:"title"`
		Date     string `json:"date"`
		AuthorID int    `json:"author_id"`
	} `json:"posts"`
}

func listPosts(t *testing.T, c *testClient) postListResponse {
	w := c.doJSON(t, "GET", "/api/posts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp postListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
