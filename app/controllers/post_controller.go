package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/repositories"
	"inkwell/app/services"

	"github.com/gorilla/mux"
)

// PostController handles the web surface for blog posts and their comments
type PostController struct {
	Base
	posts    *services.PostService
	comments *services.CommentService
}

// NewPostController creates a new PostController
func NewPostController(posts *services.PostService, comments *services.CommentService, b Base) *PostController {
	return &PostController{Base: b, posts: posts, comments: comments}
}

// indexData is the page data for the post listing
type indexData struct {
	Posts []*models.Post
}

// showData is the page data for a single post
type showData struct {
	Post *models.Post
}

// makePostData is the page data for the shared create/edit form
type makePostData struct {
	Post    *models.Post
	Editing bool
}

// Index handles GET / with the full post listing
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.posts.List()
	if err != nil {
		pc.logger.Error("failed to list posts", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	pc.render(w, r, "index", indexData{Posts: posts})
}

// Show handles GET /post/{id}: the post body plus its comments and the
// comment form for logged-in readers.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	post, err := pc.posts.Get(id)
	if errors.Is(err, repositories.ErrNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		pc.logger.Error("failed to get post", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pc.render(w, r, "show", showData{Post: post})
}

// AddComment handles POST /post/{id}: a comment submission.
// Anonymous submitters are sent to the login page, matching the
// "Please login first." flow.
func (pc *PostController) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		pc.setFlash(w, "Please login first.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	_, err := pc.comments.Add(id, r.FormValue("text"), user)
	if errors.Is(err, repositories.ErrNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		pc.setFlash(w, "Your comment could not be saved.")
	}
	http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusSeeOther)
}

// New handles GET /new-post with the empty create form
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, "make-post", makePostData{Post: &models.Post{}})
}

// Create handles POST /new-post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())

	post, ok := pc.parsePostForm(w, r)
	if !ok {
		return
	}

	err := pc.posts.Create(post, user)
	if errors.Is(err, repositories.ErrDuplicate) {
		pc.renderFlash(w, r, "make-post", "A post with that title already exists.", makePostData{Post: post})
		return
	}
	if err != nil {
		pc.renderFlash(w, r, "make-post", "The post could not be saved: "+err.Error(), makePostData{Post: post})
		return
	}

	pc.logger.Info("post created", "id", post.ID, "title", post.Title, "author", user.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Edit handles GET /edit-post/{id} with the form pre-populated
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	post, err := pc.posts.Get(id)
	if errors.Is(err, repositories.ErrNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		pc.logger.Error("failed to get post", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pc.render(w, r, "make-post", makePostData{Post: post, Editing: true})
}

// Update handles POST /edit-post/{id}
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	post, ok := pc.parsePostForm(w, r)
	if !ok {
		return
	}

	err := pc.posts.Edit(id, post)
	if errors.Is(err, repositories.ErrNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, repositories.ErrDuplicate) {
		post.ID = id
		pc.renderFlash(w, r, "make-post", "A post with that title already exists.", makePostData{Post: post, Editing: true})
		return
	}
	if err != nil {
		post.ID = id
		pc.renderFlash(w, r, "make-post", "The post could not be saved: "+err.Error(), makePostData{Post: post, Editing: true})
		return
	}

	http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusSeeOther)
}

// Delete handles GET /delete/{id}
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	err := pc.posts.Delete(id)
	if errors.Is(err, repositories.ErrNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		pc.logger.Error("failed to delete post", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pc.logger.Info("post deleted", "id", id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (pc *PostController) postID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (pc *PostController) parsePostForm(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return nil, false
	}
	return &models.Post{
		Title:    r.FormValue("title"),
		Subtitle: r.FormValue("subtitle"),
		ImgURL:   r.FormValue("img_url"),
		Body:     r.FormValue("body"),
	}, true
}
