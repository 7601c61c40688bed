package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/repositories"
	"inkwell/app/services"

	"github.com/gorilla/mux"
)

// APIController handles the JSON surface for blog posts
type APIController struct {
	Base
	posts *services.PostService
}

// NewAPIController creates a new APIController
func NewAPIController(posts *services.PostService, b Base) *APIController {
	return &APIController{Base: b, posts: posts}
}

// Index handles GET /api/posts
func (ac *APIController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := ac.posts.List()
	if err != nil {
		ac.jsonError(w, "Failed to fetch posts", http.StatusInternalServerError)
		return
	}
	ac.sendJSON(w, map[string]any{"posts": posts})
}

// Show handles GET /api/posts/{id}
func (ac *APIController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := ac.postID(w, r)
	if !ok {
		return
	}

	post, err := ac.posts.Get(id)
	if errors.Is(err, repositories.ErrNotFound) {
		ac.jsonError(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		ac.jsonError(w, "Failed to fetch post", http.StatusInternalServerError)
		return
	}
	ac.sendJSON(w, post)
}

// Create handles POST /api/posts (admin-gated by the router)
func (ac *APIController) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())

	var post models.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		ac.jsonError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	err := ac.posts.Create(&post, user)
	if errors.Is(err, repositories.ErrDuplicate) {
		ac.jsonError(w, "A post with that title already exists", http.StatusConflict)
		return
	}
	if err != nil {
		ac.jsonError(w, "Failed to create post: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(post)
}

// Update handles PUT /api/posts/{id} (admin-gated by the router)
func (ac *APIController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ac.postID(w, r)
	if !ok {
		return
	}

	var post models.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		ac.jsonError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	err := ac.posts.Edit(id, &post)
	if errors.Is(err, repositories.ErrNotFound) {
		ac.jsonError(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		ac.jsonError(w, "Failed to update post: "+err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := ac.posts.Get(id)
	if err != nil {
		ac.jsonError(w, "Failed to fetch post", http.StatusInternalServerError)
		return
	}
	ac.sendJSON(w, updated)
}

// Delete handles DELETE /api/posts/{id} (admin-gated by the router)
func (ac *APIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ac.postID(w, r)
	if !ok {
		return
	}

	err := ac.posts.Delete(id)
	if errors.Is(err, repositories.ErrNotFound) {
		ac.jsonError(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		ac.jsonError(w, "Failed to delete post", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ac *APIController) postID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		ac.jsonError(w, "Invalid post ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
