package services

import (
	"fmt"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
}

// NewPostService creates a new PostService
func NewPostService(posts repositories.PostRepository, comments repositories.CommentRepository) *PostService {
	return &PostService{posts: posts, comments: comments}
}

// Create creates a new post owned by author, stamped with the current date
func (s *PostService) Create(post *models.Post, author *models.User) error {
	post.AuthorID = author.ID
	post.Date = time.Now().Format(models.DateLayout)

	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	if err := s.posts.Create(post); err != nil {
		return err
	}
	post.Author = author
	return nil
}

// Get retrieves a post by ID with its author and comments
func (s *PostService) Get(id int) (*models.Post, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	for _, comment := range comments {
		if err := post.AddComment(comment); err != nil {
			return nil, err
		}
	}

	return post, nil
}

// List retrieves all posts in id order
func (s *PostService) List() ([]*models.Post, error) {
	return s.posts.List()
}

// Edit overwrites the mutable fields of an existing post.
// Author and creation date are never touched.
func (s *PostService) Edit(id int, updated *models.Post) error {
	existing, err := s.posts.GetByID(id)
	if err != nil {
		return err
	}

	existing.Title = updated.Title
	existing.Subtitle = updated.Subtitle
	existing.ImgURL = updated.ImgURL
	existing.Body = updated.Body

	if err := existing.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	return s.posts.Update(existing)
}

// Delete removes a post and all its comments
func (s *PostService) Delete(id int) error {
	if _, err := s.posts.GetByID(id); err != nil {
		return err
	}

	if err := s.comments.DeleteByPost(id); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return s.posts.Delete(id)
}
