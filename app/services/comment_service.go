package services

import (
	"errors"
	"fmt"
	"strings"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// ErrAuthRequired means a comment was submitted without a logged-in user.
var ErrAuthRequired = errors.New("login required")

// CommentService handles business logic for comments
type CommentService struct {
	comments repositories.CommentRepository
	posts    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(comments repositories.CommentRepository, posts repositories.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// Add creates a comment by author on the given post
func (s *CommentService) Add(postID int, text string, author *models.User) (*models.Comment, error) {
	if author == nil {
		return nil, ErrAuthRequired
	}

	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     strings.TrimSpace(text),
		AuthorID: author.ID,
	}
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}
	if err := comment.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comment: %w", err)
	}

	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}
	comment.Author = author
	return comment, nil
}

// ListByPost retrieves the comments on a post
func (s *CommentService) ListByPost(postID int) ([]*models.Comment, error) {
	return s.comments.ListByPost(postID)
}
