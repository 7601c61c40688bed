package repositories

import (
	"database/sql"
	"fmt"

	"inkwell/app/models"
)

// SQLCommentRepository implements CommentRepository on SQLite
type SQLCommentRepository struct {
	db *sql.DB
}

// NewSQLCommentRepository creates a new SQLCommentRepository
func NewSQLCommentRepository(db *sql.DB) *SQLCommentRepository {
	return &SQLCommentRepository{db: db}
}

// Create persists a new comment and fills in its assigned ID
func (r *SQLCommentRepository) Create(comment *models.Comment) error {
	res, err := r.db.Exec(
		`INSERT INTO comments (text, post_id, author_id) VALUES (?, ?, ?)`,
		comment.Text, comment.PostID, comment.AuthorID,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read comment id: %w", err)
	}
	comment.ID = int(id)
	return nil
}

// ListByPost retrieves the comments on a post in id order, each with
// its author loaded for display.
func (r *SQLCommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	rows, err := r.db.Query(
		`SELECT c.id, c.text, c.post_id, c.author_id, u.id, u.name, u.email, u.password_hash, u.role
		 FROM comments c JOIN users u ON u.id = c.author_id
		 WHERE c.post_id = ?
		 ORDER BY c.id`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		var author models.User
		err := rows.Scan(
			&comment.ID, &comment.Text, &comment.PostID, &comment.AuthorID,
			&author.ID, &author.Name, &author.Email, &author.PasswordHash, &author.Role,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comment.Author = &author
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}

// DeleteByPost removes all comments on a post
func (r *SQLCommentRepository) DeleteByPost(postID int) error {
	if _, err := r.db.Exec(`DELETE FROM comments WHERE post_id = ?`, postID); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}
