package repositories

import (
	"database/sql"
	"fmt"

	"inkwell/app/models"
)

// SQLPostRepository implements PostRepository on SQLite
type SQLPostRepository struct {
	db *sql.DB
}

// NewSQLPostRepository creates a new SQLPostRepository
func NewSQLPostRepository(db *sql.DB) *SQLPostRepository {
	return &SQLPostRepository{db: db}
}

const postColumns = `p.id, p.title, p.subtitle, p.date, p.body, p.img_url, p.author_id,
	u.id, u.name, u.email, u.password_hash, u.role`

// Create persists a new post and fills in its assigned ID
func (r *SQLPostRepository) Create(post *models.Post) error {
	post.BeforeCreate()

	res, err := r.db.Exec(
		`INSERT INTO blog_posts (title, subtitle, date, body, img_url, author_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		post.Title, post.Subtitle, post.Date, post.Body, post.ImgURL, post.AuthorID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read post id: %w", err)
	}
	post.ID = int(id)
	return nil
}

// GetByID retrieves a post by ID with its author loaded
func (r *SQLPostRepository) GetByID(id int) (*models.Post, error) {
	row := r.db.QueryRow(
		`SELECT `+postColumns+`
		 FROM blog_posts p JOIN users u ON u.id = p.author_id
		 WHERE p.id = ?`, id)

	post, err := scanPost(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}
	return post, nil
}

// List retrieves all posts in id order with their authors loaded
func (r *SQLPostRepository) List() ([]*models.Post, error) {
	rows, err := r.db.Query(
		`SELECT ` + postColumns + `
		 FROM blog_posts p JOIN users u ON u.id = p.author_id
		 ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// Update overwrites the mutable fields of an existing post.
// Author and date are deliberately left out of the statement.
func (r *SQLPostRepository) Update(post *models.Post) error {
	res, err := r.db.Exec(
		`UPDATE blog_posts SET title = ?, subtitle = ?, body = ?, img_url = ? WHERE id = ?`,
		post.Title, post.Subtitle, post.Body, post.ImgURL, post.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update post: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a post by ID
func (r *SQLPostRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPost(scan func(dest ...any) error) (*models.Post, error) {
	var post models.Post
	var author models.User
	err := scan(
		&post.ID, &post.Title, &post.Subtitle, &post.Date, &post.Body, &post.ImgURL, &post.AuthorID,
		&author.ID, &author.Name, &author.Email, &author.PasswordHash, &author.Role,
	)
	if err != nil {
		return nil, err
	}
	post.Author = &author
	return &post, nil
}
