package repositories

import (
	"database/sql"
	"fmt"

	"inkwell/app/models"
)

// SQLUserRepository implements UserRepository on SQLite
type SQLUserRepository struct {
	db *sql.DB
}

// NewSQLUserRepository creates a new SQLUserRepository
func NewSQLUserRepository(db *sql.DB) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

// Create persists a new user and fills in its assigned ID
func (r *SQLUserRepository) Create(user *models.User) error {
	res, err := r.db.Exec(
		`INSERT INTO users (name, email, password_hash, role) VALUES (?, ?, ?, ?)`,
		user.Name, user.Email, user.PasswordHash, user.Role,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	user.ID = int(id)
	return nil
}

// GetByID retrieves a user by primary key
func (r *SQLUserRepository) GetByID(id int) (*models.User, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, name, email, password_hash, role FROM users WHERE id = ?`, id))
}

// GetByEmail retrieves a user by email, the login key
func (r *SQLUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, name, email, password_hash, role FROM users WHERE email = ?`, email))
}

// Count returns the number of registered users
func (r *SQLUserRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func (r *SQLUserRepository) scanOne(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}
