package services

import (
	"errors"
	"fmt"
	"strings"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

var (
	// ErrEmailTaken means registration was attempted with an email that
	// already has an account. Callers redirect to the login page.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUnknownUser means login was attempted with an email that has no
	// account. Distinguished from ErrBadCredentials in the user-visible
	// message.
	ErrUnknownUser = errors.New("no account with that email")

	// ErrBadCredentials means the password did not verify.
	ErrBadCredentials = errors.New("password incorrect")
)

// UserService handles registration and authentication
type UserService struct {
	users repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register creates a new user with a hashed password. The first user ever
// registered becomes the admin; everyone after that is a member.
func (s *UserService) Register(name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	role := models.RoleMember
	count, err := s.users.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if count == 0 {
		role = models.RoleAdmin
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}

	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies email/password and returns the matching user.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, err
	}

	if !VerifyPassword(user.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// Get retrieves a user by ID
func (s *UserService) Get(id int) (*models.User, error) {
	return s.users.GetByID(id)
}
