package services

import (
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long a login session stays valid.
const DefaultSessionTTL = 24 * time.Hour

// SessionService manages server-side login sessions
type SessionService struct {
	sessions repositories.SessionRepository
	ttl      time.Duration
}

// NewSessionService creates a new SessionService
func NewSessionService(sessions repositories.SessionRepository, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{sessions: sessions, ttl: ttl}
}

// Create establishes a new session for the user and returns it
func (s *SessionService) Create(userID int) (*models.Session, error) {
	now := time.Now()
	session := &models.Session{
		Token:   uuid.NewString(),
		UserID:  userID,
		Created: now,
		Expires: now.Add(s.ttl),
	}

	if err := s.sessions.Put(session, s.ttl); err != nil {
		return nil, err
	}
	return session, nil
}

// Resolve returns the session for a token, treating expired sessions as
// absent and removing them.
func (s *SessionService) Resolve(token string) (*models.Session, error) {
	session, err := s.sessions.Get(token)
	if err != nil {
		return nil, err
	}

	if session.Expired() {
		_ = s.sessions.Delete(token)
		return nil, repositories.ErrNotFound
	}
	return session, nil
}

// Destroy removes a session. Destroying an absent session succeeds.
func (s *SessionService) Destroy(token string) error {
	return s.sessions.Delete(token)
}
