package models

import "time"

// Roles assignable to a user. The first account ever registered is seeded
// as the admin; everyone after that is a member.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User represents a registered account.
type User struct {
	ID           int    `json:"id" validate:"gte=0"`
	Name         string `json:"name" validate:"required,min=2,max=250"`
	Email        string `json:"email" validate:"required,email"`
	PasswordHash string `json:"-" validate:"required"`
	Role         string `json:"role" validate:"required,oneof=admin member"`
}

// Post represents a blog post with its comments.
type Post struct {
	ID       int    `json:"id" validate:"gte=0"`
	Title    string `json:"title" validate:"required,min=3,max=250"`
	Subtitle string `json:"subtitle" validate:"required,max=250"`
	Date     string `json:"date" validate:"required"`
	Body     string `json:"body" validate:"required,min=10"`
	ImgURL   string `json:"img_url" validate:"required,url"`
	AuthorID int    `json:"author_id" validate:"required,gte=1"`

	Author   *User      `json:"author,omitempty" validate:"-"`
	Comments []*Comment `json:"comments,omitempty" validate:"-"`
}

// Comment represents a reader comment on a blog post.
type Comment struct {
	ID       int    `json:"id" validate:"gte=0"`
	Text     string `json:"text" validate:"required,min=1,max=1000"`
	PostID   int    `json:"post_id" validate:"required,gte=1"`
	AuthorID int    `json:"author_id" validate:"required,gte=1"`

	Author *User `json:"author,omitempty" validate:"-"`
}

// Session is a server-side login session resolved from the session cookie.
type Session struct {
	Token   string    `json:"token"`
	UserID  int       `json:"user_id"`
	Expires time.Time `json:"expires"`
	Created time.Time `json:"created"`
}

// Expired reports whether the session is past its expiry time.
func (s *Session) Expired() bool {
	return time.Now().After(s.Expires)
}
