package models

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	return validate.Struct(u)
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// GravatarURL returns the avatar URL for the user, derived from the
// md5 of the trimmed, lowercased email address.
func (u *User) GravatarURL(size int) string {
	normalized := strings.ToLower(strings.TrimSpace(u.Email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=%d&d=retro&r=g", hash, size)
}
