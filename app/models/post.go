package models

import (
	"errors"
	"time"
)

// DateLayout is the human-readable layout stamped onto new posts,
// e.g. "April 05, 2024".
const DateLayout = "January 02, 2006"

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.Date == "" {
		return errors.New("date cannot be empty")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.Date == "" {
		p.Date = time.Now().Format(DateLayout)
	}
}

// AddComment attaches a comment to the post
func (p *Post) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}

	comment.PostID = p.ID
	p.Comments = append(p.Comments, comment)
	return nil
}
