package services

import "errors"

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash.
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
	ErrAlreadyLiked       = errors.New("post already liked")
	ErrNotLiked           = errors.New("post has not yet been liked")
	ErrCommentNotFound    = errors.New("comment does not exist")
	ErrNotCommentAuthor   = errors.New("user is not the comment author")
)

type scanner interface {
	Scan(dest ...interface{}) error
}
