package entity

import "errors"

// Domain errors for wordbooks, words and part-of-speech tags.
var (
	ErrWordbookNotFound    = errors.New("wordbook not found")
	ErrWordNotFound        = errors.New("word not found")
	ErrPosTagNotFound      = errors.New("part-of-speech tag not found")
	ErrInvalidWordbookName = errors.New("invalid wordbook name")
	ErrInvalidWordText     = errors.New("invalid word text")
	ErrInvalidPosTagName   = errors.New("invalid tag name")
	ErrInvalidUserID       = errors.New("invalid user ID")
)

// IsNotFound reports whether err is one of the not-found domain errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrWordbookNotFound) ||
		errors.Is(err, ErrWordNotFound) ||
		errors.Is(err, ErrPosTagNotFound)
}

// IsInvalid reports whether err is a validation error.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidWordbookName) ||
		errors.Is(err, ErrInvalidWordText) ||
		errors.Is(err, ErrInvalidPosTagName) ||
		errors.Is(err, ErrInvalidUserID)
}
