package domain

import "errors"

var (
	ErrIdeaNotFound  = errors.New("idea not found")
	ErrForbidden     = errors.New("only the idea author can do that")
	ErrInvalidStatus = errors.New("invalid idea status")
	ErrInvalidSort   = errors.New("invalid sort order")
)
