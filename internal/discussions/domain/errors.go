package domain

import "errors"

var (
	ErrIdeaNotFound       = errors.New("idea not found")
	ErrDiscussionNotFound = errors.New("discussion not found")
	ErrReplyNotFound      = errors.New("reply not found")
	ErrForbidden          = errors.New("not allowed to modify this discussion")
	ErrParentNotInThread  = errors.New("parent reply belongs to another discussion")
)
