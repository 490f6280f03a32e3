package posts

import (
	"errors"
)

var (
	ErrInternal    = errors.New("internal error")
	ErrInvalidPost = errors.New("invalid post")
)
