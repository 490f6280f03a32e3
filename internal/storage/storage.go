package storage

import (
	"errors"
)

var (
	ErrNoEvents = errors.New("no events")
	ErrClose    = errors.New("failed to close database")
)
