package tracker

import "errors"

var (
	// ErrNotFound indicates the uuid doesn't resolve to an entity owned
	// by the caller.
	ErrNotFound = errors.New("no such item")
)
