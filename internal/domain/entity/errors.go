package entity

import "errors"

var (
	// ErrInvalidReference indicates a parent reference points to a
	// non-existent or non-owned entity.
	ErrInvalidReference = errors.New("invalid parent reference")
	// ErrInvalidDuration indicates a time entry ends before it starts, or
	// a duration input failed to parse.
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrUnknownKind indicates an unrecognized entity kind.
	ErrUnknownKind = errors.New("unknown entity kind")
	// ErrInvalidInput indicates a patch or create request is malformed.
	ErrInvalidInput = errors.New("invalid input")
)
