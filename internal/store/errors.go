package store

import "errors"

// ErrInvalidID indicates the session key is incomplete.
var ErrInvalidID = errors.New("invalid session key")
