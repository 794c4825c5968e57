package repository

import "errors"

var (
	ErrNotFound    = errors.New("session not found in store")
	ErrUnavailable = errors.New("session store unavailable")
	ErrInvalidID   = errors.New("session id is empty")
)
