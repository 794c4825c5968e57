package relay

import "errors"

var (
	ErrCallNotFound = errors.New("call not found")
	ErrCallNotBound = errors.New("call has no conversation session")
)
