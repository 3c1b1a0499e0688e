package listener

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPort    = errors.New("port must be within 0-65535")
	ErrAlreadyStarted = errors.New("listener already started")
	ErrClosed         = errors.New("listener is closed")
)

// Any OS level failure on the socket. Op is "bind" or "read".
type SocketError struct {
	Op  string
	Err error
}

func (e *SocketError) Error() string {
	return fmt.Sprintf("socket %s failed: %v", e.Op, e.Err)
}

func (e *SocketError) Unwrap() error {
	return e.Err
}
