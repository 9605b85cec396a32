package redis

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConnectionClosed is returned by operations on a connection that has
	// been closed, either explicitly or after a fatal error.
	ErrConnectionClosed = errors.New("redis: connection closed")
)

// CommandError is an error reply sent by the server for one command, such as
// a wrong-type operation or an unknown command. It is a normal outcome of a
// well-formed exchange: the connection stays usable and the caller may keep
// issuing commands.
type CommandError struct {
	Message string
}

func (e *CommandError) Error() string {
	return "redis: " + e.Message
}

// Code returns the leading word of the server message, the conventional error
// class ("ERR", "WRONGTYPE", ...).
func (e *CommandError) Code() string {
	if i := strings.IndexByte(e.Message, ' '); i > 0 {
		return e.Message[:i]
	}
	return e.Message
}

// ConnectionError wraps an I/O failure on the underlying stream. The
// connection is no longer usable when one occurs.
type ConnectionError struct {
	Op  string // operation that failed: dial, write, read
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("redis: %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
