package protocol

import (
	"errors"
	"strconv"
)

// ErrNoArguments is returned when encoding a command with an empty argument
// list. The command name itself is the first argument.
var ErrNoArguments = errors.New("redis: command requires at least one argument")

// Error represents a protocol-level decoding failure: an unknown reply tag or
// an unparsable numeric field. After one, the stream position can no longer be
// trusted, so the connection must be closed.
type Error struct {
	Message string
	Snippet []byte // trailing bytes seen after the failure, for diagnostics
}

func (e *Error) Error() string {
	if len(e.Snippet) > 0 {
		return "redis protocol: " + e.Message + ", next bytes: " + strconv.Quote(string(e.Snippet))
	}
	return "redis protocol: " + e.Message
}

func NewError(message string) *Error {
	return &Error{Message: message}
}
