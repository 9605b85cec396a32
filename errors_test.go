package redis

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandErrorCode(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{message: "ERR unknown command 'FOO'", want: "ERR"},
		{message: "WRONGTYPE Operation against a key holding the wrong kind of value", want: "WRONGTYPE"},
		{message: "NOAUTH", want: "NOAUTH"},
		{message: "", want: ""},
	}

	for _, tt := range tests {
		err := &CommandError{Message: tt.message}
		assert.Equal(t, tt.want, err.Code())
	}
}

func TestCommandErrorMessage(t *testing.T) {
	err := &CommandError{Message: "ERR some message"}
	assert.Equal(t, "redis: ERR some message", err.Error())
}

func TestConnectionErrorUnwrap(t *testing.T) {
	err := &ConnectionError{Op: "read", Err: io.EOF}

	assert.Equal(t, "redis: read: EOF", err.Error())
	assert.True(t, errors.Is(err, io.EOF))
}
