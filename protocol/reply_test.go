package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplyAccessors(t *testing.T) {
	tests := []struct {
		name      string
		reply     *Reply
		wantText  string
		wantBytes []byte
	}{
		{
			name:      "simple string",
			reply:     &Reply{Type: SimpleString, Str: "OK"},
			wantText:  "OK",
			wantBytes: []byte("OK"),
		},
		{
			name:      "integer",
			reply:     &Reply{Type: Integer, Int: -42},
			wantText:  "-42",
			wantBytes: []byte("-42"),
		},
		{
			name:      "bulk string",
			reply:     &Reply{Type: BulkString, Bulk: []byte("foo")},
			wantText:  "foo",
			wantBytes: []byte("foo"),
		},
		{
			name:      "null bulk string",
			reply:     &Reply{Type: BulkString, Null: true},
			wantText:  "",
			wantBytes: nil,
		},
		{
			name:      "error",
			reply:     &Reply{Type: ServerError, Str: "ERR nope"},
			wantText:  "ERR nope",
			wantBytes: []byte("ERR nope"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantText, tt.reply.Text())
			assert.Equal(t, tt.wantBytes, tt.reply.Bytes())
		})
	}
}

func TestReplyString(t *testing.T) {
	tests := []struct {
		name  string
		reply *Reply
		want  string
	}{
		{
			name:  "simple string",
			reply: &Reply{Type: SimpleString, Str: "OK"},
			want:  "OK",
		},
		{
			name:  "error",
			reply: &Reply{Type: ServerError, Str: "ERR nope"},
			want:  "(error) ERR nope",
		},
		{
			name:  "integer",
			reply: &Reply{Type: Integer, Int: 12},
			want:  "(integer) 12",
		},
		{
			name:  "bulk string",
			reply: &Reply{Type: BulkString, Bulk: []byte("foo")},
			want:  `"foo"`,
		},
		{
			name:  "null bulk string",
			reply: &Reply{Type: BulkString, Null: true},
			want:  "(nil)",
		},
		{
			name:  "empty array",
			reply: &Reply{Type: Array, Array: []*Reply{}},
			want:  "(empty array)",
		},
		{
			name: "array",
			reply: &Reply{Type: Array, Array: []*Reply{
				{Type: BulkString, Bulk: []byte("foo")},
				{Type: Integer, Int: 3},
			}},
			want: "1) \"foo\"\n2) (integer) 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.reply.String())
		})
	}
}

func TestReplyTypeString(t *testing.T) {
	assert.Equal(t, "simple string", SimpleString.String())
	assert.Equal(t, "error", ServerError.String())
	assert.Equal(t, "integer", Integer.String())
	assert.Equal(t, "bulk string", BulkString.String())
	assert.Equal(t, "array", Array.String())
}
