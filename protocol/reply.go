package protocol

import (
	"strconv"
	"strings"
)

// ReplyType identifies which RESP variant a Reply holds. The values are the
// wire tags themselves.
type ReplyType byte

const (
	SimpleString ReplyType = TagSimpleString
	ServerError  ReplyType = TagError
	Integer      ReplyType = TagInteger
	BulkString   ReplyType = TagBulkString
	Array        ReplyType = TagArray
)

func (t ReplyType) String() string {
	switch t {
	case SimpleString:
		return "simple string"
	case ServerError:
		return "error"
	case Integer:
		return "integer"
	case BulkString:
		return "bulk string"
	case Array:
		return "array"
	}
	return "unknown(" + strconv.Quote(string(byte(t))) + ")"
}

// Reply is one decoded RESP reply. Type identifies the variant; only the
// fields of that variant are populated.
type Reply struct {
	Type  ReplyType
	Str   string   // SimpleString and ServerError text
	Int   int64    // Integer value
	Bulk  []byte   // BulkString payload, nil when Null
	Null  bool     // BulkString or Array with a -1 length prefix
	Array []*Reply // Array elements, in order
}

// IsNull reports whether the reply is a null bulk string or null array.
func (r *Reply) IsNull() bool {
	return r.Null
}

// Bytes returns the reply payload as raw bytes. Null replies return nil.
func (r *Reply) Bytes() []byte {
	switch r.Type {
	case BulkString:
		return r.Bulk
	case SimpleString, ServerError:
		return []byte(r.Str)
	case Integer:
		return strconv.AppendInt(nil, r.Int, 10)
	}
	return nil
}

// Text returns the reply payload as a string. Null replies return "".
func (r *Reply) Text() string {
	switch r.Type {
	case SimpleString, ServerError:
		return r.Str
	case BulkString:
		return string(r.Bulk)
	case Integer:
		return strconv.FormatInt(r.Int, 10)
	}
	return ""
}

// String renders the reply the way redis-cli prints it. Used by the CLI tool
// and in error messages.
func (r *Reply) String() string {
	var sb strings.Builder
	r.format(&sb, "")
	return sb.String()
}

func (r *Reply) format(sb *strings.Builder, indent string) {
	switch r.Type {
	case SimpleString:
		sb.WriteString(r.Str)
	case ServerError:
		sb.WriteString("(error) ")
		sb.WriteString(r.Str)
	case Integer:
		sb.WriteString("(integer) ")
		sb.WriteString(strconv.FormatInt(r.Int, 10))
	case BulkString:
		if r.Null {
			sb.WriteString("(nil)")
		} else {
			sb.WriteString(strconv.Quote(string(r.Bulk)))
		}
	case Array:
		if r.Null {
			sb.WriteString("(nil)")
			return
		}
		if len(r.Array) == 0 {
			sb.WriteString("(empty array)")
			return
		}
		for i, elem := range r.Array {
			if i > 0 {
				sb.WriteByte('\n')
				sb.WriteString(indent)
			}
			prefix := strconv.Itoa(i+1) + ") "
			sb.WriteString(prefix)
			elem.format(sb, indent+strings.Repeat(" ", len(prefix)))
		}
	}
}
