package protocol

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
	"strconv"
)

var crlfBytes = []byte(CRLF)

// AppendCommand appends the multi-bulk encoding of a command to dst and
// returns the extended slice: *<argc>\r\n then $<len>\r\n<bytes>\r\n per
// argument. Lengths are byte counts, so arguments may contain arbitrary
// bytes, including CR and LF.
func AppendCommand(dst []byte, args ...string) ([]byte, error) {
	if len(args) == 0 {
		return nil, ErrNoArguments
	}

	dst = append(dst, TagArray)
	dst = strconv.AppendInt(dst, int64(len(args)), 10)
	dst = append(dst, crlfBytes...)

	for _, arg := range args {
		dst = append(dst, TagBulkString)
		dst = strconv.AppendInt(dst, int64(len(arg)), 10)
		dst = append(dst, crlfBytes...)
		dst = append(dst, arg...)
		dst = append(dst, crlfBytes...)
	}
	return dst, nil
}

// ReadReply decodes exactly one reply from r, leaving the stream positioned
// at the start of the next reply.
//
// A "-" error reply decodes successfully to a Reply of type ServerError: it
// is well-formed wire data, and the connection layer decides how to surface
// it. Go errors returned here mean the frame itself could not be decoded:
//   - io.EOF: the stream ended cleanly before a reply began
//   - io.ErrUnexpectedEOF: the stream ended mid-frame
//   - *Error: malformed wire data, the connection must be closed
//   - other I/O errors from r
func ReadReply(r *bufio.Reader) (*Reply, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	switch tag {
	case TagSimpleString:
		line, err := readLine(r)
		if err != nil {
			return nil, err
		}
		return &Reply{Type: SimpleString, Str: string(line)}, nil

	case TagError:
		line, err := readLine(r)
		if err != nil {
			return nil, err
		}
		return &Reply{Type: ServerError, Str: string(line)}, nil

	case TagInteger:
		n, err := readInt(r)
		if err != nil {
			return nil, err
		}
		return &Reply{Type: Integer, Int: n}, nil

	case TagBulkString:
		return readBulk(r)

	case TagArray:
		return readArray(r)
	}

	return nil, unknownTagError(r, tag)
}

// readLine reads up to the next LF and returns the line without its CRLF
// terminator. Uses ReadSlice for zero-allocation reads; the returned slice is
// only valid until the next read, so callers copy what they keep.
func readLine(r *bufio.Reader) ([]byte, error) {
	line, err := r.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		// Line exceeds the buffer. ReadSlice consumed the bytes it returned,
		// so accumulate fragments until the delimiter arrives (allocates).
		full := append([]byte(nil), line...)
		for err == bufio.ErrBufferFull {
			line, err = r.ReadSlice('\n')
			full = append(full, line...)
		}
		line = full
	}
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	line = line[:len(line)-1]
	line = bytes.TrimSuffix(line, []byte{'\r'})
	return line, nil
}

// readInt reads one line and parses it as a signed decimal integer.
func readInt(r *bufio.Reader) (int64, error) {
	line, err := readLine(r)
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		slog.Error("redis: malformed integer field in reply", "field", string(line))
		return 0, NewError("malformed integer " + strconv.Quote(string(line)))
	}
	return n, nil
}

func readBulk(r *bufio.Reader) (*Reply, error) {
	length, err := readInt(r)
	if err != nil {
		return nil, err
	}

	if length == -1 {
		return &Reply{Type: BulkString, Null: true}, nil
	}
	if length < 0 || length > MaxBulkSize {
		return nil, NewError("invalid bulk string length " + strconv.FormatInt(length, 10))
	}

	// Payload plus the trailing CRLF in one read.
	buf := make([]byte, length+2)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if !bytes.HasSuffix(buf, crlfBytes) {
		return nil, NewError("bulk string not terminated by CRLF")
	}

	return &Reply{Type: BulkString, Bulk: buf[:length]}, nil
}

func readArray(r *bufio.Reader) (*Reply, error) {
	count, err := readInt(r)
	if err != nil {
		return nil, err
	}

	if count == -1 {
		return &Reply{Type: Array, Null: true}, nil
	}
	if count < 0 || count > MaxArraySize {
		return nil, NewError("invalid array length " + strconv.FormatInt(count, 10))
	}

	elems := make([]*Reply, 0, count)
	for i := int64(0); i < count; i++ {
		elem, err := ReadReply(r)
		if err != nil {
			if err == io.EOF {
				// EOF between array elements is still mid-frame.
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		elems = append(elems, elem)
	}
	return &Reply{Type: Array, Array: elems}, nil
}

// unknownTagError builds the diagnostic for an unrecognized reply tag,
// capturing whatever already sits in the read buffer without blocking.
func unknownTagError(r *bufio.Reader, tag byte) error {
	n := min(r.Buffered(), errSnippetSize)
	peeked, _ := r.Peek(n)
	snippet := append([]byte(nil), peeked...)

	slog.Error("redis: unknown reply tag", "tag", string(tag), "next", string(snippet))
	return &Error{
		Message: "unknown reply tag " + strconv.Quote(string(tag)),
		Snippet: snippet,
	}
}
