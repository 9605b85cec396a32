package protocol

// RESP reply tags, the first byte of every frame.
const (
	TagSimpleString = '+' // +OK\r\n
	TagError        = '-' // -ERR unknown command\r\n
	TagInteger      = ':' // :1000\r\n
	TagBulkString   = '$' // $6\r\nfoobar\r\n, $-1\r\n for null
	TagArray        = '*' // *2\r\n followed by two replies, *-1\r\n for null
)

// CRLF terminates every line-delimited field.
const CRLF = "\r\n"

const (
	// MaxBulkSize caps a bulk string length prefix before the payload is
	// allocated. Matches the server's own proto-max-bulk-len default.
	MaxBulkSize = 512 * 1024 * 1024

	// MaxArraySize caps an array reply element count.
	MaxArraySize = 1024 * 1024

	// errSnippetSize is how many trailing bytes are captured for the
	// diagnostic message when an unknown tag is read.
	errSnippetSize = 100
)
