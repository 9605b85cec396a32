package redis

import (
	"bufio"
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/pior/redis/protocol"
)

var encodeBuffers = newRequestBufferPool(256)

// Connection owns one duplex stream to a redis server. Each exchange (write
// the request, read its reply) runs under a mutex, so concurrent callers
// serialize cleanly instead of interleaving frames.
//
// A transport or protocol failure closes the connection: the stream may sit
// mid-frame and its position can no longer be trusted. There is no
// reconnection logic; dial a new connection instead.
type Connection struct {
	addr     string
	conn     net.Conn
	reader   *bufio.Reader
	mu       sync.Mutex
	lastUsed time.Time
	closed   bool
}

// NewConnection dials addr with the given timeout.
func NewConnection(addr string, timeout time.Duration) (*Connection, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, &ConnectionError{Op: "dial", Err: err}
	}
	return newConnection(conn, addr), nil
}

// NewConnectionFromConn wraps an established stream. Used by tests and by
// callers that dial themselves.
func NewConnectionFromConn(conn net.Conn) *Connection {
	return newConnection(conn, conn.RemoteAddr().String())
}

func newConnection(conn net.Conn, addr string) *Connection {
	return &Connection{
		addr:     addr,
		conn:     conn,
		reader:   bufio.NewReader(conn),
		lastUsed: time.Now(),
	}
}

// Do sends one command and reads its matching reply. A "-" reply from the
// server is returned as a *CommandError and leaves the connection open.
func (c *Connection) Do(ctx context.Context, args ...string) (*protocol.Reply, error) {
	replies, err := c.DoMulti(ctx, [][]string{args})
	if err != nil {
		return nil, err
	}

	reply := replies[0]
	if reply.Type == protocol.ServerError {
		return nil, &CommandError{Message: reply.Str}
	}
	return reply, nil
}

// DoMulti pipelines several commands: all requests are written, then all
// replies are read, under one critical section. Error replies stay in the
// returned slice as ServerError values, since each pipelined command fails
// individually. Transport and protocol failures abort the whole batch.
func (c *Connection) DoMulti(ctx context.Context, cmds [][]string) ([]*protocol.Reply, error) {
	if len(cmds) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Encode before taking the lock: a rejected command must not reach the
	// wire, and encoding needs no connection state.
	bufp := encodeBuffers.Get()
	defer encodeBuffers.Put(bufp)

	buf := *bufp
	var err error
	for _, args := range cmds {
		buf, err = protocol.AppendCommand(buf, args...)
		if err != nil {
			return nil, err
		}
	}
	*bufp = buf

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrConnectionClosed
	}

	if deadline, ok := ctx.Deadline(); ok {
		c.conn.SetDeadline(deadline)
	} else {
		c.conn.SetDeadline(time.Time{})
	}

	if _, err := c.conn.Write(buf); err != nil {
		c.markClosed()
		return nil, &ConnectionError{Op: "write", Err: err}
	}

	replies := make([]*protocol.Reply, 0, len(cmds))
	for range cmds {
		reply, err := protocol.ReadReply(c.reader)
		if err != nil {
			c.markClosed()
			var perr *protocol.Error
			if errors.As(err, &perr) {
				return nil, err
			}
			return nil, &ConnectionError{Op: "read", Err: err}
		}
		replies = append(replies, reply)
	}

	c.lastUsed = time.Now()
	return replies, nil
}

// LastUsed returns when the connection last completed an exchange.
func (c *Connection) LastUsed() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastUsed
}

// IsClosed returns whether the connection is closed.
func (c *Connection) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Addr returns the server address.
func (c *Connection) Addr() string {
	return c.addr
}

// Close closes the connection.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	return c.conn.Close()
}

// markClosed closes the connection after a fatal error (must be called with
// lock held). The stream error is intentionally dropped: the operation error
// is the one the caller needs.
func (c *Connection) markClosed() {
	if !c.closed {
		c.closed = true
		c.conn.Close()
	}
}
