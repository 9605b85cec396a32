package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/pior/redis/protocol"
)

// DefaultTimeout bounds dialing and any command whose context carries no
// deadline.
const DefaultTimeout = 5 * time.Second

// Item is the result of a Get.
type Item struct {
	Key   string
	Value []byte
	Found bool // whether the key existed on the server
}

type Querier interface {
	Get(ctx context.Context, key string) (Item, error)
	Set(ctx context.Context, key string, value []byte) error
	Incr(ctx context.Context, key string) (int64, error)
	Del(ctx context.Context, keys ...string) (int64, error)
}

// Config holds configuration for the client's connection.
type Config struct {
	// Timeout bounds dialing and each command whose context has no deadline.
	// Zero means DefaultTimeout.
	Timeout time.Duration

	// Dialer is the net.Dialer used to establish the connection.
	// If nil, a default net.Dialer is used.
	Dialer *net.Dialer
}

// Client is a redis client over a single connection. It is safe for
// concurrent use: each command runs as one atomic write-then-read exchange on
// the connection. There is no pooling and no reconnection; after a transport
// or protocol failure, create a new client.
type Client struct {
	conn    *Connection
	timeout time.Duration
}

var _ Querier = (*Client)(nil)

// NewClient connects to a redis server at addr ("host:port").
func NewClient(addr string, config Config) (*Client, error) {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	dialer := config.Dialer
	if dialer == nil {
		dialer = &net.Dialer{}
	}

	dialCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	netConn, err := dialer.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return nil, &ConnectionError{Op: "dial", Err: err}
	}

	client := NewClientFromConn(netConn, config)
	client.conn.addr = addr
	return client, nil
}

// NewClientFromConn wraps an established stream. Used by tests and by callers
// with their own transport setup.
func NewClientFromConn(conn net.Conn, config Config) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		conn:    NewConnectionFromConn(conn),
		timeout: timeout,
	}
}

// Do sends a raw command and returns its decoded reply. Every convenience
// method reduces to it. A "-" reply from the server is returned as a
// *CommandError; the connection stays usable after one.
func (c *Client) Do(ctx context.Context, args ...string) (*protocol.Reply, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.conn.Do(ctx, args...)
}

// DoMulti pipelines several commands over one exchange. See
// Connection.DoMulti for the error contract.
func (c *Client) DoMulti(ctx context.Context, cmds ...[]string) ([]*protocol.Reply, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.conn.DoMulti(ctx, cmds)
}

// Get fetches a key. A missing key is not an error: Item.Found is false.
func (c *Client) Get(ctx context.Context, key string) (Item, error) {
	reply, err := c.Do(ctx, "GET", key)
	if err != nil {
		return Item{Key: key}, err
	}
	if reply.IsNull() {
		return Item{Key: key}, nil
	}
	return Item{Key: key, Value: reply.Bytes(), Found: true}, nil
}

// Set stores a value under key.
func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	reply, err := c.Do(ctx, "SET", key, string(value))
	if err != nil {
		return err
	}
	if reply.Type != protocol.SimpleString || reply.Str != "OK" {
		return fmt.Errorf("redis: unexpected SET reply: %s", reply)
	}
	return nil
}

// Incr increments the integer value stored at key by one and returns the new
// value. A missing key counts as zero.
func (c *Client) Incr(ctx context.Context, key string) (int64, error) {
	return c.intCommand(ctx, "INCR", key)
}

// Decr decrements the integer value stored at key by one and returns the new
// value.
func (c *Client) Decr(ctx context.Context, key string) (int64, error) {
	return c.intCommand(ctx, "DECR", key)
}

// Del removes keys, returning how many existed.
func (c *Client) Del(ctx context.Context, keys ...string) (int64, error) {
	return c.intCommand(ctx, append([]string{"DEL"}, keys...)...)
}

// Exists returns how many of the given keys exist.
func (c *Client) Exists(ctx context.Context, keys ...string) (int64, error) {
	return c.intCommand(ctx, append([]string{"EXISTS"}, keys...)...)
}

// Ping checks that the server responds.
func (c *Client) Ping(ctx context.Context) error {
	reply, err := c.Do(ctx, "PING")
	if err != nil {
		return err
	}
	if reply.Type != protocol.SimpleString || reply.Str != "PONG" {
		return fmt.Errorf("redis: unexpected PING reply: %s", reply)
	}
	return nil
}

// Echo round-trips a message through the server.
func (c *Client) Echo(ctx context.Context, message string) (string, error) {
	reply, err := c.Do(ctx, "ECHO", message)
	if err != nil {
		return "", err
	}
	return reply.Text(), nil
}

// Close closes the client's connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Connection exposes the underlying connection, for callers that want the
// lower-level Do/DoMulti surface directly.
func (c *Client) Connection() *Connection {
	return c.conn
}

func (c *Client) intCommand(ctx context.Context, args ...string) (int64, error) {
	reply, err := c.Do(ctx, args...)
	if err != nil {
		return 0, err
	}
	if reply.Type != protocol.Integer {
		return 0, fmt.Errorf("redis: unexpected %s reply: %s", args[0], reply)
	}
	return reply.Int, nil
}

// withTimeout applies the configured default timeout when the caller's
// context has no deadline of its own.
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}
