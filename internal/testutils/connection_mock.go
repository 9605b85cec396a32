package testutils

import (
	"bytes"
	"net"
	"strings"
	"time"
)

// ConnectionMock is a mock implementation of net.Conn for testing. It serves
// pre-configured reply bytes and records everything written to it.
type ConnectionMock struct {
	readBuf  *bytes.Buffer
	writeBuf *bytes.Buffer
	closed   bool
}

// NewConnectionMock creates a mock connection serving the given reply data.
func NewConnectionMock(replyData ...string) *ConnectionMock {
	return &ConnectionMock{
		readBuf:  bytes.NewBufferString(strings.Join(replyData, "")),
		writeBuf: &bytes.Buffer{},
	}
}

func (m *ConnectionMock) Read(b []byte) (n int, err error) {
	return m.readBuf.Read(b)
}

func (m *ConnectionMock) Write(b []byte) (n int, err error) {
	return m.writeBuf.Write(b)
}

func (m *ConnectionMock) Close() error {
	m.closed = true
	return nil
}

func (m *ConnectionMock) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0}
}

func (m *ConnectionMock) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 6379}
}

func (m *ConnectionMock) SetDeadline(t time.Time) error      { return nil }
func (m *ConnectionMock) SetReadDeadline(t time.Time) error  { return nil }
func (m *ConnectionMock) SetWriteDeadline(t time.Time) error { return nil }

// WrittenRequest returns the raw request bytes written to the mock.
func (m *ConnectionMock) WrittenRequest() string {
	return m.writeBuf.String()
}

// Closed reports whether Close was called.
func (m *ConnectionMock) Closed() bool {
	return m.closed
}
