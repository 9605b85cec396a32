package testutils

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/pior/redis/protocol"
)

// Server is a minimal in-process redis server for tests. It speaks enough of
// the protocol for the client's command surface: GET, SET, INCR, DECR, DEL,
// EXISTS, PING, ECHO. Every connection gets its own goroutine; the key space
// is shared.
type Server struct {
	listener net.Listener

	mu   sync.Mutex
	data map[string]string
}

// StartServer starts a server on a random loopback port.
func StartServer() (*Server, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	s := &Server{
		listener: listener,
		data:     make(map[string]string),
	}
	go s.acceptLoop()
	return s, nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Close stops the listener. Established connections terminate when their
// peers disconnect.
func (s *Server) Close() error {
	return s.listener.Close()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.serve(conn)
	}
}

func (s *Server) serve(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	for {
		// Requests use the same multi-bulk grammar as array replies, so the
		// reply decoder reads them directly.
		request, err := protocol.ReadReply(reader)
		if err != nil {
			return
		}
		if _, err := conn.Write(s.handle(request)); err != nil {
			return
		}
	}
}

func (s *Server) handle(request *protocol.Reply) []byte {
	if request.Type != protocol.Array || len(request.Array) == 0 {
		return respError("ERR invalid request")
	}

	args := make([]string, 0, len(request.Array))
	for _, elem := range request.Array {
		if elem.Type != protocol.BulkString {
			return respError("ERR invalid request")
		}
		args = append(args, string(elem.Bulk))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch strings.ToUpper(args[0]) {
	case "PING":
		return respSimple("PONG")

	case "ECHO":
		if len(args) != 2 {
			return respError("ERR wrong number of arguments for 'echo' command")
		}
		return respBulk(args[1])

	case "GET":
		if len(args) != 2 {
			return respError("ERR wrong number of arguments for 'get' command")
		}
		value, ok := s.data[args[1]]
		if !ok {
			return respNull()
		}
		return respBulk(value)

	case "SET":
		if len(args) != 3 {
			return respError("ERR wrong number of arguments for 'set' command")
		}
		s.data[args[1]] = args[2]
		return respSimple("OK")

	case "INCR":
		return s.add(args, 1)

	case "DECR":
		return s.add(args, -1)

	case "DEL":
		count := int64(0)
		for _, key := range args[1:] {
			if _, ok := s.data[key]; ok {
				delete(s.data, key)
				count++
			}
		}
		return respInt(count)

	case "EXISTS":
		count := int64(0)
		for _, key := range args[1:] {
			if _, ok := s.data[key]; ok {
				count++
			}
		}
		return respInt(count)
	}

	return respError(fmt.Sprintf("ERR unknown command '%s'", args[0]))
}

func (s *Server) add(args []string, delta int64) []byte {
	if len(args) != 2 {
		return respError("ERR wrong number of arguments")
	}

	key := args[1]
	value := int64(0)
	if current, ok := s.data[key]; ok {
		parsed, err := strconv.ParseInt(current, 10, 64)
		if err != nil {
			return respError("ERR value is not an integer or out of range")
		}
		value = parsed
	}

	value += delta
	s.data[key] = strconv.FormatInt(value, 10)
	return respInt(value)
}

func respSimple(s string) []byte {
	return []byte("+" + s + "\r\n")
}

func respError(s string) []byte {
	return []byte("-" + s + "\r\n")
}

func respInt(n int64) []byte {
	return []byte(":" + strconv.FormatInt(n, 10) + "\r\n")
}

func respBulk(s string) []byte {
	return []byte("$" + strconv.Itoa(len(s)) + "\r\n" + s + "\r\n")
}

func respNull() []byte {
	return []byte("$-1\r\n")
}
