package protocol

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func BenchmarkAppendCommand(b *testing.B) {
	var buf []byte

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf, _ = AppendCommand(buf[:0], "SET", "benchmark_key_123", "this is a test value that is reasonably long")
	}
}

func BenchmarkReadReplyBulk(b *testing.B) {
	data := []byte("$44\r\nthis is a test value that is reasonably long\r\n")
	reader := bytes.NewReader(data)
	bufReader := bufio.NewReader(reader)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reader.Reset(data)
		bufReader.Reset(reader)
		if _, err := ReadReply(bufReader); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReadReplyInteger(b *testing.B) {
	data := []byte(":1234567\r\n")
	reader := bytes.NewReader(data)
	bufReader := bufio.NewReader(reader)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reader.Reset(data)
		bufReader.Reset(reader)
		if _, err := ReadReply(bufReader); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReadReplyArray(b *testing.B) {
	data := []byte("*3\r\n$3\r\nfoo\r\n$3\r\nbar\r\n:42\r\n")
	reader := strings.NewReader(string(data))
	bufReader := bufio.NewReader(reader)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reader.Reset(string(data))
		bufReader.Reset(reader)
		if _, err := ReadReply(bufReader); err != nil {
			b.Fatal(err)
		}
	}
}
