package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pior/redis"
	"github.com/pior/redis/protocol"
)

func main() {
	_ = godotenv.Load() // optional .env with REDIS_ADDR

	defaultAddr := os.Getenv("REDIS_ADDR")
	if defaultAddr == "" {
		defaultAddr = "127.0.0.1:6379"
	}

	addr := flag.String("addr", defaultAddr, "redis server address")
	timeout := flag.Duration("timeout", 5*time.Second, "per-command timeout")
	flag.Parse()

	client, err := redis.NewClient(*addr, redis.Config{Timeout: *timeout})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to %s: %v\n", *addr, err)
		os.Exit(1)
	}
	defer client.Close()

	// One-shot mode: arguments on the command line form a single command.
	if flag.NArg() > 0 {
		if !runCommand(client, flag.Args()) {
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Connected to %s\n", client.Connection().Addr())
	fmt.Println("Type any redis command, or quit to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s> ", *addr)
		if !scanner.Scan() {
			break
		}

		args := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" || args[0] == "exit" {
			break
		}

		if !runCommand(client, args) {
			os.Exit(1)
		}
	}
}

// runCommand executes one command and prints its outcome. Returns false when
// the connection is no longer usable.
func runCommand(client *redis.Client, args []string) bool {
	reply, err := client.Do(context.Background(), args...)
	if err != nil {
		var cmdErr *redis.CommandError
		if errors.As(err, &cmdErr) {
			fmt.Printf("(error) %s\n", cmdErr.Message)
			return true
		}

		fmt.Fprintf(os.Stderr, "%v\n", err)
		return false
	}

	printReply(reply)
	return true
}

func printReply(reply *protocol.Reply) {
	if reply.Type == protocol.BulkString && !reply.Null {
		// Print the payload verbatim, like redis-cli without --no-raw.
		fmt.Printf("%s\n", reply.Bulk)
		return
	}
	fmt.Println(reply)
}
